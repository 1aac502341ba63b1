package sat

import "github.com/rhartert/ksat/internal/options"

// ema is an exponential moving average with the bias-correction term
// kissat's averages.c uses: the first update sets the average to that
// sample, and early updates are scaled up so a fresh average does not
// start biased toward zero.
type ema struct {
	value float64
	alpha float64
	beta  float64 // current bias-correction factor, decays toward 0
	count uint64
}

func newEMA(alpha float64) ema {
	return ema{alpha: alpha, beta: 1}
}

func (e *ema) update(x float64) {
	e.count++
	e.beta *= 1 - e.alpha
	if e.beta < 1e-9 {
		e.beta = 0
	}
	correction := 1 - e.beta
	if correction == 0 {
		correction = e.alpha
	}
	e.value += (e.alpha / correction) * (x - e.value)
}

func (e *ema) Value() float64 { return e.value }

// limits tracks the conflict/tick counters that gate restarts, reduce,
// mode switches and rephase (spec §4.G/H, grounded on kissat's limits.h).
type limits struct {
	conflicts int64
	ticks     int64

	restart int64 // conflict count at which a stable-mode restart may fire

	reduce      int64 // conflicts until next reduce
	reduceInc   int64

	modeTicks   int64 // ticks until next focused<->stable switch
	modeField   int64

	rephase int64 // conflicts until next rephase attempt
}

func newLimits(opts options.Options) limits {
	return limits{
		reduce:    int64(opts.ReduceInitial),
		reduceInc: int64(opts.ReduceInc),
		modeTicks: int64(opts.ModeTicksInitial),
		modeField: int64(opts.ModeTicksInitial),
		rephase:   int64(opts.RephaseInitial),
	}
}

// delays implement kissat's "postponed N times before actually running"
// scheme for the more expensive inprocessing passes (spec §4.I/J): each
// call decrements a counter and only fires the pass at zero, then resets
// the counter, increasing the wait geometrically after each unproductive
// run and dropping it back to zero after a productive one.
type delays struct {
	eliminate delay
	subsume   delay
	probe     delay
	vivify    delay
}

type delay struct {
	count, limit int
}

func newDelays() delays {
	return delays{}
}

// ready reports whether the delay has elapsed, decrementing it otherwise.
func (d *delay) ready() bool {
	if d.count > 0 {
		d.count--
		return false
	}
	return true
}

// reset re-arms the delay, doubling the wait up to a small ceiling so
// repeatedly unproductive passes back off (grounded on kissat's
// "schedule" delay bookkeeping in schedule.c).
func (d *delay) reset(produced bool) {
	if produced {
		d.limit = 0
	} else if d.limit == 0 {
		d.limit = 1
	} else if d.limit < 16 {
		d.limit *= 2
	}
	d.count = d.limit
}

// lubyState produces the reluctant-doubling restart sequence used by
// stable mode (spec §4.G), via Donald Knuth's iterative reluctant-doubling
// trick rather than computing the Luby sequence recursively.
type lubyState struct {
	u, v int64
}

func newLubyState() lubyState {
	return lubyState{u: 1, v: 1}
}

// next advances and returns the next Luby sequence value.
func (l *lubyState) next() int64 {
	cur := l.v
	if l.u&(-l.u) == l.v {
		l.u++
		l.v = 1
	} else {
		l.v *= 2
	}
	return cur
}
