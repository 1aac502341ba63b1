// Command ksat is the default CLI front-end for the solver (spec §6
// "external interfaces"): it parses a DIMACS CNF instance, runs the
// solver, and reports SAT/UNSAT/UNKNOWN with exit codes 10/20/0.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rhartert/ksat/internal/checker"
	extdimacs "github.com/rhartert/ksat/internal/dimacs"
	"github.com/rhartert/ksat/internal/options"
	"github.com/rhartert/ksat/internal/sat"
)

var (
	flagVerbosity    int
	flagStrictness   string
	flagProof        string
	flagBinaryProof  bool
	flagCheck        bool
	flagMaxConflicts int64
	flagOpts         []string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ksat [flags] instance.cnf",
		Short: "a CDCL SAT solver",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	f := cmd.Flags()
	f.IntVarP(&flagVerbosity, "verbosity", "v", 0, "log verbosity: -1 quiet .. 3 debug")
	f.StringVar(&flagStrictness, "strictness", "normal", "DIMACS strictness: relaxed, normal, or pedantic")
	f.StringVar(&flagProof, "proof", "", "write a DRAT proof to this file")
	f.BoolVar(&flagBinaryProof, "binary-proof", false, "write the DRAT proof in binary form")
	f.BoolVar(&flagCheck, "check", false, "verify every proof step with the internal RUP checker")
	f.Int64Var(&flagMaxConflicts, "max-conflicts", -1, "abort after this many conflicts (-1: unlimited)")
	f.StringArrayVar(&flagOpts, "opt", nil, "set a solver option, as name=value (repeatable)")
	return cmd
}

func parseStrictness(s string) (extdimacs.Strictness, error) {
	switch strings.ToLower(s) {
	case "relaxed":
		return extdimacs.Relaxed, nil
	case "normal":
		return extdimacs.Normal, nil
	case "pedantic":
		return extdimacs.Pedantic, nil
	default:
		return 0, fmt.Errorf("unknown strictness level %q", s)
	}
}

func buildOptions() (options.Options, error) {
	opts := options.Default()
	opts.Verbosity = flagVerbosity
	if flagMaxConflicts != -1 {
		opts.MaxConflicts = int(flagMaxConflicts)
	}
	for _, kv := range flagOpts {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return opts, fmt.Errorf("--opt %q: expected name=value", kv)
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return opts, fmt.Errorf("--opt %q: %w", kv, err)
		}
		if err := opts.Set(name, n); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func run(cmd *cobra.Command, args []string) error {
	strictness, err := parseStrictness(flagStrictness)
	if err != nil {
		return err
	}
	opts, err := buildOptions()
	if err != nil {
		return err
	}

	s := sat.New(opts)

	gzipped := strings.HasSuffix(args[0], ".gz")
	nVars, err := extdimacs.LoadFile(args[0], gzipped, strictness, s)
	if err != nil {
		if pe, ok := err.(*extdimacs.ParseError); ok {
			return fmt.Errorf("parse error: %s", pe)
		}
		return fmt.Errorf("could not load instance: %w", err)
	}

	if flagCheck {
		s.SetChecker(checker.New())
	}
	if flagProof != "" {
		f, err := os.Create(flagProof)
		if err != nil {
			return fmt.Errorf("could not open proof file: %w", err)
		}
		format := sat.ProofASCII
		if flagBinaryProof {
			format = sat.ProofBinary
		}
		writer := sat.NewDRATWriter(f, format, s.ExtLit)
		s.SetProof(writer)
		defer writer.Close()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "c variables: %d\n", nVars)

	var interrupted atomic.Bool
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-sigCh:
			interrupted.Store(true)
		case <-done:
		}
	}()
	defer signal.Stop(sigCh)
	s.SetTerminate(interrupted.Load)

	start := time.Now()
	status := s.Solve()
	elapsed := time.Since(start)
	if interrupted.Load() && status == sat.StatusUnknown {
		fmt.Fprintln(cmd.OutOrStdout(), "c interrupted")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "c time (sec): %f\n", elapsed.Seconds())
	fmt.Fprintf(cmd.OutOrStdout(), "c conflicts: %d\n", s.Stats.Conflicts)
	fmt.Fprintf(cmd.OutOrStdout(), "s %s\n", dimacsStatusLine(status))

	if status == sat.StatusSAT {
		values := make([]int, nVars)
		for i := 1; i <= nVars; i++ {
			v := s.Value(i)
			if v > 0 {
				values[i-1] = 1
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), "v ")
		extdimacs.WriteModel(cmd.OutOrStdout(), values)
	}

	os.Exit(int(status))
	return nil
}

func dimacsStatusLine(status sat.Status) string {
	switch status {
	case sat.StatusSAT:
		return "SATISFIABLE"
	case sat.StatusUNSAT:
		return "UNSATISFIABLE"
	default:
		return "UNKNOWN"
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
