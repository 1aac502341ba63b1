// Package dimacs loads DIMACS CNF formulas into a sat.Solver and writes
// witnesses back out in the same format (spec §6 "external interfaces").
// Parsing itself is delegated to github.com/rhartert/dimacs, which knows
// nothing of strictness levels or line numbers; validate runs a
// line-oriented pre-pass ahead of it so diagnostics can still carry a
// line number the way the CLI's error output promises.
package dimacs

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	extdimacs "github.com/rhartert/dimacs"

	"github.com/rhartert/ksat/internal/sat"
)

// Strictness selects how forgiving the pre-parse validation pass is
// about formatting a strict reading of the DIMACS CNF format would
// reject (spec §6: RELAXED/NORMAL/PEDANTIC).
type Strictness int

const (
	// Relaxed skips the formatting pre-pass entirely; only the
	// underlying parser's own structural errors surface.
	Relaxed Strictness = iota
	// Normal requires a well-formed, non-duplicated problem line but
	// otherwise tolerates loose whitespace.
	Normal
	// Pedantic additionally rejects trailing whitespace, runs of more
	// than one space, and blank lines outside of a single optional
	// trailing one.
	Pedantic
)

// ParseError reports a formatting problem found during the pre-pass,
// with Line set to the 1-indexed source line (0 if the error concerns
// the file as a whole, e.g. a missing problem line).
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line <= 0 {
		return e.Message
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// reader opens filename, optionally wrapping it in a gzip reader.
func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// LoadFile reads filename (optionally gzip-compressed) as a DIMACS CNF
// formula and loads it into solver.
func LoadFile(filename string, gzipped bool, strictness Strictness, solver *sat.Solver) (int, error) {
	rc, err := reader(filename, gzipped)
	if err != nil {
		return 0, fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer rc.Close()
	return Load(rc, strictness, solver)
}

// Load reads r as a DIMACS CNF formula and loads it into solver, running
// the strictness pre-pass before handing the bytes to the underlying
// clause-by-clause parser. It returns the variable count from the
// problem line, for witness printing.
func Load(r io.Reader, strictness Strictness, solver *sat.Solver) (int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	if err := validate(raw, strictness); err != nil {
		return 0, err
	}
	b := &builder{solver: solver}
	if err := extdimacs.ReadBuilder(bytes.NewReader(raw), b); err != nil {
		return 0, err
	}
	return b.nVars, nil
}

// validate runs the strictness pre-pass: Relaxed is a no-op, Normal
// checks for a single well-formed problem line, and Pedantic further
// rejects irregular whitespace and stray blank lines.
func validate(raw []byte, strictness Strictness) error {
	if strictness == Relaxed {
		return nil
	}

	lines := strings.Split(string(raw), "\n")
	sawProblem := false
	for i, line := range lines {
		lineNo := i + 1
		trimmed := strings.TrimRight(line, "\r")

		if trimmed == "" {
			// A single trailing empty line (from the final newline) is
			// always fine; Pedantic forbids any other blank line.
			if strictness == Pedantic && i != len(lines)-1 {
				return &ParseError{Line: lineNo, Message: "blank line not permitted"}
			}
			continue
		}
		if trimmed[0] == 'c' {
			continue
		}
		if trimmed[0] == 'p' {
			if sawProblem {
				return &ParseError{Line: lineNo, Message: "duplicate problem line"}
			}
			sawProblem = true
			fields := strings.Fields(trimmed)
			if len(fields) != 4 || fields[0] != "p" || fields[1] != "cnf" {
				return &ParseError{Line: lineNo, Message: "malformed problem line"}
			}
			if _, err := strconv.Atoi(fields[2]); err != nil {
				return &ParseError{Line: lineNo, Message: "non-numeric variable count"}
			}
			if _, err := strconv.Atoi(fields[3]); err != nil {
				return &ParseError{Line: lineNo, Message: "non-numeric clause count"}
			}
			if strictness == Pedantic && trimmed != strings.Join(fields, " ") {
				return &ParseError{Line: lineNo, Message: "irregular whitespace in problem line"}
			}
			continue
		}
		if strictness == Pedantic {
			if trimmed != strings.TrimRight(trimmed, " \t") {
				return &ParseError{Line: lineNo, Message: "trailing whitespace"}
			}
			if strings.Contains(trimmed, "  ") {
				return &ParseError{Line: lineNo, Message: "multiple consecutive spaces"}
			}
		}
	}
	if !sawProblem {
		return &ParseError{Message: "missing problem line"}
	}
	return nil
}

// builder adapts a *sat.Solver to extdimacs.Builder.
type builder struct {
	solver *sat.Solver
	nVars  int
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("unsupported problem type %q", problem)
	}
	b.nVars = nVars
	b.solver.Reserve(nVars)
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	b.solver.AddClause(tmpClause)
	return nil
}

func (b *builder) Comment(_ string) error {
	return nil // ignore comments
}

// WriteModel formats a satisfying assignment in the one-line, zero-
// terminated DIMACS convention, writing a '-' prefix for false
// variables and the bare 1-indexed number for true ones.
func WriteModel(w io.Writer, values []int) error {
	bw := bufio.NewWriter(w)
	for i, v := range values {
		lit := i + 1
		if v == 0 {
			lit = -lit
		}
		if _, err := fmt.Fprintf(bw, "%d ", lit); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(bw, "0"); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadModels parses a models file (one satisfying assignment per line,
// DIMACS-literal style, zero-terminated).
func ReadModels(filename string) ([][]bool, error) {
	rc, err := reader(filename, false)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer rc.Close()

	b := &modelBuilder{}
	if err := extdimacs.ReadBuilder(rc, b); err != nil {
		return nil, err
	}
	return b.models, nil
}

type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("model files should not have a problem line")
}

func (b *modelBuilder) Comment(_ string) error {
	return nil
}

func (b *modelBuilder) Clause(tmpClause []int) error {
	model := make([]bool, len(tmpClause))
	for i, l := range tmpClause {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}
