package dimacs

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/rhartert/ksat/internal/options"
	"github.com/rhartert/ksat/internal/sat"
)

func TestLoadFile_small(t *testing.T) {
	s := sat.New(options.Default())
	nVars, err := LoadFile("testdata/small.cnf", false, Normal, s)
	require.NoError(t, err)
	if nVars != 3 {
		t.Errorf("nVars = %d, want 3", nVars)
	}
	if status := s.Solve(); status != sat.StatusSAT {
		t.Errorf("Solve() = %v, want SATISFIABLE", status)
	}
}

// TestLoadFile_problemLine checks the parsed problem-line counts against
// a literal want, the way the teacher's own dimacs_test.go compares a
// captured instance with cmp.Diff rather than field-by-field asserts.
func TestLoadFile_problemLine(t *testing.T) {
	s := sat.New(options.Default())
	nVars, err := LoadFile("testdata/small.cnf", false, Normal, s)
	require.NoError(t, err)

	type problem struct {
		Vars int
	}
	want := problem{Vars: 3}
	got := problem{Vars: nVars}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("problem line mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_unsat(t *testing.T) {
	s := sat.New(options.Default())
	_, err := LoadFile("testdata/unsat.cnf", false, Normal, s)
	require.NoError(t, err)
	if status := s.Solve(); status != sat.StatusUNSAT {
		t.Errorf("Solve() = %v, want UNSATISFIABLE", status)
	}
}

func TestLoadFile_noFile(t *testing.T) {
	s := sat.New(options.Default())
	_, err := LoadFile("testdata/does-not-exist.cnf", false, Normal, s)
	require.Error(t, err)
}

func TestValidate_pedanticRejectsTrailingWhitespace(t *testing.T) {
	raw := []byte("p cnf 1 1\n1 0 \n")
	if err := validate(raw, Pedantic); err == nil {
		t.Errorf("validate(): want error for trailing whitespace, got none")
	}
	if err := validate(raw, Normal); err != nil {
		t.Errorf("validate() under Normal: want no error, got %s", err)
	}
}

func TestValidate_duplicateProblemLine(t *testing.T) {
	raw := []byte("p cnf 1 1\np cnf 1 1\n1 0\n")
	err := validate(raw, Normal)
	if err == nil {
		t.Fatalf("validate(): want error for duplicate problem line, got none")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("validate(): want *ParseError, got %T", err)
	}
	if pe.Line != 2 {
		t.Errorf("ParseError.Line = %d, want 2", pe.Line)
	}
}

func TestValidate_missingProblemLine(t *testing.T) {
	raw := []byte("c just a comment\n1 0\n")
	if err := validate(raw, Normal); err == nil {
		t.Errorf("validate(): want error for missing problem line, got none")
	}
}

func TestValidate_relaxedSkipsEverything(t *testing.T) {
	raw := []byte("1 0\n")
	if err := validate(raw, Relaxed); err != nil {
		t.Errorf("validate() under Relaxed: want no error, got %s", err)
	}
}

func TestWriteModel(t *testing.T) {
	var sb strings.Builder
	if err := WriteModel(&sb, []int{1, 0, 1}); err != nil {
		t.Fatalf("WriteModel(): unexpected error: %s", err)
	}
	want := "1 -2 3 0\n"
	if got := sb.String(); got != want {
		t.Errorf("WriteModel() = %q, want %q", got, want)
	}
}
