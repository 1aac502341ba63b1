package sat

import (
	"bytes"
	"testing"
)

func identityExtLit(l Lit) int {
	if l.Sign() {
		return -(int(l.Var()) + 1)
	}
	return int(l.Var()) + 1
}

func TestDRATWriter_asciiAddAndDelete(t *testing.T) {
	var buf bytes.Buffer
	w := NewDRATWriter(&buf, ProofASCII, identityExtLit)
	w.AddClause([]Lit{MkLit(0), NegLit(1)})
	w.DeleteClause([]Lit{MkLit(0), NegLit(1)})
	if err := w.Close(); err != nil {
		t.Fatalf("Close(): %s", err)
	}
	want := "1 -2 0\nd 1 -2 0\n"
	if got := buf.String(); got != want {
		t.Errorf("DRATWriter ASCII = %q, want %q", got, want)
	}
}

func TestDRATWriter_binaryRoundTripsVbyte(t *testing.T) {
	var buf bytes.Buffer
	w := NewDRATWriter(&buf, ProofBinary, identityExtLit)
	w.AddClause([]Lit{MkLit(0)})
	if err := w.Close(); err != nil {
		t.Fatalf("Close(): %s", err)
	}
	got := buf.Bytes()
	want := []byte{'a', byte(vbyte(1)), 0}
	if !bytes.Equal(got, want) {
		t.Errorf("DRATWriter binary = %v, want %v", got, want)
	}
}

func TestVbyte(t *testing.T) {
	cases := []struct {
		lit  int
		want uint32
	}{
		{1, 2},
		{-1, 3},
		{64, 128},
		{-64, 129},
	}
	for _, tc := range cases {
		if got := vbyte(tc.lit); got != tc.want {
			t.Errorf("vbyte(%d) = %d, want %d", tc.lit, got, tc.want)
		}
	}
}
