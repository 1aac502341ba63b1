package main

import "testing"

func TestParseStrictness(t *testing.T) {
	cases := map[string]bool{
		"relaxed":  true,
		"Normal":   true,
		"PEDANTIC": true,
		"loose":    false,
	}
	for name, wantOK := range cases {
		_, err := parseStrictness(name)
		if (err == nil) != wantOK {
			t.Errorf("parseStrictness(%q): error = %v, want ok = %v", name, err, wantOK)
		}
	}
}

func TestBuildOptions_appliesOverrides(t *testing.T) {
	flagVerbosity = 2
	flagMaxConflicts = -1
	flagOpts = []string{"tier1=3"}
	defer func() {
		flagVerbosity = 0
		flagMaxConflicts = -1
		flagOpts = nil
	}()

	opts, err := buildOptions()
	if err != nil {
		t.Fatalf("buildOptions(): unexpected error: %s", err)
	}
	if opts.Verbosity != 2 {
		t.Errorf("Verbosity = %d, want 2", opts.Verbosity)
	}
	if opts.TierOneGlue != 3 {
		t.Errorf("TierOneGlue = %d, want 3", opts.TierOneGlue)
	}
}

func TestBuildOptions_rejectsUnknownOption(t *testing.T) {
	flagOpts = []string{"notanoption=1"}
	defer func() { flagOpts = nil }()

	if _, err := buildOptions(); err == nil {
		t.Errorf("buildOptions(): want error for unknown option, got none")
	}
}
