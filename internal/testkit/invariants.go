// Package testkit checks the observable outcome of a program run against a
// recorded case.
package testkit

import (
	"fmt"
	"strings"

	"xcrt/internal/driver"
)

// Outcome is what a run produced, however it was run.
type Outcome struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CheckCase runs the case invariants on an outcome:
// 1) the exit status matches
// 2) a case expecting a fatal error sees that error's label on stderr, and a
// clean case sees an empty stderr
// 3) stdout matches exactly; the first differing line is reported
func CheckCase(c driver.Case, out Outcome) error {
	// 1) exit status
	if out.ExitCode != c.ExitCode {
		return fmt.Errorf("exit status %d, want %d (stderr: %s)", out.ExitCode, c.ExitCode, firstLine(out.Stderr))
	}

	// 2) fatal label
	if c.Fatal != 0 {
		label := c.Fatal.Label() + ":"
		if !strings.Contains(out.Stderr, label) {
			return fmt.Errorf("stderr lacks %q: %s", label, firstLine(out.Stderr))
		}
	} else if out.Stderr != "" {
		return fmt.Errorf("unexpected stderr: %s", firstLine(out.Stderr))
	}

	// 3) stdout
	if out.Stdout == c.Stdout {
		return nil
	}
	got := strings.Split(out.Stdout, "\n")
	want := strings.Split(c.Stdout, "\n")
	for i := 0; i < max(len(got), len(want)); i++ {
		var g, w string
		if i < len(got) {
			g = got[i]
		}
		if i < len(want) {
			w = want[i]
		}
		if g != w || i >= len(got) || i >= len(want) {
			return fmt.Errorf("stdout line %d: got %q, want %q", i+1, g, w)
		}
	}
	return fmt.Errorf("stdout differs")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
