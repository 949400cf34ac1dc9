package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"xcrt/internal/crash"
	"xcrt/internal/driver"
	"xcrt/internal/rt"
)

func TestReadSwitch(t *testing.T) {
	cases := map[string]switchMode{
		"":       switchAuto,
		"AUTO":   switchAuto,
		" on ":   switchOn,
		"always": switchOn,
		"off":    switchOff,
	}
	for in, want := range cases {
		got, err := readSwitch("color", in)
		if err != nil || got != want {
			t.Errorf("readSwitch(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := readSwitch("ui", "sometimes"); err == nil || !strings.Contains(err.Error(), "--ui") {
		t.Errorf("expected --ui error, got %v", err)
	}
	if !switchEnabled(switchOn, nil) || switchEnabled(switchOff, nil) {
		t.Error("explicit modes must not consult the terminal")
	}
}

func TestSelectPrograms(t *testing.T) {
	all, err := selectPrograms(nil)
	if err != nil || len(all) != len(driver.Programs()) {
		t.Fatalf("selectPrograms(nil) = %d programs, %v", len(all), err)
	}
	two, err := selectPrograms([]string{"echo", "cat", "echo"})
	if err != nil {
		t.Fatal(err)
	}
	if len(two) != 2 || two[0].Name != "echo" || two[1].Name != "cat" {
		t.Errorf("unexpected selection %v", two)
	}
	if _, err := selectPrograms([]string{"nope"}); err == nil {
		t.Error("unknown program should fail")
	}
}

func TestCaseExpectation(t *testing.T) {
	if got := caseExpectation(driver.Case{ExitCode: 1, Fatal: rt.CodeOutOfBounds}); got != "exit 1, IndexError" {
		t.Errorf("got %q", got)
	}
	if got := caseExpectation(driver.Case{}); got != "exit 0" {
		t.Errorf("got %q", got)
	}
}

func TestRenderReportPretty(t *testing.T) {
	rep := &crash.Report{
		Program: "bounds",
		Args:    []string{"7"},
		Time:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Version: "0.3.0-dev",
		Code:    int(rt.CodeOutOfBounds),
		Label:   rt.CodeOutOfBounds.Label(),
		Message: "index 7 out of range [0, 3)",
		Trace:   []rt.Frame{{File: "bounds.xc", Line: 1, Routine: "main"}},
		Stdout:  "partial",
	}
	var out bytes.Buffer
	renderReportPretty(&out, rep, true)
	text := out.String()
	for _, want := range []string{
		"program: bounds 7",
		`  File "bounds.xc", line 1, in main`,
		"IndexError: index 7 out of range [0, 3)",
		"stdout:\npartial\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q:\n%s", want, text)
		}
	}
}
