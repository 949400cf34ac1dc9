package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	setup := tm.Begin("setup")
	time.Sleep(time.Millisecond)
	tm.End(setup, "")
	run := tm.Begin("main")
	tm.End(run, "exit 0")
	tm.End(42, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(rep.Phases))
	}
	if rep.Phases[0].DurationMS <= 0 {
		t.Errorf("setup duration = %v, want > 0", rep.Phases[0].DurationMS)
	}
	if rep.Phases[1].Note != "exit 0" {
		t.Errorf("note = %q", rep.Phases[1].Note)
	}
	if rep.TotalMS < rep.Phases[0].DurationMS {
		t.Errorf("total %v below first phase %v", rep.TotalMS, rep.Phases[0].DurationMS)
	}

	sum := tm.Summary()
	for _, want := range []string{"timings:", "setup", "main", "// exit 0", "total"} {
		if !strings.Contains(sum, want) {
			t.Errorf("summary missing %q:\n%s", want, sum)
		}
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	if got := tm.Report(); len(got.Phases) != 0 {
		t.Errorf("nil timer report = %+v", got)
	}
}
