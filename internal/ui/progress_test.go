package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"xcrt/internal/selftest"
)

func TestProgressModelAppliesEvents(t *testing.T) {
	events := make(chan selftest.Event)
	m := NewProgressModel("selftest", []string{"a/one", "b/two"}, events).(*progressModel)

	m.applyEvent(selftest.Event{Case: "a/one", Stage: selftest.StageRun, Status: selftest.StatusWorking})
	if got := m.items[0].status; got != "running" {
		t.Fatalf("status = %q, want running", got)
	}
	m.applyEvent(selftest.Event{Case: "a/one", Stage: selftest.StageCheck, Status: selftest.StatusDone, Elapsed: 1500 * time.Microsecond})
	m.applyEvent(selftest.Event{Case: "b/two", Stage: selftest.StageCheck, Status: selftest.StatusError})
	m.applyEvent(selftest.Event{Case: "unknown", Status: selftest.StatusError})

	if m.failed != 1 {
		t.Errorf("failed = %d, want 1", m.failed)
	}
	if p := m.percent(); p != 1.0 {
		t.Errorf("percent = %v, want 1", p)
	}

	view := m.View()
	for _, want := range []string{"selftest (1 failed)", "passed", "failed", "a/one", "1.5ms"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestProgressModelQuitsWhenEventsClose(t *testing.T) {
	events := make(chan selftest.Event)
	close(events)
	m := NewProgressModel("x", []string{"a/b"}, events).(*progressModel)
	if _, ok := m.listenForEvent()().(doneMsg); !ok {
		t.Fatal("closed channel should produce doneMsg")
	}
	m.Update(doneMsg{})
	if !m.done {
		t.Error("model should be done")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"abcdefghij", 6, "abc..."},
		{"abcdefghij", 4, "a..."},
		{"abcdefghij", 3, "abc"},
		{"abcdefghij", 0, "abcdefghij"},
		{"short", 10, "short"},
		{"pos/none", 8, "pos/none"},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.width)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
		if tt.width > 0 && runewidth.StringWidth(got) > tt.width {
			t.Errorf("truncate(%q, %d) is %d columns wide", tt.in, tt.width, runewidth.StringWidth(got))
		}
	}
}
