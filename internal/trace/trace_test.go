package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"", LevelOff, false},
		{"call", LevelCall, false},
		{"HEAP", LevelHeap, false},
		{"debug", LevelDebug, false},
		{"phase", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelShouldEmit(t *testing.T) {
	if LevelCall.ShouldEmit(ScopeHeap) {
		t.Error("call level must not emit heap events")
	}
	if !LevelCall.ShouldEmit(ScopeCall) {
		t.Error("call level must emit call events")
	}
	if !LevelHeap.ShouldEmit(ScopeHeap) {
		t.Error("heap level must emit heap events")
	}
	if LevelHeap.ShouldEmit(ScopeOp) {
		t.Error("heap level must not emit op events")
	}
	if !LevelDebug.ShouldEmit(ScopeOp) {
		t.Error("debug level must emit everything")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelCall, FormatText)

	span := BeginDetail(tr, ScopeCall, "main", "prog.xc:3", 0)
	Point(tr, ScopeHeap, "alloc", "String#1") // filtered out at call level
	span.End("")

	out := buf.String()
	if !strings.Contains(out, "→ main (prog.xc:3)") {
		t.Errorf("missing begin line in %q", out)
	}
	if !strings.Contains(out, "← main") {
		t.Errorf("missing end line in %q", out)
	}
	if strings.Contains(out, "alloc") {
		t.Errorf("heap event leaked through call level: %q", out)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeHeap, "free", "Vector#2")

	var got map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &got); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if got["name"] != "free" || got["scope"] != "heap" || got["kind"] != "point" {
		t.Errorf("unexpected event %v", got)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeCall, name, "")
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d, want 3", len(snap))
	}
	var names []string
	for _, ev := range snap {
		names = append(names, ev.Name)
	}
	if got := strings.Join(names, ","); got != "c,d,e" {
		t.Errorf("snapshot = %s, want c,d,e", got)
	}
}

func TestMultiTracerRing(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(8, LevelCall)
	m := NewMultiTracer(LevelCall, NewStreamTracer(&buf, LevelCall, FormatText), ring)
	Point(m, ScopeDriver, "start", "")

	if RingOf(m) != ring {
		t.Fatal("RingOf did not find the ring tracer")
	}
	if len(ring.Snapshot()) != 1 || buf.Len() == 0 {
		t.Error("event was not fanned out to both tracers")
	}
}

func TestContextRoundTrip(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Error("empty context should yield Nop")
	}
	r := NewRingTracer(1, LevelCall)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Error("tracer not recovered from context")
	}
}

func TestDisabledSpanIsSafe(t *testing.T) {
	s := Begin(Nop, ScopeCall, "x", 0)
	if s.ID() != 0 {
		t.Errorf("disabled span id = %d", s.ID())
	}
	s.WithExtra("k", "v").End("")
	var nilSpan *Span
	nilSpan.End("")
}
