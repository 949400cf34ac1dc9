package main

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"xcrt/internal/driver"
	"xcrt/internal/rt"
	"xcrt/internal/selftest"
)

func quietPrograms(cases int) []*driver.Program {
	p := &driver.Program{
		Name: "quiet",
		Main: func(env *rt.Env) {},
	}
	for i := range cases {
		p.Cases = append(p.Cases, driver.Case{Name: strconv.Itoa(i)})
	}
	return []*driver.Program{p}
}

func TestRunWithProgressDrainsAfterViewFailure(t *testing.T) {
	viewErr := errors.New("no terminal")
	type outcome struct {
		results []selftest.CaseResult
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		results, err := runWithProgress(context.Background(), quietPrograms(300), selftest.Options{},
			func(<-chan selftest.Event) error { return viewErr })
		done <- outcome{results, err}
	}()

	select {
	case out := <-done:
		if !errors.Is(out.err, viewErr) {
			t.Fatalf("err = %v, want %v", out.err, viewErr)
		}
		if len(out.results) != 300 {
			t.Fatalf("got %d results, want 300", len(out.results))
		}
		if passed, failed := selftest.Summary(out.results); passed != 300 || failed != 0 {
			t.Errorf("passed %d, failed %d", passed, failed)
		}
	case <-time.After(30 * time.Second):
		t.Fatal("runner blocked on undrained progress events")
	}
}

func TestRunWithProgressDeliversEvents(t *testing.T) {
	seen := 0
	results, err := runWithProgress(context.Background(), quietPrograms(3), selftest.Options{},
		func(events <-chan selftest.Event) error {
			for ev := range events {
				if ev.Status == selftest.StatusDone {
					seen++
				}
			}
			return nil
		})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 || seen != 3 {
		t.Errorf("results %d, done events %d; want 3 and 3", len(results), seen)
	}
}
