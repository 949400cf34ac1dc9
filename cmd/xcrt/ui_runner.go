package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"xcrt/internal/driver"
	"xcrt/internal/selftest"
	"xcrt/internal/ui"
)

type selftestOutcome struct {
	results []selftest.CaseResult
	err     error
}

func runSelftestWithUI(ctx context.Context, title string, progs []*driver.Program, opts selftest.Options) ([]selftest.CaseResult, error) {
	return runWithProgress(ctx, progs, opts, func(events <-chan selftest.Event) error {
		model := ui.NewProgressModel(title, selftest.IDs(progs), events)
		program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
		_, err := program.Run()
		return err
	})
}

// runWithProgress runs the selftest while show consumes its events. Events
// show leaves unread, for instance after the view failed to start, are
// drained so the runner always finishes.
func runWithProgress(ctx context.Context, progs []*driver.Program, opts selftest.Options, show func(<-chan selftest.Event) error) ([]selftest.CaseResult, error) {
	events := make(chan selftest.Event, 256)
	outcomeCh := make(chan selftestOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = selftest.ChannelSink{Ch: events}
		results, err := selftest.Run(ctx, progs, optsCopy)
		outcomeCh <- selftestOutcome{results: results, err: err}
		close(events)
	}()

	uiErr := show(events)
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
