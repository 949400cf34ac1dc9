package selftest

import "time"

// Stage identifies the part of a case being worked on.
type Stage string

const (
	// StageRun is the program run.
	StageRun Stage = "run"
	// StageCheck is the comparison against the recorded outcome.
	StageCheck Stage = "check"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the case is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the case is currently running.
	StatusWorking Status = "working"
	// StatusDone indicates the case passed.
	StatusDone Status = "done"
	// StatusError indicates the case failed.
	StatusError Status = "error"
)

// Event reports progress for a case (or for the whole suite when Case is
// empty).
type Event struct {
	Case    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events to a channel.
type ChannelSink struct {
	Ch chan<- Event
}

// OnEvent implements ProgressSink.
func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch != nil {
		s.Ch <- ev
	}
}

// nopSink drops events.
type nopSink struct{}

func (nopSink) OnEvent(Event) {}
