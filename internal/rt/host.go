package rt

import (
	"bytes"
	"io"
	"os"
	"strings"
)

// Host provides the process facilities a program runs against.
type Host interface {
	// Args returns the program arguments, program name first.
	Args() []string

	Stdin() io.Reader
	Stdout() io.Writer
	Stderr() io.Writer

	// Exit records the status the program asked to terminate with.
	Exit(code int)

	// ExitCode returns the code set by Exit, or -1 if not set.
	ExitCode() int

	// Exited returns true if Exit was called.
	Exited() bool
}

// OSHost implements Host using the process's standard streams.
type OSHost struct {
	args     []string
	exitCode int
	exited   bool
}

// NewOSHost creates a host with the given arguments; name is reported as the
// first argument.
func NewOSHost(name string, args []string) *OSHost {
	argv := make([]string, 0, len(args)+1)
	argv = append(argv, name)
	argv = append(argv, args...)
	return &OSHost{args: argv, exitCode: -1}
}

func (h *OSHost) Args() []string    { return h.args }
func (h *OSHost) Stdin() io.Reader  { return os.Stdin }
func (h *OSHost) Stdout() io.Writer { return os.Stdout }
func (h *OSHost) Stderr() io.Writer { return os.Stderr }

func (h *OSHost) Exit(code int) {
	h.exitCode = code
	h.exited = true
}

func (h *OSHost) ExitCode() int { return h.exitCode }
func (h *OSHost) Exited() bool  { return h.exited }

// TestHost implements Host with in-memory streams for testing.
type TestHost struct {
	args     []string
	stdin    *strings.Reader
	Out      bytes.Buffer
	Err      bytes.Buffer
	exitCode int
	exited   bool
}

// NewTestHost creates a test host with controlled arguments and input.
func NewTestHost(args []string, stdin string) *TestHost {
	return &TestHost{
		args:     args,
		stdin:    strings.NewReader(stdin),
		exitCode: -1,
	}
}

func (h *TestHost) Args() []string    { return h.args }
func (h *TestHost) Stdin() io.Reader  { return h.stdin }
func (h *TestHost) Stdout() io.Writer { return &h.Out }
func (h *TestHost) Stderr() io.Writer { return &h.Err }

func (h *TestHost) Exit(code int) {
	h.exitCode = code
	h.exited = true
}

func (h *TestHost) ExitCode() int { return h.exitCode }
func (h *TestHost) Exited() bool  { return h.exited }
