package rt

import (
	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"

	"xcrt/internal/trace"
)

// Env is what a generated program sees of its process: ARGS, the standard
// streams and the call trace. Objects it creates bind to the current heap, so
// create it after UseHeap.
type Env struct {
	Args   Ptr[*Vector[Ptr[*String]]]
	Stdout Ptr[*Writer]
	Stderr Ptr[*Writer]
	Stdin  Ptr[*Reader]
	Calls  *CallStack

	host Host
}

// NewEnv builds the program environment for host. Call spans go to tr.
func NewEnv(host Host, tr trace.Tracer) *Env {
	args := NewVector[Ptr[*String]]()
	for _, a := range host.Args() {
		s := StringOf(norm.NFC.String(a))
		args.Push(s)
		s.Clear()
	}
	return &Env{
		Args:   New(args),
		Stdout: New(NewWriter("<stdout>", host.Stdout())),
		Stderr: New(NewWriter("<stderr>", host.Stderr())),
		Stdin:  New(NewReader("<stdin>", host.Stdin())),
		Calls:  NewCallStack(tr),
		host:   host,
	}
}

// Host returns the host the environment was built for.
func (e *Env) Host() Host { return e.host }

// Print is the print() builtin.
func (e *Env) Print(x any) {
	e.Stdout.Get().Print(x)
}

// Input is the input() builtin.
func (e *Env) Input() Ptr[*String] {
	return e.Stdin.Get().Input()
}

// Exit records the exit status. The program is expected to return afterwards.
// A status outside [0, 255] is a fatal IndexError.
func (e *Env) Exit(code Int) {
	status, err := safecast.Conv[uint8](code)
	if err != nil {
		fatalf(CodeOutOfBounds, "exit status %d out of range [0, 255]", code)
	}
	e.host.Exit(int(status))
}

// Flush flushes the output streams.
func (e *Env) Flush() {
	if !e.Stdout.IsNil() {
		e.Stdout.Get().Flush()
	}
	if !e.Stderr.IsNil() {
		e.Stderr.Get().Flush()
	}
}

// Release drops every handle the environment holds. Output is flushed by the
// writers' teardown.
func (e *Env) Release() {
	e.Args.Clear()
	e.Stdout.Clear()
	e.Stderr.Clear()
	e.Stdin.Clear()
}
