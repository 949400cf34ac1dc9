package rt

import (
	"fmt"
	"strconv"
	"strings"

	"xcrt/internal/trace"
)

// Frame is one entry of the call trace: the source location of a call and the
// routine it entered.
type Frame struct {
	File    string `json:"file" msgpack:"file"`
	Line    int    `json:"line" msgpack:"line"`
	Routine string `json:"routine" msgpack:"routine"`
}

// String renders the frame the way the traceback does, without indentation.
func (f Frame) String() string {
	return fmt.Sprintf("File \"%s\", line %d, in %s", f.File, f.Line, f.Routine)
}

const tracebackHeader = "Traceback (most recent call last):"

func writeTraceback(sb *strings.Builder, frames []Frame) {
	sb.WriteString(tracebackHeader)
	sb.WriteByte('\n')
	for _, f := range frames {
		sb.WriteString("  ")
		sb.WriteString(f.String())
		sb.WriteByte('\n')
	}
}

// CallStack is the explicit call trace maintained by generated code. Each
// instrumented call pushes a frame on entry and pops it on every exit path.
// A CallStack belongs to one run and one goroutine.
type CallStack struct {
	frames []Frame
	spans  []*trace.Span
	tracer trace.Tracer
}

// NewCallStack creates an empty stack that mirrors frames as call spans on tr.
func NewCallStack(tr trace.Tracer) *CallStack {
	if tr == nil {
		tr = trace.Nop
	}
	return &CallStack{
		frames: make([]Frame, 0, 32),
		tracer: tr,
	}
}

// Push records entry into routine from file:line.
func (cs *CallStack) Push(file string, line int, routine string) {
	cs.frames = append(cs.frames, Frame{File: file, Line: line, Routine: routine})
	var parent uint64
	if n := len(cs.spans); n > 0 {
		parent = cs.spans[n-1].ID()
	}
	detail := file + ":" + strconv.Itoa(line)
	cs.spans = append(cs.spans, trace.BeginDetail(cs.tracer, trace.ScopeCall, routine, detail, parent))
}

// Pop removes the most recent frame. Popping an empty stack is a fatal
// InternalError: it means generated code is unbalanced.
func (cs *CallStack) Pop() {
	n := len(cs.frames)
	if n == 0 {
		fatalf(CodeInternal, "call trace underflow: pop with no open frame")
	}
	cs.frames = cs.frames[:n-1]
	sp := cs.spans[n-1]
	cs.spans[n-1] = nil
	cs.spans = cs.spans[:n-1]
	sp.End("")
}

// Depth returns the number of open frames.
func (cs *CallStack) Depth() int {
	return len(cs.frames)
}

// Frames returns a copy of the open frames in entry order.
func (cs *CallStack) Frames() []Frame {
	out := make([]Frame, len(cs.frames))
	copy(out, cs.frames)
	return out
}

// Render formats the open frames as a traceback, most recent call last.
func (cs *CallStack) Render() string {
	var sb strings.Builder
	writeTraceback(&sb, cs.frames)
	return sb.String()
}

// Text returns the rendered traceback as a String object.
func (cs *CallStack) Text() Ptr[*String] {
	return New(NewString(cs.Render()))
}

// Call runs fn inside a frame. The frame is popped however fn exits; a fatal
// error passing through gets the open frames attached if nothing deeper did.
func (cs *CallStack) Call(file string, line int, routine string, fn func()) {
	cs.Push(file, line, routine)
	defer cs.exit()
	fn()
}

// Invoke is Call for routines that return a value.
func Invoke[R any](cs *CallStack, file string, line int, routine string, fn func() R) R {
	cs.Push(file, line, routine)
	defer cs.exit()
	return fn()
}

func (cs *CallStack) exit() {
	if r := recover(); r != nil {
		e := asError(r)
		cs.attach(e)
		cs.Pop()
		panic(e)
	}
	cs.Pop()
}

func (cs *CallStack) attach(e *Error) {
	if e.Traced {
		return
	}
	e.Trace = cs.Frames()
	e.Traced = true
}

// Raise aborts the program with a fatal error of the given code, capturing
// the current trace.
func (cs *CallStack) Raise(code Code, msg string) {
	e := newError(code, msg)
	cs.attach(e)
	panic(e)
}

// Fatal aborts the program with a user error carrying msg.
func (cs *CallStack) Fatal(msg string) {
	cs.Raise(CodeUser, msg)
}

// Fail is the err() builtin: abort with msg.
func (cs *CallStack) Fail(msg Ptr[*String]) {
	cs.Raise(CodeUser, msg.Get().Value())
}

// Assert aborts with an AssertionError when cond is false.
func (cs *CallStack) Assert(cond Bool) {
	if !cond {
		cs.Raise(CodeAssertion, "assertion failed")
	}
}

// AssertMsg is Assert with a diagnostic value appended to the message.
func (cs *CallStack) AssertMsg(cond Bool, diag any) {
	if !cond {
		cs.Raise(CodeAssertion, "assertion failed: "+Repr(diag))
	}
}
