// Package rt is the object and value runtime that generated xc programs link
// against: counted handles over heap objects, a tagged primitive/pointer value,
// operator capabilities, builtin String/Vector/Tuple types and the explicit
// call trace used for fatal error reports.
package rt

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Code identifies the kind of fatal runtime error.
type Code int

// Stable error codes - do not change values.
const (
	CodeNullDeref    Code = 2001 // RT2001: dereference of a null handle
	CodeTypeMismatch Code = 2002 // RT2002: variant kind or cast mismatch
	CodeOutOfBounds  Code = 2003 // RT2003: container index out of range
	CodeUseAfterFree Code = 2004 // RT2004: handle used after its object was torn down
	CodeDoubleFree   Code = 2005 // RT2005: release of an object that is not live
	CodeAssertion    Code = 2006 // RT2006: assert() failed
	CodeUnsupported  Code = 2007 // RT2007: operation not provided by the operand type
	CodeDivideByZero Code = 2008 // RT2008: integer division or modulo by zero
	CodeUser         Code = 2009 // RT2009: err() raised by the program
	CodeIO           Code = 2010 // RT2010: file could not be opened
	CodeHeapLeak     Code = 2011 // RT2011: objects still alive after a clean exit
	CodeInternal     Code = 2999 // RT2999: call-stack misuse or a foreign Go panic
)

// String returns the code as "RT2001" format.
func (c Code) String() string {
	return fmt.Sprintf("RT%d", c)
}

// Label is the exception-style name printed in front of the message.
func (c Code) Label() string {
	switch c {
	case CodeNullDeref:
		return "NullReferenceError"
	case CodeTypeMismatch:
		return "TypeError"
	case CodeOutOfBounds:
		return "IndexError"
	case CodeUseAfterFree:
		return "UseAfterFreeError"
	case CodeDoubleFree:
		return "DoubleFreeError"
	case CodeAssertion:
		return "AssertionError"
	case CodeUnsupported:
		return "UnsupportedOperationError"
	case CodeDivideByZero:
		return "ZeroDivisionError"
	case CodeUser:
		return "Error"
	case CodeIO:
		return "IOError"
	case CodeHeapLeak:
		return "LeakError"
	default:
		return "InternalError"
	}
}

// Error is a fatal runtime error. It travels as a panic value from the point
// of failure to the nearest Catch.
type Error struct {
	Code    Code
	Message string
	Trace   []Frame // frames open when the error was raised, entry order
	Traced  bool    // Trace has been captured (it may legitimately be empty)
	GoStack []byte  // set when the error wraps a foreign Go panic
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.Label(), e.Message)
}

// Report renders the traceback followed by the labelled message, the text
// the driver prints before exiting.
func (e *Error) Report() string {
	var sb strings.Builder
	writeTraceback(&sb, e.Trace)
	sb.WriteString(e.Error())
	sb.WriteString("\n")
	return sb.String()
}

// Format supports %+v, which appends the Go stack of a wrapped panic.
func (e *Error) Format(f fmt.State, c rune) {
	switch {
	case c == 'v' && f.Flag('+'):
		fmt.Fprint(f, e.Report())
		if len(e.GoStack) > 0 {
			fmt.Fprintf(f, "go stack:\n%s", e.GoStack)
		}
	case c == 's' || c == 'v':
		fmt.Fprint(f, e.Error())
	default:
		fmt.Fprintf(f, "%%!%c(*rt.Error=%s)", c, e.Error())
	}
}

func newError(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// fatalf raises a fatal error. The call trace is attached on the way out by
// the innermost CallStack guard.
func fatalf(code Code, format string, args ...any) {
	panic(newError(code, fmt.Sprintf(format, args...)))
}

func typeMismatch(expected, got string) {
	fatalf(CodeTypeMismatch, "expected %s, got %s", expected, got)
}

func outOfBounds(index Int, length int) {
	fatalf(CodeOutOfBounds, "index %d out of bounds for length %d", index, length)
}

func unsupported(op, typ string) {
	fatalf(CodeUnsupported, "unsupported operation %s on %s", op, typ)
}

// asError converts a recovered panic value into a runtime error.
func asError(r any) *Error {
	switch v := r.(type) {
	case *Error:
		return v
	case error:
		return &Error{Code: CodeInternal, Message: v.Error(), GoStack: debug.Stack()}
	default:
		return &Error{Code: CodeInternal, Message: fmt.Sprint(v), GoStack: debug.Stack()}
	}
}

// Catch runs fn and returns the fatal error that aborted it, or nil.
// It is the recovery boundary for runtime errors: generated code never
// resumes after a fatal error, only the driver observes it. Foreign Go panics
// are converted too, keeping their stack.
func Catch(fn func()) (err *Error) {
	defer func() {
		if r := recover(); r != nil {
			err = asError(r)
		}
	}()
	fn()
	return nil
}

// IsFatal reports whether err is a runtime fatal error with the given code.
func IsFatal(err error, code Code) bool {
	e, ok := err.(*Error)
	return ok && e.Code == code
}
