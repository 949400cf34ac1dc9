package trace

import "fmt"

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff   Level = iota // no tracing
	LevelError              // only emit on fatal errors
	LevelCall               // driver + traced calls
	LevelHeap               // calls + heap events
	LevelDebug              // everything including operator dispatch
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelCall:
		return "call"
	case LevelHeap:
		return "heap"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "off", "OFF", "":
		return LevelOff, nil
	case "error", "ERROR":
		return LevelError, nil
	case "call", "CALL":
		return LevelCall, nil
	case "heap", "HEAP":
		return LevelHeap, nil
	case "debug", "DEBUG":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|call|heap|debug)", s)
	}
}

// ShouldEmit returns true if the given scope should emit at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelOff:
		return false
	case LevelError:
		return false // ring contents are dumped via the crash path
	case LevelCall:
		return scope <= ScopeCall
	case LevelHeap:
		return scope <= ScopeHeap
	case LevelDebug:
		return true
	}
	return false
}
