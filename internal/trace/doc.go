// Package trace provides runtime event tracing for xcrt programs.
//
// Tracing records call spans pushed by generated code, heap allocation and
// release points, and driver-level phases. It is the diagnostic log of the
// runtime: off by default and zero-cost when disabled.
//
// # Usage
//
//	xcrt run --trace=- --trace-level=call vectors
//
// # Tracers
//
//   - Nop: disabled tracing
//   - StreamTracer: immediate write to a file or stderr
//   - RingTracer: last N events in memory, dumped after a fatal error
//   - MultiTracer: fan-out to several tracers
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: only ring dumps after a fatal error
//   - LevelCall: driver phases and traced calls
//   - LevelHeap: calls plus object alloc/free
//   - LevelDebug: everything
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeDriver, "run", 0)
//	defer span.End("")
package trace
