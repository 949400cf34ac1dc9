// Package driver runs registered xc programs against the runtime: it binds a
// fresh heap, builds the program environment, recovers fatal errors at the top
// level and turns them into a report, an exit status and optionally a crash
// file.
package driver

import (
	"context"
	"fmt"
	"io"

	"xcrt/internal/crash"
	"xcrt/internal/observ"
	"xcrt/internal/rt"
	"xcrt/internal/trace"
)

// Options configures one run.
type Options struct {
	// Args are the program arguments, without the program name.
	Args []string
	// Host supplies streams; nil means the process's own.
	Host rt.Host
	// CheckLeaks fails a clean run that leaves objects alive.
	CheckLeaks bool
	// CrashDir, when set, receives a crash report for every fatal run.
	CrashDir string
	// Color enables coloured fatal reports.
	Color bool
	// Timer collects phase timings; nil uses a private timer.
	Timer *observ.Timer
}

// Result describes a finished run.
type Result struct {
	ExitCode  int
	Err       *rt.Error
	Heap      rt.HeapStats
	Timings   observ.Report
	CrashPath string
}

// Run executes prog. Fatal runtime errors are not returned as errors: they
// are reported on the host's stderr and reflected in Result. The error return
// is for failures of the driver itself, such as an unwritable crash report.
func Run(ctx context.Context, prog *Program, opts Options) (Result, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeDriver, "run:"+prog.Name, 0)

	host := opts.Host
	if host == nil {
		host = rt.NewOSHost(prog.Name, opts.Args)
	}
	var capture *tailBuffer
	if opts.CrashDir != "" {
		capture = newTailBuffer(crashStdoutLimit)
		host = &teeHost{Host: host, out: io.MultiWriter(host.Stdout(), capture)}
	}
	timer := opts.Timer
	if timer == nil {
		timer = observ.NewTimer()
	}

	heap := rt.NewHeap(tr)
	restore := rt.UseHeap(heap)
	defer restore()

	phase := timer.Begin("setup")
	env := rt.NewEnv(host, tr)
	timer.End(phase, "")

	phase = timer.Begin("main")
	fatal := rt.Catch(func() { prog.Main(env) })
	if fatal == nil {
		fatal = rt.Catch(env.Flush)
	}
	timer.End(phase, "")

	phase = timer.Begin("teardown")
	if err := rt.Catch(env.Release); err != nil && fatal == nil {
		fatal = err
	}
	timer.End(phase, "")

	if fatal == nil && opts.CheckLeaks {
		phase = timer.Begin("leak check")
		if err := heap.CheckLeaks(); err != nil {
			fatal = err.(*rt.Error)
		}
		timer.End(phase, fmt.Sprintf("%d live", heap.Live()))
	}

	res := Result{
		Err:     fatal,
		Heap:    heap.Stats(),
		Timings: timer.Report(),
	}
	switch {
	case fatal != nil:
		res.ExitCode = 1
	case host.Exited():
		res.ExitCode = host.ExitCode()
	}

	if fatal == nil {
		span.WithExtra("exit", fmt.Sprint(res.ExitCode)).End("ok")
		return res, nil
	}

	pal := NewPalette(opts.Color)
	stderr := host.Stderr()
	fmt.Fprint(stderr, FormatReport(fatal, pal))
	span.WithExtra("code", fatal.Code.String()).End(fatal.Code.Label())

	if opts.CrashDir != "" {
		rep := crash.FromError(prog.Name, opts.Args, fatal)
		rep.Heap = res.Heap
		rep.Timings = res.Timings
		rep.SetStdout(capture.String())
		path, err := crash.Write(opts.CrashDir, rep)
		if err != nil {
			return res, fmt.Errorf("run %s: %w", prog.Name, err)
		}
		res.CrashPath = path
		fmt.Fprintln(stderr, pal.Note("crash report written to "+path))
	}
	return res, nil
}

// crashStdoutLimit bounds the output kept for a crash report.
const crashStdoutLimit = 64 << 10

// teeHost copies program output into a capture buffer.
type teeHost struct {
	rt.Host
	out io.Writer
}

func (h *teeHost) Stdout() io.Writer { return h.out }

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	buf   []byte
	limit int
}

func newTailBuffer(limit int) *tailBuffer {
	return &tailBuffer{buf: make([]byte, 0, 1024), limit: limit}
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	if over := len(b.buf) - b.limit; over > 0 {
		b.buf = append(b.buf[:0], b.buf[over:]...)
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	if b == nil {
		return ""
	}
	return string(b.buf)
}
