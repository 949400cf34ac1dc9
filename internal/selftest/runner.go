// Package selftest replays the recorded cases of every registered program and
// checks their output, exit status and fatal error kind.
package selftest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"xcrt/internal/driver"
	"xcrt/internal/rt"
	"xcrt/internal/testkit"
)

// Options configures a selftest run.
type Options struct {
	// Exe is the xcrt binary used to run each case in its own process. Empty
	// runs cases in-process, one at a time: the runtime heap is process-wide.
	Exe string
	// Jobs bounds concurrent subprocesses; 0 means GOMAXPROCS.
	Jobs int
	// Timeout bounds a single subprocess case; 0 means no limit.
	Timeout time.Duration
	// Sink receives progress events.
	Sink ProgressSink
}

// CaseResult is the verdict for one case.
type CaseResult struct {
	ID      string
	Outcome testkit.Outcome
	Err     error
	Elapsed time.Duration
}

// Passed reports whether the case matched its recording.
func (r CaseResult) Passed() bool { return r.Err == nil }

type job struct {
	id   string
	prog *driver.Program
	c    driver.Case
}

// CaseID names a case as program/case.
func CaseID(p *driver.Program, c driver.Case) string {
	return p.Name + "/" + c.Name
}

// IDs lists the case ids of progs in run order.
func IDs(progs []*driver.Program) []string {
	var out []string
	for _, p := range progs {
		for _, c := range p.Cases {
			out = append(out, CaseID(p, c))
		}
	}
	return out
}

// Run executes every case of progs. Case failures are reported in the
// results; the error return is for cancellation.
func Run(ctx context.Context, progs []*driver.Program, opts Options) ([]CaseResult, error) {
	sink := opts.Sink
	if sink == nil {
		sink = nopSink{}
	}
	var jobs []job
	for _, p := range progs {
		for _, c := range p.Cases {
			jobs = append(jobs, job{id: CaseID(p, c), prog: p, c: c})
		}
	}
	results := make([]CaseResult, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}
	for _, j := range jobs {
		sink.OnEvent(Event{Case: j.id, Stage: StageRun, Status: StatusQueued})
	}

	limit := opts.Jobs
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	if opts.Exe == "" {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(limit, len(jobs)))

	for i, j := range jobs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			start := time.Now()
			sink.OnEvent(Event{Case: j.id, Stage: StageRun, Status: StatusWorking})
			var (
				out testkit.Outcome
				err error
			)
			if opts.Exe == "" {
				out, err = runInProcess(gctx, j)
			} else {
				out, err = runSubprocess(gctx, opts.Exe, opts.Timeout, j)
			}
			if err == nil {
				sink.OnEvent(Event{Case: j.id, Stage: StageCheck, Status: StatusWorking})
				err = testkit.CheckCase(j.c, out)
			}

			elapsed := time.Since(start)
			results[i] = CaseResult{ID: j.id, Outcome: out, Err: err, Elapsed: elapsed}
			status := StatusDone
			if err != nil {
				status = StatusError
			}
			sink.OnEvent(Event{Case: j.id, Stage: StageCheck, Status: status, Err: err, Elapsed: elapsed})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func runInProcess(ctx context.Context, j job) (testkit.Outcome, error) {
	argv := append([]string{j.prog.Name}, j.c.Args...)
	host := rt.NewTestHost(argv, j.c.Stdin)
	res, err := driver.Run(ctx, j.prog, driver.Options{
		Args:       j.c.Args,
		Host:       host,
		CheckLeaks: true,
	})
	if err != nil {
		return testkit.Outcome{}, err
	}
	return testkit.Outcome{
		Stdout:   host.Out.String(),
		Stderr:   host.Err.String(),
		ExitCode: res.ExitCode,
	}, nil
}

func runSubprocess(ctx context.Context, exe string, timeout time.Duration, j job) (testkit.Outcome, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	args := []string{"run", "--color=off", "--trace-level=off", "--check-leaks", "--crash-dir=", j.prog.Name, "--"}
	args = append(args, j.c.Args...)
	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Stdin = strings.NewReader(j.c.Stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	out := testkit.Outcome{}
	err := cmd.Run()
	out.Stdout = stdout.String()
	out.Stderr = stderr.String()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case ctx.Err() != nil:
		return out, fmt.Errorf("%s: %w", j.id, ctx.Err())
	case errors.As(err, &exitErr):
		out.ExitCode = exitErr.ExitCode()
	default:
		return out, fmt.Errorf("%s: %w", j.id, err)
	}
	return out, nil
}

// Summary counts passes and failures.
func Summary(results []CaseResult) (passed, failed int) {
	for _, r := range results {
		if r.ID == "" {
			continue
		}
		if r.Passed() {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}
