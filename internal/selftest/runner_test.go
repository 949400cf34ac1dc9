package selftest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xcrt/internal/driver"
	"xcrt/internal/rt"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func upper(env *rt.Env) {
	env.Calls.Call("upper.xc", 1, "main", func() {
		line := env.Input()
		defer line.Clear()
		env.Print(strings.ToUpper(line.Get().Value()))
	})
}

func assertPositive(env *rt.Env) {
	env.Calls.Call("pos.xc", 1, "main", func() {
		n := env.Args.Get().Size() - 1
		env.Calls.AssertMsg(n > 0, rt.MakeInt(n))
		env.Print(rt.MakeInt(n))
	})
}

func testPrograms() []*driver.Program {
	return []*driver.Program{
		{
			Name: "upper",
			Main: upper,
			Cases: []driver.Case{
				{Name: "hello", Stdin: "hello\n", Stdout: "HELLO\n"},
				{Name: "wrong", Stdin: "x\n", Stdout: "x\n"},
			},
		},
		{
			Name: "pos",
			Main: assertPositive,
			Cases: []driver.Case{
				{Name: "two", Args: []string{"a", "b"}, Stdout: "2\n"},
				{Name: "none", ExitCode: 1, Fatal: rt.CodeAssertion},
			},
		},
	}
}

func TestRunInProcess(t *testing.T) {
	progs := testPrograms()
	sink := &recordingSink{}
	results, err := Run(context.Background(), progs, Options{Sink: sink, Jobs: 8})
	require.NoError(t, err)
	require.Len(t, results, 4)

	byID := make(map[string]CaseResult, len(results))
	for _, r := range results {
		byID[r.ID] = r
	}
	assert.NoError(t, byID["upper/hello"].Err)
	assert.NoError(t, byID["pos/two"].Err)
	assert.NoError(t, byID["pos/none"].Err)
	require.Error(t, byID["upper/wrong"].Err)
	assert.Contains(t, byID["upper/wrong"].Err.Error(), `got "X", want "x"`)
	assert.Contains(t, byID["pos/none"].Outcome.Stderr, "AssertionError: assertion failed: 0")

	passed, failed := Summary(results)
	assert.Equal(t, 3, passed)
	assert.Equal(t, 1, failed)

	final := map[string]Status{}
	for _, ev := range sink.events {
		final[ev.Case] = ev.Status
	}
	ids := IDs(progs)
	sort.Strings(ids)
	assert.Equal(t, []string{"pos/none", "pos/two", "upper/hello", "upper/wrong"}, ids)
	assert.Equal(t, StatusError, final["upper/wrong"])
	assert.Equal(t, StatusDone, final["upper/hello"])
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, testPrograms(), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunEmpty(t *testing.T) {
	results, err := Run(context.Background(), nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestChannelSink(t *testing.T) {
	ch := make(chan Event, 1)
	ChannelSink{Ch: ch}.OnEvent(Event{Case: "a/b", Status: StatusDone})
	assert.Equal(t, "a/b", (<-ch).Case)
	ChannelSink{}.OnEvent(Event{})
}
