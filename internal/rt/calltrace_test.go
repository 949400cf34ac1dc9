package rt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xcrt/internal/trace"
)

func TestCallStackPushPop(t *testing.T) {
	cs := NewCallStack(nil)
	cs.Push("main.xc", 1, "main")
	cs.Push("main.xc", 7, "helper")
	cs.Push("lib.xc", 12, "leaf")
	cs.Pop()

	want := "Traceback (most recent call last):\n" +
		"  File \"main.xc\", line 1, in main\n" +
		"  File \"main.xc\", line 7, in helper\n"
	assert.Equal(t, want, cs.Render())
	assert.Equal(t, 2, cs.Depth())

	cs.Pop()
	cs.Pop()
	assert.Equal(t, 0, cs.Depth())
	assert.Equal(t, "Traceback (most recent call last):\n", cs.Render())

	err := requireFatal(t, CodeInternal, cs.Pop)
	assert.Contains(t, err.Message, "underflow")
}

func TestCallPopsOnEveryExit(t *testing.T) {
	cs := NewCallStack(nil)
	cs.Call("a.xc", 1, "ok", func() {
		assert.Equal(t, 1, cs.Depth())
	})
	assert.Equal(t, 0, cs.Depth())

	n := Invoke(cs, "a.xc", 2, "value", func() Int { return 42 })
	assert.Equal(t, Int(42), n)
	assert.Equal(t, 0, cs.Depth())

	err := Catch(func() {
		cs.Call("a.xc", 3, "outer", func() {
			cs.Call("a.xc", 4, "inner", func() {
				var v Ptr[*String]
				v.Get()
			})
		})
	})
	require.NotNil(t, err)
	assert.Equal(t, 0, cs.Depth())
	assert.True(t, err.Traced)
	assert.Equal(t, []Frame{
		{File: "a.xc", Line: 3, Routine: "outer"},
		{File: "a.xc", Line: 4, Routine: "inner"},
	}, err.Trace, "innermost guard captures the full trace")
}

func TestRaiseCapturesTrace(t *testing.T) {
	cs := NewCallStack(nil)
	err := Catch(func() {
		cs.Call("m.xc", 10, "main", func() {
			cs.Call("m.xc", 20, "check", func() {
				cs.AssertMsg(false, StringOf("bad state"))
			})
		})
	})
	require.NotNil(t, err)
	assert.Equal(t, CodeAssertion, err.Code)
	assert.Equal(t, "Traceback (most recent call last):\n"+
		"  File \"m.xc\", line 10, in main\n"+
		"  File \"m.xc\", line 20, in check\n"+
		"AssertionError: assertion failed: \"bad state\"\n", err.Report())

	err = Catch(func() { cs.Assert(false) })
	require.NotNil(t, err)
	assert.Equal(t, "AssertionError: assertion failed", err.Error())
	assert.Empty(t, err.Trace)

	assert.Nil(t, Catch(func() { cs.Assert(true) }))
}

func TestFailAndText(t *testing.T) {
	freshHeap(t)
	cs := NewCallStack(nil)
	cs.Push("t.xc", 3, "main")
	text := cs.Text()
	assert.True(t, strings.HasSuffix(text.Get().Value(), "in main\n"))
	text.Clear()

	msg := StringOf("boom")
	defer msg.Clear()
	err := requireFatal(t, CodeUser, func() { cs.Fail(msg) })
	assert.Equal(t, "Error: boom", err.Error())
	assert.Len(t, err.Trace, 1)
	cs.Pop()
}

func TestCallSpansReachTracer(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelCall, trace.FormatText)
	cs := NewCallStack(tr)
	cs.Call("s.xc", 5, "main", func() {})
	require.NoError(t, tr.Flush())

	out := buf.String()
	assert.Contains(t, out, "main (s.xc:5)")
	assert.Equal(t, 2, strings.Count(out, "main"), "begin and end")
}
