package rt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvArgsAndPrint(t *testing.T) {
	h := freshHeap(t)
	host := NewTestHost([]string{"echo", "a", "cafe\u0301"}, "")
	env := NewEnv(host, nil)

	args := env.Args.Get()
	require.Equal(t, Int(3), args.Size())
	assert.Equal(t, "echo", args.At(0).Get().Value())
	assert.Equal(t, "caf\u00e9", args.At(2).Get().Value(), "argv is NFC-normalised")

	env.Print(env.Args)
	env.Print(MakeInt(7))
	env.Stdout.Get().Write("no newline")
	assert.Empty(t, host.Out.String(), "stdout is buffered until flushed")
	env.Flush()
	assert.Equal(t, "[\"echo\", \"a\", \"caf\u00e9\"]\n7\nno newline", host.Out.String())

	env.Release()
	assert.Equal(t, 0, h.Live())
}

func TestEnvInput(t *testing.T) {
	freshHeap(t)
	host := NewTestHost([]string{"cat"}, "first\r\nsecond\nlast")
	env := NewEnv(host, nil)
	defer env.Release()

	for _, want := range []string{"first", "second", "last", "", ""} {
		line := env.Input()
		assert.Equal(t, want, line.Get().Value())
		line.Clear()
	}
}

func TestEnvExit(t *testing.T) {
	freshHeap(t)
	host := NewTestHost([]string{"x"}, "")
	env := NewEnv(host, nil)
	defer env.Release()
	assert.False(t, host.Exited())
	env.Exit(3)
	assert.True(t, host.Exited())
	assert.Equal(t, 3, env.Host().ExitCode())

	env.Exit(255)
	assert.Equal(t, 255, host.ExitCode())
	env.Exit(0)
	assert.Equal(t, 0, host.ExitCode())
}

func TestEnvExitOutOfRange(t *testing.T) {
	freshHeap(t)
	for _, code := range []Int{256, -1, 1 << 32} {
		host := NewTestHost([]string{"x"}, "")
		env := NewEnv(host, nil)
		err := requireFatal(t, CodeOutOfBounds, func() { env.Exit(code) })
		assert.Contains(t, err.Message, "exit status")
		assert.False(t, host.Exited(), "status %d must not reach the host", code)
		env.Release()
	}
}

func TestFileStreams(t *testing.T) {
	h := freshHeap(t)
	path := filepath.Join(t.TempDir(), "out.txt")
	name := StringOf(path)

	w := CreateFile(name)
	w.Get().Print("hello")
	w.Get().Write(MakeFloat(1.5))
	w.Clear()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n1.5", string(data))

	r := OpenFile(name)
	first := r.Get().Input()
	rest := r.Get().Read()
	assert.Equal(t, "hello", first.Get().Value())
	assert.Equal(t, "1.5", rest.Get().Value())
	first.Clear()
	rest.Clear()
	r.Clear()

	missing := StringOf(filepath.Join(t.TempDir(), "nope", "x"))
	requireFatal(t, CodeIO, func() { OpenFile(missing) })
	requireFatal(t, CodeIO, func() { CreateFile(missing) })
	missing.Clear()
	name.Clear()
	assert.Equal(t, 0, h.Live())
}
