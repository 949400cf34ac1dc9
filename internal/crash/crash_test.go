package crash

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"xcrt/internal/observ"
	"xcrt/internal/rt"
	"xcrt/internal/version"
)

func sampleError() *rt.Error {
	return &rt.Error{
		Code:    rt.CodeOutOfBounds,
		Message: "index 9 out of bounds for length 3",
		Trace: []rt.Frame{
			{File: "bounds.xc", Line: 1, Routine: "main"},
			{File: "bounds.xc", Line: 4, Routine: "pick"},
		},
		Traced: true,
	}
}

func TestWriteRead(t *testing.T) {
	dir := t.TempDir()
	rep := FromError("bounds", []string{"9"}, sampleError())
	rep.Heap = rt.HeapStats{Allocs: 4, Frees: 2, Live: 2}
	rep.Timings = observ.Report{TotalMS: 1.5, Phases: []observ.PhaseReport{{Name: "main", DurationMS: 1.5}}}
	rep.SetStdout("partial\n")

	path, err := Write(dir, rep)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, Ext))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "bounds-"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file renamed away")

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "IndexError", got.Label)
	assert.Equal(t, version.Version, got.Version)
	assert.NotEmpty(t, got.Version)
	assert.Equal(t, rep.Trace, got.Trace)
	assert.Equal(t, rep.Heap, got.Heap)
	assert.Equal(t, "partial\n", got.Stdout)
	assert.True(t, rep.Time.Equal(got.Time))

	e := got.Err()
	assert.Equal(t, sampleError().Report(), e.Report())
}

func TestSetStdoutKeepsTail(t *testing.T) {
	rep := &Report{}
	rep.SetStdout(strings.Repeat("a", maxStdout) + "tail")
	assert.Len(t, rep.Stdout, maxStdout)
	assert.True(t, strings.HasSuffix(rep.Stdout, "tail"))
}

func TestReadRejectsOtherSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old"+Ext)
	data, err := msgpack.Marshal(&Report{Schema: 99})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	_, err = Read(path)
	assert.True(t, errors.Is(err, ErrSchema))

	_, err = Read(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
