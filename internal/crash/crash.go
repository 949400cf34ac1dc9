// Package crash writes and reads crash reports: the msgpack record of a run
// that ended in a fatal runtime error.
package crash

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"xcrt/internal/observ"
	"xcrt/internal/rt"
	"xcrt/internal/version"
)

// Current schema version - increment when Report format changes.
const schemaVersion uint16 = 1

// Ext is the file extension of crash reports.
const Ext = ".xcrash"

// Report is the persisted form of a fatal run.
type Report struct {
	Schema  uint16    `msgpack:"schema"`
	Program string    `msgpack:"program"`
	Args    []string  `msgpack:"args"`
	Time    time.Time `msgpack:"time"`
	Version string    `msgpack:"version"`

	Code    int        `msgpack:"code"`
	Label   string     `msgpack:"label"`
	Message string     `msgpack:"message"`
	Trace   []rt.Frame `msgpack:"trace"`
	GoStack string     `msgpack:"go_stack,omitempty"`

	Heap    rt.HeapStats  `msgpack:"heap"`
	Timings observ.Report `msgpack:"timings"`

	// Stdout is the program output produced before the failure, truncated.
	Stdout string `msgpack:"stdout,omitempty"`
}

// maxStdout bounds the output captured in a report.
const maxStdout = 64 << 10

// FromError builds a report for err raised while running program.
func FromError(program string, args []string, err *rt.Error) *Report {
	r := &Report{
		Schema:  schemaVersion,
		Program: program,
		Args:    args,
		Time:    time.Now().UTC(),
		Version: version.Version,
		Code:    int(err.Code),
		Label:   err.Code.Label(),
		Message: err.Message,
		Trace:   err.Trace,
	}
	if len(err.GoStack) > 0 {
		r.GoStack = string(err.GoStack)
	}
	return r
}

// SetStdout records output, keeping the tail when it is too long.
func (r *Report) SetStdout(out string) {
	if len(out) > maxStdout {
		out = out[len(out)-maxStdout:]
	}
	r.Stdout = out
}

// Err reconstructs the runtime error the report was made from.
func (r *Report) Err() *rt.Error {
	return &rt.Error{
		Code:    rt.Code(r.Code),
		Message: r.Message,
		Trace:   r.Trace,
		Traced:  true,
		GoStack: []byte(r.GoStack),
	}
}

// Write stores r in dir under a timestamped name and returns the path. The
// file appears atomically.
func Write(dir string, r *Report) (path string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("crash: create %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return "", fmt.Errorf("crash: %w", err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err = enc.Encode(r); err != nil {
		return "", fmt.Errorf("crash: encode: %w", err)
	}
	if err = f.Close(); err != nil {
		return "", fmt.Errorf("crash: %w", err)
	}
	name := fmt.Sprintf("%s-%s%s", r.Program, r.Time.Format("20060102T150405.000000000"), Ext)
	path = filepath.Join(dir, name)
	if err = os.Rename(f.Name(), path); err != nil {
		return "", fmt.Errorf("crash: %w", err)
	}
	return path, nil
}

// ErrSchema is returned for reports written by an incompatible version.
var ErrSchema = errors.New("crash: unsupported report schema")

// Read decodes the report at path.
func Read(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("crash: %w", err)
	}
	defer f.Close()

	var r Report
	if err := msgpack.NewDecoder(f).Decode(&r); err != nil {
		return nil, fmt.Errorf("crash: decode %s: %w", path, err)
	}
	if r.Schema != schemaVersion {
		return nil, fmt.Errorf("%w: %d (want %d)", ErrSchema, r.Schema, schemaVersion)
	}
	return &r, nil
}
