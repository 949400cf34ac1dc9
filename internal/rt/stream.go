package rt

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Writer is an output stream object over stdout or a created file.
type Writer struct {
	Base
	name string
	w    *bufio.Writer
	c    io.Closer // nil when the underlying stream is not owned
}

// NewWriter wraps w. The stream is flushed on teardown but not closed.
func NewWriter(name string, w io.Writer) *Writer {
	return &Writer{name: name, w: bufio.NewWriter(w)}
}

// CreateFile creates (or truncates) the named file for writing. Failure is a
// fatal IOError.
func CreateFile(name Ptr[*String]) Ptr[*Writer] {
	path := name.Get().Value()
	f, err := os.Create(path)
	if err != nil {
		fatalf(CodeIO, "cannot create %q: %v", path, err)
	}
	return New(&Writer{name: path, w: bufio.NewWriter(f), c: f})
}

// TypeName implements Named.
func (*Writer) TypeName() string { return "FileWriter" }

// Write writes Str(x) without a terminator.
func (w *Writer) Write(x any) {
	w.put(Str(x))
}

// Print writes Str(x) followed by a newline.
func (w *Writer) Print(x any) {
	w.put(Str(x))
	w.put("\n")
}

func (w *Writer) put(s string) {
	if _, err := w.w.WriteString(s); err != nil {
		fatalf(CodeIO, "write to %s: %v", w.name, err)
	}
}

// Flush pushes buffered output to the underlying stream.
func (w *Writer) Flush() {
	if err := w.w.Flush(); err != nil {
		fatalf(CodeIO, "flush %s: %v", w.name, err)
	}
}

// Str implements Stringifier.
func (w *Writer) Str() string { return "<FileWriter " + w.name + ">" }

// Teardown flushes and closes an owned file. Errors are dropped: teardown
// runs on release paths that cannot fail.
func (w *Writer) Teardown() {
	_ = w.w.Flush()
	if w.c != nil {
		_ = w.c.Close()
		w.c = nil
	}
}

// Reader is an input stream object over stdin or an opened file. Text read
// from the host is normalised to NFC.
type Reader struct {
	Base
	name string
	r    *bufio.Reader
	c    io.Closer
}

// NewReader wraps r without taking ownership of it.
func NewReader(name string, r io.Reader) *Reader {
	return &Reader{name: name, r: bufio.NewReader(r)}
}

// OpenFile opens the named file for reading. Failure is a fatal IOError.
func OpenFile(name Ptr[*String]) Ptr[*Reader] {
	path := name.Get().Value()
	f, err := os.Open(path)
	if err != nil {
		fatalf(CodeIO, "cannot open %q: %v", path, err)
	}
	return New(&Reader{name: path, r: bufio.NewReader(f), c: f})
}

// TypeName implements Named.
func (*Reader) TypeName() string { return "FileReader" }

// Input reads one line without its terminator. At end of input it returns an
// empty String.
func (r *Reader) Input() Ptr[*String] {
	line, err := r.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		fatalf(CodeIO, "read %s: %v", r.name, err)
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return StringOf(norm.NFC.String(line))
}

// Read reads everything that remains.
func (r *Reader) Read() Ptr[*String] {
	data, err := io.ReadAll(r.r)
	if err != nil {
		fatalf(CodeIO, "read %s: %v", r.name, err)
	}
	return StringOf(norm.NFC.String(string(data)))
}

// Str implements Stringifier.
func (r *Reader) Str() string { return "<FileReader " + r.name + ">" }

// Teardown closes an owned file.
func (r *Reader) Teardown() {
	if r.c != nil {
		_ = r.c.Close()
		r.c = nil
	}
}
