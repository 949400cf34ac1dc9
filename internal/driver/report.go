package driver

import (
	"strings"

	"github.com/fatih/color"

	"xcrt/internal/rt"
)

// Palette colours a fatal report.
type Palette struct {
	header *color.Color
	frame  *color.Color
	label  *color.Color
	note   *color.Color
}

// NewPalette returns the report colours, disabled when enabled is false.
func NewPalette(enabled bool) *Palette {
	p := &Palette{
		header: color.New(color.Faint),
		frame:  color.New(color.FgCyan),
		label:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.header, p.frame, p.label, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// FormatReport renders err the way a terminated program prints it: the
// traceback in entry order, then "Label: message".
func FormatReport(err *rt.Error, p *Palette) string {
	if p == nil {
		p = NewPalette(false)
	}
	var sb strings.Builder
	sb.WriteString(p.header.Sprint("Traceback (most recent call last):"))
	sb.WriteByte('\n')
	for _, f := range err.Trace {
		sb.WriteString("  ")
		sb.WriteString(p.frame.Sprint(f.String()))
		sb.WriteByte('\n')
	}
	sb.WriteString(p.label.Sprint(err.Code.Label()))
	sb.WriteString(": ")
	sb.WriteString(err.Message)
	sb.WriteByte('\n')
	return sb.String()
}

// Note renders a driver remark such as the crash report location.
func (p *Palette) Note(s string) string {
	return p.note.Sprint(s)
}
