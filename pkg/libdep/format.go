package libdep

import (
	"io"
	"strings"
)

const (
	DefaultMarker = "-l"
	DefaultWidth  = 74
)

// Formatter writes names as marker-prefixed tokens on as few lines as fit
// the column budget, continuing lines with a trailing backslash.
type Formatter struct {
	Marker string
	Width  int
}

// DefaultFormatter returns the -l formatter wrapping at 74 columns.
func DefaultFormatter() Formatter {
	return Formatter{Marker: DefaultMarker, Width: DefaultWidth}
}

// Format renders names. The first token is never preceded by a break. A
// break is inserted before a later token when the current column plus the
// bare name length would exceed Width.
func (f Formatter) Format(names []string) string {
	if len(names) == 0 {
		return ""
	}
	width := f.Width
	if width <= 0 {
		width = DefaultWidth
	}

	var b strings.Builder
	b.WriteString(f.Marker)
	b.WriteString(names[0])
	col := len(names[0]) + len(f.Marker)

	for _, name := range names[1:] {
		if col > 0 && col+len(name) > width {
			b.WriteString(" \\\n")
			col = 0
		}
		if col > 0 {
			b.WriteByte(' ')
			col++
		}
		b.WriteString(f.Marker)
		b.WriteString(name)
		col += len(name) + len(f.Marker)
	}
	if col > 0 {
		b.WriteByte('\n')
	}
	return b.String()
}

// Write renders names to w.
func (f Formatter) Write(w io.Writer, names []string) error {
	_, err := io.WriteString(w, f.Format(names))
	return err
}
