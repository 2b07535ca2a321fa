package mkfile

import "strings"

// SplitLogicalLines splits makefile text into logical lines. A backslash
// immediately followed by a newline is removed together with the newline,
// joining the two physical lines. Any other backslash, including one at the
// very end of the input, is kept.
func SplitLogicalLines(data []byte) []string {
	var (
		lines []string
		b     strings.Builder
		open  bool
	)
	for i := 0; i < len(data); i++ {
		c := data[i]
		switch {
		case c == '\\' && i+1 < len(data) && data[i+1] == '\n':
			i++
			open = true
		case c == '\n':
			lines = append(lines, b.String())
			b.Reset()
			open = false
		default:
			b.WriteByte(c)
			open = true
		}
	}
	if open {
		lines = append(lines, b.String())
	}
	return lines
}
