package mkfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLogicalLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single without newline", "a = 1", []string{"a = 1"}},
		{"single with newline", "a = 1\n", []string{"a = 1"}},
		{"blank lines kept", "a\n\nb\n", []string{"a", "", "b"}},
		{"continuation joins", "SRC = a.c \\\n\tb.c\n", []string{"SRC = a.c \tb.c"}},
		{"backslash elsewhere kept", "X = a\\b\n", []string{`X = a\b`}},
		{"backslash at end of input kept", "X = a\\", []string{`X = a\`}},
		{"continuation at end of input", "X = a\\\n", []string{"X = a"}},
		{"double continuation", "a\\\nb\\\nc\n", []string{"abc"}},
		{"crlf left alone", "a\r\nb", []string{"a\r", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLogicalLines([]byte(tt.in)))
		})
	}
}
