package libdep

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTable(t *testing.T) {
	in := `
# libraries
app: net  util
net:util

bad line without colon
too: many: colons
: nameless
leaf:
`
	table, err := ParseTable(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"app", "leaf", "net"}, table.Names())
	libs, ok := table.Lookup("app")
	require.True(t, ok)
	assert.Equal(t, []string{"net", "util"}, libs)
	libs, _ = table.Lookup("net")
	assert.Equal(t, []string{"util"}, libs)
	libs, ok = table.Lookup("leaf")
	assert.True(t, ok)
	assert.Empty(t, libs)
}

func TestParseTable_LaterEntryReplaces(t *testing.T) {
	table, err := ParseTable(strings.NewReader("a: b\na: c d\n"))
	require.NoError(t, err)
	libs, _ := table.Lookup("a")
	assert.Equal(t, []string{"c", "d"}, libs)
	assert.Equal(t, 1, table.Len())
}

func TestParseTableYAML(t *testing.T) {
	in := []byte("app: [net, util]\nnet: util\nutil: []\nleaf:\n")
	table, err := ParseTableYAML(in)
	require.NoError(t, err)

	libs, _ := table.Lookup("app")
	assert.Equal(t, []string{"net", "util"}, libs)
	libs, _ = table.Lookup("net")
	assert.Equal(t, []string{"util"}, libs)
	libs, ok := table.Lookup("leaf")
	assert.True(t, ok)
	assert.Empty(t, libs)

	_, err = ParseTableYAML([]byte("app: {x: 1}\n"))
	assert.True(t, errors.Is(err, ErrInvalidTable))
}

func TestLoadTableFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTableFile(filepath.Join(dir, "nope"), false)
		assert.True(t, errors.Is(err, ErrConfigNotFound))
	})

	t.Run("colon format", func(t *testing.T) {
		path := filepath.Join(dir, ".makelib")
		require.NoError(t, os.WriteFile(path, []byte("a: b\n"), 0o644))
		table, err := LoadTableFile(path, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, table.Names())
	})

	t.Run("yaml by suffix", func(t *testing.T) {
		path := filepath.Join(dir, "deps.yaml")
		require.NoError(t, os.WriteFile(path, []byte("a: [b, c]\n"), 0o644))
		table, err := LoadTableFile(path, false)
		require.NoError(t, err)
		libs, _ := table.Lookup("a")
		assert.Equal(t, []string{"b", "c"}, libs)
	})

	t.Run("yaml forced", func(t *testing.T) {
		path := filepath.Join(dir, "deps")
		require.NoError(t, os.WriteFile(path, []byte("a: b c\n"), 0o644))
		table, err := LoadTableFile(path, true)
		require.NoError(t, err)
		libs, _ := table.Lookup("a")
		assert.Equal(t, []string{"b", "c"}, libs)
	})
}
