package libdep

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type entry struct {
	libs []string
	used bool
}

// Table maps a library name to the ordered list of libraries it links against.
//
// The table is read-only during linearization except for the per-name used
// flag, which Linearize resets before every query. A Table must therefore not
// be shared by concurrent Linearize calls.
type Table struct {
	entries map[string]*entry
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[string]*entry)}
}

// Add sets the direct dependencies of name, replacing any previous entry.
func (t *Table) Add(name string, libs []string) {
	t.entries[name] = &entry{libs: append([]string(nil), libs...)}
}

// Lookup returns the direct dependencies of name.
func (t *Table) Lookup(name string) ([]string, bool) {
	e, ok := t.entries[name]
	if !ok {
		return nil, false
	}
	return e.libs, true
}

// Names returns every entry name in ascending order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.entries))
	for n := range t.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (t *Table) Len() int { return len(t.entries) }

// ResetUsed clears the visited flag of every entry.
func (t *Table) ResetUsed() {
	for _, e := range t.entries {
		e.used = false
	}
}

// markUsed sets the visited flag of name and reports whether it was already set.
func (t *Table) markUsed(name string) (already bool) {
	e := t.entries[name]
	already = e.used
	e.used = true
	return already
}

// ParseTable reads the colon-delimited format:
//
//	# comment
//	name: lib1 lib2 ...
//
// Blank lines and lines starting with # are skipped, as is every line that
// does not split into exactly two fields on ':'.
func ParseTable(r io.Reader) (*Table, error) {
	t := NewTable()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) != 2 {
			continue
		}
		name := strings.TrimSpace(fields[0])
		if name == "" {
			continue
		}
		t.Add(name, strings.Fields(fields[1]))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading dependency table: %w", err)
	}
	return t, nil
}

// ParseTableYAML reads a YAML mapping of name to dependencies. A value may be
// a sequence or a whitespace-separated string:
//
//	app: [net, util]
//	net: util
//	util: []
func ParseTableYAML(in []byte) (*Table, error) {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(in, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	t := NewTable()
	for name, node := range doc {
		switch {
		case node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null":
			t.Add(name, nil)
		case node.Kind == yaml.ScalarNode:
			t.Add(name, strings.Fields(node.Value))
		case node.Kind == yaml.SequenceNode:
			var libs []string
			if err := node.Decode(&libs); err != nil {
				return nil, fmt.Errorf("%w: entry %q: %v", ErrInvalidTable, name, err)
			}
			t.Add(name, libs)
		default:
			return nil, fmt.Errorf("%w: entry %q must be a list or a string", ErrInvalidTable, name)
		}
	}
	return t, nil
}

// LoadTableFile loads a table from path. The YAML format is used when
// forceYAML is set or the file has a .yml/.yaml suffix.
func LoadTableFile(path string, forceYAML bool) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	ext := filepath.Ext(path)
	if forceYAML || ext == ".yml" || ext == ".yaml" {
		return ParseTableYAML(data)
	}
	return ParseTable(strings.NewReader(string(data)))
}
