package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `CC = cc
OBJ = main.o util.o
prog: $(OBJ)
	$(CC) -o prog $(OBJ)
main.o: main.c
	@$(CC) -c main.c
util.o: util.c main.o
	-$(CC) -c util.c
clean:
	rm -f prog *.o
.PHONY: clean
`

func TestPrintRules(t *testing.T) {
	s, _, _, _ := sessionFrom(t, sample)

	var buf bytes.Buffer
	printRules(&buf, s.Rules())

	want := "prog   : main.o util.o (default)\n" +
		"main.o : main.c\n" +
		"util.o : util.c main.o\n" +
		"clean  : (phony)\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintRules_Empty(t *testing.T) {
	s, _, _, _ := sessionFrom(t, "X = 1\n")

	var buf bytes.Buffer
	printRules(&buf, s.Rules())
	assert.Equal(t, "no rules found\n", buf.String())
}

func TestRuleOrder(t *testing.T) {
	s, _, logger, logs := sessionFrom(t, sample)

	names := ruleOrder(s.Rules(), "prog", logger)
	assert.Equal(t, []string{"prog", "util.o", "main.o", "util.c", "main.c"}, names)
	assert.Empty(t, logs.String(), "prerequisites without rules are leaves, not missing entries")

	var buf bytes.Buffer
	printOrder(&buf, names, true)
	assert.Equal(t, "main.c\nutil.c\nmain.o\nutil.o\nprog\n", buf.String())
}

func TestRuleOrder_Cycle(t *testing.T) {
	s, _, logger, logs := sessionFrom(t, "a: b\nb: a\n")

	names := ruleOrder(s.Rules(), "a", logger)
	assert.ElementsMatch(t, []string{"a", "b"}, names)
	assert.Contains(t, logs.String(), "removing circular dependency")
}

func TestRun(t *testing.T) {
	t.Run("default target", func(t *testing.T) {
		s, h, logger, _ := sessionFrom(t, sample)
		h.files["main.c"] = ""
		h.files["util.c"] = ""

		require.NoError(t, run(context.Background(), s, &bytes.Buffer{}, logger, nil))
		assert.Equal(t, []string{"cc -c main.c", "cc -c main.c", "cc -c util.c", "cc -o prog main.o util.o"}, h.ran)
	})

	t.Run("named targets in order", func(t *testing.T) {
		s, h, logger, logs := sessionFrom(t, sample)

		require.NoError(t, run(context.Background(), s, &bytes.Buffer{}, logger, []string{"clean", "nope", "clean"}))
		assert.Equal(t, []string{"rm -f prog *.o", "rm -f prog *.o"}, h.ran)
		assert.Contains(t, logs.String(), "no rule to make target")
	})

	t.Run("print only", func(t *testing.T) {
		flagPrint = []string{"OBJ", "MISSING"}
		t.Cleanup(func() { flagPrint = nil })

		s, h, logger, logs := sessionFrom(t, sample)
		var out bytes.Buffer
		require.NoError(t, run(context.Background(), s, &out, logger, nil))

		assert.Equal(t, "OBJ=main.o util.o\n", out.String())
		assert.Contains(t, logs.String(), "undefined variable")
		assert.Empty(t, h.ran)
	})
}

func TestPickableTargets(t *testing.T) {
	s, _, _, _ := sessionFrom(t, ".SUFFIXES:\n"+sample)
	assert.Equal(t, []string{"prog", "main.o", "util.o", "clean"}, pickableTargets(s.Rules()))
}

func TestDescribeRule(t *testing.T) {
	s, _, _, _ := sessionFrom(t, sample)

	assert.Equal(t, "util.o: util.c main.o\n\t-$(CC) -c util.c\n", describeRule(s.Rules().Get("util.o")))
	assert.Equal(t, "clean:\n\trm -f prog *.o\n\n.PHONY: clean\n", describeRule(s.Rules().Get("clean")))
}

func TestWatchPaths(t *testing.T) {
	s, _, _, _ := sessionFrom(t, sample)
	exists := func(p string) bool { return p == "main.c" }

	files := watchPaths(s, exists)
	assert.Equal(t, []string{"main.c"}, files.Sorted())
}
