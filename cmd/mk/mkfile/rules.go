package mkfile

import "strings"

// Command is one recipe line. Silent commands ('@') are not echoed;
// failures of ignored commands ('-') never stop the recipe.
type Command struct {
	Text   string
	Silent bool
	Ignore bool
}

// Rule is a build target with its prerequisites and recipe.
type Rule struct {
	Name    string
	Prereqs []string
	Recipe  []Command
	Phony   bool
}

func (r *Rule) addCommand(cmd Command) {
	r.Recipe = append(r.Recipe, cmd)
}

// RuleGraph is the name to Rule table of a session. Each target name is
// unique; redefining a name replaces the rule and drops its old recipe.
type RuleGraph struct {
	rules       map[string]*Rule
	order       []string
	defaultName string
}

func NewRuleGraph() *RuleGraph {
	return &RuleGraph{rules: make(map[string]*Rule)}
}

// Define creates or replaces the rule for name. The first name that does
// not start with '.' becomes the default target.
func (g *RuleGraph) Define(name string, prereqs []string) *Rule {
	r := &Rule{Name: name, Prereqs: append([]string(nil), prereqs...)}
	if _, ok := g.rules[name]; !ok {
		g.order = append(g.order, name)
	}
	g.rules[name] = r

	if g.defaultName == "" && !strings.HasPrefix(name, ".") {
		g.defaultName = name
	}
	return r
}

// Get returns the rule for name, or nil.
func (g *RuleGraph) Get(name string) *Rule {
	return g.rules[name]
}

// Names returns target names in first-definition order.
func (g *RuleGraph) Names() []string {
	return append([]string(nil), g.order...)
}

// Default returns the default target rule, or nil when none was defined.
func (g *RuleGraph) Default() *Rule {
	if g.defaultName == "" {
		return nil
	}
	return g.rules[g.defaultName]
}

func (g *RuleGraph) Len() int { return len(g.rules) }
