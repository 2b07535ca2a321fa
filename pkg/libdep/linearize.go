package libdep

import (
	"log/slog"

	"mktools/pkg/graph"
)

// Order is the result of one linearization.
//
// Left holds the names peeled from the top of the graph (nothing depends on
// them) in peel order. Right holds the names peeled from the bottom (they
// depend on nothing); each one is prepended, so Right ends in reverse peel
// order. A name peeled from both ends in the same step appears in both.
// Breaks lists the names removed to break a cycle, in the order chosen.
type Order struct {
	Seed   string
	Left   []string
	Right  []string
	Breaks []string
}

// Names returns the printable sequence: the seed, then Left, then Right.
// The seed is always emitted first, even when it also appears in Left or
// Right.
func (o *Order) Names() []string {
	out := make([]string, 0, 1+len(o.Left)+len(o.Right))
	out = append(out, o.Seed)
	out = append(out, o.Left...)
	out = append(out, o.Right...)
	return out
}

// Unique returns Names with repeated names dropped, keeping the first
// occurrence of each.
func (o *Order) Unique() []string {
	seen := graph.NewSet()
	var out []string
	for _, name := range o.Names() {
		if seen.Has(name) {
			continue
		}
		seen.Add(name)
		out = append(out, name)
	}
	return out
}

// Linearize flattens the dependency graph reachable from seed into a link
// order, breaking cycles when the graph is not a DAG.
//
// Missing table entries and forced cycle breaks are reported on logger as
// warnings. The node graph is built fresh for every call and discarded when
// it returns.
func Linearize(t *Table, seed string, logger *slog.Logger) *Order {
	if logger == nil {
		logger = slog.Default()
	}
	t.ResetUsed()

	g := graph.NewDigraph()
	collect(t, g, seed, logger)

	o := &Order{Seed: seed}
	o.peel(g, logger)
	return o
}

// collect walks the table depth-first from name, materialising a node for
// every name it meets and an edge for every direct dependency.
func collect(t *Table, g *graph.Digraph, name string, logger *slog.Logger) {
	libs, ok := t.Lookup(name)
	if !ok {
		logger.Warn("dependencies not found", "name", name)
		return
	}
	if t.markUsed(name) {
		return
	}
	g.Node(name)
	for _, lib := range libs {
		g.AddEdge(name, lib)
	}
	for _, lib := range libs {
		collect(t, g, lib, logger)
	}
}

// peel empties g into o.Left and o.Right.
//
// Each pass looks at every remaining node against the graph as it stood when
// the pass began: nodes with no dependents go to Left, nodes with no
// dependencies go to Right, and the selected nodes are then disconnected and
// removed together. Passes repeat until one removes nothing. If nodes are
// still left, they all sit on cycles; the one with the highest up+down degree
// (lowest name on ties) is forced out and peeling resumes.
func (o *Order) peel(g *graph.Digraph, logger *slog.Logger) {
	for {
		for o.peelPass(g) {
		}
		if g.Len() == 0 {
			return
		}

		victim := ""
		best := 0
		for _, name := range g.Names() {
			if d := g.Degree(name); victim == "" || d > best {
				victim, best = name, d
			}
		}

		logger.Warn("removing circular dependency", "name", victim)
		o.Breaks = append(o.Breaks, victim)
		o.Left = append(o.Left, victim)
		o.Right = prepend(o.Right, victim)
		g.Remove(victim)
	}
}

// peelPass runs one scan and reports whether it removed anything.
func (o *Order) peelPass(g *graph.Digraph) bool {
	var roots, leaves []string
	selected := graph.NewSet()
	for _, name := range g.Names() {
		n, _ := g.Lookup(name)
		if n.Up.Len() == 0 {
			roots = append(roots, name)
			selected.Add(name)
		}
		if n.Down.Len() == 0 {
			leaves = append(leaves, name)
			selected.Add(name)
		}
	}
	if selected.Len() == 0 {
		return false
	}

	o.Left = append(o.Left, roots...)
	for _, name := range leaves {
		o.Right = prepend(o.Right, name)
	}
	for _, name := range selected.Sorted() {
		g.Remove(name)
	}
	return true
}

func prepend(list []string, name string) []string {
	return append([]string{name}, list...)
}
