package graph

import "sort"

// Node is a vertex of a Digraph.
//
// Up holds the names of the nodes that depend on this one; Down holds the
// names of the nodes this one depends on. Neither set holds pointers: nodes
// refer to each other only through the arena that owns them.
type Node struct {
	Name string
	Up   Set
	Down Set
}

// Digraph is an arena of nodes addressed by name.
//
// Every edge is recorded on both ends: AddEdge("a", "b") puts "b" in a.Down
// and "a" in b.Up. All mutators keep that symmetry.
type Digraph struct {
	nodes map[string]*Node
}

// NewDigraph returns an empty graph.
func NewDigraph() *Digraph {
	return &Digraph{nodes: make(map[string]*Node)}
}

// Node returns the node for name, creating it on first reference.
func (g *Digraph) Node(name string) *Node {
	if n, ok := g.nodes[name]; ok {
		return n
	}
	n := &Node{Name: name, Up: NewSet(), Down: NewSet()}
	g.nodes[name] = n
	return n
}

// Lookup returns the node for name without creating it.
func (g *Digraph) Lookup(name string) (*Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// AddEdge records that from depends on to. Both nodes are created if needed.
func (g *Digraph) AddEdge(from, to string) {
	f := g.Node(from)
	t := g.Node(to)
	f.Down.Add(t.Name)
	t.Up.Add(f.Name)
}

// SeverDown removes every edge from name to its dependencies.
func (g *Digraph) SeverDown(name string) {
	n, ok := g.nodes[name]
	if !ok {
		return
	}
	for dep := range n.Down {
		if d, ok := g.nodes[dep]; ok {
			d.Up.Remove(name)
		}
	}
	n.Down = NewSet()
}

// SeverUp removes every edge from the dependents of name to name.
func (g *Digraph) SeverUp(name string) {
	n, ok := g.nodes[name]
	if !ok {
		return
	}
	for up := range n.Up {
		if u, ok := g.nodes[up]; ok {
			u.Down.Remove(name)
		}
	}
	n.Up = NewSet()
}

// Remove disconnects name and drops it from the arena.
func (g *Digraph) Remove(name string) {
	g.SeverDown(name)
	g.SeverUp(name)
	delete(g.nodes, name)
}

// Degree returns |up| + |down| for name, or 0 if it is absent.
func (g *Digraph) Degree(name string) int {
	n, ok := g.nodes[name]
	if !ok {
		return 0
	}
	return n.Up.Len() + n.Down.Len()
}

func (g *Digraph) Len() int { return len(g.nodes) }

// Names returns every node name in ascending order.
func (g *Digraph) Names() []string {
	out := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
