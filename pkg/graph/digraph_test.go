package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	s := NewSet("b", "a")
	s.Add("c")
	s.Add("a")
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has("b"))
	s.Remove("b")
	assert.False(t, s.Has("b"))
	assert.Equal(t, []string{"a", "c"}, s.Sorted())
}

func TestDigraph_EdgesAreSymmetric(t *testing.T) {
	g := NewDigraph()
	g.AddEdge("a", "b")
	g.AddEdge("a", "c")
	g.AddEdge("b", "c")

	a, ok := g.Lookup("a")
	require.True(t, ok)
	c, ok := g.Lookup("c")
	require.True(t, ok)

	assert.Equal(t, []string{"b", "c"}, a.Down.Sorted())
	assert.Empty(t, a.Up)
	assert.Equal(t, []string{"a", "b"}, c.Up.Sorted())
	assert.Equal(t, 2, g.Degree("b"))
	assert.Equal(t, []string{"a", "b", "c"}, g.Names())
}

func TestDigraph_Sever(t *testing.T) {
	t.Run("sever down clears back references", func(t *testing.T) {
		g := NewDigraph()
		g.AddEdge("a", "b")
		g.SeverDown("a")

		b, _ := g.Lookup("b")
		a, _ := g.Lookup("a")
		assert.Empty(t, b.Up)
		assert.Empty(t, a.Down)
	})

	t.Run("sever up clears forward references", func(t *testing.T) {
		g := NewDigraph()
		g.AddEdge("a", "b")
		g.AddEdge("c", "b")
		g.SeverUp("b")

		a, _ := g.Lookup("a")
		c, _ := g.Lookup("c")
		assert.Empty(t, a.Down)
		assert.Empty(t, c.Down)
	})

	t.Run("remove drops the node and its edges", func(t *testing.T) {
		g := NewDigraph()
		g.AddEdge("a", "b")
		g.AddEdge("b", "a")
		g.Remove("a")

		_, ok := g.Lookup("a")
		assert.False(t, ok)
		assert.Equal(t, 0, g.Degree("b"))
		assert.Equal(t, 1, g.Len())
	})

	t.Run("unknown names are ignored", func(t *testing.T) {
		g := NewDigraph()
		g.SeverDown("x")
		g.SeverUp("x")
		g.Remove("x")
		assert.Equal(t, 0, g.Len())
	})
}
