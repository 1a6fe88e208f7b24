package graph

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEdge_Normalizes(t *testing.T) {
	assert.Equal(t, NewEdge("/a", "/b"), NewEdge("/b", "/a"))
	assert.Equal(t, Edge{A: "/a", B: "/b"}, NewEdge("/b", "/a"))
}

func TestAccumulator_LastTitleWinsFirstPositionKept(t *testing.T) {
	acc := NewAccumulator()
	acc.AddNode("/a", "A")
	acc.AddNode("/b", "B")
	acc.AddNode("/a", "A2")

	g := Build(acc, Options{})
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, "/a", g.Nodes[0].URL)
	assert.Equal(t, "A2", g.Nodes[0].Label)
	assert.Equal(t, 1, g.Nodes[1].ID)
	assert.Equal(t, "/b", g.Nodes[1].URL)
	assert.Equal(t, 2, acc.NodeCount())
}

func TestBuild_DedupAndFilter(t *testing.T) {
	acc := NewAccumulator()
	acc.AddNode("/notes/a", "a")
	acc.AddNode("/notes/b", "b")
	acc.AddNode("/notes/c", "c")
	acc.AddEdge("/notes/a", "/notes/b")
	acc.AddEdge("/notes/b", "/notes/a")
	acc.AddEdge("/notes/a", "/404")
	acc.AddEdge("/notes/c", "/notes/a")

	g := Build(acc, Options{RootPath: "/blog"})

	assert.Equal(t, []EdgeID{{From: 0, To: 1}, {From: 0, To: 2}}, g.Edges)
	assert.InDelta(t, Weight(2), g.Nodes[0].Value, 1e-9)
	assert.InDelta(t, Weight(1), g.Nodes[1].Value, 1e-9)
	assert.Equal(t, "/blog/notes/a", g.Nodes[0].RootURL)
	assert.Equal(t, Palette[2], g.Nodes[2].Color.Border)
}

func TestBuild_PaletteCycles(t *testing.T) {
	acc := NewAccumulator()
	for i := 0; i < len(Palette)+2; i++ {
		acc.AddNode(fmt.Sprintf("/n%d", i), "n")
	}
	g := Build(acc, Options{})
	assert.Equal(t, Palette[0], g.Nodes[len(Palette)].Color.Border)
	assert.Equal(t, Palette[1], g.Nodes[len(Palette)+1].Color.Border)
	assert.Equal(t, 1.0, g.Nodes[0].Value)
}

func TestBuild_NoDanglingEdges(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		acc := NewAccumulator()
		for i := 0; i < 10; i++ {
			if rng.Intn(2) == 0 {
				acc.AddNode(fmt.Sprintf("/p%d", i), "p")
			}
		}
		for i := 0; i < 40; i++ {
			acc.AddEdge(fmt.Sprintf("/p%d", rng.Intn(12)), fmt.Sprintf("/p%d", rng.Intn(12)))
		}

		g := Build(acc, Options{})
		for _, e := range g.Edges {
			require.Less(t, e.From, len(g.Nodes))
			require.Less(t, e.To, len(g.Nodes))
		}
	}
}

func TestWeight_MonotoneAndAtLeastOne(t *testing.T) {
	prev := Weight(0)
	assert.Equal(t, 1.0, prev)
	for d := 1; d < 1000; d++ {
		w := Weight(d)
		require.GreaterOrEqual(t, w, prev)
		require.GreaterOrEqual(t, w, 1.0)
		prev = w
	}
}

func TestRootPath(t *testing.T) {
	tests := map[string]string{
		"https://example.com":             "",
		"https://example.com/":            "",
		"https://example.com/blog/":       "/blog",
		"https://user.github.io/my notes": "/my%20notes",
		"example.com/blog":                "example.com/blog",
	}
	for in, want := range tests {
		assert.Equal(t, want, RootPath(in), in)
	}
}

func TestWriteScript(t *testing.T) {
	acc := NewAccumulator()
	acc.AddNode("/a", "A")
	acc.AddNode("/b", "B")
	acc.AddEdge("/a", "/b")

	var buf bytes.Buffer
	require.NoError(t, WriteScript(&buf, Build(acc, Options{}), true, false))

	out := buf.String()
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], `var graph_data={"nodes":[{"id":0,"label":"A","url":"/a","root_url":"/a",`))
	assert.Contains(t, lines[0], `"edges":[{"from":0,"to":1}]`)
	assert.Contains(t, lines[0], `"highlight":{"background":"rgba(24, 99, 93, 0.4)","color":"#0b0f12"}`)
	assert.Contains(t, lines[0], `"font":{"color":"#ffffff","highlight":{"color":"#0b0f12"}}`)
	assert.Equal(t, "var graph_is_local=true", lines[1])
	assert.Equal(t, "var graph_link_replace=false", lines[2])
}

func TestWriteScript_EmptyGraph(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteScript(&buf, Build(NewAccumulator(), Options{}), false, false))
	assert.True(t, strings.HasPrefix(buf.String(), `var graph_data={"nodes":[],"edges":[]}`))
}
