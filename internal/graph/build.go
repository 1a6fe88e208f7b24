package graph

import (
	"math"
	"net/url"
	"sort"
	"strings"
)

// Palette holds the node border colours, assigned by node position.
var Palette = []string{
	"#00aeff", "#40a088", "#bd00ff", "#c7e6d7",
	"#7a8a94", "#18635d", "#e8f5f0", "#a0a0a0",
}

const (
	nodeBackground      = "rgba(19, 26, 26, 0.3)"
	highlightBackground = "rgba(24, 99, 93, 0.4)"
	highlightColor      = "#0b0f12"
	fontColor           = "#ffffff"
)

// Graph is the serializable graph.
type Graph struct {
	Nodes []Node   `json:"nodes"`
	Edges []EdgeID `json:"edges"`
}

// Node is one page in the graph view.
type Node struct {
	ID      int     `json:"id"`
	Label   string  `json:"label"`
	URL     string  `json:"url"`
	RootURL string  `json:"root_url"`
	Color   Color   `json:"color"`
	Font    Font    `json:"font"`
	Value   float64 `json:"value"`
}

type Color struct {
	Background string    `json:"background"`
	Border     string    `json:"border"`
	Highlight  Highlight `json:"highlight"`
}

type Highlight struct {
	Background string `json:"background,omitempty"`
	Color      string `json:"color"`
}

type Font struct {
	Color     string    `json:"color"`
	Highlight Highlight `json:"highlight"`
}

// EdgeID links two nodes by id.
type EdgeID struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Options shape the emitted graph.
type Options struct {
	// RootPath prefixes every node URL in root_url, e.g. "/blog".
	RootPath string
}

// RootPath extracts the path prefix of a site URL without a trailing slash.
func RootPath(siteURL string) string {
	u, err := url.Parse(strings.TrimSpace(siteURL))
	if err != nil {
		return ""
	}
	return strings.TrimRight(u.EscapedPath(), "/")
}

// Weight is the display size of a node with the given degree.
func Weight(degree int) float64 {
	return math.Log10(float64(degree)+1) + 1
}

// Build deduplicates edges, drops edges with a missing endpoint and sizes
// nodes by degree. Node ids follow insertion order.
func Build(acc *Accumulator, opts Options) Graph {
	ids := make(map[string]int, len(acc.order))
	for i, u := range acc.order {
		ids[u] = i
	}

	seen := make(map[Edge]struct{}, len(acc.edges))
	degree := make([]int, len(acc.order))
	edges := make([]EdgeID, 0, len(acc.edges))
	for _, e := range acc.edges {
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		from, okA := ids[e.A]
		to, okB := ids[e.B]
		if !okA || !okB {
			continue
		}
		degree[from]++
		degree[to]++
		edges = append(edges, EdgeID{From: from, To: to})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From == edges[j].From {
			return edges[i].To < edges[j].To
		}
		return edges[i].From < edges[j].From
	})

	nodes := make([]Node, len(acc.order))
	for i, u := range acc.order {
		nodes[i] = Node{
			ID:      i,
			Label:   acc.titles[u],
			URL:     u,
			RootURL: opts.RootPath + u,
			Color: Color{
				Background: nodeBackground,
				Border:     Palette[i%len(Palette)],
				Highlight:  Highlight{Background: highlightBackground, Color: highlightColor},
			},
			Font:  Font{Color: fontColor, Highlight: Highlight{Color: highlightColor}},
			Value: Weight(degree[i]),
		}
	}
	return Graph{Nodes: nodes, Edges: edges}
}
