// Package graph collects page links during a run and turns them into the
// node/edge data drawn by the site's graph view.
package graph

// Edge is an undirected link between two page URLs, stored with A <= B.
type Edge struct {
	A, B string
}

// NewEdge normalizes the pair so (a, b) and (b, a) compare equal.
func NewEdge(a, b string) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Accumulator gathers nodes and edges while pages are processed. It is owned
// by a single run and is not safe for concurrent use.
type Accumulator struct {
	order  []string
	titles map[string]string
	edges  []Edge
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{titles: make(map[string]string)}
}

// AddNode records a page. A repeated URL keeps its first position and takes
// the latest title.
func (a *Accumulator) AddNode(url, title string) {
	if _, ok := a.titles[url]; !ok {
		a.order = append(a.order, url)
	}
	a.titles[url] = title
}

// AddEdge records a link between two URLs. Duplicates are kept until Build.
func (a *Accumulator) AddEdge(from, to string) {
	a.edges = append(a.edges, NewEdge(from, to))
}

// NodeCount is the number of distinct nodes.
func (a *Accumulator) NodeCount() int { return len(a.order) }

// EdgeCount is the number of recorded edges, duplicates included.
func (a *Accumulator) EdgeCount() int { return len(a.edges) }
