package pages

import "git.home.luguber.info/inful/vaultsite/internal/graph"

// RunState is everything a run accumulates across pages. It belongs to one
// run and is not safe for concurrent use.
type RunState struct {
	Graph    *graph.Accumulator
	Sections map[string]bool // tag sections whose index was written
}

// NewRunState returns an empty RunState.
func NewRunState() *RunState {
	return &RunState{
		Graph:    graph.NewAccumulator(),
		Sections: make(map[string]bool),
	}
}
