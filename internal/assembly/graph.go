package assembly

import (
	"github.com/dgruano/ShareYourCloning-backend/internal/seq"
	"github.com/pkg/errors"
)

// Options control which fragments a plan must use and in what order.
type Options struct {
	// UseAllFragments requires every plan to use every fragment once
	UseAllFragments bool

	// UseFragmentOrder joins fragments only in input order, the first
	// fragment forward
	UseFragmentOrder bool

	// MaxCandidates stops enumeration with ErrTooManyCandidates once more
	// plans than this are found. Zero means no limit.
	MaxCandidates int
}

// Graph is the overlap graph of a set of fragments: a node per fragment
// strand and an edge per junction a matcher finds between two nodes.
type Graph struct {
	fragments []seq.Fragment
	opts      Options

	// edges is the arena all adjacency lists index into
	edges []Edge
	out   map[Node][]int
}

// NewGraph matches every pair of oriented fragments. A single fragment is
// matched against itself so it can be circularized. Otherwise self edges are
// not built.
func NewGraph(fragments []seq.Fragment, m Matcher, opts Options) (*Graph, error) {
	if len(fragments) == 0 {
		return nil, errors.Wrap(ErrInvalidParameter, "no fragments")
	}
	if opts.MaxCandidates < 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "max candidates can't be negative, got %d", opts.MaxCandidates)
	}
	if err := checkMatcher(m); err != nil {
		return nil, err
	}
	for i, f := range fragments {
		if err := f.Validate(); err != nil {
			return nil, errors.Wrapf(ErrInvalidParameter, "fragment %d: %v", i+1, err)
		}
	}

	g := &Graph{
		fragments: fragments,
		opts:      opts,
		out:       make(map[Node][]int),
	}

	add := func(from, to Node) error {
		edges, err := m.Match(orient(fragments, from), orient(fragments, to))
		if err != nil {
			return err
		}
		for _, e := range edges {
			g.out[from] = append(g.out[from], len(g.edges))
			g.edges = append(g.edges, e)
		}
		return nil
	}

	strands := []bool{false, true}
	switch {
	case len(fragments) == 1:
		n := Node{Index: 0}
		if err := add(n, n); err != nil {
			return nil, err
		}
	case opts.UseFragmentOrder:
		for i := 0; i+1 < len(fragments); i++ {
			for _, r := range strands {
				if i == 0 && r {
					continue
				}
				for _, s := range strands {
					if err := add(Node{i, r}, Node{i + 1, s}); err != nil {
						return nil, err
					}
				}
			}
		}
	default:
		for i := range fragments {
			for j := range fragments {
				if i == j {
					continue
				}
				for _, r := range strands {
					for _, s := range strands {
						if err := add(Node{i, r}, Node{j, s}); err != nil {
							return nil, err
						}
					}
				}
			}
		}
	}

	return g, nil
}

// Fragments are the graph's input fragments.
func (g *Graph) Fragments() []seq.Fragment {
	return g.fragments
}

// Out returns the edges leaving a node.
func (g *Graph) Out(n Node) []Edge {
	ids := g.out[n]
	edges := make([]Edge, len(ids))
	for i, id := range ids {
		edges[i] = g.edges[id]
	}
	return edges
}

// Edges returns the edges from one node to another.
func (g *Graph) Edges(from, to Node) []Edge {
	var edges []Edge
	for _, id := range g.out[from] {
		if g.edges[id].To == to {
			edges = append(edges, g.edges[id])
		}
	}
	return edges
}

// Len is the number of edges in the graph.
func (g *Graph) Len() int {
	return len(g.edges)
}
