package assembly

import (
	"context"

	"github.com/dgruano/ShareYourCloning-backend/internal/seq"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/pkg/errors"
)

// walker is a depth first search over the graph that collects candidate plans.
type walker struct {
	ctx   context.Context
	g     *Graph
	kind  Kind
	start Node

	used  []bool
	path  []Edge
	steps int

	// found holds the canonical form of every plan emitted so far
	found *treemap.Map
}

func (g *Graph) walker(ctx context.Context, kind Kind) *walker {
	return &walker{
		ctx:  ctx,
		g:    g,
		kind:  kind,
		used:  make([]bool, len(g.fragments)),
		found: treemap.NewWith(planComparator),
	}
}

// fragment is the oriented fragment at a node.
func (w *walker) fragment(n Node) Oriented {
	return orient(w.g.fragments, n)
}

// step is called once per visited node so a cancelled context stops the walk.
func (w *walker) step() error {
	w.steps++
	if w.steps%256 == 1 {
		return w.ctx.Err()
	}
	return nil
}

// emit records the current path, plus a closing edge if one is given.
// Paths describing a plan already found, ex: a linear plan walked from its
// other end, don't count toward MaxCandidates.
func (w *walker) emit(closing ...Edge) error {
	edges := make([]Edge, 0, len(w.path)+len(closing))
	edges = append(edges, w.path...)
	edges = append(edges, closing...)

	c := Canonical(Plan{Kind: w.kind, Edges: edges}, w.g.fragments)
	if _, found := w.found.Get(c); found {
		return nil
	}
	if limit := w.g.opts.MaxCandidates; limit > 0 && w.found.Size() >= limit {
		return errors.Wrapf(ErrTooManyCandidates, "more than %d %s assemblies", limit, w.kind)
	}
	w.found.Put(c, struct{}{})
	return nil
}

// plans are the distinct plans found, in canonical order.
func (w *walker) plans() []Plan {
	out := make([]Plan, 0, w.found.Size())
	for _, k := range w.found.Keys() {
		out = append(out, k.(Plan))
	}
	return out
}

// continues is whether a path can pass through the fragment at its last
// node using edge e to leave it.
func (w *walker) continues(cur Node, e Edge) bool {
	if len(w.path) == 0 {
		return true
	}
	return joinable(w.fragment(cur).Fragment, w.path[len(w.path)-1].ToWindow, e.FromWindow)
}

// joinable is whether a fragment entered through in and left through out
// keeps some of its own sequence in order. Circular fragments can be read
// around the origin so any pair of windows works.
func joinable(f seq.Fragment, in, out Window) bool {
	return f.Circular || in.End < out.End
}

// LinearAssemblies returns every simple path through the graph, deduplicated.
func (g *Graph) LinearAssemblies(ctx context.Context) ([]Plan, error) {
	w := g.walker(ctx, Linear)
	if len(g.fragments) < 2 {
		return nil, ctx.Err()
	}

	for _, s := range g.starts() {
		if g.fragments[s.Index].Circular {
			continue
		}
		w.used[s.Index] = true
		if err := w.linear(s); err != nil {
			return nil, err
		}
		w.used[s.Index] = false
	}
	return w.plans(), nil
}

func (w *walker) linear(cur Node) error {
	if err := w.step(); err != nil {
		return err
	}

	n := len(w.g.fragments)
	for _, id := range w.g.out[cur] {
		e := w.g.edges[id]
		if w.used[e.To.Index] || !w.continues(cur, e) {
			continue
		}

		w.path = append(w.path, e)
		w.used[e.To.Index] = true

		complete := (!w.g.opts.UseAllFragments || len(w.path) == n-1) &&
			(!w.g.opts.UseFragmentOrder || e.To.Index == n-1)
		if complete && !w.g.fragments[e.To.Index].Circular {
			if err := w.emit(); err != nil {
				return err
			}
		}
		if err := w.linear(e.To); err != nil {
			return err
		}

		w.used[e.To.Index] = false
		w.path = w.path[:len(w.path)-1]
	}
	return nil
}

// CircularAssemblies returns every simple cycle through the graph,
// deduplicated. A single fragment is circularized through its self edges.
func (g *Graph) CircularAssemblies(ctx context.Context) ([]Plan, error) {
	w := g.walker(ctx, Circular)

	if len(g.fragments) == 1 {
		s := Node{Index: 0}
		for _, e := range g.Edges(s, s) {
			if joinable(g.fragments[0], e.ToWindow, e.FromWindow) {
				if err := w.emit(e); err != nil {
					return nil, err
				}
			}
		}
		return w.plans(), ctx.Err()
	}

	// every cycle is found from the forward strand of its lowest fragment,
	// its reverse complement from the reverse strand is the same molecule
	for i := range g.fragments {
		if g.opts.UseAllFragments && i > 0 {
			break
		}
		w.start = Node{Index: i}
		w.used[i] = true
		if err := w.circular(w.start); err != nil {
			return nil, err
		}
		w.used[i] = false
	}
	return w.plans(), nil
}

func (w *walker) circular(cur Node) error {
	if err := w.step(); err != nil {
		return err
	}

	n := len(w.g.fragments)
	for _, id := range w.g.out[cur] {
		e := w.g.edges[id]
		if !w.continues(cur, e) {
			continue
		}

		if e.To == w.start {
			size := len(w.path) + 1
			if size < 2 || (w.g.opts.UseAllFragments && size != n) {
				continue
			}
			if !joinable(w.fragment(w.start).Fragment, e.ToWindow, w.path[0].FromWindow) {
				continue
			}
			if err := w.emit(e); err != nil {
				return err
			}
			continue
		}
		if w.used[e.To.Index] || e.To.Index < w.start.Index {
			continue
		}

		w.path = append(w.path, e)
		w.used[e.To.Index] = true
		if err := w.circular(e.To); err != nil {
			return err
		}
		w.used[e.To.Index] = false
		w.path = w.path[:len(w.path)-1]
	}
	return nil
}

// InsertionAssemblies returns every walk that leaves a template fragment and
// comes back to it through the other fragments, deduplicated. The template's
// sequence between the two junctions is replaced. A single fragment yields
// excisions through its self edges.
func (g *Graph) InsertionAssemblies(ctx context.Context) ([]Plan, error) {
	w := g.walker(ctx, Insertion)

	if len(g.fragments) == 1 {
		if g.fragments[0].Circular {
			return nil, ctx.Err()
		}
		s := Node{Index: 0}
		for _, e := range g.Edges(s, s) {
			if e.FromWindow.End < e.ToWindow.End {
				if err := w.emit(e); err != nil {
					return nil, err
				}
			}
		}
		return w.plans(), ctx.Err()
	}

	for _, s := range g.starts() {
		if g.fragments[s.Index].Circular {
			continue
		}
		w.start = s
		w.used[s.Index] = true
		if err := w.insertion(s); err != nil {
			return nil, err
		}
		w.used[s.Index] = false
	}
	return w.plans(), nil
}

func (w *walker) insertion(cur Node) error {
	if err := w.step(); err != nil {
		return err
	}

	n := len(w.g.fragments)
	for _, id := range w.g.out[cur] {
		e := w.g.edges[id]
		if !w.continues(cur, e) {
			continue
		}

		if e.To == w.start {
			size := len(w.path) + 1
			if size < 2 || (w.g.opts.UseAllFragments && size != n) {
				continue
			}
			if w.path[0].FromWindow.End >= e.ToWindow.End {
				continue
			}
			if err := w.emit(e); err != nil {
				return err
			}
			continue
		}
		if w.used[e.To.Index] {
			continue
		}

		w.path = append(w.path, e)
		w.used[e.To.Index] = true
		if err := w.insertion(e.To); err != nil {
			return err
		}
		w.used[e.To.Index] = false
		w.path = w.path[:len(w.path)-1]
	}
	return nil
}

// starts are the nodes a path may start from, in order.
func (g *Graph) starts() []Node {
	if g.opts.UseFragmentOrder {
		return []Node{{Index: 0}}
	}
	nodes := make([]Node, 0, 2*len(g.fragments))
	for i := range g.fragments {
		nodes = append(nodes, Node{Index: i}, Node{Index: i, Reverse: true})
	}
	return nodes
}
