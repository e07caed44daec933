package assembly

import (
	"strings"

	"github.com/dgruano/ShareYourCloning-backend/internal/seq"
	"github.com/emirpasic/gods/maps/treemap"
)

// ReverseComplement is the same plan read from the other strand: edges in
// reverse order, each reversed.
func (p Plan) ReverseComplement(fragments []seq.Fragment) Plan {
	edges := make([]Edge, len(p.Edges))
	for i, e := range p.Edges {
		edges[len(p.Edges)-1-i] = e.Reverse(fragments)
	}
	return Plan{Kind: p.Kind, Edges: edges}
}

// rotate starts a circular plan at its i-th edge.
func (p Plan) rotate(i int) Plan {
	edges := make([]Edge, 0, len(p.Edges))
	edges = append(edges, p.Edges[i:]...)
	edges = append(edges, p.Edges[:i]...)
	return Plan{Kind: p.Kind, Edges: edges}
}

// Canonical is the representative of every plan describing the same product:
// the smallest of the plan and its reverse complement, and for circular plans
// of all their rotations. Canonical is idempotent.
func Canonical(p Plan, fragments []seq.Fragment) Plan {
	candidates := []Plan{p, p.ReverseComplement(fragments)}

	best := p
	for _, c := range candidates {
		if p.Kind != Circular {
			if comparePlans(c, best) < 0 {
				best = c
			}
			continue
		}
		for i := range c.Edges {
			if r := c.rotate(i); comparePlans(r, best) < 0 {
				best = r
			}
		}
	}
	return best
}

// comparePlans orders plans by kind, then the nodes they visit, then their
// windows, then the enzymes at each junction.
func comparePlans(a, b Plan) int {
	if a.Kind != b.Kind {
		return cmpInt(int(a.Kind), int(b.Kind))
	}

	n := min(len(a.Edges), len(b.Edges))
	for i := 0; i < n; i++ {
		if c := a.Edges[i].From.compare(b.Edges[i].From); c != 0 {
			return c
		}
		if c := a.Edges[i].To.compare(b.Edges[i].To); c != 0 {
			return c
		}
	}
	if len(a.Edges) != len(b.Edges) {
		return cmpInt(len(a.Edges), len(b.Edges))
	}
	for i := 0; i < n; i++ {
		if c := a.Edges[i].FromWindow.compare(b.Edges[i].FromWindow); c != 0 {
			return c
		}
		if c := a.Edges[i].ToWindow.compare(b.Edges[i].ToWindow); c != 0 {
			return c
		}
	}
	for i := 0; i < n; i++ {
		if c := strings.Compare(a.Edges[i].FromEnzyme, b.Edges[i].FromEnzyme); c != 0 {
			return c
		}
		if c := strings.Compare(a.Edges[i].ToEnzyme, b.Edges[i].ToEnzyme); c != 0 {
			return c
		}
	}
	return 0
}

// planComparator orders plans in a treemap.
func planComparator(a, b interface{}) int {
	return comparePlans(a.(Plan), b.(Plan))
}

// Dedup canonicalizes plans and drops those describing the same product.
// Plans are returned in canonical order.
func Dedup(plans []Plan, fragments []seq.Fragment) []Plan {
	set := treemap.NewWith(planComparator)
	for _, p := range plans {
		c := Canonical(p, fragments)
		if _, found := set.Get(c); !found {
			set.Put(c, struct{}{})
		}
	}

	out := make([]Plan, 0, set.Size())
	for _, k := range set.Keys() {
		out = append(out, k.(Plan))
	}
	return out
}

// Equal is whether two plans describe the same product.
func Equal(a, b Plan, fragments []seq.Fragment) bool {
	return comparePlans(Canonical(a, fragments), Canonical(b, fragments)) == 0
}

// FilterLinearSubassemblies drops linear plans that are part of a larger
// plan: those whose junctions appear, in order, in a longer linear plan or
// around a circular plan, on either strand.
func FilterLinearSubassemblies(linear, circular []Plan, fragments []seq.Fragment) []Plan {
	var kept []Plan
	for i, p := range linear {
		contained := false
		for _, c := range circular {
			if containsEdges(c.Edges, p.Edges, true) ||
				containsEdges(c.ReverseComplement(fragments).Edges, p.Edges, true) {
				contained = true
				break
			}
		}
		for j, q := range linear {
			if contained {
				break
			}
			if i == j || len(q.Edges) <= len(p.Edges) {
				continue
			}
			contained = containsEdges(q.Edges, p.Edges, false) ||
				containsEdges(q.ReverseComplement(fragments).Edges, p.Edges, false)
		}
		if !contained {
			kept = append(kept, p)
		}
	}
	return kept
}

// containsEdges is whether needle is a contiguous run of hay, wrapping around
// the end of hay when cyclic.
func containsEdges(hay, needle []Edge, cyclic bool) bool {
	if len(needle) == 0 || len(needle) > len(hay) {
		return false
	}
	starts := len(hay) - len(needle) + 1
	if cyclic {
		starts = len(hay)
	}
	for s := 0; s < starts; s++ {
		match := true
		for k, e := range needle {
			if !e.same(hay[(s+k)%len(hay)]) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
