package assembly

import (
	"strings"

	"github.com/dgruano/ShareYourCloning-backend/internal/seq"
	"github.com/pkg/errors"
)

// Assemble builds the product of a plan. Each fragment contributes its bases
// from the end of its incoming window to the end of its outgoing window, so
// the bases shared at a junction are written once. The first fragment of a
// linear plan contributes from its start and the last to its end.
func Assemble(fragments []seq.Fragment, p Plan) (seq.Fragment, error) {
	if err := CheckPlan(fragments, p); err != nil {
		return seq.Fragment{}, err
	}

	edges := p.Edges
	k := len(edges)
	var sb strings.Builder
	var ids []string
	var product seq.Fragment

	switch p.Kind {
	case Linear:
		first := orient(fragments, edges[0].From)
		last := orient(fragments, edges[k-1].To)

		sb.WriteString(first.Seq[:edges[0].FromWindow.End])
		ids = append(ids, first.ID)
		for i := 1; i < k; i++ {
			f := orient(fragments, edges[i].From)
			sb.WriteString(region(f, edges[i-1].ToWindow.End, edges[i].FromWindow.End))
			ids = append(ids, f.ID)
		}
		sb.WriteString(last.Seq[edges[k-1].ToWindow.End:])
		ids = append(ids, last.ID)

		product.Left, product.Right = first.Left, last.Right
	case Circular:
		for i, e := range edges {
			prev := edges[(i+k-1)%k]
			f := orient(fragments, e.From)
			sb.WriteString(region(f, prev.ToWindow.End, e.FromWindow.End))
			ids = append(ids, f.ID)
		}
		product.Circular = true
	case Insertion:
		template := orient(fragments, edges[0].From)

		sb.WriteString(template.Seq[:edges[0].FromWindow.End])
		ids = append(ids, template.ID)
		for i := 1; i < k; i++ {
			f := orient(fragments, edges[i].From)
			sb.WriteString(region(f, edges[i-1].ToWindow.End, edges[i].FromWindow.End))
			ids = append(ids, f.ID)
		}
		sb.WriteString(template.Seq[edges[k-1].ToWindow.End:])

		product.Left, product.Right = template.Left, template.Right
	}

	product.ID = strings.Join(ids, "+")
	product.Seq = sb.String()
	return product, nil
}

// region reads [from, to) of a fragment. On circular fragments the bounds are
// taken modulo the length and the region may cross the origin; equal bounds
// read the whole circle.
func region(f Oriented, from, to int) string {
	if !f.Circular {
		return f.Seq[from:to]
	}
	n := f.Len()
	from, to = from%n, to%n
	if from < to {
		return f.Seq[from:to]
	}
	return f.Seq[from:] + f.Seq[:to]
}

// CheckPlan validates a plan against its fragments: node indices in range,
// windows inside their fragments and of equal length at each junction,
// consecutive junctions sharing a fragment, no fragment used twice, and each
// fragment entered before it is left.
func CheckPlan(fragments []seq.Fragment, p Plan) error {
	edges := p.Edges
	k := len(edges)
	if k == 0 {
		return errors.Wrap(ErrIncompatiblePlan, "no junctions")
	}

	for i, e := range edges {
		for _, end := range []struct {
			n Node
			w Window
		}{{e.From, e.FromWindow}, {e.To, e.ToWindow}} {
			if end.n.Index < 0 || end.n.Index >= len(fragments) {
				return errors.Wrapf(ErrIncompatiblePlan, "junction %d: no fragment %s", i+1, end.n)
			}
			if !inside(fragments[end.n.Index], end.w) {
				return errors.Wrapf(ErrIncompatiblePlan, "junction %d: window %s outside fragment %s", i+1, end.w, end.n)
			}
		}
		if e.FromWindow.Len() != e.ToWindow.Len() {
			return errors.Wrapf(ErrIncompatiblePlan, "junction %d: windows %s and %s differ in length", i+1, e.FromWindow, e.ToWindow)
		}
		if i > 0 && edges[i-1].To != e.From {
			return errors.Wrapf(ErrIncompatiblePlan, "junction %d doesn't start on fragment %s", i+1, edges[i-1].To)
		}
	}

	closed := edges[k-1].To == edges[0].From
	if (p.Kind == Linear) == closed {
		return errors.Wrapf(ErrIncompatiblePlan, "a %s plan can't end on fragment %s", p.Kind, edges[k-1].To)
	}

	seen := make(map[int]bool)
	nodes := p.Fragments()
	for j, n := range nodes {
		if seen[n.Index] && !(p.Kind == Insertion && j == len(nodes)-1) {
			return errors.Wrapf(ErrIncompatiblePlan, "fragment %d is used more than once", n.Index+1)
		}
		seen[n.Index] = true
	}

	for i := 1; i < k; i++ {
		f := fragments[edges[i].From.Index]
		if !joinable(f, edges[i-1].ToWindow, edges[i].FromWindow) {
			return errors.Wrapf(ErrIncompatiblePlan, "fragment %s is left before it is entered", edges[i].From)
		}
	}

	switch p.Kind {
	case Linear:
		if fragments[edges[0].From.Index].Circular || fragments[edges[k-1].To.Index].Circular {
			return errors.Wrap(ErrIncompatiblePlan, "a linear plan can't start or end on a circular fragment")
		}
	case Circular:
		if !joinable(fragments[edges[0].From.Index], edges[k-1].ToWindow, edges[0].FromWindow) {
			return errors.Wrapf(ErrIncompatiblePlan, "fragment %s is left before it is entered", edges[0].From)
		}
	case Insertion:
		if fragments[edges[0].From.Index].Circular {
			return errors.Wrap(ErrIncompatiblePlan, "an insertion template must be linear")
		}
		if edges[0].FromWindow.End >= edges[k-1].ToWindow.End {
			return errors.Wrap(ErrIncompatiblePlan, "the insertion's junctions are out of order on the template")
		}
	}
	return nil
}

// inside is whether a window lies on a fragment.
func inside(f seq.Fragment, w Window) bool {
	if w.Start < 0 || w.End < w.Start {
		return false
	}
	if f.Circular {
		return w.Start < f.Len() && w.Len() <= f.Len()
	}
	return w.End <= f.Len()
}

// Known returns the candidate that describes the same product as a requested
// plan, or ErrIncompatiblePlan if there is none.
func Known(candidates []Plan, requested Plan, fragments []seq.Fragment) (Plan, error) {
	if err := CheckPlan(fragments, requested); err != nil {
		return Plan{}, err
	}

	want := Canonical(requested, fragments)
	for _, c := range candidates {
		if comparePlans(Canonical(c, fragments), want) == 0 {
			return c, nil
		}
	}
	return Plan{}, errors.Wrapf(ErrIncompatiblePlan, "%s is not among the %d possible assemblies", requested, len(candidates))
}
