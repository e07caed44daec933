package assembly

import (
	"github.com/dgruano/ShareYourCloning-backend/internal/enzyme"
	"github.com/dgruano/ShareYourCloning-backend/internal/seq"
)

// RestrictionLigation cuts fragments with restriction enzymes and ligates
// the left part of x to the right part of y when the ends left by the cuts
// are compatible.
type RestrictionLigation struct {
	Enzymes []enzyme.Enzyme

	// AllowPartial lets overhangs anneal over part of their length
	AllowPartial bool
}

// Method is MethodRestriction.
func (RestrictionLigation) Method() Method { return MethodRestriction }

func (RestrictionLigation) sealed() {}

// Match every cut in x against every cut in y.
func (m RestrictionLigation) Match(x, y Oriented) ([]Edge, error) {
	if err := checkMatcher(m); err != nil {
		return nil, err
	}

	var edges []Edge
	for _, a := range cutSites(x, m.Enzymes) {
		for _, b := range cutSites(y, m.Enzymes) {
			wa := Window{a.Start(), a.Start() + a.Len()}
			wb := Window{b.Start(), b.Start() + b.Len()}

			e := Edge{
				From:       x.Node,
				To:         y.Node,
				Method:     MethodRestriction,
				FromEnzyme: a.Enzyme,
				ToEnzyme:   b.Enzyme,
			}

			if a.Kind() == seq.Blunt && b.Kind() == seq.Blunt {
				e.FromWindow, e.ToWindow = wa, wb
				edges = append(edges, e)
				continue
			}

			i := stickyOverlap(a.Kind(), x.window(wa), b.Kind(), y.window(wb), m.AllowPartial)
			if i == 0 {
				continue
			}
			e.FromWindow = Window{wa.End - i, wa.End}
			e.ToWindow = Window{wb.Start, wb.Start + i}
			edges = append(edges, e)
		}
	}
	return edges, nil
}

// cutSites are the cuts of every enzyme in the double stranded part of a fragment.
func cutSites(o Oriented, enzymes []enzyme.Enzyme) []enzyme.Cut {
	var cuts []enzyme.Cut
	for _, e := range enzymes {
		for _, c := range e.Cuts(o.Seq, o.Circular) {
			if !o.Circular && (c.Start() < o.Left.Length || c.Start()+c.Len() > o.Len()-o.Right.Length) {
				continue
			}
			cuts = append(cuts, c)
		}
	}
	return cuts
}
