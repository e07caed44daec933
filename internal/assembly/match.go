package assembly

import (
	"github.com/dgruano/ShareYourCloning-backend/internal/seq"
	"github.com/pkg/errors"
)

// Matcher finds the junctions between the right end of x and the left end of y.
// The set of matchers is closed: Sticky, Blunt, Homology, RestrictionLigation
// and PCRAnnealing.
type Matcher interface {
	// Method is the chemistry of the edges the matcher returns.
	Method() Method

	// Match returns every junction of x followed by y.
	Match(x, y Oriented) ([]Edge, error)

	sealed()
}

// checkMatcher validates a matcher's parameters before any fragment is matched.
func checkMatcher(m Matcher) error {
	switch m := m.(type) {
	case Sticky, Blunt:
		return nil
	case Homology:
		if m.MinLength <= 0 {
			return errors.Wrapf(ErrInvalidParameter, "minimal homology must be positive, got %d", m.MinLength)
		}
	case RestrictionLigation:
		if len(m.Enzymes) == 0 {
			return errors.Wrap(ErrInvalidParameter, "restriction ligation needs at least one enzyme")
		}
	case PCRAnnealing:
		if m.MinAnnealing <= 0 {
			return errors.Wrapf(ErrInvalidParameter, "minimal annealing must be positive, got %d", m.MinAnnealing)
		}
		if m.Mismatches < 0 {
			return errors.Wrapf(ErrInvalidParameter, "allowed mismatches can't be negative, got %d", m.Mismatches)
		}
	case nil:
		return errors.Wrap(ErrInvalidParameter, "no matcher")
	}
	return nil
}

// stickyOverlap is the number of bases two overhangs anneal over: all of them
// if they are the same, or with partial set, the longest suffix of a that is
// a prefix of b.
func stickyOverlap(a seq.EndKind, aSeq string, b seq.EndKind, bSeq string, partial bool) int {
	if a == seq.Blunt || a != b {
		return 0
	}
	if aSeq == bSeq {
		return len(aSeq)
	}
	if !partial {
		return 0
	}
	for i := min(len(aSeq), len(bSeq)); i > 0; i-- {
		if aSeq[len(aSeq)-i:] == bSeq[:i] {
			return i
		}
	}
	return 0
}

// Sticky joins overhangs of the same kind with the same projected sequence.
type Sticky struct {
	// AllowPartial lets overhangs anneal over part of their length
	AllowPartial bool
}

// Method is MethodSticky.
func (Sticky) Method() Method { return MethodSticky }

func (Sticky) sealed() {}

// Match the right overhang of x against the left overhang of y.
func (m Sticky) Match(x, y Oriented) ([]Edge, error) {
	if x.Circular || y.Circular {
		return nil, nil
	}

	i := stickyOverlap(x.Right.Kind, x.Overhang(seq.Right), y.Left.Kind, y.Overhang(seq.Left), m.AllowPartial)
	if i == 0 {
		return nil, nil
	}

	lx := x.Len()
	return []Edge{{
		From:       x.Node,
		To:         y.Node,
		FromWindow: Window{lx - i, lx},
		ToWindow:   Window{0, i},
		Method:     MethodSticky,
	}}, nil
}

// Blunt joins two blunt ends.
type Blunt struct{}

// Method is MethodBlunt.
func (Blunt) Method() Method { return MethodBlunt }

func (Blunt) sealed() {}

// Match x and y if both facing ends are blunt.
func (Blunt) Match(x, y Oriented) ([]Edge, error) {
	if x.Circular || y.Circular || x.Right.Kind != seq.Blunt || y.Left.Kind != seq.Blunt {
		return nil, nil
	}

	lx := x.Len()
	return []Edge{{
		From:       x.Node,
		To:         y.Node,
		FromWindow: Window{lx, lx},
		ToWindow:   Window{0, 0},
		Method:     MethodBlunt,
	}}, nil
}
