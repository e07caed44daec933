package assembly

import (
	"strings"

	"github.com/dgruano/ShareYourCloning-backend/internal/seq"
)

// Method is the chemistry that joins two fragment ends.
type Method int

const (
	// MethodSticky joins complementary single stranded overhangs.
	MethodSticky Method = iota

	// MethodBlunt joins two blunt ends.
	MethodBlunt

	// MethodHomology joins fragments through identical sequence.
	MethodHomology

	// MethodRestriction joins the ends left by restriction enzymes.
	MethodRestriction

	// MethodPCR anneals a primer to a template.
	MethodPCR
)

func (m Method) String() string {
	switch m {
	case MethodSticky:
		return "sticky"
	case MethodBlunt:
		return "blunt"
	case MethodHomology:
		return "homology"
	case MethodRestriction:
		return "restriction"
	case MethodPCR:
		return "pcr"
	}
	return "unknown"
}

// Edge joins the end of one oriented fragment to the start of another.
// FromWindow and ToWindow are the shared bases on each and have equal length.
type Edge struct {
	From       Node
	To         Node
	FromWindow Window
	ToWindow   Window
	Method     Method

	// FromEnzyme and ToEnzyme name the enzymes that cut each side, if any
	FromEnzyme string
	ToEnzyme   string
}

// Reverse returns the same junction read from the other strand:
// -To joined to -From.
func (e Edge) Reverse(fragments []seq.Fragment) Edge {
	return Edge{
		From:       e.To.Flip(),
		To:         e.From.Flip(),
		FromWindow: e.ToWindow.mirror(fragments[e.To.Index]),
		ToWindow:   e.FromWindow.mirror(fragments[e.From.Index]),
		Method:     e.Method,
		FromEnzyme: e.ToEnzyme,
		ToEnzyme:   e.FromEnzyme,
	}
}

// same is whether two edges describe the same junction, whatever matcher
// produced them.
func (e Edge) same(o Edge) bool {
	return e.From == o.From && e.To == o.To &&
		e.FromWindow == o.FromWindow && e.ToWindow == o.ToWindow &&
		e.FromEnzyme == o.FromEnzyme && e.ToEnzyme == o.ToEnzyme
}

func (e Edge) String() string {
	var sb strings.Builder
	sb.WriteString(e.From.String() + e.FromWindow.String())
	if e.FromEnzyme != "" {
		sb.WriteString("@" + e.FromEnzyme)
	}
	sb.WriteString("->")
	sb.WriteString(e.To.String() + e.ToWindow.String())
	if e.ToEnzyme != "" {
		sb.WriteString("@" + e.ToEnzyme)
	}
	return sb.String()
}

// Kind is the topology of an assembly.
type Kind int

const (
	// Linear plans are open paths.
	Linear Kind = iota

	// Circular plans close back on their first fragment.
	Circular

	// Insertion plans start and end on the same template fragment with the
	// other fragments replacing the template between the two junctions.
	Insertion
)

func (k Kind) String() string {
	switch k {
	case Circular:
		return "circular"
	case Insertion:
		return "insertion"
	default:
		return "linear"
	}
}

// Plan is one way of joining fragments: the junctions in assembly order.
type Plan struct {
	Kind  Kind
	Edges []Edge
}

// Fragments is the walk of oriented fragments through the plan. Insertion
// plans list the template at both ends.
func (p Plan) Fragments() []Node {
	if len(p.Edges) == 0 {
		return nil
	}
	nodes := make([]Node, 0, len(p.Edges)+1)
	for _, e := range p.Edges {
		nodes = append(nodes, e.From)
	}
	if p.Kind != Circular {
		nodes = append(nodes, p.Edges[len(p.Edges)-1].To)
	}
	return nodes
}

// MinOverlap is the length of the plan's shortest junction.
func (p Plan) MinOverlap() int {
	if len(p.Edges) == 0 {
		return 0
	}
	m := p.Edges[0].FromWindow.Len()
	for _, e := range p.Edges[1:] {
		m = min(m, e.FromWindow.Len())
	}
	return m
}

// String writes the plan in the notation read by the notation package, ex:
//
//	circular: 1[96:100]->2[0:4], 2[196:200]->1[0:4]
func (p Plan) String() string {
	edges := make([]string, len(p.Edges))
	for i, e := range p.Edges {
		edges[i] = e.String()
	}
	return p.Kind.String() + ": " + strings.Join(edges, ", ")
}

// Key identifies the plan. Plans describing the same product have the same
// canonical key.
func (p Plan) Key() string {
	return p.String()
}
