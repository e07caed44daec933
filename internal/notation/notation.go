// Package notation reads assembly plans written the way assembly.Plan prints
// them, ex:
//
//	circular: 1[50:70]->2[0:20], 2[50:70]->-3[0:20], -3[50:70]->1[0:20]
//	linear: 1[40:44]@EcoRI->2[3:7]@EcoRI
//
// Fragments are numbered from 1 and a leading "-" reads a fragment as its
// reverse complement. Windows are half-open ranges on the oriented fragment.
//
// The piece of a digest is written by the overhangs of the cuts around it,
// with "start" and "end" for the ends of a linear sequence, ex:
//
//	digest: [4:8]@EcoRI, [40:44]@EcoRI
//	digest: start, [4:8]@EcoRI
package notation

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/dgruano/ShareYourCloning-backend/internal/assembly"
	"github.com/dgruano/ShareYourCloning-backend/internal/enzyme"
	"github.com/pkg/errors"
)

// ErrSyntax is returned for plans that can't be read.
var ErrSyntax = errors.New("invalid assembly notation")

type planExpr struct {
	Kind  string      `@("linear" | "circular" | "insertion") ":"`
	Edges []*edgeExpr `@@ ( "," @@ )*`
}

type edgeExpr struct {
	From *endExpr `@@ "->"`
	To   *endExpr `@@`
}

type endExpr struct {
	Reverse bool   `@"-"?`
	Index   int    `@Int`
	Start   int    `"[" @Int ":"`
	End     int    `@Int "]"`
	Enzyme  string `( "@" @Ident )?`
}

type digestExpr struct {
	Left  *cutExpr `"digest" ":" @@ ","`
	Right *cutExpr `@@`
}

type cutExpr struct {
	Terminal string `  @("start" | "end")`
	Start    int    `| "[" @Int ":"`
	End      int    `  @Int "]"`
	Enzyme   string `  "@" @Ident`
}

var planLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[a-zA-Z][a-zA-Z0-9_]*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "Punct", Pattern: `[-\[\]:,@]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

var parsePlan = participle.MustBuild[planExpr](
	participle.Lexer(planLexer),
	participle.Elide("Whitespace"),
)

var parseDigest = participle.MustBuild[digestExpr](
	participle.Lexer(planLexer),
	participle.Elide("Whitespace"),
)

var kinds = map[string]assembly.Kind{
	"linear":    assembly.Linear,
	"circular":  assembly.Circular,
	"insertion": assembly.Insertion,
}

// Parse reads a plan. The notation doesn't record how each junction was
// made: junctions with enzymes are read as restriction junctions, empty
// windows as blunt ones, and the rest as homology.
func Parse(s string) (assembly.Plan, error) {
	expr, err := parsePlan.ParseString("", s)
	if err != nil {
		return assembly.Plan{}, errors.Wrapf(ErrSyntax, "%q: %v", s, err)
	}

	plan := assembly.Plan{Kind: kinds[expr.Kind]}
	for i, e := range expr.Edges {
		from, fromWindow, err := e.From.read()
		if err != nil {
			return assembly.Plan{}, errors.Wrapf(err, "junction %d", i+1)
		}
		to, toWindow, err := e.To.read()
		if err != nil {
			return assembly.Plan{}, errors.Wrapf(err, "junction %d", i+1)
		}

		edge := assembly.Edge{
			From:       from,
			To:         to,
			FromWindow: fromWindow,
			ToWindow:   toWindow,
			Method:     assembly.MethodHomology,
			FromEnzyme: e.From.Enzyme,
			ToEnzyme:   e.To.Enzyme,
		}
		switch {
		case edge.FromEnzyme != "" || edge.ToEnzyme != "":
			edge.Method = assembly.MethodRestriction
		case fromWindow.Len() == 0 && toWindow.Len() == 0:
			edge.Method = assembly.MethodBlunt
		}
		plan.Edges = append(plan.Edges, edge)
	}
	return plan, nil
}

// MustParse is Parse that panics on error, for plans known to be valid.
func MustParse(s string) assembly.Plan {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (e *endExpr) read() (assembly.Node, assembly.Window, error) {
	if e.Index < 1 {
		return assembly.Node{}, assembly.Window{}, errors.Wrapf(ErrSyntax, "fragments are numbered from 1, got %d", e.Index)
	}
	if e.End < e.Start {
		return assembly.Node{}, assembly.Window{}, errors.Wrapf(ErrSyntax, "window [%d:%d] ends before it starts", e.Start, e.End)
	}
	return assembly.Node{Index: e.Index - 1, Reverse: e.Reverse},
		assembly.Window{Start: e.Start, End: e.End},
		nil
}

// ParseDigest reads the piece of a digest. Cuts are read with their top
// strand cut first: only their overhang and enzyme are kept.
func ParseDigest(s string) (enzyme.Piece, error) {
	expr, err := parseDigest.ParseString("", s)
	if err != nil {
		return enzyme.Piece{}, errors.Wrapf(ErrSyntax, "%q: %v", s, err)
	}

	var piece enzyme.Piece
	if piece.Left, err = expr.Left.read("start"); err != nil {
		return enzyme.Piece{}, err
	}
	if piece.Right, err = expr.Right.read("end"); err != nil {
		return enzyme.Piece{}, err
	}
	return piece, nil
}

// read a cut, or nil for the terminal that may stand on this side.
func (c *cutExpr) read(terminal string) (*enzyme.Cut, error) {
	switch {
	case c.Terminal == terminal:
		return nil, nil
	case c.Terminal != "":
		return nil, errors.Wrapf(ErrSyntax, "%q can't be a piece's %s", c.Terminal, terminal)
	case c.End < c.Start:
		return nil, errors.Wrapf(ErrSyntax, "window [%d:%d] ends before it starts", c.Start, c.End)
	}
	return &enzyme.Cut{Enzyme: c.Enzyme, Top: c.Start, Bottom: c.End}, nil
}
