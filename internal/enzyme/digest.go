package enzyme

import (
	"fmt"
	"strings"

	"github.com/dgruano/ShareYourCloning-backend/internal/seq"
)

// Piece is the part of a digested sequence between two consecutive cuts. A
// nil cut is an end of a linear sequence. A circular sequence with a single
// cut is opened into one piece whose cuts are the same.
type Piece struct {
	Left  *Cut
	Right *Cut
}

// Pieces pairs the cuts made in a fragment into the pieces they leave. Pairs
// whose overhangs would overlap, ex: two enzymes cutting the same site, leave
// no piece.
func Pieces(f seq.Fragment, cuts []Cut) []Piece {
	if len(cuts) == 0 {
		return nil
	}
	sorted := make([]Cut, len(cuts))
	copy(sorted, cuts)
	sortCuts(sorted)

	var pieces []Piece
	add := func(p Piece) {
		start, end := p.bounds(f)
		left, right := 0, 0
		if p.Left != nil {
			left = p.Left.Len()
		}
		if p.Right != nil {
			right = p.Right.Len()
		}
		if end > start && end-start >= left+right {
			pieces = append(pieces, p)
		}
	}

	if !f.Circular {
		add(Piece{Right: &sorted[0]})
		for i := 1; i < len(sorted); i++ {
			add(Piece{Left: &sorted[i-1], Right: &sorted[i]})
		}
		add(Piece{Left: &sorted[len(sorted)-1]})
		return pieces
	}
	for i := range sorted {
		add(Piece{Left: &sorted[i], Right: &sorted[(i+1)%len(sorted)]})
	}
	return pieces
}

// bounds are the start and end of the piece in top strand coordinates. On
// circular fragments the end may lie past the origin, up to twice around.
func (p Piece) bounds(f seq.Fragment) (start, end int) {
	n := f.Len()
	start, end = 0, n
	if p.Left != nil {
		start = p.Left.Start()
	}
	if p.Right != nil {
		end = p.Right.Start() + p.Right.Len()
	}
	if f.Circular && p.Left != nil && p.Right != nil {
		if rs := p.Right.Start(); rs < start || (rs == start && *p.Left == *p.Right) {
			end += n
		}
	}
	return start, end
}

// Extract returns the piece of a fragment with the overhangs its cuts leave
// as its ends. The sides without a cut keep the fragment's own ends.
func (p Piece) Extract(f seq.Fragment) seq.Fragment {
	start, end := p.bounds(f)
	s := f.Seq
	if f.Circular {
		s = strings.Repeat(f.Seq, 3)
	}

	out := seq.New(f.ID, s[start:end], false).WithEnds(f.Left, f.Right)
	if p.Left != nil {
		out.Left = seq.End{Length: p.Left.Len(), Kind: p.Left.Kind()}
	}
	if p.Right != nil {
		out.Right = seq.End{Length: p.Right.Len(), Kind: p.Right.Kind()}
	}
	return out
}

// Same is whether two pieces are bounded by the same enzymes at the same
// overhangs. Which strand is cut first isn't compared.
func (p Piece) Same(o Piece) bool {
	same := func(a, b *Cut) bool {
		if a == nil || b == nil {
			return a == nil && b == nil
		}
		return a.Enzyme == b.Enzyme && a.Start() == b.Start() && a.Len() == b.Len()
	}
	return same(p.Left, o.Left) && same(p.Right, o.Right)
}

// String writes the piece the way the notation package reads it, ex:
//
//	digest: [4:8]@EcoRI, [40:44]@EcoRI
//	digest: start, [4:8]@EcoRI
func (p Piece) String() string {
	side := func(c *Cut, end string) string {
		if c == nil {
			return end
		}
		return fmt.Sprintf("[%d:%d]@%s", c.Start(), c.Start()+c.Len(), c.Enzyme)
	}
	return fmt.Sprintf("digest: %s, %s", side(p.Left, "start"), side(p.Right, "end"))
}
