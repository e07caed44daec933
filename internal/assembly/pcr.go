package assembly

import "github.com/dgruano/ShareYourCloning-backend/internal/seq"

// PCRAnnealing anneals primers to a template. A forward primer is joined to
// the template it anneals to and the template is joined to the reverse
// complement of a reverse primer.
type PCRAnnealing struct {
	// MinAnnealing is the number of 3' bases of a primer that must anneal
	MinAnnealing int

	// Mismatches allowed among the annealing bases, except the 3' terminal one
	Mismatches int
}

// Method is MethodPCR.
func (PCRAnnealing) Method() Method { return MethodPCR }

func (PCRAnnealing) sealed() {}

// Match a forward primer x to a template y, or a template x to a reversed primer y.
func (m PCRAnnealing) Match(x, y Oriented) ([]Edge, error) {
	if err := checkMatcher(m); err != nil {
		return nil, err
	}

	var edges []Edge
	switch {
	case x.Primer && !y.Primer && !x.Reverse:
		for _, w := range m.anneal(x.Seq, y.Seq, y.Circular) {
			edges = append(edges, Edge{
				From:       x.Node,
				To:         y.Node,
				FromWindow: w[0],
				ToWindow:   w[1],
				Method:     MethodPCR,
			})
		}
	case !x.Primer && y.Primer && y.Reverse:
		// the primer's 3' end is at the start of y, anneal it to the other strand of x
		for _, w := range m.anneal(seq.RevComp(y.Seq), seq.RevComp(x.Seq), x.Circular) {
			edges = append(edges, Edge{
				From:       x.Node,
				To:         y.Node,
				FromWindow: w[1].mirror(x.Fragment),
				ToWindow:   w[0].mirror(y.Fragment),
				Method:     MethodPCR,
			})
		}
	}
	return edges, nil
}

// anneal finds where the 3' end of a primer binds the top strand of a
// template. The MinAnnealing 3' bases may have up to Mismatches mismatches
// but the 3' terminal base must match. Sites are then extended toward the
// primer's 5' end while bases match. Returns (primer, template) windows.
func (m PCRAnnealing) anneal(primer, template string, circular bool) (windows [][2]Window) {
	k := m.MinAnnealing
	lp, lt := len(primer), len(template)
	if lp < k || lt == 0 || (!circular && lt < k) {
		return nil
	}

	base := func(i int) byte {
		return template[((i%lt)+lt)%lt]
	}
	tail := primer[lp-k:]

	positions := lt - k + 1
	if circular {
		positions = lt
	}
	for pos := 0; pos < positions; pos++ {
		if tail[k-1] != base(pos+k-1) {
			continue
		}
		mismatches := 0
		for i := 0; i < k-1 && mismatches <= m.Mismatches; i++ {
			if tail[i] != base(pos+i) {
				mismatches++
			}
		}
		if mismatches > m.Mismatches {
			continue
		}

		ext := k
		for ext < lp {
			t := pos - (ext - k) - 1
			if (!circular && t < 0) || (circular && ext >= lt) || primer[lp-ext-1] != base(t) {
				break
			}
			ext++
		}

		start := pos - (ext - k)
		if circular {
			start = ((start % lt) + lt) % lt
		}
		windows = append(windows, [2]Window{{lp - ext, lp}, {start, start + ext}})
	}
	return windows
}
