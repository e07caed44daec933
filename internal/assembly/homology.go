package assembly

import "sort"

// Homology joins fragments that share identical sequence.
type Homology struct {
	// MinLength is the shortest shared sequence that can join two fragments
	MinLength int

	// Terminal restricts junctions to a suffix of x equal to a prefix of y, as
	// in Gibson assembly. Otherwise any shared sequence joins them, as in
	// homologous recombination.
	Terminal bool
}

// Method is MethodHomology.
func (Homology) Method() Method { return MethodHomology }

func (Homology) sealed() {}

// Match returns the junctions between x and y, longest first.
func (m Homology) Match(x, y Oriented) ([]Edge, error) {
	if err := checkMatcher(m); err != nil {
		return nil, err
	}
	if x.Circular || y.Circular {
		return nil, nil
	}

	var pairs [][2]Window
	if m.Terminal {
		pairs = junctions(x.Seq, y.Seq, m.MinLength)
	} else {
		pairs = commonSubstrings(x.Seq, y.Seq, m.MinLength)
	}

	edges := make([]Edge, 0, len(pairs))
	for _, p := range pairs {
		edges = append(edges, Edge{
			From:       x.Node,
			To:         y.Node,
			FromWindow: p[0],
			ToWindow:   p[1],
			Method:     MethodHomology,
		})
	}
	return edges, nil
}

// junctions returns every identical overlap between the end of this sequence
// and the start of the other that is at least minHomology long, longest first.
//
//	    v-longest overlap           v-minHomology from end
//	------------------------------------
//	    -----------------------------------------
func junctions(thisSeq, otherSeq string, minHomology int) (windows [][2]Window) {
	lx := len(thisSeq)
	for k := min(lx, len(otherSeq)); k >= minHomology; k-- {
		if thisSeq[lx-k:] == otherSeq[:k] {
			windows = append(windows, [2]Window{{lx - k, lx}, {0, k}})
		}
	}
	return windows
}

// commonSubstrings returns every maximal run of identical bases shared by
// the two sequences that is at least minHomology long. Runs are found by
// walking each diagonal of the alignment matrix once.
func commonSubstrings(a, b string, minHomology int) (windows [][2]Window) {
	for d := -(len(b) - 1); d < len(a); d++ {
		i := max(0, d)
		j := i - d
		run := 0
		for ; i < len(a) && j < len(b); i, j = i+1, j+1 {
			if a[i] == b[j] {
				run++
				continue
			}
			if run >= minHomology {
				windows = append(windows, [2]Window{{i - run, i}, {j - run, j}})
			}
			run = 0
		}
		if run >= minHomology {
			windows = append(windows, [2]Window{{i - run, i}, {j - run, j}})
		}
	}

	sortWindows(windows)
	return windows
}

// sortWindows orders junctions longest first, then by position.
func sortWindows(windows [][2]Window) {
	sort.Slice(windows, func(i, j int) bool {
		return windowLess(windows[i], windows[j])
	})
}

func windowLess(a, b [2]Window) bool {
	if a[0].Len() != b[0].Len() {
		return a[0].Len() > b[0].Len()
	}
	if c := a[0].compare(b[0]); c != 0 {
		return c < 0
	}
	return a[1].compare(b[1]) < 0
}
