// Package assembly finds the ways DNA fragments can be joined. Fragments are
// nodes of an overlap graph, compatible ends are edges, and assemblies are
// paths and cycles through the graph.
package assembly

import (
	"strconv"

	"github.com/dgruano/ShareYourCloning-backend/internal/seq"
)

// Node is a fragment read from one of its strands.
type Node struct {
	// Index of the fragment in the input
	Index int

	// Reverse is whether the fragment is read as its reverse complement
	Reverse bool
}

// Flip returns the same fragment on the other strand.
func (n Node) Flip() Node {
	return Node{Index: n.Index, Reverse: !n.Reverse}
}

// compare orders nodes by index, forward before reverse.
func (n Node) compare(o Node) int {
	switch {
	case n.Index != o.Index:
		return cmpInt(n.Index, o.Index)
	case n.Reverse == o.Reverse:
		return 0
	case !n.Reverse:
		return -1
	default:
		return 1
	}
}

// String is the node's 1-based index, negative when reversed.
func (n Node) String() string {
	s := strconv.Itoa(n.Index + 1)
	if n.Reverse {
		return "-" + s
	}
	return s
}

// Window is a half-open range [Start, End) on an oriented fragment. On
// circular fragments End may be past the fragment's length.
type Window struct {
	Start int
	End   int
}

// Len is the number of bases in the window.
func (w Window) Len() int {
	return w.End - w.Start
}

// mirror maps the window onto the reverse complement of a fragment.
func (w Window) mirror(f seq.Fragment) Window {
	length := f.Len()
	start := length - w.End
	if f.Circular {
		start = ((start % length) + length) % length
	}
	return Window{Start: start, End: start + w.Len()}
}

func (w Window) compare(o Window) int {
	if w.Start != o.Start {
		return cmpInt(w.Start, o.Start)
	}
	return cmpInt(w.End, o.End)
}

func (w Window) String() string {
	return "[" + strconv.Itoa(w.Start) + ":" + strconv.Itoa(w.End) + "]"
}

// Oriented is a fragment as read through a Node.
type Oriented struct {
	Node
	seq.Fragment
}

// orient reads a fragment from the strand a node names.
func orient(fragments []seq.Fragment, n Node) Oriented {
	f := fragments[n.Index]
	if n.Reverse {
		f = f.ReverseComplement()
	}
	return Oriented{Node: n, Fragment: f}
}

// window reads the bases of a window on the oriented fragment.
func (o Oriented) window(w Window) string {
	return seq.Window(o.Seq, o.Circular, w.Start, w.End)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
