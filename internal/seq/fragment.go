// Package seq holds DNA fragments: their sequence, topology and the
// shape of their two ends.
package seq

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// EndKind is the shape of a fragment end.
type EndKind int

const (
	// Blunt ends have no single stranded overhang.
	Blunt EndKind = iota

	// FivePrime ends have a protruding strand that ends with a 5' terminus.
	FivePrime

	// ThreePrime ends have a protruding strand that ends with a 3' terminus.
	ThreePrime
)

// String returns the end kind's short name.
func (k EndKind) String() string {
	switch k {
	case FivePrime:
		return "5'"
	case ThreePrime:
		return "3'"
	default:
		return "blunt"
	}
}

// MarshalText encodes the end kind for JSON and YAML.
func (k EndKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses an end kind written as "blunt", "5'" or "3'".
func (k *EndKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "blunt":
		*k = Blunt
	case "5'", "5", "five_prime", "fiveprime":
		*k = FivePrime
	case "3'", "3", "three_prime", "threeprime":
		*k = ThreePrime
	default:
		return fmt.Errorf("unknown end kind %q", text)
	}
	return nil
}

// End describes one end of a double stranded fragment.
type End struct {
	// Length of the single stranded overhang, 0 for blunt ends
	Length int `json:"length" yaml:"length"`

	// Kind of the overhang
	Kind EndKind `json:"kind" yaml:"kind"`
}

// Side is either end of a fragment.
type Side int

const (
	// Left is the end at position 0 of the top strand.
	Left Side = iota

	// Right is the end at the last position of the top strand.
	Right
)

// Fragment is a double stranded DNA molecule. Seq is the projection of both
// strands onto the top strand: the overhang of the left end is Seq[:Left.Length]
// and that of the right end is Seq[len(Seq)-Right.Length:].
type Fragment struct {
	// ID of the fragment, ex: "pUC19"
	ID string `json:"id" yaml:"id"`

	// Seq is the upper case sequence of the fragment
	Seq string `json:"seq" yaml:"seq"`

	// Circular is whether the fragment has no ends
	Circular bool `json:"circular" yaml:"circular"`

	// Left end of the fragment
	Left End `json:"left" yaml:"left"`

	// Right end of the fragment
	Right End `json:"right" yaml:"right"`

	// Primer marks a single stranded oligo used in a PCR
	Primer bool `json:"primer,omitempty" yaml:"primer,omitempty"`
}

// ErrInvalidFragment is returned for sequences or ends that cannot describe a fragment.
var ErrInvalidFragment = errors.New("invalid fragment")

// nonIUPAC matches anything that is not a nucleotide or ambiguity code.
var nonIUPAC = regexp.MustCompile(`[^ACGTURYKMSWBDHVN]`)

// whitespace is stripped from sequences pasted in from files or the command line.
var whitespace = regexp.MustCompile(`\s+`)

// New returns a blunt ended fragment with an upper cased copy of s.
func New(id, s string, circular bool) Fragment {
	return Fragment{
		ID:       id,
		Seq:      strings.ToUpper(whitespace.ReplaceAllString(s, "")),
		Circular: circular,
	}
}

// WithEnds returns a copy of the fragment with the given ends.
func (f Fragment) WithEnds(left, right End) Fragment {
	f.Left = left
	f.Right = right
	return f
}

// Len is the number of bases in the fragment.
func (f Fragment) Len() int {
	return len(f.Seq)
}

// Overhang returns the projected sequence of one end's overhang.
func (f Fragment) Overhang(side Side) string {
	if side == Left {
		return f.Seq[:f.Left.Length]
	}
	return f.Seq[len(f.Seq)-f.Right.Length:]
}

// Validate checks the alphabet and that the ends fit in the sequence.
func (f Fragment) Validate() error {
	if f.Seq == "" {
		return errors.Wrapf(ErrInvalidFragment, "%s has an empty sequence", f.ID)
	}
	if loc := nonIUPAC.FindStringIndex(f.Seq); loc != nil {
		return errors.Wrapf(ErrInvalidFragment, "%s has an invalid base %q at %d", f.ID, f.Seq[loc[0]], loc[0])
	}
	if f.Circular && (f.Left.Length != 0 || f.Right.Length != 0) {
		return errors.Wrapf(ErrInvalidFragment, "%s is circular and cannot have overhangs", f.ID)
	}
	for _, e := range []End{f.Left, f.Right} {
		if e.Length < 0 {
			return errors.Wrapf(ErrInvalidFragment, "%s has a negative overhang length", f.ID)
		}
		if (e.Length == 0) != (e.Kind == Blunt) {
			return errors.Wrapf(ErrInvalidFragment, "%s has a %s end of length %d", f.ID, e.Kind, e.Length)
		}
	}
	if f.Left.Length+f.Right.Length > len(f.Seq) {
		return errors.Wrapf(ErrInvalidFragment, "%s overhangs are longer than its sequence", f.ID)
	}
	return nil
}

// ReverseComplement returns the fragment read from the other strand. The ends
// swap sides and keep their kind: the protruding strand is the same molecule.
func (f Fragment) ReverseComplement() Fragment {
	return Fragment{
		ID:       f.ID,
		Seq:      RevComp(f.Seq),
		Circular: f.Circular,
		Left:     f.Right,
		Right:    f.Left,
		Primer:   f.Primer,
	}
}
