// Package cloning runs assembly requests: it turns a technique and its
// parameters into a matcher, searches the fragments' overlap graph and
// builds the products.
package cloning

import (
	"strings"

	"github.com/dgruano/ShareYourCloning-backend/internal/assembly"
	"github.com/pkg/errors"
)

// Technique is a way of joining DNA fragments.
type Technique string

const (
	// Ligation joins sticky or blunt ends.
	Ligation Technique = "ligation"

	// Gibson joins fragments through terminal homology.
	Gibson Technique = "gibson"

	// RestrictionLigation cuts fragments with enzymes and ligates the pieces.
	RestrictionLigation Technique = "restriction_ligation"

	// PCR amplifies a template with a forward and a reverse primer.
	PCR Technique = "pcr"

	// HomologousRecombination replaces part of a template with an insert
	// flanked by homology arms.
	HomologousRecombination Technique = "homologous_recombination"

	// Digest cuts a single fragment with enzymes into sticky ended pieces.
	Digest Technique = "digest"
)

// Techniques is every technique, in the order the CLI lists them.
var Techniques = []Technique{Ligation, Gibson, RestrictionLigation, PCR, HomologousRecombination, Digest}

// ParseTechnique reads a technique name. Dashes and underscores are
// interchangeable and case is ignored.
func ParseTechnique(name string) (Technique, error) {
	t := Technique(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_"))
	for _, known := range Techniques {
		if t == known {
			return t, nil
		}
	}
	return "", errors.Wrapf(assembly.ErrInvalidParameter, "unknown technique %q", name)
}

// UnmarshalText reads a technique from a request file.
func (t *Technique) UnmarshalText(text []byte) error {
	parsed, err := ParseTechnique(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Params tune a request. Zero and nil values fall back to the service's
// settings. The pointer fields override the settings when set, even to zero
// or false.
type Params struct {
	// MinimalOverlap is the shortest homology for Gibson assembly and
	// homologous recombination, and the shortest annealing for PCR
	MinimalOverlap int `yaml:"minimal_overlap" json:"minimal_overlap,omitempty"`

	// AllowedMismatches in the annealing part of a PCR primer
	AllowedMismatches *int `yaml:"allowed_mismatches" json:"allowed_mismatches,omitempty"`

	// AllowPartialOverlap lets overhangs anneal over part of their length
	AllowPartialOverlap *bool `yaml:"allow_partial_overlap" json:"allow_partial_overlap,omitempty"`

	// CircularOnly drops linear products
	CircularOnly *bool `yaml:"circular_only" json:"circular_only,omitempty"`

	// Blunt ligates blunt ends instead of sticky ones
	Blunt bool `yaml:"blunt" json:"blunt,omitempty"`

	// Enzymes used in restriction ligation and digestion
	Enzymes []string `yaml:"enzymes" json:"enzymes,omitempty"`

	// MaxCandidates caps the number of plans a search may find
	MaxCandidates int `yaml:"max_candidates" json:"max_candidates,omitempty"`
}

// Int returns a pointer to v, for the optional fields of Params.
func Int(v int) *int {
	return &v
}

// Bool returns a pointer to v, for the optional fields of Params.
func Bool(v bool) *bool {
	return &v
}

// settings are a request's parameters with every value resolved.
type settings struct {
	MinimalOverlap      int
	AllowedMismatches   int
	AllowPartialOverlap bool
	CircularOnly        bool
	Blunt               bool
	Enzymes             []string
	MaxCandidates       int
}
