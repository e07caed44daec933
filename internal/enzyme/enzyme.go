// Package enzyme parses restriction enzyme recognition sites and finds where
// they cut a sequence.
package enzyme

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dgruano/ShareYourCloning-backend/internal/seq"
	"github.com/pkg/errors"
)

// ErrUnknown is returned for enzyme names missing from the table.
var ErrUnknown = errors.New("unknown enzyme")

// ErrInvalidSite is returned for recognition sites that can't be parsed.
var ErrInvalidSite = errors.New("invalid recognition site")

// Enzyme is a restriction enzyme. The top strand is cut cutInd bases after the
// start of the recognition site and the bottom strand hangInd bases after it.
type Enzyme struct {
	Name    string
	Site    string
	recog   string
	cutInd  int
	hangInd int
	re      *regexp.Regexp
}

// Parse a recognition site written with "^" at the top strand cut and "_" at
// the bottom strand cut, ex: EcoRI "G^AATT_C" or BsaI "GGTCTCN^NNNN_N".
func Parse(name, site string) (Enzyme, error) {
	site = strings.ToUpper(strings.TrimSpace(site))
	if strings.Count(site, "^") != 1 || strings.Count(site, "_") != 1 {
		return Enzyme{}, errors.Wrapf(ErrInvalidSite, "%s: %s needs one '^' and one '_'", name, site)
	}

	cutIndex := strings.Index(site, "^")
	hangIndex := strings.Index(site, "_")
	if cutIndex < hangIndex {
		hangIndex--
	} else {
		cutIndex--
	}

	recog := strings.NewReplacer("^", "", "_", "").Replace(site)
	if recog == "" || strings.Trim(recog, "ACGTMRWYSKHDVBNX") != "" {
		return Enzyme{}, errors.Wrapf(ErrInvalidSite, "%s: %s", name, site)
	}

	return Enzyme{
		Name:    name,
		Site:    site,
		recog:   recog,
		cutInd:  cutIndex,
		hangInd: hangIndex,
		re:      regexp.MustCompile("^" + recogRegex(recog)),
	}, nil
}

// Recognition is the recognition sequence without cut marks.
func (e Enzyme) Recognition() string {
	return e.recog
}

// Overhang is the signed overhang length: positive for 5' overhangs,
// negative for 3' overhangs, zero for blunt cutters.
func (e Enzyme) Overhang() int {
	return e.hangInd - e.cutInd
}

// recogRegex turns a recognition sequence into a regex for searching the
// template sequence for digestion sites
func recogRegex(recog string) (decoded string) {
	regexDecode := map[rune]string{
		'A': "A",
		'C': "C",
		'G': "G",
		'T': "T",
		'M': "(A|C)",
		'R': "(A|G)",
		'W': "(A|T)",
		'Y': "(C|T)",
		'S': "(C|G)",
		'K': "(G|T)",
		'H': "(A|C|T)",
		'D': "(A|G|T)",
		'V': "(A|C|G)",
		'B': "(C|G|T)",
		'N': "(A|C|G|T)",
		'X': "(A|C|G|T)",
	}

	var regexDecoder strings.Builder
	for _, c := range recog {
		regexDecoder.WriteString(regexDecode[c])
	}

	return regexDecoder.String()
}

// Cut is where an enzyme cuts a sequence. Top and Bottom are the positions of
// the cuts in the top and bottom strands, in top strand coordinates.
type Cut struct {
	Enzyme string
	Top    int
	Bottom int
}

// Start is the first base of the overhang left by the cut.
func (c Cut) Start() int {
	if c.Top < c.Bottom {
		return c.Top
	}
	return c.Bottom
}

// Len is the overhang length.
func (c Cut) Len() int {
	if c.Top < c.Bottom {
		return c.Bottom - c.Top
	}
	return c.Top - c.Bottom
}

// Kind is the shape of the two ends left by the cut.
func (c Cut) Kind() seq.EndKind {
	switch {
	case c.Top < c.Bottom:
		return seq.FivePrime
	case c.Top > c.Bottom:
		return seq.ThreePrime
	default:
		return seq.Blunt
	}
}

// Cuts returns every cut the enzyme makes in a sequence, on both strands,
// sorted by position. On linear sequences both strand cuts must fall inside
// the sequence. On circular sequences sites may span the origin: Start() is
// reduced into [0, len) and the other cut may lie past the end.
func (e Enzyme) Cuts(s string, circular bool) []Cut {
	n, k := len(s), len(e.recog)
	if n == 0 || (!circular && n < k) {
		return nil
	}

	search := s
	if circular {
		for len(search) < n+k {
			search += s
		}
	}
	m := len(search)
	rc := seq.RevComp(search)

	seen := make(map[Cut]bool)
	var cuts []Cut
	add := func(top, bottom int) {
		if circular {
			shift := (min(top, bottom) / n) * n
			top, bottom = top-shift, bottom-shift
		} else if top <= 0 || top >= n || bottom <= 0 || bottom >= n {
			return
		}
		c := Cut{Enzyme: e.Name, Top: top, Bottom: bottom}
		if !seen[c] {
			seen[c] = true
			cuts = append(cuts, c)
		}
	}

	for p := 0; p+k <= m && (!circular || p < n); p++ {
		if e.re.MatchString(search[p:]) {
			add(p+e.cutInd, p+e.hangInd)
		}
	}
	for p := 0; p+k <= m; p++ {
		if e.re.MatchString(rc[p:]) {
			// cut x on the reverse strand is m-x on the top strand
			add(m-p-e.hangInd, m-p-e.cutInd)
		}
	}

	sortCuts(cuts)
	return cuts
}

// sortCuts orders cuts by position.
func sortCuts(cuts []Cut) {
	sort.SliceStable(cuts, func(i, j int) bool {
		if cuts[i].Start() != cuts[j].Start() {
			return cuts[i].Start() < cuts[j].Start()
		}
		return cuts[i].Top < cuts[j].Top
	})
}
