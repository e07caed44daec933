package assembly

import (
	"testing"

	"github.com/dgruano/ShareYourCloning-backend/internal/enzyme"
	"github.com/dgruano/ShareYourCloning-backend/internal/seq"
	"github.com/stretchr/testify/require"
)

// three fragments sharing 20bp terminal homology: a->b->c->a
var gibsonFragments = []seq.Fragment{
	seq.New("a", "ATACACGTCAGCACGAAACTGATGCATACGCCTTTACTTGCTGTGTCCACTGTTGGCCCAGTGTGAATCG", false),
	seq.New("b", "TGTTGGCCCAGTGTGAATCGCCCATCGGACTGGCATTTTTATTACACTCACTTAAGGGTTAAGTAAGTGT", false),
	seq.New("c", "CTTAAGGGTTAAGTAAGTGTACGCAGAGGCGCGCCCTCCTGAAGTGCGTGATACACGTCAGCACGAAACT", false),
}

const gibsonCircle = "circular: 1[50:70]->2[0:20], 2[50:70]->3[0:20], 3[50:70]->1[0:20]"

const gibsonProduct = "GATGCATACGCCTTTACTTGCTGTGTCCACTGTTGGCCCAGTGTGAATCGCCCATCGGACTGGCATTTTTATTACACTCACTTAAGGGTTAAGTAAGTGTACGCAGAGGCGCGCCCTCCTGAAGTGCGTGATACACGTCAGCACGAAACT"

// two fragments joined by an AATT overhang on one side and ACGG on the other
var stickyFragments = []seq.Fragment{
	seq.New("a", "ACGGTGTAGGCGAAATAGTAAATT", false).WithEnds(seq.End{Length: 4, Kind: seq.FivePrime}, seq.End{Length: 4, Kind: seq.FivePrime}),
	seq.New("b", "AATTTATTCAGGACCTAACCACGG", false).WithEnds(seq.End{Length: 4, Kind: seq.FivePrime}, seq.End{Length: 4, Kind: seq.FivePrime}),
}

// an insert flanked by EcoRI sites and a vector with one EcoRI site
var restrictionFragments = []seq.Fragment{
	seq.New("insert", "AAAGAATTCTAAAAGCTGTTGCACCTAGCCAAGTTCAACGAATTCAAA", false),
	seq.New("vector", "TTGAATTCCGCCCTGAAGCATTGCTTTGTGAAGAGGGACTTCAGCCAA", true),
}

// forward primer, template, reverse primer
const (
	pcrTemplate = "TAGACCTGCATACCGGCTCATTCTTCATGTGCAACCTAGGGAGAATGTGTACATACGCTCTTACTGCGGTCGCGTCTAAT"
	pcrForward  = "GGATCCCTGCATACCGGCTCATTCTT"
	pcrReverse  = "GAATTCACGCGACCGCAGTAAGAGCG"
	pcrProduct  = "GGATCCCTGCATACCGGCTCATTCTTCATGTGCAACCTAGGGAGAATGTGTACATACGCTCTTACTGCGGTCGCGTGAATTC"
	pcrPlan     = "linear: 1[5:26]->2[4:25], 2[55:75]->-3[0:20]"
)

func pcrFragments(forward string) []seq.Fragment {
	fwd := seq.New("fwd", forward, false)
	fwd.Primer = true
	rev := seq.New("rev", pcrReverse, false)
	rev.Primer = true
	return []seq.Fragment{fwd, seq.New("template", pcrTemplate, false), rev}
}

// a template and an insert with 40bp homology arms to it
var recombinationFragments = []seq.Fragment{
	seq.New("template", "CCATCTCTAAACCTTCTTCGAGACGCAACTCAACGAACGCCTATCACACTTCTATATGAACGATTGGCCTGAAGGGGCACTGGAATGGCTGCGTTACATGCGTCGTAGCGCGCTGAAAAGGTAATCTCTTTGGTCGTCCCCATTCCGAGA", false),
	seq.New("insert", "AGACGCAACTCAACGAACGCCTATCACACTTCTATATGAAACTGGTGAAATCAACACGCAGCGTTACATGCGTCGTAGCGCGCTGAAAAGGTAATCTCTT", false),
}

const recombinationProduct = "CCATCTCTAAACCTTCTTCGAGACGCAACTCAACGAACGCCTATCACACTTCTATATGAAACTGGTGAAATCAACACGCAGCGTTACATGCGTCGTAGCGCGCTGAAAAGGTAATCTCTTTGGTCGTCCCCATTCCGAGA"

func enzymes(t *testing.T, names ...string) []enzyme.Enzyme {
	t.Helper()
	e, err := enzyme.Default().Get(names...)
	require.NoError(t, err)
	return e
}

func planStrings(plans []Plan) []string {
	out := make([]string, len(plans))
	for i, p := range plans {
		out[i] = p.String()
	}
	return out
}
