package cloning

import (
	"testing"

	"github.com/dgruano/ShareYourCloning-backend/config"
	"github.com/dgruano/ShareYourCloning-backend/internal/assembly"
	"github.com/dgruano/ShareYourCloning-backend/internal/enzyme"
	"github.com/dgruano/ShareYourCloning-backend/internal/notation"
	"github.com/dgruano/ShareYourCloning-backend/internal/seq"
	"github.com/stretchr/testify/require"
)

var (
	gibsonA = seq.New("a", "ATACACGTCAGCACGAAACTGATGCATACGCCTTTACTTGCTGTGTCCACTGTTGGCCCAGTGTGAATCG", false)
	gibsonB = seq.New("b", "TGTTGGCCCAGTGTGAATCGCCCATCGGACTGGCATTTTTATTACACTCACTTAAGGGTTAAGTAAGTGT", false)
	gibsonC = seq.New("c", "CTTAAGGGTTAAGTAAGTGTACGCAGAGGCGCGCCCTCCTGAAGTGCGTGATACACGTCAGCACGAAACT", false)
)

const gibsonProduct = "GATGCATACGCCTTTACTTGCTGTGTCCACTGTTGGCCCAGTGTGAATCGCCCATCGGACTGGCATTTTTATTACACTCACTTAAGGGTTAAGTAAGTGTACGCAGAGGCGCGCCCTCCTGAAGTGCGTGATACACGTCAGCACGAAACT"

var (
	five          = seq.End{Length: 4, Kind: seq.FivePrime}
	stickyA       = seq.New("a", "ACGGTGTAGGCGAAATAGTAAATT", false).WithEnds(five, five)
	stickyB       = seq.New("b", "AATTTATTCAGGACCTAACCACGG", false).WithEnds(five, five)
	stickyProduct = "TGTAGGCGAAATAGTAAATTTATTCAGGACCTAACCACGG"
)

var (
	insert = seq.New("insert", "AAAGAATTCTAAAAGCTGTTGCACCTAGCCAAGTTCAACGAATTCAAA", false)
	vector = seq.New("vector", "TTGAATTCCGCCCTGAAGCATTGCTTTGTGAAGAGGGACTTCAGCCAA", true)
)

const (
	restrictionCircle = "circular: 1[40:44]@EcoRI->2[3:7]@EcoRI, 2[3:7]@EcoRI->1[4:8]@EcoRI"
	restrictionFlip   = "circular: 1[40:44]@EcoRI->-2[41:45]@EcoRI, -2[41:45]@EcoRI->1[4:8]@EcoRI"
)

var (
	forward  = seq.New("fwd", "GGATCCCTGCATACCGGCTCATTCTT", false)
	template = seq.New("template", "TAGACCTGCATACCGGCTCATTCTTCATGTGCAACCTAGGGAGAATGTGTACATACGCTCTTACTGCGGTCGCGTCTAAT", false)
	reverse  = seq.New("rev", "GAATTCACGCGACCGCAGTAAGAGCG", false)

	// forward with a mismatch 16 bases from its 3' end
	forwardMismatch = seq.New("fwd", "GGATCCCTGCCTACCGGCTCATTCTT", false)
)

const (
	pcrPlan    = "linear: 1[5:26]->2[4:25], 2[55:75]->-3[0:20]"
	pcrProduct = "GGATCCCTGCATACCGGCTCATTCTTCATGTGCAACCTAGGGAGAATGTGTACATACGCTCTTACTGCGGTCGCGTGAATTC"
)

var (
	hrTemplate = seq.New("template", "CCATCTCTAAACCTTCTTCGAGACGCAACTCAACGAACGCCTATCACACTTCTATATGAACGATTGGCCTGAAGGGGCACTGGAATGGCTGCGTTACATGCGTCGTAGCGCGCTGAAAAGGTAATCTCTTTGGTCGTCCCCATTCCGAGA", false)
	hrInsert   = seq.New("insert", "AGACGCAACTCAACGAACGCCTATCACACTTCTATATGAAACTGGTGAAATCAACACGCAGCGTTACATGCGTCGTAGCGCGCTGAAAAGGTAATCTCTT", false)

	// two inserts that join each other and carry one homology arm each
	hrLeft  = seq.New("left", "AGACGCAACTCAACGAACGCCTATCACACTTCTATATGAAGGATCACAGTCTACACTGCTCACTCCAACCCCGGCCCCTGAGTCCGAGGAGAGGG", false)
	hrRight = seq.New("right", "CTGCTCACTCCAACCCCGGCCCCTGAGTCCGAGGAGAGGGTGCTTCAGAGTATGTGCGTTACATGCGTCGTAGCGCGCTGAAAAGGTAATCTCTT", false)
)

const (
	hrProduct      = "CCATCTCTAAACCTTCTTCGAGACGCAACTCAACGAACGCCTATCACACTTCTATATGAAACTGGTGAAATCAACACGCAGCGTTACATGCGTCGTAGCGCGCTGAAAAGGTAATCTCTTTGGTCGTCCCCATTCCGAGA"
	hrThreeProduct = "CCATCTCTAAACCTTCTTCGAGACGCAACTCAACGAACGCCTATCACACTTCTATATGAAGGATCACAGTCTACACTGCTCACTCCAACCCCGGCCCCTGAGTCCGAGGAGAGGGTGCTTCAGAGTATGTGCGTTACATGCGTCGTAGCGCGCTGAAAAGGTAATCTCTTTGGTCGTCCCCATTCCGAGA"
)

func testConfig() *config.Config {
	return &config.Config{
		MinimalHomology:  40,
		MinimalAnnealing: 20,
		MaxCandidates:    10000,
		BatchConcurrency: 2,
	}
}

func newService(t *testing.T) *Service {
	t.Helper()
	s, err := NewService(testConfig())
	require.NoError(t, err)
	return s
}

func plan(s string) *assembly.Plan {
	p := notation.MustParse(s)
	return &p
}

func knownPiece(t *testing.T, s string) *enzyme.Piece {
	t.Helper()
	p, err := notation.ParseDigest(s)
	require.NoError(t, err)
	return &p
}

func planStrings(plans []assembly.Plan) []string {
	out := make([]string, len(plans))
	for i, p := range plans {
		out[i] = p.String()
	}
	return out
}
