package cloning

import (
	"context"
	"testing"

	"github.com/dgruano/ShareYourCloning-backend/config"
	"github.com/dgruano/ShareYourCloning-backend/internal/assembly"
	"github.com/dgruano/ShareYourCloning-backend/internal/seq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestService_Run(t *testing.T) {
	type want struct {
		plans    []string
		products []string
	}
	tests := []struct {
		name string
		req  Request
		want want
	}{
		{
			"gibson",
			Request{Technique: Gibson, Fragments: []seq.Fragment{gibsonA, gibsonB, gibsonC}, Params: Params{MinimalOverlap: 20}},
			want{
				[]string{"circular: 1[50:70]->2[0:20], 2[50:70]->3[0:20], 3[50:70]->1[0:20]"},
				[]string{gibsonProduct},
			},
		},
		{
			"gibson linear plan",
			Request{
				Technique: Gibson,
				Fragments: []seq.Fragment{gibsonA, gibsonB, gibsonC},
				Params:    Params{MinimalOverlap: 20},
				Known:     plan("linear: -3[50:70]->-2[0:20], -2[50:70]->-1[0:20]"),
			},
			want{
				[]string{"linear: 1[50:70]->2[0:20], 2[50:70]->3[0:20]"},
				[]string{gibsonA.Seq + gibsonB.Seq[20:] + gibsonC.Seq[20:]},
			},
		},
		{
			"sticky ligation",
			Request{Technique: Ligation, Fragments: []seq.Fragment{stickyA, stickyB}},
			want{
				[]string{"circular: 1[20:24]->2[0:4], 2[20:24]->1[0:4]"},
				[]string{stickyProduct},
			},
		},
		{
			"blunt ligation of a known plan",
			Request{
				Technique: Ligation,
				Fragments: []seq.Fragment{gibsonA, gibsonB, gibsonC},
				Known:     plan("linear: 1[70:70]->2[0:0], 2[70:70]->3[0:0]"),
			},
			want{
				[]string{"linear: 1[70:70]->2[0:0], 2[70:70]->3[0:0]"},
				[]string{gibsonA.Seq + gibsonB.Seq + gibsonC.Seq},
			},
		},
		{
			"restriction ligation",
			Request{Technique: RestrictionLigation, Fragments: []seq.Fragment{insert, vector}, Params: Params{Enzymes: []string{"EcoRI"}}},
			want{
				[]string{restrictionCircle, restrictionFlip},
				[]string{
					"CTAAAAGCTGTTGCACCTAGCCAAGTTCAACGAATTCCGCCCTGAAGCATTGCTTTGTGAAGAGGGACTTCAGCCAATTGAATT",
					"CTAAAAGCTGTTGCACCTAGCCAAGTTCAACGAATTCAATTGGCTGAAGTCCCTCTTCACAAAGCAATGCTTCAGGGCGGAATT",
				},
			},
		},
		{
			"restriction ligation of a known plan",
			Request{
				Technique: RestrictionLigation,
				Fragments: []seq.Fragment{insert, vector},
				Params:    Params{Enzymes: []string{"ecori"}},
				Known:     plan(restrictionFlip),
			},
			want{
				[]string{restrictionFlip},
				[]string{"CTAAAAGCTGTTGCACCTAGCCAAGTTCAACGAATTCAATTGGCTGAAGTCCCTCTTCACAAAGCAATGCTTCAGGGCGGAATT"},
			},
		},
		{
			"single fragment restriction",
			Request{Technique: RestrictionLigation, Fragments: []seq.Fragment{insert}, Params: Params{Enzymes: []string{"EcoRI"}}},
			want{
				[]string{"circular: 1[40:44]@EcoRI->1[4:8]@EcoRI", "insertion: 1[4:8]@EcoRI->1[40:44]@EcoRI"},
				[]string{"CTAAAAGCTGTTGCACCTAGCCAAGTTCAACGAATT", "AAAGAATTCAAA"},
			},
		},
		{
			"single fragment restriction, circular only",
			Request{Technique: RestrictionLigation, Fragments: []seq.Fragment{insert}, Params: Params{Enzymes: []string{"EcoRI"}, CircularOnly: Bool(true)}},
			want{
				[]string{"circular: 1[40:44]@EcoRI->1[4:8]@EcoRI"},
				[]string{"CTAAAAGCTGTTGCACCTAGCCAAGTTCAACGAATT"},
			},
		},
		{
			"pcr",
			Request{Technique: PCR, Fragments: []seq.Fragment{forward, template, reverse}},
			want{[]string{pcrPlan}, []string{pcrProduct}},
		},
		{
			"pcr with a mismatch",
			Request{Technique: PCR, Fragments: []seq.Fragment{forwardMismatch, template, reverse}, Params: Params{AllowedMismatches: Int(1)}},
			want{
				[]string{pcrPlan},
				[]string{"GGATCCCTGCCTACCGGCTCATTCTTCATGTGCAACCTAGGGAGAATGTGTACATACGCTCTTACTGCGGTCGCGTGAATTC"},
			},
		},
		{
			"pcr of a known plan",
			Request{Technique: PCR, Fragments: []seq.Fragment{forward, template, reverse}, Known: plan(pcrPlan)},
			want{[]string{pcrPlan}, []string{pcrProduct}},
		},
		{
			"homologous recombination",
			Request{Technique: HomologousRecombination, Fragments: []seq.Fragment{hrTemplate, hrInsert}},
			want{
				[]string{"insertion: 1[20:60]->2[0:40], 2[60:100]->1[90:130]"},
				[]string{hrProduct},
			},
		},
		{
			"homologous recombination of two inserts",
			Request{Technique: HomologousRecombination, Fragments: []seq.Fragment{hrTemplate, hrLeft, hrRight}},
			want{
				[]string{"insertion: 1[20:60]->2[0:40], 2[55:95]->3[0:40], 3[54:95]->1[89:130]"},
				[]string{hrThreeProduct},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newService(t).Run(context.Background(), tt.req)
			require.NoError(t, err)

			assert.Equal(t, tt.want.plans, planStrings(got.Plans))
			products := make([]string, len(got.Products))
			for i, p := range got.Products {
				products[i] = p.Seq
			}
			assert.Equal(t, tt.want.products, products)
			assert.NotEmpty(t, got.RequestID)
			assert.Equal(t, tt.req.Technique, got.Technique)
		})
	}
}

func TestService_Run_errors(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{
			"no fragments",
			Request{Technique: Gibson},
			assembly.ErrInvalidParameter,
		},
		{
			"unknown technique",
			Request{Technique: "golden_gate", Fragments: []seq.Fragment{gibsonA}},
			assembly.ErrInvalidParameter,
		},
		{
			"homology shorter than the minimum",
			Request{Technique: Gibson, Fragments: []seq.Fragment{gibsonA, gibsonB, gibsonC}},
			assembly.ErrNoValidAssembly,
		},
		{
			"unknown enzyme",
			Request{Technique: RestrictionLigation, Fragments: []seq.Fragment{insert, vector}, Params: Params{Enzymes: []string{"EcoRI", "NotAnEnzyme"}}},
			assembly.ErrUnknownEnzyme,
		},
		{
			"no enzymes",
			Request{Technique: RestrictionLigation, Fragments: []seq.Fragment{insert, vector}},
			assembly.ErrInvalidParameter,
		},
		{
			"enzyme that doesn't cut",
			Request{Technique: RestrictionLigation, Fragments: []seq.Fragment{insert, vector}, Params: Params{Enzymes: []string{"BamHI"}}},
			assembly.ErrNoValidAssembly,
		},
		{
			"known plan with the wrong enzyme",
			Request{
				Technique: RestrictionLigation,
				Fragments: []seq.Fragment{insert, vector},
				Params:    Params{Enzymes: []string{"BamHI"}},
				Known:     plan(restrictionCircle),
			},
			assembly.ErrIncompatiblePlan,
		},
		{
			"known plan with unequal windows",
			Request{
				Technique: Gibson,
				Fragments: []seq.Fragment{gibsonA, gibsonB, gibsonC},
				Params:    Params{MinimalOverlap: 20},
				Known:     plan("circular: 1[50:70]->2[0:21], 2[50:70]->3[0:20], 3[50:70]->1[0:20]"),
			},
			assembly.ErrIncompatiblePlan,
		},
		{
			"pcr without a reverse primer",
			Request{Technique: PCR, Fragments: []seq.Fragment{forward, template}},
			assembly.ErrInvalidParameter,
		},
		{
			"pcr with a 3' mismatch",
			Request{Technique: PCR, Fragments: []seq.Fragment{seq.New("fwd", "GGATCCCTGCATACCGGCTCATTCTG", false), template, reverse}, Params: Params{AllowedMismatches: Int(1)}},
			assembly.ErrNoValidAssembly,
		},
		{
			"known pcr plan is checked without mismatches",
			Request{Technique: PCR, Fragments: []seq.Fragment{forwardMismatch, template, reverse}, Params: Params{AllowedMismatches: Int(1)}, Known: plan(pcrPlan)},
			assembly.ErrIncompatiblePlan,
		},
		{
			"template isn't first",
			Request{Technique: HomologousRecombination, Fragments: []seq.Fragment{hrLeft, hrTemplate, hrRight}},
			assembly.ErrAmbiguousTemplateOrder,
		},
		{
			"circular template",
			Request{Technique: HomologousRecombination, Fragments: []seq.Fragment{seq.New("template", hrTemplate.Seq, true), hrInsert}},
			assembly.ErrInvalidParameter,
		},
		{
			"too many candidates",
			Request{Technique: Ligation, Fragments: []seq.Fragment{gibsonA, gibsonB, gibsonC}, Params: Params{Blunt: true, MaxCandidates: 1}},
			assembly.ErrTooManyCandidates,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService(t).Run(context.Background(), tt.req)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestService_Run_logs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s, err := NewService(testConfig(), WithLogger(zap.New(core)))
	require.NoError(t, err)

	_, err = s.Run(context.Background(), Request{ID: "req-1", Technique: Ligation, Fragments: []seq.Fragment{stickyA, stickyB}})
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request"])
	assert.Equal(t, "ligation", fields["technique"])
	assert.EqualValues(t, 2, fields["fragments"])
	assert.EqualValues(t, 1, fields["plans"])
}

func TestNewService(t *testing.T) {
	conf := testConfig()
	conf.MinimalHomology = 0
	_, err := NewService(conf)
	assert.True(t, errors.Is(err, assembly.ErrInvalidParameter))

	conf = testConfig()
	conf.EnzymeDB = "missing.tsv"
	_, err = NewService(conf)
	assert.Error(t, err)
}

func TestParseTechnique(t *testing.T) {
	for in, want := range map[string]Technique{
		"gibson":                   Gibson,
		"Restriction-Ligation":     RestrictionLigation,
		" pcr ":                    PCR,
		"homologous_recombination": HomologousRecombination,
		"Digest":                   Digest,
	} {
		got, err := ParseTechnique(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseTechnique("crispr")
	assert.True(t, errors.Is(err, assembly.ErrInvalidParameter))
}

func TestService_Run_overrides(t *testing.T) {
	partialX := seq.New("x", "GGGGAATT", false).WithEnds(seq.End{}, five)
	partialY := seq.New("y", "TTCCGGGG", false).WithEnds(five, seq.End{})

	tests := []struct {
		name     string
		conf     func(c *config.Config)
		req      Request
		products []string
		wantErr  error
	}{
		{
			"mismatches from the settings",
			func(c *config.Config) { c.AllowedMismatches = 1 },
			Request{Technique: PCR, Fragments: []seq.Fragment{forwardMismatch, template, reverse}},
			[]string{"GGATCCCTGCCTACCGGCTCATTCTTCATGTGCAACCTAGGGAGAATGTGTACATACGCTCTTACTGCGGTCGCGTGAATTC"},
			nil,
		},
		{
			"request asks for exact annealing",
			func(c *config.Config) { c.AllowedMismatches = 1 },
			Request{Technique: PCR, Fragments: []seq.Fragment{forwardMismatch, template, reverse}, Params: Params{AllowedMismatches: Int(0)}},
			nil,
			assembly.ErrNoValidAssembly,
		},
		{
			"circular only from the settings",
			func(c *config.Config) { c.CircularOnly = true },
			Request{Technique: RestrictionLigation, Fragments: []seq.Fragment{insert}, Params: Params{Enzymes: []string{"EcoRI"}}},
			[]string{"CTAAAAGCTGTTGCACCTAGCCAAGTTCAACGAATT"},
			nil,
		},
		{
			"request turns circular only off",
			func(c *config.Config) { c.CircularOnly = true },
			Request{Technique: RestrictionLigation, Fragments: []seq.Fragment{insert}, Params: Params{Enzymes: []string{"EcoRI"}, CircularOnly: Bool(false)}},
			[]string{"CTAAAAGCTGTTGCACCTAGCCAAGTTCAACGAATT", "AAAGAATTCAAA"},
			nil,
		},
		{
			"no partial overlap by default",
			func(c *config.Config) {},
			Request{Technique: Ligation, Fragments: []seq.Fragment{partialX, partialY}},
			nil,
			assembly.ErrNoValidAssembly,
		},
		{
			"request allows partial overlap",
			func(c *config.Config) {},
			Request{Technique: Ligation, Fragments: []seq.Fragment{partialX, partialY}, Params: Params{AllowPartialOverlap: Bool(true)}},
			[]string{"GGGGAATTCCGGGG"},
			nil,
		},
		{
			"request turns partial overlap off",
			func(c *config.Config) { c.AllowPartialOverlap = true },
			Request{Technique: Ligation, Fragments: []seq.Fragment{partialX, partialY}, Params: Params{AllowPartialOverlap: Bool(false)}},
			nil,
			assembly.ErrNoValidAssembly,
		},
		{
			"recombination arms shorter than the minimal homology",
			func(c *config.Config) { c.MinimalHomology = 50 },
			Request{Technique: HomologousRecombination, Fragments: []seq.Fragment{hrTemplate, hrInsert}},
			nil,
			assembly.ErrNoValidAssembly,
		},
		{
			"known recombination plan with arms shorter than the minimal homology",
			func(c *config.Config) { c.MinimalHomology = 50 },
			Request{
				Technique: HomologousRecombination,
				Fragments: []seq.Fragment{hrTemplate, hrInsert},
				Known:     plan("insertion: 1[20:60]->2[0:40], 2[60:100]->1[90:130]"),
			},
			[]string{hrProduct},
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := testConfig()
			tt.conf(conf)
			s, err := NewService(conf)
			require.NoError(t, err)

			got, err := s.Run(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			products := make([]string, len(got.Products))
			for i, p := range got.Products {
				products[i] = p.Seq
			}
			assert.Equal(t, tt.products, products)
		})
	}
}

func TestService_Run_digest(t *testing.T) {
	type want struct {
		pieces   []string
		products []string
	}
	tests := []struct {
		name string
		req  Request
		want want
	}{
		{
			"linear",
			Request{Technique: Digest, Fragments: []seq.Fragment{insert}, Params: Params{Enzymes: []string{"EcoRI"}}},
			want{
				[]string{"digest: start, [4:8]@EcoRI", "digest: [4:8]@EcoRI, [40:44]@EcoRI", "digest: [40:44]@EcoRI, end"},
				[]string{"AAAGAATT", "AATTCTAAAAGCTGTTGCACCTAGCCAAGTTCAACGAATT", "AATTCAAA"},
			},
		},
		{
			"circular",
			Request{Technique: Digest, Fragments: []seq.Fragment{vector}, Params: Params{Enzymes: []string{"ecori"}}},
			want{
				[]string{"digest: [3:7]@EcoRI, [3:7]@EcoRI"},
				[]string{"AATTCCGCCCTGAAGCATTGCTTTGTGAAGAGGGACTTCAGCCAATTGAATT"},
			},
		},
		{
			"known piece",
			Request{Technique: Digest, Fragments: []seq.Fragment{insert}, Params: Params{Enzymes: []string{"EcoRI"}}, KnownPiece: knownPiece(t, "digest: [4:8]@EcoRI, [40:44]@EcoRI")},
			want{
				[]string{"digest: [4:8]@EcoRI, [40:44]@EcoRI"},
				[]string{"AATTCTAAAAGCTGTTGCACCTAGCCAAGTTCAACGAATT"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newService(t).Run(context.Background(), tt.req)
			require.NoError(t, err)

			pieces := make([]string, len(got.Pieces))
			for i, p := range got.Pieces {
				pieces[i] = p.String()
			}
			products := make([]string, len(got.Products))
			for i, p := range got.Products {
				require.NoError(t, p.Validate())
				products[i] = p.Seq
			}
			assert.Equal(t, tt.want.pieces, pieces)
			assert.Equal(t, tt.want.products, products)
			assert.Empty(t, got.Plans)
		})
	}
}

func TestService_Run_digest_errors(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{
			"two fragments",
			Request{Technique: Digest, Fragments: []seq.Fragment{insert, vector}, Params: Params{Enzymes: []string{"EcoRI"}}},
			assembly.ErrInvalidParameter,
		},
		{
			"no enzymes",
			Request{Technique: Digest, Fragments: []seq.Fragment{insert}},
			assembly.ErrInvalidParameter,
		},
		{
			"unknown enzyme",
			Request{Technique: Digest, Fragments: []seq.Fragment{insert}, Params: Params{Enzymes: []string{"NotAnEnzyme"}}},
			assembly.ErrUnknownEnzyme,
		},
		{
			"enzyme that doesn't cut",
			Request{Technique: Digest, Fragments: []seq.Fragment{insert}, Params: Params{Enzymes: []string{"BamHI"}}},
			assembly.ErrNoValidAssembly,
		},
		{
			"one of the enzymes doesn't cut",
			Request{Technique: Digest, Fragments: []seq.Fragment{insert}, Params: Params{Enzymes: []string{"EcoRI", "BamHI"}}},
			assembly.ErrNoValidAssembly,
		},
		{
			"unknown piece",
			Request{Technique: Digest, Fragments: []seq.Fragment{insert}, Params: Params{Enzymes: []string{"EcoRI"}}, KnownPiece: knownPiece(t, "digest: [4:8]@EcoRI, [41:45]@EcoRI")},
			assembly.ErrIncompatiblePlan,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService(t).Run(context.Background(), tt.req)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestService_Run_digestThenLigate(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	cut := func(f seq.Fragment, piece string) seq.Fragment {
		res, err := s.Run(ctx, Request{Technique: Digest, Fragments: []seq.Fragment{f}, Params: Params{Enzymes: []string{"EcoRI"}}, KnownPiece: knownPiece(t, piece)})
		require.NoError(t, err)
		require.Len(t, res.Products, 1)
		return res.Products[0]
	}
	insertPiece := cut(insert, "digest: [4:8]@EcoRI, [40:44]@EcoRI")
	vectorPiece := cut(vector, "digest: [3:7]@EcoRI, [3:7]@EcoRI")

	// the insert closed on itself
	res, err := s.Run(ctx, Request{Technique: Ligation, Fragments: []seq.Fragment{insertPiece}})
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "CTAAAAGCTGTTGCACCTAGCCAAGTTCAACGAATT", res.Products[0].Seq)

	// the insert ligated into the vector, in both orientations
	res, err = s.Run(ctx, Request{Technique: Ligation, Fragments: []seq.Fragment{insertPiece, vectorPiece}})
	require.NoError(t, err)
	products := make([]string, len(res.Products))
	for i, p := range res.Products {
		products[i] = p.Seq
	}
	assert.ElementsMatch(t, []string{
		"CTAAAAGCTGTTGCACCTAGCCAAGTTCAACGAATTCCGCCCTGAAGCATTGCTTTGTGAAGAGGGACTTCAGCCAATTGAATT",
		"CTAAAAGCTGTTGCACCTAGCCAAGTTCAACGAATTCAATTGGCTGAAGTCCCTCTTCACAAAGCAATGCTTCAGGGCGGAATT",
	}, products)
}
