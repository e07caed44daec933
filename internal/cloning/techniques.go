package cloning

import (
	"context"
	"strings"

	"github.com/dgruano/ShareYourCloning-backend/internal/assembly"
	"github.com/dgruano/ShareYourCloning-backend/internal/enzyme"
	"github.com/dgruano/ShareYourCloning-backend/internal/seq"
	"github.com/pkg/errors"
)

// join finds the plans that use every fragment: circular ones, then linear
// ones. Unless a known plan is looked up among them, linear plans that are
// part of a circular or longer linear plan are dropped. A single fragment
// can only be closed on itself.
func (s *Service) join(ctx context.Context, req Request, m assembly.Matcher, p settings) ([]assembly.Plan, error) {
	fragments := req.Fragments
	g, err := assembly.NewGraph(fragments, m, assembly.Options{
		UseAllFragments: true,
		MaxCandidates:   p.MaxCandidates,
	})
	if err != nil {
		return nil, err
	}

	circular, err := g.CircularAssemblies(ctx)
	if err != nil {
		return nil, err
	}
	if len(fragments) == 1 || p.CircularOnly {
		return circular, nil
	}

	linear, err := g.LinearAssemblies(ctx)
	if err != nil {
		return nil, err
	}
	if req.Known == nil {
		linear = assembly.FilterLinearSubassemblies(linear, circular, fragments)
	}
	return append(circular, linear...), nil
}

// ligation joins sticky ends, or blunt ones if asked to or if the known
// plan's junctions are empty.
func (s *Service) ligation(ctx context.Context, req Request, p settings) ([]assembly.Plan, error) {
	blunt := p.Blunt
	if req.Known != nil && len(req.Known.Edges) > 0 && req.Known.MinOverlap() == 0 {
		blunt = true
	}

	var m assembly.Matcher = assembly.Sticky{AllowPartial: p.AllowPartialOverlap}
	if blunt {
		m = assembly.Blunt{}
	}
	return s.join(ctx, req, m, p)
}

// restrictionLigation cuts the fragments with the requested enzymes. A
// single fragment may be closed on itself or have the part between two cuts
// removed.
func (s *Service) restrictionLigation(ctx context.Context, req Request, p settings) ([]assembly.Plan, error) {
	if len(p.Enzymes) == 0 {
		return nil, errors.Wrap(assembly.ErrInvalidParameter, "restriction ligation needs at least one enzyme")
	}
	enzymes, err := s.enzymes.Get(p.Enzymes...)
	if err != nil {
		return nil, err
	}
	m := assembly.RestrictionLigation{Enzymes: enzymes, AllowPartial: p.AllowPartialOverlap}

	if len(req.Fragments) > 1 {
		return s.join(ctx, req, m, p)
	}

	g, err := assembly.NewGraph(req.Fragments, m, assembly.Options{MaxCandidates: p.MaxCandidates})
	if err != nil {
		return nil, err
	}
	circular, err := g.CircularAssemblies(ctx)
	if err != nil {
		return nil, err
	}
	if p.CircularOnly {
		return circular, nil
	}
	excisions, err := g.InsertionAssemblies(ctx)
	if err != nil {
		return nil, err
	}
	return append(circular, excisions...), nil
}

// pcr amplifies the second fragment with the first as forward primer and
// the third as reverse primer. A known plan is checked without mismatches
// and with its shortest junction as the annealing length.
func (s *Service) pcr(ctx context.Context, req Request, p settings) ([]assembly.Plan, []seq.Fragment, error) {
	if len(req.Fragments) != 3 {
		return nil, nil, errors.Wrapf(assembly.ErrInvalidParameter, "pcr needs a forward primer, a template and a reverse primer, got %d fragments", len(req.Fragments))
	}

	fragments := make([]seq.Fragment, 3)
	copy(fragments, req.Fragments)
	fragments[0].Primer = true
	fragments[1].Primer = false
	fragments[2].Primer = true

	m := assembly.PCRAnnealing{MinAnnealing: p.MinimalOverlap, Mismatches: p.AllowedMismatches}
	if req.Known != nil {
		m.MinAnnealing = req.Known.MinOverlap()
		m.Mismatches = 0
	}

	g, err := assembly.NewGraph(fragments, m, assembly.Options{
		UseAllFragments:  true,
		UseFragmentOrder: true,
		MaxCandidates:    p.MaxCandidates,
	})
	if err != nil {
		return nil, nil, err
	}
	plans, err := g.LinearAssemblies(ctx)
	return plans, fragments, err
}

// homologousRecombination inserts the other fragments into the first one,
// which must be a linear template read forward. A known plan is checked
// with its shortest junction as the minimal homology.
func (s *Service) homologousRecombination(ctx context.Context, req Request, p settings) ([]assembly.Plan, error) {
	if len(req.Fragments) < 2 {
		return nil, errors.Wrap(assembly.ErrInvalidParameter, "homologous recombination needs a template and an insert")
	}
	if req.Fragments[0].Circular {
		return nil, errors.Wrapf(assembly.ErrInvalidParameter, "the template %s must be linear", req.Fragments[0].ID)
	}

	m := assembly.Homology{MinLength: p.MinimalOverlap}
	if req.Known != nil {
		m.MinLength = req.Known.MinOverlap()
	}

	g, err := assembly.NewGraph(req.Fragments, m, assembly.Options{
		UseAllFragments: true,
		MaxCandidates:   p.MaxCandidates,
	})
	if err != nil {
		return nil, err
	}
	insertions, err := g.InsertionAssemblies(ctx)
	if err != nil {
		return nil, err
	}

	var plans []assembly.Plan
	for _, ins := range insertions {
		if ins.Edges[0].From == (assembly.Node{Index: 0}) {
			plans = append(plans, ins)
		}
	}
	if len(plans) == 0 && len(insertions) > 0 {
		return nil, errors.Wrapf(assembly.ErrAmbiguousTemplateOrder, "%d insertions use another fragment as template", len(insertions))
	}
	return plans, nil
}

// digest cuts the request's single fragment with every enzyme. Each piece
// between consecutive cuts is a product, with the overhangs of its cuts as
// its ends. Every enzyme must cut the fragment.
func (s *Service) digest(ctx context.Context, req Request, res *Result) error {
	if len(req.Fragments) != 1 {
		return errors.Wrapf(assembly.ErrInvalidParameter, "a digest needs one fragment, got %d", len(req.Fragments))
	}
	p := s.params(req.Technique, req.Params)
	if len(p.Enzymes) == 0 {
		return errors.Wrap(assembly.ErrInvalidParameter, "a digest needs at least one enzyme")
	}
	enzymes, err := s.enzymes.Get(p.Enzymes...)
	if err != nil {
		return err
	}

	f := req.Fragments[0]
	if err := f.Validate(); err != nil {
		return errors.Wrap(assembly.ErrInvalidParameter, err.Error())
	}
	var cuts []enzyme.Cut
	var idle []string
	for _, e := range enzymes {
		found := e.Cuts(f.Seq, f.Circular)
		if len(found) == 0 {
			idle = append(idle, e.Name)
		}
		cuts = append(cuts, found...)
	}
	if len(idle) > 0 {
		return errors.Wrapf(assembly.ErrNoValidAssembly, "%s is not cut by %s", f.ID, strings.Join(idle, ", "))
	}

	pieces := enzyme.Pieces(f, cuts)
	if req.KnownPiece != nil {
		var known []enzyme.Piece
		for _, piece := range pieces {
			if piece.Same(*req.KnownPiece) {
				known = append(known, piece)
				break
			}
		}
		if len(known) == 0 {
			return errors.Wrapf(assembly.ErrIncompatiblePlan, "%s is not among the %d pieces of %s", req.KnownPiece, len(pieces), f.ID)
		}
		pieces = known
	}
	if len(pieces) == 0 {
		return errors.Wrapf(assembly.ErrNoValidAssembly, "no pieces of %s", f.ID)
	}

	res.Pieces = pieces
	res.Products = make([]seq.Fragment, 0, len(pieces))
	for _, piece := range pieces {
		res.Products = append(res.Products, piece.Extract(f))
	}
	return ctx.Err()
}
