package cloning

import (
	"context"
	"time"

	"github.com/dgruano/ShareYourCloning-backend/config"
	"github.com/dgruano/ShareYourCloning-backend/internal/assembly"
	"github.com/dgruano/ShareYourCloning-backend/internal/enzyme"
	"github.com/dgruano/ShareYourCloning-backend/internal/notation"
	"github.com/dgruano/ShareYourCloning-backend/internal/seq"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Request is one assembly computation.
type Request struct {
	// ID of the request, a random one is assigned if empty
	ID string

	// Name of the request, ex: the request file it was read from
	Name string

	Technique Technique
	Fragments []seq.Fragment
	Params    Params

	// Known is a plan the caller wants built. If set, it must be one of the
	// plans the fragments allow and only its product is returned.
	Known *assembly.Plan

	// KnownPiece is the piece of a digest the caller wants, ex: the one
	// between two given cuts.
	KnownPiece *enzyme.Piece
}

// SetAssembly reads the known plan of a request, or the known piece of a
// digest, from its notation.
func (r *Request) SetAssembly(s string) error {
	if r.Technique == Digest {
		piece, err := notation.ParseDigest(s)
		if err != nil {
			return err
		}
		r.KnownPiece = &piece
		return nil
	}

	plan, err := notation.Parse(s)
	if err != nil {
		return err
	}
	r.Known = &plan
	return nil
}

// Result is the outcome of a request: plans and the product of each. The
// result of a digest has the pieces of the fragment in place of plans.
type Result struct {
	RequestID string
	Name      string
	Technique Technique
	Plans     []assembly.Plan
	Pieces    []enzyme.Piece
	Products  []seq.Fragment

	// Time the request finished
	Time time.Time

	// Execution is how long the request took
	Execution time.Duration
}

// Service runs requests against a shared configuration and enzyme table.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	conf    config.Config
	enzymes *enzyme.DB
	log     *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger requests are reported to.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// WithEnzymes sets the enzyme table restriction requests read from.
func WithEnzymes(db *enzyme.DB) Option {
	return func(s *Service) {
		s.enzymes = db
	}
}

// NewService creates a service. The enzyme table is read from the
// configured path, or the embedded one is used.
func NewService(conf *config.Config, opts ...Option) (*Service, error) {
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(assembly.ErrInvalidParameter, err.Error())
	}

	s := &Service{conf: *conf, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	if s.enzymes == nil {
		if conf.EnzymeDB != "" {
			db, err := enzyme.Load(conf.EnzymeDB)
			if err != nil {
				return nil, err
			}
			s.enzymes = db
		} else {
			s.enzymes = enzyme.Default()
		}
	}
	return s, nil
}

// Run computes a request.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	log := s.log.With(
		zap.String("request", req.ID),
		zap.String("technique", string(req.Technique)),
		zap.Int("fragments", len(req.Fragments)),
	)

	res := &Result{
		RequestID: req.ID,
		Name:      req.Name,
		Technique: req.Technique,
	}
	var err error
	if req.Technique == Digest {
		err = s.digest(ctx, req, res)
	} else {
		err = s.assemble(ctx, req, res)
	}
	if err != nil {
		log.Debug("request failed", zap.Error(err), zap.Duration("took", time.Since(start)))
		return nil, err
	}

	res.Time = time.Now()
	res.Execution = time.Since(start)
	log.Info("request done",
		zap.Int("plans", len(res.Plans)),
		zap.Int("products", len(res.Products)),
		zap.Duration("took", res.Execution),
	)
	return res, nil
}

// assemble finds the plans of a request and builds their products.
func (s *Service) assemble(ctx context.Context, req Request, res *Result) error {
	plans, fragments, err := s.plan(ctx, req)
	switch {
	case err != nil:
	case req.Known != nil:
		var known assembly.Plan
		known, err = assembly.Known(plans, *req.Known, fragments)
		plans = []assembly.Plan{known}
	case len(plans) == 0:
		err = errors.Wrapf(assembly.ErrNoValidAssembly, "no %s of the %d fragments", req.Technique, len(req.Fragments))
	}
	if err != nil {
		return err
	}

	products := make([]seq.Fragment, 0, len(plans))
	for _, p := range plans {
		product, err := assembly.Assemble(fragments, p)
		if err != nil {
			return err
		}
		products = append(products, product)
	}
	res.Plans, res.Products = plans, products
	return nil
}

// plan finds the candidate plans of a request. It returns the fragments the
// plans refer to, which differ from the request's for PCR.
func (s *Service) plan(ctx context.Context, req Request) ([]assembly.Plan, []seq.Fragment, error) {
	if len(req.Fragments) == 0 {
		return nil, nil, errors.Wrap(assembly.ErrInvalidParameter, "no fragments")
	}
	p := s.params(req.Technique, req.Params)

	switch req.Technique {
	case Ligation:
		plans, err := s.ligation(ctx, req, p)
		return plans, req.Fragments, err
	case Gibson:
		plans, err := s.join(ctx, req, assembly.Homology{MinLength: p.MinimalOverlap, Terminal: true}, p)
		return plans, req.Fragments, err
	case RestrictionLigation:
		plans, err := s.restrictionLigation(ctx, req, p)
		return plans, req.Fragments, err
	case PCR:
		return s.pcr(ctx, req, p)
	case HomologousRecombination:
		plans, err := s.homologousRecombination(ctx, req, p)
		return plans, req.Fragments, err
	}
	return nil, nil, errors.Wrapf(assembly.ErrInvalidParameter, "unknown technique %q", req.Technique)
}

// params fills the unset parameters of a request from the service's settings.
func (s *Service) params(t Technique, p Params) settings {
	out := settings{
		MinimalOverlap:      p.MinimalOverlap,
		AllowedMismatches:   s.conf.AllowedMismatches,
		AllowPartialOverlap: s.conf.AllowPartialOverlap,
		CircularOnly:        s.conf.CircularOnly,
		Blunt:               p.Blunt,
		Enzymes:             p.Enzymes,
		MaxCandidates:       p.MaxCandidates,
	}
	if out.MinimalOverlap == 0 {
		out.MinimalOverlap = s.conf.MinimalHomology
		if t == PCR {
			out.MinimalOverlap = s.conf.MinimalAnnealing
		}
	}
	if out.MaxCandidates == 0 {
		out.MaxCandidates = s.conf.MaxCandidates
	}
	if p.AllowedMismatches != nil {
		out.AllowedMismatches = *p.AllowedMismatches
	}
	if p.AllowPartialOverlap != nil {
		out.AllowPartialOverlap = *p.AllowPartialOverlap
	}
	if p.CircularOnly != nil {
		out.CircularOnly = *p.CircularOnly
	}
	return out
}
