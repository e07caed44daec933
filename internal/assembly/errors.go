package assembly

import (
	"github.com/dgruano/ShareYourCloning-backend/internal/enzyme"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidParameter is returned for out of range matcher or request parameters.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnknownEnzyme is returned when a restriction enzyme name is not in the table.
	ErrUnknownEnzyme = enzyme.ErrUnknown

	// ErrNoValidAssembly is returned when no plan joins the fragments.
	ErrNoValidAssembly = errors.New("no valid assembly")

	// ErrIncompatiblePlan is returned when a requested plan can't be built from the fragments.
	ErrIncompatiblePlan = errors.New("the provided assembly is not valid")

	// ErrAmbiguousTemplateOrder is returned when insertion plans exist but none
	// use the first fragment, forward, as the template.
	ErrAmbiguousTemplateOrder = errors.New("insertion requires the template to be the first fragment")

	// ErrTooManyCandidates is returned when enumeration exceeds the candidate limit.
	ErrTooManyCandidates = errors.New("too many candidate assemblies")
)
