package gem

import "errors"

// Run-fatal error kinds. Each aborts the glacier's simulation and is never
// retried internally; callers discriminate with errors.Is.
var (
	// ErrConfig reports an invalid model configuration, raised before any
	// state is mutated.
	ErrConfig = errors.New("invalid model configuration")

	// ErrDomainBoundary reports the glacier thickening past the modeled
	// domain edge; the simulation cannot continue meaningfully outside its
	// spatial extent.
	ErrDomainBoundary = errors.New("glacier exceeds domain boundaries")

	// ErrNumericalInstability reports a non-finite thickness in the
	// solution, usually mismatched units or inverted coefficients.
	ErrNumericalInstability = errors.New("non-finite value in numerical solution")

	// ErrNonConvergence reports a retreat or advance loop exhausting its
	// iteration budget before absorbing its volume.
	ErrNonConvergence = errors.New("mass redistribution failed to converge")
)
