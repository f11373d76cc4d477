package surrogate

import "errors"

// Sentinel errors returned by Generate and Synthesize. Callers can test for
// them with errors.Is; the wrapped message carries the offending values.
var (
	// ErrArgumentCount reports a call with more than one distribution value.
	ErrArgumentCount = errors.New("surrogate: wrong number of arguments")

	// ErrInvalidDistribution reports a distribution value that is neither
	// Gaussian nor NonGaussian.
	ErrInvalidDistribution = errors.New("surrogate: unrecognized distribution")

	// ErrDegenerateInput reports input the generator refuses to model: no
	// active channels, too few timepoints for the requested order, or
	// residuals whose covariance cannot seed a Gaussian noise model. When
	// preprocessing is the cause, the concrete timecourse sentinel stays
	// reachable through errors.Is.
	ErrDegenerateInput = errors.New("surrogate: degenerate input")
)
