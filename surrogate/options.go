package surrogate

import "fmt"

// Distribution selects how innovations are drawn during synthesis.
type Distribution string

const (
	// Gaussian draws a fresh noise bank per surrogate from a multivariate
	// normal matched to the residual mean and covariance.
	Gaussian Distribution = "gaussian"

	// NonGaussian reinjects the empirical residuals themselves in permuted
	// order, preserving their marginal distribution exactly.
	NonGaussian Distribution = "nongaussian"
)

// ParseDistribution maps a string onto a Distribution, for callers that
// take the choice from a command line or config file.
func ParseDistribution(s string) (Distribution, error) {
	switch Distribution(s) {
	case Gaussian:
		return Gaussian, nil
	case NonGaussian:
		return NonGaussian, nil
	}
	return "", fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidDistribution, s, Gaussian, NonGaussian)
}

// Options controls reproducibility and parallelism of a Generator. The zero
// value is ready to use.
type Options struct {
	// Seed for the master RNG. 0 draws a seed from the wall clock.
	Seed int64

	// Workers bounds the number of goroutines synthesizing surrogates.
	// 0 or negative uses one worker per CPU.
	Workers int
}
