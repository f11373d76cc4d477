package surrogate

import "gonum.org/v1/gonum/mat"

// Ensemble holds the output of surrogate generation: one T x K' matrix per
// surrogate over the pruned channel set.
type Ensemble struct {
	Surrogates []*mat.Dense // each T x K', timepoints as rows

	Names []string // names of the kept channels
	Kept  []int    // original column indices of the kept channels

	Distribution Distribution
	Seed         int64 // master seed actually used
}

// Dims reports timepoints, channels and ensemble size.
func (e *Ensemble) Dims() (T, K, n int) {
	n = len(e.Surrogates)
	if n > 0 && e.Surrogates[0] != nil {
		T, K = e.Surrogates[0].Dims()
	}
	return T, K, n
}
