package surrogate

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// gaussianNoise samples innovation vectors from a multivariate normal
// matched to the fitted residuals: mean is the per-channel residual mean,
// covariance the sample covariance of the residual rows.
type gaussianNoise struct {
	mu []float64
	L  *mat.TriDense // lower Cholesky factor of the residual covariance
}

// newGaussianNoise fits the noise model to residual rows (timepoints by
// channels). A covariance that is not positive definite, which happens when
// a channel is perfectly predicted or two channels are collinear, is
// rejected rather than papered over.
func newGaussianNoise(resRows *mat.Dense) (*gaussianNoise, error) {
	n, K := resRows.Dims()
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least two residual rows to estimate noise covariance, got %d", ErrDegenerateInput, n)
	}

	mu := make([]float64, K)
	for k := 0; k < K; k++ {
		mu[k] = stat.Mean(mat.Col(nil, k, resRows), nil)
	}

	cov := mat.NewSymDense(K, nil)
	stat.CovarianceMatrix(cov, resRows, nil)

	var chol mat.Cholesky
	if ok := chol.Factorize(cov); !ok {
		return nil, fmt.Errorf("%w: residual covariance is not positive definite", ErrDegenerateInput)
	}

	L := mat.NewTriDense(K, mat.Lower, nil)
	chol.LTo(L)

	return &gaussianNoise{mu: mu, L: L}, nil
}

// drawBank samples n innovation vectors as rows: x = mu + L*z with z
// standard normal, so each row has the target mean and covariance.
func (g *gaussianNoise) drawBank(rng *rand.Rand, n int) *mat.Dense {
	K := len(g.mu)
	bank := mat.NewDense(n, K, nil)

	z := mat.NewVecDense(K, nil)
	var x mat.VecDense
	for i := 0; i < n; i++ {
		for k := 0; k < K; k++ {
			z.SetVec(k, rng.NormFloat64())
		}
		x.MulVec(g.L, z)
		for k := 0; k < K; k++ {
			bank.Set(i, k, g.mu[k]+x.AtVec(k))
		}
	}
	return bank
}
