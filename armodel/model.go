package armodel

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ARModel is a fitted multivariate autoregression
//
//	x[t] = w + sum_{j=1..p} A[j] x[t-j] + e[t]
//
// over K' channels.
type ARModel struct {
	// Intercept vector w (length K')
	Intercept *mat.VecDense
	// Coefficient matrices A_1..A_p, each K' x K', index j-1 holding lag j
	Lags []*mat.Dense
}

// Order returns the number of lags p.
func (m *ARModel) Order() int { return len(m.Lags) }

// Channels returns the channel count K'.
func (m *ARModel) Channels() int { return m.Intercept.Len() }

// FitResult bundles the raw regression artifacts of a least-squares AR fit
// in the layout downstream consumers expect:
//
//	Y  (T-p) x K'         response rows x_p .. x_{T-1}
//	B  K' x (K'*p + 1)    column 0 the intercept, then p lag blocks of K'
//	                      columns each, ordered by increasing lag
//	Z  (K'*p + 1) x (T-p) design matrix, one regressor column per target row
//	E  K' x (T-p)         residuals, channels by observations
type FitResult struct {
	Y *mat.Dense
	B *mat.Dense
	Z *mat.Dense
	E *mat.Dense

	// Lag order of the regression
	Order int

	// Residual covariance with regression degrees of freedom, kept for the
	// model summary
	SigmaU *mat.SymDense
}

// Model splits the coefficient matrix into the intercept vector and the
// per-lag blocks.
func (r *FitResult) Model() (*ARModel, error) {
	if r == nil || r.B == nil {
		return nil, fmt.Errorf("fit result not provided")
	}
	K, cols := r.B.Dims()
	p := r.Order
	if p <= 0 || cols != K*p+1 {
		return nil, fmt.Errorf("coefficient matrix has %d columns, want %d for K'=%d, p=%d", cols, K*p+1, K, p)
	}

	w := mat.NewVecDense(K, nil)
	for i := 0; i < K; i++ {
		w.SetVec(i, r.B.At(i, 0))
	}

	lags := make([]*mat.Dense, p)
	for j := 0; j < p; j++ {
		Aj := mat.NewDense(K, K, nil)
		colOffset := 1 + j*K
		for eq := 0; eq < K; eq++ {
			for c := 0; c < K; c++ {
				Aj.Set(eq, c, r.B.At(eq, colOffset+c))
			}
		}
		lags[j] = Aj
	}

	return &ARModel{Intercept: w, Lags: lags}, nil
}

// ResidualRows returns the residuals transposed to (T-p) x K', one row per
// fitted timepoint. Covariance estimation wants this orientation, with
// channels as columns.
func (r *FitResult) ResidualRows() *mat.Dense {
	K, n := r.E.Dims()
	rows := mat.NewDense(n, K, nil)
	for i := 0; i < n; i++ {
		for c := 0; c < K; c++ {
			rows.Set(i, c, r.E.At(c, i))
		}
	}
	return rows
}
