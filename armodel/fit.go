package armodel

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Fit estimates an order-p autoregression on a K' x T series (channels by
// time) with multivariate least squares. The regression stacks one target
// row per timepoint t = p..T-1 against an intercept column and the p
// preceding timepoints, solves the normal equations, and falls back to an
// SVD minimum-norm solution when X'X is singular.
func Fit(series *mat.Dense, order int) (*FitResult, error) {
	if series == nil {
		return nil, fmt.Errorf("series data not provided")
	}

	K, T := series.Dims()
	p := order

	if p <= 0 {
		return nil, fmt.Errorf("order must be > 0, got %d", p)
	}
	if K == 0 {
		return nil, fmt.Errorf("series has no channels")
	}
	if T <= p {
		return nil, fmt.Errorf("need at least p+1 observations: p = %d, T = %d", p, T)
	}

	n := T - p   // usable target rows
	m := K*p + 1 // regressors: intercept + p lag blocks

	// 1. Response matrix Y: rows are x_p, x_{p+1}, ..., x_{T-1}.
	Y := mat.NewDense(n, K, nil)
	for t := 0; t < n; t++ {
		for k := 0; k < K; k++ {
			Y.Set(t, k, series.At(k, t+p))
		}
	}

	// 2. Design matrix X, one row per target:
	//    [1, x_{t-1,1..K'}, x_{t-2,1..K'}, ..., x_{t-p,1..K'}]
	X := mat.NewDense(n, m, nil)
	for t := 0; t < n; t++ {
		X.Set(t, 0, 1.0)
		col := 1
		for j := 1; j <= p; j++ {
			src := t + p - j
			for k := 0; k < K; k++ {
				X.Set(t, col, series.At(k, src))
				col++
			}
		}
	}

	// 3. Solve for Bhat (m x K). First try the normal equations
	//    Bhat = (X'X)^(-1) X'Y.
	var Bhat mat.Dense

	var xtx mat.Dense
	xtx.Mul(X.T(), X)

	var xtxInv mat.Dense
	xtxError := xtxInv.Inverse(&xtx)

	if xtxError == nil {
		var xty mat.Dense
		xty.Mul(X.T(), Y)
		Bhat.Mul(&xtxInv, &xty)
	} else {
		// Fallback: X'X is singular or badly conditioned. Use SVD-based
		// least squares, minimizing ||Y - X B||_F with minimum-norm B.
		var svd mat.SVD
		ok := svd.Factorize(X, mat.SVDFullU|mat.SVDFullV)
		if !ok {
			return nil, fmt.Errorf("least squares failed: X'X singular and SVD factorization failed: %v", xtxError)
		}

		rank := svd.Rank(1e-12)
		if rank == 0 {
			// X is numerically all-zero; the minimum-norm solution is B = 0.
			Bhat = *mat.NewDense(m, K, nil)
		} else {
			svd.SolveTo(&Bhat, Y, rank)
		}
	}

	// 4. Residuals U = Y - X*Bhat, one row per fitted timepoint.
	var Yhat mat.Dense
	Yhat.Mul(X, &Bhat)

	var U mat.Dense
	U.Sub(Y, &Yhat) // n x K

	// 5. Residual covariance with regression degrees of freedom.
	var utu mat.Dense
	utu.Mul(U.T(), &U)

	df := float64(n - m)
	if df <= 0 {
		df = float64(n) // fallback
	}
	sigmaData := make([]float64, K*K)
	for i := 0; i < K; i++ {
		for j := 0; j < K; j++ {
			sigmaData[i*K+j] = utu.At(i, j) / df
		}
	}
	sigmaU := mat.NewSymDense(K, sigmaData)

	// 6. Reorient into the result layout: coefficients as K' x m with
	//    equations as rows, design as m x n with regressor columns,
	//    residuals as K' x n.
	B := mat.NewDense(K, m, nil)
	for eq := 0; eq < K; eq++ {
		for c := 0; c < m; c++ {
			B.Set(eq, c, Bhat.At(c, eq))
		}
	}

	Z := mat.NewDense(m, n, nil)
	for c := 0; c < m; c++ {
		for t := 0; t < n; t++ {
			Z.Set(c, t, X.At(t, c))
		}
	}

	E := mat.NewDense(K, n, nil)
	for eq := 0; eq < K; eq++ {
		for t := 0; t < n; t++ {
			E.Set(eq, t, U.At(t, eq))
		}
	}

	return &FitResult{Y: Y, B: B, Z: Z, E: E, Order: p, SigmaU: sigmaU}, nil
}
