package armodel

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Simulate rolls the model recursion forward deterministically. The first p
// rows of the result copy initial (p x K'); every following row adds the
// matching innovations row to the model prediction from the p preceding
// rows. The result has p+n rows for n innovation rows, timepoints as rows.
func Simulate(model *ARModel, initial, innovations *mat.Dense) (*mat.Dense, error) {
	if model == nil || len(model.Lags) == 0 {
		return nil, fmt.Errorf("model not provided")
	}
	if initial == nil || innovations == nil {
		return nil, fmt.Errorf("initial window and innovations not provided")
	}

	K := model.Channels()
	p := model.Order()

	ir, ic := initial.Dims()
	if ir != p || ic != K {
		return nil, fmt.Errorf("initial window has wrong shape: got %dx%d, expected %dx%d", ir, ic, p, K)
	}
	n, nc := innovations.Dims()
	if nc != K {
		return nil, fmt.Errorf("innovations have %d columns, expected %d", nc, K)
	}

	T := p + n
	out := mat.NewDense(T, K, nil)

	// Copy the initial window.
	for t := 0; t < p; t++ {
		for c := 0; c < K; c++ {
			out.Set(t, c, initial.At(t, c))
		}
	}

	// Roll forward: x_t = w + sum_j A_j x_{t-j} + innovation.
	for t := p; t < T; t++ {
		for eq := 0; eq < K; eq++ {
			val := model.Intercept.AtVec(eq)
			for j := 1; j <= p; j++ {
				Aj := model.Lags[j-1]
				src := t - j
				for k := 0; k < K; k++ {
					val += Aj.At(eq, k) * out.At(src, k)
				}
			}
			val += innovations.At(t-p, eq)
			out.Set(t, eq, val)
		}
	}

	return out, nil
}
