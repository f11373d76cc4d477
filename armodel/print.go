package armodel

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Summary produces a summary table of the fitted model: dimensions, channel
// names, intercept, lag matrices and residual covariance.
func (r *FitResult) Summary(names []string) string {
	if r == nil {
		return "AR model is nil\n"
	}

	var b strings.Builder

	K, n := r.E.Dims()

	fmt.Fprintln(&b, "         AR Model Summary         ")
	fmt.Fprintf(&b, "Number of channels (K'): %d\n", K)
	fmt.Fprintf(&b, "Lag order (p):           %d\n", r.Order)
	fmt.Fprintf(&b, "Fitted timepoints (T-p): %d\n", n)
	if len(names) == K {
		fmt.Fprintf(&b, "Channels: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintln(&b)

	model, err := r.Model()
	if err != nil {
		fmt.Fprintf(&b, "coefficients unavailable: %v\n", err)
		return b.String()
	}

	fmt.Fprintln(&b, "Intercept w:")
	fmt.Fprintf(&b, "%v\n", mat.Formatted(model.Intercept, mat.Prefix("  ")))

	fmt.Fprintln(&b, "\nCoefficient matrices A_1 ... A_p:")
	for j, Aj := range model.Lags {
		fmt.Fprintf(&b, "\nA_%d =\n", j+1)
		fmt.Fprintf(&b, "%v\n", mat.Formatted(Aj, mat.Prefix("  ")))
	}

	if r.SigmaU != nil {
		fmt.Fprintln(&b, "\nResidual covariance matrix:")
		fmt.Fprintf(&b, "%v\n", mat.Formatted(r.SigmaU, mat.Prefix("  ")))
	}

	fmt.Fprintln(&b, "==================================")

	return b.String()
}
