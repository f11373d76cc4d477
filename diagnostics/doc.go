// Package diagnostics compares a surrogate ensemble against the series it
// was generated from: channel moments, residual normality, pooled
// autocorrelation and increment covariance. The report is advisory; it
// never rejects an ensemble on its own.
package diagnostics
