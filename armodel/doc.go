// Package armodel fits multivariate autoregressions with least squares.
//
// # Overview
//
// Fit regresses each timepoint of a channels-by-time series on an intercept
// and the p preceding timepoints, returning the raw regression artifacts
// (FitResult) in fixed shapes so that an independent implementation of the
// same regression could be swapped in, plus the split ARModel form the
// synthesis recursion consumes. Simulate rolls a model forward with
// caller-supplied innovations; it is the deterministic core of surrogate
// generation and the handle tests use to pin the recursion down.
package armodel
