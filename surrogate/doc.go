// Package surrogate generates null-model multichannel time courses that
// preserve the linear autoregressive structure of a measured series while
// destroying the structure under test.
//
// # Overview
//
// Functional connectivity studies need a reference distribution: given a
// measured T x K time course, how much of an observed statistic is
// explained by linear dynamics alone? The generator answers by fitting an
// order-p autoregression to the active channels and rolling it forward
// once per surrogate. Each run seeds its first p rows from a uniformly
// chosen window of the original series and injects innovations in a
// freshly permuted order, drawn either from a multivariate normal matched
// to the residual mean and covariance (Gaussian) or from the empirical
// residual rows themselves (NonGaussian).
//
// The entry points are Generate, which runs the full pipeline from a raw
// timecourse.TimeCourse, and Synthesize for callers that already hold a
// pruned series and a fitted model. Both take an optional trailing
// Distribution argument; omitting it selects Gaussian. Surrogates are
// synthesized on a worker pool, with per-surrogate RNG streams seeded
// upfront from a single master seed so that results do not depend on
// scheduling.
package surrogate
