// Package timecourse defines the observed multichannel recording handed to
// the surrogate pipeline and its preprocessing.
//
// # Overview
//
// A TimeCourse is a T x K matrix of T timepoints over K channels, for
// example the regional time series of a resting-state fMRI session. Before
// model fitting the course is pruned: channels that are identically zero
// carry no signal and would make the lag regression singular, so Prune
// drops them and reorients the survivors to channels-by-time. All
// downstream shapes are defined over the K' retained channels, and
// Pruned.Kept maps them back to the original column numbering.
package timecourse
