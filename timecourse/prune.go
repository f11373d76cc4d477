package timecourse

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Preprocessing failures. Either one means the downstream regression would
// be empty or singular, so they surface before any fitting happens.
var (
	ErrNoActiveChannels = errors.New("timecourse: no active channels")
	ErrTooShort         = errors.New("timecourse: series too short for requested order")
)

// Pruned is a channel-pruned, transposed time course ready for model
// fitting. Series is K' x T (channels by time); Kept maps each retained
// row back to its column index in the original recording, which is the
// caller's handle for reconciling original channel numbering.
type Pruned struct {
	Series *mat.Dense
	Kept   []int
	Names  []string
}

// Prune drops every channel that is identically zero across all timepoints
// and transposes the survivors to channels-by-time orientation. A channel
// with any nonzero entry counts as active. Returns ErrTooShort when the
// series has no more than order timepoints, and ErrNoActiveChannels when
// nothing survives the scan.
func Prune(tc *TimeCourse, order int) (*Pruned, error) {
	if tc == nil || tc.Data == nil {
		return nil, fmt.Errorf("time course data not provided")
	}
	if order <= 0 {
		return nil, fmt.Errorf("order must be > 0, got %d", order)
	}

	T, K := tc.Data.Dims()
	if T <= order {
		return nil, fmt.Errorf("%w: T = %d, order = %d", ErrTooShort, T, order)
	}

	// 1. Scan for active channels.
	kept := make([]int, 0, K)
	for j := 0; j < K; j++ {
		active := false
		for t := 0; t < T; t++ {
			if tc.Data.At(t, j) != 0 {
				active = true
				break
			}
		}
		if active {
			kept = append(kept, j)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: all %d channels are identically zero", ErrNoActiveChannels, K)
	}

	// 2. Transpose survivors into K' x T.
	series := mat.NewDense(len(kept), T, nil)
	names := make([]string, len(kept))
	for i, j := range kept {
		for t := 0; t < T; t++ {
			series.Set(i, t, tc.Data.At(t, j))
		}
		if j < len(tc.Names) {
			names[i] = tc.Names[j]
		} else {
			names[i] = fmt.Sprintf("ch%d", j+1)
		}
	}

	return &Pruned{Series: series, Kept: kept, Names: names}, nil
}

// Dims returns the number of retained channels and timepoints.
func (p *Pruned) Dims() (K, T int) {
	return p.Series.Dims()
}

// Window returns the w-length stretch of the pruned course starting at
// timepoint s, transposed to w x K' so rows are timepoints again. Surrogate
// series are seeded from such windows of the original data.
func (p *Pruned) Window(s, w int) (*mat.Dense, error) {
	K, T := p.Series.Dims()
	if s < 0 || w <= 0 || s+w > T {
		return nil, fmt.Errorf("window [%d, %d) out of range for T = %d", s, s+w, T)
	}
	out := mat.NewDense(w, K, nil)
	for r := 0; r < w; r++ {
		for c := 0; c < K; c++ {
			out.Set(r, c, p.Series.At(c, s+r))
		}
	}
	return out, nil
}
