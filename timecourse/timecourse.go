package timecourse

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// TimeCourse holds an observed multichannel recording.
type TimeCourse struct {
	// Matrix for the observed values, rows are timepoints (T x K)
	Data *mat.Dense
	// Channel labels, one per column
	Names []string
}

// New builds a TimeCourse from a T x K matrix and optional channel names.
// When names is nil the channels are labelled ch1..chK.
func New(data *mat.Dense, names []string) (*TimeCourse, error) {
	if data == nil {
		return nil, fmt.Errorf("time course data not provided")
	}
	T, K := data.Dims()
	if T == 0 || K == 0 {
		return nil, fmt.Errorf("time course is empty: %dx%d", T, K)
	}
	if names == nil {
		names = DefaultNames(K)
	}
	if len(names) != K {
		return nil, fmt.Errorf("got %d channel names for %d channels", len(names), K)
	}
	return &TimeCourse{Data: data, Names: names}, nil
}

// DefaultNames returns fallback channel labels ch1..chK.
func DefaultNames(K int) []string {
	names := make([]string, K)
	for j := range names {
		names[j] = fmt.Sprintf("ch%d", j+1)
	}
	return names
}

// Dims returns the number of timepoints and channels.
func (tc *TimeCourse) Dims() (T, K int) {
	return tc.Data.Dims()
}
