package timecourse

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// almostEqual compares floats with tolerance
func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestNew(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Errorf("New(nil, nil) did not return an error")
	}

	data := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	if _, err := New(data, []string{"only one"}); err == nil {
		t.Errorf("New with mismatched names did not return an error")
	}

	tc, err := New(data, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	want := []string{"ch1", "ch2"}
	for j, name := range tc.Names {
		if name != want[j] {
			t.Errorf("default name %d = %q, want %q", j, name, want[j])
		}
	}
}

func TestPruneDropsZeroChannels(t *testing.T) {
	// Channel 1 is identically zero, channels 0 and 2 carry signal.
	data := mat.NewDense(4, 3, []float64{
		1.0, 0, 5.0,
		2.0, 0, 6.0,
		3.0, 0, 7.0,
		4.0, 0, 8.0,
	})
	tc, err := New(data, []string{"left", "dead", "right"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	pruned, err := Prune(tc, 1)
	if err != nil {
		t.Fatalf("Prune returned error: %v", err)
	}

	K, T := pruned.Dims()
	if K != 2 || T != 4 {
		t.Errorf("pruned dims = %dx%d, want 2x4", K, T)
	}
	if len(pruned.Kept) != 2 || pruned.Kept[0] != 0 || pruned.Kept[1] != 2 {
		t.Errorf("Kept = %v, want [0 2]", pruned.Kept)
	}
	if pruned.Names[0] != "left" || pruned.Names[1] != "right" {
		t.Errorf("Names = %v, want [left right]", pruned.Names)
	}

	// Series must be the transpose of the surviving columns.
	wantSeries := [][]float64{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
	}
	for i := range wantSeries {
		for tt := range wantSeries[i] {
			if got := pruned.Series.At(i, tt); !almostEqual(got, wantSeries[i][tt], 1e-12) {
				t.Errorf("Series[%d][%d] = %v, want %v", i, tt, got, wantSeries[i][tt])
			}
		}
	}
}

func TestPruneKeepsSignCancellingChannel(t *testing.T) {
	// Entries sum to zero but the channel is not identically zero, so it
	// must survive the scan.
	data := mat.NewDense(4, 1, []float64{1, -1, 2, -2})
	tc, err := New(data, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	pruned, err := Prune(tc, 1)
	if err != nil {
		t.Fatalf("Prune returned error: %v", err)
	}
	if K, _ := pruned.Dims(); K != 1 {
		t.Errorf("sign-cancelling channel was dropped, K = %d, want 1", K)
	}
}

func TestPruneAllZero(t *testing.T) {
	data := mat.NewDense(5, 2, nil)
	tc, err := New(data, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = Prune(tc, 1)
	if !errors.Is(err, ErrNoActiveChannels) {
		t.Errorf("Prune on all-zero input returned %v, want ErrNoActiveChannels", err)
	}
}

func TestPruneTooShort(t *testing.T) {
	data := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	tc, err := New(data, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	for _, order := range []int{3, 5} {
		if _, err := Prune(tc, order); !errors.Is(err, ErrTooShort) {
			t.Errorf("Prune with T=3, order=%d returned %v, want ErrTooShort", order, err)
		}
	}

	if _, err := Prune(tc, 0); err == nil {
		t.Errorf("Prune with order=0 did not return an error")
	}
}

func TestWindow(t *testing.T) {
	data := mat.NewDense(5, 2, []float64{
		10, 100,
		11, 101,
		12, 102,
		13, 103,
		14, 104,
	})
	tc, err := New(data, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	pruned, err := Prune(tc, 2)
	if err != nil {
		t.Fatalf("Prune returned error: %v", err)
	}

	w, err := pruned.Window(1, 2)
	if err != nil {
		t.Fatalf("Window returned error: %v", err)
	}
	want := [][]float64{
		{11, 101},
		{12, 102},
	}
	for r := range want {
		for c := range want[r] {
			if got := w.At(r, c); !almostEqual(got, want[r][c], 1e-12) {
				t.Errorf("Window[%d][%d] = %v, want %v", r, c, got, want[r][c])
			}
		}
	}

	if _, err := pruned.Window(4, 2); err == nil {
		t.Errorf("out-of-range window did not return an error")
	}
	if _, err := pruned.Window(-1, 2); err == nil {
		t.Errorf("negative window start did not return an error")
	}
}
