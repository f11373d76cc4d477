package surrogate

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestWriteCSV(t *testing.T) {
	ens := &Ensemble{
		Surrogates: []*mat.Dense{
			mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6}),
			mat.NewDense(3, 2, []float64{-1, -2, -3, -4, -5, -6}),
		},
		Names:        []string{"pcc", "mpfc"},
		Kept:         []int{0, 1},
		Distribution: Gaussian,
		Seed:         1,
	}

	path := filepath.Join(t.TempDir(), "surrogates.csv")
	if err := ens.WriteCSV(path); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(records) != 1+2*3 {
		t.Fatalf("got %d records, want 7", len(records))
	}

	header := records[0]
	wantHeader := []string{"surrogate", "t", "pcc", "mpfc"}
	for i, w := range wantHeader {
		if header[i] != w {
			t.Errorf("header[%d] = %q, want %q", i, header[i], w)
		}
	}

	// Row for surrogate 2, t = 1.
	row := records[1+3+1]
	if row[0] != "2" || row[1] != "1" {
		t.Errorf("row labels = (%s, %s), want (2, 1)", row[0], row[1])
	}
	v, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		t.Fatalf("parsing value: %v", err)
	}
	if v != -3 {
		t.Errorf("surrogate 2 t=1 channel pcc = %v, want -3", v)
	}
}
