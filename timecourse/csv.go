package timecourse

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// LoadCSV reads a time course from a CSV file. The first row is the header
// carrying channel names; every following row is one timepoint with one
// float value per channel.
func LoadCSV(path string) (*TimeCourse, error) {
	// 1. Open file
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	// 2. Make CSV reader
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	// 3. Read header row
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("empty header in %s", path)
	}
	K := len(header)

	var (
		data []float64 // flat data for mat.Dense
		row  int       // row counter
	)

	// 4. Read each data row
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row+2, err) // +2 for header + 1-based
		}

		// Skip completely empty lines
		if len(record) == 1 && record[0] == "" {
			continue
		}

		if len(record) != K {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", row+2, K, len(record))
		}

		for j, s := range record {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("parse float at row %d col %d (%q): %w", row+2, j+1, s, err)
			}
			data = append(data, v)
		}
		row++
	}

	if row == 0 {
		return nil, fmt.Errorf("no data rows in %s", path)
	}

	// 5. Build the T x K matrix
	return New(mat.NewDense(row, K, data), header)
}
