package surrogate

import (
	"encoding/csv"
	"fmt"
	"os"
)

// WriteCSV writes the ensemble in long format, one row per surrogate and
// timepoint. Columns: surrogate (1-based), t, then one column per kept
// channel.
func (e *Ensemble) WriteCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := append([]string{"surrogate", "t"}, e.Names...)
	if err := writer.Write(header); err != nil {
		return err
	}

	for u, surr := range e.Surrogates {
		T, K := surr.Dims()
		for t := 0; t < T; t++ {
			record := make([]string, 0, K+2)
			record = append(record, fmt.Sprintf("%d", u+1), fmt.Sprintf("%d", t))
			for k := 0; k < K; k++ {
				record = append(record, fmt.Sprintf("%g", surr.At(t, k)))
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}

	return writer.Error()
}
