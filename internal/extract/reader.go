package extract

import (
	"encoding/csv"
	"fmt"
	"io"

	"gobudget/internal/models"
)

// ReadRows reads raw export rows from a CSV stream. The first line is the
// institution's header and is stripped before the rows reach the pipeline;
// rows of varying width are preserved as-is for schema detection.
func ReadRows(r io.Reader) ([]models.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows []models.RawRow
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading export row: %w", err)
		}
		if first {
			first = false
			continue
		}
		rows = append(rows, models.RawRow(record))
	}
	return rows, nil
}
