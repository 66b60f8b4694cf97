package export

import (
	"bytes"
	"encoding/csv"
)

// Dataset is a tabular payload ready for export.
type Dataset struct {
	Title   string
	Headers []string
	Rows    []map[string]string
}

// ToCSV renders the dataset as CSV with a header row.
func ToCSV(ds Dataset) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(ds.Headers); err != nil {
		return nil, err
	}

	for _, row := range ds.Rows {
		record := make([]string, len(ds.Headers))
		for i, h := range ds.Headers {
			record[i] = row[h]
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
