package export

import (
	"bytes"
	"encoding/csv"
)

func renderCSV(report Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(rowHeader); err != nil {
		return nil, err
	}
	for _, r := range report.Rows {
		if err := w.Write(rowValues(r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
