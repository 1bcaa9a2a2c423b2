package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

var summaryWidths = []float64{10, 80, 25, 18, 18, 18, 18}

func renderPDF(report Report) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	s := report.Summary
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(s.Survey.Title), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s - %s", s.Survey.StartDate.Format("2006-01-02"),
		s.Survey.EndDate.Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Status: %s    Responses: %d", s.Survey.Status, s.ResponseCount),
		"", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range summaryHeader {
		pdf.CellFormat(summaryWidths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, q := range s.Questions {
		for i, v := range summaryValues(q) {
			if i == 1 {
				v = ellipsize(v, 48)
			}
			align := "C"
			if i == 1 {
				align = "L"
			}
			pdf.CellFormat(summaryWidths[i], 6, tr(v), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)

		for _, d := range q.Distribution {
			pdf.CellFormat(summaryWidths[0], 5, "", "", 0, "", false, 0, "")
			pdf.CellFormat(summaryWidths[1], 5, tr(fmt.Sprintf("  %s: %d", d.Value, d.Count)), "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ellipsize shortens s to at most limit runes, marking the cut with "...".
func ellipsize(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}
