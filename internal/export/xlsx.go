package export

import (
	"strconv"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet   = "Summary"
	responsesSheet = "Responses"
)

func renderXLSX(report Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(responsesSheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	s := report.Summary
	head := [][]string{
		{"Survey", s.Survey.Title},
		{"Status", string(s.Survey.Status)},
		{"Period", s.Survey.StartDate.Format("2006-01-02") + " - " + s.Survey.EndDate.Format("2006-01-02")},
		{"Responses", strconv.Itoa(s.ResponseCount)},
	}
	row := 1
	for _, line := range head {
		if err := writeRow(f, summarySheet, row, line); err != nil {
			return nil, err
		}
		row++
	}

	row++
	if err := writeHeader(f, summarySheet, row, summaryHeader, bold); err != nil {
		return nil, err
	}
	for _, q := range s.Questions {
		row++
		if err := writeRow(f, summarySheet, row, summaryValues(q)); err != nil {
			return nil, err
		}
	}

	if err := writeHeader(f, responsesSheet, 1, rowHeader, bold); err != nil {
		return nil, err
	}
	for i, r := range report.Rows {
		if err := writeRow(f, responsesSheet, i+2, rowValues(r)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, row int, values []string, style int) error {
	if err := writeRow(f, sheet, row, values); err != nil {
		return err
	}
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
