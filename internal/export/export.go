// Package export renders survey reports as downloadable files.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/14kear/csi-portal/internal/entity"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

var ErrUnknownFormat = apperr.Validation("format must be one of csv, xlsx, pdf")

var contentTypes = map[Format]string{
	FormatCSV:  "text/csv; charset=utf-8",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatPDF:  "application/pdf",
}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := contentTypes[f]; !ok {
		return "", ErrUnknownFormat
	}
	return f, nil
}

type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type Report struct {
	Summary entity.SurveySummary
	Rows    []entity.ExportRow
}

var rowHeader = []string{
	"Response ID", "Submitted At", "Email", "Name", "Application", "Question", "Answer", "Takeout Status",
}

func rowValues(r entity.ExportRow) []string {
	return []string{
		strconv.FormatInt(r.ResponseID, 10),
		r.SubmittedAt,
		r.RespondentEmail,
		r.RespondentName,
		r.ApplicationName,
		r.QuestionText,
		r.Value,
		string(r.TakeoutStatus),
	}
}

var summaryHeader = []string{"#", "Question", "Type", "Answers", "Average", "Taken Out", "Pending"}

func summaryValues(q entity.QuestionStats) []string {
	avg := ""
	if q.Average != nil {
		avg = strconv.FormatFloat(*q.Average, 'f', 2, 64)
	}
	return []string{
		strconv.Itoa(q.Position),
		q.Text,
		string(q.Type),
		strconv.Itoa(q.AnswerCount),
		avg,
		strconv.Itoa(q.TakenOutCount),
		strconv.Itoa(q.PendingCount),
	}
}

// Render produces the report in the requested format.
func Render(format Format, report Report) (File, error) {
	const op = "export.Render"

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatCSV:
		data, err = renderCSV(report)
	case FormatXLSX:
		data, err = renderXLSX(report)
	case FormatPDF:
		data, err = renderPDF(report)
	default:
		return File{}, fmt.Errorf("%s: %w", op, ErrUnknownFormat)
	}
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", op, err)
	}

	return File{
		Name:        fmt.Sprintf("survey-%d-report.%s", report.Summary.Survey.ID, format),
		ContentType: contentTypes[format],
		Data:        data,
	}, nil
}
