package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/export"
	"github.com/tidwall/gjson"
)

type ReportStorage interface {
	CountResponses(ctx context.Context, surveyID int64) (int, error)
	SurveyQuestionStats(ctx context.Context, surveyID int64) ([]entity.QuestionStats, error)
	OptionDistribution(ctx context.Context, surveyID int64) ([]entity.OptionCount, error)
	ExportRows(ctx context.Context, surveyID int64) ([]entity.ExportRow, error)
}

type Reports struct {
	log           *slog.Logger
	surveyStorage SurveyStorage
	reportStorage ReportStorage
}

func NewReports(log *slog.Logger, surveyStorage SurveyStorage, reportStorage ReportStorage) *Reports {
	return &Reports{log: log, surveyStorage: surveyStorage, reportStorage: reportStorage}
}

// Summary aggregates a survey. Taken out answers do not count towards answers, averages or distributions.
func (r *Reports) Summary(ctx context.Context, surveyID int64) (entity.SurveySummary, error) {
	const op = "services.Reports.Summary"

	survey, err := r.surveyStorage.GetSurveyByID(ctx, surveyID)
	if err != nil {
		return entity.SurveySummary{}, fmt.Errorf("%s: %w", op, err)
	}

	count, err := r.reportStorage.CountResponses(ctx, surveyID)
	if err != nil {
		return entity.SurveySummary{}, fmt.Errorf("%s: %w", op, err)
	}

	stats, err := r.reportStorage.SurveyQuestionStats(ctx, surveyID)
	if err != nil {
		return entity.SurveySummary{}, fmt.Errorf("%s: %w", op, err)
	}

	dist, err := r.reportStorage.OptionDistribution(ctx, surveyID)
	if err != nil {
		return entity.SurveySummary{}, fmt.Errorf("%s: %w", op, err)
	}

	byQuestion := make(map[int64][]entity.OptionCount)
	for _, d := range dist {
		byQuestion[d.QuestionID] = append(byQuestion[d.QuestionID], d)
	}
	for i := range stats {
		counts := byQuestion[stats[i].QuestionID]
		if stats[i].Type == entity.QuestionMultipleChoice {
			counts = splitMultiChoice(counts)
		}
		stats[i].Distribution = counts
	}

	return entity.SurveySummary{Survey: survey, ResponseCount: count, Questions: stats}, nil
}

// splitMultiChoice turns counts of stored JSON arrays into counts per picked option.
func splitMultiChoice(counts []entity.OptionCount) []entity.OptionCount {
	perOption := make(map[string]int)
	for _, c := range counts {
		values := gjson.Parse(c.Value)
		if !values.IsArray() {
			perOption[c.Value] += c.Count
			continue
		}
		for _, v := range values.Array() {
			perOption[v.String()] += c.Count
		}
	}

	out := make([]entity.OptionCount, 0, len(perOption))
	for v, n := range perOption {
		out = append(out, entity.OptionCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

func (r *Reports) Export(ctx context.Context, surveyID int64, format string) (export.File, error) {
	const op = "services.Reports.Export"

	f, err := export.ParseFormat(format)
	if err != nil {
		return export.File{}, fmt.Errorf("%s: %w", op, err)
	}

	summary, err := r.Summary(ctx, surveyID)
	if err != nil {
		return export.File{}, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.reportStorage.ExportRows(ctx, surveyID)
	if err != nil {
		return export.File{}, fmt.Errorf("%s: %w", op, err)
	}

	file, err := export.Render(f, export.Report{Summary: summary, Rows: rows})
	if err != nil {
		return export.File{}, fmt.Errorf("%s: %w", op, err)
	}

	r.log.Info("report exported", slog.String("op", op), slog.Int64("survey_id", surveyID),
		slog.String("format", string(f)), slog.Int("bytes", len(file.Data)))
	return file, nil
}
