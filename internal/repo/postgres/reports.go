package postgres

import (
	"context"
	"fmt"

	"github.com/14kear/csi-portal/internal/entity"
)

func (s *Storage) CountResponses(ctx context.Context, surveyID int64) (int, error) {
	const op = "storage.postgres.CountResponses"

	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM responses WHERE survey_id = $1`, surveyID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return n, nil
}

// SurveyQuestionStats aggregates every question of a survey. Taken out answers
// are counted separately and never contribute to the answer count or average.
func (s *Storage) SurveyQuestionStats(ctx context.Context, surveyID int64) ([]entity.QuestionStats, error) {
	const op = "storage.postgres.SurveyQuestionStats"

	query := `SELECT q.id AS question_id, q.text, q.type, q.position,
			COUNT(qr.id) FILTER (WHERE qr.takeout_status <> 'TakenOut') AS answer_count,
			AVG(qr.numeric_value) FILTER (WHERE qr.takeout_status <> 'TakenOut') AS average,
			COUNT(qr.id) FILTER (WHERE qr.takeout_status = 'TakenOut') AS taken_out_count,
			COUNT(qr.id) FILTER (WHERE qr.takeout_status = 'ProposedTakeout') AS pending_count
		FROM questions q
		LEFT JOIN question_responses qr ON qr.question_id = q.id
		WHERE q.survey_id = $1
		GROUP BY q.id
		ORDER BY q.position, q.id`

	stats := []entity.QuestionStats{}
	if err := s.db.SelectContext(ctx, &stats, query, surveyID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return stats, nil
}

// OptionDistribution counts answer values of choice and numeric questions.
func (s *Storage) OptionDistribution(ctx context.Context, surveyID int64) ([]entity.OptionCount, error) {
	const op = "storage.postgres.OptionDistribution"

	query := `SELECT qr.question_id, qr.value, COUNT(*) AS count
		FROM question_responses qr
		JOIN questions q ON q.id = qr.question_id
		WHERE q.survey_id = $1 AND q.type <> 'text' AND qr.takeout_status <> 'TakenOut'
		GROUP BY qr.question_id, qr.value
		ORDER BY qr.question_id, qr.value`

	counts := []entity.OptionCount{}
	if err := s.db.SelectContext(ctx, &counts, query, surveyID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return counts, nil
}

func (s *Storage) ExportRows(ctx context.Context, surveyID int64) ([]entity.ExportRow, error) {
	const op = "storage.postgres.ExportRows"

	query := `SELECT r.id AS response_id, to_char(r.submitted_at, 'YYYY-MM-DD HH24:MI') AS submitted_at,
			r.respondent_email, r.respondent_name, COALESCE(a.name, '') AS application_name,
			q.text AS question_text, qr.value, qr.takeout_status
		FROM responses r
		JOIN question_responses qr ON qr.response_id = r.id
		JOIN questions q ON q.id = qr.question_id
		LEFT JOIN applications a ON a.id = r.application_id
		WHERE r.survey_id = $1
		ORDER BY r.submitted_at, r.id, q.position, q.id`

	rows := []entity.ExportRow{}
	if err := s.db.SelectContext(ctx, &rows, query, surveyID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return rows, nil
}
