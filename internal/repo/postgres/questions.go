package postgres

import (
	"context"
	"fmt"

	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/repo"
	"github.com/jmoiron/sqlx"
)

const questionColumns = `id, survey_id, text, type, options, is_required, position, created_at`

func (s *Storage) SaveQuestion(ctx context.Context, q *entity.Question) (int64, error) {
	const op = "storage.postgres.SaveQuestion"

	query := `INSERT INTO questions (survey_id, text, type, options, is_required, position)
		VALUES ($1, $2, $3, $4, $5,
			COALESCE(NULLIF($6, 0), (SELECT COALESCE(MAX(position), 0) + 1 FROM questions WHERE survey_id = $1)))
		RETURNING id`

	var id int64
	err := s.db.QueryRowContext(ctx, query,
		q.SurveyID, q.Text, q.Type, []byte(q.Options), q.IsRequired, q.Position,
	).Scan(&id)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return 0, fmt.Errorf("%s: %w", op, repo.ErrSurveyNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return id, nil
}

func (s *Storage) GetQuestionByID(ctx context.Context, id int64) (entity.Question, error) {
	const op = "storage.postgres.GetQuestionByID"

	var q entity.Question
	err := s.db.GetContext(ctx, &q, `SELECT `+questionColumns+` FROM questions WHERE id = $1`, id)
	if err != nil {
		return entity.Question{}, fmt.Errorf("%s: %w", op, notFound(err, repo.ErrQuestionNotFound))
	}
	return q, nil
}

func (s *Storage) GetQuestionsBySurveyID(ctx context.Context, surveyID int64) ([]entity.Question, error) {
	const op = "storage.postgres.GetQuestionsBySurveyID"

	questions := []entity.Question{}
	err := s.db.SelectContext(ctx, &questions,
		`SELECT `+questionColumns+` FROM questions WHERE survey_id = $1 ORDER BY position, id`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return questions, nil
}

func (s *Storage) UpdateQuestion(ctx context.Context, q *entity.Question) error {
	const op = "storage.postgres.UpdateQuestion"

	query := `UPDATE questions SET text = $1, type = $2, options = $3, is_required = $4 WHERE id = $5 AND survey_id = $6`

	res, err := s.db.ExecContext(ctx, query, q.Text, q.Type, []byte(q.Options), q.IsRequired, q.ID, q.SurveyID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	if err := mustAffect(res, repo.ErrQuestionNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return nil
}

func (s *Storage) DeleteQuestion(ctx context.Context, id, surveyID int64) error {
	const op = "storage.postgres.DeleteQuestion"

	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1 AND survey_id = $2`, id, surveyID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	if err := mustAffect(res, repo.ErrQuestionNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return nil
}

// ReorderQuestions assigns positions 1..n following the order of ids.
func (s *Storage) ReorderQuestions(ctx context.Context, surveyID int64, ids []int64) error {
	const op = "storage.postgres.ReorderQuestions"

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		for i, id := range ids {
			res, err := tx.ExecContext(ctx,
				`UPDATE questions SET position = $1 WHERE id = $2 AND survey_id = $3`, i+1, id, surveyID)
			if err != nil {
				return err
			}
			if err := mustAffect(res, repo.ErrQuestionNotFound); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return nil
}

func (s *Storage) CountAnswers(ctx context.Context, questionID int64) (int, error) {
	const op = "storage.postgres.CountAnswers"

	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM question_responses WHERE question_id = $1`, questionID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return n, nil
}
