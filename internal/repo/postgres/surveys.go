package postgres

import (
	"context"
	"fmt"

	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/repo"
)

const surveyColumns = `id, title, description, start_date, end_date, status, config, created_by, created_at, updated_at`

func (s *Storage) SaveSurvey(ctx context.Context, survey *entity.Survey) (int64, error) {
	const op = "storage.postgres.SaveSurvey"

	query := `INSERT INTO surveys (title, description, start_date, end_date, status, config, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	var id int64
	err := s.db.QueryRowContext(ctx, query,
		survey.Title, survey.Description, survey.StartDate, survey.EndDate, survey.Status, survey.Config, survey.CreatedBy,
	).Scan(&id)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return 0, fmt.Errorf("%s: %w", op, repo.ErrReferenceMissing)
		}
		return 0, fmt.Errorf("%s: %w", op, dbErr(err))
	}

	return id, nil
}

func (s *Storage) GetSurveyByID(ctx context.Context, id int64) (entity.Survey, error) {
	const op = "storage.postgres.GetSurveyByID"

	var survey entity.Survey
	err := s.db.GetContext(ctx, &survey, `SELECT `+surveyColumns+` FROM surveys WHERE id = $1`, id)
	if err != nil {
		return entity.Survey{}, fmt.Errorf("%s: %w", op, notFound(err, repo.ErrSurveyNotFound))
	}
	return survey, nil
}

// GetSurveys lists surveys newest first, optionally filtered by status.
func (s *Storage) GetSurveys(ctx context.Context, status entity.SurveyStatus, page entity.Page) ([]entity.Survey, error) {
	const op = "storage.postgres.GetSurveys"

	page = page.Normalize()
	surveys := []entity.Survey{}

	var err error
	if status == "" {
		err = s.db.SelectContext(ctx, &surveys,
			`SELECT `+surveyColumns+` FROM surveys ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
			page.Limit, page.Offset)
	} else {
		err = s.db.SelectContext(ctx, &surveys,
			`SELECT `+surveyColumns+` FROM surveys WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
			status, page.Limit, page.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return surveys, nil
}

func (s *Storage) UpdateSurvey(ctx context.Context, survey *entity.Survey) error {
	const op = "storage.postgres.UpdateSurvey"

	query := `UPDATE surveys SET title = $1, description = $2, start_date = $3, end_date = $4, config = $5, updated_at = NOW()
		WHERE id = $6`

	res, err := s.db.ExecContext(ctx, query,
		survey.Title, survey.Description, survey.StartDate, survey.EndDate, survey.Config, survey.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	if err := mustAffect(res, repo.ErrSurveyNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return nil
}

// UpdateSurveyStatus moves a survey to a new status only while it is still in from.
func (s *Storage) UpdateSurveyStatus(ctx context.Context, id int64, from, to entity.SurveyStatus) error {
	const op = "storage.postgres.UpdateSurveyStatus"

	res, err := s.db.ExecContext(ctx,
		`UPDATE surveys SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`, to, id, from)
	if err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	if err := mustAffect(res, repo.ErrStatusChanged); err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return nil
}

func (s *Storage) DeleteSurvey(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeleteSurvey"

	res, err := s.db.ExecContext(ctx, `DELETE FROM surveys WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	if err := mustAffect(res, repo.ErrSurveyNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return nil
}
