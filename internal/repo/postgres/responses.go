package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/repo"
	"github.com/jmoiron/sqlx"
)

const (
	responseColumns         = `id, survey_id, respondent_email, respondent_name, application_id, submitted_at`
	questionResponseColumns = `id, response_id, question_id, value, numeric_value, takeout_status, takeout_reason, proposed_by, updated_at`
)

const responseExistsQuery = `SELECT EXISTS (
	SELECT 1 FROM responses
	WHERE survey_id = $1 AND lower(respondent_email) = lower($2) AND application_id IS NOT DISTINCT FROM $3
)`

// responseLockKey identifies one (survey, email, application) tuple for pg_advisory_xact_lock.
func responseLockKey(surveyID int64, email string, applicationID *int64) string {
	var app int64
	if applicationID != nil {
		app = *applicationID
	}
	return fmt.Sprintf("response:%d:%s:%d", surveyID, strings.ToLower(email), app)
}

// SaveResponse stores a response and all of its answers atomically.
// With unique set, the tuple is locked for the transaction and an existing
// response for it yields repo.ErrDuplicateResponse.
func (s *Storage) SaveResponse(ctx context.Context, r *entity.Response, unique bool) (int64, error) {
	const op = "storage.postgres.SaveResponse"

	var id int64
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if unique && r.RespondentEmail != "" {
			_, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`,
				responseLockKey(r.SurveyID, r.RespondentEmail, r.ApplicationID))
			if err != nil {
				return err
			}

			var exists bool
			err = tx.GetContext(ctx, &exists, responseExistsQuery, r.SurveyID, r.RespondentEmail, r.ApplicationID)
			if err != nil {
				return err
			}
			if exists {
				return repo.ErrDuplicateResponse
			}
		}

		err := tx.QueryRowContext(ctx,
			`INSERT INTO responses (survey_id, respondent_email, respondent_name, application_id)
			VALUES ($1, $2, $3, $4) RETURNING id`,
			r.SurveyID, r.RespondentEmail, r.RespondentName, r.ApplicationID,
		).Scan(&id)
		if err != nil {
			return err
		}

		for _, a := range r.Answers {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO question_responses (response_id, question_id, value, numeric_value, takeout_status)
				VALUES ($1, $2, $3, $4, $5)`,
				id, a.QuestionID, a.Value, a.NumericValue, entity.TakeoutActive)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return 0, fmt.Errorf("%s: %w", op, repo.ErrReferenceMissing)
		}
		return 0, fmt.Errorf("%s: %w", op, dbErr(err))
	}

	return id, nil
}

func (s *Storage) GetResponseByID(ctx context.Context, id int64) (entity.Response, error) {
	const op = "storage.postgres.GetResponseByID"

	var r entity.Response
	if err := s.db.GetContext(ctx, &r, `SELECT `+responseColumns+` FROM responses WHERE id = $1`, id); err != nil {
		return entity.Response{}, fmt.Errorf("%s: %w", op, notFound(err, repo.ErrResponseNotFound))
	}

	answers := []entity.QuestionResponse{}
	err := s.db.SelectContext(ctx, &answers,
		`SELECT `+questionResponseColumns+` FROM question_responses WHERE response_id = $1 ORDER BY id`, id)
	if err != nil {
		return entity.Response{}, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	r.Answers = answers

	return r, nil
}

func (s *Storage) GetResponsesBySurveyID(ctx context.Context, surveyID int64, page entity.Page) ([]entity.Response, error) {
	const op = "storage.postgres.GetResponsesBySurveyID"

	page = page.Normalize()
	responses := []entity.Response{}
	err := s.db.SelectContext(ctx, &responses,
		`SELECT `+responseColumns+` FROM responses WHERE survey_id = $1 ORDER BY submitted_at DESC LIMIT $2 OFFSET $3`,
		surveyID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return responses, nil
}

// ResponseExists reports whether the respondent already answered the survey for the application.
// A nil applicationID matches only responses without an application.
func (s *Storage) ResponseExists(ctx context.Context, surveyID int64, email string, applicationID *int64) (bool, error) {
	const op = "storage.postgres.ResponseExists"

	var exists bool
	err := s.db.GetContext(ctx, &exists, responseExistsQuery, surveyID, email, applicationID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return exists, nil
}

// RespondentEmails returns the distinct lower-cased emails that answered the survey.
func (s *Storage) RespondentEmails(ctx context.Context, surveyID int64) ([]string, error) {
	const op = "storage.postgres.RespondentEmails"

	emails := []string{}
	err := s.db.SelectContext(ctx, &emails,
		`SELECT DISTINCT lower(respondent_email) FROM responses WHERE survey_id = $1 AND respondent_email <> ''`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return emails, nil
}
