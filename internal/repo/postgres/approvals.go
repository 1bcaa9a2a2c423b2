package postgres

import (
	"context"
	"fmt"

	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/repo"
	"github.com/jmoiron/sqlx"
)

func (s *Storage) GetQuestionResponse(ctx context.Context, id int64) (entity.QuestionResponse, error) {
	const op = "storage.postgres.GetQuestionResponse"

	var qr entity.QuestionResponse
	err := s.db.GetContext(ctx, &qr, `SELECT `+questionResponseColumns+` FROM question_responses WHERE id = $1`, id)
	if err != nil {
		return entity.QuestionResponse{}, fmt.Errorf("%s: %w", op, notFound(err, repo.ErrQuestionResponseNotFound))
	}
	return qr, nil
}

// TransitionTakeout applies a guarded status change and records it in approval_history
// within one transaction. repo.ErrStatusChanged is returned when the answer is no longer in t.From.
func (s *Storage) TransitionTakeout(ctx context.Context, t entity.TakeoutTransition) error {
	const op = "storage.postgres.TransitionTakeout"

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var query string
		args := []any{t.To, t.QuestionResponseID, t.From}
		switch t.To {
		case entity.TakeoutProposed:
			query = `UPDATE question_responses
				SET takeout_status = $1, takeout_reason = $4, proposed_by = $5, updated_at = NOW()
				WHERE id = $2 AND takeout_status = $3`
			args = append(args, t.Reason, t.ActorID)
		case entity.TakeoutActive:
			query = `UPDATE question_responses
				SET takeout_status = $1, takeout_reason = '', proposed_by = NULL, updated_at = NOW()
				WHERE id = $2 AND takeout_status = $3`
		default:
			query = `UPDATE question_responses SET takeout_status = $1, updated_at = NOW()
				WHERE id = $2 AND takeout_status = $3`
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		if err := mustAffect(res, repo.ErrStatusChanged); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO approval_history (question_response_id, from_status, to_status, actor_id, reason)
			VALUES ($1, $2, $3, $4, $5)`,
			t.QuestionResponseID, t.From, t.To, t.ActorID, t.Reason)
		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return nil
}

// GetPendingTakeouts lists proposed takeouts, oldest first, optionally for one survey.
func (s *Storage) GetPendingTakeouts(ctx context.Context, surveyID *int64) ([]entity.PendingTakeout, error) {
	const op = "storage.postgres.GetPendingTakeouts"

	query := `SELECT qr.id AS question_response_id, r.survey_id, s.title AS survey_title, q.text AS question_text,
			r.respondent_email, qr.value, qr.takeout_reason, qr.proposed_by, qr.updated_at
		FROM question_responses qr
		JOIN responses r ON r.id = qr.response_id
		JOIN surveys s ON s.id = r.survey_id
		JOIN questions q ON q.id = qr.question_id
		WHERE qr.takeout_status = $1 AND ($2::BIGINT IS NULL OR r.survey_id = $2)
		ORDER BY qr.updated_at`

	pending := []entity.PendingTakeout{}
	if err := s.db.SelectContext(ctx, &pending, query, entity.TakeoutProposed, surveyID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return pending, nil
}

func (s *Storage) GetApprovalHistory(ctx context.Context, questionResponseID int64) ([]entity.ApprovalHistory, error) {
	const op = "storage.postgres.GetApprovalHistory"

	history := []entity.ApprovalHistory{}
	err := s.db.SelectContext(ctx, &history,
		`SELECT id, question_response_id, from_status, to_status, actor_id, reason, created_at
		FROM approval_history WHERE question_response_id = $1 ORDER BY created_at, id`, questionResponseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return history, nil
}

// TakeoutContact resolves who proposed a takeout and what it was about.
func (s *Storage) TakeoutContact(ctx context.Context, questionResponseID int64) (entity.TakeoutContact, error) {
	const op = "storage.postgres.TakeoutContact"

	query := `SELECT COALESCE(u.email, '') AS proposer_email, COALESCE(u.name, '') AS proposer_name,
			s.title AS survey_title, q.text AS question_text
		FROM question_responses qr
		JOIN responses r ON r.id = qr.response_id
		JOIN surveys s ON s.id = r.survey_id
		JOIN questions q ON q.id = qr.question_id
		LEFT JOIN users u ON u.id = qr.proposed_by
		WHERE qr.id = $1`

	var c entity.TakeoutContact
	if err := s.db.GetContext(ctx, &c, query, questionResponseID); err != nil {
		return entity.TakeoutContact{}, fmt.Errorf("%s: %w", op, notFound(err, repo.ErrQuestionResponseNotFound))
	}
	return c, nil
}
