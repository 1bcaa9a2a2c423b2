package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/repo"
)

const operationColumns = `id, survey_id, type, frequency, subject, template_body, next_execution_at, last_executed_at,
	started_at, status, retry_count, last_error, created_by, created_at`

const interruptedRunError = "interrupted while running"

func (s *Storage) SaveOperation(ctx context.Context, o *entity.ScheduledOperation) (int64, error) {
	const op = "storage.postgres.SaveOperation"

	query := `INSERT INTO scheduled_operations (survey_id, type, frequency, subject, template_body, next_execution_at, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`

	var id int64
	err := s.db.QueryRowContext(ctx, query,
		o.SurveyID, o.Type, o.Frequency, o.Subject, o.TemplateBody, o.NextExecutionAt, entity.OperationScheduled, o.CreatedBy,
	).Scan(&id)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return 0, fmt.Errorf("%s: %w", op, repo.ErrReferenceMissing)
		}
		return 0, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return id, nil
}

func (s *Storage) GetOperationByID(ctx context.Context, id int64) (entity.ScheduledOperation, error) {
	const op = "storage.postgres.GetOperationByID"

	var o entity.ScheduledOperation
	err := s.db.GetContext(ctx, &o, `SELECT `+operationColumns+` FROM scheduled_operations WHERE id = $1`, id)
	if err != nil {
		return entity.ScheduledOperation{}, fmt.Errorf("%s: %w", op, notFound(err, repo.ErrOperationNotFound))
	}
	return o, nil
}

func (s *Storage) GetOperations(ctx context.Context, surveyID *int64) ([]entity.ScheduledOperation, error) {
	const op = "storage.postgres.GetOperations"

	ops := []entity.ScheduledOperation{}
	err := s.db.SelectContext(ctx, &ops,
		`SELECT `+operationColumns+` FROM scheduled_operations
		WHERE ($1::BIGINT IS NULL OR survey_id = $1) ORDER BY next_execution_at`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return ops, nil
}

// DueOperations returns scheduled operations whose execution time has come, oldest first.
func (s *Storage) DueOperations(ctx context.Context, now time.Time, limit int) ([]entity.ScheduledOperation, error) {
	const op = "storage.postgres.DueOperations"

	ops := []entity.ScheduledOperation{}
	err := s.db.SelectContext(ctx, &ops,
		`SELECT `+operationColumns+` FROM scheduled_operations
		WHERE status = $1 AND next_execution_at <= $2 ORDER BY next_execution_at LIMIT $3`,
		entity.OperationScheduled, now, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return ops, nil
}

// MarkOperationRunning claims a scheduled operation. repo.ErrStatusChanged means
// it is no longer scheduled.
func (s *Storage) MarkOperationRunning(ctx context.Context, id int64) error {
	const op = "storage.postgres.MarkOperationRunning"

	res, err := s.db.ExecContext(ctx,
		`UPDATE scheduled_operations SET status = $1, started_at = NOW() WHERE id = $2 AND status = $3`,
		entity.OperationRunning, id, entity.OperationScheduled)
	if err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	if err := mustAffect(res, repo.ErrStatusChanged); err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return nil
}

// FinishOperation persists the outcome of an execution.
func (s *Storage) FinishOperation(ctx context.Context, o *entity.ScheduledOperation) error {
	const op = "storage.postgres.FinishOperation"

	res, err := s.db.ExecContext(ctx,
		`UPDATE scheduled_operations
		SET status = $1, next_execution_at = $2, last_executed_at = $3, retry_count = $4, last_error = $5, started_at = NULL
		WHERE id = $6`,
		o.Status, o.NextExecutionAt, o.LastExecutedAt, o.RetryCount, o.LastError, o.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	if err := mustAffect(res, repo.ErrOperationNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return nil
}

// ReclaimStaleOperations returns operations left running since before startedBefore to the queue,
// counting the interrupted run as a failed attempt. Rows reaching maxRetries become failed.
func (s *Storage) ReclaimStaleOperations(ctx context.Context, startedBefore time.Time, maxRetries int) (int64, error) {
	const op = "storage.postgres.ReclaimStaleOperations"

	res, err := s.db.ExecContext(ctx,
		`UPDATE scheduled_operations
		SET status = CASE WHEN retry_count + 1 >= $1 THEN $2 ELSE $3 END,
			retry_count = retry_count + 1, last_error = $4, started_at = NULL
		WHERE status = $5 AND (started_at IS NULL OR started_at < $6)`,
		maxRetries, entity.OperationFailed, entity.OperationScheduled, interruptedRunError,
		entity.OperationRunning, startedBefore)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return n, nil
}

// CancelOperation cancels an operation that has not finished yet.
func (s *Storage) CancelOperation(ctx context.Context, id int64) error {
	const op = "storage.postgres.CancelOperation"

	res, err := s.db.ExecContext(ctx,
		`UPDATE scheduled_operations SET status = $1 WHERE id = $2 AND status IN ($3, $4)`,
		entity.OperationCancelled, id, entity.OperationScheduled, entity.OperationFailed)
	if err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	if err := mustAffect(res, repo.ErrStatusChanged); err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return nil
}

// RequeueOperation makes an operation due immediately.
func (s *Storage) RequeueOperation(ctx context.Context, id int64, at time.Time) error {
	const op = "storage.postgres.RequeueOperation"

	res, err := s.db.ExecContext(ctx,
		`UPDATE scheduled_operations SET status = $1, next_execution_at = $2
		WHERE id = $3 AND status IN ($1, $4)`,
		entity.OperationScheduled, at, id, entity.OperationFailed)
	if err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	if err := mustAffect(res, repo.ErrStatusChanged); err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return nil
}

func (s *Storage) SaveEmailLog(ctx context.Context, l *entity.EmailLog) error {
	const op = "storage.postgres.SaveEmailLog"

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO email_logs (operation_id, recipient, subject, status, error) VALUES ($1, $2, $3, $4, $5)`,
		l.OperationID, l.Recipient, l.Subject, l.Status, l.Error)
	if err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return nil
}
