package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/14kear/csi-portal/internal/email"
	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/metrics"
	"github.com/14kear/csi-portal/internal/repo"
	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
)

var (
	ErrOperationNotCancellable = apperr.Conflict("only scheduled or failed operations can be cancelled")
	ErrOperationBusy           = apperr.Conflict("operation is running or already finished")

	errSurveyEnded = errors.New("survey has ended")
)

type OperationStorage interface {
	SaveOperation(ctx context.Context, o *entity.ScheduledOperation) (int64, error)
	GetOperationByID(ctx context.Context, id int64) (entity.ScheduledOperation, error)
	GetOperations(ctx context.Context, surveyID *int64) ([]entity.ScheduledOperation, error)
	DueOperations(ctx context.Context, now time.Time, limit int) ([]entity.ScheduledOperation, error)
	MarkOperationRunning(ctx context.Context, id int64) error
	ReclaimStaleOperations(ctx context.Context, startedBefore time.Time, maxRetries int) (int64, error)
	FinishOperation(ctx context.Context, o *entity.ScheduledOperation) error
	CancelOperation(ctx context.Context, id int64) error
	RequeueOperation(ctx context.Context, id int64, at time.Time) error
	SaveEmailLog(ctx context.Context, l *entity.EmailLog) error
}

type RespondentProvider interface {
	RespondentEmails(ctx context.Context, surveyID int64) ([]string, error)
}

type OperationsConfig struct {
	BaseURL    string
	MaxRetries int
	BatchLimit int
	// StaleAfter is how long an operation may stay running before it is requeued.
	StaleAfter time.Duration
}

type Operations struct {
	log                *slog.Logger
	operationStorage   OperationStorage
	surveyStorage      SurveyStorage
	respondentProvider RespondentProvider
	mailer             Mailer
	templates          *email.Templates
	audit              *Audit
	cfg                OperationsConfig
	now                func() time.Time
}

type OperationInput struct {
	SurveyID     int64
	Type         entity.OperationType
	Frequency    entity.Frequency
	Subject      string
	TemplateBody string
	FirstRunAt   time.Time
}

func NewOperations(
	log *slog.Logger,
	operationStorage OperationStorage,
	surveyStorage SurveyStorage,
	respondentProvider RespondentProvider,
	mailer Mailer,
	templates *email.Templates,
	audit *Audit,
	cfg OperationsConfig,
) *Operations {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BatchLimit <= 0 {
		cfg.BatchLimit = 20
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = 30 * time.Minute
	}
	return &Operations{
		log:                log,
		operationStorage:   operationStorage,
		surveyStorage:      surveyStorage,
		respondentProvider: respondentProvider,
		mailer:             mailer,
		templates:          templates,
		audit:              audit,
		cfg:                cfg,
		now:                time.Now,
	}
}

func (o *Operations) Create(ctx context.Context, actor entity.Actor, in OperationInput) (entity.ScheduledOperation, error) {
	const op = "services.Operations.Create"

	switch {
	case !in.Type.Valid():
		return entity.ScheduledOperation{}, fmt.Errorf("%s: %w", op, apperr.Validation("type must be blast or reminder"))
	case !in.Frequency.Valid():
		return entity.ScheduledOperation{}, fmt.Errorf("%s: %w", op, apperr.Validation("unknown frequency"))
	case strings.TrimSpace(in.Subject) == "":
		return entity.ScheduledOperation{}, fmt.Errorf("%s: %w", op, apperr.Validation("subject is required"))
	case !in.FirstRunAt.After(o.now()):
		return entity.ScheduledOperation{}, fmt.Errorf("%s: %w", op, apperr.Validation("first run must be in the future"))
	}

	if _, err := o.templates.RenderInline(in.TemplateBody, string(in.Type), email.Data{}); err != nil {
		return entity.ScheduledOperation{}, fmt.Errorf("%s: %w", op, apperr.E(apperr.KindValidation, "template body is invalid", err))
	}

	if _, err := o.surveyStorage.GetSurveyByID(ctx, in.SurveyID); err != nil {
		return entity.ScheduledOperation{}, fmt.Errorf("%s: %w", op, err)
	}

	so := entity.ScheduledOperation{
		SurveyID:        in.SurveyID,
		Type:            in.Type,
		Frequency:       in.Frequency,
		Subject:         strings.TrimSpace(in.Subject),
		TemplateBody:    in.TemplateBody,
		NextExecutionAt: in.FirstRunAt,
		Status:          entity.OperationScheduled,
		CreatedBy:       actor.ID,
	}
	id, err := o.operationStorage.SaveOperation(ctx, &so)
	if err != nil {
		return entity.ScheduledOperation{}, fmt.Errorf("%s: %w", op, err)
	}
	so.ID = id

	o.audit.Action(ctx, actor, "operations.create", "scheduled_operations", id,
		entity.LogDetails{"survey_id": in.SurveyID, "type": in.Type, "frequency": in.Frequency})
	return so, nil
}

func (o *Operations) List(ctx context.Context, surveyID *int64) ([]entity.ScheduledOperation, error) {
	const op = "services.Operations.List"

	ops, err := o.operationStorage.GetOperations(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ops, nil
}

func (o *Operations) Get(ctx context.Context, id int64) (entity.ScheduledOperation, error) {
	const op = "services.Operations.Get"

	so, err := o.operationStorage.GetOperationByID(ctx, id)
	if err != nil {
		return entity.ScheduledOperation{}, fmt.Errorf("%s: %w", op, err)
	}
	return so, nil
}

func (o *Operations) Cancel(ctx context.Context, actor entity.Actor, id int64) error {
	const op = "services.Operations.Cancel"

	if _, err := o.operationStorage.GetOperationByID(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := o.operationStorage.CancelOperation(ctx, id); err != nil {
		if errors.Is(err, repo.ErrStatusChanged) {
			return fmt.Errorf("%s: %w", op, apperr.E(apperr.KindConflict, ErrOperationNotCancellable.Error(), err))
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	o.audit.Action(ctx, actor, "operations.cancel", "scheduled_operations", id, nil)
	return nil
}

// RunNow makes the operation due and executes it immediately.
func (o *Operations) RunNow(ctx context.Context, actor entity.Actor, id int64) (entity.ScheduledOperation, error) {
	const op = "services.Operations.RunNow"

	if _, err := o.operationStorage.GetOperationByID(ctx, id); err != nil {
		return entity.ScheduledOperation{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := o.operationStorage.RequeueOperation(ctx, id, o.now()); err != nil {
		if errors.Is(err, repo.ErrStatusChanged) {
			return entity.ScheduledOperation{}, fmt.Errorf("%s: %w", op, apperr.E(apperr.KindConflict, ErrOperationBusy.Error(), err))
		}
		return entity.ScheduledOperation{}, fmt.Errorf("%s: %w", op, err)
	}

	so, err := o.operationStorage.GetOperationByID(ctx, id)
	if err != nil {
		return entity.ScheduledOperation{}, fmt.Errorf("%s: %w", op, err)
	}

	o.audit.Action(ctx, actor, "operations.run", "scheduled_operations", id, nil)

	so, err = o.process(ctx, so)
	if err != nil {
		return entity.ScheduledOperation{}, fmt.Errorf("%s: %w", op, err)
	}
	return so, nil
}

// ProcessDue runs every operation whose execution time has come, one after another.
// Operations stuck in running longer than StaleAfter are requeued first.
// It returns how many operations were executed.
func (o *Operations) ProcessDue(ctx context.Context) (int, error) {
	const op = "services.Operations.ProcessDue"

	reclaimed, err := o.operationStorage.ReclaimStaleOperations(ctx, o.now().Add(-o.cfg.StaleAfter), o.cfg.MaxRetries)
	if err != nil {
		o.log.Error("failed to reclaim stale operations", slog.String("op", op), sl.Err(err))
	} else if reclaimed > 0 {
		o.log.Warn("requeued stale running operations", slog.String("op", op), slog.Int64("count", reclaimed))
	}

	due, err := o.operationStorage.DueOperations(ctx, o.now(), o.cfg.BatchLimit)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	processed := 0
	for _, so := range due {
		if err := ctx.Err(); err != nil {
			return processed, fmt.Errorf("%s: %w", op, err)
		}
		if _, err := o.process(ctx, so); err != nil {
			o.log.Error("failed to process operation", slog.String("op", op), slog.Int64("id", so.ID), sl.Err(err))
			continue
		}
		processed++
	}
	return processed, nil
}

// process claims one operation, executes it and stores the outcome.
func (o *Operations) process(ctx context.Context, so entity.ScheduledOperation) (entity.ScheduledOperation, error) {
	log := o.log.With(slog.Int64("operation_id", so.ID), slog.String("type", string(so.Type)))

	if err := o.operationStorage.MarkOperationRunning(ctx, so.ID); err != nil {
		return so, err
	}

	runErr := o.execute(ctx, so)
	now := o.now()

	switch {
	case runErr == nil || errors.Is(runErr, errSurveyEnded):
		so.LastExecutedAt = &now
		so.RetryCount = 0
		so.LastError = ""
		so.Status = entity.OperationCompleted
		if runErr != nil {
			so.LastError = runErr.Error()
			break
		}
		if next, ok := nextRun(so.Frequency, so.NextExecutionAt, now); ok {
			so.Status = entity.OperationScheduled
			so.NextExecutionAt = next
		}
	default:
		so.RetryCount++
		so.LastError = runErr.Error()
		so.Status = entity.OperationScheduled
		if so.RetryCount >= o.cfg.MaxRetries {
			so.Status = entity.OperationFailed
		}
		log.Warn("operation run failed", slog.Int("retry_count", so.RetryCount), sl.Err(runErr))
	}

	// the outcome must be stored even when the request that triggered the run is gone
	if err := o.operationStorage.FinishOperation(context.WithoutCancel(ctx), &so); err != nil {
		return so, err
	}

	metrics.OperationsProcessed.WithLabelValues(string(so.Status)).Inc()
	log.Info("operation processed", slog.String("status", string(so.Status)))
	return so, nil
}

// nextRun returns the first execution after now following the frequency, skipping missed slots.
func nextRun(f entity.Frequency, last, now time.Time) (time.Time, bool) {
	next, ok := f.Next(last)
	for ok && !next.After(now) {
		next, ok = f.Next(next)
	}
	return next, ok
}

func (o *Operations) execute(ctx context.Context, so entity.ScheduledOperation) error {
	survey, err := o.surveyStorage.GetSurveyByID(ctx, so.SurveyID)
	if err != nil {
		return err
	}
	if survey.Status == entity.SurveyStatusClosed || survey.Status == entity.SurveyStatusArchived ||
		o.now().After(survey.EndDate) {
		return errSurveyEnded
	}
	if survey.Status != entity.SurveyStatusActive {
		return fmt.Errorf("survey %d is not active", survey.ID)
	}

	recipients, err := o.recipients(ctx, so, survey)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		return nil
	}

	data := email.Data{
		SurveyTitle: survey.Title,
		SurveyLink:  fmt.Sprintf("%s/ui/?survey=%d", strings.TrimRight(o.cfg.BaseURL, "/"), survey.ID),
		EndDate:     survey.EndDate.Format("2006-01-02"),
	}
	body, err := o.templates.RenderInline(so.TemplateBody, string(so.Type), data)
	if err != nil {
		return err
	}

	messages := make([]email.Message, len(recipients))
	for i, to := range recipients {
		messages[i] = email.Message{To: to, Subject: so.Subject, HTMLBody: body}
	}

	results, sendErr := o.mailer.Send(ctx, messages)

	failed := 0
	var firstErr error
	for _, r := range results {
		entry := &entity.EmailLog{OperationID: &so.ID, Recipient: r.To, Subject: so.Subject, Status: entity.EmailSent}
		if r.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = r.Err
			}
			entry.Status = entity.EmailFailed
			entry.Error = r.Err.Error()
		}
		if err := o.operationStorage.SaveEmailLog(context.WithoutCancel(ctx), entry); err != nil {
			o.log.Warn("failed to write email log", sl.Err(err))
		}
	}

	if sendErr != nil {
		return sendErr
	}
	if failed == len(messages) {
		return fmt.Errorf("all %d deliveries failed: %w", failed, firstErr)
	}
	return nil
}

// recipients returns the survey targets; reminders skip everyone who already responded.
func (o *Operations) recipients(ctx context.Context, so entity.ScheduledOperation, survey entity.Survey) ([]string, error) {
	targets := make([]string, 0, len(survey.Config.TargetEmails))
	for _, e := range survey.Config.TargetEmails {
		if e = normalizeEmail(e); e != "" && !slices.Contains(targets, e) {
			targets = append(targets, e)
		}
	}
	if so.Type != entity.OperationReminder {
		return targets, nil
	}

	responded, err := o.respondentProvider.RespondentEmails(ctx, survey.ID)
	if err != nil {
		return nil, err
	}
	done := make(map[string]struct{}, len(responded))
	for _, e := range responded {
		done[normalizeEmail(e)] = struct{}{}
	}

	pending := targets[:0]
	for _, e := range targets {
		if _, ok := done[e]; !ok {
			pending = append(pending, e)
		}
	}
	return pending, nil
}
