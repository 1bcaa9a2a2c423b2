package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/14kear/csi-portal/internal/email"
	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/metrics"
	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
)

var (
	ErrReasonRequired  = apperr.Validation("reason is required")
	ErrNotProposer     = apperr.Authorization("only the proposer or an admin can cancel a proposal")
	ErrReviewerRole    = apperr.Authorization("only department heads or admins can decide on takeouts")
	ErrProposerRole    = apperr.Authorization("only IT leads or admins can propose takeouts")
	ErrBadTakeoutState = apperr.Conflict("answer is not in a state that allows this action")
)

type ApprovalStorage interface {
	GetQuestionResponse(ctx context.Context, id int64) (entity.QuestionResponse, error)
	TransitionTakeout(ctx context.Context, t entity.TakeoutTransition) error
	GetPendingTakeouts(ctx context.Context, surveyID *int64) ([]entity.PendingTakeout, error)
	GetApprovalHistory(ctx context.Context, questionResponseID int64) ([]entity.ApprovalHistory, error)
	TakeoutContact(ctx context.Context, questionResponseID int64) (entity.TakeoutContact, error)
}

type Mailer interface {
	Send(ctx context.Context, messages []email.Message) ([]email.Result, error)
}

type Approvals struct {
	log             *slog.Logger
	approvalStorage ApprovalStorage
	mailer          Mailer
	templates       *email.Templates
	audit           *Audit
}

// BulkResult is the outcome of one item of a bulk decision.
type BulkResult struct {
	ID     int64                `json:"id"`
	Status entity.TakeoutStatus `json:"status,omitempty"`
	Error  string               `json:"error,omitempty"`
}

func NewApprovals(
	log *slog.Logger,
	approvalStorage ApprovalStorage,
	mailer Mailer,
	templates *email.Templates,
	audit *Audit,
) *Approvals {
	return &Approvals{
		log:             log,
		approvalStorage: approvalStorage,
		mailer:          mailer,
		templates:       templates,
		audit:           audit,
	}
}

// Propose asks for an answer to be taken out of the aggregates.
func (a *Approvals) Propose(ctx context.Context, actor entity.Actor, id int64, reason string) error {
	const op = "services.Approvals.Propose"

	if !actor.HasRole(entity.RoleITLead, entity.RoleAdmin) {
		return fmt.Errorf("%s: %w", op, ErrProposerRole)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("%s: %w", op, ErrReasonRequired)
	}

	if _, err := a.transition(ctx, actor, "approvals.propose", id, entity.TakeoutProposed, reason,
		entity.TakeoutActive, entity.TakeoutRejected); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Approve takes the answer out. It succeeds only while the answer is ProposedTakeout.
func (a *Approvals) Approve(ctx context.Context, actor entity.Actor, id int64, reason string) error {
	const op = "services.Approvals.Approve"

	if !actor.HasRole(entity.RoleDepartmentHead, entity.RoleAdmin) {
		return fmt.Errorf("%s: %w", op, ErrReviewerRole)
	}

	if _, err := a.transition(ctx, actor, "approvals.approve", id, entity.TakeoutTakenOut, strings.TrimSpace(reason), entity.TakeoutProposed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	a.notify(ctx, id, "approved", reason)
	return nil
}

func (a *Approvals) Reject(ctx context.Context, actor entity.Actor, id int64, reason string) error {
	const op = "services.Approvals.Reject"

	if !actor.HasRole(entity.RoleDepartmentHead, entity.RoleAdmin) {
		return fmt.Errorf("%s: %w", op, ErrReviewerRole)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("%s: %w", op, ErrReasonRequired)
	}

	if _, err := a.transition(ctx, actor, "approvals.reject", id, entity.TakeoutRejected, reason, entity.TakeoutProposed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	a.notify(ctx, id, "rejected", reason)
	return nil
}

// Cancel withdraws a proposal and returns the answer to Active.
func (a *Approvals) Cancel(ctx context.Context, actor entity.Actor, id int64) error {
	const op = "services.Approvals.Cancel"

	qr, err := a.approvalStorage.GetQuestionResponse(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	proposer := qr.ProposedBy != nil && *qr.ProposedBy == actor.ID
	if !proposer && !actor.HasRole(entity.RoleAdmin) {
		return fmt.Errorf("%s: %w", op, ErrNotProposer)
	}

	if _, err := a.transition(ctx, actor, "approvals.cancel", id, entity.TakeoutActive, "", entity.TakeoutProposed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// BulkApprove approves each id independently. One failure does not stop the others.
func (a *Approvals) BulkApprove(ctx context.Context, actor entity.Actor, ids []int64, reason string) ([]BulkResult, error) {
	const op = "services.Approvals.BulkApprove"

	if !actor.HasRole(entity.RoleDepartmentHead, entity.RoleAdmin) {
		return nil, fmt.Errorf("%s: %w", op, ErrReviewerRole)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%s: %w", op, apperr.Validation("ids must not be empty"))
	}

	results := make([]BulkResult, 0, len(ids))
	for _, id := range ids {
		if err := a.Approve(ctx, actor, id, reason); err != nil {
			a.log.Warn("bulk approve item failed", slog.String("op", op), slog.Int64("id", id), sl.Err(err))
			results = append(results, BulkResult{ID: id, Error: apperr.MessageOf(err)})
			continue
		}
		results = append(results, BulkResult{ID: id, Status: entity.TakeoutTakenOut})
	}
	return results, nil
}

func (a *Approvals) Pending(ctx context.Context, surveyID *int64) ([]entity.PendingTakeout, error) {
	const op = "services.Approvals.Pending"

	pending, err := a.approvalStorage.GetPendingTakeouts(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return pending, nil
}

func (a *Approvals) History(ctx context.Context, id int64) ([]entity.ApprovalHistory, error) {
	const op = "services.Approvals.History"

	if _, err := a.approvalStorage.GetQuestionResponse(ctx, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	history, err := a.approvalStorage.GetApprovalHistory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return history, nil
}

// transition moves an answer to `to` if its current status is one of from.
func (a *Approvals) transition(
	ctx context.Context,
	actor entity.Actor,
	action string,
	id int64,
	to entity.TakeoutStatus,
	reason string,
	from ...entity.TakeoutStatus,
) (entity.TakeoutStatus, error) {
	qr, err := a.approvalStorage.GetQuestionResponse(ctx, id)
	if err != nil {
		return "", err
	}
	if !slices.Contains(from, qr.TakeoutStatus) || !qr.TakeoutStatus.CanTransitionTo(to) {
		return qr.TakeoutStatus, apperr.E(apperr.KindConflict,
			fmt.Sprintf("cannot move answer from %s to %s", qr.TakeoutStatus, to), ErrBadTakeoutState)
	}

	err = a.approvalStorage.TransitionTakeout(ctx, entity.TakeoutTransition{
		QuestionResponseID: id,
		From:               qr.TakeoutStatus,
		To:                 to,
		ActorID:            actor.ID,
		Reason:             reason,
	})
	if err != nil {
		return qr.TakeoutStatus, err
	}

	metrics.TakeoutTransitions.WithLabelValues(string(to)).Inc()
	a.audit.Action(ctx, actor, action, "question_responses", id,
		entity.LogDetails{"from": qr.TakeoutStatus, "to": to, "reason": reason})
	return to, nil
}

// notify tells the proposer about a decision. Delivery problems are logged only.
func (a *Approvals) notify(ctx context.Context, id int64, decision, reason string) {
	const op = "services.Approvals.notify"

	log := a.log.With(slog.String("op", op), slog.Int64("id", id))

	if a.mailer == nil || a.templates == nil {
		return
	}

	contact, err := a.approvalStorage.TakeoutContact(ctx, id)
	if err != nil {
		log.Warn("failed to resolve proposer", sl.Err(err))
		return
	}
	if contact.ProposerEmail == "" {
		return
	}

	body, err := a.templates.Render(email.TemplateTakeoutDecision, email.Data{
		Name:         contact.ProposerName,
		SurveyTitle:  contact.SurveyTitle,
		QuestionText: contact.QuestionText,
		Decision:     decision,
		Reason:       reason,
	})
	if err != nil {
		log.Error("failed to render notification", sl.Err(err))
		return
	}

	results, err := a.mailer.Send(ctx, []email.Message{{
		To:       contact.ProposerEmail,
		Subject:  fmt.Sprintf("Takeout %s: %s", decision, contact.SurveyTitle),
		HTMLBody: body,
	}})
	if err == nil && len(results) > 0 {
		err = results[0].Err
	}
	if err != nil {
		log.Warn("failed to send takeout notification", sl.Err(err), slog.String("to", contact.ProposerEmail))
	}
}
