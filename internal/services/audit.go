package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/14kear/csi-portal/internal/entity"
	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
)

type LogStorage interface {
	SaveLog(ctx context.Context, log *entity.Log) (int64, error)
	GetLogs(ctx context.Context, filter entity.LogFilter) ([]entity.Log, error)
}

type Audit struct {
	log        *slog.Logger
	logStorage LogStorage
}

func NewAudit(log *slog.Logger, logStorage LogStorage) *Audit {
	return &Audit{log: log, logStorage: logStorage}
}

// Record persists an audit entry. A failed write is logged and never returned to the caller.
func (a *Audit) Record(ctx context.Context, entry *entity.Log) {
	const op = "services.Audit.Record"

	if a == nil {
		return
	}
	if _, err := a.logStorage.SaveLog(ctx, entry); err != nil {
		a.log.Error("failed to write audit log",
			slog.String("op", op),
			slog.String("action", entry.Action),
			sl.Err(err),
		)
	}
}

// Action records a domain action performed by actor on an entity.
func (a *Audit) Action(ctx context.Context, actor entity.Actor, action, ent string, entityID int64, details entity.LogDetails) {
	var userID *int64
	if actor.ID != 0 {
		userID = &actor.ID
	}
	a.Record(ctx, &entity.Log{
		UserID:   userID,
		Action:   action,
		Entity:   ent,
		EntityID: &entityID,
		Details:  details,
	})
}

func (a *Audit) List(ctx context.Context, filter entity.LogFilter) ([]entity.Log, error) {
	const op = "services.Audit.List"

	filter.Page = filter.Page.Normalize()
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, fmt.Errorf("%s: %w", op, errInvalidRange)
	}

	logs, err := a.logStorage.GetLogs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return logs, nil
}
