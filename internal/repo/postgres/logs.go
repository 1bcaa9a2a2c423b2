package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/14kear/csi-portal/internal/entity"
)

func (s *Storage) SaveLog(ctx context.Context, log *entity.Log) (int64, error) {
	const op = "storage.postgres.SaveLog"

	query := `INSERT INTO audit_logs (user_id, action, entity, entity_id, method, path, status, ip, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`

	var id int64
	err := s.db.QueryRowContext(ctx, query,
		log.UserID, log.Action, log.Entity, log.EntityID, log.Method, log.Path, log.Status, log.IP, log.Details,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, dbErr(err))
	}

	return id, nil
}

func (s *Storage) GetLogs(ctx context.Context, filter entity.LogFilter) ([]entity.Log, error) {
	const op = "storage.postgres.GetLogs"

	var (
		where []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.UserID != nil {
		add("user_id = $%d", *filter.UserID)
	}
	if filter.Entity != "" {
		add("entity = $%d", filter.Entity)
	}
	if filter.From != nil {
		add("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("created_at <= $%d", *filter.To)
	}

	query := `SELECT id, user_id, action, entity, entity_id, method, path, status, ip, details, created_at FROM audit_logs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}

	page := filter.Page.Normalize()
	args = append(args, page.Limit, page.Offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	logs := []entity.Log{}
	if err := s.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return logs, nil
}
