package postgres

import (
	"context"
	"fmt"

	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/repo"
)

func (s *Storage) SaveUpload(ctx context.Context, u *entity.Upload) (int64, error) {
	const op = "storage.postgres.SaveUpload"

	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO uploads (original_name, stored_name, content_type, size, uploaded_by)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		u.OriginalName, u.StoredName, u.ContentType, u.Size, u.UploadedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return id, nil
}

func (s *Storage) GetUploadByID(ctx context.Context, id int64) (entity.Upload, error) {
	const op = "storage.postgres.GetUploadByID"

	var u entity.Upload
	err := s.db.GetContext(ctx, &u,
		`SELECT id, original_name, stored_name, content_type, size, uploaded_by, created_at FROM uploads WHERE id = $1`, id)
	if err != nil {
		return entity.Upload{}, fmt.Errorf("%s: %w", op, notFound(err, repo.ErrUploadNotFound))
	}
	return u, nil
}

func (s *Storage) DeleteUpload(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeleteUpload"

	res, err := s.db.ExecContext(ctx, `DELETE FROM uploads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	if err := mustAffect(res, repo.ErrUploadNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return nil
}
