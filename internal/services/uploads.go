package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/uploads"
	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
)

type UploadStorage interface {
	SaveUpload(ctx context.Context, u *entity.Upload) (int64, error)
	GetUploadByID(ctx context.Context, id int64) (entity.Upload, error)
	DeleteUpload(ctx context.Context, id int64) error
}

type FileStore interface {
	Save(r io.Reader) (uploads.Stored, error)
	Open(name string) (*os.File, error)
	Remove(name string) error
}

type Uploads struct {
	log           *slog.Logger
	uploadStorage UploadStorage
	files         FileStore
	audit         *Audit
}

func NewUploads(log *slog.Logger, uploadStorage UploadStorage, files FileStore, audit *Audit) *Uploads {
	return &Uploads{log: log, uploadStorage: uploadStorage, files: files, audit: audit}
}

func (u *Uploads) Upload(ctx context.Context, actor entity.Actor, originalName string, r io.Reader) (entity.Upload, error) {
	const op = "services.Uploads.Upload"

	stored, err := u.files.Save(r)
	if err != nil {
		return entity.Upload{}, fmt.Errorf("%s: %w", op, err)
	}

	up := entity.Upload{
		OriginalName: filepath.Base(originalName),
		StoredName:   stored.Name,
		ContentType:  stored.ContentType,
		Size:         stored.Size,
		UploadedBy:   actor.ID,
	}
	id, err := u.uploadStorage.SaveUpload(ctx, &up)
	if err != nil {
		if rmErr := u.files.Remove(stored.Name); rmErr != nil {
			u.log.Warn("failed to remove orphaned upload", slog.String("op", op), sl.Err(rmErr))
		}
		return entity.Upload{}, fmt.Errorf("%s: %w", op, err)
	}
	up.ID = id

	u.audit.Action(ctx, actor, "uploads.create", "uploads", id, entity.LogDetails{"name": up.OriginalName, "size": up.Size})
	return up, nil
}

// Open returns the upload metadata and its content. The caller closes the file.
func (u *Uploads) Open(ctx context.Context, id int64) (entity.Upload, *os.File, error) {
	const op = "services.Uploads.Open"

	up, err := u.uploadStorage.GetUploadByID(ctx, id)
	if err != nil {
		return entity.Upload{}, nil, fmt.Errorf("%s: %w", op, err)
	}
	f, err := u.files.Open(up.StoredName)
	if err != nil {
		return entity.Upload{}, nil, fmt.Errorf("%s: %w", op, err)
	}
	return up, f, nil
}

func (u *Uploads) Delete(ctx context.Context, actor entity.Actor, id int64) error {
	const op = "services.Uploads.Delete"

	up, err := u.uploadStorage.GetUploadByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := u.uploadStorage.DeleteUpload(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := u.files.Remove(up.StoredName); err != nil {
		u.log.Warn("failed to remove upload file", slog.String("op", op), sl.Err(err))
	}

	u.audit.Action(ctx, actor, "uploads.delete", "uploads", id, nil)
	return nil
}
