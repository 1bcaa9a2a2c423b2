package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

type Storage struct {
	db *sqlx.DB
}

func New(postgresURL string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sqlx.Open("postgres", postgresURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// NewWithDB wraps an already opened connection pool.
func NewWithDB(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// DB exposes the underlying pool for migrations.
func (s *Storage) DB() *sql.DB {
	return s.db.DB
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// withTx runs fn inside a transaction, committing on success and rolling back otherwise.
func (s *Storage) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// pqCode returns the SQLSTATE of a postgres error, or "".
func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// dbErr classifies driver errors as database errors. Errors that already carry a kind pass through.
func dbErr(err error) error {
	var classified *apperr.Error
	if err == nil || errors.As(err, &classified) {
		return err
	}
	return apperr.Database(err)
}

// notFound maps sql.ErrNoRows to the given sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return dbErr(err)
}

// mustAffect turns a zero rows-affected result into the given sentinel.
func mustAffect(res sql.Result, sentinel error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return dbErr(err)
	}
	if n == 0 {
		return sentinel
	}
	return nil
}
