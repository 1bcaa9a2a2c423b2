package postgres

import (
	"context"
	"fmt"

	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/repo"
)

const userColumns = `id, email, name, pass_hash, role, department_id, is_active, created_at, updated_at`

func (s *Storage) SaveUser(ctx context.Context, user *entity.User) (int64, error) {
	const op = "storage.postgres.SaveUser"

	query := `INSERT INTO users (email, name, pass_hash, role, department_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	var id int64
	err := s.db.QueryRowContext(ctx, query,
		user.Email, user.Name, user.PassHash, user.Role, user.DepartmentID, user.IsActive,
	).Scan(&id)
	if err != nil {
		switch pqCode(err) {
		case pqUniqueViolation:
			return 0, fmt.Errorf("%s: %w", op, repo.ErrUserAlreadyExists)
		case pqForeignKeyViolation:
			return 0, fmt.Errorf("%s: %w", op, repo.ErrReferenceMissing)
		}
		return 0, fmt.Errorf("%s: %w", op, dbErr(err))
	}

	return id, nil
}

func (s *Storage) UserByEmail(ctx context.Context, email string) (entity.User, error) {
	const op = "storage.postgres.UserByEmail"

	var user entity.User
	err := s.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	if err != nil {
		return entity.User{}, fmt.Errorf("%s: %w", op, notFound(err, repo.ErrUserNotFound))
	}
	return user, nil
}

func (s *Storage) UserByID(ctx context.Context, id int64) (entity.User, error) {
	const op = "storage.postgres.UserByID"

	var user entity.User
	err := s.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return entity.User{}, fmt.Errorf("%s: %w", op, notFound(err, repo.ErrUserNotFound))
	}
	return user, nil
}

// GetUsers lists users, optionally restricted to one role.
func (s *Storage) GetUsers(ctx context.Context, role entity.Role) ([]entity.User, error) {
	const op = "storage.postgres.GetUsers"

	users := []entity.User{}
	var err error
	if role == "" {
		err = s.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY id`)
	} else {
		err = s.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY id`, role)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return users, nil
}

func (s *Storage) UpdateUser(ctx context.Context, user *entity.User) error {
	const op = "storage.postgres.UpdateUser"

	query := `UPDATE users SET name = $1, role = $2, department_id = $3, is_active = $4, updated_at = NOW() WHERE id = $5`

	res, err := s.db.ExecContext(ctx, query, user.Name, user.Role, user.DepartmentID, user.IsActive, user.ID)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return fmt.Errorf("%s: %w", op, repo.ErrReferenceMissing)
		}
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	if err := mustAffect(res, repo.ErrUserNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return nil
}

func (s *Storage) UpdatePassword(ctx context.Context, id int64, passHash []byte) error {
	const op = "storage.postgres.UpdatePassword"

	res, err := s.db.ExecContext(ctx, `UPDATE users SET pass_hash = $1, updated_at = NOW() WHERE id = $2`, passHash, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	if err := mustAffect(res, repo.ErrUserNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return nil
}

func (s *Storage) DeleteUser(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeleteUser"

	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return fmt.Errorf("%s: %w", op, repo.ErrReferenced)
		}
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	if err := mustAffect(res, repo.ErrUserNotFound); err != nil {
		return fmt.Errorf("%s: %w", op, dbErr(err))
	}
	return nil
}
