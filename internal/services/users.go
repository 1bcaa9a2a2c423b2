package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/lib/jwt"
	"github.com/14kear/csi-portal/internal/repo"
	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

var (
	ErrInvalidCredentials = apperr.Authentication("invalid credentials")
	ErrInactiveUser       = apperr.Authentication("user is deactivated")
	ErrSelfDelete         = apperr.Conflict("you cannot delete your own account")
)

type UserStorage interface {
	SaveUser(ctx context.Context, user *entity.User) (int64, error)
	UserByEmail(ctx context.Context, email string) (entity.User, error)
	UserByID(ctx context.Context, id int64) (entity.User, error)
	GetUsers(ctx context.Context, role entity.Role) ([]entity.User, error)
	UpdateUser(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id int64, passHash []byte) error
	DeleteUser(ctx context.Context, id int64) error
}

type Users struct {
	log         *slog.Logger
	userStorage UserStorage
	audit       *Audit
	secret      string
	accessTTL   time.Duration
}

type CreateUserInput struct {
	Email        string
	Name         string
	Password     string
	Role         entity.Role
	DepartmentID *int64
}

// UpdateUserInput carries the fields to change. Nil or empty fields are left as they are.
type UpdateUserInput struct {
	Name         *string
	Role         *entity.Role
	DepartmentID *int64
	IsActive     *bool
	Password     string
}

func NewUsers(log *slog.Logger, userStorage UserStorage, audit *Audit, secret string, accessTTL time.Duration) *Users {
	return &Users{
		log:         log,
		userStorage: userStorage,
		audit:       audit,
		secret:      secret,
		accessTTL:   accessTTL,
	}
}

// Login checks the credentials and returns a signed access token for the user.
func (u *Users) Login(ctx context.Context, email, password string) (string, entity.User, error) {
	const op = "services.Users.Login"

	log := u.log.With(slog.String("op", op))
	log.Info("attempting to login user")

	user, err := u.userStorage.UserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			log.Warn("user not found")
			return "", entity.User{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		log.Error("failed to get user", sl.Err(err))
		return "", entity.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))
		return "", entity.User{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if !user.IsActive {
		return "", entity.User{}, fmt.Errorf("%s: %w", op, ErrInactiveUser)
	}

	token, err := jwt.NewAccessToken(user, u.secret, u.accessTTL)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))
		return "", entity.User{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("successfully logged in", slog.Int64("uid", user.ID))
	return token, user, nil
}

func (u *Users) CreateUser(ctx context.Context, actor entity.Actor, in CreateUserInput) (int64, error) {
	const op = "services.Users.CreateUser"

	log := u.log.With(slog.String("op", op))

	in.Email = normalizeEmail(in.Email)
	if !validEmail(in.Email) {
		return 0, fmt.Errorf("%s: %w", op, apperr.Validation("a valid email is required"))
	}
	if strings.TrimSpace(in.Name) == "" {
		return 0, fmt.Errorf("%s: %w", op, apperr.Validation("name is required"))
	}
	if !in.Role.Valid() {
		return 0, fmt.Errorf("%s: %w", op, apperr.Validation("unknown role"))
	}
	if len(in.Password) < minPasswordLen {
		return 0, fmt.Errorf("%s: %w", op, apperr.Validation(fmt.Sprintf("password must be at least %d characters", minPasswordLen)))
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate hash password", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	user := &entity.User{
		Email:        in.Email,
		Name:         strings.TrimSpace(in.Name),
		PassHash:     passHash,
		Role:         in.Role,
		DepartmentID: in.DepartmentID,
		IsActive:     true,
	}

	id, err := u.userStorage.SaveUser(ctx, user)
	if err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExists) {
			log.Warn("user already exists", sl.Err(err))
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	u.audit.Action(ctx, actor, "users.create", "users", id, entity.LogDetails{"role": in.Role})
	log.Info("user created", slog.Int64("uid", id))
	return id, nil
}

func (u *Users) GetUser(ctx context.Context, id int64) (entity.User, error) {
	const op = "services.Users.GetUser"

	user, err := u.userStorage.UserByID(ctx, id)
	if err != nil {
		return entity.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func (u *Users) ListUsers(ctx context.Context, role entity.Role) ([]entity.User, error) {
	const op = "services.Users.ListUsers"

	if role != "" && !role.Valid() {
		return nil, fmt.Errorf("%s: %w", op, apperr.Validation("unknown role"))
	}

	users, err := u.userStorage.GetUsers(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

func (u *Users) UpdateUser(ctx context.Context, actor entity.Actor, id int64, in UpdateUserInput) (entity.User, error) {
	const op = "services.Users.UpdateUser"

	user, err := u.userStorage.UserByID(ctx, id)
	if err != nil {
		return entity.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return entity.User{}, fmt.Errorf("%s: %w", op, apperr.Validation("name must not be empty"))
		}
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return entity.User{}, fmt.Errorf("%s: %w", op, apperr.Validation("unknown role"))
		}
		user.Role = *in.Role
	}
	if in.DepartmentID != nil {
		user.DepartmentID = in.DepartmentID
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	var passHash []byte
	if in.Password != "" {
		if len(in.Password) < minPasswordLen {
			return entity.User{}, fmt.Errorf("%s: %w", op, apperr.Validation(fmt.Sprintf("password must be at least %d characters", minPasswordLen)))
		}
		passHash, err = bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return entity.User{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := u.userStorage.UpdateUser(ctx, &user); err != nil {
		return entity.User{}, fmt.Errorf("%s: %w", op, err)
	}
	if passHash != nil {
		if err := u.userStorage.UpdatePassword(ctx, id, passHash); err != nil {
			return entity.User{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	u.audit.Action(ctx, actor, "users.update", "users", id, nil)
	return user, nil
}

func (u *Users) DeleteUser(ctx context.Context, actor entity.Actor, id int64) error {
	const op = "services.Users.DeleteUser"

	if actor.ID == id {
		return fmt.Errorf("%s: %w", op, ErrSelfDelete)
	}
	if err := u.userStorage.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	u.audit.Action(ctx, actor, "users.delete", "users", id, nil)
	return nil
}

// EnsureAdmin creates the bootstrap administrator unless an account with that email already exists.
func (u *Users) EnsureAdmin(ctx context.Context, email, password string) error {
	const op = "services.Users.EnsureAdmin"

	if email == "" || password == "" {
		return nil
	}

	_, err := u.userStorage.UserByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrUserNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = u.CreateUser(ctx, entity.Actor{}, CreateUserInput{
		Email:    email,
		Name:     "Administrator",
		Password: password,
		Role:     entity.RoleAdmin,
	})
	if err != nil && !errors.Is(err, repo.ErrUserAlreadyExists) {
		return fmt.Errorf("%s: %w", op, err)
	}
	u.log.Info("bootstrap administrator ensured", slog.String("op", op))
	return nil
}
