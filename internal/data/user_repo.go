package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jobtracker/jobtracker-api/internal/domain/model"
	apperrors "github.com/jobtracker/jobtracker-api/internal/errors"
)

// UserRepo provides database operations for user accounts.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: systemClock}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider.
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

const userColumns = `id, name, last_name, email, location, password_hash, created_at, updated_at`

const (
	userInsertQuery = `
		INSERT INTO users (name, last_name, email, location, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING ` + userColumns

	userByIDQuery = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	userByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	userUpdateQuery = `
		UPDATE users SET email = $1, name = $2, last_name = $3, location = $4, updated_at = $5
		WHERE id = $6
		RETURNING ` + userColumns
)

const userEmailConstraint = "users_email_key"

// Create inserts u and returns the stored row. A duplicate email is a conflict.
func (r *UserRepo) Create(ctx context.Context, u *model.User) (*model.User, error) {
	if u == nil {
		return nil, errors.New("user is required")
	}

	row := r.DB.QueryRowContext(ctx, userInsertQuery,
		u.Name,
		u.LastName,
		model.NormalizeEmail(u.Email),
		u.Location,
		u.PasswordHash,
		r.timeProvider.Now().UTC(),
	)
	out, err := scanUser(row)
	if err != nil {
		return nil, mapUserWriteError(err)
	}
	return out, nil
}

// GetByID retrieves a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if !isUUID(id) {
		return nil, userNotFound()
	}
	return r.get(ctx, userByIDQuery, id)
}

// GetByEmail retrieves a user by email. The lookup is case-insensitive.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.get(ctx, userByEmailQuery, model.NormalizeEmail(email))
}

// Update replaces the profile fields of user id.
func (r *UserRepo) Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	if !isUUID(id) {
		return nil, userNotFound()
	}

	row := r.DB.QueryRowContext(ctx, userUpdateQuery,
		model.NormalizeEmail(req.Email),
		req.Name,
		req.LastName,
		req.Location,
		r.timeProvider.Now().UTC(),
		id,
	)
	out, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userNotFound()
		}
		return nil, mapUserWriteError(err)
	}
	return out, nil
}

func (r *UserRepo) get(ctx context.Context, q string, arg any) (*model.User, error) {
	out, err := scanUser(r.DB.QueryRowContext(ctx, q, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userNotFound()
		}
		return nil, apperrors.MapDBError(fmt.Errorf("get user: %w", err))
	}
	return out, nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.LastName,
		&u.Email,
		&u.Location,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func mapUserWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == userEmailConstraint {
		return &apperrors.AppError{
			Code:    apperrors.ErrCodeConflict,
			Message: "Email already in use",
			Field:   "email",
			Cause:   err,
		}
	}
	return apperrors.MapDBError(err)
}

func userNotFound() error {
	e := apperrors.NotFound("User not found")
	e.Cause = ErrUserNotFound
	return e
}
