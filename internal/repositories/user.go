package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-social-network/internal/models"
	"github.com/sbilibin2017/gw-social-network/internal/services"
)

const userColumns = `id, username, email, full_name, avatar, gender, address, dob,
	password_hash, password_salt, verified, email_token, since, updated_at`

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByID loads a user by primary key.
func (r *UserReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.get(ctx, query, id)
}

// GetByIdentifier loads a user whose username or email equals the normalized identifier.
func (r *UserReadRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $1 LIMIT 1`
	return r.get(ctx, query, models.NormalizeIdentifier(identifier))
}

func (r *UserReadRepository) get(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, query, arg)

	logQuery(ctx, query, []any{arg}, user.ID, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, services.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Create inserts a new user. A taken username or email yields ErrDuplicateIdentifier.
func (r *UserWriteRepository) Create(ctx context.Context, u *models.User) error {
	const query = `
		INSERT INTO users (id, username, email, full_name, avatar, gender, address, dob,
			password_hash, password_salt, verified, email_token, since, updated_at)
		VALUES (:id, :username, :email, :full_name, :avatar, :gender, :address, :dob,
			:password_hash, :password_salt, :verified, :email_token, :since, :updated_at)
	`
	res, err := r.db.NamedExecContext(ctx, query, u)

	logQuery(ctx, query, []any{u.ID, u.Username, u.Email}, rowsAffected(res), err)

	if err != nil {
		if isUniqueViolation(err) {
			return services.ErrDuplicateIdentifier
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Update overwrites every mutable column of the user.
func (r *UserWriteRepository) Update(ctx context.Context, u *models.User) error {
	const query = `
		UPDATE users SET
			username = :username,
			email = :email,
			full_name = :full_name,
			avatar = :avatar,
			gender = :gender,
			address = :address,
			dob = :dob,
			password_hash = :password_hash,
			password_salt = :password_salt,
			verified = :verified,
			email_token = :email_token,
			updated_at = :updated_at
		WHERE id = :id
	`
	res, err := r.db.NamedExecContext(ctx, query, u)
	n := rowsAffected(res)

	logQuery(ctx, query, []any{u.ID, u.Username, u.Email, u.Verified}, n, err)

	if err != nil {
		if isUniqueViolation(err) {
			return services.ErrDuplicateIdentifier
		}
		return fmt.Errorf("update user: %w", err)
	}
	if n == 0 {
		return services.ErrNotFound
	}
	return nil
}

// MarkVerified sets the verified flag of the user.
func (r *UserWriteRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE users SET verified = TRUE, updated_at = NOW() WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	n := rowsAffected(res)

	logQuery(ctx, query, []any{id}, n, err)

	if err != nil {
		return fmt.Errorf("mark user verified: %w", err)
	}
	if n == 0 {
		return services.ErrNotFound
	}
	return nil
}
