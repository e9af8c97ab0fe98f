// Package repository provides data access for the auth bounded context.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Token types stored in user_tokens.
const (
	TokenTypeRefresh       = "refresh"
	TokenTypePasswordReset = "password_reset"
)

// ErrNotFound is returned when a user or token does not exist.
var ErrNotFound = errors.New("not found")

// User is the auth view of a user account.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Phone        *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	const query = `
		SELECT id, name, email, password_hash, role, phone, is_active, created_at, updated_at
		FROM users
		WHERE lower(email) = lower($1)`

	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *Repository) GetUserByID(ctx context.Context, userID uuid.UUID) (User, error) {
	const query = `
		SELECT id, name, email, password_hash, role, phone, is_active, created_at, updated_at
		FROM users
		WHERE id = $1`

	return r.scanUser(r.pool.QueryRow(ctx, query, userID))
}

func (r *Repository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	const query = `
		UPDATE users
		SET password_hash = $2, updated_at = now()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, userID, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	const query = `
		INSERT INTO user_tokens (id, user_id, token_hash, token_type, expires_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query, uuid.New(), userID, tokenHash, TokenTypeRefresh, expiresAt)
	return err
}

func (r *Repository) GetRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, time.Time, error) {
	const query = `
		SELECT user_id, expires_at
		FROM user_tokens
		WHERE token_hash = $1 AND token_type = $2 AND used_at IS NULL`

	var userID uuid.UUID
	var expiresAt time.Time
	err := r.pool.QueryRow(ctx, query, tokenHash, TokenTypeRefresh).Scan(&userID, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, time.Time{}, ErrNotFound
	}
	return userID, expiresAt, err
}

func (r *Repository) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	const query = `
		DELETE FROM user_tokens
		WHERE token_hash = $1 AND token_type = $2`

	_, err := r.pool.Exec(ctx, query, tokenHash, TokenTypeRefresh)
	return err
}

func (r *Repository) RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	const query = `
		DELETE FROM user_tokens
		WHERE user_id = $1 AND token_type = $2`

	_, err := r.pool.Exec(ctx, query, userID, TokenTypeRefresh)
	return err
}

func (r *Repository) CreateUserToken(ctx context.Context, userID uuid.UUID, tokenHash, tokenType string, expiresAt time.Time) error {
	const query = `
		INSERT INTO user_tokens (id, user_id, token_hash, token_type, expires_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query, uuid.New(), userID, tokenHash, tokenType, expiresAt)
	return err
}

func (r *Repository) GetUserToken(ctx context.Context, tokenHash, tokenType string) (uuid.UUID, time.Time, error) {
	const query = `
		SELECT user_id, expires_at
		FROM user_tokens
		WHERE token_hash = $1 AND token_type = $2 AND used_at IS NULL`

	var userID uuid.UUID
	var expiresAt time.Time
	err := r.pool.QueryRow(ctx, query, tokenHash, tokenType).Scan(&userID, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, time.Time{}, ErrNotFound
	}
	return userID, expiresAt, err
}

func (r *Repository) UseUserToken(ctx context.Context, tokenHash, tokenType string) error {
	const query = `
		UPDATE user_tokens
		SET used_at = now()
		WHERE token_hash = $1 AND token_type = $2 AND used_at IS NULL`

	_, err := r.pool.Exec(ctx, query, tokenHash, tokenType)
	return err
}

// DeleteExpiredTokens removes tokens whose expiry passed before the cutoff,
// along with consumed one-time tokens. Returns the number of rows deleted.
func (r *Repository) DeleteExpiredTokens(ctx context.Context, before time.Time) (int64, error) {
	const query = `
		DELETE FROM user_tokens
		WHERE expires_at < $1 OR used_at IS NOT NULL AND used_at < $1`

	tag, err := r.pool.Exec(ctx, query, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) scanUser(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Phone,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return user, err
}
