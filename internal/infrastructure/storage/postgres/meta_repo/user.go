// Package meta_repo provides repositories backed by the meta database.
// The meta database holds the tenant registry and user accounts; it is
// shared across tenants and never goes through the per-request pool.
package meta_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"krilo/internal/core/apperror"
	"krilo/internal/core/id"
	"krilo/internal/domain/auth"
)

const pgUniqueViolation = "23505"

// UserRepo implements auth.Repository against the meta database.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepo creates a new user repository.
func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, tenant_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.Email, user.PasswordHash, user.TenantID, user.IsActive, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.NewConflict("email already exists")
		}
		return apperror.NewStorage(fmt.Errorf("create user: %w", err))
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	var user auth.User
	err := pgxscan.Get(ctx, r.pool, &user, `
		SELECT id, email, password_hash, tenant_id, is_active, last_login_at, created_at, updated_at
		FROM users
		WHERE id = $1
	`, userID)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", userID)
		}
		return nil, apperror.NewStorage(fmt.Errorf("get user by id: %w", err))
	}
	return &user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	var user auth.User
	err := pgxscan.Get(ctx, r.pool, &user, `
		SELECT id, email, password_hash, tenant_id, is_active, last_login_at, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", email)
		}
		return nil, apperror.NewStorage(fmt.Errorf("get user by email: %w", err))
	}
	return &user, nil
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)
	`, email).Scan(&exists)
	if err != nil {
		return false, apperror.NewStorage(fmt.Errorf("check email: %w", err))
	}
	return exists, nil
}

func (r *UserRepo) UpdateLastLogin(ctx context.Context, userID id.ID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET last_login_at = now(), updated_at = now()
		WHERE id = $1
	`, userID)
	if err != nil {
		return apperror.NewStorage(fmt.Errorf("update last login: %w", err))
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, userID id.ID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return apperror.NewStorage(fmt.Errorf("delete user: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("user", userID)
	}
	return nil
}

var _ auth.Repository = (*UserRepo)(nil)
