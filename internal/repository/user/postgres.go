package user

import (
	"context"
	"errors"
	"strings"

	"animateme/internal/domain"
	"animateme/internal/logging"
	"animateme/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const columns = `id::text, email, password_hash, role, last_sign_in_at, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *postgresRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	const q = `
INSERT INTO admin_users (email, password_hash, role)
VALUES ($1, $2, $3)
RETURNING ` + columns
	return r.scanUser(r.pool.QueryRow(ctx, q, strings.ToLower(strings.TrimSpace(u.Email)), u.PasswordHash, u.Role))
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT ` + columns + ` FROM admin_users WHERE lower(email) = lower($1) LIMIT 1`
	return r.scanUser(r.pool.QueryRow(ctx, q, strings.TrimSpace(email)))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `SELECT ` + columns + ` FROM admin_users WHERE id = $1 LIMIT 1`
	return r.scanUser(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+columns+` FROM admin_users ORDER BY created_at ASC`)
	if err != nil {
		r.logger.Warn("user list failed", zap.Error(err))
		return nil, repository.MapError(err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		r.logger.Warn("user list rows failed", zap.Error(err))
		return nil, repository.MapError(err)
	}
	return users, nil
}

func (r *postgresRepo) UpdateRole(ctx context.Context, id, role string) (*domain.User, error) {
	const q = `UPDATE admin_users SET role = $2, updated_at = now() WHERE id = $1 RETURNING ` + columns
	return r.scanUser(r.pool.QueryRow(ctx, q, id, role))
}

func (r *postgresRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return repository.ExecOne(ctx, r.pool,
		`UPDATE admin_users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
}

func (r *postgresRepo) TouchSignIn(ctx context.Context, id string) error {
	return repository.ExecOne(ctx, r.pool, `UPDATE admin_users SET last_sign_in_at = now() WHERE id = $1`, id)
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	return repository.ExecOne(ctx, r.pool, `DELETE FROM admin_users WHERE id = $1`, id)
}

func (r *postgresRepo) CountAdmins(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM admin_users WHERE role = 'admin'`).Scan(&n); err != nil {
		return 0, repository.MapError(err)
	}
	return n, nil
}

func (r *postgresRepo) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.LastSignInAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		mapped := repository.MapError(err)
		if !errors.Is(mapped, domain.ErrNotFound) {
			r.logger.Warn("user scan failed", zap.Error(err))
		}
		return nil, mapped
	}
	return &u, nil
}
