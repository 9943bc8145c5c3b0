package quote

import (
	"context"

	"animateme/internal/domain"
	"animateme/internal/logging"
	"animateme/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const typeColumns = `id::text AS id, name, value, base_cost, created_at, updated_at`

type typeRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewTypePostgres(pool *pgxpool.Pool, logger *zap.Logger) TypeRepository {
	return &typeRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *typeRepo) List(ctx context.Context) ([]domain.QuoteAnimationType, error) {
	return repository.All[domain.QuoteAnimationType](ctx, r.pool,
		`SELECT `+typeColumns+` FROM quote_animation_types ORDER BY base_cost ASC, name ASC`)
}

func (r *typeRepo) Insert(ctx context.Context, t domain.QuoteAnimationType) (*domain.QuoteAnimationType, error) {
	const q = `INSERT INTO quote_animation_types (name, value, base_cost) VALUES ($1, $2, $3) RETURNING ` + typeColumns
	out, err := repository.One[domain.QuoteAnimationType](ctx, r.pool, q, t.Name, t.Value, t.BaseCost)
	if err != nil {
		r.logger.Warn("animation type insert failed", zap.String("value", t.Value), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *typeRepo) Update(ctx context.Context, id string, t domain.QuoteAnimationType) (*domain.QuoteAnimationType, error) {
	const q = `
UPDATE quote_animation_types SET name = $2, value = $3, base_cost = $4, updated_at = now()
WHERE id = $1
RETURNING ` + typeColumns
	out, err := repository.One[domain.QuoteAnimationType](ctx, r.pool, q, id, t.Name, t.Value, t.BaseCost)
	if err != nil {
		r.logger.Warn("animation type update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *typeRepo) Delete(ctx context.Context, id string) error {
	return repository.ExecOne(ctx, r.pool, `DELETE FROM quote_animation_types WHERE id = $1`, id)
}

const styleColumns = `id::text AS id, name, value, cost_multiplier, created_at, updated_at`

type styleRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewStylePostgres(pool *pgxpool.Pool, logger *zap.Logger) StyleRepository {
	return &styleRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *styleRepo) List(ctx context.Context) ([]domain.QuoteAnimationStyle, error) {
	return repository.All[domain.QuoteAnimationStyle](ctx, r.pool,
		`SELECT `+styleColumns+` FROM quote_animation_styles ORDER BY cost_multiplier ASC, name ASC`)
}

func (r *styleRepo) Insert(ctx context.Context, s domain.QuoteAnimationStyle) (*domain.QuoteAnimationStyle, error) {
	const q = `INSERT INTO quote_animation_styles (name, value, cost_multiplier) VALUES ($1, $2, $3) RETURNING ` + styleColumns
	out, err := repository.One[domain.QuoteAnimationStyle](ctx, r.pool, q, s.Name, s.Value, s.CostMultiplier)
	if err != nil {
		r.logger.Warn("animation style insert failed", zap.String("value", s.Value), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *styleRepo) Update(ctx context.Context, id string, s domain.QuoteAnimationStyle) (*domain.QuoteAnimationStyle, error) {
	const q = `
UPDATE quote_animation_styles SET name = $2, value = $3, cost_multiplier = $4, updated_at = now()
WHERE id = $1
RETURNING ` + styleColumns
	out, err := repository.One[domain.QuoteAnimationStyle](ctx, r.pool, q, id, s.Name, s.Value, s.CostMultiplier)
	if err != nil {
		r.logger.Warn("animation style update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *styleRepo) Delete(ctx context.Context, id string) error {
	return repository.ExecOne(ctx, r.pool, `DELETE FROM quote_animation_styles WHERE id = $1`, id)
}

const requestColumns = `id::text AS id, animation_type, animation_style, duration, estimated_price,
name, email, message, created_at`

type requestRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewRequestPostgres(pool *pgxpool.Pool, logger *zap.Logger) RequestRepository {
	return &requestRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *requestRepo) List(ctx context.Context) ([]domain.QuoteRequest, error) {
	return repository.All[domain.QuoteRequest](ctx, r.pool,
		`SELECT `+requestColumns+` FROM quote_requests ORDER BY created_at DESC`)
}

func (r *requestRepo) Insert(ctx context.Context, qr domain.QuoteRequest) (*domain.QuoteRequest, error) {
	const q = `
INSERT INTO quote_requests (animation_type, animation_style, duration, estimated_price, name, email, message)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + requestColumns
	out, err := repository.One[domain.QuoteRequest](ctx, r.pool, q,
		qr.AnimationType, qr.AnimationStyle, qr.Duration, qr.EstimatedPrice, qr.Name, qr.Email, qr.Message)
	if err != nil {
		r.logger.Warn("quote request insert failed", zap.String("email", qr.Email), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *requestRepo) Delete(ctx context.Context, id string) error {
	return repository.ExecOne(ctx, r.pool, `DELETE FROM quote_requests WHERE id = $1`, id)
}
