package testimonial

import (
	"context"

	"animateme/internal/domain"
	"animateme/internal/logging"
	"animateme/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const columns = `id::text AS id, author, company, quote, rating, avatar, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Testimonial, error) {
	return repository.All[domain.Testimonial](ctx, r.pool, `SELECT `+columns+` FROM testimonials ORDER BY created_at ASC`)
}

func (r *postgresRepo) Insert(ctx context.Context, t domain.Testimonial) (*domain.Testimonial, error) {
	const q = `
INSERT INTO testimonials (author, company, quote, rating, avatar)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + columns
	out, err := repository.One[domain.Testimonial](ctx, r.pool, q, t.Author, t.Company, t.Quote, t.Rating, t.Avatar)
	if err != nil {
		r.logger.Warn("testimonial insert failed", zap.String("author", t.Author), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, t domain.Testimonial) (*domain.Testimonial, error) {
	const q = `
UPDATE testimonials
SET author = $2, company = $3, quote = $4, rating = $5, avatar = $6, updated_at = now()
WHERE id = $1
RETURNING ` + columns
	out, err := repository.One[domain.Testimonial](ctx, r.pool, q, id, t.Author, t.Company, t.Quote, t.Rating, t.Avatar)
	if err != nil {
		r.logger.Warn("testimonial update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	return repository.ExecOne(ctx, r.pool, `DELETE FROM testimonials WHERE id = $1`, id)
}
