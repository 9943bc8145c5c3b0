package casestudy

import (
	"context"

	"animateme/internal/domain"
	"animateme/internal/logging"
	"animateme/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const columns = `id::text AS id, title, client, challenge, solution, result, image, video_url, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.CaseStudy, error) {
	return repository.All[domain.CaseStudy](ctx, r.pool, `SELECT `+columns+` FROM case_studies ORDER BY created_at ASC`)
}

func (r *postgresRepo) Insert(ctx context.Context, c domain.CaseStudy) (*domain.CaseStudy, error) {
	const q = `
INSERT INTO case_studies (title, client, challenge, solution, result, image, video_url)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + columns
	out, err := repository.One[domain.CaseStudy](ctx, r.pool, q, c.Title, c.Client, c.Challenge, c.Solution, c.Result, c.Image, c.VideoURL)
	if err != nil {
		r.logger.Warn("case study insert failed", zap.String("title", c.Title), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, c domain.CaseStudy) (*domain.CaseStudy, error) {
	const q = `
UPDATE case_studies
SET title = $2, client = $3, challenge = $4, solution = $5, result = $6, image = $7, video_url = $8, updated_at = now()
WHERE id = $1
RETURNING ` + columns
	out, err := repository.One[domain.CaseStudy](ctx, r.pool, q, id, c.Title, c.Client, c.Challenge, c.Solution, c.Result, c.Image, c.VideoURL)
	if err != nil {
		r.logger.Warn("case study update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	return repository.ExecOne(ctx, r.pool, `DELETE FROM case_studies WHERE id = $1`, id)
}
