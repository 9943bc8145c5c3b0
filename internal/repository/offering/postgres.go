package offering

import (
	"context"

	"animateme/internal/domain"
	"animateme/internal/logging"
	"animateme/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const serviceColumns = `id::text AS id, icon, name, description, price_per_second, image,
details_content, video_url, features, created_at, updated_at`

type serviceRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewServicePostgres returns a ServiceRepository backed by Postgres.
func NewServicePostgres(pool *pgxpool.Pool, logger *zap.Logger) ServiceRepository {
	return &serviceRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *serviceRepo) List(ctx context.Context) ([]domain.Service, error) {
	const q = `SELECT ` + serviceColumns + ` FROM services ORDER BY created_at ASC`
	return repository.All[domain.Service](ctx, r.pool, q)
}

func (r *serviceRepo) Get(ctx context.Context, id string) (*domain.Service, error) {
	const q = `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	return repository.One[domain.Service](ctx, r.pool, q, id)
}

func (r *serviceRepo) Insert(ctx context.Context, s domain.Service) (*domain.Service, error) {
	const q = `
INSERT INTO services (icon, name, description, price_per_second, image, details_content, video_url, features)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + serviceColumns
	out, err := repository.One[domain.Service](ctx, r.pool, q,
		s.Icon, s.Name, s.Description, s.PricePerSecond, s.Image, s.DetailsContent, s.VideoURL, repository.Strings(s.Features))
	if err != nil {
		r.logger.Warn("service insert failed", zap.String("name", s.Name), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *serviceRepo) Update(ctx context.Context, id string, s domain.Service) (*domain.Service, error) {
	const q = `
UPDATE services
SET icon = $2, name = $3, description = $4, price_per_second = $5, image = $6,
    details_content = $7, video_url = $8, features = $9, updated_at = now()
WHERE id = $1
RETURNING ` + serviceColumns
	out, err := repository.One[domain.Service](ctx, r.pool, q, id,
		s.Icon, s.Name, s.Description, s.PricePerSecond, s.Image, s.DetailsContent, s.VideoURL, repository.Strings(s.Features))
	if err != nil {
		r.logger.Warn("service update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *serviceRepo) Delete(ctx context.Context, id string) error {
	return repository.ExecOne(ctx, r.pool, `DELETE FROM services WHERE id = $1`, id)
}

// sampleSelect projects a row source aliased "w" joined to services.
const sampleSelect = `
SELECT w.id::text AS id, w.service_id::text AS service_id, COALESCE(s.name, '') AS service_name,
       w.details_content, w.video_url, w.features, w.created_at, w.updated_at
FROM w LEFT JOIN services s ON s.id = w.service_id`

type sampleRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewSamplePostgres returns a SampleRepository backed by Postgres.
func NewSamplePostgres(pool *pgxpool.Pool, logger *zap.Logger) SampleRepository {
	return &sampleRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *sampleRepo) List(ctx context.Context) ([]domain.ServiceSample, error) {
	const q = `WITH w AS (SELECT * FROM service_samples)` + sampleSelect + ` ORDER BY w.created_at ASC`
	return repository.All[domain.ServiceSample](ctx, r.pool, q)
}

func (r *sampleRepo) Insert(ctx context.Context, s domain.ServiceSample) (*domain.ServiceSample, error) {
	const q = `
WITH w AS (
    INSERT INTO service_samples (service_id, details_content, video_url, features)
    VALUES ($1, $2, $3, $4)
    RETURNING *
)` + sampleSelect
	out, err := repository.One[domain.ServiceSample](ctx, r.pool, q,
		s.ServiceID, s.DetailsContent, s.VideoURL, repository.Strings(s.Features))
	if err != nil {
		r.logger.Warn("service sample insert failed", zap.String("service_id", s.ServiceID), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *sampleRepo) Update(ctx context.Context, id string, s domain.ServiceSample) (*domain.ServiceSample, error) {
	const q = `
WITH w AS (
    UPDATE service_samples
    SET service_id = $2, details_content = $3, video_url = $4, features = $5, updated_at = now()
    WHERE id = $1
    RETURNING *
)` + sampleSelect
	out, err := repository.One[domain.ServiceSample](ctx, r.pool, q, id,
		s.ServiceID, s.DetailsContent, s.VideoURL, repository.Strings(s.Features))
	if err != nil {
		r.logger.Warn("service sample update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *sampleRepo) Delete(ctx context.Context, id string) error {
	return repository.ExecOne(ctx, r.pool, `DELETE FROM service_samples WHERE id = $1`, id)
}
