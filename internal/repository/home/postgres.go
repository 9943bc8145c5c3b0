package home

import (
	"context"

	"animateme/internal/domain"
	"animateme/internal/logging"
	"animateme/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const slideColumns = `id::text AS id, tagline1, tagline2, subtitle, cta_text, cta_link, background_image,
sort_order, created_at, updated_at`

const (
	insertSlide = `
INSERT INTO home_hero_slides (tagline1, tagline2, subtitle, cta_text, cta_link, background_image, sort_order)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + slideColumns
	updateSlide = `
UPDATE home_hero_slides
SET tagline1 = $2, tagline2 = $3, subtitle = $4, cta_text = $5, cta_link = $6,
    background_image = $7, sort_order = $8, updated_at = now()
WHERE id = $1
RETURNING ` + slideColumns
)

type slideRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewSlidePostgres(pool *pgxpool.Pool, logger *zap.Logger) SlideRepository {
	return &slideRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *slideRepo) List(ctx context.Context) ([]domain.HeroSlide, error) {
	return repository.All[domain.HeroSlide](ctx, r.pool,
		`SELECT `+slideColumns+` FROM home_hero_slides ORDER BY sort_order ASC, created_at ASC`)
}

func (r *slideRepo) Insert(ctx context.Context, s domain.HeroSlide) (*domain.HeroSlide, error) {
	out, err := insertSlideWith(ctx, r.pool, s)
	if err != nil {
		r.logger.Warn("hero slide insert failed", zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *slideRepo) Update(ctx context.Context, id string, s domain.HeroSlide) (*domain.HeroSlide, error) {
	out, err := updateSlideWith(ctx, r.pool, id, s)
	if err != nil {
		r.logger.Warn("hero slide update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *slideRepo) Delete(ctx context.Context, id string) error {
	return repository.ExecOne(ctx, r.pool, `DELETE FROM home_hero_slides WHERE id = $1`, id)
}

func (r *slideRepo) ReplaceAll(ctx context.Context, slides []domain.HeroSlide) ([]domain.HeroSlide, error) {
	out := make([]domain.HeroSlide, 0, len(slides))
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		keep := make([]string, 0, len(slides))
		for i, s := range slides {
			s.SortOrder = i
			var (
				saved *domain.HeroSlide
				err   error
			)
			if s.ID == "" {
				saved, err = insertSlideWith(ctx, tx, s)
			} else {
				saved, err = updateSlideWith(ctx, tx, s.ID, s)
			}
			if err != nil {
				return err
			}
			keep = append(keep, saved.ID)
			out = append(out, *saved)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM home_hero_slides WHERE NOT (id::text = ANY($1))`, keep); err != nil {
			return repository.MapError(err)
		}
		return nil
	})
	if err != nil {
		r.logger.Warn("hero slide replace failed", zap.Int("slides", len(slides)), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func insertSlideWith(ctx context.Context, q repository.Querier, s domain.HeroSlide) (*domain.HeroSlide, error) {
	return repository.One[domain.HeroSlide](ctx, q, insertSlide,
		s.Tagline1, s.Tagline2, s.Subtitle, s.CTAText, s.CTALink, s.BackgroundImage, s.SortOrder)
}

func updateSlideWith(ctx context.Context, q repository.Querier, id string, s domain.HeroSlide) (*domain.HeroSlide, error) {
	return repository.One[domain.HeroSlide](ctx, q, updateSlide, id,
		s.Tagline1, s.Tagline2, s.Subtitle, s.CTAText, s.CTALink, s.BackgroundImage, s.SortOrder)
}

const statColumns = `id::text AS id, label, value, sort_order, created_at, updated_at`

type statRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewStatPostgres(pool *pgxpool.Pool, logger *zap.Logger) StatRepository {
	return &statRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *statRepo) List(ctx context.Context) ([]domain.HomeStat, error) {
	return repository.All[domain.HomeStat](ctx, r.pool,
		`SELECT `+statColumns+` FROM home_stats ORDER BY sort_order ASC, created_at ASC`)
}

func (r *statRepo) Insert(ctx context.Context, s domain.HomeStat) (*domain.HomeStat, error) {
	const q = `INSERT INTO home_stats (label, value, sort_order) VALUES ($1, $2, $3) RETURNING ` + statColumns
	out, err := repository.One[domain.HomeStat](ctx, r.pool, q, s.Label, s.Value, s.SortOrder)
	if err != nil {
		r.logger.Warn("home stat insert failed", zap.String("label", s.Label), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *statRepo) Update(ctx context.Context, id string, s domain.HomeStat) (*domain.HomeStat, error) {
	const q = `
UPDATE home_stats SET label = $2, value = $3, sort_order = $4, updated_at = now()
WHERE id = $1
RETURNING ` + statColumns
	out, err := repository.One[domain.HomeStat](ctx, r.pool, q, id, s.Label, s.Value, s.SortOrder)
	if err != nil {
		r.logger.Warn("home stat update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *statRepo) Delete(ctx context.Context, id string) error {
	return repository.ExecOne(ctx, r.pool, `DELETE FROM home_stats WHERE id = $1`, id)
}
