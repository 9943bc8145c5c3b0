package portfolio

import (
	"context"

	"animateme/internal/domain"
	"animateme/internal/logging"
	"animateme/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const categoryColumns = `id::text AS id, name, type, created_at, updated_at`

type categoryRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewCategoryPostgres(pool *pgxpool.Pool, logger *zap.Logger) CategoryRepository {
	return &categoryRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *categoryRepo) List(ctx context.Context) ([]domain.PortfolioCategory, error) {
	const q = `SELECT ` + categoryColumns + ` FROM portfolio_categories ORDER BY type ASC, name ASC`
	return repository.All[domain.PortfolioCategory](ctx, r.pool, q)
}

func (r *categoryRepo) Insert(ctx context.Context, c domain.PortfolioCategory) (*domain.PortfolioCategory, error) {
	const q = `INSERT INTO portfolio_categories (name, type) VALUES ($1, $2) RETURNING ` + categoryColumns
	out, err := repository.One[domain.PortfolioCategory](ctx, r.pool, q, c.Name, c.Type)
	if err != nil {
		r.logger.Warn("portfolio category insert failed", zap.String("name", c.Name), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *categoryRepo) Update(ctx context.Context, id string, c domain.PortfolioCategory) (*domain.PortfolioCategory, error) {
	const q = `
UPDATE portfolio_categories SET name = $2, type = $3, updated_at = now()
WHERE id = $1
RETURNING ` + categoryColumns
	out, err := repository.One[domain.PortfolioCategory](ctx, r.pool, q, id, c.Name, c.Type)
	if err != nil {
		r.logger.Warn("portfolio category update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	return repository.ExecOne(ctx, r.pool, `DELETE FROM portfolio_categories WHERE id = $1`, id)
}

const itemSelect = `
SELECT w.id::text AS id, w.title, w.sub_category_id::text AS sub_category_id,
       COALESCE(c.name, '` + domain.UncategorizedName + `') AS category,
       w.image, w.video_url, w.description, w.client, w.date, w.created_at, w.updated_at
FROM w LEFT JOIN portfolio_categories c ON c.id = w.sub_category_id`

type itemRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewItemPostgres(pool *pgxpool.Pool, logger *zap.Logger) ItemRepository {
	return &itemRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *itemRepo) List(ctx context.Context) ([]domain.PortfolioItem, error) {
	const q = `WITH w AS (SELECT * FROM portfolio_items)` + itemSelect + ` ORDER BY w.date DESC`
	return repository.All[domain.PortfolioItem](ctx, r.pool, q)
}

func (r *itemRepo) Insert(ctx context.Context, it domain.PortfolioItem) (*domain.PortfolioItem, error) {
	const q = `
WITH w AS (
    INSERT INTO portfolio_items (title, sub_category_id, image, video_url, description, client, date)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING *
)` + itemSelect
	out, err := repository.One[domain.PortfolioItem](ctx, r.pool, q,
		it.Title, repository.NullIfEmpty(it.SubCategoryID), it.Image, it.VideoURL, it.Description, it.Client, repository.DateOrNow(it.Date))
	if err != nil {
		r.logger.Warn("portfolio item insert failed", zap.String("title", it.Title), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *itemRepo) Update(ctx context.Context, id string, it domain.PortfolioItem) (*domain.PortfolioItem, error) {
	const q = `
WITH w AS (
    UPDATE portfolio_items
    SET title = $2, sub_category_id = $3, image = $4, video_url = $5, description = $6,
        client = $7, date = COALESCE($8, date), updated_at = now()
    WHERE id = $1
    RETURNING *
)` + itemSelect
	out, err := repository.One[domain.PortfolioItem](ctx, r.pool, q, id,
		it.Title, repository.NullIfEmpty(it.SubCategoryID), it.Image, it.VideoURL, it.Description, it.Client, repository.NullIfZero(it.Date))
	if err != nil {
		r.logger.Warn("portfolio item update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *itemRepo) Delete(ctx context.Context, id string) error {
	return repository.ExecOne(ctx, r.pool, `DELETE FROM portfolio_items WHERE id = $1`, id)
}

const assetSelect = `
SELECT w.id::text AS id, w.title, w.sub_category_id::text AS sub_category_id,
       COALESCE(c.name, '` + domain.UncategorizedName + `') AS category,
       w.image_url, w.description, w.created_at, w.updated_at
FROM w LEFT JOIN portfolio_categories c ON c.id = w.sub_category_id`

type assetRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewAssetPostgres(pool *pgxpool.Pool, logger *zap.Logger) AssetRepository {
	return &assetRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *assetRepo) List(ctx context.Context) ([]domain.PortfolioAsset, error) {
	const q = `WITH w AS (SELECT * FROM portfolio_assets)` + assetSelect + ` ORDER BY w.created_at DESC`
	return repository.All[domain.PortfolioAsset](ctx, r.pool, q)
}

func (r *assetRepo) Insert(ctx context.Context, a domain.PortfolioAsset) (*domain.PortfolioAsset, error) {
	const q = `
WITH w AS (
    INSERT INTO portfolio_assets (title, sub_category_id, image_url, description)
    VALUES ($1, $2, $3, $4)
    RETURNING *
)` + assetSelect
	out, err := repository.One[domain.PortfolioAsset](ctx, r.pool, q,
		a.Title, repository.NullIfEmpty(a.SubCategoryID), a.ImageURL, a.Description)
	if err != nil {
		r.logger.Warn("portfolio asset insert failed", zap.String("title", a.Title), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *assetRepo) Update(ctx context.Context, id string, a domain.PortfolioAsset) (*domain.PortfolioAsset, error) {
	const q = `
WITH w AS (
    UPDATE portfolio_assets
    SET title = $2, sub_category_id = $3, image_url = $4, description = $5, updated_at = now()
    WHERE id = $1
    RETURNING *
)` + assetSelect
	out, err := repository.One[domain.PortfolioAsset](ctx, r.pool, q, id,
		a.Title, repository.NullIfEmpty(a.SubCategoryID), a.ImageURL, a.Description)
	if err != nil {
		r.logger.Warn("portfolio asset update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *assetRepo) Delete(ctx context.Context, id string) error {
	return repository.ExecOne(ctx, r.pool, `DELETE FROM portfolio_assets WHERE id = $1`, id)
}
