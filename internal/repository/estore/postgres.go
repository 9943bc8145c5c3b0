package estore

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

const categoryColumns = `id::text AS id, name, created_at, updated_at`

type categoryRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewCategoryPostgres(pool *pgxpool.Pool, logger *zap.Logger) CategoryRepository {
	return &categoryRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *categoryRepo) List(ctx context.Context) ([]domain.EstoreCategory, error) {
	return repository.All[domain.EstoreCategory](ctx, r.pool,
		`SELECT `+categoryColumns+` FROM estore_categories ORDER BY name ASC`)
}

func (r *categoryRepo) Insert(ctx context.Context, c domain.EstoreCategory) (*domain.EstoreCategory, error) {
	out, err := repository.One[domain.EstoreCategory](ctx, r.pool,
		`INSERT INTO estore_categories (name) VALUES ($1) RETURNING `+categoryColumns, strings.TrimSpace(c.Name))
	if err != nil {
		r.logger.Warn("estore category insert failed", zap.String("name", c.Name), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *categoryRepo) Update(ctx context.Context, id string, c domain.EstoreCategory) (*domain.EstoreCategory, error) {
	out, err := repository.One[domain.EstoreCategory](ctx, r.pool,
		`UPDATE estore_categories SET name = $2, updated_at = now() WHERE id = $1 RETURNING `+categoryColumns,
		id, strings.TrimSpace(c.Name))
	if err != nil {
		r.logger.Warn("estore category update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	return repository.ExecOne(ctx, r.pool, `DELETE FROM estore_categories WHERE id = $1`, id)
}

func (r *categoryRepo) Ensure(ctx context.Context, name string) (*domain.EstoreCategory, error) {
	// The no-op update makes RETURNING yield the existing row on conflict.
	const q = `
INSERT INTO estore_categories (name) VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING ` + categoryColumns
	return repository.One[domain.EstoreCategory](ctx, r.pool, q, strings.TrimSpace(name))
}

const productSelect = `
SELECT w.id::text AS id, w.name, w.description, w.price, w.category_id::text AS category_id,
       COALESCE(c.name, '` + domain.UncategorizedName + `') AS category,
       w.featured_image_url, w.other_image_urls, w.created_at, w.updated_at
FROM w LEFT JOIN estore_categories c ON c.id = w.category_id`

const (
	insertProduct = `
WITH w AS (
    INSERT INTO estore_products (name, description, price, category_id, featured_image_url, other_image_urls)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING *
)` + productSelect
	updateProduct = `
WITH w AS (
    UPDATE estore_products
    SET name = $2, description = $3, price = $4, category_id = $5, featured_image_url = $6,
        other_image_urls = $7, updated_at = now()
    WHERE id = $1
    RETURNING *
)` + productSelect
)

type productRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewProductPostgres(pool *pgxpool.Pool, logger *zap.Logger) ProductRepository {
	return &productRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *productRepo) List(ctx context.Context) ([]domain.EstoreProduct, error) {
	const q = `WITH w AS (SELECT * FROM estore_products)` + productSelect + ` ORDER BY w.name ASC`
	products, err := repository.All[domain.EstoreProduct](ctx, r.pool, q)
	if err != nil {
		r.logger.Warn("estore product list failed", zap.Error(err))
		return nil, err
	}
	r.logger.Debug("estore product list", zap.Int("count", len(products)))
	return products, nil
}

func (r *productRepo) Get(ctx context.Context, id string) (*domain.EstoreProduct, error) {
	const q = `WITH w AS (SELECT * FROM estore_products WHERE id = $1)` + productSelect
	return repository.One[domain.EstoreProduct](ctx, r.pool, q, id)
}

func (r *productRepo) Insert(ctx context.Context, p domain.EstoreProduct) (*domain.EstoreProduct, error) {
	out, err := insertProductWith(ctx, r.pool, p)
	if err != nil {
		r.logger.Warn("estore product insert failed", zap.String("name", p.Name), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *productRepo) Update(ctx context.Context, id string, p domain.EstoreProduct) (*domain.EstoreProduct, error) {
	out, err := updateProductWith(ctx, r.pool, id, p)
	if err != nil {
		r.logger.Warn("estore product update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	return repository.ExecOne(ctx, r.pool, `DELETE FROM estore_products WHERE id = $1`, id)
}

func (r *productRepo) UpsertByName(ctx context.Context, p domain.EstoreProduct) (*domain.EstoreProduct, error) {
	var out *domain.EstoreProduct
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var id string
		err := tx.QueryRow(ctx, `SELECT id::text FROM estore_products WHERE lower(name) = lower($1) ORDER BY created_at LIMIT 1`, p.Name).Scan(&id)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			out, err = insertProductWith(ctx, tx, p)
		case err == nil:
			out, err = updateProductWith(ctx, tx, id, p)
		default:
			err = repository.MapError(err)
		}
		return err
	})
	if err != nil {
		r.logger.Warn("estore product upsert failed", zap.String("name", p.Name), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func insertProductWith(ctx context.Context, q repository.Querier, p domain.EstoreProduct) (*domain.EstoreProduct, error) {
	return repository.One[domain.EstoreProduct](ctx, q, insertProduct,
		p.Name, p.Description, p.Price, repository.NullIfEmpty(p.CategoryID), p.FeaturedImageURL, repository.Strings(p.OtherImageURLs))
}

func updateProductWith(ctx context.Context, q repository.Querier, id string, p domain.EstoreProduct) (*domain.EstoreProduct, error) {
	return repository.One[domain.EstoreProduct](ctx, q, updateProduct, id,
		p.Name, p.Description, p.Price, repository.NullIfEmpty(p.CategoryID), p.FeaturedImageURL, repository.Strings(p.OtherImageURLs))
}

const orderSelect = `
SELECT w.id::text AS id, w.product_id::text AS product_id, COALESCE(p.name, '') AS product_name,
       w.amount, w.customer_name, w.customer_email, w.status, w.created_at, w.updated_at
FROM w LEFT JOIN estore_products p ON p.id = w.product_id`

type orderRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewOrderPostgres(pool *pgxpool.Pool, logger *zap.Logger) OrderRepository {
	return &orderRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *orderRepo) List(ctx context.Context) ([]domain.EstoreOrder, error) {
	const q = `WITH w AS (SELECT * FROM estore_orders)` + orderSelect + ` ORDER BY w.created_at DESC`
	return repository.All[domain.EstoreOrder](ctx, r.pool, q)
}

func (r *orderRepo) Insert(ctx context.Context, o domain.EstoreOrder) (*domain.EstoreOrder, error) {
	status := o.Status
	if status == "" {
		status = domain.OrderPending
	}
	const q = `
WITH w AS (
    INSERT INTO estore_orders (product_id, amount, customer_name, customer_email, status)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING *
)` + orderSelect
	out, err := repository.One[domain.EstoreOrder](ctx, r.pool, q, o.ProductID, o.Amount, o.CustomerName, o.CustomerEmail, status)
	if err != nil {
		r.logger.Warn("estore order insert failed", zap.String("product_id", o.ProductID), zap.Error(err))
		return nil, err
	}
	r.logger.Info("estore order placed", zap.String("order_id", out.ID), zap.String("product_id", out.ProductID))
	return out, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id, status string) (*domain.EstoreOrder, error) {
	const q = `
WITH w AS (
    UPDATE estore_orders SET status = $2, updated_at = now()
    WHERE id = $1
    RETURNING *
)` + orderSelect
	out, err := repository.One[domain.EstoreOrder](ctx, r.pool, q, id, status)
	if err != nil {
		r.logger.Warn("estore order status update failed", zap.String("id", id), zap.String("status", status), zap.Error(err))
		return nil, err
	}
	return out, nil
}
