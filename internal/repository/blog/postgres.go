package blog

import (
	"context"

	"animateme/internal/domain"
	"animateme/internal/logging"
	"animateme/internal/repository"
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

func (r *categoryRepo) List(ctx context.Context) ([]domain.BlogCategory, error) {
	return repository.All[domain.BlogCategory](ctx, r.pool, `SELECT `+categoryColumns+` FROM blog_categories ORDER BY name ASC`)
}

func (r *categoryRepo) Insert(ctx context.Context, c domain.BlogCategory) (*domain.BlogCategory, error) {
	out, err := repository.One[domain.BlogCategory](ctx, r.pool,
		`INSERT INTO blog_categories (name) VALUES ($1) RETURNING `+categoryColumns, c.Name)
	if err != nil {
		r.logger.Warn("blog category insert failed", zap.String("name", c.Name), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *categoryRepo) Update(ctx context.Context, id string, c domain.BlogCategory) (*domain.BlogCategory, error) {
	out, err := repository.One[domain.BlogCategory](ctx, r.pool,
		`UPDATE blog_categories SET name = $2, updated_at = now() WHERE id = $1 RETURNING `+categoryColumns, id, c.Name)
	if err != nil {
		r.logger.Warn("blog category update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	return repository.ExecOne(ctx, r.pool, `DELETE FROM blog_categories WHERE id = $1`, id)
}

const postSelect = `
SELECT w.id::text AS id, w.title, w.excerpt, w.content, w.author, w.category_id::text AS category_id,
       COALESCE(c.name, '` + domain.UncategorizedName + `') AS category,
       w.image, w.read_time, w.date, w.created_at, w.updated_at
FROM w LEFT JOIN blog_categories c ON c.id = w.category_id`

type postRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostPostgres(pool *pgxpool.Pool, logger *zap.Logger) PostRepository {
	return &postRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *postRepo) List(ctx context.Context) ([]domain.BlogPost, error) {
	const q = `WITH w AS (SELECT * FROM blog_posts)` + postSelect + ` ORDER BY w.date DESC`
	return repository.All[domain.BlogPost](ctx, r.pool, q)
}

func (r *postRepo) Get(ctx context.Context, id string) (*domain.BlogPost, error) {
	const q = `WITH w AS (SELECT * FROM blog_posts WHERE id = $1)` + postSelect
	return repository.One[domain.BlogPost](ctx, r.pool, q, id)
}

func (r *postRepo) Insert(ctx context.Context, p domain.BlogPost) (*domain.BlogPost, error) {
	const q = `
WITH w AS (
    INSERT INTO blog_posts (title, excerpt, content, author, category_id, image, read_time, date)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING *
)` + postSelect
	out, err := repository.One[domain.BlogPost](ctx, r.pool, q,
		p.Title, p.Excerpt, p.Content, p.Author, repository.NullIfEmpty(p.CategoryID), p.Image, p.ReadTime, repository.DateOrNow(p.Date))
	if err != nil {
		r.logger.Warn("blog post insert failed", zap.String("title", p.Title), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *postRepo) Update(ctx context.Context, id string, p domain.BlogPost) (*domain.BlogPost, error) {
	const q = `
WITH w AS (
    UPDATE blog_posts
    SET title = $2, excerpt = $3, content = $4, author = $5, category_id = $6, image = $7,
        read_time = $8, date = COALESCE($9, date), updated_at = now()
    WHERE id = $1
    RETURNING *
)` + postSelect
	out, err := repository.One[domain.BlogPost](ctx, r.pool, q, id,
		p.Title, p.Excerpt, p.Content, p.Author, repository.NullIfEmpty(p.CategoryID), p.Image, p.ReadTime, repository.NullIfZero(p.Date))
	if err != nil {
		r.logger.Warn("blog post update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	return repository.ExecOne(ctx, r.pool, `DELETE FROM blog_posts WHERE id = $1`, id)
}
