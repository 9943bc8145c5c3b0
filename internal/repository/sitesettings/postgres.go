package sitesettings

import (
	"context"

	"animateme/internal/domain"
	"animateme/internal/logging"
	"animateme/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const generalColumns = `id::text AS id, site_name, logo, favicon, footer_description, created_at, updated_at`

type generalRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewGeneralPostgres(pool *pgxpool.Pool, logger *zap.Logger) GeneralRepository {
	return &generalRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *generalRepo) Get(ctx context.Context) (*domain.GeneralSettings, error) {
	const q = `SELECT ` + generalColumns + ` FROM general_settings ORDER BY created_at ASC LIMIT 1`
	return repository.One[domain.GeneralSettings](ctx, r.pool, q)
}

func (r *generalRepo) Insert(ctx context.Context, s domain.GeneralSettings) (*domain.GeneralSettings, error) {
	const q = `
INSERT INTO general_settings (site_name, logo, favicon, footer_description)
VALUES ($1, $2, $3, $4)
RETURNING ` + generalColumns
	out, err := repository.One[domain.GeneralSettings](ctx, r.pool, q, s.SiteName, s.Logo, s.Favicon, s.FooterDescription)
	if err != nil {
		r.logger.Warn("general settings insert failed", zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *generalRepo) Update(ctx context.Context, id string, s domain.GeneralSettings) (*domain.GeneralSettings, error) {
	const q = `
UPDATE general_settings
SET site_name = $2, logo = $3, favicon = $4, footer_description = $5, updated_at = now()
WHERE id = $1
RETURNING ` + generalColumns
	out, err := repository.One[domain.GeneralSettings](ctx, r.pool, q, id, s.SiteName, s.Logo, s.Favicon, s.FooterDescription)
	if err != nil {
		r.logger.Warn("general settings update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *generalRepo) Delete(ctx context.Context, id string) error {
	return repository.ExecOne(ctx, r.pool, `DELETE FROM general_settings WHERE id = $1`, id)
}

const paymentColumns = `id::text AS id, whatsapp_number, upi_id, qr_code_url, bank_account_details, created_at, updated_at`

type paymentRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPaymentPostgres(pool *pgxpool.Pool, logger *zap.Logger) PaymentRepository {
	return &paymentRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *paymentRepo) Get(ctx context.Context) (*domain.PaymentSettings, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payment_settings ORDER BY created_at ASC LIMIT 1`
	return repository.One[domain.PaymentSettings](ctx, r.pool, q)
}

func (r *paymentRepo) Insert(ctx context.Context, s domain.PaymentSettings) (*domain.PaymentSettings, error) {
	const q = `
INSERT INTO payment_settings (whatsapp_number, upi_id, qr_code_url, bank_account_details)
VALUES ($1, $2, $3, $4)
RETURNING ` + paymentColumns
	out, err := repository.One[domain.PaymentSettings](ctx, r.pool, q, s.WhatsAppNumber, s.UPIID, s.QRCodeURL, s.BankAccountDetails)
	if err != nil {
		r.logger.Warn("payment settings insert failed", zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *paymentRepo) Update(ctx context.Context, id string, s domain.PaymentSettings) (*domain.PaymentSettings, error) {
	const q = `
UPDATE payment_settings
SET whatsapp_number = $2, upi_id = $3, qr_code_url = $4, bank_account_details = $5, updated_at = now()
WHERE id = $1
RETURNING ` + paymentColumns
	out, err := repository.One[domain.PaymentSettings](ctx, r.pool, q, id, s.WhatsAppNumber, s.UPIID, s.QRCodeURL, s.BankAccountDetails)
	if err != nil {
		r.logger.Warn("payment settings update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *paymentRepo) Delete(ctx context.Context, id string) error {
	return repository.ExecOne(ctx, r.pool, `DELETE FROM payment_settings WHERE id = $1`, id)
}

const pageColumns = `page, content, created_at, updated_at`

type pageRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPagePostgres(pool *pgxpool.Pool, logger *zap.Logger) PageRepository {
	return &pageRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *pageRepo) Get(ctx context.Context, page string) (*domain.PageContent, error) {
	const q = `SELECT ` + pageColumns + ` FROM page_content WHERE page = $1`
	return withContent(repository.One[domain.PageContent](ctx, r.pool, q, page))
}

func (r *pageRepo) List(ctx context.Context) ([]domain.PageContent, error) {
	const q = `SELECT ` + pageColumns + ` FROM page_content ORDER BY page`
	pages, err := repository.All[domain.PageContent](ctx, r.pool, q)
	if err != nil {
		return nil, err
	}
	for i := range pages {
		if pages[i].Content == nil {
			pages[i].Content = map[string]interface{}{}
		}
	}
	return pages, nil
}

// Insert creates the block, or replaces it when the page already has one.
func (r *pageRepo) Insert(ctx context.Context, p domain.PageContent) (*domain.PageContent, error) {
	const q = `
INSERT INTO page_content (page, content)
VALUES ($1, COALESCE($2::jsonb, '{}'::jsonb))
ON CONFLICT (page) DO UPDATE SET content = EXCLUDED.content, updated_at = now()
RETURNING ` + pageColumns
	out, err := withContent(repository.One[domain.PageContent](ctx, r.pool, q, p.Page, p.Content))
	if err != nil {
		r.logger.Warn("page content upsert failed", zap.String("page", p.Page), zap.Error(err))
	}
	return out, err
}

func (r *pageRepo) Update(ctx context.Context, page string, p domain.PageContent) (*domain.PageContent, error) {
	const q = `
UPDATE page_content
SET content = COALESCE($2::jsonb, '{}'::jsonb), updated_at = now()
WHERE page = $1
RETURNING ` + pageColumns
	out, err := withContent(repository.One[domain.PageContent](ctx, r.pool, q, page, p.Content))
	if err != nil {
		r.logger.Warn("page content update failed", zap.String("page", page), zap.Error(err))
	}
	return out, err
}

func (r *pageRepo) Delete(ctx context.Context, page string) error {
	return repository.ExecOne(ctx, r.pool, `DELETE FROM page_content WHERE page = $1`, page)
}

func withContent(p *domain.PageContent, err error) (*domain.PageContent, error) {
	if err != nil {
		return nil, err
	}
	if p.Content == nil {
		p.Content = map[string]interface{}{}
	}
	return p, nil
}
