// Package sitesettings stores the single-row site configuration tables and
// the per-page content blocks.
package sitesettings

import (
	"context"

	"animateme/internal/domain"
)

// GeneralRepository persists the site identity row.
type GeneralRepository interface {
	Get(ctx context.Context) (*domain.GeneralSettings, error)
	Insert(ctx context.Context, s domain.GeneralSettings) (*domain.GeneralSettings, error)
	Update(ctx context.Context, id string, s domain.GeneralSettings) (*domain.GeneralSettings, error)
	Delete(ctx context.Context, id string) error
}

// PaymentRepository persists the checkout payment configuration row.
type PaymentRepository interface {
	Get(ctx context.Context) (*domain.PaymentSettings, error)
	Insert(ctx context.Context, s domain.PaymentSettings) (*domain.PaymentSettings, error)
	Update(ctx context.Context, id string, s domain.PaymentSettings) (*domain.PaymentSettings, error)
	Delete(ctx context.Context, id string) error
}

// PageRepository persists one content block per page key.
type PageRepository interface {
	Get(ctx context.Context, page string) (*domain.PageContent, error)
	List(ctx context.Context) ([]domain.PageContent, error)
	Insert(ctx context.Context, p domain.PageContent) (*domain.PageContent, error)
	Update(ctx context.Context, page string, p domain.PageContent) (*domain.PageContent, error)
	Delete(ctx context.Context, page string) error
}
