// Package portfolio stores portfolio categories, video items and still assets.
package portfolio

import (
	"context"

	"animateme/internal/domain"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.PortfolioCategory, error)
	Insert(ctx context.Context, c domain.PortfolioCategory) (*domain.PortfolioCategory, error)
	Update(ctx context.Context, id string, c domain.PortfolioCategory) (*domain.PortfolioCategory, error)
	Delete(ctx context.Context, id string) error
}

// ItemRepository lists items newest first by project date.
type ItemRepository interface {
	List(ctx context.Context) ([]domain.PortfolioItem, error)
	Insert(ctx context.Context, it domain.PortfolioItem) (*domain.PortfolioItem, error)
	Update(ctx context.Context, id string, it domain.PortfolioItem) (*domain.PortfolioItem, error)
	Delete(ctx context.Context, id string) error
}

// AssetRepository lists assets newest first by creation time.
type AssetRepository interface {
	List(ctx context.Context) ([]domain.PortfolioAsset, error)
	Insert(ctx context.Context, a domain.PortfolioAsset) (*domain.PortfolioAsset, error)
	Update(ctx context.Context, id string, a domain.PortfolioAsset) (*domain.PortfolioAsset, error)
	Delete(ctx context.Context, id string) error
}
