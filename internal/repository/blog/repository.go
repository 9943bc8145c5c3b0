// Package blog stores blog categories and posts.
package blog

import (
	"context"

	"animateme/internal/domain"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.BlogCategory, error)
	Insert(ctx context.Context, c domain.BlogCategory) (*domain.BlogCategory, error)
	Update(ctx context.Context, id string, c domain.BlogCategory) (*domain.BlogCategory, error)
	Delete(ctx context.Context, id string) error
}

// PostRepository lists posts newest first. Category is joined on read.
type PostRepository interface {
	List(ctx context.Context) ([]domain.BlogPost, error)
	Get(ctx context.Context, id string) (*domain.BlogPost, error)
	Insert(ctx context.Context, p domain.BlogPost) (*domain.BlogPost, error)
	Update(ctx context.Context, id string, p domain.BlogPost) (*domain.BlogPost, error)
	Delete(ctx context.Context, id string) error
}
