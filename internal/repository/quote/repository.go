// Package quote stores the calculator's animation types and styles and the
// quote requests visitors submit.
package quote

import (
	"context"

	"animateme/internal/domain"
)

type TypeRepository interface {
	List(ctx context.Context) ([]domain.QuoteAnimationType, error)
	Insert(ctx context.Context, t domain.QuoteAnimationType) (*domain.QuoteAnimationType, error)
	Update(ctx context.Context, id string, t domain.QuoteAnimationType) (*domain.QuoteAnimationType, error)
	Delete(ctx context.Context, id string) error
}

type StyleRepository interface {
	List(ctx context.Context) ([]domain.QuoteAnimationStyle, error)
	Insert(ctx context.Context, s domain.QuoteAnimationStyle) (*domain.QuoteAnimationStyle, error)
	Update(ctx context.Context, id string, s domain.QuoteAnimationStyle) (*domain.QuoteAnimationStyle, error)
	Delete(ctx context.Context, id string) error
}

// RequestRepository lists requests newest first.
type RequestRepository interface {
	List(ctx context.Context) ([]domain.QuoteRequest, error)
	Insert(ctx context.Context, q domain.QuoteRequest) (*domain.QuoteRequest, error)
	Delete(ctx context.Context, id string) error
}
