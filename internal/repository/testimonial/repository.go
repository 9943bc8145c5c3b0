package testimonial

import (
	"context"

	"animateme/internal/domain"
)

// Repository persists client testimonials.
type Repository interface {
	List(ctx context.Context) ([]domain.Testimonial, error)
	Insert(ctx context.Context, t domain.Testimonial) (*domain.Testimonial, error)
	Update(ctx context.Context, id string, t domain.Testimonial) (*domain.Testimonial, error)
	Delete(ctx context.Context, id string) error
}
