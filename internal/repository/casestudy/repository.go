package casestudy

import (
	"context"

	"animateme/internal/domain"
)

// Repository persists case studies.
type Repository interface {
	List(ctx context.Context) ([]domain.CaseStudy, error)
	Insert(ctx context.Context, c domain.CaseStudy) (*domain.CaseStudy, error)
	Update(ctx context.Context, id string, c domain.CaseStudy) (*domain.CaseStudy, error)
	Delete(ctx context.Context, id string) error
}
