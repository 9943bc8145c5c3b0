// Package offering stores the studio's service offerings and the sample clips
// attached to them.
package offering

import (
	"context"

	"animateme/internal/domain"
)

// ServiceRepository persists services.
type ServiceRepository interface {
	List(ctx context.Context) ([]domain.Service, error)
	Get(ctx context.Context, id string) (*domain.Service, error)
	Insert(ctx context.Context, s domain.Service) (*domain.Service, error)
	Update(ctx context.Context, id string, s domain.Service) (*domain.Service, error)
	Delete(ctx context.Context, id string) error
}

// SampleRepository persists service samples. ServiceName is joined on read.
type SampleRepository interface {
	List(ctx context.Context) ([]domain.ServiceSample, error)
	Insert(ctx context.Context, s domain.ServiceSample) (*domain.ServiceSample, error)
	Update(ctx context.Context, id string, s domain.ServiceSample) (*domain.ServiceSample, error)
	Delete(ctx context.Context, id string) error
}
