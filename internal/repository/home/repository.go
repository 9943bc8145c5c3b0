// Package home stores the home page hero slides and stat counters.
package home

import (
	"context"

	"animateme/internal/domain"
)

// SlideRepository lists slides by ascending sort order.
type SlideRepository interface {
	List(ctx context.Context) ([]domain.HeroSlide, error)
	Insert(ctx context.Context, s domain.HeroSlide) (*domain.HeroSlide, error)
	Update(ctx context.Context, id string, s domain.HeroSlide) (*domain.HeroSlide, error)
	Delete(ctx context.Context, id string) error
	// ReplaceAll makes the table match slides: list position becomes the
	// sort order, slides without an id are inserted and rows absent from
	// the list are deleted.
	ReplaceAll(ctx context.Context, slides []domain.HeroSlide) ([]domain.HeroSlide, error)
}

// StatRepository lists stats by ascending sort order.
type StatRepository interface {
	List(ctx context.Context) ([]domain.HomeStat, error)
	Insert(ctx context.Context, s domain.HomeStat) (*domain.HomeStat, error)
	Update(ctx context.Context, id string, s domain.HomeStat) (*domain.HomeStat, error)
	Delete(ctx context.Context, id string) error
}
