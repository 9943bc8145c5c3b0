// Package estore stores the shop's categories, products and manual orders.
package estore

import (
	"context"

	"animateme/internal/domain"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.EstoreCategory, error)
	Insert(ctx context.Context, c domain.EstoreCategory) (*domain.EstoreCategory, error)
	Update(ctx context.Context, id string, c domain.EstoreCategory) (*domain.EstoreCategory, error)
	Delete(ctx context.Context, id string) error
	// Ensure returns the category with the given name, creating it if needed.
	Ensure(ctx context.Context, name string) (*domain.EstoreCategory, error)
}

// ProductRepository lists products by name. Category is joined on read.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.EstoreProduct, error)
	Get(ctx context.Context, id string) (*domain.EstoreProduct, error)
	Insert(ctx context.Context, p domain.EstoreProduct) (*domain.EstoreProduct, error)
	Update(ctx context.Context, id string, p domain.EstoreProduct) (*domain.EstoreProduct, error)
	Delete(ctx context.Context, id string) error
	// UpsertByName updates the product whose name matches case-insensitively,
	// or inserts a new one.
	UpsertByName(ctx context.Context, p domain.EstoreProduct) (*domain.EstoreProduct, error)
}

// OrderRepository lists orders newest first with the product name joined.
type OrderRepository interface {
	List(ctx context.Context) ([]domain.EstoreOrder, error)
	Insert(ctx context.Context, o domain.EstoreOrder) (*domain.EstoreOrder, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.EstoreOrder, error)
}
