package domain

import "time"

type EstoreCategory struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" validate:"required"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type EstoreProduct struct {
	ID               string    `json:"id" db:"id"`
	Name             string    `json:"name" db:"name" validate:"required"`
	Description      string    `json:"description" db:"description"`
	Price            float64   `json:"price" db:"price" validate:"gte=0"`
	CategoryID       *string   `json:"category_id" db:"category_id"`
	Category         string    `json:"category" db:"category"`
	FeaturedImageURL string    `json:"featured_image_url" db:"featured_image_url"`
	OtherImageURLs   []string  `json:"other_image_urls" db:"other_image_urls"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// Order statuses.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// IsOrderStatus reports whether s is a known order status.
func IsOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderPaid, OrderShipped, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

type EstoreOrder struct {
	ID            string    `json:"id" db:"id"`
	ProductID     string    `json:"product_id" db:"product_id"`
	ProductName   string    `json:"product_name" db:"product_name"`
	Amount        float64   `json:"amount" db:"amount"`
	CustomerName  string    `json:"customer_name" db:"customer_name"`
	CustomerEmail string    `json:"customer_email" db:"customer_email"`
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// CatalogProduct is a product card from the third-party storefront.
type CatalogProduct struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	ImageURL   string  `json:"imageUrl"`
	ProductURL string  `json:"productUrl"`
}
