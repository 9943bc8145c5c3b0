package domain

import "time"

// QuoteAnimationType carries the base cost per second of finished animation.
type QuoteAnimationType struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" validate:"required"`
	Value     string    `json:"value" db:"value" validate:"required"`
	BaseCost  float64   `json:"base_cost" db:"base_cost" validate:"gte=0"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// QuoteAnimationStyle scales the base cost.
type QuoteAnimationStyle struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name" validate:"required"`
	Value          string    `json:"value" db:"value" validate:"required"`
	CostMultiplier float64   `json:"cost_multiplier" db:"cost_multiplier" validate:"gt=0"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// QuoteRequest is a visitor's request for a formal quote. Duration is in seconds.
type QuoteRequest struct {
	ID             string    `json:"id" db:"id"`
	AnimationType  string    `json:"animation_type" db:"animation_type"`
	AnimationStyle string    `json:"animation_style" db:"animation_style"`
	Duration       float64   `json:"duration" db:"duration"`
	EstimatedPrice int64     `json:"estimated_price" db:"estimated_price"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	Message        string    `json:"message" db:"message"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
