package token

import (
	"context"
	"time"
)

// Token kinds.
const (
	KindSession  = "session"
	KindRecovery = "recovery"
)

type Token struct {
	Token     string
	UserID    string
	Kind      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, token Token) error
	Get(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
	// DeleteForUser removes every token of kind held by userID.
	DeleteForUser(ctx context.Context, userID, kind string) error
}
