// Package inbox stores contact form submissions and newsletter subscribers.
package inbox

import (
	"context"

	"animateme/internal/domain"
)

// ContactRepository lists submissions newest first.
type ContactRepository interface {
	List(ctx context.Context) ([]domain.ContactSubmission, error)
	Insert(ctx context.Context, c domain.ContactSubmission) (*domain.ContactSubmission, error)
	Delete(ctx context.Context, id string) error
}

// SubscriberRepository lists subscribers newest first. Emails are unique
// regardless of case.
type SubscriberRepository interface {
	List(ctx context.Context, search string) ([]domain.Subscriber, error)
	Insert(ctx context.Context, s domain.Subscriber) (*domain.Subscriber, error)
	Update(ctx context.Context, id string, s domain.Subscriber) (*domain.Subscriber, error)
	Delete(ctx context.Context, id string) error
}
