// Package inbox handles what visitors send the studio: contact messages,
// newsletter sign-ups and quote requests.
package inbox

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"animateme/internal/domain"
	"animateme/internal/logging"
	inboxrepo "animateme/internal/repository/inbox"
	"animateme/internal/service/manager"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ErrAlreadySubscribed wraps domain.ErrAlreadyExists.
var ErrAlreadySubscribed = fmt.Errorf("already subscribed: %w", domain.ErrAlreadyExists)

type quoteRequests interface {
	List(ctx context.Context) ([]domain.QuoteRequest, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	contacts    inboxrepo.ContactRepository
	subscribers inboxrepo.SubscriberRepository
	quotes      quoteRequests
	validate    *validator.Validate
	logger      *zap.Logger
}

func New(contacts inboxrepo.ContactRepository, subscribers inboxrepo.SubscriberRepository, quotes quoteRequests, logger *zap.Logger) *Service {
	return &Service{
		contacts:    contacts,
		subscribers: subscribers,
		quotes:      quotes,
		validate:    manager.NewValidator(),
		logger:      logging.OrNop(logger),
	}
}

// ContactInput is the contact form. Project type, budget and deadline are
// stored as a header on the message.
type ContactInput struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	ProjectType string `json:"project_type"`
	Budget      string `json:"budget"`
	Deadline    string `json:"deadline"`
	Message     string `json:"message" validate:"required"`
}

func (in ContactInput) body() string {
	if in.ProjectType == "" && in.Budget == "" && in.Deadline == "" {
		return in.Message
	}
	return fmt.Sprintf("Project Type: %s\nBudget: %s\nDeadline: %s\n\n%s", in.ProjectType, in.Budget, in.Deadline, in.Message)
}

func (s *Service) Contact(ctx context.Context, in ContactInput) (*domain.ContactSubmission, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if err := manager.ValidateStruct(s.validate, in); err != nil {
		return nil, err
	}
	saved, err := s.contacts.Insert(ctx, domain.ContactSubmission{Name: in.Name, Email: in.Email, Message: in.body()})
	if err != nil {
		return nil, err
	}
	s.logger.Info("contact submission received", zap.String("id", saved.ID))
	return saved, nil
}

// Subscribe adds an email to the newsletter list. It serves both the public
// form and the dashboard.
func (s *Service) Subscribe(ctx context.Context, sub domain.Subscriber) (*domain.Subscriber, error) {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.ToLower(strings.TrimSpace(sub.Email))
	if err := manager.ValidateStruct(s.validate, sub); err != nil {
		return nil, err
	}
	saved, err := s.subscribers.Insert(ctx, domain.Subscriber{Name: sub.Name, Email: sub.Email})
	if errors.Is(err, domain.ErrAlreadyExists) {
		return nil, ErrAlreadySubscribed
	}
	return saved, err
}

func (s *Service) Contacts(ctx context.Context) ([]domain.ContactSubmission, error) {
	return s.contacts.List(ctx)
}

func (s *Service) DeleteContact(ctx context.Context, id string) error {
	return s.contacts.Delete(ctx, id)
}

func (s *Service) QuoteRequests(ctx context.Context) ([]domain.QuoteRequest, error) {
	return s.quotes.List(ctx)
}

func (s *Service) DeleteQuoteRequest(ctx context.Context, id string) error {
	return s.quotes.Delete(ctx, id)
}

// Subscribers lists subscribers whose name or email contains search.
func (s *Service) Subscribers(ctx context.Context, search string) ([]domain.Subscriber, error) {
	return s.subscribers.List(ctx, strings.TrimSpace(search))
}

func (s *Service) DeleteSubscriber(ctx context.Context, id string) error {
	return s.subscribers.Delete(ctx, id)
}

// ExportSubscribers writes the matching subscribers as CSV with a header row.
func (s *Service) ExportSubscribers(ctx context.Context, search string, w io.Writer) (int, error) {
	subs, err := s.Subscribers(ctx, search)
	if err != nil {
		return 0, err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "email", "subscribed_at"}); err != nil {
		return 0, err
	}
	for _, sub := range subs {
		if err := cw.Write([]string{sub.Name, sub.Email, sub.CreatedAt.UTC().Format(time.RFC3339)}); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(subs), cw.Error()
}
