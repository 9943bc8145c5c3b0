// Package checkout implements the manual checkout: an order row is stored as
// pending and the buyer confirms payment over WhatsApp.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"animateme/internal/domain"
	"animateme/internal/logging"
	"animateme/internal/service/manager"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var (
	ErrWhatsAppNotConfigured = errors.New("whatsapp number is not set up")
	ErrInvalidStatus         = errors.New("status must be pending, paid, shipped, completed or cancelled")
)

type productReader interface {
	Get(ctx context.Context, id string) (*domain.EstoreProduct, error)
}

type paymentReader interface {
	Get(ctx context.Context) (*domain.PaymentSettings, error)
}

type orderRepo interface {
	List(ctx context.Context) ([]domain.EstoreOrder, error)
	Insert(ctx context.Context, o domain.EstoreOrder) (*domain.EstoreOrder, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.EstoreOrder, error)
}

type Service struct {
	products productReader
	payments paymentReader
	orders   orderRepo
	validate *validator.Validate
	logger   *zap.Logger
}

func New(products productReader, payments paymentReader, orders orderRepo, logger *zap.Logger) *Service {
	return &Service{
		products: products,
		payments: payments,
		orders:   orders,
		validate: manager.NewValidator(),
		logger:   logging.OrNop(logger),
	}
}

// Page is what the checkout page renders.
type Page struct {
	Product domain.EstoreProduct   `json:"product"`
	Payment domain.PaymentSettings `json:"payment"`
}

// Get returns the product with the payment instructions. Missing payment
// settings are served as empty.
func (s *Service) Get(ctx context.Context, productID string) (*Page, error) {
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	page := &Page{Product: *product}
	payment, err := s.payments.Get(ctx)
	switch {
	case err == nil:
		page.Payment = *payment
	case errors.Is(err, domain.ErrNotFound):
	default:
		return nil, err
	}
	return page, nil
}

type OrderInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// Placed is a stored order plus the link the buyer follows to confirm it.
type Placed struct {
	Order       domain.EstoreOrder `json:"order"`
	WhatsAppURL string             `json:"whatsapp_url"`
}

// PlaceOrder stores a pending order for the product at its current price.
func (s *Service) PlaceOrder(ctx context.Context, productID string, in OrderInput) (*Placed, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := manager.ValidateStruct(s.validate, in); err != nil {
		return nil, err
	}

	page, err := s.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	number := digits(page.Payment.WhatsAppNumber)
	if number == "" {
		return nil, ErrWhatsAppNotConfigured
	}

	order, err := s.orders.Insert(ctx, domain.EstoreOrder{
		ProductID:     page.Product.ID,
		Amount:        page.Product.Price,
		CustomerName:  in.Name,
		CustomerEmail: in.Email,
		Status:        domain.OrderPending,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("order placed", zap.String("order", order.ID), zap.String("product", page.Product.ID))

	return &Placed{Order: *order, WhatsAppURL: WhatsAppURL(number, confirmation(page.Product.Name, order.ID, in))}, nil
}

func (s *Service) Orders(ctx context.Context) ([]domain.EstoreOrder, error) {
	return s.orders.List(ctx)
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*domain.EstoreOrder, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !domain.IsOrderStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.orders.UpdateStatus(ctx, id, status)
}

// WhatsAppURL builds a click-to-chat link with a prefilled message.
func WhatsAppURL(number, message string) string {
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + digits(number) + "?text=" + text
}

func confirmation(product, orderID string, in OrderInput) string {
	return fmt.Sprintf("Hello, I've placed an order for %q.\n\nOrder ID: %s\nName: %s\nEmail: %s\n\nI am sending the payment screenshot.",
		product, orderID, in.Name, in.Email)
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
