package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"animateme/internal/domain"
	"animateme/internal/logging"
	"animateme/internal/service/auth"
	"animateme/internal/service/checkout"
	inboxsvc "animateme/internal/service/inbox"
	quotesvc "animateme/internal/service/quote"
	"animateme/internal/service/usermgmt"
	"animateme/internal/settings"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SettingsStore is the aggregated public snapshot.
type SettingsStore interface {
	Snapshot() *settings.Snapshot
	Initialized() bool
	Loading() bool
	Generation() uint64
	Refresh(ctx context.Context) error
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*auth.Session, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, token, newPassword string) error
	CreateAdmin(ctx context.Context, email, password string) (*domain.User, error)
}

type QuoteService interface {
	Estimate(ctx context.Context, typeValue, styleValue string, minutes float64) quotesvc.EstimateResult
	Submit(ctx context.Context, in quotesvc.RequestInput) (*domain.QuoteRequest, error)
}

type InboxService interface {
	Contact(ctx context.Context, in inboxsvc.ContactInput) (*domain.ContactSubmission, error)
	Subscribe(ctx context.Context, sub domain.Subscriber) (*domain.Subscriber, error)
	Contacts(ctx context.Context) ([]domain.ContactSubmission, error)
	DeleteContact(ctx context.Context, id string) error
	QuoteRequests(ctx context.Context) ([]domain.QuoteRequest, error)
	DeleteQuoteRequest(ctx context.Context, id string) error
	Subscribers(ctx context.Context, search string) ([]domain.Subscriber, error)
	DeleteSubscriber(ctx context.Context, id string) error
	ExportSubscribers(ctx context.Context, search string, w io.Writer) (int, error)
}

type CheckoutService interface {
	Get(ctx context.Context, productID string) (*checkout.Page, error)
	PlaceOrder(ctx context.Context, productID string, in checkout.OrderInput) (*checkout.Placed, error)
	Orders(ctx context.Context) ([]domain.EstoreOrder, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.EstoreOrder, error)
}

type ProductLister interface {
	List(ctx context.Context) ([]domain.EstoreProduct, error)
}

type CategoryLister interface {
	List(ctx context.Context) ([]domain.EstoreCategory, error)
}

// Catalog is the third-party storefront proxy.
type Catalog interface {
	Products(ctx context.Context) ([]domain.CatalogProduct, error)
}

type UserAdmin interface {
	List(ctx context.Context, caller *domain.User) ([]domain.User, error)
	UpdateRole(ctx context.Context, caller *domain.User, id, role string) (*domain.User, error)
	UpdatePassword(ctx context.Context, caller *domain.User, id, password string) error
	Delete(ctx context.Context, caller *domain.User, id string) error
	Dispatch(ctx context.Context, caller *domain.User, req usermgmt.Request) (interface{}, error)
}

// FileStore maps public object paths to files on disk.
type FileStore interface {
	Resolve(bucket, objPath string) (string, error)
}

// Deps are the services the router exposes. Nil services leave their routes
// unregistered.
type Deps struct {
	Settings         SettingsStore
	Auth             AuthService
	Quote            QuoteService
	Inbox            InboxService
	Checkout         CheckoutService
	Products         ProductLister
	EstoreCategories CategoryLister
	Catalog          Catalog
	Users            UserAdmin
	Files            FileStore
	Resources        []AdminResource

	CORSOrigins []string
	// MaxUploadBytes bounds multipart admin requests.
	MaxUploadBytes int64
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, db Pinger, deps Deps) (*gin.Engine, error) {
	if deps.Settings == nil {
		return nil, errors.New("settings store is required")
	}
	logger = logging.OrNop(logger)

	router := gin.New()
	router.Use(logging.GinLogger(logger), gin.CustomRecovery(func(c *gin.Context, rec any) {
		logger.Error("panic serving request", zap.Any("panic", rec), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}))
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Authorization", "Content-Type"},
			ExposeHeaders:    []string{"Content-Disposition", "X-Settings-Generation"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if deps.MaxUploadBytes <= 0 {
		deps.MaxUploadBytes = 20 << 20
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db, deps.Settings))
	if deps.Files != nil {
		router.GET("/storage/:bucket/*path", fileHandler(deps.Files))
	}

	api := router.Group("/api")
	registerPublic(api, deps)
	if deps.Auth == nil {
		return router, nil
	}
	registerAuth(api.Group("/auth"), deps.Auth)

	admin := api.Group("/admin", gate(deps.Auth))
	if err := registerAdmin(admin, deps); err != nil {
		return nil, err
	}
	return router, nil
}
