package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"animateme/internal/domain"
	"animateme/internal/logging"
	tokenrepo "animateme/internal/repository/token"
	userrepo "animateme/internal/repository/user"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const passwordMin = 6

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid login credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrSignupClosed is returned by CreateAdmin once an admin exists.
	ErrSignupClosed = errors.New("admin signup is closed")
	// ErrWeakPassword is returned for passwords shorter than passwordMin.
	ErrWeakPassword = fmt.Errorf("password must be at least %d characters", passwordMin)
	// ErrEmailRequired is returned when no email is given.
	ErrEmailRequired = errors.New("email required")
)

// RecoveryNotifier delivers password recovery tokens.
type RecoveryNotifier interface {
	SendRecovery(ctx context.Context, email, token string) error
}

// Options tune the service. Zero values fall back to defaults.
type Options struct {
	SessionTTL       time.Duration
	RecoveryTTL      time.Duration
	AllowAdminSignup bool
	Notifier         RecoveryNotifier
	Logger           *zap.Logger
}

// Service handles dashboard login, logout and password flows.
type Service struct {
	users       userrepo.Repository
	tokens      *tokenManager
	sessionTTL  time.Duration
	recoveryTTL time.Duration
	allowSignup bool
	notifier    RecoveryNotifier
	logger      *zap.Logger
}

// New creates a Service.
func New(users userrepo.Repository, tokens tokenrepo.Repository, opts Options) *Service {
	s := &Service{
		users:       users,
		tokens:      newTokenManager(tokens),
		sessionTTL:  opts.SessionTTL,
		recoveryTTL: opts.RecoveryTTL,
		allowSignup: opts.AllowAdminSignup,
		notifier:    opts.Notifier,
		logger:      logging.OrNop(opts.Logger),
	}
	if s.sessionTTL <= 0 {
		s.sessionTTL = 24 * time.Hour
	}
	if s.recoveryTTL <= 0 {
		s.recoveryTTL = time.Hour
	}
	if s.notifier == nil {
		s.notifier = logNotifier{logger: s.logger}
	}
	return s
}

// Session is an issued login.
type Session struct {
	Token     string       `json:"access_token"`
	ExpiresIn int          `json:"expires_in"`
	User      *domain.User `json:"user"`
}

// Login validates credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, u.ID, tokenrepo.KindSession, s.sessionTTL)
	if err != nil {
		return nil, err
	}
	if err := s.users.TouchSignIn(ctx, u.ID); err != nil {
		s.logger.Warn("recording sign-in failed", zap.String("user_id", u.ID), zap.Error(err))
	}
	s.logger.Info("admin signed in", zap.String("user_id", u.ID))
	return &Session{Token: token, ExpiresIn: int(s.sessionTTL.Seconds()), User: u}, nil
}

// Logout revokes a session token. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}

// Authenticate returns the user behind a valid session token.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	meta, ok := s.tokens.Validate(ctx, token, tokenrepo.KindSession)
	if !ok {
		return nil, ErrInvalidToken
	}
	u, err := s.users.GetByID(ctx, meta.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

// RequestPasswordReset issues a recovery token for email and hands it to the
// notifier. Unknown emails succeed silently.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Info("password reset for unknown email")
			return nil
		}
		return err
	}
	if err := s.tokens.repo.DeleteForUser(ctx, u.ID, tokenrepo.KindRecovery); err != nil {
		return err
	}
	token, err := s.tokens.Issue(ctx, u.ID, tokenrepo.KindRecovery, s.recoveryTTL)
	if err != nil {
		return err
	}
	return s.notifier.SendRecovery(ctx, u.Email, token)
}

// UpdatePassword sets a new password for the holder of token, which may be
// a session or a recovery token. Recovery tokens are single use.
func (s *Service) UpdatePassword(ctx context.Context, token, newPassword string) error {
	meta, ok := s.tokens.Validate(ctx, token, tokenrepo.KindSession, tokenrepo.KindRecovery)
	if !ok {
		return ErrInvalidToken
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, meta.UserID, hash); err != nil {
		return err
	}
	if meta.Kind == tokenrepo.KindRecovery {
		if err := s.tokens.Revoke(ctx, token); err != nil {
			s.logger.Warn("recovery token not revoked", zap.String("user_id", meta.UserID), zap.Error(err))
		}
	}
	return nil
}

// CreateAdmin registers an admin account. It is open until the first admin
// exists unless signup was explicitly allowed.
func (s *Service) CreateAdmin(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	if !s.allowSignup {
		n, err := s.users.CountAdmins(ctx)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, ErrSignupClosed
		}
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	u, err := s.users.Create(ctx, domain.User{Email: email, PasswordHash: hash, Role: domain.RoleAdmin})
	if err != nil {
		return nil, err
	}
	s.logger.Info("admin created", zap.String("user_id", u.ID))
	return u, nil
}

// HashPassword checks the minimum length and returns a bcrypt hash.
func HashPassword(password string) (string, error) {
	if len(password) < passwordMin {
		return "", ErrWeakPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

type logNotifier struct{ logger *zap.Logger }

// SendRecovery only records that a token was issued. The token itself is a
// credential and never reaches the log.
func (n logNotifier) SendRecovery(_ context.Context, email, token string) error {
	n.logger.Debug("password recovery token issued", zap.String("email", email), zap.String("token_hint", redact(token)))
	return nil
}

func redact(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return token[:4] + "****"
}
