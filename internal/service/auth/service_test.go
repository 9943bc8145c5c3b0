package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"animateme/internal/domain"
	tokenrepo "animateme/internal/repository/token"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// memoryUsers is a lightweight in-memory user repository for tests.
type memoryUsers struct {
	byID map[string]domain.User
	seq  int
}

type memoryTokenRepo struct {
	tokens map[string]tokenrepo.Token
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: make(map[string]domain.User)}
}

func newMemoryTokenRepo() *memoryTokenRepo {
	return &memoryTokenRepo{tokens: make(map[string]tokenrepo.Token)}
}

func (r *memoryTokenRepo) Create(_ context.Context, token tokenrepo.Token) error {
	if _, exists := r.tokens[token.Token]; exists {
		return domain.ErrAlreadyExists
	}
	r.tokens[token.Token] = token
	return nil
}

func (r *memoryTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	t, ok := r.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := t
	return &clone, nil
}

func (r *memoryTokenRepo) Delete(_ context.Context, token string) error {
	if _, ok := r.tokens[token]; !ok {
		return domain.ErrNotFound
	}
	delete(r.tokens, token)
	return nil
}

func (r *memoryTokenRepo) DeleteForUser(_ context.Context, userID, kind string) error {
	for k, t := range r.tokens {
		if t.UserID == userID && t.Kind == kind {
			delete(r.tokens, k)
		}
	}
	return nil
}

func (r *memoryUsers) Create(_ context.Context, u domain.User) (*domain.User, error) {
	for _, existing := range r.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, domain.ErrAlreadyExists
		}
	}
	r.seq++
	clone := u
	clone.ID = "user-" + string(rune('0'+r.seq))
	r.byID[clone.ID] = clone
	return &clone, nil
}

func (r *memoryUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if strings.EqualFold(u.Email, email) {
			clone := u
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *memoryUsers) List(context.Context) ([]domain.User, error) {
	out := []domain.User{}
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

func (r *memoryUsers) UpdateRole(_ context.Context, id, role string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u.Role = role
	r.byID[id] = u
	return &u, nil
}

func (r *memoryUsers) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = hash
	r.byID[id] = u
	return nil
}

func (r *memoryUsers) TouchSignIn(_ context.Context, id string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	u.LastSignInAt = &now
	r.byID[id] = u
	return nil
}

func (r *memoryUsers) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memoryUsers) CountAdmins(context.Context) (int, error) {
	n := 0
	for _, u := range r.byID {
		if u.Role == domain.RoleAdmin {
			n++
		}
	}
	return n, nil
}

type captureNotifier struct{ email, token string }

func (c *captureNotifier) SendRecovery(_ context.Context, email, token string) error {
	c.email, c.token = email, token
	return nil
}

func TestCreateAdminThenLogin(t *testing.T) {
	svc := New(newMemoryUsers(), newMemoryTokenRepo(), Options{})
	ctx := context.Background()

	u, err := svc.CreateAdmin(ctx, "Owner@Studio.io", "secret1")
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if u.Role != domain.RoleAdmin || u.Email != "owner@studio.io" {
		t.Fatalf("unexpected user %+v", u)
	}

	sess, err := svc.Login(ctx, "owner@studio.io", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Token == "" || sess.ExpiresIn != int((24*time.Hour).Seconds()) {
		t.Fatalf("unexpected session %+v", sess)
	}

	got, err := svc.Authenticate(ctx, sess.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != u.ID || got.LastSignInAt == nil {
		t.Fatalf("unexpected authenticated user %+v", got)
	}

	if _, err := svc.Login(ctx, "owner@studio.io", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@studio.io", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}
}

func TestCreateAdminClosedAfterFirst(t *testing.T) {
	svc := New(newMemoryUsers(), newMemoryTokenRepo(), Options{})
	ctx := context.Background()
	if _, err := svc.CreateAdmin(ctx, "a@studio.io", "secret1"); err != nil {
		t.Fatalf("first admin: %v", err)
	}
	if _, err := svc.CreateAdmin(ctx, "b@studio.io", "secret1"); !errors.Is(err, ErrSignupClosed) {
		t.Fatalf("expected signup closed, got %v", err)
	}

	open := New(newMemoryUsers(), newMemoryTokenRepo(), Options{AllowAdminSignup: true})
	for _, email := range []string{"a@studio.io", "b@studio.io"} {
		if _, err := open.CreateAdmin(ctx, email, "secret1"); err != nil {
			t.Fatalf("open signup %s: %v", email, err)
		}
	}
}

func TestCreateAdminRejectsShortPassword(t *testing.T) {
	svc := New(newMemoryUsers(), newMemoryTokenRepo(), Options{})
	if _, err := svc.CreateAdmin(context.Background(), "a@studio.io", "12345"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected weak password, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc := New(newMemoryUsers(), newMemoryTokenRepo(), Options{})
	ctx := context.Background()
	if _, err := svc.CreateAdmin(ctx, "a@studio.io", "secret1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	sess, err := svc.Login(ctx, "a@studio.io", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(ctx, sess.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Authenticate(ctx, sess.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token after logout, got %v", err)
	}
	if err := svc.Logout(ctx, sess.Token); err != nil {
		t.Fatalf("second logout should be a no-op, got %v", err)
	}
}

func TestPasswordRecoveryFlow(t *testing.T) {
	notifier := &captureNotifier{}
	tokens := newMemoryTokenRepo()
	svc := New(newMemoryUsers(), tokens, Options{Notifier: notifier})
	ctx := context.Background()
	if _, err := svc.CreateAdmin(ctx, "a@studio.io", "secret1"); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.RequestPasswordReset(ctx, "ghost@studio.io"); err != nil {
		t.Fatalf("unknown email must not be disclosed, got %v", err)
	}
	if notifier.token != "" {
		t.Fatalf("no token should be sent for unknown email")
	}

	if err := svc.RequestPasswordReset(ctx, "a@studio.io"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	if notifier.email != "a@studio.io" || notifier.token == "" {
		t.Fatalf("unexpected notification %+v", notifier)
	}

	// A recovery token is not a session.
	if _, err := svc.Authenticate(ctx, notifier.token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("recovery token must not authenticate, got %v", err)
	}

	if err := svc.UpdatePassword(ctx, notifier.token, "newsecret"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	if err := svc.UpdatePassword(ctx, notifier.token, "again123"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("recovery token should be single use, got %v", err)
	}
	if _, err := svc.Login(ctx, "a@studio.io", "newsecret"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestExpiredTokenRejectedAndDeleted(t *testing.T) {
	tokens := newMemoryTokenRepo()
	svc := New(newMemoryUsers(), tokens, Options{})
	ctx := context.Background()
	if _, err := svc.CreateAdmin(ctx, "a@studio.io", "secret1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	sess, err := svc.Login(ctx, "a@studio.io", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	svc.tokens.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	if _, err := svc.Authenticate(ctx, sess.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to fail, got %v", err)
	}
	if _, ok := tokens.tokens[sess.Token]; ok {
		t.Fatalf("expired token should be deleted")
	}
}

func TestDefaultNotifierNeverLogsToken(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tokens := newMemoryTokenRepo()
	svc := New(newMemoryUsers(), tokens, Options{Logger: zap.New(core)})
	ctx := context.Background()
	if _, err := svc.CreateAdmin(ctx, "a@studio.io", "secret1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.RequestPasswordReset(ctx, "a@studio.io"); err != nil {
		t.Fatalf("request reset: %v", err)
	}

	var token string
	for tok, meta := range tokens.tokens {
		if meta.Kind == tokenrepo.KindRecovery {
			token = tok
		}
	}
	if token == "" {
		t.Fatal("no recovery token issued")
	}

	issued := logs.FilterMessage("password recovery token issued").All()
	if len(issued) != 1 {
		t.Fatalf("expected one issue entry, got %d", len(issued))
	}
	if issued[0].Level != zapcore.DebugLevel {
		t.Fatalf("issue entry logged at %s", issued[0].Level)
	}
	for _, e := range logs.All() {
		for k, v := range e.ContextMap() {
			if s, ok := v.(string); ok && strings.Contains(s, token) {
				t.Fatalf("token leaked in %q field %q", e.Message, k)
			}
		}
	}
}
