package inbox

import (
	"context"
	"strings"

	"animateme/internal/domain"
	"animateme/internal/logging"
	"animateme/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const contactColumns = `id::text AS id, name, email, message, created_at`

type contactRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewContactPostgres(pool *pgxpool.Pool, logger *zap.Logger) ContactRepository {
	return &contactRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *contactRepo) List(ctx context.Context) ([]domain.ContactSubmission, error) {
	return repository.All[domain.ContactSubmission](ctx, r.pool,
		`SELECT `+contactColumns+` FROM contact_submissions ORDER BY created_at DESC`)
}

func (r *contactRepo) Insert(ctx context.Context, c domain.ContactSubmission) (*domain.ContactSubmission, error) {
	const q = `INSERT INTO contact_submissions (name, email, message) VALUES ($1, $2, $3) RETURNING ` + contactColumns
	out, err := repository.One[domain.ContactSubmission](ctx, r.pool, q, c.Name, c.Email, c.Message)
	if err != nil {
		r.logger.Warn("contact insert failed", zap.String("email", c.Email), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *contactRepo) Delete(ctx context.Context, id string) error {
	return repository.ExecOne(ctx, r.pool, `DELETE FROM contact_submissions WHERE id = $1`, id)
}

const subscriberColumns = `id::text AS id, name, email, created_at, updated_at`

type subscriberRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewSubscriberPostgres(pool *pgxpool.Pool, logger *zap.Logger) SubscriberRepository {
	return &subscriberRepo{pool: pool, logger: logging.OrNop(logger)}
}

// List matches search against name and email, case-insensitively.
func (r *subscriberRepo) List(ctx context.Context, search string) ([]domain.Subscriber, error) {
	const q = `
SELECT ` + subscriberColumns + `
FROM subscribers
WHERE $1 = '' OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'
ORDER BY created_at DESC`
	return repository.All[domain.Subscriber](ctx, r.pool, q, escapeLike(strings.TrimSpace(search)))
}

func (r *subscriberRepo) Insert(ctx context.Context, s domain.Subscriber) (*domain.Subscriber, error) {
	const q = `INSERT INTO subscribers (name, email) VALUES ($1, $2) RETURNING ` + subscriberColumns
	out, err := repository.One[domain.Subscriber](ctx, r.pool, q, s.Name, strings.TrimSpace(s.Email))
	if err != nil {
		r.logger.Debug("subscriber insert failed", zap.String("email", s.Email), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *subscriberRepo) Update(ctx context.Context, id string, s domain.Subscriber) (*domain.Subscriber, error) {
	const q = `UPDATE subscribers SET name = $2, email = $3, updated_at = now() WHERE id = $1 RETURNING ` + subscriberColumns
	out, err := repository.One[domain.Subscriber](ctx, r.pool, q, id, s.Name, strings.TrimSpace(s.Email))
	if err != nil {
		r.logger.Warn("subscriber update failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (r *subscriberRepo) Delete(ctx context.Context, id string) error {
	return repository.ExecOne(ctx, r.pool, `DELETE FROM subscribers WHERE id = $1`, id)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
