// Package repotest connects integration tests to a disposable Postgres.
package repotest

import (
	"context"
	"os"
	"testing"

	"animateme/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Tables lists every application table, children first.
const Tables = `auth_tokens, admin_users, estore_orders, estore_products, estore_categories,
subscribers, contact_submissions, home_stats, home_hero_slides, quote_requests,
quote_animation_styles, quote_animation_types, blog_posts, blog_categories, case_studies,
testimonials, portfolio_assets, portfolio_items, portfolio_categories, service_samples,
services, payment_settings, page_content, general_settings`

// Pool returns a migrated, truncated pool from TEST_DB_DSN. The test is
// skipped when the variable is unset.
func Pool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatalf("ping db: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE `+Tables+` RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
	return pool
}
