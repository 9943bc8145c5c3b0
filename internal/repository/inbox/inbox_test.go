package inbox

import (
	"context"
	"errors"
	"testing"

	"animateme/internal/domain"
	"animateme/internal/repository/repotest"
)

func TestPostgres_SubscriberEmailUniqueIgnoringCase(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(ctx, t)
	repo := NewSubscriberPostgres(pool, nil)

	if _, err := repo.Insert(ctx, domain.Subscriber{Email: "fan@studio.io"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := repo.Insert(ctx, domain.Subscriber{Email: "FAN@studio.io"}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
}

func TestPostgres_SubscriberSearch(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(ctx, t)
	repo := NewSubscriberPostgres(pool, nil)

	for _, s := range []domain.Subscriber{
		{Name: "Ada", Email: "ada@one.io"},
		{Name: "Bob", Email: "bob@two.io"},
		{Name: "100%", Email: "pct@three.io"},
	} {
		if _, err := repo.Insert(ctx, s); err != nil {
			t.Fatalf("insert %s: %v", s.Email, err)
		}
	}

	all, err := repo.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 subscribers, got %d", len(all))
	}

	got, err := repo.List(ctx, "TWO")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Bob" {
		t.Fatalf("unexpected search result %+v", got)
	}

	got, err = repo.List(ctx, "%")
	if err != nil {
		t.Fatalf("search literal percent: %v", err)
	}
	if len(got) != 1 || got[0].Name != "100%" {
		t.Fatalf("percent should match literally, got %+v", got)
	}
}

func TestPostgres_ContactInsertList(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(ctx, t)
	repo := NewContactPostgres(pool, nil)

	created, err := repo.Insert(ctx, domain.ContactSubmission{Name: "A", Email: "a@x.io", Message: "Hi"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID || list[0].Message != "Hi" {
		t.Fatalf("unexpected list %+v", list)
	}
	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
