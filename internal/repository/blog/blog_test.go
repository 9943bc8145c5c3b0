package blog

import (
	"context"
	"errors"
	"testing"
	"time"

	"animateme/internal/domain"
	"animateme/internal/repository/repotest"
)

func TestPostgres_PostGetJoinsCategory(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(ctx, t)
	cats := NewCategoryPostgres(pool, nil)
	posts := NewPostPostgres(pool, nil)

	cat, err := cats.Insert(ctx, domain.BlogCategory{Name: "Process"})
	if err != nil {
		t.Fatalf("insert category: %v", err)
	}
	post, err := posts.Insert(ctx, domain.BlogPost{
		Title: "Storyboards", Excerpt: "How we plan", Author: "Admin", ReadTime: "3 min",
		CategoryID: &cat.ID, Date: domain.DateOf(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
	})
	if err != nil {
		t.Fatalf("insert post: %v", err)
	}

	got, err := posts.Get(ctx, post.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Category != "Process" || got.CategoryID == nil || *got.CategoryID != cat.ID {
		t.Fatalf("unexpected post %+v", got)
	}

	if _, err := posts.Get(ctx, "00000000-0000-0000-0000-000000000000"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPostgres_CategoryNameUnique(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(ctx, t)
	cats := NewCategoryPostgres(pool, nil)

	if _, err := cats.Insert(ctx, domain.BlogCategory{Name: "News"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := cats.Insert(ctx, domain.BlogCategory{Name: "News"}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
}

func TestPostgres_PostUpdateKeepsDateWhenOmitted(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(ctx, t)
	posts := NewPostPostgres(pool, nil)

	published := time.Date(2023, 9, 12, 0, 0, 0, 0, time.UTC)
	post, err := posts.Insert(ctx, domain.BlogPost{
		Title: "Rigging", Excerpt: "Bones", Author: "Admin", ReadTime: "4 min", Date: domain.DateOf(published),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	post.Title = "Rigging basics"
	post.Date = domain.Date{}
	updated, err := posts.Update(ctx, post.ID, *post)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Rigging basics" {
		t.Fatalf("title not updated: %+v", updated)
	}
	if !updated.Date.Equal(published) {
		t.Fatalf("date changed on update: got %v want %v", updated.Date.Time, published)
	}

	moved := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	updated.Date = domain.DateOf(moved)
	updated, err = posts.Update(ctx, post.ID, *updated)
	if err != nil {
		t.Fatalf("update with date: %v", err)
	}
	if !updated.Date.Equal(moved) {
		t.Fatalf("explicit date not stored: got %v want %v", updated.Date.Time, moved)
	}
}
