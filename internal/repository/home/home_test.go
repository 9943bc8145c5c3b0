package home

import (
	"context"
	"testing"

	"animateme/internal/domain"
	"animateme/internal/repository/repotest"
)

func TestPostgres_ReplaceAllReordersAndPrunes(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(ctx, t)
	repo := NewSlidePostgres(pool, nil)

	a, err := repo.Insert(ctx, domain.HeroSlide{Tagline1: "A", SortOrder: 0})
	if err != nil {
		t.Fatalf("insert a: %v", err)
	}
	b, err := repo.Insert(ctx, domain.HeroSlide{Tagline1: "B", SortOrder: 1})
	if err != nil {
		t.Fatalf("insert b: %v", err)
	}
	if _, err := repo.Insert(ctx, domain.HeroSlide{Tagline1: "C", SortOrder: 2}); err != nil {
		t.Fatalf("insert c: %v", err)
	}

	// B first, then A, then a new slide; C is dropped.
	saved, err := repo.ReplaceAll(ctx, []domain.HeroSlide{*b, *a, {Tagline1: "D"}})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if len(saved) != 3 {
		t.Fatalf("expected 3 saved slides, got %d", len(saved))
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got []string
	for i, s := range list {
		if s.SortOrder != i {
			t.Fatalf("slide %s has sort order %d, want %d", s.Tagline1, s.SortOrder, i)
		}
		got = append(got, s.Tagline1)
	}
	if len(got) != 3 || got[0] != "B" || got[1] != "A" || got[2] != "D" {
		t.Fatalf("unexpected slides %v", got)
	}
}

func TestPostgres_ReplaceAllEmptyClears(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(ctx, t)
	repo := NewSlidePostgres(pool, nil)

	if _, err := repo.Insert(ctx, domain.HeroSlide{Tagline1: "A"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := repo.ReplaceAll(ctx, nil); err != nil {
		t.Fatalf("replace: %v", err)
	}
	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no slides, got %+v", list)
	}
}
