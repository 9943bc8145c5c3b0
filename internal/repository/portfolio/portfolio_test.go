package portfolio

import (
	"context"
	"errors"
	"testing"
	"time"

	"animateme/internal/domain"
	"animateme/internal/repository/repotest"
)

func TestPostgres_ItemsJoinCategoryAndSortByDate(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(ctx, t)
	cats := NewCategoryPostgres(pool, nil)
	items := NewItemPostgres(pool, nil)

	cat, err := cats.Insert(ctx, domain.PortfolioCategory{Name: "Explainers", Type: domain.PortfolioTypeVideo})
	if err != nil {
		t.Fatalf("insert category: %v", err)
	}

	older := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := items.Insert(ctx, domain.PortfolioItem{Title: "Old", SubCategoryID: &cat.ID, Date: domain.DateOf(older)}); err != nil {
		t.Fatalf("insert old: %v", err)
	}
	empty := ""
	if _, err := items.Insert(ctx, domain.PortfolioItem{Title: "New", SubCategoryID: &empty, Date: domain.DateOf(newer)}); err != nil {
		t.Fatalf("insert new: %v", err)
	}

	list, err := items.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 items, got %d", len(list))
	}
	if list[0].Title != "New" || list[0].Category != domain.UncategorizedName || list[0].SubCategoryID != nil {
		t.Fatalf("unexpected first item %+v", list[0])
	}
	if list[1].Title != "Old" || list[1].Category != "Explainers" {
		t.Fatalf("unexpected second item %+v", list[1])
	}
}

func TestPostgres_CategoryUniquePerType(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(ctx, t)
	cats := NewCategoryPostgres(pool, nil)

	if _, err := cats.Insert(ctx, domain.PortfolioCategory{Name: "Logos", Type: domain.PortfolioTypeArt}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := cats.Insert(ctx, domain.PortfolioCategory{Name: "Logos", Type: domain.PortfolioTypeVideo}); err != nil {
		t.Fatalf("same name other type should succeed: %v", err)
	}
	if _, err := cats.Insert(ctx, domain.PortfolioCategory{Name: "Logos", Type: domain.PortfolioTypeArt}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
}

func TestPostgres_AssetCategoryDeletedFallsBack(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(ctx, t)
	cats := NewCategoryPostgres(pool, nil)
	assets := NewAssetPostgres(pool, nil)

	cat, err := cats.Insert(ctx, domain.PortfolioCategory{Name: "Posters", Type: domain.PortfolioTypeArt})
	if err != nil {
		t.Fatalf("insert category: %v", err)
	}
	asset, err := assets.Insert(ctx, domain.PortfolioAsset{Title: "Poster", SubCategoryID: &cat.ID})
	if err != nil {
		t.Fatalf("insert asset: %v", err)
	}
	if asset.Category != "Posters" {
		t.Fatalf("expected joined category, got %q", asset.Category)
	}
	if err := cats.Delete(ctx, cat.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	list, err := assets.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Category != domain.UncategorizedName {
		t.Fatalf("unexpected assets %+v", list)
	}
}

func TestPostgres_ItemUpdateKeepsDateWhenOmitted(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(ctx, t)
	items := NewItemPostgres(pool, nil)

	shot := time.Date(2022, 6, 30, 0, 0, 0, 0, time.UTC)
	it, err := items.Insert(ctx, domain.PortfolioItem{Title: "Mascot", Date: domain.DateOf(shot)})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	it.Client = "Acme"
	it.Date = domain.Date{}
	updated, err := items.Update(ctx, it.ID, *it)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Client != "Acme" || !updated.Date.Equal(shot) {
		t.Fatalf("unexpected item after update %+v (date %v)", updated, updated.Date.Time)
	}
}
