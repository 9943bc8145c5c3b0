package offering

import (
	"context"
	"errors"
	"testing"

	"animateme/internal/domain"
	"animateme/internal/repository/repotest"
)

func TestPostgres_ServiceAndSample(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(ctx, t)
	services := NewServicePostgres(pool, nil)
	samples := NewSamplePostgres(pool, nil)

	svc, err := services.Insert(ctx, domain.Service{Name: "2D", Description: "Flat", PricePerSecond: 2})
	if err != nil {
		t.Fatalf("insert service: %v", err)
	}
	if svc.Features == nil {
		t.Fatalf("expected empty features slice, got nil")
	}

	sample, err := samples.Insert(ctx, domain.ServiceSample{ServiceID: svc.ID, VideoURL: "https://v/1", Features: []string{"loop"}})
	if err != nil {
		t.Fatalf("insert sample: %v", err)
	}
	if sample.ServiceName != "2D" {
		t.Fatalf("expected joined service name, got %q", sample.ServiceName)
	}

	list, err := samples.List(ctx)
	if err != nil {
		t.Fatalf("list samples: %v", err)
	}
	if len(list) != 1 || list[0].ID != sample.ID || list[0].Features[0] != "loop" {
		t.Fatalf("unexpected samples %+v", list)
	}

	if _, err := samples.Insert(ctx, domain.ServiceSample{ServiceID: "00000000-0000-0000-0000-000000000000"}); !errors.Is(err, domain.ErrInvalidReference) {
		t.Fatalf("expected invalid reference, got %v", err)
	}
}

func TestPostgres_ServiceDeleteMissing(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(ctx, t)
	repo := NewServicePostgres(pool, nil)

	err := repo.Delete(ctx, "00000000-0000-0000-0000-000000000000")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
