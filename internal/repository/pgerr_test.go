package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"animateme/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", pgx.ErrNoRows, domain.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("get: %w", pgx.ErrNoRows), domain.ErrNotFound},
		{"unique", &pgconn.PgError{Code: "23505", Message: "duplicate key"}, domain.ErrAlreadyExists},
		{"foreign key", &pgconn.PgError{Code: "23503"}, domain.ErrInvalidReference},
		{"check", &pgconn.PgError{Code: "23514"}, domain.ErrInvalidInput},
		{"bad uuid", &pgconn.PgError{Code: "22P02"}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		got := MapError(tc.in)
		if !errors.Is(got, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestMapError_KeepsBackendMessage(t *testing.T) {
	err := MapError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	if err.Error() != "already exists: duplicate key value violates unique constraint" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestMapError_PassesThroughUnknown(t *testing.T) {
	boom := errors.New("boom")
	if got := MapError(boom); got != boom {
		t.Fatalf("expected passthrough, got %v", got)
	}
	if MapError(nil) != nil {
		t.Fatalf("expected nil")
	}
}

func TestNullIfEmpty(t *testing.T) {
	empty := ""
	id := "abc"
	if NullIfEmpty(nil) != nil || NullIfEmpty(&empty) != nil {
		t.Fatalf("expected nil for empty ids")
	}
	if got := NullIfEmpty(&id); got == nil || *got != "abc" {
		t.Fatalf("expected id preserved")
	}
}

func TestDateHelpers(t *testing.T) {
	if NullIfZero(domain.Date{}) != nil {
		t.Fatal("zero date should map to NULL")
	}
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	if got := NullIfZero(domain.DateOf(at)); got == nil || !got.Equal(at) {
		t.Fatalf("unexpected %v", got)
	}
	if got := DateOrNow(domain.DateOf(at)); !got.Equal(at) {
		t.Fatalf("unexpected %v", got)
	}
	before := time.Now().Add(-time.Second)
	if got := DateOrNow(domain.Date{}); got.Before(before) {
		t.Fatalf("zero date should default to now, got %v", got)
	}
}
