package user

import (
	"context"
	"errors"
	"testing"

	"animateme/internal/domain"
	"animateme/internal/repository/repotest"
)

func TestPostgres_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(ctx, t)
	repo := NewPostgres(pool, nil)

	created, err := repo.Create(ctx, domain.User{Email: " Admin@Studio.io ", PasswordHash: "hash", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Email != "admin@studio.io" {
		t.Fatalf("expected normalized email, got %q", created.Email)
	}

	byEmail, err := repo.GetByEmail(ctx, "ADMIN@studio.io")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail.ID != created.ID || byEmail.PasswordHash != "hash" {
		t.Fatalf("unexpected user %+v", byEmail)
	}

	if _, err := repo.Create(ctx, domain.User{Email: "admin@studio.io", PasswordHash: "x", Role: domain.RoleUser}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}

	n, err := repo.CountAdmins(ctx)
	if err != nil || n != 1 {
		t.Fatalf("expected one admin, got %d (%v)", n, err)
	}
}

func TestPostgres_UpdateRoleAndDelete(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(ctx, t)
	repo := NewPostgres(pool, nil)

	u, err := repo.Create(ctx, domain.User{Email: "ed@studio.io", PasswordHash: "hash", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := repo.UpdateRole(ctx, u.ID, domain.RoleEditor)
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if updated.Role != domain.RoleEditor {
		t.Fatalf("expected editor, got %s", updated.Role)
	}
	if err := repo.TouchSignIn(ctx, u.ID); err != nil {
		t.Fatalf("touch: %v", err)
	}
	if err := repo.Delete(ctx, u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, u.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
