// Package repository holds helpers shared by the Postgres repositories in its
// subpackages.
package repository

import (
	"errors"
	"time"

	"animateme/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes translated into domain errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
	codeInvalidText         = "22P02"
)

// MapError translates pgx and Postgres errors into domain sentinels, wrapping
// the original so the backend message still reaches the admin.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return &Error{Kind: domain.ErrAlreadyExists, Detail: pgErr.Message}
	case codeForeignKeyViolation:
		return &Error{Kind: domain.ErrInvalidReference, Detail: pgErr.Message}
	case codeCheckViolation, codeNotNullViolation, codeInvalidText:
		return &Error{Kind: domain.ErrInvalidInput, Detail: pgErr.Message}
	}
	return err
}

// Error carries a domain sentinel plus the backend's message.
type Error struct {
	Kind   error
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Detail
}

func (e *Error) Unwrap() error { return e.Kind }

// NullIfEmpty maps an empty optional id to NULL.
func NullIfEmpty(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}

// Strings never returns nil, so array columns stay NOT NULL.
func Strings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// DateOrNow defaults a missing date to the current time on insert.
func DateOrNow(d domain.Date) time.Time {
	if d.IsZero() {
		return time.Now().UTC()
	}
	return d.Time
}

// NullIfZero maps a missing date to NULL so updates can keep the stored one
// with COALESCE.
func NullIfZero(d domain.Date) *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
