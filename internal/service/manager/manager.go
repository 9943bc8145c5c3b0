// Package manager implements the admin save flow shared by every editable
// resource: validate, upload attachments, insert or update, then refresh the
// public snapshot.
package manager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"animateme/internal/logging"
	"animateme/internal/storage"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ErrUnsupported is returned by operations the underlying store lacks.
var ErrUnsupported = errors.New("operation not supported for this resource")

// Store is the persistence a Manager writes through.
type Store[T any] interface {
	Insert(ctx context.Context, rec T) (*T, error)
	Update(ctx context.Context, id string, rec T) (*T, error)
	Delete(ctx context.Context, id string) error
}

// Replacer is implemented by stores that can rewrite their whole table.
type Replacer[T any] interface {
	ReplaceAll(ctx context.Context, recs []T) ([]T, error)
}

type Uploader interface {
	Put(ctx context.Context, bucket, name, contentType string, body io.Reader) (storage.Object, error)
	Remove(ctx context.Context, bucket, path string) error
}

type Refresher interface {
	Refresh(ctx context.Context) error
}

// Deps are shared by all managers.
type Deps struct {
	Uploader  Uploader
	Refresher Refresher
	Validator *validator.Validate
	Logger    *zap.Logger
}

// Attachment is a file to upload before the record is written. Apply stores
// the resulting public URL on the record.
type Attachment[T any] struct {
	Bucket      string
	Name        string
	ContentType string
	Body        io.Reader
	Apply       func(rec *T, url string)
}

// SaveInput is one admin save. An empty ID inserts.
type SaveInput[T any] struct {
	ID          string
	Record      T
	Attachments []Attachment[T]
}

// Manager runs the save flow for one resource.
type Manager[T any] struct {
	name      string
	store     Store[T]
	deps      Deps
	sanitizer func(*T)
}

// New returns a Manager for the named resource. sanitize, when given, runs
// on every record before validation.
func New[T any](name string, store Store[T], deps Deps, sanitize ...func(*T)) *Manager[T] {
	if deps.Validator == nil {
		deps.Validator = NewValidator()
	}
	deps.Logger = logging.OrNop(deps.Logger).With(zap.String("resource", name))
	m := &Manager[T]{name: name, store: store, deps: deps}
	if len(sanitize) > 0 {
		fns := sanitize
		m.sanitizer = func(rec *T) {
			for _, fn := range fns {
				fn(rec)
			}
		}
	}
	return m
}

// Name is the resource name the manager was built with.
func (m *Manager[T]) Name() string { return m.name }

// Validate sanitizes rec in place and checks its struct tags.
func (m *Manager[T]) Validate(rec *T) error {
	if m.sanitizer != nil {
		m.sanitizer(rec)
	}
	return ValidateStruct(m.deps.Validator, rec)
}

// Save validates, uploads, writes and refreshes. The stored record is
// returned even when the refresh afterwards fails.
func (m *Manager[T]) Save(ctx context.Context, in SaveInput[T]) (*T, error) {
	rec := in.Record
	if err := m.Validate(&rec); err != nil {
		return nil, err
	}

	uploaded, err := m.upload(ctx, &rec, in.Attachments)
	if err != nil {
		return nil, err
	}

	var saved *T
	if in.ID == "" {
		saved, err = m.store.Insert(ctx, rec)
	} else {
		saved, err = m.store.Update(ctx, in.ID, rec)
	}
	if err != nil {
		m.cleanup(ctx, uploaded)
		return nil, err
	}
	m.refresh(ctx, "save")
	return saved, nil
}

// Delete removes a record and refreshes.
func (m *Manager[T]) Delete(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	m.refresh(ctx, "delete")
	return nil
}

// ReplaceAll validates every record and rewrites the resource in list order.
func (m *Manager[T]) ReplaceAll(ctx context.Context, recs []T) ([]T, error) {
	r, ok := m.store.(Replacer[T])
	if !ok {
		return nil, ErrUnsupported
	}
	for i := range recs {
		if err := m.Validate(&recs[i]); err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				verr.Index = &i
			}
			return nil, err
		}
	}
	out, err := r.ReplaceAll(ctx, recs)
	if err != nil {
		return nil, err
	}
	m.refresh(ctx, "replace")
	return out, nil
}

func (m *Manager[T]) upload(ctx context.Context, rec *T, atts []Attachment[T]) ([]storage.Object, error) {
	if len(atts) == 0 {
		return nil, nil
	}
	if m.deps.Uploader == nil {
		return nil, &UploadError{Name: atts[0].Name, Err: errors.New("uploads are not configured")}
	}
	var uploaded []storage.Object
	for _, a := range atts {
		obj, err := m.deps.Uploader.Put(ctx, a.Bucket, a.Name, a.ContentType, a.Body)
		if err != nil {
			m.cleanup(ctx, uploaded)
			return nil, &UploadError{Name: a.Name, Err: err}
		}
		if obj.Created {
			uploaded = append(uploaded, obj)
		}
		if a.Apply != nil {
			a.Apply(rec, obj.URL)
		}
	}
	return uploaded, nil
}

// cleanup removes objects uploaded for a save that did not complete.
func (m *Manager[T]) cleanup(ctx context.Context, objs []storage.Object) {
	ctx = context.WithoutCancel(ctx)
	for _, o := range objs {
		if err := m.deps.Uploader.Remove(ctx, o.Bucket, o.Path); err != nil {
			m.deps.Logger.Warn("orphan upload not removed", zap.String("bucket", o.Bucket), zap.String("path", o.Path), zap.Error(err))
		}
	}
}

// refresh runs detached from the caller's cancellation: the write is already
// committed and the snapshot must follow it.
func (m *Manager[T]) refresh(ctx context.Context, op string) {
	if m.deps.Refresher == nil {
		return
	}
	if err := m.deps.Refresher.Refresh(context.WithoutCancel(ctx)); err != nil {
		m.deps.Logger.Warn("refresh after write failed", zap.String("op", op), zap.Error(err))
	}
}

// UploadError reports a failed attachment upload. Nothing was written.
type UploadError struct {
	Name string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %q failed: %v", e.Name, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// FieldError is one failed struct tag rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// ValidationError lists every field that failed. Index is set for batch
// operations and points at the offending record.
type ValidationError struct {
	Fields []FieldError
	Index  *int
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, describe(f))
	}
	msg := "validation failed: " + strings.Join(parts, "; ")
	if e.Index != nil {
		msg = fmt.Sprintf("item %d: %s", *e.Index, msg)
	}
	return msg
}

func describe(f FieldError) string {
	switch f.Rule {
	case "required":
		return f.Field + " is required"
	case "email":
		return f.Field + " must be a valid email"
	case "oneof":
		return f.Field + " must be one of " + f.Param
	case "min", "gte":
		return f.Field + " must be at least " + f.Param
	case "max", "lte":
		return f.Field + " must be at most " + f.Param
	case "gt":
		return f.Field + " must be greater than " + f.Param
	}
	return f.Field + " is invalid (" + f.Rule + ")"
}

// NewValidator reports fields by their json names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidateStruct checks v's struct tags and reports failures as a
// *ValidationError.
func ValidateStruct(v *validator.Validate, s interface{}) error {
	if err := v.Struct(s); err != nil {
		return toValidationError(err)
	}
	return nil
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
	}
	return out
}
