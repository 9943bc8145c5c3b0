package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strings"

	"animateme/internal/service/manager"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminResource is one editable table under /api/admin/<name>.
type AdminResource interface {
	Name() string
	List(ctx context.Context) (interface{}, error)
	Save(c *gin.Context, id string) (interface{}, error)
	Delete(ctx context.Context, id string) error
	ReplaceAll(c *gin.Context) (interface{}, error)
	ValidID(id string) bool
}

// FileField maps a multipart file part to a record field. Apply runs once
// per uploaded file; Multiple accepts several files under the same part name.
type FileField[T any] struct {
	Form     string
	Bucket   string
	Multiple bool
	Apply    func(rec *T, url string)
}

// ResourceOptions describe how a manager is exposed.
type ResourceOptions[T any] struct {
	List  func(ctx context.Context) ([]T, error)
	Files []FileField[T]
	// Key, when set, makes the path id the record's natural key: saves set it
	// on the record and always upsert.
	Key func(rec *T, key string)
	// ValidKey checks path ids when Key is set.
	ValidKey func(key string) bool
}

type managedResource[T any] struct {
	m    *manager.Manager[T]
	opts ResourceOptions[T]
}

// Resource exposes a manager as an AdminResource.
func Resource[T any](m *manager.Manager[T], opts ResourceOptions[T]) AdminResource {
	return &managedResource[T]{m: m, opts: opts}
}

func (r *managedResource[T]) Name() string { return r.m.Name() }

func (r *managedResource[T]) List(ctx context.Context) (interface{}, error) {
	if r.opts.List == nil {
		return nil, manager.ErrUnsupported
	}
	items, err := r.opts.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r *managedResource[T]) ValidID(id string) bool {
	if r.opts.Key != nil {
		return r.opts.ValidKey == nil || r.opts.ValidKey(id)
	}
	return uuid.Validate(id) == nil
}

func (r *managedResource[T]) Save(c *gin.Context, id string) (interface{}, error) {
	in := manager.SaveInput[T]{ID: id}
	files, err := decodeRecord(c, &in.Record)
	if err != nil {
		return nil, err
	}
	if r.opts.Key != nil && id != "" {
		r.opts.Key(&in.Record, id)
		in.ID = ""
	}

	for _, f := range r.opts.Files {
		fhs := files[f.Form]
		if len(fhs) > 1 && !f.Multiple {
			fhs = fhs[:1]
		}
		for _, fh := range fhs {
			body, err := fh.Open()
			if err != nil {
				return nil, &manager.UploadError{Name: fh.Filename, Err: err}
			}
			defer body.Close()
			in.Attachments = append(in.Attachments, manager.Attachment[T]{
				Bucket:      f.Bucket,
				Name:        fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Body:        body,
				Apply:       f.Apply,
			})
		}
	}
	return r.m.Save(c.Request.Context(), in)
}

func (r *managedResource[T]) Delete(ctx context.Context, id string) error {
	return r.m.Delete(ctx, id)
}

func (r *managedResource[T]) ReplaceAll(c *gin.Context) (interface{}, error) {
	var recs []T
	if err := json.NewDecoder(c.Request.Body).Decode(&recs); err != nil {
		return nil, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return r.m.ReplaceAll(c.Request.Context(), recs)
}

// decodeRecord reads a JSON body, or a multipart form whose "data" part holds
// the JSON record. File parts are returned by form name.
func decodeRecord(c *gin.Context, dst interface{}) (map[string][]*multipart.FileHeader, error) {
	ct := c.ContentType()
	if !strings.HasPrefix(ct, "multipart/") {
		if err := json.NewDecoder(c.Request.Body).Decode(dst); err != nil {
			return nil, fmt.Errorf("%w: %w", errBadRequest, err)
		}
		return nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	data := form.Value["data"]
	if len(data) == 0 {
		return nil, fmt.Errorf(`%w: missing "data" part`, errBadRequest)
	}
	if err := json.Unmarshal([]byte(data[0]), dst); err != nil {
		return nil, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return form.File, nil
}
