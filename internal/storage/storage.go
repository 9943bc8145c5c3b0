// Package storage keeps uploaded media in public buckets on the local
// filesystem. Object names are derived from a BLAKE3 hash of the content, so
// uploading the same bytes twice yields the same object.
package storage

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"animateme/internal/logging"
	"github.com/google/uuid"
	"github.com/zeebo/blake3"
	"go.uber.org/zap"
)

// Buckets.
const (
	BucketImages        = "images"
	BucketProductImages = "product-images"
	BucketQRCodes       = "qrcodes"
)

var buckets = []string{BucketImages, BucketProductImages, BucketQRCodes}

var (
	ErrUnknownBucket = errors.New("storage: unknown bucket")
	ErrTooLarge      = errors.New("storage: object exceeds upload limit")
	ErrEmpty         = errors.New("storage: empty object")
	ErrInvalidPath   = errors.New("storage: invalid object path")
)

const (
	tmpDir       = ".tmp"
	hashPrefix   = 16
	maxNameRunes = 64
	sniffLen     = 512
)

// Object describes a stored upload.
type Object struct {
	Bucket      string `json:"bucket"`
	Path        string `json:"path"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	// Created is false when identical content was already stored.
	Created bool `json:"-"`
}

// Store writes objects under root/<bucket>/<path>.
type Store struct {
	root     string
	urlHost  string
	maxBytes int64
	logger   *zap.Logger
}

// New prepares the bucket directories under root. urlHost prefixes every
// public URL; maxBytes <= 0 disables the size limit.
func New(root, urlHost string, maxBytes int64, logger *zap.Logger) (*Store, error) {
	for _, dir := range append([]string{tmpDir}, buckets...) {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("creating bucket dir %s: %w", dir, err)
		}
	}
	return &Store{
		root:     root,
		urlHost:  strings.TrimRight(urlHost, "/"),
		maxBytes: maxBytes,
		logger:   logging.OrNop(logger),
	}, nil
}

// Put streams body into bucket. contentType is sniffed when empty.
func (s *Store) Put(ctx context.Context, bucket, name, contentType string, body io.Reader) (Object, error) {
	if !validBucket(bucket) {
		return Object{}, fmt.Errorf("%w: %q", ErrUnknownBucket, bucket)
	}
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}

	tmp, err := os.CreateTemp(filepath.Join(s.root, tmpDir), "upload-*")
	if err != nil {
		return Object{}, fmt.Errorf("creating temp upload file: %w", err)
	}
	tmpPath := tmp.Name()
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	src := body
	if s.maxBytes > 0 {
		src = io.LimitReader(body, s.maxBytes+1)
	}
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Object{}, fmt.Errorf("reading upload: %w", err)
	}
	head = head[:n]

	hasher := blake3.New()
	w := io.MultiWriter(tmp, hasher)
	if _, err := w.Write(head); err != nil {
		return Object{}, fmt.Errorf("writing upload: %w", err)
	}
	rest, err := io.Copy(w, src)
	if err != nil {
		return Object{}, fmt.Errorf("writing upload: %w", err)
	}
	size := int64(n) + rest
	if size == 0 {
		return Object{}, ErrEmpty
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return Object{}, fmt.Errorf("%w: limit %d bytes", ErrTooLarge, s.maxBytes)
	}
	if err := tmp.Close(); err != nil {
		return Object{}, fmt.Errorf("closing upload: %w", err)
	}

	if contentType == "" {
		contentType = http.DetectContentType(head)
	}
	sum := hex.EncodeToString(hasher.Sum(nil))
	objPath := path.Join(sum[:2], sum[:hashPrefix]+"-"+sanitizeName(name))
	final := filepath.Join(s.root, bucket, filepath.FromSlash(objPath))
	if err := os.MkdirAll(filepath.Dir(final), 0o755); err != nil {
		return Object{}, fmt.Errorf("creating object dir: %w", err)
	}

	// Link fails if the object exists, so exactly one concurrent upload of
	// the same content and name reports Created.
	created := true
	if err := os.Link(tmpPath, final); err != nil {
		if !errors.Is(err, fs.ErrExist) {
			return Object{}, fmt.Errorf("linking upload to %s: %w", final, err)
		}
		created = false
	}
	_ = os.Remove(tmpPath)
	success = true

	obj := Object{
		Bucket:      bucket,
		Path:        objPath,
		URL:         s.URL(bucket, objPath),
		ContentType: contentType,
		Size:        size,
		Created:     created,
	}
	s.logger.Debug("object stored", zap.String("bucket", bucket), zap.String("path", objPath), zap.Int64("size", size))
	return obj, nil
}

// Remove deletes an object. Missing objects are not an error.
func (s *Store) Remove(ctx context.Context, bucket, objPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.Resolve(bucket, objPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing %s/%s: %w", bucket, objPath, err)
	}
	return nil
}

// Resolve maps a bucket-relative path to a file on disk, refusing paths that
// escape the bucket.
func (s *Store) Resolve(bucket, objPath string) (string, error) {
	if !validBucket(bucket) {
		return "", fmt.Errorf("%w: %q", ErrUnknownBucket, bucket)
	}
	clean := path.Clean("/" + strings.TrimPrefix(objPath, "/"))
	if clean == "/" || strings.Contains(clean, "/.") {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.root, bucket, filepath.FromSlash(clean[1:])), nil
}

// URL is the public address of an object.
func (s *Store) URL(bucket, objPath string) string {
	return s.urlHost + "/storage/" + bucket + "/" + objPath
}

func validBucket(b string) bool {
	for _, known := range buckets {
		if b == known {
			return true
		}
	}
	return false
}

// sanitizeName keeps a short, URL-safe version of the client file name.
func sanitizeName(name string) string {
	name = strings.ToLower(filepath.Base(strings.ReplaceAll(name, `\`, "/")))
	var b strings.Builder
	dash := false
	for _, r := range name {
		if b.Len() >= maxNameRunes {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	out := strings.Trim(b.String(), "-.")
	if out == "" {
		return "upload-" + uuid.NewString()[:8]
	}
	return out
}
