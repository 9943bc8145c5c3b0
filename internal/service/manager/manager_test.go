package manager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"animateme/internal/domain"
	"animateme/internal/storage"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore assigns ids and timestamps the way the database does.
type memoryStore struct {
	mu     sync.Mutex
	rows   map[string]domain.Testimonial
	order  []string
	writes int
	fail   error
	seq    int

	// afterWrite runs once a write has been committed.
	afterWrite func()
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: map[string]domain.Testimonial{}}
}

func (s *memoryStore) Insert(_ context.Context, t domain.Testimonial) (*domain.Testimonial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.fail != nil {
		return nil, s.fail
	}
	s.seq++
	t.ID = fmt.Sprintf("t-%d", s.seq)
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	s.rows[t.ID] = t
	s.order = append(s.order, t.ID)
	if s.afterWrite != nil {
		s.afterWrite()
	}
	return &t, nil
}

func (s *memoryStore) Update(_ context.Context, id string, t domain.Testimonial) (*domain.Testimonial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.fail != nil {
		return nil, s.fail
	}
	prev, ok := s.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	t.ID = id
	t.CreatedAt = prev.CreatedAt
	t.UpdatedAt = time.Now()
	s.rows[id] = t
	return &t, nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if _, ok := s.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *memoryStore) List(context.Context) ([]domain.Testimonial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Testimonial{}
	for _, id := range s.order {
		if t, ok := s.rows[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

// snapshotRefresher copies the store into a slice, standing in for the
// settings store.
type snapshotRefresher struct {
	store    *memoryStore
	snapshot []domain.Testimonial
	calls    int
	err      error
}

func (r *snapshotRefresher) Refresh(ctx context.Context) error {
	r.calls++
	if r.err != nil {
		return r.err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	list, err := r.store.List(ctx)
	if err != nil {
		return err
	}
	r.snapshot = list
	return nil
}

type fakeUploader struct {
	put     []string
	removed []string
	failOn  string
}

func (u *fakeUploader) Put(_ context.Context, bucket, name, contentType string, body io.Reader) (storage.Object, error) {
	if name == u.failOn {
		return storage.Object{}, errors.New("disk full")
	}
	_, _ = io.ReadAll(body)
	p := "ab/" + name
	u.put = append(u.put, p)
	return storage.Object{Bucket: bucket, Path: p, URL: "http://files/storage/" + bucket + "/" + p, Created: true}, nil
}

func (u *fakeUploader) Remove(_ context.Context, bucket, path string) error {
	u.removed = append(u.removed, bucket+"/"+path)
	return nil
}

func setup() (*Manager[domain.Testimonial], *memoryStore, *snapshotRefresher, *fakeUploader) {
	store := newMemoryStore()
	ref := &snapshotRefresher{store: store}
	up := &fakeUploader{}
	m := New[domain.Testimonial]("testimonials", store, Deps{Uploader: up, Refresher: ref})
	return m, store, ref, up
}

func avatar(name string) Attachment[domain.Testimonial] {
	return Attachment[domain.Testimonial]{
		Bucket: storage.BucketImages,
		Name:   name,
		Body:   strings.NewReader("img"),
		Apply:  func(t *domain.Testimonial, url string) { t.Avatar = url },
	}
}

func TestSave_NewRecordAppearsInSnapshot(t *testing.T) {
	m, _, ref, _ := setup()
	ctx := context.Background()

	saved, err := m.Save(ctx, SaveInput[domain.Testimonial]{
		Record:      domain.Testimonial{Author: "Ann", Quote: "Great work", Rating: 5},
		Attachments: []Attachment[domain.Testimonial]{avatar("ann.png")},
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	assert.Equal(t, "http://files/storage/images/ab/ann.png", saved.Avatar)

	require.Equal(t, 1, ref.calls)
	require.Len(t, ref.snapshot, 1)
	got := ref.snapshot[0]
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "Ann", got.Author)
	assert.Equal(t, "Great work", got.Quote)
	assert.Equal(t, 5, got.Rating)
}

func TestSave_UpdateIsIdempotent(t *testing.T) {
	m, _, ref, _ := setup()
	ctx := context.Background()

	rec := domain.Testimonial{Author: "Ann", Company: "Acme", Quote: "<b>Great</b>", Rating: 4}
	first, err := m.Save(ctx, SaveInput[domain.Testimonial]{Record: rec})
	require.NoError(t, err)
	before := ref.snapshot

	second, err := m.Save(ctx, SaveInput[domain.Testimonial]{ID: first.ID, Record: rec})
	require.NoError(t, err)
	after := ref.snapshot

	ignore := cmpopts.IgnoreFields(domain.Testimonial{}, "UpdatedAt")
	if diff := cmp.Diff(before, after, ignore); diff != "" {
		t.Fatalf("snapshot changed beyond updated_at (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(*first, *second, ignore); diff != "" {
		t.Fatalf("record changed beyond updated_at (-first +second):\n%s", diff)
	}
}

func TestSave_ValidationFailureWritesNothing(t *testing.T) {
	m, store, ref, up := setup()

	_, err := m.Save(context.Background(), SaveInput[domain.Testimonial]{
		Record:      domain.Testimonial{Author: "", Quote: "x", Rating: 9},
		Attachments: []Attachment[domain.Testimonial]{avatar("a.png")},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []FieldError{
		{Field: "author", Rule: "required"},
		{Field: "rating", Rule: "max", Param: "5"},
	}, verr.Fields)
	assert.Contains(t, err.Error(), "author is required")

	assert.Zero(t, store.writes)
	assert.Zero(t, ref.calls)
	assert.Empty(t, up.put)
}

func TestSave_UploadFailureAborts(t *testing.T) {
	m, store, ref, up := setup()
	up.failOn = "second.png"

	_, err := m.Save(context.Background(), SaveInput[domain.Testimonial]{
		Record:      domain.Testimonial{Author: "Ann", Quote: "Q", Rating: 5},
		Attachments: []Attachment[domain.Testimonial]{avatar("first.png"), avatar("second.png")},
	})
	var uerr *UploadError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "second.png", uerr.Name)
	assert.Zero(t, store.writes)
	assert.Zero(t, ref.calls)
	assert.Equal(t, []string{"images/ab/first.png"}, up.removed)
}

func TestSave_WriteFailureRemovesUploads(t *testing.T) {
	m, store, ref, up := setup()
	store.fail = domain.ErrInvalidInput

	_, err := m.Save(context.Background(), SaveInput[domain.Testimonial]{
		Record:      domain.Testimonial{Author: "Ann", Quote: "Q", Rating: 5},
		Attachments: []Attachment[domain.Testimonial]{avatar("ann.png")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, []string{"images/ab/ann.png"}, up.removed)
	assert.Zero(t, ref.calls)
}

func TestSave_RefreshFailureStillReturnsRecord(t *testing.T) {
	m, _, ref, _ := setup()
	ref.err = errors.New("backend flaky")

	saved, err := m.Save(context.Background(), SaveInput[domain.Testimonial]{
		Record: domain.Testimonial{Author: "Ann", Quote: "Q", Rating: 5},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, 1, ref.calls)
}

func TestSave_RefreshSurvivesCancelAfterWrite(t *testing.T) {
	m, store, ref, _ := setup()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.afterWrite = cancel

	saved, err := m.Save(ctx, SaveInput[domain.Testimonial]{
		Record: domain.Testimonial{Author: "Ann", Quote: "Q", Rating: 5},
	})
	require.NoError(t, err)
	require.Error(t, ctx.Err())

	require.Equal(t, 1, ref.calls)
	require.Len(t, ref.snapshot, 1)
	assert.Equal(t, saved.ID, ref.snapshot[0].ID)
}

func TestSave_UpdateMissingRecord(t *testing.T) {
	m, _, ref, _ := setup()
	_, err := m.Save(context.Background(), SaveInput[domain.Testimonial]{
		ID:     "nope",
		Record: domain.Testimonial{Author: "Ann", Quote: "Q", Rating: 5},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, ref.calls)
}

func TestDelete_Refreshes(t *testing.T) {
	m, _, ref, _ := setup()
	ctx := context.Background()
	saved, err := m.Save(ctx, SaveInput[domain.Testimonial]{Record: domain.Testimonial{Author: "A", Quote: "Q", Rating: 3}})
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, saved.ID))
	assert.Equal(t, 2, ref.calls)
	assert.Empty(t, ref.snapshot)

	assert.ErrorIs(t, m.Delete(ctx, saved.ID), domain.ErrNotFound)
	assert.Equal(t, 2, ref.calls)
}

func TestReplaceAll_UnsupportedStore(t *testing.T) {
	m, _, _, _ := setup()
	_, err := m.ReplaceAll(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnsupported)
}

type slideStore struct {
	memory   []domain.HeroSlide
	replaced int
}

func (s *slideStore) Insert(context.Context, domain.HeroSlide) (*domain.HeroSlide, error) {
	return nil, ErrUnsupported
}
func (s *slideStore) Update(context.Context, string, domain.HeroSlide) (*domain.HeroSlide, error) {
	return nil, ErrUnsupported
}
func (s *slideStore) Delete(context.Context, string) error { return ErrUnsupported }
func (s *slideStore) ReplaceAll(_ context.Context, recs []domain.HeroSlide) ([]domain.HeroSlide, error) {
	s.replaced++
	s.memory = recs
	return recs, nil
}

func TestReplaceAll_ValidatesEveryRecordFirst(t *testing.T) {
	store := &slideStore{}
	ref := &snapshotRefresher{store: newMemoryStore()}
	m := New[domain.HeroSlide]("home_hero_slides", store, Deps{Refresher: ref})

	_, err := m.ReplaceAll(context.Background(), []domain.HeroSlide{{Tagline1: "ok"}, {SortOrder: -1}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotNil(t, verr.Index)
	assert.Equal(t, 1, *verr.Index)
	assert.Zero(t, store.replaced)

	out, err := m.ReplaceAll(context.Background(), []domain.HeroSlide{{Tagline1: "a"}, {Tagline1: "b"}})
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, 1, ref.calls)
}

func TestRichTextSanitizer(t *testing.T) {
	store := &postStore{}
	m := New[domain.BlogPost]("blog_posts", store, Deps{},
		RichText(func(p *domain.BlogPost) *string { return &p.Content }))

	_, err := m.Save(context.Background(), SaveInput[domain.BlogPost]{Record: domain.BlogPost{
		Title: "T", Excerpt: "E", Author: "A", ReadTime: "1 min",
		Content: `<p onclick="x()">Hi<script>alert(1)</script></p>`,
	}})
	require.NoError(t, err)
	assert.Equal(t, "<p>Hi</p>", store.last.Content)
}

type postStore struct{ last domain.BlogPost }

func (s *postStore) Insert(_ context.Context, p domain.BlogPost) (*domain.BlogPost, error) {
	s.last = p
	p.ID = "p1"
	return &p, nil
}
func (s *postStore) Update(_ context.Context, id string, p domain.BlogPost) (*domain.BlogPost, error) {
	s.last = p
	p.ID = id
	return &p, nil
}
func (s *postStore) Delete(context.Context, string) error { return nil }

func TestSanitizeBlock_Nested(t *testing.T) {
	block := map[string]interface{}{
		"title": `<img src=x onerror="boom()">Hello`,
		"items": []interface{}{"<script>x</script>ok", 3.0},
		"hero":  map[string]interface{}{"cta": `<a href="javascript:alert(1)">go</a>`},
	}
	SanitizeBlock(block)
	assert.NotContains(t, block["title"], "onerror")
	assert.Equal(t, "ok", block["items"].([]interface{})[0])
	assert.Equal(t, 3.0, block["items"].([]interface{})[1])
	assert.NotContains(t, block["hero"].(map[string]interface{})["cta"], "javascript")
}
