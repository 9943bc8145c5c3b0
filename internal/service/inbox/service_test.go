package inbox

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"animateme/internal/domain"
	"animateme/internal/service/manager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memContacts struct{ rows []domain.ContactSubmission }

func (m *memContacts) List(context.Context) ([]domain.ContactSubmission, error) { return m.rows, nil }

func (m *memContacts) Insert(_ context.Context, c domain.ContactSubmission) (*domain.ContactSubmission, error) {
	c.ID = "c1"
	m.rows = append(m.rows, c)
	return &c, nil
}

func (m *memContacts) Delete(_ context.Context, id string) error {
	for i, r := range m.rows {
		if r.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type memSubscribers struct{ rows []domain.Subscriber }

func (m *memSubscribers) List(_ context.Context, search string) ([]domain.Subscriber, error) {
	out := []domain.Subscriber{}
	for _, r := range m.rows {
		if search == "" || strings.Contains(r.Email, search) || strings.Contains(r.Name, search) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memSubscribers) Insert(_ context.Context, s domain.Subscriber) (*domain.Subscriber, error) {
	for _, r := range m.rows {
		if strings.EqualFold(r.Email, s.Email) {
			return nil, domain.ErrAlreadyExists
		}
	}
	s.ID = "s" + string(rune('0'+len(m.rows)))
	m.rows = append(m.rows, s)
	return &s, nil
}

func (m *memSubscribers) Update(context.Context, string, domain.Subscriber) (*domain.Subscriber, error) {
	return nil, errors.New("not used")
}

func (m *memSubscribers) Delete(context.Context, string) error { return nil }

type memQuotes struct{ deleted []string }

func (m *memQuotes) List(context.Context) ([]domain.QuoteRequest, error) {
	return []domain.QuoteRequest{{ID: "q1"}}, nil
}

func (m *memQuotes) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func TestContact_FoldsProjectDetails(t *testing.T) {
	contacts := &memContacts{}
	svc := New(contacts, &memSubscribers{}, &memQuotes{}, nil)

	got, err := svc.Contact(context.Background(), ContactInput{
		Name: "Ravi", Email: "ravi@example.com", ProjectType: "Explainer", Budget: "50k", Deadline: "June", Message: "Need a 60s video",
	})
	require.NoError(t, err)
	assert.Equal(t, "Project Type: Explainer\nBudget: 50k\nDeadline: June\n\nNeed a 60s video", got.Message)
}

func TestContact_PlainMessage(t *testing.T) {
	svc := New(&memContacts{}, &memSubscribers{}, &memQuotes{}, nil)
	got, err := svc.Contact(context.Background(), ContactInput{Name: "A", Email: "a@example.com", Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Message)
}

func TestContact_Validation(t *testing.T) {
	contacts := &memContacts{}
	svc := New(contacts, &memSubscribers{}, &memQuotes{}, nil)
	_, err := svc.Contact(context.Background(), ContactInput{Email: "a@example.com", Message: "  "})
	var verr *manager.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, contacts.rows)
}

func TestSubscribe_Duplicate(t *testing.T) {
	svc := New(&memContacts{}, &memSubscribers{}, &memQuotes{}, nil)

	_, err := svc.Subscribe(context.Background(), domain.Subscriber{Email: "Fan@Example.com"})
	require.NoError(t, err)

	_, err = svc.Subscribe(context.Background(), domain.Subscriber{Email: "fan@example.com "})
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestSubscribe_InvalidEmail(t *testing.T) {
	subs := &memSubscribers{}
	svc := New(&memContacts{}, subs, &memQuotes{}, nil)
	_, err := svc.Subscribe(context.Background(), domain.Subscriber{Email: "not-an-email"})
	var verr *manager.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, subs.rows)
}

func TestExportSubscribers(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	subs := &memSubscribers{rows: []domain.Subscriber{
		{ID: "1", Name: "Smith, Jo", Email: "jo@example.com", CreatedAt: at},
		{ID: "2", Email: "kim@example.com", CreatedAt: at},
	}}
	svc := New(&memContacts{}, subs, &memQuotes{}, nil)

	var buf bytes.Buffer
	n, err := svc.ExportSubscribers(context.Background(), "", &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "name,email,subscribed_at\n\"Smith, Jo\",jo@example.com,2024-03-01T10:00:00Z\n,kim@example.com,2024-03-01T10:00:00Z\n", buf.String())

	buf.Reset()
	n, err = svc.ExportSubscribers(context.Background(), "kim", &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestQuoteRequests(t *testing.T) {
	quotes := &memQuotes{}
	svc := New(&memContacts{}, &memSubscribers{}, quotes, nil)

	got, err := svc.QuoteRequests(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
	require.NoError(t, svc.DeleteQuoteRequest(context.Background(), "q1"))
	assert.Equal(t, []string{"q1"}, quotes.deleted)
}
