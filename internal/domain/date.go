package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Date is a publication date. JSON input is RFC 3339 or a bare YYYY-MM-DD as
// sent by date pickers; output is RFC 3339. The zero Date means "not given".
type Date struct{ time.Time }

// DateOf wraps t.
func DateOf(t time.Time) Date { return Date{Time: t} }

func (d *Date) UnmarshalJSON(b []byte) error {
	var raw *string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	if raw == nil || *raw == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, *raw); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("date %q: want RFC 3339 or YYYY-MM-DD", *raw)
}

// ScanTimestamptz lets pgx scan timestamptz columns into a Date.
func (d *Date) ScanTimestamptz(v pgtype.Timestamptz) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

func (d Date) TimestamptzValue() (pgtype.Timestamptz, error) {
	return pgtype.Timestamptz{Time: d.Time, Valid: !d.IsZero()}, nil
}
