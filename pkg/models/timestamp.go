package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/reaich/cabreaich-common/pkg/textutil"
)

// Timestamp is a point in time that serializes as UTC with millisecond
// precision and a Z suffix, e.g. "2025-03-01T12:04:05.123Z".
type Timestamp struct {
	time.Time
}

// Now returns the current time as a Timestamp.
func Now() Timestamp {
	return Timestamp{Time: time.Now().UTC()}
}

// NewTimestamp converts t to a UTC Timestamp.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(textutil.ISOLayout))
}

// UnmarshalJSON accepts any RFC 3339 timestamp and normalizes it to UTC.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == nil || *s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, *s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", *s, err)
	}
	t.Time = parsed.UTC()
	return nil
}

// String returns the wire form of t, or "" for the zero Timestamp.
func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return textutil.FormatISO(t.Time)
}
