package models

import (
	"fmt"
	"strconv"
	"time"
)

// WireTimeLayout is the timestamp format used on every sync endpoint, in both
// directions: ISO 8601 with exactly three fractional digits. Push and pull must
// produce byte-identical strings for equal instants so that updatedAt
// comparisons on either side are exact.
const WireTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// WireTime is a time.Time that marshals to and from [WireTimeLayout].
// All DTO timestamp fields use this type instead of bare time.Time.
type WireTime struct {
	time.Time
}

// NewWireTime normalises t to UTC and millisecond precision, matching what the
// wire format can represent.
func NewWireTime(t time.Time) WireTime {
	return WireTime{t.UTC().Truncate(time.Millisecond)}
}

// MarshalJSON implements json.Marshaler.
func (w WireTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(FormatWireTime(w.Time))), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (w *WireTime) UnmarshalJSON(data []byte) error {
	raw, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("wire time is not a JSON string: %w", err)
	}

	t, err := ParseWireTime(raw)
	if err != nil {
		return err
	}

	w.Time = t
	return nil
}

// FormatWireTime renders t in the wire layout (UTC, millisecond precision).
func FormatWireTime(t time.Time) string {
	return t.UTC().Truncate(time.Millisecond).Format(WireTimeLayout)
}

// ParseWireTime parses a wire-layout timestamp. Servers occasionally emit
// more (or fewer) fractional digits than the canonical three, so RFC 3339
// with arbitrary fraction is accepted as a fallback.
func ParseWireTime(s string) (time.Time, error) {
	if t, err := time.Parse(WireTimeLayout, s); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse wire timestamp %q: %w", s, err)
	}
	return t.UTC().Truncate(time.Millisecond), nil
}
