package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateOnlyLayout is the calendar-date form accepted for due dates and report ranges.
const DateOnlyLayout = "2006-01-02"

// FlexibleTime decodes an RFC 3339 timestamp or a YYYY-MM-DD date. JSON null
// and "" decode to the zero value.
type FlexibleTime struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler
func (t *FlexibleTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	parsed, err := ParseFlexibleTime(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// Ptr returns nil for the zero value.
func (t *FlexibleTime) Ptr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

// ParseFlexibleTime parses RFC 3339 or YYYY-MM-DD (as UTC midnight).
func ParseFlexibleTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(DateOnlyLayout, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected RFC 3339 or YYYY-MM-DD", raw)
}
