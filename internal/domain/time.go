package domain

import (
	"fmt"
	"time"
)

// WireTimeLayout is the fixed timestamp format the scheduling API speaks:
// UTC, second precision, literal Z suffix, no fractional seconds.
const WireTimeLayout = "2006-01-02T15:04:05Z"

// ParseWireTime parses a wire-format timestamp and converts it into loc.
// A nil loc means UTC. Returns ErrMalformedTimestamp if the string does
// not match WireTimeLayout exactly.
func ParseWireTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.Parse(WireTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}
	return t.In(loc), nil
}

// FormatWireTime renders t for the wire: UTC, truncated to seconds.
func FormatWireTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(WireTimeLayout)
}
