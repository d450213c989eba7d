package cbor

import (
	"math"
	"time"
)

// DateTag is the CBOR tag (RFC 8949 §3.4.2) marking an epoch-based
// date/time value.
const DateTag = 1

// NewDate builds a tag-1 CBOR value from t, truncated to whole seconds when
// t carries no sub-second component so that whole-day dates round-trip as
// integers rather than floats.
func NewDate(t time.Time) CBOR {
	secs := float64(t.Unix())
	ns := t.Nanosecond()
	if ns == 0 {
		return Tagged(DateTag, Int(t.Unix()))
	}
	secs += float64(ns) / 1e9
	return Tagged(DateTag, Float(secs))
}

// AsDate extracts a time.Time from a tag-1 CBOR value. ok is false if v is
// not tagged with DateTag or its content is not numeric.
func AsDate(v CBOR) (time.Time, bool) {
	tag, content, ok := v.AsTagged()
	if !ok || tag != DateTag {
		return time.Time{}, false
	}
	secs, ok := content.AsFloat64()
	if !ok {
		return time.Time{}, false
	}
	whole := math.Floor(secs)
	frac := secs - whole
	return time.Unix(int64(whole), int64(frac*1e9)).UTC(), true
}

// DateToISO8601 renders t the way the dCBOR date pattern's Iso8601 and
// Regex variants compare against: whole-second dates as
// "2006-01-02T15:04:05Z", fractional dates with nanosecond precision
// trimmed of trailing zeros.
func DateToISO8601(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond() == 0 {
		return t.Format("2006-01-02T15:04:05Z")
	}
	s := t.Format("2006-01-02T15:04:05.000000000Z")
	// Trim trailing zeros in the fractional part, keeping at least one digit.
	i := len(s) - 1
	for s[i] != 'Z' {
		i--
	}
	zIdx := i
	j := zIdx - 1
	for j > 0 && s[j] == '0' {
		j--
	}
	if s[j] == '.' {
		j--
	}
	return s[:j+1] + "Z"
}

// IsDate reports whether v is tagged with DateTag, regardless of whether its
// content parses as a valid numeric timestamp.
func IsDate(v CBOR) bool {
	tag, _, ok := v.AsTagged()
	return ok && tag == DateTag
}
