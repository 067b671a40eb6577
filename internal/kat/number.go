package kat

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/bcampbell/fuzzytime"
)

// Int is an integer scraped from the page. An invalid Int is the
// not-a-number value left behind by a failed parse.
type Int struct {
	Value int64
	Valid bool
}

// NaN is the failed-parse value.
var NaN = Int{}

// IntOf returns a valid Int.
func IntOf(v int64) Int {
	return Int{Value: v, Valid: true}
}

// IsNaN reports whether the value failed to parse.
func (n Int) IsNaN() bool {
	return !n.Valid
}

// Add returns n+o. NaN on either side gives NaN.
func (n Int) Add(o Int) Int {
	if !n.Valid || !o.Valid {
		return NaN
	}
	return IntOf(n.Value + o.Value)
}

// Or returns the value, or def when n is NaN.
func (n Int) Or(def int64) int64 {
	if !n.Valid {
		return def
	}
	return n.Value
}

func (n Int) String() string {
	if !n.Valid {
		return "NaN"
	}
	return strconv.FormatInt(n.Value, 10)
}

// MarshalJSON encodes NaN as null.
func (n Int) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, n.Value, 10), nil
}

// ParseInt reads the leading integer of s: surrounding whitespace and a sign
// are accepted, anything after the digits is ignored. No digits gives NaN.
// Values outside the int64 range saturate at its bounds.
func ParseInt(s string) Int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	sign := ""
	if s != "" && (s[0] == '-' || s[0] == '+') {
		sign, s = s[:1], s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return NaN
	}

	v, err := strconv.ParseInt(sign+s[:end], 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return NaN
	}
	return IntOf(v)
}

// dateLayouts are tried in order before falling back to fuzzy extraction.
// Layouts without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
	"02 Jan 2006, 15:04",
	"02 Jan 2006 15:04:05",
	"Jan 2, 2006 15:04:05",
	"January 2, 2006 15:04:05",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// isoLayouts cover what fuzzytime's ISOFormat produces.
var isoLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate converts a date-time string to epoch milliseconds.
func ParseDate(s string) Int {
	s = strings.TrimSpace(s)
	if s == "" {
		return NaN
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return IntOf(t.UnixMilli())
		}
	}

	dt, _, err := fuzzytime.USContext.Extract(s)
	if err != nil || !dt.HasFullDate() {
		return NaN
	}
	iso := dt.ISOFormat()
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return IntOf(t.UnixMilli())
		}
	}
	return NaN
}
