package dateparse

import (
	"regexp"
	"strconv"
	"strings"
)

// Token is a date-like cell broken into its three numeric components in
// left-to-right textual order, before any day/month/year interpretation.
type Token struct {
	A, B, C int
	Sep     string // separator between components: "/", "-" or "."
	HasTime bool
	Hour    int
	Minute  int
	Second  int
	Offset  string // "", "Z", or "±HH:MM", preserved verbatim
}

var cellRe = regexp.MustCompile(
	`^\s*(\d{1,4})([/\-.])(\d{1,2})([/\-.])(\d{1,4})` +
		`(?:[ T](\d{1,2}):(\d{2})(?::(\d{2}))?(Z|[+-]\d{2}:\d{2})?)?\s*$`)

// Parse attempts to read a cell as a date-like value: three numeric groups
// with a consistent separator, optionally followed by a time of day and a UTC
// offset. Non-matching cells (including two-digit years and month names)
// return ok=false; that is a classification outcome, not an error.
func Parse(cell string) (Token, bool) {
	m := cellRe.FindStringSubmatch(cell)
	if m == nil {
		return Token{}, false
	}
	if m[2] != m[4] {
		return Token{}, false // mixed separators, e.g. "12/31-2024"
	}
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[3])
	c, _ := strconv.Atoi(m[5])

	yearFront := a >= 1000 && a <= 9999
	yearBack := c >= 1000 && c <= 9999
	// Exactly one 4-digit year, first or last. Anything else (two-digit
	// years in particular) is too ambiguous to touch.
	if yearFront == yearBack {
		return Token{}, false
	}
	var d1, d2 int // the two non-year components
	if yearFront {
		d1, d2 = b, c
	} else {
		d1, d2 = a, b
	}
	if d1 < 1 || d1 > 31 || d2 < 1 || d2 > 31 {
		return Token{}, false
	}
	if d1 > 12 && d2 > 12 {
		return Token{}, false // no component can be the month
	}

	t := Token{A: a, B: b, C: c, Sep: m[2]}
	if m[6] != "" {
		t.HasTime = true
		t.Hour, _ = strconv.Atoi(m[6])
		t.Minute, _ = strconv.Atoi(m[7])
		if m[8] != "" {
			t.Second, _ = strconv.Atoi(m[8])
		}
		t.Offset = m[9]
		if t.Hour > 23 || t.Minute > 59 || t.Second > 59 {
			return Token{}, false
		}
	}
	return t, true
}

// Order is the day/month/year interpretation applied uniformly to a column.
type Order int

const (
	DMY Order = iota
	MDY
	YMD
)

func (o Order) String() string {
	switch o {
	case DMY:
		return "DMY"
	case MDY:
		return "MDY"
	case YMD:
		return "YMD"
	}
	return "unknown"
}

// ParseOrder reads a DMY/MDY/YMD flag or config value, case-insensitively.
func ParseOrder(s string) (Order, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DMY":
		return DMY, true
	case "MDY":
		return MDY, true
	case "YMD":
		return YMD, true
	}
	return 0, false
}

// Apply maps the textual components (a, b, c) to (year, month, day) under o.
func (o Order) Apply(a, b, c int) (year, month, day int) {
	switch o {
	case DMY:
		return c, b, a
	case MDY:
		return c, a, b
	default: // YMD
		return a, b, c
	}
}

// Unapply is the inverse of Apply: it places (year, month, day) back into
// textual positions (a, b, c) under o.
func (o Order) Unapply(year, month, day int) (a, b, c int) {
	switch o {
	case DMY:
		return day, month, year
	case MDY:
		return month, day, year
	default: // YMD
		return year, month, day
	}
}
