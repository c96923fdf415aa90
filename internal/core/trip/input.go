package trip

import (
	"fmt"
	"strings"
	"time"
)

// ISODate is always accepted as a due date layout in addition to the
// configured one.
const ISODate = "2006-01-02"

// ParseDue parses user-entered due date text using ISODate or layout. An
// empty string means no due date. The result is midnight UTC.
func ParseDue(s, layout string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	for _, l := range []string{ISODate, layout} {
		if l == "" {
			continue
		}
		if d, err := time.Parse(l, s); err == nil {
			d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
			return &d, nil
		}
	}
	return nil, fmt.Errorf("%w: due date %q must look like %s", ErrInvalidInput, s, DueHint(layout))
}

var layoutTokens = strings.NewReplacer(
	"2006", "YYYY",
	"January", "Month",
	"Jan", "Mon",
	"01", "MM",
	"02", "DD",
	"_2", "DD",
	"06", "YY",
)

// LayoutHint renders a Go time layout as a hint such as DD/MM/YYYY.
func LayoutHint(layout string) string {
	return layoutTokens.Replace(layout)
}

// DueHint describes the due date formats ParseDue accepts for layout.
func DueHint(layout string) string {
	if layout == "" || layout == ISODate {
		return LayoutHint(ISODate)
	}
	return LayoutHint(layout) + " or " + LayoutHint(ISODate)
}

// RemainingLabel renders the active task count shown under list headers.
func RemainingLabel(n int) string {
	if n == 1 {
		return "1 item remaining"
	}
	return fmt.Sprintf("%d items remaining", n)
}
