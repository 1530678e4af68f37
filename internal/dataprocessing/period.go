package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/andrew-norris/softwood-lumber-subsidy/internal/errors"
)

// Period is a canonical time key: a calendar month, or a whole year when
// Month is zero. The zero Period is not a valid key.
type Period struct {
	Year  int
	Month time.Month
}

// Month returns the monthly period for year/month.
func Month(year int, month time.Month) Period {
	return Period{Year: year, Month: month}
}

// Year returns the annual period for year.
func Year(year int) Period {
	return Period{Year: year}
}

// IsAnnual reports whether p covers a whole year.
func (p Period) IsAnnual() bool {
	return p.Month == 0
}

// IsZero reports whether p is the zero value.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// Compare returns -1, 0 or +1. An annual period sorts before the months of
// its own year.
func (p Period) Compare(o Period) int {
	switch {
	case p.Year < o.Year:
		return -1
	case p.Year > o.Year:
		return 1
	case p.Month < o.Month:
		return -1
	case p.Month > o.Month:
		return 1
	}
	return 0
}

// Before reports whether p sorts before o.
func (p Period) Before(o Period) bool {
	return p.Compare(o) < 0
}

// After reports whether p sorts after o.
func (p Period) After(o Period) bool {
	return p.Compare(o) > 0
}

// Time returns the first instant of the period in UTC.
func (p Period) Time() time.Time {
	m := p.Month
	if m == 0 {
		m = time.January
	}
	return time.Date(p.Year, m, 1, 0, 0, 0, 0, time.UTC)
}

// String renders the period as "2006" or "2006-01".
func (p Period) String() string {
	if p.IsAnnual() {
		return strconv.Itoa(p.Year)
	}
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Label renders the period for reports: "January 2006" or "2006".
func (p Period) Label() string {
	if p.IsAnnual() {
		return strconv.Itoa(p.Year)
	}
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

// ParsePeriod parses a column header into a Period. Supported forms:
//
//	"March 2021"  full month name and four-digit year
//	"Mar-21"      abbreviated month and two-digit year (20xx)
//	"2021"        bare year
//	"2021-03"     ISO year-month
//	"2021-03-01"  ISO date; the day is dropped
//
// Month names are case-insensitive. Failures wrap apperrors.ErrParseFailure.
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Period{}, parseFailure(s, "empty header")
	}

	// "March 2021"
	if name, year, ok := strings.Cut(s, " "); ok {
		m, ok := lookupMonth(name, false)
		if !ok {
			return Period{}, parseFailure(s, "unknown month name")
		}
		y, err := parseYear(strings.TrimSpace(year), 4)
		if err != nil {
			return Period{}, parseFailure(s, err.Error())
		}
		return Month(y, m), nil
	}

	// "Mar-21"
	if name, year, ok := strings.Cut(s, "-"); ok && len(name) == 3 && isLetters(name) {
		m, ok := lookupMonth(name, true)
		if !ok {
			return Period{}, parseFailure(s, "unknown month abbreviation")
		}
		y, err := parseYear(year, 2)
		if err != nil {
			return Period{}, parseFailure(s, err.Error())
		}
		return Month(2000+y, m), nil
	}

	// "2021", "2021-03", "2021-03-01"
	parts := strings.Split(s, "-")
	y, err := parseYear(parts[0], 4)
	if err != nil {
		return Period{}, parseFailure(s, err.Error())
	}
	switch len(parts) {
	case 1:
		return Year(y), nil
	case 2, 3:
		m, err := strconv.Atoi(parts[1])
		if err != nil || len(parts[1]) != 2 || m < 1 || m > 12 {
			return Period{}, parseFailure(s, "invalid month number")
		}
		if len(parts) == 3 {
			d, err := strconv.Atoi(parts[2])
			if err != nil || d < 1 || d > 31 {
				return Period{}, parseFailure(s, "invalid day")
			}
		}
		return Month(y, time.Month(m)), nil
	}
	return Period{}, parseFailure(s, "unrecognised period format")
}

// MustParsePeriod is like ParsePeriod but panics on failure. Intended for
// constants in chart definitions and tests.
func MustParsePeriod(s string) Period {
	p, err := ParsePeriod(s)
	if err != nil {
		panic(err)
	}
	return p
}

func lookupMonth(name string, abbreviated bool) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		full := m.String()
		if abbreviated {
			if strings.EqualFold(name, full[:3]) {
				return m, true
			}
			continue
		}
		if strings.EqualFold(name, full) {
			return m, true
		}
	}
	return 0, false
}

func parseYear(s string, digits int) (int, error) {
	if len(s) != digits {
		return 0, fmt.Errorf("year must have %d digits", digits)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("year must be numeric")
		}
	}
	return strconv.Atoi(s)
}

func isLetters(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

func parseFailure(header, reason string) error {
	return apperrors.NewParsingError(fmt.Sprintf("cannot parse period %q", header), fmt.Errorf("%s", reason)).
		WithContext("header", header)
}
