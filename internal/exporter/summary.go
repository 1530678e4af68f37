package exporter

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Summary writes the human-readable statistics a chart unit prints: section
// headings and lines of text. Numbers are grouped with thousands separators
// through Num and its variants; Linef itself never groups, so years and
// counts passed as %d print unchanged.
//
// The first write error is kept and returned by Err; later writes are
// dropped.
type Summary struct {
	w   io.Writer
	p   *message.Printer
	err error
}

var canadianEnglish = language.MustParse("en-CA")

// NewSummary creates a summary writer for w using Canadian English number
// formatting.
func NewSummary(w io.Writer) *Summary {
	return &Summary{
		w: w,
		p: message.NewPrinter(canadianEnglish),
	}
}

// Section prints a blank line and a "=== title ===" heading
func (s *Summary) Section(title string) {
	s.Linef("\n=== %s ===", title)
}

// Heading prints a blank line followed by a plain heading such as
// "Interpretation:"
func (s *Summary) Heading(title string) {
	s.Linef("\n%s", title)
}

// Linef prints one formatted line
func (s *Summary) Linef(format string, args ...interface{}) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format+"\n", args...)
}

// Blank prints an empty line
func (s *Summary) Blank() {
	s.Linef("")
}

// Err returns the first write error
func (s *Summary) Err() error {
	return s.err
}

// Num formats v with thousands separators and exactly decimals fraction
// digits, e.g. Num(1234567.8, 0) == "1,234,568".
func (s *Summary) Num(v float64, decimals int) string {
	return s.p.Sprint(number.Decimal(v,
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals)))
}

// Money formats v as a dollar amount: Money(1500, 0) == "$1,500"
func (s *Summary) Money(v float64, decimals int) string {
	if v < 0 {
		return "-$" + s.Num(-v, decimals)
	}
	return "$" + s.Num(v, decimals)
}

// Pct formats v as a percentage: Pct(12.345, 1) == "12.3%"
func (s *Summary) Pct(v float64, decimals int) string {
	return s.Num(v, decimals) + "%"
}

// SignedPct formats v as a percentage with an explicit sign: "+4.2%"
func (s *Summary) SignedPct(v float64, decimals int) string {
	if v >= 0 {
		return "+" + s.Pct(v, decimals)
	}
	return s.Pct(v, decimals)
}
