package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is used when no locale is configured.
var DefaultLocale = language.AmericanEnglish

// Formatter renders operands for display: the integer part gets locale
// thousands grouping, the fraction is reattached exactly as entered.
type Formatter struct {
	printer *message.Printer

	// locale digit glyphs and grouping, for integers wider than uint64
	glyphs             [10]string
	separator          string
	primary, secondary int
}

// NewFormatter returns a Formatter grouping digits the way tag does.
func NewFormatter(tag language.Tag) *Formatter {
	f := &Formatter{printer: message.NewPrinter(tag)}
	for d := range f.glyphs {
		f.glyphs[d] = f.printer.Sprintf("%v", number.Decimal(d))
	}
	f.learnGrouping(f.printer.Sprintf("%v", number.Decimal(uint64(1e18))))
	return f
}

// learnGrouping reads the separator and group sizes off a rendered 10^18.
func (f *Formatter) learnGrouping(sample string) {
	var runs []int
	inDigits := false
	for _, r := range sample {
		if f.isGlyph(string(r)) {
			if !inDigits {
				runs = append(runs, 0)
				inDigits = true
			}
			runs[len(runs)-1]++
			continue
		}
		if inDigits && f.separator == "" {
			f.separator = string(r)
		}
		inDigits = false
	}
	if len(runs) < 2 || f.separator == "" {
		return
	}
	f.primary = runs[len(runs)-1]
	f.secondary = runs[len(runs)-2]
	if len(runs) == 2 {
		f.secondary = f.primary
	}
}

func (f *Formatter) isGlyph(s string) bool {
	for _, g := range f.glyphs {
		if g == s {
			return true
		}
	}
	return false
}

// ParseLocale parses a BCP 47 tag such as "en-US" or "de-CH".
func ParseLocale(s string) (language.Tag, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultLocale, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return DefaultLocale, fmt.Errorf("parse locale %q: %w", s, err)
	}
	return tag, nil
}

var defaultFormatter = NewFormatter(DefaultLocale)

// FormatOperand formats o with the default locale.
func FormatOperand(o Operand) (string, bool) {
	return defaultFormatter.Format(o)
}

// Format returns the display form of o, and false when o is absent.
// "1234.5" renders as "1,234.5" and an in-progress "5." as "5.".
func (f *Formatter) Format(o Operand) (string, bool) {
	v, ok := o.Get()
	if !ok {
		return "", false
	}
	integer, fraction, hasFraction := strings.Cut(v, ".")
	grouped := f.formatInteger(integer)
	if !hasFraction {
		return grouped, true
	}
	return grouped + "." + fraction, true
}

func (f *Formatter) formatInteger(s string) string {
	s = strings.TrimSpace(s)
	if neg, digits, ok := splitDigits(s); ok {
		return f.formatDigits(neg, digits)
	}

	// exponent forms, infinities and anything else go through float64
	var x float64
	if s != "" {
		var err error
		x, err = strconv.ParseFloat(s, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return "NaN"
		}
	}
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "∞"
	case math.IsInf(x, -1):
		return "-∞"
	}
	return f.printer.Sprintf("%v", number.Decimal(x, number.MaxFractionDigits(0)))
}

// splitDigits accepts an optionally signed run of ASCII digits and returns it
// without leading zeros.
func splitDigits(s string) (neg bool, digits string, ok bool) {
	switch {
	case strings.HasPrefix(s, "-"):
		neg, s = true, s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if s == "" {
		return false, "", false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false, "", false
		}
	}
	digits = strings.TrimLeft(s, "0")
	if digits == "" {
		digits = "0"
	}
	return neg, digits, true
}

// formatDigits groups an integer exactly, however many digits it has.
func (f *Formatter) formatDigits(neg bool, digits string) string {
	if u, err := strconv.ParseUint(digits, 10, 64); err == nil {
		if neg && u != 0 && u <= math.MaxInt64 {
			return f.printer.Sprintf("%v", number.Decimal(-int64(u)))
		}
		if !neg || u == 0 {
			return f.printer.Sprintf("%v", number.Decimal(u))
		}
		return "-" + f.printer.Sprintf("%v", number.Decimal(u))
	}
	if neg {
		return "-" + f.group(digits)
	}
	return f.group(digits)
}

// group applies the locale's glyphs and group sizes to a digit string.
func (f *Formatter) group(digits string) string {
	var parts []string
	size := f.primary
	for end := len(digits); end > 0; {
		start := 0
		if size > 0 && end > size {
			start = end - size
		}
		parts = append(parts, f.transliterate(digits[start:end]))
		end = start
		size = f.secondary
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, f.separator)
}

func (f *Formatter) transliterate(digits string) string {
	var b strings.Builder
	for i := 0; i < len(digits); i++ {
		b.WriteString(f.glyphs[digits[i]-'0'])
	}
	return b.String()
}
