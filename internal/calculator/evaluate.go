package calculator

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Compute applies op to prev and cur. It returns "" when either operand is
// absent or not a number, or when op is not an arithmetic operation. Division
// by zero is not an error: the infinite or NaN result is rendered as text.
func Compute(prev, cur Operand, op Operation) string {
	a, ok := parseOperand(prev)
	if !ok {
		return ""
	}
	b, ok := parseOperand(cur)
	if !ok {
		return ""
	}

	var result float64
	switch op {
	case OpAdd:
		result = a + b
	case OpSubtract:
		result = a - b
	case OpMultiply:
		result = a * b
	case OpDivide:
		result = a / b
	default:
		return ""
	}
	return FormatNumber(result)
}

// evaluateState evaluates the pending operation held in s.
func evaluateState(s State) string {
	return Compute(s.Previous, s.Current, s.Op)
}

// numericPrefix is the longest leading decimal literal an operand is read as.
// Text after it is ignored, so "12abc" reads as 12; "inf" and "NaN" do not
// match and read as not a number.
var numericPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?)`)

func parseOperand(o Operand) (float64, bool) {
	v, ok := o.Get()
	if !ok {
		return 0, false
	}
	lit := numericPrefix.FindString(strings.TrimLeftFunc(v, unicode.IsSpace))
	if lit == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		// Out-of-range literals still parse to ±Inf.
		if !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// FormatNumber renders f in canonical decimal form: the shortest digits that
// round-trip, plain notation for magnitudes in [1e-6, 1e21), exponent notation
// outside it, and "Infinity", "-Infinity" or "NaN" for non-finite values.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}

	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	digits := strings.Replace(mantissa, ".", "", 1)
	e, _ := strconv.Atoi(exp)
	k := len(digits)
	n := e + 1 // decimal point position relative to the first digit

	switch {
	case k <= n && n <= 21:
		return sign + digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return sign + digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return sign + "0." + strings.Repeat("0", -n) + digits
	}

	expSign := "+"
	if e < 0 {
		expSign = "-"
		e = -e
	}
	if k == 1 {
		return sign + digits + "e" + expSign + strconv.Itoa(e)
	}
	return sign + digits[:1] + "." + digits[1:] + "e" + expSign + strconv.Itoa(e)
}
