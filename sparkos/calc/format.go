package calc

import (
	"math"
	"strconv"
	"strings"
)

// SignificantDigits is the precision results are rounded to before display.
const SignificantDigits = 12

// exactDigits is enough 'e' precision for FormatFloat to print any float64
// without rounding.
const exactDigits = 767

// FormatResult normalizes a computed value for display: it is rounded to
// SignificantDigits significant digits, then rendered with the shortest text
// that reads back as the rounded value. Both steps are needed; formatting the
// raw value keeps binary noise such as 0.30000000000000004.
//
// It returns false for NaN and infinities.
func FormatResult(v float64) (string, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", false
	}
	rounded, err := roundSignificant(v, SignificantDigits)
	if err != nil {
		return "", false
	}
	return formatShortest(rounded), true
}

// roundSignificant rounds v to n significant digits using the exact decimal
// value of v. Ties go away from zero.
func roundSignificant(v float64, n int) (float64, error) {
	if v == 0 {
		return v, nil
	}
	s := strconv.FormatFloat(math.Abs(v), 'e', exactDigits, 64)
	mant, expText, _ := strings.Cut(s, "e")
	exp, err := strconv.Atoi(expText)
	if err != nil {
		return 0, err
	}

	digits := []byte(mant[:1] + mant[2:])
	up := digits[n] >= '5'
	digits = digits[:n]
	if up {
		i := n - 1
		for ; i >= 0 && digits[i] == '9'; i-- {
			digits[i] = '0'
		}
		if i < 0 {
			digits = append([]byte{'1'}, digits[:n-1]...)
			exp++
		} else {
			digits[i]++
		}
	}

	text := string(digits[:1]) + "." + string(digits[1:]) + "e" + strconv.Itoa(exp)
	r, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		r = -r
	}
	return r, nil
}

// formatShortest renders v in plain notation for 1e-6 <= |v| < 1e21 and in
// exponent notation ("1e+21", "1.5e-7") outside that range. Negative zero
// renders as "0".
func formatShortest(v float64) string {
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mant, exp, ok := strings.Cut(s, "e")
		if !ok || len(exp) < 2 {
			return s
		}
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mant + "e" + exp[:1] + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
