package calc

import (
	"sparkcalc/hal"
	"sparkcalc/sparkos/calc"
)

// KeyIntent maps a key press to a calculator intent. Releases and keys
// without a binding report false.
func KeyIntent(ev hal.KeyEvent) (calc.Intent, bool) {
	if !ev.Press {
		return calc.Intent{}, false
	}

	switch ev.Code {
	case hal.KeyEnter:
		return calc.Equals(), true
	case hal.KeyBackspace:
		return calc.Delete(), true
	case hal.KeyEscape:
		return calc.Clear(), true
	case hal.KeyUnknown:
	default:
		return calc.Intent{}, false
	}

	r := ev.Rune
	switch {
	case r >= '0' && r <= '9':
		return calc.Digit(r), true
	case r == '.' || r == ',':
		return calc.Decimal(), true
	case r == '+':
		return calc.Choose(calc.OpAdd), true
	case r == '-':
		return calc.Choose(calc.OpSubtract), true
	case r == '*' || r == 'x' || r == 'X':
		return calc.Choose(calc.OpMultiply), true
	case r == '/' || r == '÷':
		return calc.Choose(calc.OpDivide), true
	case r == '=':
		return calc.Equals(), true
	case r == 'c' || r == 'C':
		return calc.Clear(), true
	}
	return calc.Intent{}, false
}
