package calc

// IntentKind identifies a user intent.
type IntentKind uint8

const (
	IntentNone IntentKind = iota
	IntentDigit
	IntentDecimal
	IntentOperator
	IntentEquals
	IntentClear
	IntentDelete
)

func (k IntentKind) String() string {
	switch k {
	case IntentDigit:
		return "digit"
	case IntentDecimal:
		return "decimal"
	case IntentOperator:
		return "operator"
	case IntentEquals:
		return "equals"
	case IntentClear:
		return "clear"
	case IntentDelete:
		return "delete"
	default:
		return "none"
	}
}

// Intent is one input, already decoded from a key or a button.
type Intent struct {
	Kind     IntentKind
	Digit    rune
	Operator Operator
}

func Digit(d rune) Intent { return Intent{Kind: IntentDigit, Digit: d} }
func Decimal() Intent { return Intent{Kind: IntentDecimal} }
func Choose(op Operator) Intent { return Intent{Kind: IntentOperator, Operator: op} }
func Equals() Intent { return Intent{Kind: IntentEquals} }
func Clear() Intent { return Intent{Kind: IntentClear} }
func Delete() Intent { return Intent{Kind: IntentDelete} }

func (in Intent) String() string {
	switch in.Kind {
	case IntentDigit:
		return string(in.Digit)
	case IntentOperator:
		return in.Operator.Symbol()
	case IntentEquals:
		return "="
	case IntentDecimal:
		return "."
	default:
		return in.Kind.String()
	}
}

// Apply dispatches in to the matching entry point. Intents of unknown kind
// are ignored.
func (e *Engine) Apply(in Intent) {
	switch in.Kind {
	case IntentDigit:
		e.AppendDigit(in.Digit)
	case IntentDecimal:
		e.AppendDecimalPoint()
	case IntentOperator:
		e.ChooseOperator(in.Operator)
	case IntentEquals:
		e.Compute()
	case IntentClear:
		e.ClearAll()
	case IntentDelete:
		e.DeleteLast()
	}
}

// MultiDisplay returns a Display that forwards every update to each non-nil
// display in order.
func MultiDisplay(ds ...Display) Display {
	out := make(multiDisplay, 0, len(ds))
	for _, d := range ds {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

type multiDisplay []Display

func (m multiDisplay) SetText(s string) {
	for _, d := range m {
		d.SetText(s)
	}
}
