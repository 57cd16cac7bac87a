// Package calc implements the four-function calculator state machine.
//
// The engine tracks the operand being typed, at most one pending binary
// operator and its left operand. Operators are evaluated immediately from left
// to right; there is no precedence. The only observable effect is the text
// pushed to a Display.
package calc

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrorMarker replaces the current value after a division by zero or a
// non-finite result.
const ErrorMarker = "Error"

// Display is the write-only surface showing the current value.
type Display interface {
	SetText(s string)
}

// State is a snapshot of the engine's session record.
type State struct {
	Current     string
	Previous    string
	HasPrevious bool
	Operator    Operator
	Overwrite   bool
}

// Engine is a calculator session. It is not safe for concurrent use; inputs
// are expected to arrive serialized from a single event loop.
type Engine struct {
	disp Display

	current     string
	previous    string
	hasPrevious bool
	op          Operator
	overwrite   bool
}

// New returns an engine in the idle state. It does not touch the display;
// call Refresh for the initial paint.
func New(d Display) *Engine {
	e := &Engine{disp: d}
	e.reset()
	return e
}

func (e *Engine) reset() {
	e.current = "0"
	e.previous = ""
	e.hasPrevious = false
	e.op = OpNone
	e.overwrite = true
}

// Value returns the text currently shown.
func (e *Engine) Value() string { return e.current }

// State returns a copy of the session record.
func (e *Engine) State() State {
	return State{
		Current:     e.current,
		Previous:    e.previous,
		HasPrevious: e.hasPrevious,
		Operator:    e.op,
		Overwrite:   e.overwrite,
	}
}

// Refresh pushes the current value to the display.
func (e *Engine) Refresh() {
	if e.disp != nil {
		e.disp.SetText(e.current)
	}
}

// AppendDigit types one digit. Runes outside '0'..'9' are ignored.
func (e *Engine) AppendDigit(d rune) {
	if d < '0' || d > '9' {
		return
	}
	switch {
	case e.overwrite:
		e.current = string(d)
		e.overwrite = false
	case e.current == "0":
		e.current = string(d)
	default:
		e.current += string(d)
	}
	e.Refresh()
}

// AppendDecimalPoint types a decimal point. A second point in the same
// operand is dropped without refreshing the display.
func (e *Engine) AppendDecimalPoint() {
	if e.overwrite {
		e.current = "0."
		e.overwrite = false
		e.Refresh()
		return
	}
	if strings.Contains(e.current, ".") {
		return
	}
	e.current += "."
	e.Refresh()
}

// ChooseOperator records op as pending. If an operator is already pending and
// a right operand has been typed since, that operation is computed first.
// Operators outside the closed set are ignored.
func (e *Engine) ChooseOperator(op Operator) {
	if !op.Valid() {
		return
	}
	if e.op != OpNone && !e.overwrite {
		e.Compute()
	}
	e.previous = e.current
	e.hasPrevious = true
	e.op = op
	e.overwrite = true
}

// Compute applies the pending operator to the stored and current operands.
// It does nothing when no operator is pending.
func (e *Engine) Compute() {
	if e.op == OpNone || !e.hasPrevious {
		return
	}

	a := parseOperand(e.previous)
	b := parseOperand(e.current)

	if e.op == OpDivide && b == 0 {
		e.finish(ErrorMarker)
		return
	}

	s, ok := FormatResult(e.op.apply(a, b))
	if !ok {
		s = ErrorMarker
	}
	e.finish(s)
}

func (e *Engine) finish(s string) {
	e.current = s
	e.previous = ""
	e.hasPrevious = false
	e.op = OpNone
	e.overwrite = true
	e.Refresh()
}

// ClearAll returns the engine to the idle state.
func (e *Engine) ClearAll() {
	e.reset()
	e.Refresh()
}

// DeleteLast removes the last typed character. On a computed result or a
// fresh operator target it clears the entry to "0" instead.
func (e *Engine) DeleteLast() {
	switch {
	case e.overwrite:
		e.current = "0"
	case len(e.current) > 1:
		e.current = e.current[:len(e.current)-1]
	default:
		e.current = "0"
		e.overwrite = true
	}
	e.Refresh()
}

// parseOperand reads an operand as a float. Text that is not a number (the
// error marker, a lone sign) becomes NaN so that any result built from it is
// rejected as non-finite.
func parseOperand(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v
		}
		return math.NaN()
	}
	return v
}
