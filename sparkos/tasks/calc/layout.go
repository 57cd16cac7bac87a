package calc

import "sparkcalc/sparkos/calc"

const (
	gridCols = 4
	gridRows = 5
	gap      = 4
)

type button struct {
	label    string
	in       calc.Intent
	row, col int
	rowSpan  int
	colSpan  int
	operator bool
}

// buttons is the on-screen keypad. "=" spans the last two rows and "0" the
// first two columns of the bottom row.
var buttons = []button{
	{label: "C", in: calc.Clear(), row: 0, col: 0},
	{label: "DEL", in: calc.Delete(), row: 0, col: 1},
	{label: "/", in: calc.Choose(calc.OpDivide), row: 0, col: 2, operator: true},
	{label: "*", in: calc.Choose(calc.OpMultiply), row: 0, col: 3, operator: true},

	{label: "7", in: calc.Digit('7'), row: 1, col: 0},
	{label: "8", in: calc.Digit('8'), row: 1, col: 1},
	{label: "9", in: calc.Digit('9'), row: 1, col: 2},
	{label: "-", in: calc.Choose(calc.OpSubtract), row: 1, col: 3, operator: true},

	{label: "4", in: calc.Digit('4'), row: 2, col: 0},
	{label: "5", in: calc.Digit('5'), row: 2, col: 1},
	{label: "6", in: calc.Digit('6'), row: 2, col: 2},
	{label: "+", in: calc.Choose(calc.OpAdd), row: 2, col: 3, operator: true},

	{label: "1", in: calc.Digit('1'), row: 3, col: 0},
	{label: "2", in: calc.Digit('2'), row: 3, col: 1},
	{label: "3", in: calc.Digit('3'), row: 3, col: 2},
	{label: "=", in: calc.Equals(), row: 3, col: 3, rowSpan: 2, operator: true},

	{label: "0", in: calc.Digit('0'), row: 4, col: 0, colSpan: 2},
	{label: ".", in: calc.Decimal(), row: 4, col: 2},
}

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && y >= r.y && x < r.x+r.w && y < r.y+r.h
}

// layout holds pixel rectangles for the display strip and every button,
// indexed like buttons.
type layout struct {
	display rect
	keys    []rect
}

func newLayout(w, h int) layout {
	dispH := h / 4
	l := layout{
		display: rect{x: gap, y: gap, w: w - 2*gap, h: dispH - 2*gap},
		keys:    make([]rect, len(buttons)),
	}

	cellW := (w - gap) / gridCols
	cellH := (h - dispH - gap) / gridRows
	for i, b := range buttons {
		rs, cs := max(b.rowSpan, 1), max(b.colSpan, 1)
		l.keys[i] = rect{
			x: gap + b.col*cellW,
			y: dispH + b.row*cellH,
			w: cs*cellW - gap,
			h: rs*cellH - gap,
		}
	}
	return l
}

// hit returns the index of the button under (x, y), or -1.
func (l layout) hit(x, y int) int {
	for i, r := range l.keys {
		if r.contains(x, y) {
			return i
		}
	}
	return -1
}

// buttonFor returns the index of the button that produces in, or -1.
func buttonFor(in calc.Intent) int {
	for i, b := range buttons {
		if b.in == in {
			return i
		}
	}
	return -1
}
