package calc

import (
	"image/color"

	"sparkcalc/hal"
	"sparkcalc/sparkos/calc"
	"sparkcalc/sparkos/proto"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"
)

// valueFonts are tried in order until the value fits the display strip.
var valueFonts = []*tinyfont.Font{
	&freemono.Bold18pt7b,
	&freemono.Bold12pt7b,
	&freemono.Bold9pt7b,
}

var (
	labelFont   = &freemono.Bold12pt7b
	pendingFont = &proggy.TinySZ8pt7b
)

const (
	displayPad    = 8
	elisionMarker = "<"
)

// screen draws the calculator into a framebuffer. It is the calc.Display of
// the engine: every SetText repaints the display strip and presents.
type screen struct {
	fb    hal.Framebuffer
	d     *fbDisplayer
	theme proto.Theme
	lay   layout

	text    string
	pending string

	pressed int
	flash   int
}

var _ calc.Display = (*screen)(nil)

func newScreen(fb hal.Framebuffer, theme proto.Theme) *screen {
	return &screen{
		fb:      fb,
		d:       &fbDisplayer{fb: fb},
		theme:   theme,
		lay:     newLayout(fb.Width(), fb.Height()),
		text:    "0",
		pressed: -1,
		flash:   -1,
	}
}

func (s *screen) SetText(text string) {
	s.text = text
	s.drawDisplay()
	s.present()
}

func (s *screen) setPending(p string) {
	if p == s.pending {
		return
	}
	s.pending = p
	s.drawDisplay()
	s.present()
}

func (s *screen) setTheme(t proto.Theme) {
	s.theme = t
	s.drawAll()
}

// setPressed highlights button i (-1 for none) while the pointer holds it.
func (s *screen) setPressed(i int) {
	if i == s.pressed {
		return
	}
	old := s.pressed
	s.pressed = i
	s.redrawButtons(old, i)
}

// setFlash highlights button i (-1 for none) after a keyboard activation.
func (s *screen) setFlash(i int) {
	if i == s.flash {
		return
	}
	old := s.flash
	s.flash = i
	s.redrawButtons(old, i)
}

func (s *screen) redrawButtons(idx ...int) {
	for _, i := range idx {
		if i >= 0 && i < len(buttons) {
			s.drawButton(i)
		}
	}
	s.present()
}

func (s *screen) drawAll() {
	bg := s.theme.Background
	s.fb.ClearRGB(bg.R, bg.G, bg.B)
	s.drawDisplay()
	for i := range buttons {
		s.drawButton(i)
	}
	s.present()
}

func (s *screen) drawDisplay() {
	r := s.lay.display
	s.fill(r, s.theme.DisplayBg)

	maxW := r.w - 2*displayPad
	font, text := fitText(valueFonts, s.text, maxW)
	x := r.x + r.w - displayPad - textWidth(font, text)
	y := r.y + r.h - displayPad - int(font.GetYAdvance())/4
	tinyfont.WriteLine(s.d, font, int16(x), int16(y), text, s.theme.DisplayFg)

	if s.pending != "" {
		_, p := fitText([]*tinyfont.Font{pendingFont}, s.pending, maxW)
		py := r.y + displayPad + int(pendingFont.GetYAdvance())
		tinyfont.WriteLine(s.d, pendingFont, int16(r.x+displayPad), int16(py), p, s.theme.Accent)
	}
}

func (s *screen) drawButton(i int) {
	b := buttons[i]
	r := s.lay.keys[i]

	bg := s.theme.KeyBg
	if b.operator {
		bg = s.theme.OperatorBg
	}
	if i == s.pressed || i == s.flash {
		bg = s.theme.Accent
	}
	s.fill(r, bg)

	w := textWidth(labelFont, b.label)
	capH := int(labelFont.GetYAdvance()) * 2 / 3
	x := r.x + (r.w-w)/2
	y := r.y + (r.h+capH)/2
	tinyfont.WriteLine(s.d, labelFont, int16(x), int16(y), b.label, s.theme.KeyFg)
}

func (s *screen) fill(r rect, c color.RGBA) {
	_ = s.d.FillRectangle(int16(r.x), int16(r.y), int16(r.w), int16(r.h), c)
}

func (s *screen) present() {
	_ = s.fb.Present()
}

// fitText returns the first font in fonts that fits text into maxW pixels.
// When none does, the last font is used and leading characters are replaced
// by elisionMarker until the rest fits.
func fitText(fonts []*tinyfont.Font, text string, maxW int) (*tinyfont.Font, string) {
	for _, f := range fonts {
		if textWidth(f, text) <= maxW {
			return f, text
		}
	}
	f := fonts[len(fonts)-1]
	rest := []rune(text)
	for len(rest) > 1 && textWidth(f, elisionMarker+string(rest)) > maxW {
		rest = rest[1:]
	}
	return f, elisionMarker + string(rest)
}

func textWidth(f tinyfont.Fonter, s string) int {
	_, outbox := tinyfont.LineWidth(f, s)
	return int(outbox)
}

// pendingLabel describes the stored operand and operator, e.g. "12 +".
func pendingLabel(st calc.State) string {
	if !st.HasPrevious || !st.Operator.Valid() {
		return ""
	}
	return st.Previous + " " + st.Operator.Symbol()
}

// fbDisplayer adapts an RGB565 framebuffer to drivers.Displayer for tinyfont.
type fbDisplayer struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*fbDisplayer)(nil)

func (d *fbDisplayer) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || iy < 0 || ix >= d.fb.Width() || iy >= d.fb.Height() {
		return
	}
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	p := hal.PackRGB565(c)
	buf[off] = byte(p)
	buf[off+1] = byte(p >> 8)
}

func (d *fbDisplayer) Display() error { return nil }

func (d *fbDisplayer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	buf := d.fb.Buffer()
	w, h := d.fb.Width(), d.fb.Height()
	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	p := hal.PackRGB565(c)
	lo, hi := byte(p), byte(p>>8)
	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off+1 >= len(buf) {
				break
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
