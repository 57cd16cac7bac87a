package calc

import (
	"image/color"
	"sync"

	"sparkcalc/hal"
	"sparkcalc/sparkos/kernel"
)

// testFB is an RGB565 framebuffer that keeps a copy of the last presented
// frame so tests can read it while the task keeps drawing.
type testFB struct {
	w, h int
	buf  []byte

	mu     sync.Mutex
	shown  []byte
	frames int
}

func newTestFB(w, h int) *testFB {
	return &testFB{w: w, h: h, buf: make([]byte, w*h*2), shown: make([]byte, w*h*2)}
}

func (f *testFB) Width() int              { return f.w }
func (f *testFB) Height() int             { return f.h }
func (f *testFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *testFB) StrideBytes() int        { return f.w * 2 }
func (f *testFB) Buffer() []byte          { return f.buf }

func (f *testFB) ClearRGB(r, g, b uint8) {
	p := hal.PackRGB565(rgba(r, g, b))
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = byte(p)
		f.buf[i+1] = byte(p >> 8)
	}
}

func (f *testFB) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.shown, f.buf)
	f.frames++
	return nil
}

// shownPixel reads (x, y) from the last presented frame.
func (f *testFB) shownPixel(x, y int) uint16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	off := y*f.w*2 + x*2
	return uint16(f.shown[off]) | uint16(f.shown[off+1])<<8
}

func rgba(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 0xFF} }

type testDisplay struct{ fb hal.Framebuffer }

func (d testDisplay) Framebuffer() hal.Framebuffer { return d.fb }

type chanKeyboard chan hal.KeyEvent

func (c chanKeyboard) Events() <-chan hal.KeyEvent { return c }

type chanPointer chan hal.PointerEvent

func (c chanPointer) Events() <-chan hal.PointerEvent { return c }

type testInput struct {
	keys chanKeyboard
	ptrs chanPointer
}

func newTestInput() *testInput {
	return &testInput{keys: make(chanKeyboard, 64), ptrs: make(chanPointer, 64)}
}

func (in *testInput) Keyboard() hal.Keyboard { return in.keys }
func (in *testInput) Pointer() hal.Pointer   { return in.ptrs }

func (in *testInput) typeKeys(s string) {
	for _, ev := range hal.ScriptEvents(s) {
		in.keys <- ev
	}
}

func (in *testInput) click(x, y int) {
	in.ptrs <- hal.PointerEvent{X: x, Y: y, Press: true}
	in.ptrs <- hal.PointerEvent{X: x, Y: y, Press: false}
}

type recordDisplay struct {
	mu    sync.Mutex
	texts []string
}

func (r *recordDisplay) SetText(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, s)
}

func (r *recordDisplay) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.texts) == 0 {
		return ""
	}
	return r.texts[len(r.texts)-1]
}

type lineRecorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *lineRecorder) WriteLineString(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, s)
}

func (r *lineRecorder) WriteLineBytes(b []byte) { r.WriteLineString(string(b)) }

func (r *lineRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

type taskFunc func(*kernel.Context)

func (f taskFunc) Run(ctx *kernel.Context) { f(ctx) }
