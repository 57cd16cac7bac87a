package calc

import (
	"context"
	"fmt"

	"sparkcalc/hal"
	"sparkcalc/sparkos/calc"
	logclient "sparkcalc/sparkos/client/logger"
	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/proto"
)

// flashTicks is how long a button stays highlighted after a key press.
const flashTicks = 120

// startupLogRetries bounds how many ticks the ready line waits for log queue
// space.
const startupLogRetries = 8

// Task runs the calculator: it owns the engine, paints it on the display and
// feeds it keyboard and pointer input. MsgThemeUpdate on ep recolors the
// screen. The task ends when ep is closed.
type Task struct {
	disp   hal.Display
	in     hal.Input
	ep     kernel.Capability
	logCap kernel.Capability
	theme  proto.Theme
	mirror calc.Display

	scr *screen
	eng *calc.Engine

	flashUntil uint64
}

// New creates the calculator task. mirror, if non-nil, receives every
// display update in addition to the screen.
func New(disp hal.Display, in hal.Input, ep, logCap kernel.Capability, theme proto.Theme, mirror calc.Display) *Task {
	return &Task{
		disp:   disp,
		in:     in,
		ep:     ep,
		logCap: logCap,
		theme:  theme,
		mirror: mirror,
	}
}

func (t *Task) Run(ctx *kernel.Context) {
	if t.disp == nil {
		return
	}
	fb := t.disp.Framebuffer()
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		logclient.Log(ctx, t.logCap, "calc: no rgb565 framebuffer")
		return
	}

	var msgs <-chan kernel.Message
	if t.ep.Valid() {
		ch, ok := ctx.RecvChan(t.ep)
		if !ok {
			return
		}
		msgs = ch
	}

	var keys <-chan hal.KeyEvent
	var ptrs <-chan hal.PointerEvent
	if t.in != nil {
		if kb := t.in.Keyboard(); kb != nil {
			keys = kb.Events()
		}
		if p := t.in.Pointer(); p != nil {
			ptrs = p.Events()
		}
	}

	t.scr = newScreen(fb, t.theme)
	t.eng = calc.New(calc.MultiDisplay(t.scr, t.mirror))
	t.scr.drawAll()
	t.eng.Refresh()
	_ = logclient.LogRetry(ctx, t.logCap, fmt.Sprintf("calc: ready %dx%d", fb.Width(), fb.Height()), startupLogRetries)

	tickCtx, stopTicks := context.WithCancel(context.Background())
	tickDone := make(chan struct{})
	defer func() {
		stopTicks()
		<-tickDone
	}()

	tickCh := make(chan uint64, 8)
	go func() {
		defer close(tickDone)
		last := ctx.NowTick()
		for {
			now, err := ctx.WaitTickContext(tickCtx, last)
			if err != nil {
				return
			}
			last = now
			select {
			case tickCh <- last:
			default:
			}
		}
	}()

	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			t.handleMessage(ctx, msg)

		case ev := <-keys:
			in, ok := KeyIntent(ev)
			if !ok {
				continue
			}
			t.apply(ctx, in)
			if i := buttonFor(in); i >= 0 {
				t.flashUntil = ctx.NowTick() + flashTicks
				t.scr.setFlash(i)
			}

		case ev := <-ptrs:
			t.handlePointer(ctx, ev)

		case now := <-tickCh:
			if t.scr.flash >= 0 && now >= t.flashUntil {
				t.scr.setFlash(-1)
			}
		}
	}
}

func (t *Task) handleMessage(ctx *kernel.Context, msg kernel.Message) {
	switch proto.Kind(msg.Kind) {
	case proto.MsgThemeUpdate:
		theme, ok := proto.DecodeThemePayload(msg.Payload())
		if !ok {
			logclient.Log(ctx, t.logCap, "calc: bad theme payload")
			return
		}
		t.theme = theme
		t.scr.setTheme(theme)
		logclient.Log(ctx, t.logCap, "calc: theme reloaded")
	}
}

// handlePointer activates a button when press and release land on it.
func (t *Task) handlePointer(ctx *kernel.Context, ev hal.PointerEvent) {
	i := t.scr.lay.hit(ev.X, ev.Y)
	if ev.Press {
		t.scr.setPressed(i)
		return
	}
	held := t.scr.pressed
	t.scr.setPressed(-1)
	if i >= 0 && i == held {
		t.apply(ctx, buttons[i].in)
	}
}

func (t *Task) apply(ctx *kernel.Context, in calc.Intent) {
	before := t.eng.State()
	t.eng.Apply(in)
	after := t.eng.State()

	if computes(before, in) && after.Current == calc.ErrorMarker {
		logclient.Logf(ctx, t.logCap, "calc: error after %s %s %s",
			before.Previous, before.Operator.Symbol(), before.Current)
	}
	t.scr.setPending(pendingLabel(after))
}

// computes reports whether applying in to state st evaluates the pending
// operation.
func computes(st calc.State, in calc.Intent) bool {
	if !st.HasPrevious {
		return false
	}
	switch in.Kind {
	case calc.IntentEquals:
		return true
	case calc.IntentOperator:
		return in.Operator.Valid() && !st.Overwrite
	}
	return false
}
