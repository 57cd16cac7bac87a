package hal

const inputQueueDepth = 64

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, inputQueueDepth)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

// emit drops the event when the queue is full, like a real keyboard buffer.
func (k *hostKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

// feed delivers scripted events in order. Unlike emit it waits for queue
// space, so long scripts are not truncated.
func (k *hostKeyboard) feed(evs []KeyEvent) {
	if len(evs) == 0 {
		return
	}
	go func() {
		for _, ev := range evs {
			k.ch <- ev
		}
	}()
}

type hostPointer struct {
	ch chan PointerEvent

	// touches tracks the last known position of each active touch so that
	// releases can be reported where the finger left the screen.
	touches map[int][2]int
}

func newHostPointer() *hostPointer {
	return &hostPointer{
		ch:      make(chan PointerEvent, inputQueueDepth),
		touches: make(map[int][2]int),
	}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) emit(ev PointerEvent) {
	select {
	case p.ch <- ev:
	default:
	}
}

// ScriptEvents converts a key script into key events.
//
// Every rune becomes a press of that character except for the control
// characters '\n' and '\r' (Enter), '\b' and 0x7F (Backspace) and 0x1B
// (Escape), which become presses of the matching key.
func ScriptEvents(script string) []KeyEvent {
	evs := make([]KeyEvent, 0, len(script))
	for _, r := range script {
		switch r {
		case '\n', '\r':
			evs = append(evs, KeyEvent{Code: KeyEnter, Press: true})
		case '\b', 0x7F:
			evs = append(evs, KeyEvent{Code: KeyBackspace, Press: true})
		case 0x1B:
			evs = append(evs, KeyEvent{Code: KeyEscape, Press: true})
		default:
			evs = append(evs, KeyEvent{Press: true, Rune: r})
		}
	}
	return evs
}

// UnescapeScript turns the sequences \n, \r, \b, \e and \x1b typed on a
// command line into the control characters they name. "\\" is a backslash;
// other sequences are kept as written.
func UnescapeScript(s string) string {
	rs := []rune(s)
	out := make([]rune, 0, len(rs))
	for i := 0; i < len(rs); i++ {
		if rs[i] != '\\' || i+1 >= len(rs) {
			out = append(out, rs[i])
			continue
		}
		switch rs[i+1] {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 'b':
			out = append(out, '\b')
		case 'e':
			out = append(out, 0x1B)
		case 'x':
			if i+3 < len(rs) && rs[i+2] == '1' && (rs[i+3] == 'b' || rs[i+3] == 'B') {
				out = append(out, 0x1B)
				i += 2
			} else {
				out = append(out, rs[i], rs[i+1])
			}
		case '\\':
			out = append(out, '\\')
		default:
			out = append(out, rs[i], rs[i+1])
		}
		i++
	}
	return string(out)
}
