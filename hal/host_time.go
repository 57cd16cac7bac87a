package hal

import "time"

const hostTickDur = time.Millisecond

// hostTime converts wall time into a millisecond tick stream. It is advanced
// once per frame by the window or headless runner; every elapsed millisecond
// is published as one sequence number.
type hostTime struct {
	ch  chan uint64
	seq uint64

	now  func() time.Time
	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024), now: time.Now}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

func (t *hostTime) advance() {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		t.publish(1)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	n := uint64(t.acc / hostTickDur)
	if n == 0 {
		return
	}
	t.acc %= hostTickDur
	t.publish(n)
}

// publish hands out n new sequence numbers. Values are dropped while the
// consumer lags behind.
func (t *hostTime) publish(n uint64) {
	for i := uint64(0); i < n; i++ {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
