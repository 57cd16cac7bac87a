// Package console mirrors the calculator display on a terminal.
package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/gosuri/uilive"
	"github.com/mattn/go-isatty"
)

// Mirror is a calc.Display that writes every update to a terminal or log.
//
// On a terminal the value is redrawn in place on a single live line. On
// anything else each update is appended as "display: <text>".
type Mirror struct {
	mu   sync.Mutex
	out  io.Writer
	live *uilive.Writer
}

// New returns a Mirror writing to w, live when w is a terminal.
func New(w io.Writer) *Mirror {
	if IsTerminal(w) {
		return NewLive(w)
	}
	return &Mirror{out: w}
}

// NewLive returns a Mirror that always redraws in place.
func NewLive(w io.Writer) *Mirror {
	lw := uilive.New()
	lw.Out = w
	return &Mirror{out: w, live: lw}
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (m *Mirror) SetText(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.live == nil {
		fmt.Fprintf(m.out, "display: %s\n", s)
		return
	}
	fmt.Fprintf(m.live, "display: %s\n", s)
	_ = m.live.Flush()
}

// Close ends the live line so later output starts on a fresh line.
func (m *Mirror) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.live == nil {
		return nil
	}
	m.live = nil
	_, err := io.WriteString(m.out, "\n")
	return err
}
