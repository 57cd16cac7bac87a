package app

import (
	"errors"
	"fmt"
	"strings"

	"sparkcalc/hal"
	"sparkcalc/sparkos/kernel"
)

// ErrTaskPanic is returned by the step function once any task has panicked.
var ErrTaskPanic = errors.New("task panicked")

func installPanicHandler(k *kernel.Kernel, l hal.Logger) {
	k.SetPanicHandler(func(info kernel.PanicInfo) {
		if l == nil {
			return
		}
		l.WriteLineString(fmt.Sprintf("panic: task=%d %v", info.TaskID, info.Value))
		for _, line := range strings.Split(string(info.Stack), "\n") {
			if line == "" {
				continue
			}
			l.WriteLineString(line)
		}
	})
}

func (s *system) step() error {
	if n := s.k.Panics(); n > 0 {
		return fmt.Errorf("%w (%d)", ErrTaskPanic, n)
	}
	return nil
}
