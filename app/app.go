package app

import (
	"sparkcalc/hal"
	"sparkcalc/sparkos/calc"
	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/proto"
	"sparkcalc/sparkos/services/confwatch"
	"sparkcalc/sparkos/services/logger"
	calctask "sparkcalc/sparkos/tasks/calc"
)

type system struct {
	k *kernel.Kernel
}

type Config struct {
	// Theme is the starting color scheme. The zero value means
	// proto.DefaultTheme.
	Theme proto.Theme
	// ConfigPath is the YAML file reloaded on change when Watch is set.
	ConfigPath string
	Watch      bool
	// Mirror receives every display update in addition to the screen.
	Mirror calc.Display
}

// New starts the calculator with default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

// NewWithConfig starts the calculator and returns the per-frame step
// function for the host runner. The step fails once a task has panicked.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	return newSystem(h, cfg).step
}

func newSystem(h hal.HAL, cfg Config) *system {
	k := kernel.New()
	installPanicHandler(k, h.Logger())

	theme := cfg.Theme
	if theme == (proto.Theme{}) {
		theme = proto.DefaultTheme
	}

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	calcEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))
	k.AddTask(calctask.New(
		h.Display(),
		h.Input(),
		calcEP.Restrict(kernel.RightRecv),
		logEP.Restrict(kernel.RightSend),
		theme,
		cfg.Mirror,
	))

	if cfg.Watch && cfg.ConfigPath != "" {
		watchEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
		k.AddTask(confwatch.New(
			cfg.ConfigPath,
			watchEP.Restrict(kernel.RightRecv),
			calcEP.Restrict(kernel.RightSend),
			logEP.Restrict(kernel.RightSend),
		))
	}

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	return &system{k: k}
}
