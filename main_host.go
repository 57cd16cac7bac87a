package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"sparkcalc/app"
	"sparkcalc/hal"
	"sparkcalc/internal/buildinfo"
	"sparkcalc/internal/config"
	"sparkcalc/internal/console"
)

func main() {
	var (
		configPath string
		headless   bool
		hz         int
		ticks      uint64
		scale      int
		keys       string
		mirror     bool
		watch      bool
		version    bool
	)
	flag.StringVar(&configPath, "config", "", "YAML config file (optional).")
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&hz, "hz", config.DefaultHz, "Tick rate in headless mode.")
	flag.Uint64Var(&ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.IntVar(&scale, "scale", config.DefaultScale, "Window zoom factor.")
	flag.StringVar(&keys, "keys", "", `Keys typed at startup ("\n" is Enter, "\b" Backspace, "\x1b" Escape).`)
	flag.BoolVar(&mirror, "mirror", false, "Mirror the display on stdout in window mode.")
	flag.BoolVar(&watch, "watch", false, "Reload the theme when the config file changes.")
	flag.BoolVar(&version, "version", false, "Print build information and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "hz":
			cfg.Headless.Hz = hz
		case "ticks":
			cfg.Headless.Ticks = ticks
		case "scale":
			cfg.Window.Scale = scale
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	theme, err := cfg.Theme.Resolve()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	appCfg := app.Config{Theme: theme, ConfigPath: configPath, Watch: watch}
	if headless || mirror {
		m := console.New(os.Stdout)
		defer m.Close()
		appCfg.Mirror = m
	}
	script := hal.ScriptEvents(hal.UnescapeScript(keys))
	newApp := func(h hal.HAL) func() error { return app.NewWithConfig(h, appCfg) }

	if headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err := hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
			Hz:     cfg.Headless.Hz,
			Ticks:  cfg.Headless.Ticks,
			Script: script,
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp, hal.WindowConfig{Scale: cfg.Window.Scale, Script: script}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
