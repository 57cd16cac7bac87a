// Package confwatch reloads the calculator theme when the config file changes.
package confwatch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"sparkcalc/internal/config"
	logclient "sparkcalc/sparkos/client/logger"
	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/proto"
)

// DefaultDebounce collapses the burst of events editors produce on save.
const DefaultDebounce = 100 * time.Millisecond

// sendRetries bounds how many ticks a reload waits for room in the calc queue.
const sendRetries = 50

// Service watches one config file. After each write or create, once the file
// has been quiet for the debounce delay, it loads the file and sends the
// resolved theme to the calc task as MsgThemeUpdate. Files that fail to load
// are logged and the running theme is kept.
//
// The service ends when ep is closed.
type Service struct {
	path     string
	ep       kernel.Capability
	calcCap  kernel.Capability
	logCap   kernel.Capability
	debounce time.Duration
	load     func(path string) (proto.Theme, error)

	ready chan struct{}
}

func New(path string, ep, calcCap, logCap kernel.Capability) *Service {
	return &Service{
		path:     path,
		ep:       ep,
		calcCap:  calcCap,
		logCap:   logCap,
		debounce: DefaultDebounce,
		load:     loadTheme,
		ready:    make(chan struct{}),
	}
}

// SetDebounce overrides DefaultDebounce. It must be called before Run.
func (s *Service) SetDebounce(d time.Duration) {
	if d > 0 {
		s.debounce = d
	}
}

// Ready is closed once the watch is installed, or when Run gives up.
func (s *Service) Ready() <-chan struct{} { return s.ready }

func loadTheme(path string) (proto.Theme, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return proto.Theme{}, err
	}
	return cfg.Theme.Resolve()
}

func (s *Service) Run(ctx *kernel.Context) {
	stop, ok := ctx.RecvChan(s.ep)
	if !ok {
		close(s.ready)
		return
	}

	w, target, err := s.watch()
	close(s.ready)
	if err != nil {
		logclient.Logf(ctx, s.logCap, "confwatch: %v", err)
		return
	}
	defer w.Close()
	logclient.Logf(ctx, s.logCap, "confwatch: watching %s", target)

	timer := time.NewTimer(s.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case _, ok := <-stop:
			if !ok {
				return
			}

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				timer.Reset(s.debounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logclient.Logf(ctx, s.logCap, "confwatch: %v", err)

		case <-timer.C:
			s.reload(ctx, target)
		}
	}
}

// watch installs a watch on the directory holding the config file so that
// editors which replace the file by rename are still seen.
func (s *Service) watch() (*fsnotify.Watcher, string, error) {
	target, err := filepath.Abs(s.path)
	if err != nil {
		return nil, "", fmt.Errorf("resolve %s: %w", s.path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, "", fmt.Errorf("failed to initialize watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		w.Close()
		return nil, "", fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	return w, target, nil
}

func (s *Service) reload(ctx *kernel.Context, path string) {
	theme, err := s.load(path)
	if err != nil {
		logclient.Logf(ctx, s.logCap, "confwatch: reload failed: %v", err)
		return
	}
	res := ctx.SendToCapRetry(s.calcCap, uint16(proto.MsgThemeUpdate), proto.ThemePayload(theme), kernel.Capability{}, sendRetries)
	if res != kernel.SendOK {
		logclient.Logf(ctx, s.logCap, "confwatch: theme update: %s", res)
	}
}
