package confwatch

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/proto"
	logsvc "sparkcalc/sparkos/services/logger"
)

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

func (r *lineRecorder) joined() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.lines, "\n")
}

type taskFunc func(*kernel.Context)

func (f taskFunc) Run(ctx *kernel.Context) { f(ctx) }

type harness struct {
	path   string
	themes chan proto.Theme
	logs   *lineRecorder
}

func startWatcher(t *testing.T) *harness {
	t.Helper()
	g := NewWithT(t)

	h := &harness{
		path:   filepath.Join(t.TempDir(), "calc.yaml"),
		themes: make(chan proto.Theme, 8),
		logs:   &lineRecorder{},
	}

	k := kernel.New()
	rw := kernel.RightSend | kernel.RightRecv
	stopEP, calcEP, logEP := k.NewEndpoint(rw), k.NewEndpoint(rw), k.NewEndpoint(rw)

	k.AddTask(logsvc.New(h.logs, logEP.Restrict(kernel.RightRecv)))
	k.AddTask(taskFunc(func(ctx *kernel.Context) {
		for {
			msg, ok := ctx.Recv(calcEP.Restrict(kernel.RightRecv))
			if !ok {
				return
			}
			if th, ok := proto.DecodeThemePayload(msg.Payload()); ok {
				h.themes <- th
			}
		}
	}))

	svc := New(h.path, stopEP.Restrict(kernel.RightRecv), calcEP.Restrict(kernel.RightSend), logEP.Restrict(kernel.RightSend))
	svc.SetDebounce(50 * time.Millisecond)
	k.AddTask(svc)

	g.Eventually(svc.Ready()).Should(BeClosed())
	g.Eventually(h.logs.joined).Should(ContainSubstring("confwatch: watching"))

	t.Cleanup(func() {
		k.CloseEndpoint(stopEP)
		k.CloseEndpoint(calcEP)
		k.CloseEndpoint(logEP)
		k.Wait()
	})
	return h
}

func (h *harness) write(t *testing.T, body string) {
	t.Helper()
	if err := os.WriteFile(h.path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestReloadSendsTheme(t *testing.T) {
	g := NewWithT(t)
	h := startWatcher(t)

	h.write(t, "theme:\n  accent: \"#00ff00\"\n")

	var got proto.Theme
	g.Eventually(h.themes, 2*time.Second).Should(Receive(&got))
	g.Expect(got.Accent).To(Equal(color.RGBA{G: 0xFF, A: 0xFF}))
	g.Expect(got.Background).To(Equal(proto.DefaultTheme.Background))
}

func TestBurstIsDebounced(t *testing.T) {
	g := NewWithT(t)
	h := startWatcher(t)

	for i := 0; i < 5; i++ {
		h.write(t, "theme:\n  key_fg: \"#010203\"\n")
	}

	g.Eventually(h.themes, 2*time.Second).Should(Receive())
	g.Consistently(h.themes, 200*time.Millisecond).ShouldNot(Receive())
}

func TestBadFileKeepsTheme(t *testing.T) {
	g := NewWithT(t)
	h := startWatcher(t)

	h.write(t, "theme:\n  accent: \"#zz0000\"\n")

	g.Eventually(h.logs.joined, 2*time.Second).Should(ContainSubstring("confwatch: reload failed"))
	g.Consistently(h.themes, 100*time.Millisecond).ShouldNot(Receive())
}

func TestOtherFilesAreIgnored(t *testing.T) {
	g := NewWithT(t)
	h := startWatcher(t)

	other := filepath.Join(filepath.Dir(h.path), "notes.txt")
	if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	g.Consistently(h.themes, 150*time.Millisecond).ShouldNot(Receive())
}

func TestMissingDirectoryIsLogged(t *testing.T) {
	g := NewWithT(t)

	k := kernel.New()
	rw := kernel.RightSend | kernel.RightRecv
	stopEP, logEP := k.NewEndpoint(rw), k.NewEndpoint(rw)
	logs := &lineRecorder{}
	k.AddTask(logsvc.New(logs, logEP.Restrict(kernel.RightRecv)))

	path := filepath.Join(t.TempDir(), "missing", "calc.yaml")
	svc := New(path, stopEP.Restrict(kernel.RightRecv), kernel.Capability{}, logEP.Restrict(kernel.RightSend))
	k.AddTask(svc)

	g.Eventually(svc.Ready()).Should(BeClosed())
	g.Eventually(logs.joined).Should(ContainSubstring("confwatch: watch"))

	k.CloseEndpoint(stopEP)
	k.CloseEndpoint(logEP)
	k.Wait()
}
