package logger_test

import (
	"strings"
	"sync"
	"testing"

	logclient "sparkcalc/sparkos/client/logger"
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

type taskFunc func(*kernel.Context)

func (f taskFunc) Run(ctx *kernel.Context) { f(ctx) }

func TestLogReachesHALLogger(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	rec := &lineRecorder{}

	k.AddTask(logsvc.New(rec, ep.Restrict(kernel.RightRecv)))
	k.AddTask(taskFunc(func(ctx *kernel.Context) {
		to := ep.Restrict(kernel.RightSend)
		if res := logclient.Log(ctx, to, "calc: ready\n"); res != kernel.SendOK {
			t.Errorf("Log = %s", res)
		}
		if res := logclient.Logf(ctx, to, "calc: %s -> %s", "6/0", "Error"); res != kernel.SendOK {
			t.Errorf("Logf = %s", res)
		}
		ctx.SendToCapResult(to, uint16(proto.MsgThemeUpdate), nil, kernel.Capability{})
		if err := logclient.LogRetry(ctx, to, strings.Repeat("x", 200), 0); err != nil {
			t.Errorf("LogRetry: %v", err)
		}
		k.CloseEndpoint(ep)
	}))
	k.Wait()

	want := []string{"calc: ready", "calc: 6/0 -> Error", strings.Repeat("x", kernel.MaxMessageBytes)}
	if len(rec.lines) != len(want) {
		t.Fatalf("lines = %q, want %q", rec.lines, want)
	}
	for i := range want {
		if rec.lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, rec.lines[i], want[i])
		}
	}
}

func TestLogNilContext(t *testing.T) {
	if res := logclient.Log(nil, kernel.Capability{}, "x"); res == kernel.SendOK {
		t.Fatal("expected failure with nil context")
	}
	if err := logclient.LogRetry(nil, kernel.Capability{}, "x", 1); err == nil {
		t.Fatal("expected error with nil context")
	}
}
