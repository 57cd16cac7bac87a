package kernel

import (
	"runtime/debug"
	"sync/atomic"
)

// PanicInfo contains details about a recovered task panic.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

type panicState struct {
	count   atomic.Uint32
	handler atomic.Value // func(PanicInfo)
}

// SetPanicHandler installs the handler called for every task panic. It runs
// on the panicking task's goroutine and must not panic itself.
func (k *Kernel) SetPanicHandler(fn func(PanicInfo)) {
	k.panics.handler.Store(fn)
}

// Panics returns how many tasks have panicked so far.
func (k *Kernel) Panics() int {
	return int(k.panics.count.Load())
}

func (k *Kernel) recoverTask(id TaskID) {
	v := recover()
	if v == nil {
		return
	}
	k.panics.count.Add(1)
	info := PanicInfo{TaskID: id, Value: v, Stack: debug.Stack()}
	if h := k.panics.handler.Load(); h != nil {
		if fn, ok := h.(func(PanicInfo)); ok && fn != nil {
			fn(info)
		}
	}
}
