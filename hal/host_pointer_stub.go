//go:build !cgo

package hal

func (p *hostPointer) poll() {}
