//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// poll forwards left mouse button and touch transitions. Positions are in
// layout coordinates, which the window maps 1:1 onto the framebuffer.
func (p *hostPointer) poll() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		p.emit(PointerEvent{X: x, Y: y, Press: true})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		p.emit(PointerEvent{X: x, Y: y, Press: false})
	}

	for id, pos := range p.touches {
		if inpututil.IsTouchJustReleased(ebiten.TouchID(id)) {
			p.emit(PointerEvent{X: pos[0], Y: pos[1], Press: false})
			delete(p.touches, id)
		}
	}
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		p.touches[int(id)] = [2]int{x, y}
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		p.emit(PointerEvent{X: x, Y: y, Press: true})
	}
}
