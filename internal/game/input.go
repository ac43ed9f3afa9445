//go:build !android

package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"wormhole/internal/flight"
)

// Input tracks key edges for one-shot actions. Continuous pointer and wheel
// input goes straight into the FrameContext through glfw callbacks.
type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// bindInput routes window callbacks into fc. The callbacks run inside
// glfw.PollEvents, on the loop's thread, before the frame is stepped.
func bindInput(window *glfw.Window, fc *flight.FrameContext) {
	w, h := window.GetSize()
	fc.Resize(w, h)

	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		fc.MouseMove(x, y)
	})
	window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		fc.Scroll(yoff)
	})
	window.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		fc.Resize(width, height)
	})
}
