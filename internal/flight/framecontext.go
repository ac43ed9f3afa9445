package flight

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// WheelPixelsPerNotch converts a scroll notch into the pixel delta that
// WheelScale is calibrated against.
const WheelPixelsPerNotch = 100.0

// InputTuning scales raw input into camera motion.
type InputTuning struct {
	WheelScale float32 // camera z per wheel pixel
	MouseScale float32 // rotation target per pixel of mouse offset
	Ease       float32 // fraction of the remaining rotation applied per frame
}

func DefaultInputTuning() InputTuning {
	return InputTuning{WheelScale: 0.1, MouseScale: 0.0005, Ease: 0.05}
}

// FrameState is a value copy of the camera and pointer state for one frame.
type FrameState struct {
	CameraPos mgl32.Vec3
	CameraRot mgl32.Vec2 // x: pitch, y: yaw (radians)
	Mouse     mgl32.Vec2 // pointer offset from window centre
	Half      mgl32.Vec2
	Aspect    float32
}

// FrameContext is the single owner of camera and pointer state. Input
// callbacks write into it and the run loop reads a Snapshot each frame.
type FrameContext struct {
	mu     sync.RWMutex
	st     FrameState
	tuning InputTuning
}

func NewFrameContext(cameraPos mgl32.Vec3, width, height int, tuning InputTuning) *FrameContext {
	fc := &FrameContext{tuning: tuning}
	fc.st.CameraPos = cameraPos
	fc.st.Aspect = 1
	fc.Resize(width, height)
	return fc
}

// MouseMove records the pointer position in window coordinates.
func (fc *FrameContext) MouseMove(x, y float64) {
	fc.mu.Lock()
	fc.st.Mouse = mgl32.Vec2{float32(x) - fc.st.Half.X(), float32(y) - fc.st.Half.Y()}
	fc.mu.Unlock()
}

// Wheel moves the camera along z. deltaY is in pixels, positive away from
// the screen, so scrolling "down" flies backward.
func (fc *FrameContext) Wheel(deltaY float64) {
	fc.mu.Lock()
	fc.st.CameraPos[2] += float32(deltaY) * fc.tuning.WheelScale
	fc.mu.Unlock()
}

// Scroll converts a notch-based scroll offset (positive = up) into Wheel.
func (fc *FrameContext) Scroll(yoff float64) {
	fc.Wheel(-yoff * WheelPixelsPerNotch)
}

// Resize updates the window half-extent and aspect ratio. A zero size
// (minimised window) is ignored.
func (fc *FrameContext) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	fc.mu.Lock()
	fc.st.Half = mgl32.Vec2{float32(width) / 2, float32(height) / 2}
	fc.st.Aspect = float32(width) / float32(height)
	fc.mu.Unlock()
}

// Ease turns the camera a fraction of the way toward the pointer target.
func (fc *FrameContext) Ease() {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	tx := (1 - fc.st.Mouse.X()) * fc.tuning.MouseScale
	ty := (1 - fc.st.Mouse.Y()) * fc.tuning.MouseScale
	fc.st.CameraRot[0] += fc.tuning.Ease * (ty - fc.st.CameraRot[0])
	fc.st.CameraRot[1] += fc.tuning.Ease * (tx - fc.st.CameraRot[1])
}

func (fc *FrameContext) SetCameraPosition(p mgl32.Vec3) {
	fc.mu.Lock()
	fc.st.CameraPos = p
	fc.mu.Unlock()
}

func (fc *FrameContext) CameraZ() float32 {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return fc.st.CameraPos.Z()
}

func (fc *FrameContext) Snapshot() FrameState {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return fc.st
}
