package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera holds the perspective lens. Position and rotation come from the
// flight FrameContext each frame.
type Camera struct {
	FOV  float32 // vertical, degrees
	Near float32
	Far  float32
}

func (c Camera) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// View is the inverse of a camera placed at pos and rotated by rot (pitch
// about X, then yaw about Y).
func View(pos mgl32.Vec3, rot mgl32.Vec2) mgl32.Mat4 {
	return mgl32.HomogRotate3DY(-rot.Y()).
		Mul4(mgl32.HomogRotate3DX(-rot.X())).
		Mul4(mgl32.Translate3D(-pos.X(), -pos.Y(), -pos.Z()))
}
