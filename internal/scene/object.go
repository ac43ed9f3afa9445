package scene

import "github.com/go-gl/mathgl/mgl32"

// Object is a placed, optionally spinning mesh instance.
type Object struct {
	Name     string
	Mesh     *Mesh
	Position mgl32.Vec3
	Rotation mgl32.Vec3 // Euler radians, applied X then Y then Z
	Scale    mgl32.Vec3
	Spin     mgl32.Vec3 // added to Rotation by Tick
	Color    mgl32.Vec3
}

func (o *Object) Tick() {
	o.Rotation = o.Rotation.Add(o.Spin)
}

func (o *Object) Model() mgl32.Mat4 {
	s := o.Scale
	if s == (mgl32.Vec3{}) {
		s = mgl32.Vec3{1, 1, 1}
	}
	return mgl32.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z()).
		Mul4(mgl32.HomogRotate3DX(o.Rotation.X())).
		Mul4(mgl32.HomogRotate3DY(o.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(o.Rotation.Z())).
		Mul4(mgl32.Scale3D(s.X(), s.Y(), s.Z()))
}
