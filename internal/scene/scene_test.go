package scene_test

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wormhole/internal/flight"
	"wormhole/internal/scene"
)

func TestTube(t *testing.T) {
	m := scene.Tube(50, 400, 16, 4)
	require.Equal(t, 17*5, m.VertexCount())
	assert.Len(t, m.Indices, 16*4*6)

	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertices[i*scene.VertexStride : (i+1)*scene.VertexStride]
		r := math32.Hypot(v[0], v[1])
		assert.InDelta(t, 50, r, 1e-3)
		assert.GreaterOrEqual(t, v[2], float32(-200))
		assert.LessOrEqual(t, v[2], float32(200))
		// Normals face the axis.
		assert.InDelta(t, -1, (v[0]*v[3]+v[1]*v[4])/r, 1e-4)
	}
	for _, idx := range m.Indices {
		assert.Less(t, int(idx), m.VertexCount())
	}
}

func TestBox(t *testing.T) {
	m := scene.Box(2, 4, 6)
	require.Equal(t, 24, m.VertexCount())
	assert.Len(t, m.Indices, 36)
	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertices[i*scene.VertexStride:]
		assert.InDelta(t, 1, math32.Abs(v[0]), 1e-6)
		assert.InDelta(t, 2, math32.Abs(v[1]), 1e-6)
		assert.InDelta(t, 3, math32.Abs(v[2]), 1e-6)
	}
}

func TestRing(t *testing.T) {
	m := scene.Ring(1, 2, 8)
	assert.Equal(t, 18, m.VertexCount())
	assert.Len(t, m.Indices, 48)
}

func TestObjectModel(t *testing.T) {
	o := scene.Object{Position: mgl32.Vec3{1, 2, 3}}
	p := o.Model().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.Equal(t, mgl32.Vec4{1, 2, 3, 1}, p)

	o.Spin = mgl32.Vec3{0, 0.025, 0}
	for range 4 {
		o.Tick()
	}
	assert.InDelta(t, 0.1, o.Rotation.Y(), 1e-6)
}

func TestSceneUpdate(t *testing.T) {
	s := scene.New(scene.Options{TubeRadius: 100, TubeLength: 4000, CraftSpin: 0.025})
	s.Update(0.002)
	s.Update(0.009)
	assert.InDelta(t, 0.011, s.Tube.Rotation.Z(), 1e-6)
	assert.InDelta(t, 0.05, s.Craft.Rotation.Y(), 1e-6)
	assert.Zero(t, s.Satellite.Rotation)
	assert.Len(t, s.Objects(), 3)
	assert.Equal(t, mgl32.Vec3{500, 200, -100}, s.Light(scene.LightDirectional).Position)
}

func TestSceneTurnsWithFlightLoop(t *testing.T) {
	f, err := flight.NewField(16, 200, flight.DefaultDrift, flight.NewRand(5))
	require.NoError(t, err)
	fc := flight.NewFrameContext(mgl32.Vec3{0, 50, 0}, 800, 600, flight.DefaultInputTuning())
	loop := flight.NewLoop(fc, flight.NewController(f, flight.DefaultBounds()))

	s := scene.New(scene.Options{TubeRadius: 100, TubeLength: 400})
	loop.Attach(s)

	var want float32
	for range 4 {
		want += loop.Step().Decision.Spin
	}
	assert.InDelta(t, want, s.Tube.Rotation.Z(), 1e-6)
}

func TestViewMovesWorldOpposite(t *testing.T) {
	v := scene.View(mgl32.Vec3{0, 50, 120}, mgl32.Vec2{})
	p := v.Mul4x1(mgl32.Vec4{0, 50, 0, 1})
	assert.InDelta(t, -120, p.Z(), 1e-4)

	cam := scene.Camera{FOV: 75, Near: 0.1, Far: 5000}
	proj := cam.Projection(16.0 / 9.0)
	clip := proj.Mul4x1(p)
	ndcZ := clip.Z() / clip.W()
	assert.Greater(t, ndcZ, float32(-1))
	assert.Less(t, ndcZ, float32(1))
}
