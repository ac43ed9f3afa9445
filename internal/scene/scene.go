package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type LightKind uint8

const (
	LightDirectional LightKind = iota
	LightPoint
	LightArea // approximated as a uniform ambient fill
)

type Light struct {
	Kind      LightKind
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
}

func DefaultLights() []Light {
	return []Light{
		{Kind: LightDirectional, Position: mgl32.Vec3{500, 200, -100}, Color: mgl32.Vec3{1, 1, 1}, Intensity: 1},
		{Kind: LightPoint, Position: mgl32.Vec3{0, 80, 150}, Color: mgl32.Vec3{0.55, 0.7, 1}, Intensity: 0.8},
		{Kind: LightArea, Color: mgl32.Vec3{0.25, 0.25, 0.3}, Intensity: 1},
	}
}

// Options sizes the companion objects around the particle field.
type Options struct {
	TubeRadius  float32
	TubeLength  float32
	TubeCenterZ float32
	CraftSpin   float32 // per-frame Y rotation of the spacecraft
}

// Scene is the set of companion objects that move alongside the field.
type Scene struct {
	Craft     Object
	Satellite Object
	Tube      Object
	Lights    []Light
}

func New(opts Options) *Scene {
	return &Scene{
		Craft: Object{
			Name:  "craft",
			Mesh:  Box(10, 20, 10),
			Scale: mgl32.Vec3{0.5, 0.5, 0.5},
			Spin:  mgl32.Vec3{0, opts.CraftSpin, 0},
			Color: mgl32.Vec3{0.12, 0.25, 0.6},
		},
		Satellite: Object{
			Name:     "satellite",
			Mesh:     Ring(4, 12, 24),
			Position: mgl32.Vec3{-40, 10, -60},
			Scale:    mgl32.Vec3{0.5, 0.5, 0.5},
			Color:    mgl32.Vec3{0.7, 0.7, 0.65},
		},
		Tube: Object{
			Name:     "tube",
			Mesh:     Tube(opts.TubeRadius, opts.TubeLength, 48, 32),
			Position: mgl32.Vec3{0, 0, opts.TubeCenterZ},
			Color:    mgl32.Vec3{0.35, 0.2, 0.55},
		},
		Lights: DefaultLights(),
	}
}

// Update advances the companion animation by one frame. tubeSpin comes from
// the flight controller's decision for the same frame.
func (s *Scene) Update(tubeSpin float32) {
	s.Craft.Tick()
	s.Tube.Rotation[2] = math32.Mod(s.Tube.Rotation[2]+tubeSpin, 2*math32.Pi)
}

func (s *Scene) Objects() []*Object {
	return []*Object{&s.Craft, &s.Satellite, &s.Tube}
}

// Light returns the first light of the given kind, or a zero light.
func (s *Scene) Light(kind LightKind) Light {
	for _, l := range s.Lights {
		if l.Kind == kind {
			return l
		}
	}
	return Light{Kind: kind}
}
