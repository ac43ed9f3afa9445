package flight

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrParticleCount = errors.New("particle count must be positive")
	ErrDistribution  = errors.New("distribution must be positive, finite and at most MaxDistribution")
	ErrBufferLength  = errors.New("position and velocity buffers must both hold 3*N floats")
	ErrOutOfBounds   = errors.New("initial position outside the distribution volume")
)

// MaxDistribution is the largest half-extent for which every integer
// coordinate is exactly representable as a float32.
const MaxDistribution = 1 << 24

// DefaultDrift is the per-frame velocity of every particle in the Normal regime.
var DefaultDrift = mgl32.Vec3{0, 0, 0.25}

// Field is a fixed-size set of points stored as two parallel xyz arrays.
// Particle i occupies slots 3i, 3i+1, 3i+2 of both. The arrays are allocated
// once and never resized, so the position slice can be handed straight to a
// vertex buffer.
//
// A Field is not safe for concurrent use; Advance and SetVelocityRegime must
// not interleave.
type Field struct {
	pos   []float32
	vel   []float32
	n     int
	dist  float32
	drift mgl32.Vec3
	dirty bool
}

// ValidDistribution reports whether d can bound a field.
func ValidDistribution(d float32) bool {
	return d > 0 && d <= MaxDistribution && !math.IsNaN(float64(d))
}

// NewField places n particles at independent uniform integer coordinates in
// [-distribution, distribution] on every axis, all moving at drift.
func NewField(n int, distribution float32, drift mgl32.Vec3, r *Rand) (*Field, error) {
	if n <= 0 {
		return nil, fmt.Errorf("new field: %w (got %d)", ErrParticleCount, n)
	}
	if !ValidDistribution(distribution) {
		return nil, fmt.Errorf("new field: %w (got %g)", ErrDistribution, distribution)
	}
	if r == nil {
		r = NewRand(1)
	}
	d := int(distribution)
	pos := make([]float32, 3*n)
	for i := range pos {
		pos[i] = float32(r.Range(-d, d))
	}
	f := &Field{
		pos:   pos,
		vel:   make([]float32, 3*n),
		n:     n,
		dist:  distribution,
		drift: drift,
		dirty: true,
	}
	f.fill(drift)
	return f, nil
}

// NewFieldFromBuffers adopts caller-supplied arrays. It fails fast instead of
// truncating when the lengths disagree or are not a multiple of three, and
// rejects any starting coordinate outside the distribution volume.
func NewFieldFromBuffers(positions, velocities []float32, distribution float32, drift mgl32.Vec3) (*Field, error) {
	if !ValidDistribution(distribution) {
		return nil, fmt.Errorf("new field: %w (got %g)", ErrDistribution, distribution)
	}
	if len(positions) != len(velocities) || len(positions)%3 != 0 {
		return nil, fmt.Errorf("new field: %w (positions %d, velocities %d)", ErrBufferLength, len(positions), len(velocities))
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("new field: %w (got 0)", ErrParticleCount)
	}
	for i, p := range positions {
		if p < -distribution || p > distribution {
			return nil, fmt.Errorf("new field: %w (particle %d axis %d = %g, limit %g)", ErrOutOfBounds, i/3, i%3, p, distribution)
		}
	}
	return &Field{
		pos:   positions,
		vel:   velocities,
		n:     len(positions) / 3,
		dist:  distribution,
		drift: drift,
		dirty: true,
	}, nil
}

func (f *Field) Len() int { return f.n }
func (f *Field) Distribution() float32 { return f.dist }
func (f *Field) Drift() mgl32.Vec3 { return f.drift }
func (f *Field) Positions() []float32 { return f.pos }
func (f *Field) Velocities() []float32 { return f.vel }
func (f *Field) Position(i int) mgl32.Vec3 { return mgl32.Vec3{f.pos[3*i], f.pos[3*i+1], f.pos[3*i+2]} }
func (f *Field) Velocity(i int) mgl32.Vec3 { return mgl32.Vec3{f.vel[3*i], f.vel[3*i+1], f.vel[3*i+2]} }

// SetVelocityRegime overwrites every particle's velocity. Normal restores the
// drift vector; WormholeRush gives every particle (0, 0, magnitude), so no
// per-particle variation survives the rush.
func (f *Field) SetVelocityRegime(reg Regime, magnitude float32) {
	switch reg {
	case RegimeWormholeRush:
		f.fill(mgl32.Vec3{0, 0, magnitude})
	default:
		f.fill(f.drift)
	}
}

func (f *Field) fill(v mgl32.Vec3) {
	vel := f.vel
	for i := 0; i+2 < len(vel); i += 3 {
		vel[i] = v[0]
		vel[i+1] = v[1]
		vel[i+2] = v[2]
	}
}

// Advance moves every particle by one frame of velocity. A particle already
// past the far plane (z > distribution) is first sent back to -distribution,
// using last frame's z. Only +z recycles; x, y and -z drift freely.
func (f *Field) Advance() {
	pos, vel, d := f.pos, f.vel, f.dist
	for i := 0; i+2 < len(pos); i += 3 {
		if pos[i+2] > d {
			pos[i+2] = -d
		}
		pos[i] += vel[i]
		pos[i+1] += vel[i+1]
		pos[i+2] += vel[i+2]
	}
	// Every element was touched, so the whole buffer is dirty.
	f.dirty = true
}

// Dirty reports whether the position buffer changed since MarkClean.
func (f *Field) Dirty() bool { return f.dirty }

// MarkClean is called by the renderer after uploading Positions.
func (f *Field) MarkClean() { f.dirty = false }
