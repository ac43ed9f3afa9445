package flight

// Bounds are the depth thresholds and speed ranges that couple camera depth
// to particle speed and tube spin. Particle speed and tube spin always read
// the same thresholds so the two effects start and peak together.
type Bounds struct {
	RushStart float32 // camera z below this enters the rush
	RushEnd   float32 // camera z at which speed reaches FastSpeed

	SlowSpeed float32
	FastSpeed float32

	SlowSpin float32
	FastSpin float32

	// Clamp limits interpolation to [RushEnd, RushStart]. Off by default:
	// depths beyond RushEnd extrapolate past FastSpeed.
	Clamp bool
}

func DefaultBounds() Bounds {
	return Bounds{
		RushStart: 200,
		RushEnd:   -200,
		SlowSpeed: 0.25,
		FastSpeed: 50,
		SlowSpin:  0.002,
		FastSpin:  0.009,
	}
}

// Decision is the per-frame outcome of reading camera depth.
type Decision struct {
	Regime    Regime
	Magnitude float32 // z speed in the rush; SlowSpeed otherwise
	Spin      float32 // tube rotation increment for this frame
}

// progress maps z onto the rush range: 0 at RushStart, 1 at RushEnd.
// A zero-width range jumps straight to 1.
func (b Bounds) progress(z float32) float32 {
	span := b.RushEnd - b.RushStart
	if span == 0 {
		return 1
	}
	t := (z - b.RushStart) / span
	if b.Clamp {
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
	}
	return t
}

// Decide picks the regime for camera depth z. No state is kept between calls.
func (b Bounds) Decide(z float32) Decision {
	if z >= b.RushStart {
		return Decision{Regime: RegimeNormal, Magnitude: b.SlowSpeed, Spin: b.SlowSpin}
	}
	t := b.progress(z)
	return Decision{
		Regime:    RegimeWormholeRush,
		Magnitude: b.SlowSpeed + t*(b.FastSpeed-b.SlowSpeed),
		Spin:      b.SlowSpin + t*(b.FastSpin-b.SlowSpin),
	}
}

// Controller applies the depth decision to a Field once per frame.
type Controller struct {
	field  *Field
	bounds Bounds

	// Last applied regime. Rebuilding with identical inputs writes identical
	// values, so an unchanged decision skips the rewrite.
	applied  bool
	last     Regime
	lastMag  float32
	rebuilds int
}

func NewController(field *Field, bounds Bounds) *Controller {
	return &Controller{field: field, bounds: bounds}
}

func (c *Controller) Bounds() Bounds { return c.bounds }
func (c *Controller) Field() *Field { return c.field }

// Rebuilds counts how many times the velocity array was rewritten.
func (c *Controller) Rebuilds() int { return c.rebuilds }

// Step decides the regime for camera depth z and applies it to the field.
// It must run after input for the frame is handled and before Advance.
func (c *Controller) Step(z float32) Decision {
	d := c.bounds.Decide(z)
	if c.applied && d.Regime == c.last && (d.Regime == RegimeNormal || d.Magnitude == c.lastMag) {
		return d
	}
	c.field.SetVelocityRegime(d.Regime, d.Magnitude)
	c.applied = true
	c.last = d.Regime
	c.lastMag = d.Magnitude
	c.rebuilds++
	return d
}

// Update reads camera depth from the frame context and calls Step.
func (c *Controller) Update(fc *FrameContext) Decision {
	return c.Step(fc.CameraZ())
}

// Invalidate forces the next Step to rewrite velocities, e.g. after the
// field's velocities were changed behind the controller's back.
func (c *Controller) Invalidate() { c.applied = false }
