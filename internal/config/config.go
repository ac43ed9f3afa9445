// Package config holds the tunable constants of the wormhole flight and the
// desktop host, with TOML file and environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"

	"wormhole/internal/flight"
	"wormhole/internal/scene"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	PresetWormhole = "wormhole"
	PresetClassic  = "classic"
)

type Field struct {
	Particles    int        `toml:"particles"`
	Distribution float32    `toml:"distribution"`
	Drift        [3]float32 `toml:"drift"`
	Seed         uint64     `toml:"seed"`
}

type Rush struct {
	Start     float32 `toml:"start"`
	End       float32 `toml:"end"`
	SlowSpeed float32 `toml:"slow_speed"`
	FastSpeed float32 `toml:"fast_speed"`
	SlowSpin  float32 `toml:"slow_spin"`
	FastSpin  float32 `toml:"fast_spin"`
	Clamp     bool    `toml:"clamp"`
}

type Camera struct {
	Start [3]float32 `toml:"start"`
	FOV   float32    `toml:"fov"`
	Near  float32    `toml:"near"`
	Far   float32    `toml:"far"`
}

type Input struct {
	WheelScale float32 `toml:"wheel_scale"`
	MouseScale float32 `toml:"mouse_scale"`
	Ease       float32 `toml:"ease"`
}

type Window struct {
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	Title     string  `toml:"title"`
	PointSize float32 `toml:"point_size"`
}

type Scene struct {
	TubeRadius float32 `toml:"tube_radius"`
	CraftSpin  float32 `toml:"craft_spin"`
}

type Audio struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

type Config struct {
	Preset string `toml:"preset"`
	Field  Field  `toml:"field"`
	Rush   Rush   `toml:"rush"`
	Camera Camera `toml:"camera"`
	Input  Input  `toml:"input"`
	Window Window `toml:"window"`
	Scene  Scene  `toml:"scene"`
	Audio  Audio  `toml:"audio"`
}

// Default is the final-variant wormhole: 2000 particles in a 2000-unit volume.
func Default() Config {
	b := flight.DefaultBounds()
	in := flight.DefaultInputTuning()
	return Config{
		Preset: PresetWormhole,
		Field: Field{
			Particles:    2000,
			Distribution: 2000,
			Drift:        [3]float32(flight.DefaultDrift),
		},
		Rush: Rush{
			Start:     b.RushStart,
			End:       b.RushEnd,
			SlowSpeed: b.SlowSpeed,
			FastSpeed: b.FastSpeed,
			SlowSpin:  b.SlowSpin,
			FastSpin:  b.FastSpin,
		},
		Camera: Camera{
			Start: [3]float32{0, 50, 120},
			FOV:   75,
			Near:  0.1,
			Far:   5000,
		},
		Input: Input{
			WheelScale: in.WheelScale,
			MouseScale: in.MouseScale,
			Ease:       in.Ease,
		},
		Window: Window{
			Width:     1280,
			Height:    720,
			Title:     "Wormhole",
			PointSize: 6,
		},
		Scene: Scene{
			TubeRadius: 160,
			CraftSpin:  0.025,
		},
		Audio: Audio{
			Enabled: true,
			Volume:  0.35,
		},
	}
}

// Preset returns Default adjusted for a named configuration.
func Preset(name string) (Config, error) {
	c := Default()
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PresetWormhole:
	case PresetClassic:
		c.Preset = PresetClassic
		c.Field.Particles = 500
		c.Field.Distribution = 200
		c.Scene.TubeRadius = 60
	default:
		return Config{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, name)
	}
	return c, nil
}

// Load decodes a TOML file over base. Keys not present in the file keep
// their base value; unknown keys are an error.
func Load(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Decode(data, base)
}

func Decode(data []byte, base Config) (Config, error) {
	c := base
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// Encode renders c as TOML, e.g. to seed a user config file.
func Encode(c Config) ([]byte, error) {
	return toml.Marshal(c)
}

// ApplyEnv overrides fields from WORMHOLE_* variables. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("WORMHOLE_SEED"); ok && v != "" {
		s, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: WORMHOLE_SEED: %v", ErrInvalidConfig, err)
		}
		c.Field.Seed = s
	}
	if v, ok := lookup("WORMHOLE_PARTICLES"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: WORMHOLE_PARTICLES: %v", ErrInvalidConfig, err)
		}
		c.Field.Particles = n
	}
	return nil
}

func (c Config) Validate() error {
	switch {
	case c.Field.Particles <= 0:
		return fmt.Errorf("%w: field.particles must be positive, got %d", ErrInvalidConfig, c.Field.Particles)
	case !flight.ValidDistribution(c.Field.Distribution):
		return fmt.Errorf("%w: field.distribution must be in (0, %d], got %g", ErrInvalidConfig, flight.MaxDistribution, c.Field.Distribution)
	case c.Field.Drift != [3]float32{0, 0, c.Rush.SlowSpeed}:
		// The rush takes over from the drift at rush.start; any other drift
		// makes particle velocity jump there.
		return fmt.Errorf("%w: field.drift %v must equal [0, 0, rush.slow_speed] = [0, 0, %g]", ErrInvalidConfig, c.Field.Drift, c.Rush.SlowSpeed)
	case c.Rush.End >= c.Rush.Start:
		return fmt.Errorf("%w: rush.end (%g) must be below rush.start (%g)", ErrInvalidConfig, c.Rush.End, c.Rush.Start)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera near/far must satisfy 0 < near < far, got %g/%g", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("%w: camera.fov out of range: %g", ErrInvalidConfig, c.Camera.FOV)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	return nil
}

func (c Config) Bounds() flight.Bounds {
	return flight.Bounds{
		RushStart: c.Rush.Start,
		RushEnd:   c.Rush.End,
		SlowSpeed: c.Rush.SlowSpeed,
		FastSpeed: c.Rush.FastSpeed,
		SlowSpin:  c.Rush.SlowSpin,
		FastSpin:  c.Rush.FastSpin,
		Clamp:     c.Rush.Clamp,
	}
}

func (c Config) InputTuning() flight.InputTuning {
	return flight.InputTuning{
		WheelScale: c.Input.WheelScale,
		MouseScale: c.Input.MouseScale,
		Ease:       c.Input.Ease,
	}
}

func (c Config) Drift() mgl32.Vec3 { return mgl32.Vec3(c.Field.Drift) }
func (c Config) CameraStart() mgl32.Vec3 { return mgl32.Vec3(c.Camera.Start) }

func (c Config) Lens() scene.Camera {
	return scene.Camera{FOV: c.Camera.FOV, Near: c.Camera.Near, Far: c.Camera.Far}
}

// SceneOptions sizes the tube to span the whole particle volume.
func (c Config) SceneOptions() scene.Options {
	return scene.Options{
		TubeRadius: c.Scene.TubeRadius,
		TubeLength: 2 * c.Field.Distribution,
		CraftSpin:  c.Scene.CraftSpin,
	}
}
