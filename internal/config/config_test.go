package config_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wormhole/internal/config"
	"wormhole/internal/flight"
)

func TestDefault(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 2000, c.Field.Particles)
	assert.Equal(t, float32(2000), c.Field.Distribution)
	assert.Equal(t, flight.DefaultDrift, c.Drift())
	assert.Equal(t, flight.DefaultBounds(), c.Bounds())
	assert.Equal(t, flight.DefaultInputTuning(), c.InputTuning())
	assert.Equal(t, mgl32.Vec3{0, 50, 120}, c.CameraStart())
	assert.Equal(t, float32(4000), c.SceneOptions().TubeLength)
}

func TestPreset(t *testing.T) {
	c, err := config.Preset("classic")
	require.NoError(t, err)
	assert.Equal(t, 500, c.Field.Particles)
	assert.Equal(t, float32(200), c.Field.Distribution)

	c, err = config.Preset("")
	require.NoError(t, err)
	assert.Equal(t, config.PresetWormhole, c.Preset)

	_, err = config.Preset("nebula")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestDecodeOverridesOnlyGivenKeys(t *testing.T) {
	src := []byte(`
[field]
particles = 750
drift = [0.0, 0.0, 0.5]

[rush]
clamp = true
slow_speed = 0.5
fast_speed = 80.0
`)
	c, err := config.Decode(src, config.Default())
	require.NoError(t, err)
	assert.Equal(t, 750, c.Field.Particles)
	assert.Equal(t, float32(2000), c.Field.Distribution)
	assert.Equal(t, mgl32.Vec3{0, 0, 0.5}, c.Drift())
	assert.True(t, c.Bounds().Clamp)
	assert.Equal(t, float32(80), c.Bounds().FastSpeed)
	assert.Equal(t, float32(200), c.Bounds().RushStart)
	require.NoError(t, c.Validate())
}

func TestDecodedConfigKeepsRegimeBoundaryContinuous(t *testing.T) {
	src := []byte(`
[field]
particles = 30
distribution = 200.0
drift = [0.0, 0.0, 0.5]

[rush]
slow_speed = 0.5
`)
	c, err := config.Decode(src, config.Default())
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	f, err := flight.NewField(c.Field.Particles, c.Field.Distribution, c.Drift(), flight.NewRand(3))
	require.NoError(t, err)
	ctrl := flight.NewController(f, c.Bounds())

	ctrl.Step(c.Rush.Start)
	atStart := f.Velocity(0)
	ctrl.Step(c.Rush.Start - 1e-3)
	justInside := f.Velocity(0)
	assert.InDelta(t, atStart.Z(), justInside.Z(), 1e-3)
	assert.Equal(t, atStart.X(), justInside.X())
	assert.Equal(t, atStart.Y(), justInside.Y())
}

func TestValidateRejectsDriftThatSkipsAtRushStart(t *testing.T) {
	c, err := config.Decode([]byte("[field]\ndrift = [0.0, 0.0, 0.5]\n"), config.Default())
	require.NoError(t, err)
	assert.ErrorIs(t, c.Validate(), config.ErrInvalidConfig)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := config.Decode([]byte("[field]\nparticle = 3\n"), config.Default())
	assert.Error(t, err)
}

func TestLoadRoundTrip(t *testing.T) {
	c := config.Default()
	c.Field.Seed = 99
	data, err := config.Encode(c)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "wormhole.toml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	got, err := config.Load(path, config.Default())
	require.NoError(t, err)
	assert.Equal(t, c, got)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.toml"), config.Default())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"WORMHOLE_SEED":      "1234",
		"WORMHOLE_PARTICLES": "64",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	c := config.Default()
	require.NoError(t, c.ApplyEnv(lookup))
	assert.Equal(t, uint64(1234), c.Field.Seed)
	assert.Equal(t, 64, c.Field.Particles)

	env["WORMHOLE_SEED"] = "abc"
	assert.ErrorIs(t, c.ApplyEnv(lookup), config.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{"no particles", func(c *config.Config) { c.Field.Particles = 0 }},
		{"no volume", func(c *config.Config) { c.Field.Distribution = -1 }},
		{"nan volume", func(c *config.Config) { c.Field.Distribution = float32(math.NaN()) }},
		{"huge volume", func(c *config.Config) { c.Field.Distribution = flight.MaxDistribution * 4 }},
		{"sideways drift", func(c *config.Config) { c.Field.Drift[0] = 0.1 }},
		{"inverted rush", func(c *config.Config) { c.Rush.End = 300 }},
		{"far before near", func(c *config.Config) { c.Camera.Far = 0.01 }},
		{"fov", func(c *config.Config) { c.Camera.FOV = 180 }},
		{"window", func(c *config.Config) { c.Window.Height = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := config.Default()
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), config.ErrInvalidConfig)
		})
	}
}
