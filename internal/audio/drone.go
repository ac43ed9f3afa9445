// Package audio plays the procedural engine drone that tracks rush speed.
package audio

import (
	"math"
	"sync/atomic"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// Drone is a looping two-oscillator hum. Pitch and loudness follow an
// intensity in [0, 1] set once per frame from the render loop.
type Drone struct {
	ctx    *oto.Context
	ready  chan struct{}
	player oto.Player
	src    *droneReader
}

// NewDrone opens the audio device. The player starts once the device is
// ready; until then Start is a no-op.
func NewDrone(volume float64) (*Drone, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	d := &Drone{ctx: ctx, ready: ready, src: &droneReader{}}
	d.src.volume.Store(math.Float64bits(volume))
	return d, nil
}

// Start begins playback if the device is ready and reports whether it did.
func (d *Drone) Start() bool {
	if d == nil || d.player != nil {
		return d != nil
	}
	select {
	case <-d.ready:
	default:
		return false
	}
	d.player = d.ctx.NewPlayer(d.src)
	d.player.Play()
	return true
}

// SetIntensity is lock-free; the audio goroutine picks it up on its next read.
func (d *Drone) SetIntensity(v float64) {
	if d == nil {
		return
	}
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	d.src.intensity.Store(math.Float64bits(v))
}

func (d *Drone) Close() error {
	if d == nil || d.player == nil {
		return nil
	}
	return d.player.Close()
}

type droneReader struct {
	intensity atomic.Uint64 // float64 bits
	volume    atomic.Uint64

	phase  float64
	phase2 float64
	level  float64 // smoothed intensity
}

func (r *droneReader) Read(p []byte) (int, error) {
	samples := len(p) / 8
	target := math.Float64frombits(r.intensity.Load())
	vol := math.Float64frombits(r.volume.Load())
	for i := 0; i < samples; i++ {
		// One-pole smoothing so regime changes glide instead of click.
		r.level += (target - r.level) * 0.0005
		freq := 42 + 140*r.level
		r.phase += freq / SampleRate
		r.phase2 += freq * 1.503 / SampleRate
		r.phase -= math.Floor(r.phase)
		r.phase2 -= math.Floor(r.phase2)

		sine := math.Sin(2 * math.Pi * r.phase)
		saw := 2*r.phase2 - 1
		gain := vol * (0.25 + 0.75*r.level)
		putStereoF32(p, i, softSat((sine*0.7+saw*0.18*r.level)*gain))
	}
	return samples * 8, nil
}

// softSat keeps the mix in [-1, 1] with a gentle knee.
func softSat(x float64) float64 {
	return math.Tanh(x)
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}
