package flight_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wormhole/internal/flight"
)

type fakeHost struct {
	frames  int
	limit   int
	begins  int
	dirty   []bool
	regimes []flight.Regime
	onFrame func(f *flight.Frame)
	err     error
}

func (h *fakeHost) BeginFrame() { h.begins++ }

func (h *fakeHost) Render(f *flight.Frame) error {
	h.frames++
	h.dirty = append(h.dirty, f.Dirty)
	h.regimes = append(h.regimes, f.Decision.Regime)
	if h.onFrame != nil {
		h.onFrame(f)
	}
	return h.err
}

func (h *fakeHost) Done() bool { return h.limit > 0 && h.frames >= h.limit }

func newLoop(t *testing.T, cameraZ float32) (*flight.Loop, *flight.FrameContext, *flight.Field) {
	t.Helper()
	f, err := flight.NewField(64, 200, flight.DefaultDrift, flight.NewRand(21))
	require.NoError(t, err)
	fc := flight.NewFrameContext(mgl32.Vec3{0, 50, cameraZ}, 800, 600, flight.DefaultInputTuning())
	return flight.NewLoop(fc, flight.NewController(f, flight.DefaultBounds())), fc, f
}

func TestLoopRunsUntilHostDone(t *testing.T) {
	l, _, f := newLoop(t, 300)
	host := &fakeHost{limit: 5}

	require.NoError(t, l.Run(context.Background(), host))
	assert.Equal(t, 5, host.frames)
	assert.Equal(t, 5, host.begins)
	for _, d := range host.dirty {
		assert.True(t, d)
	}
	assert.False(t, f.Dirty(), "loop marks the buffer clean after render")
}

func TestLoopStop(t *testing.T) {
	l, _, _ := newLoop(t, 300)
	host := &fakeHost{}
	host.onFrame = func(f *flight.Frame) {
		if f.Index == 3 {
			l.Stop()
		}
	}
	require.NoError(t, l.Run(context.Background(), host))
	assert.Equal(t, 3, host.frames)
	assert.True(t, l.Stopped())
}

func TestLoopContextCancel(t *testing.T) {
	l, _, _ := newLoop(t, 300)
	ctx, cancel := context.WithCancel(context.Background())
	host := &fakeHost{}
	host.onFrame = func(f *flight.Frame) {
		if f.Index == 2 {
			cancel()
		}
	}
	err := l.Run(ctx, host)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, host.frames)
}

func TestLoopRenderError(t *testing.T) {
	l, _, _ := newLoop(t, 300)
	boom := errors.New("boom")
	err := l.Run(context.Background(), &fakeHost{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestLoopFollowsCameraDepth(t *testing.T) {
	l, fc, f := newLoop(t, 300)
	host := &fakeHost{limit: 4}
	host.onFrame = func(fr *flight.Frame) {
		// Scroll into the tunnel after the first frame and back out after the third.
		switch fr.Index {
		case 1:
			fc.SetCameraPosition(mgl32.Vec3{0, 50, 0})
		case 3:
			fc.SetCameraPosition(mgl32.Vec3{0, 50, 250})
		}
	}
	require.NoError(t, l.Run(context.Background(), host))
	assert.Equal(t, []flight.Regime{
		flight.RegimeNormal,
		flight.RegimeWormholeRush,
		flight.RegimeWormholeRush,
		flight.RegimeNormal,
	}, host.regimes)
	for i := 0; i < f.Len(); i++ {
		assert.Equal(t, flight.DefaultDrift, f.Velocity(i))
	}
}

func TestLoopStepIsDeterministic(t *testing.T) {
	a, _, fa := newLoop(t, 0)
	b, _, fb := newLoop(t, 0)
	for range 30 {
		fra := a.Step()
		frb := b.Step()
		require.Equal(t, fra.Decision, frb.Decision)
	}
	assert.Equal(t, fa.Positions(), fb.Positions())
	assert.Same(t, &fa.Positions()[0], &a.Step().Positions[0])
}

type spinCounter struct {
	calls int
	total float32
}

func (s *spinCounter) Update(spin float32) {
	s.calls++
	s.total += spin
}

func TestLoopTurnsSpinnersOnSkippedFrames(t *testing.T) {
	l, fc, _ := newLoop(t, 0)
	spin := &spinCounter{}
	l.Attach(spin)

	var want float32
	host := &fakeHost{limit: 6}
	host.onFrame = func(fr *flight.Frame) {
		// Drawing nothing, as a minimised window does.
		want += fr.Decision.Spin
		if fr.Index == 3 {
			fc.SetCameraPosition(mgl32.Vec3{0, 50, 300})
		}
	}
	require.NoError(t, l.Run(context.Background(), host))
	assert.Equal(t, 6, spin.calls)
	assert.Equal(t, want, spin.total)
}
