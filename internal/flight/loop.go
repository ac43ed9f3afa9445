package flight

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Frame is what the loop hands to the host each iteration. Positions aliases
// the field's buffer; Dirty is always true after Advance because every
// element moves every frame.
type Frame struct {
	Index     uint64
	Positions []float32
	Dirty     bool
	Decision  Decision
	State     FrameState
}

// Host is the platform side of the loop: event pumping and drawing.
type Host interface {
	// BeginFrame pumps pending input so the FrameContext is final for the frame.
	BeginFrame()
	Render(f *Frame) error
	Done() bool
}

// Spinner is scenery that turns by the frame's spin increment.
type Spinner interface {
	Update(spin float32)
}

// Loop drives input easing, the flight controller, the field and the host in
// that order, one frame per iteration, until stopped.
type Loop struct {
	fc    *FrameContext
	ctrl  *Controller
	field *Field

	spinners []Spinner

	stop  atomic.Bool
	frame Frame
}

func NewLoop(fc *FrameContext, ctrl *Controller) *Loop {
	return &Loop{fc: fc, ctrl: ctrl, field: ctrl.Field()}
}

// Stop makes Run return before its next frame. Safe from any goroutine.
func (l *Loop) Stop() { l.stop.Store(true) }

// Attach registers s to be turned on every Step, after the field advances
// and before the host renders.
func (l *Loop) Attach(s Spinner) { l.spinners = append(l.spinners, s) }

func (l *Loop) Stopped() bool { return l.stop.Load() }

// Step runs one frame without a host and returns it. The returned Frame is
// reused by the next Step.
func (l *Loop) Step() *Frame {
	l.fc.Ease()
	st := l.fc.Snapshot()
	d := l.ctrl.Step(st.CameraPos.Z())
	l.field.Advance()
	for _, s := range l.spinners {
		s.Update(d.Spin)
	}

	l.frame.Index++
	l.frame.Positions = l.field.Positions()
	l.frame.Dirty = l.field.Dirty()
	l.frame.Decision = d
	l.frame.State = st
	return &l.frame
}

// Run loops until Stop, host.Done or ctx cancellation. Only a render error or
// cancellation is returned.
func (l *Loop) Run(ctx context.Context, host Host) error {
	for {
		if l.stop.Load() || host.Done() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		host.BeginFrame()
		f := l.Step()
		if err := host.Render(f); err != nil {
			return fmt.Errorf("render frame %d: %w", f.Index, err)
		}
		l.field.MarkClean()
	}
}
