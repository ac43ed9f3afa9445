//go:build !android

package game

import (
	"context"
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"wormhole/internal/audio"
	"wormhole/internal/config"
	"wormhole/internal/flight"
	"wormhole/internal/scene"
)

type Options struct {
	Mute bool
}

// desktopHost is the glfw/GL side of the flight loop.
type desktopHost struct {
	window *glfw.Window
	rend   *Renderer
	input  *Input
	fc     *flight.FrameContext
	sc     *scene.Scene
	lens   scene.Camera
	drone  *audio.Drone
	cfg    config.Config
}

func (h *desktopHost) BeginFrame() {
	glfw.PollEvents()
	if h.window.GetKey(glfw.KeyEscape) == glfw.Press {
		h.window.SetShouldClose(true)
	}
	if h.input.JustPressed(h.window, glfw.KeyR) {
		h.fc.SetCameraPosition(h.cfg.CameraStart())
	}
}

func (h *desktopHost) Done() bool { return h.window.ShouldClose() }

func (h *desktopHost) Render(f *flight.Frame) error {
	fbW, fbH := h.window.GetFramebufferSize()
	if fbW <= 0 || fbH <= 0 {
		return nil
	}
	if f.Dirty {
		h.rend.UploadPositions(f.Positions)
	}
	if h.drone != nil {
		h.drone.Start()
		h.drone.SetIntensity(float64(f.Decision.Magnitude / h.cfg.Rush.FastSpeed))
	}

	view := scene.View(f.State.CameraPos, f.State.CameraRot)
	proj := h.lens.Projection(float32(fbW) / float32(fbH))

	h.rend.BeginFrame(fbW, fbH)
	h.rend.DrawObjects(h.sc.Objects(), h.sc, view, proj)
	h.rend.DrawPoints(view, proj, h.cfg.Window.PointSize, fbH)

	h.window.SwapBuffers()
	if err := gl.GetError(); err != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", err)
	}
	return nil
}

// RunDesktop opens the window and flies until the window closes or ctx is
// cancelled. It must be called from the main goroutine with the OS thread
// locked.
func RunDesktop(ctx context.Context, cfg config.Config, opts Options) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	window, err := initWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Printf("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.Enable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0.005, 0.005, 0.02, 1.0)

	field, err := flight.NewField(cfg.Field.Particles, cfg.Field.Distribution, cfg.Drift(), flight.NewRand(cfg.Field.Seed))
	if err != nil {
		return err
	}
	log.Printf("field: %d particles, distribution %g, seed %d", field.Len(), field.Distribution(), cfg.Field.Seed)

	rend, err := NewRenderer(field.Len())
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	sc := scene.New(cfg.SceneOptions())
	for _, o := range sc.Objects() {
		rend.UploadMesh(o.Mesh)
	}

	var drone *audio.Drone
	if cfg.Audio.Enabled && !opts.Mute {
		drone, err = audio.NewDrone(cfg.Audio.Volume)
		if err != nil {
			log.Printf("audio init failed (continuing without sound): %v", err)
			drone = nil
		} else {
			defer drone.Close()
		}
	}

	fc := flight.NewFrameContext(cfg.CameraStart(), cfg.Window.Width, cfg.Window.Height, cfg.InputTuning())
	bindInput(window, fc)

	host := &desktopHost{
		window: window,
		rend:   rend,
		input:  NewInput(),
		fc:     fc,
		sc:     sc,
		lens:   cfg.Lens(),
		drone:  drone,
		cfg:    cfg,
	}
	loop := flight.NewLoop(fc, flight.NewController(field, cfg.Bounds()))
	loop.Attach(sc)
	if err := loop.Run(ctx, host); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
