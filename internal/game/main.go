// Package game is the windowed OpenGL frontend.
package game

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"

	"lunarfolio/internal/config"
	"lunarfolio/internal/scene"
	"lunarfolio/internal/sim"
	"lunarfolio/internal/view"
)

// RunDesktop opens the window and runs the frame loop until the window is
// closed or Escape is pressed.
func RunDesktop(cfg *config.Config, log zerolog.Logger, sc *scene.Scene, w *sim.World) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	window, err := initWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Info().
		Str("renderer", gl.GoStr(gl.GetString(gl.RENDERER))).
		Str("version", gl.GoStr(gl.GetString(gl.VERSION))).
		Msg("gl ready")

	if cfg.Audio.Enabled {
		audio, err := NewAudio(cfg.Audio.Volume)
		if err != nil {
			log.Warn().Err(err).Msg("audio init failed, continuing without sound")
		} else {
			defer audio.Close()
			audio.Subscribe(w.Events)
			audio.StartDrone()
		}
	}

	// GL state.
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.MULTISAMPLE)
	gl.Disable(gl.CULL_FACE)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()
	if err := rend.InitFont(); err != nil {
		return fmt.Errorf("font: %w", err)
	}

	var static view.Batch
	view.Static(&static, sc)
	rend.SetStatic(&static)
	log.Debug().
		Int("lines", static.LineCount()).
		Int("points", static.PointCount()).
		Msg("static geometry uploaded")

	var cam Camera
	w.Events.Subscribe(sim.EventLanded, func(sim.Event) { cam.AddShake(0.06, 0.15) })
	w.Events.Subscribe(sim.EventVehicleEntered, func(sim.Event) { cam.AddShake(0.12, 0.25) })

	input := NewInput()
	input.Attach(window, w.Keys)
	showHelp := true

	// Reusable per-frame buffers.
	var dyn view.Batch
	var labels []view.Label

	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > sim.MaxFrameDelta {
			dt = sim.MaxFrameDelta
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}
		if input.JustPressed(window, glfw.KeyF1) {
			showHelp = !showHelp
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		input.Apply(&w.Camera)
		w.Advance(dt)

		cam.UpdateShake(dt, sc.Seed^uint64(now*1000))
		cam.Update(&w.Camera, fbW, fbH)

		dyn.Reset()
		view.Dynamic(&dyn, sc, w)
		labels = view.Labels(sc, labels)

		rend.BeginFrame(fbW, fbH)
		rend.DrawScene(&cam, &dyn)
		rend.DrawLabels(&cam, labels, fbW, fbH)
		RenderHUD(rend, w, showHelp, fbW, fbH)

		window.SwapBuffers()
	}

	log.Info().Uint64("frames", w.Frame).Float64("seconds", w.Time).Msg("window closed")
	return nil
}
