package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"lunarfolio/internal/sim"
)

// Orbit sensitivity.
const (
	dragRadiansPerPixel = 0.005
	scrollUnitsPerStep  = 1.0
)

// keyNames maps physical keys to the names the simulation binds.
var keyNames = map[glfw.Key]string{
	glfw.KeyW:     "w",
	glfw.KeyA:     "a",
	glfw.KeyS:     "s",
	glfw.KeyD:     "d",
	glfw.KeyE:     "e",
	glfw.KeyC:     "c",
	glfw.KeySpace: "space",
	glfw.KeyUp:    "arrowup",
	glfw.KeyDown:  "arrowdown",
	glfw.KeyLeft:  "arrowleft",
	glfw.KeyRight: "arrowright",
}

type Input struct {
	prevKeys map[glfw.Key]bool

	dragging     bool
	prevCursorX  float64
	prevCursorY  float64
	pendingYaw   float64
	pendingPitch float64
	pendingZoom  float64
}

func NewInput() *Input {
	return &Input{
		prevKeys: make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Attach installs window callbacks that feed keys into the world's key set
// and collect orbit drags and scrolls until the next Apply.
func (in *Input) Attach(window *glfw.Window, keys *sim.Keys) {
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		name, ok := keyNames[key]
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			keys.KeyDown(name)
		case glfw.Release:
			keys.KeyUp(name)
		}
	})
	window.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if !focused {
			keys.Reset()
			in.dragging = false
		}
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, btn glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if btn != glfw.MouseButtonLeft {
			return
		}
		in.dragging = action == glfw.Press
		in.prevCursorX, in.prevCursorY = w.GetCursorPos()
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if in.dragging {
			in.pendingYaw -= (x - in.prevCursorX) * dragRadiansPerPixel
			in.pendingPitch += (y - in.prevCursorY) * dragRadiansPerPixel
		}
		in.prevCursorX, in.prevCursorY = x, y
	})
	window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		in.pendingZoom -= yoff * scrollUnitsPerStep
	})
}

// Apply hands the accumulated orbit input to the camera.
func (in *Input) Apply(cam *sim.Camera) {
	if in.pendingYaw != 0 || in.pendingPitch != 0 || in.pendingZoom != 0 {
		cam.Orbit(in.pendingYaw, in.pendingPitch, in.pendingZoom)
	}
	in.pendingYaw, in.pendingPitch, in.pendingZoom = 0, 0, 0
}
