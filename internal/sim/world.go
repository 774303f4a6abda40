// Package sim holds the frame-stepped simulation: the two controllable
// bodies, panel proximity, the camera rig and decorative effects.
package sim

// ActiveEntity is which body currently receives input.
type ActiveEntity int

const (
	DrivingVehicle ActiveEntity = iota
	WalkingAvatar
)

func (a ActiveEntity) String() string {
	if a == WalkingAvatar {
		return "walking"
	}
	return "driving"
}

// World owns all mutable simulation state. It is driven from exactly one
// frame loop and is never shared between goroutines.
type World struct {
	Tuning Tuning

	Vehicle Body
	Avatar  Body
	State   ActiveEntity

	Panels []*Panel
	Camera Camera

	Keys    *Keys
	Effects *Effects
	Events  *EventBus

	Frame uint64
	Time  float64 // simulated seconds

	acc float64
}

// NewWorld places both bodies at the origin facing +Z, starting in the vehicle.
func NewWorld(t Tuning, panels []*Panel) *World {
	return &World{
		Tuning:  t,
		Vehicle: Body{Kind: BodyVehicle, Tuning: t.Vehicle},
		Avatar:  Body{Kind: BodyAvatar, Tuning: t.Avatar},
		State:   DrivingVehicle,
		Panels:  panels,
		Camera:  NewCamera(t.Camera),
		Keys:    NewKeys(nil),
		Effects: NewEffects(),
		Events:  NewEventBus(),
	}
}

// Active returns the body currently receiving input.
func (w *World) Active() *Body {
	if w.State == WalkingAvatar {
		return &w.Avatar
	}
	return &w.Vehicle
}

func (w *World) Driving() bool { return w.State == DrivingVehicle }

// CanEnter reports whether an enter command would be accepted now.
func (w *World) CanEnter() bool {
	return w.State == WalkingAvatar &&
		w.Avatar.Position.Dist(w.Vehicle.Position) <= w.Tuning.InteractionDistance
}

// EnterVehicle switches control to the vehicle. It is a no-op while already
// driving or when the avatar is out of interaction range.
func (w *World) EnterVehicle() bool {
	if w.State != WalkingAvatar {
		return false
	}
	d := w.Avatar.Position.Dist(w.Vehicle.Position)
	if d > w.Tuning.InteractionDistance {
		w.emit(Event{Type: EventEnterRejected, Position: w.Avatar.Position, Distance: d})
		return false
	}
	w.Avatar.Speed = 0
	w.Avatar.Ground()
	w.State = DrivingVehicle
	w.emit(Event{Type: EventVehicleEntered, Position: w.Vehicle.Position})
	return true
}

// ExitVehicle puts the avatar beside the vehicle, facing the same way.
func (w *World) ExitVehicle() bool {
	if w.State != DrivingVehicle {
		return false
	}
	v := &w.Vehicle
	w.Avatar.Position = v.Position.Add(w.Tuning.ExitOffset.RotateY(v.Heading))
	w.Avatar.Heading = v.Heading
	w.Avatar.Speed = 0
	w.Avatar.Ground()
	w.Avatar.ClampTo(w.Tuning.Bound)
	v.Speed = 0
	w.State = WalkingAvatar
	w.emit(Event{Type: EventVehicleExited, Position: w.Avatar.Position})
	return true
}

// ToggleVehicle enters or exits depending on the current state.
func (w *World) ToggleVehicle() bool {
	if w.State == DrivingVehicle {
		return w.ExitVehicle()
	}
	return w.EnterVehicle()
}

func (w *World) ToggleCamera() CameraMode {
	m := w.Camera.Toggle()
	w.emit(Event{Type: EventCameraMode, Mode: m, Position: w.Camera.Position})
	return m
}

// Advance runs as many fixed frames as dt covers and returns how many ran.
// dt is clamped so a stalled host does not fast-forward the scene.
func (w *World) Advance(dt float64) int {
	if dt > MaxFrameDelta {
		dt = MaxFrameDelta
	}
	if dt > 0 {
		w.acc += dt
	}
	n := 0
	for w.acc >= FrameDuration-1e-9 {
		w.acc -= FrameDuration
		w.Step()
		n++
	}
	if w.acc < 0 {
		w.acc = 0
	}
	return n
}

// Step advances exactly one frame.
func (w *World) Step() {
	k := w.Keys
	if k.Consume(ActionToggleCamera) {
		w.ToggleCamera()
	}
	if k.Consume(ActionToggleVehicle) {
		w.ToggleVehicle()
	}
	if k.Consume(ActionJump) && w.State == WalkingAvatar {
		if w.Avatar.Jump(w.Tuning.JumpVelocity) {
			w.emit(Event{Type: EventJumped, Position: w.Avatar.Position})
		}
	}

	b := w.Active()
	b.Drive(k.Held(ActionForward), k.Held(ActionBack), k.Held(ActionLeft), k.Held(ActionRight))
	b.Integrate(w.Tuning.Bound)
	if b.Kind == BodyAvatar && b.Fall(w.Tuning.Gravity) {
		w.emit(Event{Type: EventLanded, Position: b.Position})
	}

	w.evaluatePanels(b.Position)
	w.Camera.Follow(b.Position, b.Heading)
	w.Effects.Tick(FrameDuration)

	w.Frame++
	w.Time += FrameDuration
}

func (w *World) evaluatePanels(from Vec3) {
	for _, p := range w.Panels {
		switch p.Evaluate(from, w.Tuning.Proximity) {
		case 1:
			w.emit(Event{Type: EventPanelShown, Panel: p, Position: p.Position})
		case -1:
			w.emit(Event{Type: EventPanelHidden, Panel: p, Position: p.Position})
		}
	}
}

func (w *World) emit(e Event) {
	e.Frame = w.Frame
	w.Events.Emit(e)
}

// VisiblePanels appends the currently visible panels to dst.
func (w *World) VisiblePanels(dst []*Panel) []*Panel {
	dst = dst[:0]
	for _, p := range w.Panels {
		if p.Visible {
			dst = append(dst, p)
		}
	}
	return dst
}
