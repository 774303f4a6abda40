package sim

// BodyKind distinguishes the two controllable bodies.
type BodyKind int

const (
	BodyVehicle BodyKind = iota
	BodyAvatar
)

func (k BodyKind) String() string {
	if k == BodyAvatar {
		return "avatar"
	}
	return "vehicle"
}

// Body is a controllable kinematic entity.
type Body struct {
	Kind     BodyKind
	Position Vec3
	Heading  float64 // radians about +Y; 0 faces +Z
	Speed    float64 // world units per frame, signed

	// Avatar only.
	Airborne bool
	VelY     float64

	Tuning BodyTuning
}

// Drive applies one frame of throttle and steering.
// forward takes priority over back when both are held.
func (b *Body) Drive(forward, back, left, right bool) {
	t := b.Tuning
	switch {
	case forward:
		b.Speed += t.Acceleration
	case back:
		b.Speed -= t.Acceleration
	default:
		b.Speed = approach(b.Speed, 0, t.Deceleration)
		if b.Speed > -SpeedEpsilon && b.Speed < SpeedEpsilon {
			b.Speed = 0
		}
	}
	b.Speed = clampF(b.Speed, -t.MaxSpeed/2, t.MaxSpeed)

	if left {
		b.Heading += t.TurnRate
	}
	if right {
		b.Heading -= t.TurnRate
	}
}

// Integrate advances the ground position by the current speed and clamps
// it to the square world bound.
func (b *Body) Integrate(bound float64) {
	b.Position = b.Position.Add(Forward(b.Heading).Scale(b.Speed))
	b.ClampTo(bound)
}

// ClampTo is a hard wall on both horizontal axes.
func (b *Body) ClampTo(bound float64) {
	b.Position.X = clampF(b.Position.X, -bound, bound)
	b.Position.Z = clampF(b.Position.Z, -bound, bound)
}

// Jump starts a jump. It reports false when already airborne.
func (b *Body) Jump(velocity float64) bool {
	if b.Airborne {
		return false
	}
	b.Airborne = true
	b.VelY = velocity
	return true
}

// Fall advances the vertical motion of an airborne body and reports whether
// it landed this frame.
func (b *Body) Fall(gravity float64) bool {
	if !b.Airborne {
		return false
	}
	b.Position.Y += b.VelY
	b.VelY -= gravity
	if b.Position.Y <= 0 {
		b.Position.Y = 0
		b.VelY = 0
		b.Airborne = false
		return true
	}
	return false
}

// Ground cancels any jump and puts the body on the surface.
func (b *Body) Ground() {
	b.Position.Y = 0
	b.VelY = 0
	b.Airborne = false
}
