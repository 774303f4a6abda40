package sim

import "math"

// Simulation runs in fixed frames; all per-frame constants below assume this rate.
const (
	FrameRate     = 60
	FrameDuration = 1.0 / FrameRate
	MaxFrameDelta = 0.1 // wall-clock dt clamp, seconds
)

// World bounds (square, centred on the origin).
const WorldBound = 45.0

// Per-frame speed below this snaps to zero while coasting.
const SpeedEpsilon = 0.001

// BodyTuning holds the fixed kinematic constants of one controllable body.
// Speeds are world units per frame, turn rate is radians per frame.
type BodyTuning struct {
	Acceleration float64
	Deceleration float64
	MaxSpeed     float64
	TurnRate     float64
}

// ProximityTuning holds the panel trigger thresholds and smoothing.
type ProximityTuning struct {
	InfoDistance      float64
	CuriosityDistance float64
	RingDistance      float64
	MinOpacity        float64
	RevealScale       float64
	SmoothRate        float64
}

// CameraTuning holds follow and orbit parameters.
type CameraTuning struct {
	FollowOffset     Vec3
	FollowLerp       float64
	LookHeight       float64
	OrbitMinDistance float64
	OrbitMaxDistance float64
	OrbitMaxPolar    float64
	OrbitDamping     float64
}

// Tuning is every constant the simulation reads. DefaultTuning matches the
// shipped scene; config may override individual values.
type Tuning struct {
	Vehicle BodyTuning
	Avatar  BodyTuning

	JumpVelocity        float64
	Gravity             float64
	InteractionDistance float64
	ExitOffset          Vec3
	Bound               float64

	Proximity ProximityTuning
	Camera    CameraTuning
}

func DefaultTuning() Tuning {
	return Tuning{
		Vehicle: BodyTuning{
			Acceleration: 0.004,
			Deceleration: 0.0015,
			MaxSpeed:     0.07,
			TurnRate:     0.05,
		},
		Avatar: BodyTuning{
			Acceleration: 0.008,
			Deceleration: 0.002,
			MaxSpeed:     0.06,
			TurnRate:     0.08,
		},
		JumpVelocity:        0.1,
		Gravity:             0.01,
		InteractionDistance: 2,
		ExitOffset:          Vec3{X: 2},
		Bound:               WorldBound,
		Proximity: ProximityTuning{
			InfoDistance:      10,
			CuriosityDistance: 5,
			RingDistance:      10,
			MinOpacity:        0.5,
			RevealScale:       0.1,
			SmoothRate:        0.1,
		},
		Camera: CameraTuning{
			FollowOffset:     Vec3{Y: 5, Z: -10},
			FollowLerp:       0.05,
			LookHeight:       1,
			OrbitMinDistance: 5,
			OrbitMaxDistance: 20,
			OrbitMaxPolar:    math.Pi/2 - 0.1, // polar angle from +Y
			OrbitDamping:     0.05,
		},
	}
}
