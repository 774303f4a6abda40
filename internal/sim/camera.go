package sim

import "math"

// CameraMode is the global camera state.
type CameraMode int

const (
	OrbitMode CameraMode = iota
	FollowMode
)

// MinOrbitElevation keeps the orbit camera from looking straight down.
const MinOrbitElevation = 0.01

func (m CameraMode) String() string {
	if m == FollowMode {
		return "follow"
	}
	return "orbit"
}

// Camera is derived from the active body every frame. In OrbitMode the
// position comes from user orbit input around Target; in FollowMode it
// chases a point behind and above the body.
type Camera struct {
	Mode     CameraMode
	Position Vec3
	Target   Vec3 // look-at point

	// Orbit state, spherical around Target. Desired values are written by
	// input; current values ease toward them.
	Yaw, Pitch, Distance                      float64
	desiredYaw, desiredPitch, desiredDistance float64

	Tuning CameraTuning
}

// NewCamera places the camera at its start offset (0, 5, 10) from
// the origin, expressed as orbit angles.
func NewCamera(t CameraTuning) Camera {
	start := Vec3{Y: 5, Z: 10}
	dist := start.Len()
	pitch := math.Asin(start.Y / dist)
	c := Camera{
		Mode:     OrbitMode,
		Position: start,
		Yaw:      0,
		Pitch:    pitch,
		Distance: dist,
		Tuning:   t,
	}
	c.desiredYaw, c.desiredPitch, c.desiredDistance = c.Yaw, c.Pitch, c.Distance
	c.clampOrbit()
	return c
}

// Toggle flips between orbit and follow modes.
func (c *Camera) Toggle() CameraMode {
	if c.Mode == OrbitMode {
		c.Mode = FollowMode
	} else {
		c.Mode = OrbitMode
		c.syncOrbitFromPosition()
	}
	return c.Mode
}

// Orbit applies user drag/zoom input. Ignored outside OrbitMode.
func (c *Camera) Orbit(dYaw, dPitch, dDistance float64) {
	if c.Mode != OrbitMode {
		return
	}
	c.desiredYaw += dYaw
	c.desiredPitch += dPitch
	c.desiredDistance += dDistance
	c.clampOrbit()
}

// Follow updates the camera for one frame against a body transform.
func (c *Camera) Follow(pos Vec3, heading float64) {
	t := c.Tuning
	if c.Mode == OrbitMode {
		c.Target = pos
		c.Yaw = smooth(c.Yaw, c.desiredYaw, t.OrbitDamping)
		c.Pitch = smooth(c.Pitch, c.desiredPitch, t.OrbitDamping)
		c.Distance = smooth(c.Distance, c.desiredDistance, t.OrbitDamping)
		c.Position = c.Target.Add(orbitOffset(c.Yaw, c.Pitch, c.Distance))
		return
	}
	desired := pos.Add(t.FollowOffset.RotateY(heading))
	c.Position = c.Position.Lerp(desired, t.FollowLerp)
	c.Target = pos.Add(Vec3{Y: t.LookHeight})
}

func (c *Camera) clampOrbit() {
	t := c.Tuning
	c.desiredDistance = clampF(c.desiredDistance, t.OrbitMinDistance, t.OrbitMaxDistance)
	c.desiredPitch = clampF(c.desiredPitch, math.Pi/2-t.OrbitMaxPolar, math.Pi/2-MinOrbitElevation)
}

// syncOrbitFromPosition keeps the view continuous when returning to orbit
// mode from follow mode.
func (c *Camera) syncOrbitFromPosition() {
	off := c.Position.Sub(c.Target)
	d := off.Len()
	if d == 0 {
		return
	}
	c.Distance = d
	c.Pitch = math.Asin(clampF(off.Y/d, -1, 1))
	c.Yaw = math.Atan2(off.X, off.Z)
	c.desiredYaw, c.desiredPitch, c.desiredDistance = c.Yaw, c.Pitch, c.Distance
	c.clampOrbit()
}

// orbitOffset converts orbit angles to a camera offset from the target.
// Pitch is elevation above the ground plane.
func orbitOffset(yaw, pitch, dist float64) Vec3 {
	cp := math.Cos(pitch)
	return Vec3{
		X: dist * cp * math.Sin(yaw),
		Y: dist * math.Sin(pitch),
		Z: dist * cp * math.Cos(yaw),
	}
}
