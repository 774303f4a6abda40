package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamera_StartsInOrbit(t *testing.T) {
	c := NewCamera(DefaultTuning().Camera)
	assert.Equal(t, OrbitMode, c.Mode)
	assert.InDelta(t, 0, c.Position.X, 1e-12)
	assert.InDelta(t, 5, c.Position.Y, 1e-12)
	assert.InDelta(t, 10, c.Position.Z, 1e-12)
}

func TestCamera_ToggleCycles(t *testing.T) {
	c := NewCamera(DefaultTuning().Camera)
	assert.Equal(t, FollowMode, c.Toggle())
	assert.Equal(t, OrbitMode, c.Toggle())
	assert.Equal(t, FollowMode, c.Toggle())
}

func TestCamera_OrbitTargetsBody(t *testing.T) {
	c := NewCamera(DefaultTuning().Camera)
	pos := V3(3, 0, -4)
	c.Follow(pos, 1.2)
	assert.Equal(t, pos, c.Target)
	// The orbit radius is preserved around the new target.
	assert.InDelta(t, c.Distance, c.Position.Dist(c.Target), 1e-9)
}

func TestCamera_OrbitClampsDistanceAndPolar(t *testing.T) {
	tun := DefaultTuning().Camera
	c := NewCamera(tun)
	c.Orbit(0, 10, 100)
	for i := 0; i < 2000; i++ {
		c.Follow(Vec3{}, 0)
	}
	assert.InDelta(t, tun.OrbitMaxDistance, c.Distance, 1e-6)
	assert.Less(t, c.Pitch, math.Pi/2)

	c.Orbit(0, -10, -100)
	for i := 0; i < 2000; i++ {
		c.Follow(Vec3{}, 0)
	}
	assert.InDelta(t, tun.OrbitMinDistance, c.Distance, 1e-6)
	assert.InDelta(t, math.Pi/2-tun.OrbitMaxPolar, c.Pitch, 1e-6)
	assert.Greater(t, c.Position.Y, 0.0, "camera stays above the ground")
}

func TestCamera_OrbitInputIgnoredInFollow(t *testing.T) {
	c := NewCamera(DefaultTuning().Camera)
	c.Toggle()
	before := c.desiredYaw
	c.Orbit(1, 0, 0)
	assert.Equal(t, before, c.desiredYaw)
}

func TestCamera_FollowLerpsBehindBody(t *testing.T) {
	tun := DefaultTuning().Camera
	c := NewCamera(tun)
	c.Toggle()
	start := c.Position
	pos := V3(10, 0, 10)
	heading := math.Pi / 2

	c.Follow(pos, heading)
	desired := pos.Add(tun.FollowOffset.RotateY(heading))
	want := start.Lerp(desired, tun.FollowLerp)
	assert.InDelta(t, want.X, c.Position.X, 1e-12)
	assert.InDelta(t, want.Y, c.Position.Y, 1e-12)
	assert.InDelta(t, want.Z, c.Position.Z, 1e-12)
	assert.Equal(t, V3(10, 1, 10), c.Target)

	for i := 0; i < 1000; i++ {
		c.Follow(pos, heading)
	}
	// Behind a body facing +X is -X.
	require.InDelta(t, 0, c.Position.Dist(V3(0, 5, 10)), 1e-6)
}

func TestCamera_ReturnToOrbitIsContinuous(t *testing.T) {
	c := NewCamera(DefaultTuning().Camera)
	c.Toggle()
	for i := 0; i < 50; i++ {
		c.Follow(V3(5, 0, 5), 0.3)
	}
	before := c.Position
	c.Toggle()
	c.Follow(c.Target, 0)
	assert.InDelta(t, 0, c.Position.Dist(before), 0.5)
}
