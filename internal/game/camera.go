package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"lunarfolio/internal/sim"
)

const (
	FieldOfView = 75.0 // degrees, vertical
	NearPlane   = 0.1
	FarPlane    = 1000.0
)

// Camera turns the simulation camera into GL matrices for one framebuffer.
type Camera struct {
	View, Proj, ViewProj mgl32.Mat4
	Eye                  mgl32.Vec3

	fbW, fbH      int
	pixelsPerUnit float32

	// Screen shake.
	ShakeX, ShakeY, ShakeZ float64 // current offset in world units
	ShakeTimer             float64 // remaining shake time
	ShakeIntensity         float64 // max offset magnitude
}

func vec3(v sim.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// Update rebuilds the matrices from the simulation camera with shake applied.
func (c *Camera) Update(sc *sim.Camera, fbW, fbH int) {
	c.fbW, c.fbH = fbW, fbH
	aspect := float32(fbW) / float32(fbH)
	c.Eye = vec3(sc.Position).Add(mgl32.Vec3{float32(c.ShakeX), float32(c.ShakeY), float32(c.ShakeZ)})
	target := vec3(sc.Target)
	if target.Sub(c.Eye).Len() < 1e-4 {
		target = c.Eye.Add(mgl32.Vec3{0, 0, -1})
	}
	c.View = mgl32.LookAtV(c.Eye, target, mgl32.Vec3{0, 1, 0})
	c.Proj = mgl32.Perspective(mgl32.DegToRad(FieldOfView), aspect, NearPlane, FarPlane)
	c.ViewProj = c.Proj.Mul4(c.View)
	c.pixelsPerUnit = float32(fbH) / (2 * float32(math.Tan(float64(mgl32.DegToRad(FieldOfView))/2)))
}

// PixelsPerUnit is the on-screen size of one world unit at distance 1.
func (c *Camera) PixelsPerUnit() float32 { return c.pixelsPerUnit }

// Project maps a world point to framebuffer pixels (origin top-left) and
// returns its view depth. ok is false for points behind the camera.
func (c *Camera) Project(p sim.Vec3) (x, y, depth float32, ok bool) {
	clip := c.ViewProj.Mul4x1(vec3(p).Vec4(1))
	w := clip.W()
	if w <= NearPlane {
		return 0, 0, 0, false
	}
	nx, ny := clip.X()/w, clip.Y()/w
	x = (nx*0.5 + 0.5) * float32(c.fbW)
	y = (0.5 - ny*0.5) * float32(c.fbH)
	return x, y, w, true
}

// AddShake triggers screen shake with given intensity and duration.
func (c *Camera) AddShake(intensity, duration float64) {
	if intensity > c.ShakeIntensity {
		c.ShakeIntensity = intensity
	}
	if duration > c.ShakeTimer {
		c.ShakeTimer = duration
	}
}

// UpdateShake decays shake and computes random offsets.
func (c *Camera) UpdateShake(dt float64, seed uint64) {
	if c.ShakeTimer <= 0 {
		c.ShakeX, c.ShakeY, c.ShakeZ = 0, 0, 0
		c.ShakeIntensity = 0
		return
	}
	c.ShakeTimer -= dt
	if c.ShakeTimer < 0 {
		c.ShakeTimer = 0
	}
	t := c.ShakeTimer
	rr := sim.NewRand(seed ^ uint64(t*10000))
	mag := c.ShakeIntensity * (t / (t + 0.08))
	c.ShakeX = rr.RangeF(-mag, mag)
	c.ShakeY = rr.RangeF(-mag, mag) * 0.5
	c.ShakeZ = rr.RangeF(-mag, mag)
}
