// Package view turns the scene and world into frontend-neutral draw data:
// vertex batches for the GL renderer, labels, and HUD text.
package view

import (
	"math"

	"lunarfolio/internal/sim"
)

// Vertex layouts.
const (
	LineStride  = 7 // x, y, z, r, g, b, a
	PointStride = 8 // x, y, z, size, r, g, b, a
)

type Color struct {
	R, G, B, A float32
}

// Hex converts 0xRRGGBB to a colour with alpha a.
func Hex(rgb uint32, a float32) Color {
	return Color{
		R: float32((rgb>>16)&0xff) / 255,
		G: float32((rgb>>8)&0xff) / 255,
		B: float32(rgb&0xff) / 255,
		A: a,
	}
}

// Scale multiplies the RGB channels by k, clamped to 1.
func (c Color) Scale(k float32) Color {
	f := func(v float32) float32 { return float32(math.Min(1, float64(v*k))) }
	return Color{R: f(c.R), G: f(c.G), B: f(c.B), A: c.A}
}

// RGB packs the colour back to 0xRRGGBB, dropping alpha.
func (c Color) RGB() uint32 {
	q := func(v float32) uint32 { return uint32(math.Round(float64(v) * 255)) }
	return q(c.R)<<16 | q(c.G)<<8 | q(c.B)
}

func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

// Batch accumulates line-list, point-sprite and additive glow vertices.
type Batch struct {
	Lines  []float32
	Points []float32
	Glow   []float32
}

func (b *Batch) Reset() {
	b.Lines = b.Lines[:0]
	b.Points = b.Points[:0]
	b.Glow = b.Glow[:0]
}

func (b *Batch) LineCount() int  { return len(b.Lines) / LineStride / 2 }
func (b *Batch) PointCount() int { return len(b.Points) / PointStride }
func (b *Batch) GlowCount() int  { return len(b.Glow) / PointStride }

func (b *Batch) Line(p, q sim.Vec3, c Color) {
	b.Lines = append(b.Lines,
		float32(p.X), float32(p.Y), float32(p.Z), c.R, c.G, c.B, c.A,
		float32(q.X), float32(q.Y), float32(q.Z), c.R, c.G, c.B, c.A,
	)
}

// Point adds a round sprite; size is in world units.
func (b *Batch) Point(p sim.Vec3, size float32, c Color) {
	b.Points = append(b.Points, float32(p.X), float32(p.Y), float32(p.Z), size, c.R, c.G, c.B, c.A)
}

// GlowAt adds an additive radial light. RGB should be pre-multiplied by the
// desired brightness.
func (b *Batch) GlowAt(p sim.Vec3, size float32, c Color) {
	b.Glow = append(b.Glow, float32(p.X), float32(p.Y), float32(p.Z), size, c.R, c.G, c.B, c.A)
}

// Polyline joins consecutive points; closed joins the last to the first.
func (b *Batch) Polyline(pts []sim.Vec3, closed bool, c Color) {
	for i := 0; i+1 < len(pts); i++ {
		b.Line(pts[i], pts[i+1], c)
	}
	if closed && len(pts) > 2 {
		b.Line(pts[len(pts)-1], pts[0], c)
	}
}

// ringPoints returns segs points on a horizontal circle, rotated by phase.
func ringPoints(center sim.Vec3, r float64, segs int, phase float64) []sim.Vec3 {
	pts := make([]sim.Vec3, segs)
	for i := range pts {
		a := phase + float64(i)/float64(segs)*2*math.Pi
		pts[i] = sim.V3(center.X+math.Sin(a)*r, center.Y, center.Z+math.Cos(a)*r)
	}
	return pts
}

// Circle draws a horizontal circle.
func (b *Batch) Circle(center sim.Vec3, r float64, segs int, c Color) {
	b.Polyline(ringPoints(center, r, segs, 0), true, c)
}

// Cylinder draws two rings joined by vertical struts.
func (b *Batch) Cylinder(base sim.Vec3, r, h float64, segs int, c Color) {
	lo := ringPoints(base, r, segs, 0)
	hi := ringPoints(base.Add(sim.Vec3{Y: h}), r, segs, 0)
	b.Polyline(lo, true, c)
	b.Polyline(hi, true, c)
	for i := range lo {
		b.Line(lo[i], hi[i], c)
	}
}

// Box draws a wire box centred on center, rotated by heading about +Y.
func (b *Batch) Box(center, half sim.Vec3, heading float64, c Color) {
	var v [8]sim.Vec3
	for i := 0; i < 8; i++ {
		o := sim.V3(half.X, half.Y, half.Z)
		if i&1 != 0 {
			o.X = -o.X
		}
		if i&2 != 0 {
			o.Y = -o.Y
		}
		if i&4 != 0 {
			o.Z = -o.Z
		}
		v[i] = center.Add(o.RotateY(heading))
	}
	for i := 0; i < 8; i++ {
		for _, bit := range []int{1, 2, 4} {
			if j := i | bit; j != i {
				b.Line(v[i], v[j], c)
			}
		}
	}
}

// Octahedron draws a small rock-like solid with a fixed tilt.
func (b *Batch) Octahedron(center sim.Vec3, r float64, tilt sim.Vec3, c Color) {
	axes := []sim.Vec3{{X: r}, {X: -r}, {Y: r}, {Y: -r}, {Z: r}, {Z: -r}}
	for i := range axes {
		axes[i] = center.Add(tiltVec(axes[i], tilt))
	}
	// Each vertex joins the four not on its own axis.
	for i := 0; i < 6; i++ {
		for j := i + 1; j < 6; j++ {
			if i/2 != j/2 {
				b.Line(axes[i], axes[j], c)
			}
		}
	}
}

// tiltVec rotates v by euler angles about X, then Y, then Z.
func tiltVec(v, e sim.Vec3) sim.Vec3 {
	sx, cx := math.Sincos(e.X)
	v = sim.V3(v.X, v.Y*cx-v.Z*sx, v.Y*sx+v.Z*cx)
	v = v.RotateY(e.Y)
	sz, cz := math.Sincos(e.Z)
	return sim.V3(v.X*cz-v.Y*sz, v.X*sz+v.Y*cz, v.Z)
}
