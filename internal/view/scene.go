package view

import (
	"math"

	"lunarfolio/internal/scene"
	"lunarfolio/internal/sim"
)

var (
	groundColor  = Color{0.32, 0.32, 0.34, 1}
	craterColor  = Color{0.22, 0.22, 0.24, 1}
	rockColor    = Color{0.45, 0.43, 0.42, 1}
	starColor    = Color{1, 1, 1, 0.9}
	crateColor   = Color{0.95, 0.95, 0.95, 1}
	baseColor    = Color{0.75, 0.75, 0.8, 1}
	flagColor    = Color{0.9, 0.15, 0.15, 1}
	poleColor    = Color{0.85, 0.85, 0.85, 1}
	vehicleColor = Color{0.9, 0.9, 0.92, 1}
	cabinColor   = Color{0.4, 0.6, 0.9, 1}
	wheelColor   = Color{0.2, 0.2, 0.2, 1}
	suitColor    = Color{0.95, 0.95, 0.95, 1}
	visorColor   = Color{0.95, 0.75, 0.2, 1}
	promptColor  = Color{1, 1, 0, 1}
)

const (
	gridStep   = 5.0
	circleSegs = 24
)

// Static appends everything that never moves. Callers build it once and
// keep the buffers.
func Static(b *Batch, s *scene.Scene) {
	grid(b, sim.WorldBound+5, gridStep, groundColor)

	for _, c := range s.Craters {
		b.Circle(c.Position.Add(sim.Vec3{Y: 0.01}), c.Radius, circleSegs, craterColor)
		b.Circle(c.Position.Add(sim.Vec3{Y: -c.Depth}), c.Radius*0.6, circleSegs/2, craterColor.Scale(0.8))
	}
	for _, r := range s.Rocks {
		b.Octahedron(r.Position, r.Size/2, r.Tilt, rockColor)
	}
	for _, st := range s.Stars {
		b.Point(st, 0.35, starColor)
	}
	for _, c := range s.Crates {
		h := c.Size / 2
		b.Box(c.Position, sim.V3(h, h, h), 0, crateColor)
	}

	// Habitat: a dome on a cylinder with an antenna.
	b.Cylinder(s.Base, 3, 2, circleSegs, baseColor)
	for i := 1; i <= 4; i++ {
		a := float64(i) / 5 * math.Pi / 2
		b.Circle(s.Base.Add(sim.Vec3{Y: 2 + math.Sin(a)*3}), math.Cos(a)*3, circleSegs, baseColor)
	}
	b.Line(s.Base.Add(sim.Vec3{Y: 5}), s.Base.Add(sim.Vec3{Y: 7}), baseColor)

	b.Line(s.Flag, s.Flag.Add(sim.Vec3{Y: 3}), poleColor)
	b.Polyline([]sim.Vec3{
		s.Flag.Add(sim.Vec3{Y: 3}),
		s.Flag.Add(sim.Vec3{X: 1.5, Y: 3}),
		s.Flag.Add(sim.Vec3{X: 1.5, Y: 2.1}),
		s.Flag.Add(sim.Vec3{Y: 2.1}),
	}, false, flagColor)
}

func grid(b *Batch, extent, step float64, c Color) {
	for v := -extent; v <= extent+1e-9; v += step {
		b.Line(sim.V3(v, 0, -extent), sim.V3(v, 0, extent), c)
		b.Line(sim.V3(-extent, 0, v), sim.V3(extent, 0, v), c)
	}
}

// Dynamic appends everything that animates or follows simulation state.
func Dynamic(b *Batch, s *scene.Scene, w *sim.World) {
	for i := range s.Platforms {
		platform(b, &s.Platforms[i])
	}
	for i := range s.Holograms {
		hologram(b, &s.Holograms[i])
	}
	if s.Orbiters != nil {
		oc := Hex(0x66ccff, 0.9)
		for _, p := range s.Orbiters.Points {
			b.Point(s.Orbiters.Center.Add(p), 0.15, oc)
		}
	}
	if s.CenterLight != nil {
		b.GlowAt(sim.Vec3{Y: 2}, float32(6*s.CenterLight.Value), Hex(0xffaa00, 1).Scale(0.6))
	}

	vehicle(b, &w.Vehicle)
	if !w.Driving() {
		avatar(b, &w.Avatar)
	}
	if w.CanEnter() {
		p := w.Vehicle.Position.Add(sim.Vec3{Y: 1.5})
		b.Point(p, 0.3, promptColor)
		b.GlowAt(p, 1.2, promptColor.Scale(0.5))
	}
}

func platform(b *Batch, p *scene.Platform) {
	h := p.Height
	if p.Pulse != nil {
		h *= p.Pulse.Value
	}
	c := Hex(p.Color, 1)
	switch p.Shape {
	case scene.PlatformBox:
		b.Box(p.Position.Add(sim.Vec3{Y: h / 2}), sim.V3(p.Size/2, h/2, p.Size/2), 0, c)
	default:
		b.Cylinder(p.Position, p.Size, h, circleSegs, c)
	}
	if r := p.Ring; r != nil && r.Visible {
		rc := Hex(r.Color, float32(r.Opacity))
		b.Circle(p.Position.Add(sim.Vec3{Y: 0.05}), p.Size*0.8*r.Scale+0.5, circleSegs*2, rc)
	}
}

// HologramPosition is where a panel's frame is drawn this frame.
func HologramPosition(p *sim.Panel) sim.Vec3 {
	return p.Position.Add(sim.Vec3{Y: p.Lift})
}

func hologram(b *Batch, h *scene.Hologram) {
	p := h.Panel
	if !p.Visible {
		return
	}
	c := Hex(p.Color, float32(p.Opacity))
	center := HologramPosition(p)

	// A spinning frame, scaled by proximity emphasis.
	w, ht := 2.0*p.Scale, 1.2*p.Scale
	if p.Kind == sim.PanelCuriosity {
		w, ht = 1.4*p.Scale, 0.9*p.Scale
	}
	b.Box(center, sim.V3(w/2, ht/2, 0.02), p.Spin, c)
	b.GlowAt(center, float32(3*p.Scale), c.Scale(0.35*float32(p.Opacity)))

	if h.Sparks != nil {
		sc := c.WithAlpha(float32(0.6 * p.Opacity))
		for _, sp := range h.Sparks.Points {
			b.Point(p.Position.Add(sp), 0.08, sc)
		}
	}
}

func vehicle(b *Batch, v *sim.Body) {
	pos := v.Position
	b.Box(pos.Add(sim.Vec3{Y: 0.5}), sim.V3(1, 0.2, 1.5), v.Heading, vehicleColor)
	b.Box(pos.Add(sim.V3(0, 1.1, -0.3).RotateY(v.Heading)), sim.V3(0.7, 0.4, 0.7), v.Heading, cabinColor)
	for _, o := range []sim.Vec3{{X: 1.1, Z: 1}, {X: -1.1, Z: 1}, {X: 1.1, Z: -1}, {X: -1.1, Z: -1}} {
		c := pos.Add(sim.V3(o.X, 0.3, o.Z).RotateY(v.Heading))
		b.Point(c, 0.6, wheelColor)
	}
	// Headlights.
	front := pos.Add(sim.V3(0, 0.5, 1.6).RotateY(v.Heading))
	b.GlowAt(front, 2.5, Color{0.5, 0.5, 0.45, 1})
}

func avatar(b *Batch, a *sim.Body) {
	pos := a.Position
	b.Cylinder(pos.Add(sim.Vec3{Y: 0.5}), 0.3, 0.8, 8, suitColor)
	b.Point(pos.Add(sim.Vec3{Y: 1.7}), 0.7, suitColor)
	b.Point(pos.Add(sim.V3(0, 1.7, 0.2).RotateY(a.Heading)), 0.35, visorColor)
}
