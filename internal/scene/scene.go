// Package scene builds the static lunar surface and the portfolio panels.
// Everything here is created once at startup; the only moving parts are
// decorative effects registered with the world.
package scene

import (
	"math"

	"lunarfolio/internal/content"
	"lunarfolio/internal/sim"
)

const (
	CraterCount   = 40
	RockCount     = 50
	StarCount     = 1000
	CrateCount    = 5 // per section platform
	OrbiterCount  = 100
	SparkCount    = 20 // per curiosity hologram
	ClearZone     = 10 // half-width of the empty square around the start
	StarMinRadius = 80.0
	StarMaxRadius = 100.0
)

var (
	BasePosition = sim.V3(-25, 0, -25)
	FlagPosition = sim.V3(25, 0, -25)
)

// Hologram animation parameters.
const (
	hoverBase          = 1.5
	hoverBob           = 0.1
	hoverBobRate       = 2.0
	infoSpinRate       = 0.3
	curiositySpinRate  = 0.8
	curiosityLift      = 1.0 // curiosity panels sit one unit above their platform
	sparkRiseSpeed     = 0.6 // units/s
	sparkTop           = 2.0
	orbiterAngularRate = -0.3 // rad/s, counter-clockwise seen from above
)

type Crater struct {
	Position sim.Vec3
	Radius   float64
	Depth    float64
}

type Rock struct {
	Position sim.Vec3
	Size     float64
	Tilt     sim.Vec3 // euler angles, radians
}

type Crate struct {
	Position sim.Vec3
	Size     float64
}

type PlatformShape int

const (
	PlatformBox PlatformShape = iota
	PlatformDisc
)

// Platform is a coloured base under a group of panels. Pulse, when set,
// scales its height; Ring, when set, is the highlight panel drawn around it.
type Platform struct {
	Name     string
	Shape    PlatformShape
	Position sim.Vec3
	Size     float64 // half-extent for boxes, radius for discs
	Height   float64
	Color    uint32
	Pulse    *sim.Pulse
	Ring     *sim.Panel
}

// Hologram is the drawable side of an info or curiosity panel.
type Hologram struct {
	Panel  *sim.Panel
	Title  string
	Sparks *sim.Rise // curiosity holograms only, relative to the panel
}

type Scene struct {
	Seed uint64

	Craters []Crater
	Rocks   []Rock
	Stars   []sim.Vec3
	Crates  []Crate

	Base sim.Vec3
	Flag sim.Vec3

	Platforms []Platform
	Holograms []Hologram
	Panels    []*sim.Panel // every thresholded panel, rings included

	Orbiters    *sim.Swirl // around the central platform
	CenterLight *sim.Pulse
}

// Build lays out the scene for seed and registers its animations with fx.
// The same seed always yields the same decoration.
func Build(p *content.Portfolio, seed uint64, fx *sim.Effects) *Scene {
	s := &Scene{
		Seed: seed,
		Base: BasePosition,
		Flag: FlagPosition,
	}
	s.scatterCraters(sim.NewRand(sim.Mix(seed, 1)))
	s.scatterRocks(sim.NewRand(sim.Mix(seed, 2)))
	s.scatterStars(sim.NewRand(sim.Mix(seed, 3)))

	decor := sim.NewRand(sim.Mix(seed, 4))
	for _, sec := range p.Sections {
		s.addSection(sec, decor, fx)
	}
	for i, pr := range p.Projects {
		s.addProject(i, len(p.Projects), p.ProjectRadius, pr, decor, fx)
	}
	s.addCenter(p.Center, sim.NewRand(sim.Mix(seed, 5)), fx)
	return s
}

// groundPoint picks a point inside the world bound outside the clear zone.
func groundPoint(r *sim.Rand) (x, z float64) {
	for {
		x = r.RangeF(-sim.WorldBound, sim.WorldBound)
		z = r.RangeF(-sim.WorldBound, sim.WorldBound)
		if math.Abs(x) >= ClearZone || math.Abs(z) >= ClearZone {
			return x, z
		}
	}
}

func (s *Scene) scatterCraters(r *sim.Rand) {
	s.Craters = make([]Crater, 0, CraterCount)
	for i := 0; i < CraterCount; i++ {
		x, z := groundPoint(r)
		s.Craters = append(s.Craters, Crater{
			Position: sim.V3(x, 0, z),
			Radius:   r.RangeF(1, 4),
			Depth:    r.RangeF(0.2, 0.7),
		})
	}
}

func (s *Scene) scatterRocks(r *sim.Rand) {
	s.Rocks = make([]Rock, 0, RockCount)
	for i := 0; i < RockCount; i++ {
		x, z := groundPoint(r)
		size := r.RangeF(0.5, 2)
		s.Rocks = append(s.Rocks, Rock{
			Position: sim.V3(x, size/2, z),
			Size:     size,
			Tilt:     sim.V3(r.RangeF(0, math.Pi), r.RangeF(0, math.Pi), r.RangeF(0, math.Pi)),
		})
	}
}

// scatterStars distributes stars uniformly over a spherical shell.
func (s *Scene) scatterStars(r *sim.Rand) {
	s.Stars = make([]sim.Vec3, 0, StarCount)
	for i := 0; i < StarCount; i++ {
		theta := r.RangeF(0, 2*math.Pi)
		phi := math.Acos(r.RangeF(-1, 1))
		rad := r.RangeF(StarMinRadius, StarMaxRadius)
		s.Stars = append(s.Stars, sim.V3(
			rad*math.Sin(phi)*math.Cos(theta),
			rad*math.Sin(phi)*math.Sin(theta),
			rad*math.Cos(phi),
		))
	}
}

func (s *Scene) addSection(sec content.Section, r *sim.Rand, fx *sim.Effects) {
	pos := sim.V3(sec.Position[0], 0, sec.Position[1])

	ring := &sim.Panel{Name: sec.Name + "/ring", Kind: sim.PanelRing, Position: pos, Color: 0xffffff}
	s.Panels = append(s.Panels, ring)
	s.Platforms = append(s.Platforms, Platform{
		Name:     sec.Name,
		Shape:    PlatformBox,
		Position: pos,
		Size:     5,
		Height:   0.5,
		Color:    sec.Color,
		Ring:     ring,
	})

	s.addHologram(sec.Name, sec.Name, sim.PanelInfo, pos, sec.Color, sec.Info, r, fx)
	if len(sec.Curiosities) > 0 {
		s.addHologram(sec.Name+"/curiosities", "Curiosities", sim.PanelCuriosity,
			pos.Add(sim.Vec3{Y: curiosityLift}), sec.Color, sec.Curiosities, r, fx)
	}

	for i := 0; i < CrateCount; i++ {
		size := r.RangeF(0.5, 1)
		s.Crates = append(s.Crates, Crate{
			Position: sim.V3(pos.X+r.RangeF(-1.5, 1.5), size/2+0.5, pos.Z+r.RangeF(-1.5, 1.5)),
			Size:     size,
		})
	}
}

// addProject places project i of n on the ring, starting at +Z.
func (s *Scene) addProject(i, n int, radius float64, pr content.Project, r *sim.Rand, fx *sim.Effects) {
	angle := float64(i) / float64(n) * 2 * math.Pi
	pos := sim.V3(math.Sin(angle)*radius, 0, math.Cos(angle)*radius)

	pulse := &sim.Pulse{Base: 1, Amp: 0.1, Rate: 2, Value: 1}
	fx.Add(pulse)
	s.Platforms = append(s.Platforms, Platform{
		Name:     pr.Name,
		Shape:    PlatformDisc,
		Position: pos,
		Size:     1.5,
		Height:   0.4,
		Color:    pr.Color,
		Pulse:    pulse,
	})

	s.addHologram(pr.Name, pr.Name, sim.PanelInfo, pos, pr.Color, pr.Info, r, fx)
	if len(pr.Details) > 0 {
		s.addHologram(pr.Name+"/details", "Details", sim.PanelCuriosity,
			pos.Add(sim.Vec3{Y: curiosityLift}), pr.Color, pr.Details, r, fx)
	}
}

func (s *Scene) addCenter(c content.Center, r *sim.Rand, fx *sim.Effects) {
	pulse := &sim.Pulse{Base: 1, Amp: 0.1, Rate: 3, Value: 1}
	s.CenterLight = &sim.Pulse{Base: 1, Amp: 0.3, Rate: 5, Value: 1}
	fx.Add(pulse)
	fx.Add(s.CenterLight)
	s.Platforms = append(s.Platforms, Platform{
		Name:   "center",
		Shape:  PlatformDisc,
		Size:   3,
		Height: 0.3,
		Color:  0xffffff,
		Pulse:  pulse,
	})

	pts := make([]sim.Vec3, OrbiterCount)
	for i := range pts {
		a := r.RangeF(0, 2*math.Pi)
		rad := r.RangeF(3, 5)
		pts[i] = sim.V3(math.Cos(a)*rad, r.RangeF(0, 3), math.Sin(a)*rad)
	}
	s.Orbiters = &sim.Swirl{
		Points:       pts,
		AngularSpeed: orbiterAngularRate,
		Height:       1.5,
		Bob:          0.5,
		BobRate:      2,
	}
	fx.Add(s.Orbiters)

	if c.Title != "" {
		s.addHologram(content.CenterName, c.Title, sim.PanelCuriosity, sim.Vec3{}, c.Color, c.Lines, r, fx)
	}
}

func (s *Scene) addHologram(name, title string, kind sim.PanelKind, pos sim.Vec3, color uint32,
	lines []string, r *sim.Rand, fx *sim.Effects) {
	p := &sim.Panel{
		Name:     name,
		Kind:     kind,
		Position: pos,
		Color:    color,
		Lines:    lines,
		Scale:    1,
	}
	spin := infoSpinRate
	h := Hologram{Panel: p, Title: title}
	if kind == sim.PanelCuriosity {
		spin = curiositySpinRate
		pts := make([]sim.Vec3, SparkCount)
		for i := range pts {
			pts[i] = sim.V3(r.RangeF(-2, 2), r.RangeF(0, sparkTop), r.RangeF(-2, 2))
		}
		h.Sparks = &sim.Rise{Points: pts, Speed: sparkRiseSpeed, Top: sparkTop}
		fx.Add(h.Sparks)
	}
	fx.Add(&sim.Hover{Panel: p, Base: hoverBase, Bob: hoverBob, BobRate: hoverBobRate, SpinRate: spin})

	s.Panels = append(s.Panels, p)
	s.Holograms = append(s.Holograms, h)
}

// PanelCount returns the number of panels of kind k.
func (s *Scene) PanelCount(k sim.PanelKind) int {
	n := 0
	for _, p := range s.Panels {
		if p.Kind == k {
			n++
		}
	}
	return n
}
