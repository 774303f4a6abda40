package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunarfolio/internal/content"
	"lunarfolio/internal/sim"
)

func build(t *testing.T, seed uint64) (*Scene, *sim.Effects) {
	t.Helper()
	p, err := content.Default()
	require.NoError(t, err)
	fx := sim.NewEffects()
	return Build(p, seed, fx), fx
}

func TestBuild_Counts(t *testing.T) {
	s, fx := build(t, 7)

	assert.Len(t, s.Craters, CraterCount)
	assert.Len(t, s.Rocks, RockCount)
	assert.Len(t, s.Stars, StarCount)
	assert.Len(t, s.Crates, 4*CrateCount)

	// 4 sections + 6 projects + center
	assert.Len(t, s.Platforms, 11)
	assert.Equal(t, 4+6, s.PanelCount(sim.PanelInfo))
	assert.Equal(t, 4+6+1, s.PanelCount(sim.PanelCuriosity))
	assert.Equal(t, 4, s.PanelCount(sim.PanelRing))
	assert.Len(t, s.Holograms, 21)

	// hovers + sparks + project pulses + center pulse, light and orbiters
	assert.Equal(t, 21+11+6+3, fx.Len())
}

func TestBuild_Deterministic(t *testing.T) {
	a, _ := build(t, 42)
	b, _ := build(t, 42)
	c, _ := build(t, 43)

	assert.Equal(t, a.Craters, b.Craters)
	assert.Equal(t, a.Rocks, b.Rocks)
	assert.Equal(t, a.Stars, b.Stars)
	assert.NotEqual(t, a.Craters, c.Craters)
}

func TestBuild_DecorationAvoidsStart(t *testing.T) {
	s, _ := build(t, 1)
	outside := func(p sim.Vec3) bool {
		return math.Abs(p.X) >= ClearZone || math.Abs(p.Z) >= ClearZone
	}
	for _, c := range s.Craters {
		assert.True(t, outside(c.Position), "crater at %+v", c.Position)
		assert.LessOrEqual(t, math.Abs(c.Position.X), sim.WorldBound)
		assert.GreaterOrEqual(t, c.Radius, 1.0)
		assert.Less(t, c.Radius, 4.0)
	}
	for _, r := range s.Rocks {
		assert.True(t, outside(r.Position), "rock at %+v", r.Position)
		assert.InDelta(t, r.Size/2, r.Position.Y, 1e-12)
	}
	for _, st := range s.Stars {
		d := st.Len()
		assert.GreaterOrEqual(t, d, StarMinRadius-1e-9)
		assert.LessOrEqual(t, d, StarMaxRadius+1e-9)
	}
}

func TestBuild_PanelPlacement(t *testing.T) {
	s, _ := build(t, 1)
	byName := make(map[string]*sim.Panel)
	for _, p := range s.Panels {
		byName[p.Name] = p
	}

	about := byName["About Me"]
	require.NotNil(t, about)
	assert.Equal(t, sim.V3(-35, 0, -35), about.Position)
	assert.Equal(t, sim.PanelInfo, about.Kind)

	ring := byName["GitHub Stats/ring"]
	require.NotNil(t, ring)
	assert.Equal(t, sim.V3(35, 0, 35), ring.Position)

	// First project sits on +Z, the rest follow around the ring.
	agro := byName["AgroCitro"]
	require.NotNil(t, agro)
	assert.InDelta(t, 0, agro.Position.X, 1e-9)
	assert.InDelta(t, 15, agro.Position.Z, 1e-9)

	details := byName["Jest/details"]
	require.NotNil(t, details)
	assert.Equal(t, sim.PanelCuriosity, details.Kind)
	assert.InDelta(t, 1, details.Position.Y, 1e-12)
	assert.InDelta(t, 15, math.Hypot(details.Position.X, details.Position.Z), 1e-9)

	center := byName["center"]
	require.NotNil(t, center)
	assert.Equal(t, sim.Vec3{}, center.Position)

	for _, p := range s.Panels {
		assert.False(t, p.Visible, p.Name)
	}
}

func TestBuild_EffectsDriveHolograms(t *testing.T) {
	s, fx := build(t, 1)
	w := sim.NewWorld(sim.DefaultTuning(), s.Panels)
	w.Effects = fx

	for i := 0; i < 30; i++ {
		w.Step()
	}
	var center *Hologram
	for i := range s.Holograms {
		if s.Holograms[i].Panel.Name == "center" {
			center = &s.Holograms[i]
		}
	}
	require.NotNil(t, center)
	// The vehicle starts on the central platform.
	assert.True(t, center.Panel.Visible)
	assert.Greater(t, center.Panel.Lift, 1.3)
	assert.NotZero(t, center.Panel.Spin)
	require.NotNil(t, center.Sparks)
	for _, p := range center.Sparks.Points {
		assert.LessOrEqual(t, p.Y, 2.0)
	}
	for _, p := range s.Orbiters.Points {
		r := math.Hypot(p.X, p.Z)
		assert.True(t, r >= 3-1e-9 && r <= 5+1e-9)
	}
}
