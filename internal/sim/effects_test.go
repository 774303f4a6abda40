package sim

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countFx struct{ n int }

func (c *countFx) Tick(float64) { c.n++ }

func TestEffects_Registry(t *testing.T) {
	e := NewEffects()
	a, b := &countFx{}, &countFx{}
	ida := e.Add(a)
	idb := e.Add(b)
	require.NotEqual(t, ida, idb)
	assert.Equal(t, 2, e.Len())

	e.Tick(FrameDuration)
	assert.Equal(t, 1, a.n)
	assert.Equal(t, 1, b.n)

	got, ok := e.Get(idb)
	require.True(t, ok)
	assert.Same(t, b, got)

	assert.True(t, e.Remove(ida))
	assert.False(t, e.Remove(ida))
	assert.False(t, e.Remove(uuid.New()))
	e.Tick(FrameDuration)
	assert.Equal(t, 1, a.n)
	assert.Equal(t, 2, b.n)
}

func TestHover_OnlyWhileVisible(t *testing.T) {
	p := &Panel{}
	h := &Hover{Panel: p, Base: 1.5, Bob: 0.1, BobRate: 2, SpinRate: 0.3}
	h.Tick(0.25)
	assert.Zero(t, p.Lift)
	assert.Zero(t, p.Spin)

	p.Visible = true
	h.Tick(0.25)
	assert.InDelta(t, 1.5+math.Sin(1.0)*0.1, p.Lift, 1e-12)
	assert.InDelta(t, 0.15, p.Spin, 1e-12)
}

func TestPulse_Oscillates(t *testing.T) {
	p := &Pulse{Base: 1, Amp: 0.1, Rate: 2}
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < 600; i++ {
		p.Tick(FrameDuration)
		lo = math.Min(lo, p.Value)
		hi = math.Max(hi, p.Value)
	}
	assert.InDelta(t, 0.9, lo, 1e-3)
	assert.InDelta(t, 1.1, hi, 1e-3)
}

func TestSwirl_KeepsRadius(t *testing.T) {
	s := &Swirl{
		Points:       []Vec3{V3(3, 0, 0), V3(0, 0, 4)},
		AngularSpeed: 0.3,
		Height:       1.5,
		Bob:          0.5,
		BobRate:      2,
	}
	for i := 0; i < 120; i++ {
		s.Tick(FrameDuration)
	}
	for i, p := range s.Points {
		r := math.Hypot(p.X, p.Z)
		assert.InDelta(t, []float64{3, 4}[i], r, 1e-9)
		assert.GreaterOrEqual(t, p.Y, 1.0)
		assert.LessOrEqual(t, p.Y, 2.0)
	}
	// Two seconds at 0.3 rad/s.
	assert.InDelta(t, 3*math.Cos(0.6), s.Points[0].X, 1e-9)
	assert.InDelta(t, -3*math.Sin(0.6), s.Points[0].Z, 1e-9)
}

func TestRise_Wraps(t *testing.T) {
	r := &Rise{Points: []Vec3{{Y: 1.9}, {Y: 0}}, Speed: 0.6, Top: 2}
	r.Tick(0.2)
	assert.Zero(t, r.Points[0].Y)
	assert.InDelta(t, 0.12, r.Points[1].Y, 1e-12)
}
