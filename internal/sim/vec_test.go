package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotateY_MatchesForward(t *testing.T) {
	for _, h := range []float64{0, 0.3, math.Pi / 2, 2, -1.1} {
		got := V3(0, 0, 1).RotateY(h)
		want := Forward(h)
		assert.InDelta(t, want.X, got.X, 1e-12)
		assert.InDelta(t, want.Z, got.Z, 1e-12)
	}
}

func TestWrapAngle(t *testing.T) {
	assert.InDelta(t, 2*math.Pi-0.5, WrapAngle(-0.5), 1e-12)
	assert.InDelta(t, 0.5, WrapAngle(4*math.Pi+0.5), 1e-9)
}

func TestRand_Deterministic(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.NextU64(), b.NextU64())
	}
	r := NewRand(0)
	for i := 0; i < 1000; i++ {
		v := r.RangeF(-3, 5)
		assert.GreaterOrEqual(t, v, -3.0)
		assert.Less(t, v, 5.0)
		n := r.Intn(7)
		assert.True(t, n >= 0 && n < 7)
	}
	assert.NotEqual(t, Mix(1, 1), Mix(1, 2))
}
