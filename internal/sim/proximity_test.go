package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_NoHysteresisAtThreshold(t *testing.T) {
	tun := DefaultTuning().Proximity
	p := &Panel{Kind: PanelInfo}

	assert.Equal(t, 1, p.Evaluate(V3(9.999, 0, 0), tun))
	assert.True(t, p.Visible)

	assert.Equal(t, -1, p.Evaluate(V3(10.001, 0, 0), tun))
	assert.False(t, p.Visible)

	assert.Equal(t, 1, p.Evaluate(V3(0, 0, 9.999), tun))
	assert.True(t, p.Visible)
}

func TestEvaluate_ExactlyAtThresholdIsHidden(t *testing.T) {
	tun := DefaultTuning().Proximity
	p := &Panel{Kind: PanelInfo}
	p.Evaluate(V3(10, 0, 0), tun)
	assert.False(t, p.Visible)
}

func TestEvaluate_ThresholdPerKind(t *testing.T) {
	tun := DefaultTuning().Proximity
	from := V3(0, 0, 7)

	info := &Panel{Kind: PanelInfo}
	curiosity := &Panel{Kind: PanelCuriosity}
	ring := &Panel{Kind: PanelRing}
	info.Evaluate(from, tun)
	curiosity.Evaluate(from, tun)
	ring.Evaluate(from, tun)

	assert.True(t, info.Visible)
	assert.False(t, curiosity.Visible)
	assert.True(t, ring.Visible)
}

func TestEvaluate_RevealResetsScaleThenSmooths(t *testing.T) {
	tun := DefaultTuning().Proximity
	p := &Panel{Kind: PanelInfo, Scale: 1}
	from := V3(0, 0, 2)

	p.Evaluate(from, tun)
	target := 1 - 0.2*0.3
	// One smoothing step from the reveal scale.
	assert.InDelta(t, tun.RevealScale+(target-tun.RevealScale)*tun.SmoothRate, p.Scale, 1e-12)

	for i := 0; i < 300; i++ {
		p.Evaluate(from, tun)
	}
	assert.InDelta(t, target, p.Scale, 1e-6)
	assert.InDelta(t, 1-0.2*0.5, p.Opacity, 1e-6)
}

func TestEvaluate_OpacityFloor(t *testing.T) {
	tun := DefaultTuning().Proximity
	tun.MinOpacity = 0.95
	p := &Panel{Kind: PanelInfo}
	for i := 0; i < 300; i++ {
		p.Evaluate(V3(0, 0, 9), tun)
	}
	assert.InDelta(t, 0.95, p.Opacity, 1e-6)
}

func TestEvaluate_HiddenPanelKeepsEmphasis(t *testing.T) {
	tun := DefaultTuning().Proximity
	p := &Panel{Kind: PanelCuriosity}
	require.Equal(t, 1, p.Evaluate(V3(1, 0, 0), tun))
	scale := p.Scale
	require.Equal(t, -1, p.Evaluate(V3(50, 0, 0), tun))
	assert.Equal(t, scale, p.Scale)
	assert.Equal(t, 0, p.Evaluate(V3(60, 0, 0), tun))
	assert.InDelta(t, 60, p.Distance, 1e-12)
}

func TestEvaluate_UsesFullDistance(t *testing.T) {
	tun := DefaultTuning().Proximity
	p := &Panel{Kind: PanelCuriosity, Position: V3(0, 1, 0)}
	p.Evaluate(V3(3, 1, 4), tun)
	assert.InDelta(t, 5, p.Distance, 1e-12)
	assert.False(t, p.Visible)
}

func TestEvaluate_VisibleNeverBelowFloor(t *testing.T) {
	tun := DefaultTuning().Proximity
	p := &Panel{Kind: PanelInfo}

	require.Equal(t, 1, p.Evaluate(V3(0, 0, 1), tun))
	assert.GreaterOrEqual(t, p.Opacity, tun.MinOpacity)
	for i := 0; i < 20; i++ {
		p.Evaluate(V3(0, 0, 1), tun)
		assert.GreaterOrEqual(t, p.Opacity, tun.MinOpacity)
	}

	// Hide with a stale low opacity, then reveal again.
	p.Evaluate(V3(50, 0, 0), tun)
	p.Opacity = 0
	require.Equal(t, 1, p.Evaluate(V3(0, 0, 9), tun))
	assert.GreaterOrEqual(t, p.Opacity, tun.MinOpacity)
}
