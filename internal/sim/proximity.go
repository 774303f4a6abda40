package sim

import "math"

// PanelKind selects the distance class a panel is thresholded against.
type PanelKind int

const (
	PanelInfo      PanelKind = iota // primary hologram
	PanelCuriosity                  // short-range emphasis hologram
	PanelRing                       // platform highlight ring
)

func (k PanelKind) String() string {
	switch k {
	case PanelCuriosity:
		return "curiosity"
	case PanelRing:
		return "ring"
	}
	return "info"
}

// Panel is a static point of interest. Position and Kind never change after
// construction; the rest is written by the proximity pass each frame.
type Panel struct {
	Name     string
	Kind     PanelKind
	Position Vec3
	Color    uint32 // 0xRRGGBB
	Lines    []string

	Visible  bool
	Opacity  float64
	Scale    float64
	Distance float64 // to the active body, last evaluation

	// Written by decorative effects.
	Lift float64
	Spin float64
}

// Threshold returns the reveal distance for a panel kind.
func (t ProximityTuning) Threshold(k PanelKind) float64 {
	switch k {
	case PanelCuriosity:
		return t.CuriosityDistance
	case PanelRing:
		return t.RingDistance
	}
	return t.InfoDistance
}

// Evaluate updates visibility and emphasis from the distance to from.
// It returns +1 when the panel was revealed, -1 when hidden, 0 otherwise.
// There is no hysteresis band: a body sitting exactly on the threshold may
// flicker between frames.
func (p *Panel) Evaluate(from Vec3, t ProximityTuning) int {
	limit := t.Threshold(p.Kind)
	d := from.Dist(p.Position)
	p.Distance = d

	change := 0
	switch {
	case !p.Visible && d < limit:
		p.Visible = true
		p.Scale = t.RevealScale
		p.Opacity = t.MinOpacity
		change = 1
	case p.Visible && d >= limit:
		p.Visible = false
		change = -1
	}
	if !p.Visible {
		return change
	}

	frac := 0.0
	if limit > 0 {
		frac = d / limit
	}
	targetOpacity := math.Max(t.MinOpacity, 1-frac*0.5)
	targetScale := 1 - frac*0.3
	// A visible panel never drops below the floor, even while fading in.
	p.Opacity = math.Max(t.MinOpacity, smooth(p.Opacity, targetOpacity, t.SmoothRate))
	p.Scale = smooth(p.Scale, targetScale, t.SmoothRate)
	return change
}
