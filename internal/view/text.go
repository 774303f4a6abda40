package view

import (
	"sort"
	"strings"

	"lunarfolio/internal/scene"
	"lunarfolio/internal/sim"
)

// Label is text anchored to a world position.
type Label struct {
	Pos      sim.Vec3
	Title    string
	Lines    []string
	Color    Color
	Alpha    float32
	Scale    float32
	Distance float64
}

// Labels returns the text of every visible hologram, farthest first so
// nearer labels draw on top.
func Labels(s *scene.Scene, dst []Label) []Label {
	dst = dst[:0]
	for _, h := range s.Holograms {
		p := h.Panel
		if !p.Visible {
			continue
		}
		dst = append(dst, Label{
			Pos:      HologramPosition(p).Add(sim.Vec3{Y: 0.9 * p.Scale}),
			Title:    h.Title,
			Lines:    p.Lines,
			Color:    Hex(p.Color, 1),
			Alpha:    float32(p.Opacity),
			Scale:    float32(p.Scale),
			Distance: p.Distance,
		})
	}
	sort.SliceStable(dst, func(i, j int) bool { return dst[i].Distance > dst[j].Distance })
	return dst
}

// HelpText is the on-screen instruction block for the current control state.
func HelpText(w *sim.World) []string {
	var lines []string
	if w.Driving() {
		lines = []string{
			"Use W,A,S,D or arrows to drive the car",
			"Press E to exit the car",
		}
	} else {
		lines = []string{
			"Use W,A,S,D or arrows to move the character",
			"Press Space to jump",
			"Press E near the car to enter",
		}
	}
	cam := "Press C for the follow camera"
	if w.Camera.Mode == sim.FollowMode {
		cam = "Press C for the orbit camera"
	}
	return append(lines, cam, "Explore the portfolio by approaching the platforms")
}

// Wrap breaks s on spaces into lines of at most width runes. Words longer
// than width are split.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	var lines []string
	var cur []rune
	flush := func() {
		lines = append(lines, string(cur))
		cur = cur[:0]
	}
	for _, word := range strings.Fields(s) {
		rw := []rune(word)
		for len(rw) > width {
			if len(cur) > 0 {
				flush()
			}
			lines = append(lines, string(rw[:width]))
			rw = rw[width:]
		}
		switch {
		case len(cur) == 0:
			cur = append(cur, rw...)
		case len(cur)+1+len(rw) <= width:
			cur = append(cur, ' ')
			cur = append(cur, rw...)
		default:
			flush()
			cur = append(cur, rw...)
		}
	}
	if len(cur) > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}
