// Package tui is a terminal frontend: a top-down radar of the lunar surface
// with the panel text in a sidebar.
package tui

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"lunarfolio/internal/scene"
	"lunarfolio/internal/sim"
	"lunarfolio/internal/view"
)

const (
	tickInterval = 16 * time.Millisecond

	// Terminals report presses but never releases. A fresh press holds its
	// key long enough to reach the autorepeat delay; each repeat then
	// extends it briefly.
	pressHold  = 550 * time.Millisecond
	repeatHold = 120 * time.Millisecond

	sidebarMin   = 34
	sidebarMax   = 46
	radarExtent  = sim.WorldBound + 3 // world units from centre to radar edge
	bannerFrames = 150
)

var compass = [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

var (
	styleDefault = tcell.StyleDefault
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleHelp    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleAccent  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleAlert   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleBody    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	stylePrompt  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
)

// Radar owns the screen and drives the world from the terminal event loop.
type Radar struct {
	screen tcell.Screen
	scene  *scene.Scene
	world  *sim.World
	log    zerolog.Logger

	expiry   map[string]time.Time
	showHelp bool

	banner      string
	bannerStyle tcell.Style
	bannerUntil uint64

	labels []view.Label
}

func New(screen tcell.Screen, sc *scene.Scene, w *sim.World, log zerolog.Logger) *Radar {
	r := &Radar{
		screen:   screen,
		scene:    sc,
		world:    w,
		log:      log,
		expiry:   make(map[string]time.Time),
		showHelp: true,
	}
	w.Events.SubscribeAll(r.onEvent)
	return r
}

func (r *Radar) onEvent(e sim.Event) {
	style := styleAccent
	var msg string
	switch e.Type {
	case sim.EventVehicleEntered:
		msg = "Back in the car"
	case sim.EventVehicleExited:
		msg = "On foot"
	case sim.EventEnterRejected:
		msg = fmt.Sprintf("Too far from the car (%.1f)", e.Distance)
		style = styleAlert
	case sim.EventPanelShown:
		if e.Panel == nil {
			return
		}
		switch e.Panel.Kind {
		case sim.PanelInfo:
			msg = "Found: " + e.Panel.Name
		case sim.PanelCuriosity:
			msg = "Something curious nearby"
		default:
			return
		}
	case sim.EventCameraMode:
		msg = "Camera: " + e.Mode.String()
	default:
		return
	}
	r.banner, r.bannerStyle = msg, style
	r.bannerUntil = r.world.Frame + bannerFrames
}

// keyName maps a terminal key event to a binding name.
func keyName(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return "arrowup", true
	case tcell.KeyDown:
		return "arrowdown", true
	case tcell.KeyLeft:
		return "arrowleft", true
	case tcell.KeyRight:
		return "arrowright", true
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return "space", true
		}
		return string(ev.Rune()), true
	}
	return "", false
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (r *Radar) HandleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyF1:
			r.showHelp = !r.showHelp
			return true
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == '?' {
			r.showHelp = !r.showHelp
			return true
		}
		name, ok := keyName(ev)
		if !ok {
			return true
		}
		name = sim.NormalizeKey(name)
		if r.world.Keys.IsDown(name) {
			r.expiry[name] = now.Add(repeatHold)
			return true
		}
		r.world.Keys.KeyDown(name)
		r.expiry[name] = now.Add(pressHold)
	case *tcell.EventResize:
		r.screen.Sync()
	case *tcell.EventFocus:
		if !ev.Focused {
			r.world.Keys.Reset()
			clear(r.expiry)
		}
	}
	return true
}

// ReleaseExpired lifts keys whose hold has run out.
func (r *Radar) ReleaseExpired(now time.Time) {
	for name, until := range r.expiry {
		if !now.Before(until) {
			r.world.Keys.KeyUp(name)
			delete(r.expiry, name)
		}
	}
}

// Run polls terminal events and advances the world on a fixed ticker until
// the user quits or ctx is cancelled.
func (r *Radar) Run(ctx context.Context) error {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 100)
	go r.pump(ctx, events)

	r.screen.EnableFocus()
	r.Draw()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !r.HandleEvent(ev, time.Now()) {
				r.log.Info().Uint64("frames", r.world.Frame).Msg("quit")
				return nil
			}
		case now := <-ticker.C:
			r.ReleaseExpired(now)
			r.world.Advance(now.Sub(last).Seconds())
			last = now
			r.Draw()
		}
	}
}

// pump forwards terminal events until the screen is finalised or ctx ends.
func (r *Radar) pump(ctx context.Context, events chan<- tcell.Event) {
	defer close(events)
	for {
		ev := r.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// layout splits the screen into the radar and the sidebar.
type layout struct {
	mapW, mapH   int
	cx, cy       float64 // radar centre in cells
	unitsPerCol  float64
	unitsPerRow  float64
	sideX, sideW int
}

func (r *Radar) layout() layout {
	w, h := r.screen.Size()
	side := w / 3
	if side < sidebarMin {
		side = sidebarMin
	}
	if side > sidebarMax {
		side = sidebarMax
	}
	if w-side < 20 {
		side = 0
	}
	l := layout{mapW: w - side, mapH: h - 1, sideX: w - side + 1, sideW: side - 1}
	// Cells are about twice as tall as they are wide.
	l.unitsPerCol = math.Max(2*radarExtent/float64(l.mapW), radarExtent/float64(l.mapH))
	l.unitsPerRow = 2 * l.unitsPerCol
	l.cx, l.cy = float64(l.mapW)/2, float64(l.mapH)/2
	return l
}

// cell maps a ground point to a radar cell; +Z points down the screen.
func (l layout) cell(p sim.Vec3) (int, int, bool) {
	x := int(math.Floor(l.cx + p.X/l.unitsPerCol))
	y := int(math.Floor(l.cy + p.Z/l.unitsPerRow))
	return x, y, x >= 0 && x < l.mapW && y >= 0 && y < l.mapH
}

func (r *Radar) put(l layout, p sim.Vec3, ch rune, st tcell.Style) {
	if x, y, ok := l.cell(p); ok {
		r.screen.SetContent(x, y, ch, nil, st)
	}
}

func (r *Radar) text(x, y, maxW int, s string, st tcell.Style) {
	i := 0
	for _, ch := range s {
		if i >= maxW {
			return
		}
		r.screen.SetContent(x+i, y, ch, nil, st)
		i++
	}
}

// Heading arrow as seen on the radar.
func arrow(heading float64) rune {
	f := sim.Forward(heading)
	theta := sim.WrapAngle(math.Atan2(f.X, -f.Z))
	return compass[int(math.Round(theta/(math.Pi/4)))%8]
}

func colorStyle(rgb uint32) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewHexColor(int32(rgb)))
}

// Draw renders one frame.
func (r *Radar) Draw() {
	s := r.screen
	s.Clear()
	l := r.layout()
	sc, w := r.scene, r.world

	// World boundary.
	b := w.Tuning.Bound
	for t := -b; t <= b; t += l.unitsPerCol {
		r.put(l, sim.V3(t, 0, -b), '─', styleBorder)
		r.put(l, sim.V3(t, 0, b), '─', styleBorder)
	}
	for t := -b; t <= b; t += l.unitsPerRow {
		r.put(l, sim.V3(-b, 0, t), '│', styleBorder)
		r.put(l, sim.V3(b, 0, t), '│', styleBorder)
	}

	for _, c := range sc.Craters {
		r.put(l, c.Position, 'o', styleDim)
	}
	for _, rk := range sc.Rocks {
		r.put(l, rk.Position, '^', styleDim)
	}
	r.put(l, sc.Base, 'H', styleHelp)
	r.put(l, sc.Flag, 'F', styleAlert)

	for _, p := range sc.Platforms {
		st := colorStyle(p.Color)
		switch p.Shape {
		case scene.PlatformBox:
			h := p.Size / 2
			for x := -h; x <= h; x += l.unitsPerCol {
				for z := -h; z <= h; z += l.unitsPerRow {
					r.put(l, p.Position.Add(sim.V3(x, 0, z)), '▒', st)
				}
			}
			if p.Ring != nil && p.Ring.Visible {
				r.put(l, p.Position, '◎', st.Bold(true))
			}
		default:
			r.put(l, p.Position, '◉', st)
		}
	}
	if sc.Orbiters != nil {
		for _, o := range sc.Orbiters.Points {
			r.put(l, sc.Orbiters.Center.Add(o), '·', tcell.StyleDefault.Foreground(tcell.ColorAqua))
		}
	}
	for _, h := range sc.Holograms {
		if h.Panel.Visible && h.Panel.Kind == sim.PanelInfo {
			r.put(l, h.Panel.Position, '■', colorStyle(h.Panel.Color).Bold(true))
		}
	}

	vst := styleBody
	if w.CanEnter() {
		vst = stylePrompt
	} else if !w.Driving() {
		vst = styleHelp
	}
	r.put(l, w.Vehicle.Position, arrow(w.Vehicle.Heading), vst)
	if !w.Driving() {
		st := styleBody
		if w.Avatar.Airborne {
			st = styleAccent
		}
		r.put(l, w.Avatar.Position, '@', st)
	}

	r.drawSidebar(l)
	r.drawStatus()
	s.Show()
}

func (r *Radar) drawSidebar(l layout) {
	if l.sideW <= 0 {
		return
	}
	_, h := r.screen.Size()
	for y := 0; y < h-1; y++ {
		r.screen.SetContent(l.sideX-1, y, '│', nil, styleBorder)
	}
	y := 0
	if r.showHelp {
		for _, line := range view.HelpText(r.world) {
			for _, part := range view.Wrap(line, l.sideW) {
				r.text(l.sideX, y, l.sideW, part, styleHelp)
				y++
			}
		}
		r.text(l.sideX, y, l.sideW, "? toggles help, Esc quits", styleAccent)
		y += 2
	}

	r.labels = view.Labels(r.scene, r.labels)
	// Nearest first in the sidebar.
	for i := len(r.labels) - 1; i >= 0 && y < h-1; i-- {
		lb := r.labels[i]
		r.text(l.sideX, y, l.sideW, lb.Title, colorStyle(lb.Color.RGB()).Bold(true))
		y++
		for _, line := range lb.Lines {
			for _, part := range view.Wrap(line, l.sideW) {
				if y >= h-1 {
					return
				}
				r.text(l.sideX, y, l.sideW, part, styleDefault)
				y++
			}
		}
		y++
	}
}

func (r *Radar) drawStatus() {
	w, h := r.screen.Size()
	wd := r.world
	b := wd.Active()
	status := fmt.Sprintf(" %s %c  x:%5.1f z:%5.1f  speed:%5.3f  camera:%s",
		wd.State, arrow(b.Heading), b.Position.X, b.Position.Z, b.Speed, wd.Camera.Mode)
	r.text(0, h-1, w, status, styleHelp.Reverse(true))
	if r.banner != "" && wd.Frame < r.bannerUntil {
		msg := " " + r.banner + " "
		r.text(w-len([]rune(msg)), h-1, w, msg, r.bannerStyle.Reverse(true))
	}
}
