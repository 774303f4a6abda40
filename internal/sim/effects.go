package sim

import (
	"math"

	"github.com/google/uuid"
)

// Effect is a purely decorative animation advanced once per frame.
type Effect interface {
	Tick(dt float64)
}

// Effects is the single registry of decorative animations. Every effect
// keeps its own phase; the main loop ticks them all in registration order.
type Effects struct {
	order []uuid.UUID
	byID  map[uuid.UUID]Effect
}

func NewEffects() *Effects {
	return &Effects{byID: make(map[uuid.UUID]Effect)}
}

// Add registers fx and returns its handle.
func (e *Effects) Add(fx Effect) uuid.UUID {
	id := uuid.New()
	e.byID[id] = fx
	e.order = append(e.order, id)
	return id
}

func (e *Effects) Get(id uuid.UUID) (Effect, bool) {
	fx, ok := e.byID[id]
	return fx, ok
}

// Remove unregisters an effect. It reports false for unknown handles.
func (e *Effects) Remove(id uuid.UUID) bool {
	if _, ok := e.byID[id]; !ok {
		return false
	}
	delete(e.byID, id)
	for i, v := range e.order {
		if v == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	return true
}

func (e *Effects) Len() int { return len(e.order) }

func (e *Effects) Tick(dt float64) {
	for _, id := range e.order {
		e.byID[id].Tick(dt)
	}
}

// Hover floats and spins a panel while it is visible.
type Hover struct {
	Panel    *Panel
	Base     float64 // lift above the panel position
	Bob      float64 // bob amplitude
	BobRate  float64 // rad/s
	SpinRate float64 // rad/s

	t float64
}

func (h *Hover) Tick(dt float64) {
	h.t += dt
	if h.Panel == nil || !h.Panel.Visible {
		return
	}
	h.Panel.Lift = h.Base + math.Sin(h.t*h.BobRate)*h.Bob
	h.Panel.Spin = h.t * h.SpinRate
}

// Pulse oscillates Value around Base.
type Pulse struct {
	Base  float64
	Amp   float64
	Rate  float64 // rad/s
	Value float64

	t float64
}

func (p *Pulse) Tick(dt float64) {
	p.t += dt
	p.Value = p.Base + math.Sin(p.t*p.Rate)*p.Amp
}

// Swirl spins particles about the vertical axis through Center while each
// bobs on its own phase.
type Swirl struct {
	Center       Vec3
	Points       []Vec3 // relative to Center
	AngularSpeed float64 // rad/s
	Height       float64
	Bob          float64
	BobRate      float64

	t float64
}

func (s *Swirl) Tick(dt float64) {
	s.t += dt
	da := s.AngularSpeed * dt
	for i := range s.Points {
		p := s.Points[i].RotateY(da)
		p.Y = math.Sin(s.t*s.BobRate+float64(i))*s.Bob + s.Height
		s.Points[i] = p
	}
}

// Rise lifts particles at a constant rate and wraps them back to the floor.
type Rise struct {
	Points []Vec3 // relative to the owner
	Speed  float64
	Top    float64
}

func (r *Rise) Tick(dt float64) {
	for i := range r.Points {
		r.Points[i].Y += r.Speed * dt
		if r.Points[i].Y > r.Top {
			r.Points[i].Y = 0
		}
	}
}
