package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorld(panels ...*Panel) (*World, *[]Event) {
	w := NewWorld(DefaultTuning(), panels)
	var got []Event
	w.Events.SubscribeAll(func(e Event) { got = append(got, e) })
	return w, &got
}

func eventTypes(evs []Event) []EventType {
	out := make([]EventType, 0, len(evs))
	for _, e := range evs {
		out = append(out, e.Type)
	}
	return out
}

func TestWorld_StartsDriving(t *testing.T) {
	w, _ := newTestWorld()
	assert.True(t, w.Driving())
	assert.Equal(t, BodyVehicle, w.Active().Kind)
	assert.Equal(t, OrbitMode, w.Camera.Mode)
}

func TestExitVehicle_PlacesAvatarBeside(t *testing.T) {
	w, evs := newTestWorld()
	w.Vehicle.Position = V3(5, 0, 5)
	w.Vehicle.Heading = math.Pi / 2
	w.Vehicle.Speed = 0.05

	require.True(t, w.ExitVehicle())
	assert.Equal(t, WalkingAvatar, w.State)
	// (2,0,0) rotated a quarter turn about +Y.
	assert.InDelta(t, 5, w.Avatar.Position.X, 1e-9)
	assert.InDelta(t, 0, w.Avatar.Position.Y, 1e-12)
	assert.InDelta(t, 3, w.Avatar.Position.Z, 1e-9)
	assert.Equal(t, w.Vehicle.Heading, w.Avatar.Heading)
	assert.Zero(t, w.Vehicle.Speed, "vehicle is parked")
	assert.Equal(t, []EventType{EventVehicleExited}, eventTypes(*evs))
}

func TestExitVehicle_ClampsAtWall(t *testing.T) {
	w, _ := newTestWorld()
	w.Vehicle.Position = V3(WorldBound, 0, 0)
	require.True(t, w.ExitVehicle())
	assert.Equal(t, WorldBound, w.Avatar.Position.X)
}

func TestEnterVehicle_WhileDrivingIsNoop(t *testing.T) {
	w, evs := newTestWorld()
	before := *w
	assert.False(t, w.EnterVehicle())
	assert.Equal(t, before.State, w.State)
	assert.Equal(t, before.Avatar, w.Avatar)
	assert.Empty(t, *evs)
}

func TestEnterVehicle_Gated(t *testing.T) {
	cases := []struct {
		name string
		dx   float64
		ok   bool
	}{
		{"close", 1.5, true},
		{"at-range", 2, true},
		{"too-far", 3, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, evs := newTestWorld()
			w.State = WalkingAvatar
			w.Vehicle.Position = V3(10, 0, 10)
			w.Avatar.Position = V3(10+tc.dx, 0, 10)

			assert.Equal(t, tc.ok, w.CanEnter())
			assert.Equal(t, tc.ok, w.EnterVehicle())
			if tc.ok {
				assert.Equal(t, DrivingVehicle, w.State)
				assert.Equal(t, []EventType{EventVehicleEntered}, eventTypes(*evs))
				return
			}
			assert.Equal(t, WalkingAvatar, w.State)
			require.Len(t, *evs, 1)
			assert.Equal(t, EventEnterRejected, (*evs)[0].Type)
			assert.InDelta(t, tc.dx, (*evs)[0].Distance, 1e-12)
		})
	}
}

func TestStep_ToggleFiresOncePerHold(t *testing.T) {
	w, _ := newTestWorld()
	w.Keys.KeyDown("e")
	for i := 0; i < 30; i++ {
		w.Keys.KeyDown("e") // auto-repeat
		w.Step()
	}
	assert.Equal(t, WalkingAvatar, w.State)

	w.Keys.KeyUp("e")
	w.Step()
	w.Keys.KeyDown("e")
	w.Step()
	assert.Equal(t, DrivingVehicle, w.State, "avatar exits at exactly the interaction distance")
}

func TestStep_OnlyActiveBodyMoves(t *testing.T) {
	w, _ := newTestWorld()
	w.Keys.KeyDown("w")
	for i := 0; i < 10; i++ {
		w.Step()
	}
	assert.Greater(t, w.Vehicle.Position.Z, 0.0)
	assert.Equal(t, Vec3{}, w.Avatar.Position)
}

func TestStep_JumpOnlyWhileWalking(t *testing.T) {
	w, evs := newTestWorld()
	w.Keys.KeyDown("space")
	w.Step()
	assert.False(t, w.Avatar.Airborne)
	assert.NotContains(t, eventTypes(*evs), EventJumped)
	w.Keys.KeyUp("space")

	w.ExitVehicle()
	w.Keys.KeyDown("space")
	w.Step()
	assert.True(t, w.Avatar.Airborne)
	w.Keys.KeyUp("space")

	for i := 0; i < 60 && w.Avatar.Airborne; i++ {
		w.Step()
	}
	assert.False(t, w.Avatar.Airborne)
	types := eventTypes(*evs)
	assert.Contains(t, types, EventJumped)
	assert.Contains(t, types, EventLanded)
}

func TestStep_PanelEvents(t *testing.T) {
	p := &Panel{Name: "About", Kind: PanelInfo, Position: V3(0, 0, 9.9)}
	w, evs := newTestWorld(p)

	w.Step()
	require.True(t, p.Visible)
	require.Len(t, *evs, 1)
	assert.Equal(t, EventPanelShown, (*evs)[0].Type)
	assert.Same(t, p, (*evs)[0].Panel)
	assert.Equal(t, []*Panel{p}, w.VisiblePanels(nil))

	w.Vehicle.Position = V3(0, 0, -5)
	w.Step()
	assert.False(t, p.Visible)
	assert.Equal(t, EventPanelHidden, (*evs)[1].Type)
	assert.Empty(t, w.VisiblePanels(nil))
}

func TestStep_CameraToggle(t *testing.T) {
	w, evs := newTestWorld()
	w.Keys.KeyDown("c")
	w.Step()
	assert.Equal(t, FollowMode, w.Camera.Mode)
	require.NotEmpty(t, *evs)
	assert.Equal(t, FollowMode, (*evs)[0].Mode)
}

func TestAdvance_FixedSteps(t *testing.T) {
	w, _ := newTestWorld()
	assert.Equal(t, 0, w.Advance(0))
	assert.Equal(t, 0, w.Advance(FrameDuration/2))
	assert.Equal(t, 1, w.Advance(FrameDuration/2))
	assert.Equal(t, uint64(1), w.Frame)

	// A long stall is clamped.
	n := w.Advance(5)
	assert.Equal(t, 6, n)
	assert.InDelta(t, 7*FrameDuration, w.Time, 1e-9)
}
