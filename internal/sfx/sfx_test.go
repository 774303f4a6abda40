package sfx

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunarfolio/internal/sim"
)

func samples(t *testing.T, buf []byte) []float32 {
	t.Helper()
	require.Zero(t, len(buf)%frameBytes)
	out := make([]float32, 0, len(buf)/4)
	for i := 0; i < len(buf); i += 4 {
		out = append(out, math.Float32frombits(binary.LittleEndian.Uint32(buf[i:])))
	}
	return out
}

func TestGenerate_AllKinds(t *testing.T) {
	for k := Enter; k < kindCount; k++ {
		t.Run(k.String(), func(t *testing.T) {
			buf := Generate(k)
			require.NotEmpty(t, buf)
			s := samples(t, buf)
			peak := 0.0
			for i, v := range s {
				require.False(t, math.IsNaN(float64(v)), "sample %d", i)
				require.LessOrEqual(t, math.Abs(float64(v)), 1.0)
				peak = math.Max(peak, math.Abs(float64(v)))
			}
			assert.Greater(t, peak, 0.01, "audible")
			// Left and right carry the same mono signal.
			assert.Equal(t, s[200], s[201])
		})
	}
	assert.Nil(t, Generate(Kind(99)))
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestReader_DrainsOnce(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4, 5})
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, b)
	n, err := r.Read(make([]byte, 4))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestDrone_Streams(t *testing.T) {
	var d Drone
	p := make([]byte, 1024*frameBytes)
	n, err := d.Read(p)
	require.NoError(t, err)
	assert.Equal(t, len(p), n)
	for _, v := range samples(t, p) {
		require.LessOrEqual(t, math.Abs(float64(v)), 1.0)
	}

	// Skip to the second bar.
	d.t = droneBar + 0.5
	_, err = d.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Chord())
}

func TestAdsr(t *testing.T) {
	assert.InDelta(t, 0.5, adsr(0.05, 0.1, 0.2, 0.5, 0.2), 1e-12)
	assert.InDelta(t, 0.5, adsr(0.5, 0.1, 0.2, 0.5, 0.2), 1e-12)
	assert.InDelta(t, 0, adsr(1, 0.1, 0.2, 0.5, 0.2), 1e-12)
}

func TestForEvent(t *testing.T) {
	cases := []struct {
		ev   sim.Event
		want Kind
		ok   bool
	}{
		{sim.Event{Type: sim.EventVehicleEntered}, Enter, true},
		{sim.Event{Type: sim.EventVehicleExited}, Exit, true},
		{sim.Event{Type: sim.EventEnterRejected}, Reject, true},
		{sim.Event{Type: sim.EventJumped}, Jump, true},
		{sim.Event{Type: sim.EventLanded}, Land, true},
		{sim.Event{Type: sim.EventCameraMode}, CameraSwitch, true},
		{sim.Event{Type: sim.EventPanelShown, Panel: &sim.Panel{Kind: sim.PanelInfo}}, RevealInfo, true},
		{sim.Event{Type: sim.EventPanelShown, Panel: &sim.Panel{Kind: sim.PanelCuriosity}}, RevealCuriosity, true},
		{sim.Event{Type: sim.EventPanelShown, Panel: &sim.Panel{Kind: sim.PanelRing}}, 0, false},
		{sim.Event{Type: sim.EventPanelShown}, 0, false},
		{sim.Event{Type: sim.EventPanelHidden, Panel: &sim.Panel{}}, 0, false},
	}
	for _, c := range cases {
		k, ok := ForEvent(c.ev)
		assert.Equal(t, c.ok, ok, c.ev.Type.String())
		if c.ok {
			assert.Equal(t, c.want, k, c.ev.Type.String())
		}
	}
}
