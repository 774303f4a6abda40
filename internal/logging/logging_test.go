package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunarfolio/internal/sim"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"trace":   zerolog.TraceLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_WritesConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New("info", &buf)
	log.Info().Str("k", "v").Msg("hello")
	log.Debug().Msg("hidden")

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "k=")
	assert.NotContains(t, out, "hidden")
}

func TestNew_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	log := New("debug", &a, nil, &b)
	log.Debug().Msg("both")
	assert.Contains(t, a.String(), "both")
	assert.Contains(t, b.String(), "both")
	// Secondary outputs are never colourised.
	assert.NotContains(t, b.String(), "\x1b[")
}

func TestNew_NoOutputs(t *testing.T) {
	log := New("debug")
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
}

func TestSubscribe_LogsEvents(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", nil, &buf)

	w := sim.NewWorld(sim.DefaultTuning(), []*sim.Panel{
		{Name: "About Me", Kind: sim.PanelInfo, Position: sim.V3(0, 0, 3)},
	})
	Subscribe(w.Events, log)

	w.Step()
	w.ExitVehicle()
	w.Avatar.Position = sim.V3(20, 0, 0)
	w.EnterVehicle()

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, "panel-shown")
	assert.Contains(t, out, "About Me")
	assert.Contains(t, out, "vehicle-exited")
	assert.Contains(t, out, "enter-rejected")
}

func TestSubscribe_RejectionVisibleAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New("info", nil, &buf)
	bus := sim.NewEventBus()
	Subscribe(bus, log)

	bus.Emit(sim.Event{Type: sim.EventLanded})
	assert.Empty(t, buf.String())

	bus.Emit(sim.Event{Type: sim.EventEnterRejected, Distance: 4})
	assert.Contains(t, buf.String(), "enter-rejected")
}
