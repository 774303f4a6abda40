// Package logging builds the zerolog logger and bridges simulation events
// into it.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"lunarfolio/internal/sim"
)

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "DISABLED", "OFF":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New returns a console-format logger writing to every non-nil output. The
// first output is treated as a terminal; the rest get plain text.
func New(level string, outs ...io.Writer) zerolog.Logger {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	var writers []io.Writer
	for i, out := range outs {
		if out == nil {
			continue
		}
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    i > 0,
		})
	}
	if len(writers) == 0 {
		return zerolog.Nop()
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseLevel(level)).
		With().Timestamp().Logger()
}

// Subscribe logs every simulation event at debug level, and rejected
// vehicle entries at info so they show up with the default level.
func Subscribe(bus *sim.EventBus, log zerolog.Logger) {
	bus.SubscribeAll(func(e sim.Event) {
		ev := log.Debug()
		if e.Type == sim.EventEnterRejected {
			ev = log.Info()
		}
		ev = ev.Str("event", e.Type.String()).
			Uint64("frame", e.Frame).
			Float64("x", e.Position.X).
			Float64("z", e.Position.Z)

		switch e.Type {
		case sim.EventPanelShown, sim.EventPanelHidden:
			if e.Panel != nil {
				ev = ev.Str("panel", e.Panel.Name).
					Str("kind", e.Panel.Kind.String()).
					Float64("distance", e.Panel.Distance)
			}
		case sim.EventCameraMode:
			ev = ev.Str("mode", e.Mode.String())
		case sim.EventEnterRejected:
			ev = ev.Float64("distance", e.Distance)
		}
		ev.Msg("sim event")
	})
}
