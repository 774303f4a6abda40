package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"lunarfolio/internal/sim"
)

const (
	FrontendGL  = "gl"
	FrontendTUI = "tui"

	EnvPrefix = "LUNARFOLIO"
)

type WindowConfig struct {
	Width  int
	Height int
	Title  string
}

type AudioConfig struct {
	Enabled bool
	Volume  float64
}

type LogConfig struct {
	Level string
	File  string
}

// Config is the resolved startup configuration.
type Config struct {
	Frontend    string
	Seed        uint64
	Window      WindowConfig
	Audio       AudioConfig
	Log         LogConfig
	ContentPath string
	Tuning      sim.Tuning

	// File is the config file that was read, empty when none was found.
	File string
}

func setDefaults() {
	viper.SetDefault("frontend", FrontendGL)
	viper.SetDefault("seed", 1969)

	viper.SetDefault("window.width", 1280)
	viper.SetDefault("window.height", 720)
	viper.SetDefault("window.title", "Lunar Portfolio")

	viper.SetDefault("audio.enabled", true)
	viper.SetDefault("audio.volume", 0.6)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "")

	viper.SetDefault("content.path", "")

	t := sim.DefaultTuning()
	setBodyDefaults("vehicle", t.Vehicle)
	setBodyDefaults("avatar", t.Avatar)

	viper.SetDefault("world.jumpVelocity", t.JumpVelocity)
	viper.SetDefault("world.gravity", t.Gravity)
	viper.SetDefault("world.interactionDistance", t.InteractionDistance)
	viper.SetDefault("world.bound", t.Bound)
	setVecDefaults("world.exitOffset", t.ExitOffset)

	viper.SetDefault("proximity.infoDistance", t.Proximity.InfoDistance)
	viper.SetDefault("proximity.curiosityDistance", t.Proximity.CuriosityDistance)
	viper.SetDefault("proximity.ringDistance", t.Proximity.RingDistance)
	viper.SetDefault("proximity.minOpacity", t.Proximity.MinOpacity)
	viper.SetDefault("proximity.revealScale", t.Proximity.RevealScale)
	viper.SetDefault("proximity.smoothRate", t.Proximity.SmoothRate)

	setVecDefaults("camera.followOffset", t.Camera.FollowOffset)
	viper.SetDefault("camera.followLerp", t.Camera.FollowLerp)
	viper.SetDefault("camera.lookHeight", t.Camera.LookHeight)
	viper.SetDefault("camera.orbitMinDistance", t.Camera.OrbitMinDistance)
	viper.SetDefault("camera.orbitMaxDistance", t.Camera.OrbitMaxDistance)
	viper.SetDefault("camera.orbitMaxPolar", t.Camera.OrbitMaxPolar)
	viper.SetDefault("camera.orbitDamping", t.Camera.OrbitDamping)
}

func setBodyDefaults(prefix string, b sim.BodyTuning) {
	viper.SetDefault(prefix+".acceleration", b.Acceleration)
	viper.SetDefault(prefix+".deceleration", b.Deceleration)
	viper.SetDefault(prefix+".maxSpeed", b.MaxSpeed)
	viper.SetDefault(prefix+".turnRate", b.TurnRate)
}

func setVecDefaults(prefix string, v sim.Vec3) {
	viper.SetDefault(prefix+".x", v.X)
	viper.SetDefault(prefix+".y", v.Y)
	viper.SetDefault(prefix+".z", v.Z)
}

func getBody(prefix string) sim.BodyTuning {
	return sim.BodyTuning{
		Acceleration: viper.GetFloat64(prefix + ".acceleration"),
		Deceleration: viper.GetFloat64(prefix + ".deceleration"),
		MaxSpeed:     viper.GetFloat64(prefix + ".maxSpeed"),
		TurnRate:     viper.GetFloat64(prefix + ".turnRate"),
	}
}

func getVec(prefix string) sim.Vec3 {
	return sim.V3(
		viper.GetFloat64(prefix+".x"),
		viper.GetFloat64(prefix+".y"),
		viper.GetFloat64(prefix+".z"),
	)
}

// Load resolves configuration from defaults, an optional YAML file,
// LUNARFOLIO_* environment variables and flags, in increasing priority.
// An empty path searches for lunarfolio.yaml in the working directory and
// tolerates its absence; an explicit path must exist.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if flags != nil {
		if err := viper.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("error binding flags: %w", err)
		}
	}

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("lunarfolio")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	c := &Config{
		Frontend: strings.ToLower(viper.GetString("frontend")),
		Seed:     viper.GetUint64("seed"),
		Window: WindowConfig{
			Width:  viper.GetInt("window.width"),
			Height: viper.GetInt("window.height"),
			Title:  viper.GetString("window.title"),
		},
		Audio: AudioConfig{
			Enabled: viper.GetBool("audio.enabled"),
			Volume:  viper.GetFloat64("audio.volume"),
		},
		Log: LogConfig{
			Level: viper.GetString("log.level"),
			File:  viper.GetString("log.file"),
		},
		ContentPath: viper.GetString("content.path"),
		Tuning:      loadTuning(),
		File:        viper.ConfigFileUsed(),
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// loadTuning reads every leaf key on its own; UnmarshalKey on a parent key
// would miss env and flag overrides of nested keys.
func loadTuning() sim.Tuning {
	g := viper.GetFloat64
	return sim.Tuning{
		Vehicle:             getBody("vehicle"),
		Avatar:              getBody("avatar"),
		JumpVelocity:        g("world.jumpVelocity"),
		Gravity:             g("world.gravity"),
		InteractionDistance: g("world.interactionDistance"),
		ExitOffset:          getVec("world.exitOffset"),
		Bound:               g("world.bound"),
		Proximity: sim.ProximityTuning{
			InfoDistance:      g("proximity.infoDistance"),
			CuriosityDistance: g("proximity.curiosityDistance"),
			RingDistance:      g("proximity.ringDistance"),
			MinOpacity:        g("proximity.minOpacity"),
			RevealScale:       g("proximity.revealScale"),
			SmoothRate:        g("proximity.smoothRate"),
		},
		Camera: sim.CameraTuning{
			FollowOffset:     getVec("camera.followOffset"),
			FollowLerp:       g("camera.followLerp"),
			LookHeight:       g("camera.lookHeight"),
			OrbitMinDistance: g("camera.orbitMinDistance"),
			OrbitMaxDistance: g("camera.orbitMaxDistance"),
			OrbitMaxPolar:    g("camera.orbitMaxPolar"),
			OrbitDamping:     g("camera.orbitDamping"),
		},
	}
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	switch c.Frontend {
	case FrontendGL, FrontendTUI:
	default:
		return fmt.Errorf("invalid frontend %q (want %q or %q)", c.Frontend, FrontendGL, FrontendTUI)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume must be within [0, 1], got %g", c.Audio.Volume)
	}

	t := c.Tuning
	for name, b := range map[string]sim.BodyTuning{"vehicle": t.Vehicle, "avatar": t.Avatar} {
		if b.MaxSpeed <= 0 || b.Acceleration <= 0 || b.Deceleration < 0 || b.TurnRate < 0 {
			return fmt.Errorf("%s tuning must be positive: %+v", name, b)
		}
	}
	if t.Bound <= 0 {
		return fmt.Errorf("world.bound must be positive, got %g", t.Bound)
	}
	if t.Gravity <= 0 {
		return fmt.Errorf("world.gravity must be positive, got %g", t.Gravity)
	}
	if t.Camera.OrbitMinDistance <= 0 || t.Camera.OrbitMinDistance > t.Camera.OrbitMaxDistance {
		return fmt.Errorf("invalid orbit distance range [%g, %g]", t.Camera.OrbitMinDistance, t.Camera.OrbitMaxDistance)
	}
	if p := t.Camera.OrbitMaxPolar; p <= sim.MinOrbitElevation || p > math.Pi/2 {
		return fmt.Errorf("camera.orbitMaxPolar must be within (%g, π/2], got %g", sim.MinOrbitElevation, p)
	}
	return nil
}

// Flags declares the command-line overrides understood by Load. Flag
// names match config keys so viper binds them directly.
func Flags(fs *pflag.FlagSet) {
	fs.String("frontend", FrontendGL, "frontend to run: gl or tui")
	fs.Uint64("seed", 1969, "decoration seed")
	fs.Int("window.width", 1280, "window width")
	fs.Int("window.height", 720, "window height")
	fs.Bool("audio.enabled", true, "play interface sounds")
	fs.String("log.level", "info", "log level: trace, debug, info, warn, error")
	fs.String("log.file", "", "also write logs to this file")
	fs.String("content.path", "", "portfolio YAML overriding the embedded one")
}
