// Command lunarfolio runs the lunar portfolio, either in an OpenGL window or
// as a top-down radar in the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"lunarfolio/internal/config"
	"lunarfolio/internal/content"
	"lunarfolio/internal/game"
	"lunarfolio/internal/logging"
	"lunarfolio/internal/scene"
	"lunarfolio/internal/sim"
	"lunarfolio/internal/tui"
)

// BuildVersion can be set at build time via ldflags.
var BuildVersion = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "lunarfolio: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("lunarfolio", pflag.ContinueOnError)
	configPath := fs.String("config", "", "config file (default ./lunarfolio.yaml if present)")
	config.Flags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(*configPath, fs)
	if err != nil {
		return err
	}

	log, closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	log.Info().
		Str("version", BuildVersion).
		Str("frontend", cfg.Frontend).
		Str("config", cfg.File).
		Uint64("seed", cfg.Seed).
		Msg("starting")

	portfolio, err := loadPortfolio(cfg.ContentPath)
	if err != nil {
		return err
	}

	w := sim.NewWorld(cfg.Tuning, nil)
	logging.Subscribe(w.Events, log)
	sc := scene.Build(portfolio, cfg.Seed, w.Effects)
	w.Panels = sc.Panels
	log.Debug().
		Int("panels", len(sc.Panels)).
		Int("platforms", len(sc.Platforms)).
		Int("orbiters", len(sc.Orbiters.Points)).
		Msg("scene built")

	switch cfg.Frontend {
	case config.FrontendTUI:
		return runTerminal(log, sc, w)
	default:
		return game.RunDesktop(cfg, log, sc, w)
	}
}

func loadPortfolio(path string) (*content.Portfolio, error) {
	if path == "" {
		return content.Default()
	}
	return content.Load(path)
}

// setupLogging writes to stderr and the optional log file. The terminal
// frontend owns the screen, so it only logs to the file.
func setupLogging(cfg *config.Config) (zerolog.Logger, func(), error) {
	var outs []io.Writer
	if cfg.Frontend != config.FrontendTUI {
		outs = append(outs, os.Stderr)
	}

	closeFn := func() {}
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closeFn, fmt.Errorf("error opening log file: %w", err)
		}
		if len(outs) == 0 {
			// A lone file output would otherwise get terminal colours.
			outs = append(outs, nil)
		}
		outs = append(outs, f)
		closeFn = func() { _ = f.Close() }
	}
	return logging.New(cfg.Log.Level, outs...), closeFn, nil
}

func runTerminal(log zerolog.Logger, sc *scene.Scene, w *sim.World) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("error creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("error initializing screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = tui.New(screen, sc, w, log).Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	log.Info().Uint64("frames", w.Frame).Float64("seconds", w.Time).Msg("terminal closed")
	return err
}
