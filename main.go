package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"letitsnow/overlay"
	"letitsnow/raster"
	"letitsnow/settings"
	"letitsnow/snow"
	"letitsnow/term"
)

func main() {
	configPath := flag.String("c", "letitsnow.yaml", "page description (yaml)")
	backend := flag.String("backend", "", "window, framebuffer or terminal (overrides config)")
	level := flag.String("d", "", "log level: debug, info, warn, error")
	logFile := flag.String("o", "", "log file")
	showCaller := flag.Bool("caller", false, "show caller in log lines")
	size := flag.String("size", "", "snowflake size: small, medium, large")
	speed := flag.String("speed", "", "fall speed: slow, medium, fast")
	density := flag.String("density", "", "snowflake count: low, medium, high")
	seed := flag.Int64("seed", 0, "random seed (0 seeds from the clock)")
	flag.Parse()

	cfg, err := settings.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *level != "" {
		cfg.LogLevel = *level
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	if *showCaller {
		cfg.LogShowCaller = true
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	// terminal output would be overwritten by the screen
	if cfg.Backend == settings.BackendTerminal && cfg.LogFile == "" {
		cfg.LogFile = "letitsnow.log"
	}

	logger, err := settings.NewLogger(cfg.LogConfig)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	// flags override whichever element the overlay attaches to
	host := snow.ResolveHost(cfg.Page()).
		WithHint(snow.HintSize, *size).
		WithHint(snow.HintSpeed, *speed).
		WithHint(snow.HintDensity, *density)
	var rng snow.Rand = snow.NewEntropyRand()
	if cfg.Seed != 0 {
		rng = snow.NewRand(cfg.Seed)
	}
	logger.Debugw("host resolved", "element", host.Element.ID, "placement", host.Placement, "config", host.Config())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, host, rng, logger); err != nil {
		logger.Errorw("letitsnow", "err", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg settings.Settings, host snow.Host, rng snow.Rand, logger *zap.SugaredLogger) error {
	switch cfg.Backend {
	case settings.BackendFramebuffer:
		dev, err := raster.OpenFramebuffer(cfg.Device)
		if err != nil {
			return err
		}
		defer dev.Close()
		h := raster.NewFramebufferHost(dev, host, cfg.FPS, rng)
		h.Log = logger
		h.Simulator().Log = logger
		return h.Run(ctx)

	case settings.BackendTerminal:
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
		defer screen.Fini()
		h := term.NewHost(screen, host, cfg.FPS, rng)
		h.Log = logger
		h.Simulator().Log = logger
		return h.Run(ctx)

	default:
		return overlay.Run(ctx, host, overlay.Options{
			FPS:        cfg.FPS,
			Rand:       rng,
			ProfileDir: cfg.ProfileDir,
			Log:        logger,
		})
	}
}
