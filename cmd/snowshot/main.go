package main

import (
	"flag"
	"log"
	"os"
	"time"

	"letitsnow/raster"
	"letitsnow/settings"
	"letitsnow/snow"
)

func main() {
	out := flag.String("out", "snow.png", "output image")
	width := flag.Int("w", 800, "surface width")
	height := flag.Int("h", 600, "surface height")
	ticks := flag.Int("ticks", 300, "frames to simulate before the snapshot")
	size := flag.String("size", "", "snowflake size: small, medium, large")
	speed := flag.String("speed", "", "fall speed: slow, medium, fast")
	density := flag.String("density", "", "snowflake count: low, medium, high")
	seed := flag.Int64("seed", 1, "random seed")
	level := flag.String("d", "info", "log level: debug, info, warn, error")
	flag.Parse()

	logger, err := settings.NewLogger(settings.LogConfig{LogLevel: *level})
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	cfg := snow.Configure(*size, *speed, *density)
	start := time.Now()
	img, sim, err := raster.Snapshot(cfg, *width, *height, *ticks, snow.NewRand(*seed))
	if err != nil {
		logger.Fatalw("snapshot failed", "err", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		logger.Fatalw("create output", "err", err)
	}
	defer f.Close()
	if err := raster.WritePNG(f, img); err != nil {
		logger.Fatalw("write output", "err", err)
	}
	logger.Infow("snapshot written",
		"path", *out,
		"particles", len(sim.Particles()),
		"frames", sim.Frames(),
		"took", time.Since(start))
}
