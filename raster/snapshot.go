package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"letitsnow/snow"
)

// snapshotBackground makes white snow visible in still images
var snapshotBackground = color.RGBA{R: 3, G: 5, B: 16, A: 255}

// Snapshot runs a simulator headless for the given number of ticks and
// returns the last frame composited over a dark background.
func Snapshot(cfg snow.SimulationConfig, width, height, ticks int, rng snow.Rand) (*image.RGBA, *snow.Simulator, error) {
	if width <= 0 || height <= 0 {
		return nil, nil, fmt.Errorf("snapshot size %dx%d: %w", width, height, snow.ErrNoSurface)
	}
	canvas := NewCanvas(width, height)
	queue := snow.NewFrameQueue()
	sim := snow.NewSimulator(cfg, canvas, queue, rng)
	if err := sim.Start(); err != nil {
		return nil, nil, err
	}
	for i := 0; i < ticks; i++ {
		queue.RunFrame()
	}
	sim.Stop()
	queue.Close()

	out := image.NewRGBA(canvas.Image().Bounds())
	draw.Draw(out, out.Bounds(), image.NewUniform(snapshotBackground), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), canvas.Image(), image.Point{}, draw.Over)
	return out, sim, nil
}

// WritePNG encodes img as PNG
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
