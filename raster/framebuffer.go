package raster

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"time"

	fb "github.com/gonutz/framebuffer"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"

	"letitsnow/snow"
)

// Device is a writable display such as a Linux framebuffer
type Device interface {
	draw.Image
}

// OpenFramebuffer opens a framebuffer device such as /dev/fb0.
// The caller closes it.
func OpenFramebuffer(path string) (*fb.Device, error) {
	dev, err := fb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open framebuffer %s: %w", path, err)
	}
	return dev, nil
}

// FramebufferHost draws the snow over whatever was on the display when it
// started. Element placement confines the snow to the element box.
type FramebufferHost struct {
	dev        Device
	host       snow.Host
	canvas     *Canvas
	background *image.RGBA
	frame      *image.RGBA
	queue      *snow.FrameQueue
	sim        *snow.Simulator
	fps        int

	Log *zap.SugaredLogger
}

// NewFramebufferHost wraps an open device. The device content becomes the
// page the overlay is stacked on.
func NewFramebufferHost(dev Device, host snow.Host, fps int, rng snow.Rand) *FramebufferHost {
	if fps <= 0 {
		fps = 60
	}
	h := &FramebufferHost{
		dev:   dev,
		host:  host,
		queue: snow.NewFrameQueue(),
		fps:   fps,
		Log:   zap.NewNop().Sugar(),
	}
	h.background = image.NewRGBA(dev.Bounds())
	draw.Draw(h.background, h.background.Bounds(), dev, dev.Bounds().Min, draw.Src)

	w, ht := h.Measure()
	h.canvas = NewCanvas(w, ht)
	h.sim = snow.NewSimulator(host.Config(), h.canvas, h.queue, rng)
	return h
}

// Simulator returns the simulator driven by this host
func (h *FramebufferHost) Simulator() *snow.Simulator { return h.sim }

// area is the device rectangle the overlay covers
func (h *FramebufferHost) area() image.Rectangle {
	return h.host.Area(h.dev.Bounds())
}

// Measure reads the overlay box from the device
func (h *FramebufferHost) Measure() (int, int) {
	a := h.area()
	return a.Dx(), a.Dy()
}

// Frame runs one frame: queued tasks, then a blit to the device
func (h *FramebufferHost) Frame() {
	w, ht := h.Measure()
	if cw, ch := h.canvas.Measure(); cw != w || ch != ht {
		h.canvas.Resize(w, ht)
		_ = h.queue.Post(h.sim.Resize)
	}
	h.queue.RunFrame()
	h.blit()
}

func (h *FramebufferHost) blit() {
	area := h.area()
	if h.frame == nil || h.frame.Bounds() != area {
		h.frame = image.NewRGBA(area)
	}
	frame := h.frame
	draw.Draw(frame, area, h.background, area.Min, draw.Src)
	xdraw.Copy(frame, area.Min, h.canvas.Image(), h.canvas.Image().Bounds(), xdraw.Over, nil)
	draw.Draw(h.dev, area, frame, area.Min, draw.Src)
}

// Run starts the simulator and drives frames until ctx is cancelled.
// The display is restored to its original content on return.
func (h *FramebufferHost) Run(ctx context.Context) error {
	if err := h.sim.Start(); err != nil {
		return err
	}
	h.Log.Infow("framebuffer overlay", "placement", h.host.Placement, "bounds", h.area(), "fps", h.fps)

	ticker := time.NewTicker(time.Second / time.Duration(h.fps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.sim.Stop()
			h.queue.Close()
			draw.Draw(h.dev, h.dev.Bounds(), h.background, h.background.Bounds().Min, draw.Src)
			return nil
		case <-ticker.C:
			h.Frame()
		}
	}
}
