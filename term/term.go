// Package term draws the snowfall into a terminal, one glyph per flake.
package term

import (
	"context"
	"image"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"letitsnow/snow"
)

// Logical pixels per terminal cell
const (
	CellWidth  = 8
	CellHeight = 16
)

// Surface maps the pixel-space simulation onto terminal cells.
// Element boxes are given in cells.
type Surface struct {
	screen tcell.Screen
	host   snow.Host
}

// NewSurface wraps an initialised screen
func NewSurface(screen tcell.Screen, host snow.Host) *Surface {
	return &Surface{screen: screen, host: host}
}

// area is the cell rectangle covered by the overlay
func (s *Surface) area() image.Rectangle {
	w, h := s.screen.Size()
	return s.host.Area(image.Rect(0, 0, w, h))
}

// Measure returns the overlay size in logical pixels
func (s *Surface) Measure() (int, int) {
	a := s.area()
	return a.Dx() * CellWidth, a.Dy() * CellHeight
}

// Clear blanks the overlay area
func (s *Surface) Clear() {
	a := s.area()
	for y := a.Min.Y; y < a.Max.Y; y++ {
		for x := a.Min.X; x < a.Max.X; x++ {
			s.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
}

// FillCircle puts a flake glyph in the cell under (x, y)
func (s *Surface) FillCircle(x, y, radius float64, clr color.NRGBA) {
	if x < 0 || y < 0 {
		return
	}
	a := s.area()
	cell := image.Pt(int(x)/CellWidth, int(y)/CellHeight).Add(a.Min)
	if !cell.In(a) {
		return
	}
	s.screen.SetContent(cell.X, cell.Y, Glyph(radius), nil, Style(clr))
}

// Glyph picks a rune for a flake radius
func Glyph(radius float64) rune {
	switch {
	case radius < 3:
		return '.'
	case radius < 5:
		return '*'
	default:
		return '❄'
	}
}

// Style shades a flake grey by its alpha
func Style(clr color.NRGBA) tcell.Style {
	level := int32(clr.A)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(level, level, level))
}

// Host runs the simulator against a terminal screen.
type Host struct {
	screen  tcell.Screen
	surface *Surface
	queue   *snow.FrameQueue
	sim     *snow.Simulator
	fps     int

	Log *zap.SugaredLogger
}

// NewHost creates a terminal host for an initialised screen
func NewHost(screen tcell.Screen, host snow.Host, fps int, rng snow.Rand) *Host {
	if fps <= 0 {
		fps = 30
	}
	surface := NewSurface(screen, host)
	queue := snow.NewFrameQueue()
	return &Host{
		screen:  screen,
		surface: surface,
		queue:   queue,
		sim:     snow.NewSimulator(host.Config(), surface, queue, rng),
		fps:     fps,
		Log:     zap.NewNop().Sugar(),
	}
}

// Simulator returns the simulator driven by this host
func (h *Host) Simulator() *snow.Simulator { return h.sim }

// Resized queues a re-measure on the frame queue
func (h *Host) Resized() {
	_ = h.queue.Post(func() {
		h.screen.Sync()
		h.sim.Resize()
	})
}

// Frame runs queued work and shows the result
func (h *Host) Frame() {
	h.queue.RunFrame()
	h.screen.Show()
}

// handle reacts to one terminal event. It returns false when the user asked to quit.
func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.Resized()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		}
	}
	return true
}

// Run drives frames until ctx is cancelled or the user presses Esc/Ctrl-C.
// The caller owns the screen and calls Fini after Run returns.
func (h *Host) Run(ctx context.Context) error {
	if err := h.sim.Start(); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			if !h.handle(ev) {
				cancel()
				return
			}
		}
	}()

	w, ht := h.surface.Measure()
	h.Log.Infow("terminal overlay", "width", w, "height", ht, "fps", h.fps)

	ticker := time.NewTicker(time.Second / time.Duration(h.fps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.sim.Stop()
			h.queue.Close()
			return nil
		case <-ticker.C:
			h.Frame()
		}
	}
}
