package overlay

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"letitsnow/snow"
)

// Game adapts the simulator to ebiten's Update/Draw/Layout loop.
// Update drains the frame queue, so ticks and resize events run on the
// same goroutine in the order they were queued.
type Game struct {
	host    snow.Host
	surface Surface
	queue   *snow.FrameQueue
	sim     *snow.Simulator
	ctx     context.Context

	width    int
	height   int
	started  bool
	finished bool

	watchdog *Watchdog
	profiler *Profiler

	// closing reports a window close request
	closing func() bool
	now     func() time.Time

	Log *zap.SugaredLogger
}

// NewGame creates the overlay game. Cancelling ctx tears the overlay down.
func NewGame(ctx context.Context, host snow.Host, surface Surface, fps int, rng snow.Rand) *Game {
	queue := snow.NewFrameQueue()
	g := &Game{
		host:     host,
		surface:  surface,
		queue:    queue,
		sim:      snow.NewSimulator(host.Config(), surface, queue, rng),
		ctx:      ctx,
		watchdog: NewWatchdog(fps, time.Now()),
		closing:  ebiten.IsWindowBeingClosed,
		now:      time.Now,
		Log:      zap.NewNop().Sugar(),
	}
	g.watchdog.OnDrop = g.frameDrop
	return g
}

// Simulator returns the simulator driven by this game
func (g *Game) Simulator() *snow.Simulator { return g.sim }

// SetProfiler enables CPU captures on frame drops
func (g *Game) SetProfiler(p *Profiler) { g.profiler = p }

func (g *Game) frameDrop(fps float64) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	g.Log.Warnw("frame rate drop",
		"fps", fps,
		"particles", len(g.sim.Particles()),
		"num_gc", m.NumGC,
		"heap_kb", m.HeapAlloc/1024)
	if g.profiler == nil {
		return
	}
	reason := fmt.Sprintf("fps%.0f-particles%d", fps, len(g.sim.Particles()))
	if err := g.profiler.CaptureProfile(reason); err != nil {
		g.Log.Debugw("profile skipped", "err", err)
	}
}

// teardown stops the loop once
func (g *Game) teardown() {
	if g.finished {
		return
	}
	g.finished = true
	g.sim.Stop()
	g.queue.Close()
}

// Update runs one frame
func (g *Game) Update() error {
	if g.finished || g.ctx.Err() != nil || g.closing() {
		g.teardown()
		return ebiten.Termination
	}

	// content is ready once the window has a size
	if !g.started {
		if g.width <= 0 || g.height <= 0 {
			return nil
		}
		if err := g.sim.Start(); err != nil {
			return err
		}
		g.started = true
	}

	g.queue.RunFrame()
	g.watchdog.Frame(g.now())
	return nil
}

// Draw blits the last rendered frame
func (g *Game) Draw(screen *ebiten.Image) {
	if img := g.surface.Image(); img != nil {
		screen.DrawImage(img, nil)
	}
}

// Layout follows the window size and queues a repopulate when it changes
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.surface.SetSize(outsideWidth, outsideHeight)
		if g.started {
			if err := g.queue.Post(g.sim.Resize); err == nil {
				g.Log.Debugw("layout changed", "width", outsideWidth, "height", outsideHeight)
			}
		}
	}
	return outsideWidth, outsideHeight
}
