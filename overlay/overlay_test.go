package overlay

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"letitsnow/snow"
)

// fakeSurface stands in for the ebiten image
type fakeSurface struct {
	w, h    int
	clears  int
	circles int
}

func (f *fakeSurface) Measure() (int, int)                       { return f.w, f.h }
func (f *fakeSurface) Clear()                                    { f.clears++; f.circles = 0 }
func (f *fakeSurface) FillCircle(_, _, _ float64, _ color.NRGBA) { f.circles++ }
func (f *fakeSurface) SetSize(w, h int)                          { f.w, f.h = w, h }
func (f *fakeSurface) Image() *ebiten.Image                      { return nil }

func newTestGame(ctx context.Context, host snow.Host) (*Game, *fakeSurface) {
	surface := &fakeSurface{}
	g := NewGame(ctx, host, surface, 60, snow.NewRand(1))
	g.closing = func() bool { return false }
	return g, surface
}

func TestGeometry(t *testing.T) {
	viewport := snow.Host{Placement: snow.PlacementViewport}
	assert.Equal(t, image.Rect(0, 0, 1920, 1080), Geometry(viewport, 1920, 1080))

	el := snow.Host{Placement: snow.PlacementElement, Element: snow.Element{Box: snow.Box{X: 100, Y: 50, Width: 400, Height: 300}}}
	assert.Equal(t, image.Rect(100, 50, 500, 350), Geometry(el, 1920, 1080))

	el.Element.Box = snow.Box{X: 1800, Y: 1000, Width: 400, Height: 300}
	assert.Equal(t, image.Rect(1800, 1000, 1920, 1080), Geometry(el, 1920, 1080))

	el.Element.Box = snow.Box{X: 5000, Y: 5000, Width: 10, Height: 10}
	assert.Equal(t, image.Rect(0, 0, 1920, 1080), Geometry(el, 1920, 1080))
}

func TestGameWaitsForLayout(t *testing.T) {
	g, surface := newTestGame(context.Background(), snow.Host{})

	require.NoError(t, g.Update())
	assert.False(t, g.Simulator().Running())

	w, h := g.Layout(800, 600)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	require.NoError(t, g.Update())
	assert.True(t, g.Simulator().Running())
	assert.Equal(t, uint64(1), g.Simulator().Frames())
	assert.Equal(t, 200, surface.circles)
}

func TestGameLayoutChangeRepopulates(t *testing.T) {
	host := snow.Host{Element: snow.Element{Data: map[string]string{"density": "low"}}}
	g, _ := newTestGame(context.Background(), host)
	g.Layout(800, 600)
	require.NoError(t, g.Update())
	require.NoError(t, g.Update())

	// same size does not repopulate
	g.Layout(800, 600)
	assert.Equal(t, 1, g.queue.Len())

	g.Layout(400, 300)
	assert.Equal(t, 2, g.queue.Len())
	require.NoError(t, g.Update())

	sim := g.Simulator()
	assert.Equal(t, snow.SurfaceSize{Width: 400, Height: 300}, sim.Size())
	require.Len(t, sim.Particles(), 50)
	for _, p := range sim.Particles() {
		assert.Less(t, p.X, 400.0)
		assert.Less(t, p.Y, 0.0)
	}
}

func TestGameStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	g, _ := newTestGame(ctx, snow.Host{})
	g.Layout(100, 100)
	require.NoError(t, g.Update())

	cancel()
	assert.ErrorIs(t, g.Update(), ebiten.Termination)
	assert.False(t, g.Simulator().Running())
	assert.True(t, g.queue.Closed())
	frames := g.Simulator().Frames()

	assert.ErrorIs(t, g.Update(), ebiten.Termination)
	assert.Equal(t, frames, g.Simulator().Frames())
}

func TestGameStopsOnWindowClose(t *testing.T) {
	g, _ := newTestGame(context.Background(), snow.Host{})
	g.Layout(100, 100)
	require.NoError(t, g.Update())

	g.closing = func() bool { return true }
	assert.ErrorIs(t, g.Update(), ebiten.Termination)
	assert.False(t, g.Simulator().Running())
}

func TestWatchdogReportsDrops(t *testing.T) {
	start := time.Unix(0, 0)
	w := NewWatchdog(60, start)
	var drops []float64
	w.OnDrop = func(fps float64) { drops = append(drops, fps) }

	now := start
	step := func(n int, dt time.Duration) {
		for i := 0; i < n; i++ {
			now = now.Add(dt)
			w.Frame(now)
		}
	}

	// slow frames during warmup are ignored
	step(20, 100*time.Millisecond)
	assert.Empty(t, drops)

	// full speed after warmup
	step(124, time.Second/60)
	assert.Empty(t, drops)
	assert.InDelta(t, 60, w.FPS(), 1)

	step(10, 100*time.Millisecond)
	require.Len(t, drops, 1)
	assert.InDelta(t, 10, drops[0], 0.5)

	// cooldown suppresses the next drop
	step(10, 100*time.Millisecond)
	assert.Len(t, drops, 1)

	step(100, 100*time.Millisecond)
	assert.Len(t, drops, 2)
}
