package term

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"letitsnow/snow"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func TestSurfaceMeasure(t *testing.T) {
	screen := newScreen(t, 20, 10)

	s := NewSurface(screen, snow.Host{Placement: snow.PlacementViewport})
	w, h := s.Measure()
	assert.Equal(t, 20*CellWidth, w)
	assert.Equal(t, 10*CellHeight, h)

	el := snow.Host{Placement: snow.PlacementElement, Element: snow.Element{Box: snow.Box{X: 15, Y: 2, Width: 10, Height: 4}}}
	s = NewSurface(screen, el)
	w, h = s.Measure()
	assert.Equal(t, 5*CellWidth, w, "element box is clipped to the screen")
	assert.Equal(t, 4*CellHeight, h)
}

func TestSurfaceFillCircle(t *testing.T) {
	screen := newScreen(t, 20, 10)
	el := snow.Host{Placement: snow.PlacementElement, Element: snow.Element{Box: snow.Box{X: 2, Y: 3, Width: 5, Height: 5}}}
	s := NewSurface(screen, el)

	s.FillCircle(17, 33, 4, color.NRGBA{255, 255, 255, 200})
	r, _, style, _ := screen.GetContent(4, 5)
	assert.Equal(t, '*', r)
	assert.Equal(t, tcell.StyleDefault.Foreground(tcell.NewRGBColor(200, 200, 200)), style)

	// outside the element and above the top edge are dropped
	s.FillCircle(-5, 10, 4, color.NRGBA{A: 255})
	s.FillCircle(1000, 10, 4, color.NRGBA{A: 255})

	s.Clear()
	r, _, _, _ = screen.GetContent(4, 5)
	assert.Equal(t, ' ', r)
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, '.', Glyph(2))
	assert.Equal(t, '*', Glyph(3))
	assert.Equal(t, '*', Glyph(4.9))
	assert.Equal(t, '❄', Glyph(8))
}

func TestHostFramesAndResize(t *testing.T) {
	screen := newScreen(t, 40, 12)
	host := snow.Host{
		Placement: snow.PlacementViewport,
		Element:   snow.Element{Data: map[string]string{"density": "low", "speed": "fast"}},
	}
	h := NewHost(screen, host, 30, snow.NewRand(4))
	sim := h.Simulator()
	require.NoError(t, sim.Start())
	assert.Equal(t, snow.SurfaceSize{Width: 320, Height: 192}, sim.Size())
	assert.Len(t, sim.Particles(), 50)

	for i := 0; i < 10; i++ {
		h.Frame()
	}
	assert.Equal(t, uint64(10), sim.Frames())

	screen.SetSize(20, 6)
	assert.True(t, h.handle(tcell.NewEventResize(20, 6)))
	h.Frame()
	assert.Equal(t, snow.SurfaceSize{Width: 160, Height: 96}, sim.Size())
	assert.Len(t, sim.Particles(), 50)
	for _, p := range sim.Particles() {
		assert.Less(t, p.X, 160.0)
		assert.Less(t, p.Y, 0.0)
	}
}
