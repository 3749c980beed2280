package snow

import (
	"image/color"
	"math"
)

// Surface is a 2D drawing context sized to its host.
type Surface interface {
	// Measure returns the host box in pixels. It is read fresh on every call.
	Measure() (width, height int)

	// Clear wipes the whole surface to transparent
	Clear()

	// FillCircle draws a filled circle centred at (x, y)
	FillCircle(x, y, radius float64, clr color.NRGBA)
}

// MeasureSurface reads the current surface size
func MeasureSurface(s Surface) SurfaceSize {
	w, h := s.Measure()
	return SurfaceSize{Width: float64(w), Height: float64(h)}
}

// SnowColor returns white at the given opacity
func SnowColor(opacity float64) color.NRGBA {
	a := math.Max(0, math.Min(1, opacity))
	return color.NRGBA{R: 255, G: 255, B: 255, A: uint8(math.Round(a * 255))}
}

// Render clears the surface and draws every particle
func Render(s Surface, particles []Particle) {
	s.Clear()
	for _, p := range particles {
		s.FillCircle(p.X, p.Y, p.Size, SnowColor(p.Opacity))
	}
}
