package overlay

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Surface is the offscreen target the simulator draws into.
// SetSize records the window's layout size; the backing image follows it
// on the next Clear.
type Surface interface {
	Measure() (width, height int)
	Clear()
	FillCircle(x, y, radius float64, clr color.NRGBA)
	SetSize(width, height int)
	Image() *ebiten.Image
}

// ImageSurface draws with ebiten's vector package
type ImageSurface struct {
	img    *ebiten.Image
	width  int
	height int
}

// NewImageSurface creates an empty surface
func NewImageSurface() *ImageSurface {
	return &ImageSurface{}
}

// Measure returns the last layout size
func (s *ImageSurface) Measure() (int, int) { return s.width, s.height }

// SetSize records a new layout size
func (s *ImageSurface) SetSize(width, height int) {
	s.width, s.height = width, height
}

// Image returns the offscreen image, nil before the first frame
func (s *ImageSurface) Image() *ebiten.Image { return s.img }

// Clear wipes the image, reallocating it when the layout changed
func (s *ImageSurface) Clear() {
	if s.width <= 0 || s.height <= 0 {
		return
	}
	if s.img != nil {
		b := s.img.Bounds()
		if b.Dx() != s.width || b.Dy() != s.height {
			s.img.Deallocate()
			s.img = nil
		}
	}
	if s.img == nil {
		s.img = ebiten.NewImage(s.width, s.height)
		return
	}
	s.img.Clear()
}

// FillCircle draws an anti-aliased filled circle
func (s *ImageSurface) FillCircle(x, y, radius float64, clr color.NRGBA) {
	if s.img == nil {
		return
	}
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(radius), clr, true)
}
