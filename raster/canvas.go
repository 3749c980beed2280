package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic control points for a quarter circle
const kappa = 0.5522847498

// Canvas is an in-memory RGBA drawing surface.
type Canvas struct {
	img *image.RGBA
	z   vector.Rasterizer
}

// NewCanvas creates a transparent canvas
func NewCanvas(width, height int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Measure returns the canvas size
func (c *Canvas) Measure() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates the backing image when the size changed
func (c *Canvas) Resize(width, height int) {
	if w, h := c.Measure(); w == width && h == height {
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Image returns the backing image
func (c *Canvas) Image() *image.RGBA { return c.img }

// Clear sets every pixel to transparent
func (c *Canvas) Clear() {
	for i := range c.img.Pix {
		c.img.Pix[i] = 0
	}
}

// FillCircle rasterises an anti-aliased filled circle over the canvas
func (c *Canvas) FillCircle(x, y, radius float64, clr color.NRGBA) {
	if radius <= 0 || clr.A == 0 {
		return
	}
	box := image.Rect(
		int(math.Floor(x-radius)), int(math.Floor(y-radius)),
		int(math.Ceil(x+radius)), int(math.Ceil(y+radius)),
	).Intersect(c.img.Bounds())
	if box.Empty() {
		return
	}

	// rasterise in box-local coordinates
	cx := float32(x - float64(box.Min.X))
	cy := float32(y - float64(box.Min.Y))
	r := float32(radius)
	k := r * kappa

	c.z.Reset(box.Dx(), box.Dy())
	c.z.DrawOp = draw.Over
	c.z.MoveTo(cx+r, cy)
	c.z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	c.z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	c.z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	c.z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	c.z.ClosePath()
	c.z.Draw(c.img, box, image.NewUniform(clr), image.Point{})
}
