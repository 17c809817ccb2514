package image

import (
	"image"

	"github.com/disintegration/imaging"
)

// Raster is a decoded image held as 8-bit RGB pixels in row-major order.
// Alpha is carried by the backing buffer but never read.
type Raster struct {
	img *image.NRGBA
}

// NewRaster copies img into a raster anchored at the origin.
func NewRaster(img image.Image) *Raster {
	return &Raster{img: imaging.Clone(img)}
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int {
	return r.img.Rect.Dx()
}

// Height returns the raster height in pixels.
func (r *Raster) Height() int {
	return r.img.Rect.Dy()
}

// PixelCount returns width*height.
func (r *Raster) PixelCount() int {
	return r.Width() * r.Height()
}

// At returns the RGB channels of the i-th pixel in row-major order.
func (r *Raster) At(i int) (red, green, blue uint8) {
	w := r.Width()
	off := r.img.PixOffset(i%w, i/w)
	return r.img.Pix[off], r.img.Pix[off+1], r.img.Pix[off+2]
}

// Image returns the raster as an image.Image for algorithms that sample pixels themselves.
func (r *Raster) Image() image.Image {
	return r.img
}
