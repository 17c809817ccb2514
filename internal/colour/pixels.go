package colour

import (
	"image"

	"gonum.org/v1/gonum/mat"
)

// Pixels is the read-only view of a decoded image that extractors work from.
type Pixels interface {
	// PixelCount returns the number of pixels.
	PixelCount() int
	// At returns the RGB channels of the i-th pixel in row-major order.
	At(i int) (r, g, b uint8)
	// Image returns the pixels as an image.Image.
	Image() image.Image
}

// PixelMatrix flattens px into a (pixel_count, 3) matrix with every channel
// rescaled from [0,255] to [0,1]. It returns nil for an empty image.
func PixelMatrix(px Pixels) *mat.Dense {
	n := px.PixelCount()
	if n == 0 {
		return nil
	}

	data := make([]float64, n*3)
	for i := range n {
		r, g, b := px.At(i)
		data[i*3] = float64(r) / 255
		data[i*3+1] = float64(g) / 255
		data[i*3+2] = float64(b) / 255
	}

	return mat.NewDense(n, 3, data)
}
