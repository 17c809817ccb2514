package colour

import (
	"fmt"
	"image"
	"image/color"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/cenkalti/dominantcolor"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// MuesliExtractor clusters the normalised pixel matrix with github.com/muesli/kmeans.
type MuesliExtractor struct{}

// NewMuesliExtractor creates a new MuesliExtractor.
func NewMuesliExtractor() *MuesliExtractor {
	return &MuesliExtractor{}
}

// Extract returns exactly count colours. Images with fewer pixels than count
// are clustered into one centre per pixel and padded with the last centre.
func (e *MuesliExtractor) Extract(px Pixels, count int) (*Palette, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}

	data := PixelMatrix(px)
	if data == nil {
		return nil, fmt.Errorf("%w: no pixels found in image", ErrCluster)
	}

	n, _ := data.Dims()
	dataset := make(clusters.Observations, 0, n)
	for i := range n {
		row := data.RawRowView(i)
		dataset = append(dataset, clusters.Coordinates{row[0], row[1], row[2]})
	}

	cc, err := kmeans.New().Partition(dataset, min(count, n))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCluster, err)
	}
	if len(cc) == 0 {
		return nil, fmt.Errorf("%w: no clusters produced", ErrCluster)
	}

	colors := make([]RGB, 0, count)
	weights := make([]float64, 0, count)
	for _, c := range cc {
		if len(c.Center) < 3 {
			return nil, fmt.Errorf("%w: cluster centre has %d dimensions", ErrCluster, len(c.Center))
		}
		colors = append(colors, FromUnit(c.Center[0], c.Center[1], c.Center[2]))
		weights = append(weights, float64(len(c.Observations))/float64(n))
	}
	for len(colors) < count {
		colors = append(colors, colors[len(colors)-1])
		weights = append(weights, 0)
	}

	return NewPaletteWithWeights(colors, weights), nil
}

// ProminentExtractor wraps github.com/EdlinOrg/prominentcolor.
// The image is downscaled before clustering and no background is masked out.
type ProminentExtractor struct {
	resize uint
}

// NewProminentExtractor creates a new ProminentExtractor.
func NewProminentExtractor() *ProminentExtractor {
	return &ProminentExtractor{resize: prominentcolor.DefaultSize}
}

// Extract extracts up to count colours.
func (e *ProminentExtractor) Extract(px Pixels, count int) (*Palette, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}
	if px.PixelCount() == 0 {
		return nil, fmt.Errorf("%w: no pixels found in image", ErrCluster)
	}

	items, err := prominentcolor.KmeansWithAll(count, px.Image(), prominentcolor.ArgumentNoCropping, e.resize, []prominentcolor.ColorBackgroundMask{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCluster, err)
	}

	total := 0
	for _, item := range items {
		total += item.Cnt
	}

	colors := make([]RGB, 0, len(items))
	weights := make([]float64, 0, len(items))
	for _, item := range items {
		colors = append(colors, RGB{R: uint8(item.Color.R), G: uint8(item.Color.G), B: uint8(item.Color.B)})
		if total > 0 {
			weights = append(weights, float64(item.Cnt)/float64(total))
		}
	}

	return NewPaletteWithWeights(colors, weights), nil
}

// DominantExtractor wraps github.com/cenkalti/dominantcolor.
type DominantExtractor struct{}

// NewDominantExtractor creates a new DominantExtractor.
func NewDominantExtractor() *DominantExtractor {
	return &DominantExtractor{}
}

// Extract extracts up to count colours, most dominant first.
func (e *DominantExtractor) Extract(px Pixels, count int) (*Palette, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}
	if px.PixelCount() == 0 {
		return nil, fmt.Errorf("%w: no pixels found in image", ErrCluster)
	}

	found := dominantcolor.FindWeight(px.Image(), count)
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: no dominant colours found", ErrCluster)
	}

	colors := make([]RGB, len(found))
	weights := make([]float64, len(found))
	for i, c := range found {
		colors[i] = ToRGB(c.RGBA)
		weights[i] = c.Weight
	}

	return NewPaletteWithWeights(colors, weights), nil
}

// MedianCutExtractor quantises the image with the median cut algorithm.
// Alpha is dropped before quantising, as for the k-means extractors.
type MedianCutExtractor struct {
	quantizer quantize.MedianCutQuantizer
}

// NewMedianCutExtractor creates a new MedianCutExtractor.
func NewMedianCutExtractor() *MedianCutExtractor {
	return &MedianCutExtractor{quantizer: quantize.MedianCutQuantizer{AddTransparent: false}}
}

// Extract extracts up to count colours.
func (e *MedianCutExtractor) Extract(px Pixels, count int) (*Palette, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}
	if px.PixelCount() == 0 {
		return nil, fmt.Errorf("%w: no pixels found in image", ErrCluster)
	}

	p := e.quantizer.Quantize(make(color.Palette, 0, count), opaqueImage(px))
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: quantiser produced an empty palette", ErrCluster)
	}

	colors := make([]RGB, 0, min(len(p), count))
	for _, c := range p[:min(len(p), count)] {
		colors = append(colors, ToRGB(c))
	}

	return NewPalette(colors), nil
}

// opaqueImage copies px with every pixel made fully opaque, keeping the
// stored RGB channels of transparent pixels.
func opaqueImage(px Pixels) *image.NRGBA {
	b := px.Image().Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	w := b.Dx()
	for i := range px.PixelCount() {
		r, g, bl := px.At(i)
		img.SetNRGBA(i%w, i/w, color.NRGBA{R: r, G: g, B: bl, A: 255})
	}
	return img
}
