package render

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/jmylchreest/dominant/internal/colour"
)

// PNG writes each palette as a strip of square swatches into a directory,
// one numbered file per Render call.
type PNG struct {
	dir  string
	size int
	n    int
}

// NewPNG creates a PNG renderer writing into dir with swatches size pixels wide.
func NewPNG(dir string, size int) *PNG {
	if size <= 0 {
		size = 64
	}
	return &PNG{dir: dir, size: size}
}

// Render implements Renderer.
func (p *PNG) Render(colours []string) error {
	if len(colours) == 0 {
		return ErrEmptyPalette
	}

	strip := imaging.New(p.size*len(colours), p.size, color.Black)
	for i, hex := range colours {
		rgb, err := colour.ParseHex(hex)
		if err != nil {
			return err
		}
		swatch := imaging.New(p.size, p.size, color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255})
		strip = imaging.Paste(strip, swatch, image.Pt(i*p.size, 0))
	}

	if err := os.MkdirAll(p.dir, 0o755); err != nil { // #nosec G301 - Output directory needs standard permissions
		return fmt.Errorf("failed to create palette directory: %w", err)
	}

	p.n++
	path := filepath.Join(p.dir, fmt.Sprintf("palette-%03d.png", p.n))
	if err := imaging.Save(strip, path); err != nil {
		return fmt.Errorf("failed to write palette image: %w", err)
	}
	return nil
}
