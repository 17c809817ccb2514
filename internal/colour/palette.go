// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"fmt"
	"image/color"
	"regexp"

	"github.com/lucasb-eyer/go-colorful"
)

var hexPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

// RGB represents a colour in 8-bit RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the canonical lower-case hex form (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// FromUnit converts channels in [0,1] to RGB, clamping out-of-range values
// and rounding to the nearest 8-bit step.
func FromUnit(r, g, b float64) RGB {
	r8, g8, b8 := colorful.Color{R: r, G: g, B: b}.Clamped().RGB255()
	return RGB{R: r8, G: g8, B: b8}
}

// ParseHex parses a "#rrggbb" string. Upper-case digits are accepted.
func ParseHex(s string) (RGB, error) {
	if len(s) != 7 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: expected #rrggbb", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// IsHex reports whether s is a canonical colour string (#rrggbb, lower case).
func IsHex(s string) bool {
	return hexPattern.MatchString(s)
}

// Palette represents a collection of colours extracted from an image, in
// the order the extraction algorithm produced them.
type Palette struct {
	Colors []RGB
	// Weights holds the relative cluster sizes when the algorithm reports them.
	Weights []float64
}

// NewPalette creates a new Palette with the given colours.
func NewPalette(colors []RGB) *Palette {
	return &Palette{
		Colors: colors,
	}
}

// NewPaletteWithWeights creates a Palette whose colours carry relative weights.
func NewPaletteWithWeights(colors []RGB, weights []float64) *Palette {
	return &Palette{
		Colors:  colors,
		Weights: weights,
	}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// ToHex converts the palette colours to hex strings.
// Returns a slice of hex colour codes (e.g., ["#1a2b3c", "#4d5e6f"]).
func (p *Palette) ToHex() []string {
	hexColors := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		hexColors[i] = c.Hex()
	}
	return hexColors
}

// ColorJSON is the machine-readable form of one palette colour.
type ColorJSON struct {
	Hex    string  `json:"hex"`
	RGB    RGB     `json:"rgb"`
	Weight float64 `json:"weight,omitempty"`
}

// JSON returns the colour's machine-readable form. A zero weight is omitted.
func (rgb RGB) JSON(weight float64) ColorJSON {
	return ColorJSON{Hex: rgb.Hex(), RGB: rgb, Weight: weight}
}
