// Package render displays colour palettes as horizontal swatch strips.
package render

import (
	"errors"
)

// Renderer shows a palette. Swatches are unlabeled and appear in list order.
type Renderer interface {
	Render(colours []string) error
}

// ErrEmptyPalette is returned when there is nothing to draw.
var ErrEmptyPalette = errors.New("palette has no colours to render")

// Nop discards every palette.
type Nop struct{}

// Render implements Renderer.
func (Nop) Render([]string) error { return nil }

// Multi renders the palette with each renderer in turn.
type Multi []Renderer

// Render implements Renderer. Every renderer runs even if an earlier one fails.
func (m Multi) Render(colours []string) error {
	var errs []error
	for _, r := range m {
		if err := r.Render(colours); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
