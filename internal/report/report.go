// Package report formats extracted colours for the console.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/dominant/internal/colour"
)

// Header is the first line of every colour listing.
const Header = "Dominant colors extracted:"

// OutputFormat selects how a Writer prints reports.
type OutputFormat string

const (
	// FormatText prints human-readable listings.
	FormatText OutputFormat = "text"
	// FormatJSON prints one JSON object per line.
	FormatJSON OutputFormat = "json"
)

// ParseFormat converts a string to an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: text, json)", s)
	}
}

// Format lists colours one per line as "Color N: #rrggbb" under Header.
func Format(colours []string) string {
	var b strings.Builder
	b.WriteString(Header)
	for i, c := range colours {
		fmt.Fprintf(&b, "\nColor %d: %s", i+1, c)
	}
	return b.String()
}

// Image formats the colours of a single image.
func Image(path string, colours []string) string {
	return "Image: " + path + "\n" + Format(colours)
}

// Aggregated formats a palette averaged across a directory.
func Aggregated(colours []string) string {
	return "Aggregated dominant colors for all images:\n" + Format(colours)
}

// ImageJSON is the machine-readable form of an image report.
type ImageJSON struct {
	Image  string             `json:"image"`
	Colors []colour.ColorJSON `json:"colors"`
}

// AggregateJSON is the machine-readable form of an aggregated report.
type AggregateJSON struct {
	Aggregate bool               `json:"aggregate"`
	Images    int                `json:"images"`
	Colors    []colour.ColorJSON `json:"colors"`
}

// JSON encodes a report as a single line.
func JSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return data, nil
}

// colorsJSON pairs each hex colour with its weight, when weights line up.
func colorsJSON(colours []string, weights []float64) ([]colour.ColorJSON, error) {
	out := make([]colour.ColorJSON, len(colours))
	for i, hex := range colours {
		rgb, err := colour.ParseHex(hex)
		if err != nil {
			return nil, err
		}
		var weight float64
		if len(weights) == len(colours) {
			weight = weights[i]
		}
		out[i] = rgb.JSON(weight)
	}
	return out, nil
}

// Writer prints reports in one format.
type Writer struct {
	w      io.Writer
	format OutputFormat
}

// NewWriter creates a Writer.
func NewWriter(w io.Writer, format OutputFormat) *Writer {
	return &Writer{w: w, format: format}
}

// Image prints the report for one image. Weights, when given one per
// colour, appear in JSON output only.
func (w *Writer) Image(path string, colours []string, weights []float64) error {
	if w.format == FormatJSON {
		colors, err := colorsJSON(colours, weights)
		if err != nil {
			return err
		}
		return w.writeJSON(ImageJSON{Image: path, Colors: colors})
	}
	return w.writeText(Image(path, colours))
}

// Aggregated prints the report for an aggregated palette built from images.
func (w *Writer) Aggregated(colours []string, images int) error {
	if w.format == FormatJSON {
		colors, err := colorsJSON(colours, nil)
		if err != nil {
			return err
		}
		return w.writeJSON(AggregateJSON{Aggregate: true, Images: images, Colors: colors})
	}
	return w.writeText(Aggregated(colours))
}

func (w *Writer) writeText(s string) error {
	_, err := fmt.Fprintln(w.w, s)
	return err
}

func (w *Writer) writeJSON(v any) error {
	data, err := JSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w.w, "%s\n", data)
	return err
}
