package colour

import (
	"fmt"
	"slices"
)

// MaxColors is the largest palette any extractor will produce.
const MaxColors = 256

// Extractor defines the interface for colour extraction algorithms.
type Extractor interface {
	// Extract extracts a colour palette from an image.
	// The count parameter specifies the number of colours to extract;
	// implementations return at most count colours.
	Extract(px Pixels, count int) (*Palette, error)
}

// Algorithm represents the colour extraction algorithm type.
type Algorithm string

const (
	// AlgorithmKMeans uses the built-in k-means clustering over every pixel.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmMuesli uses k-means from github.com/muesli/kmeans.
	AlgorithmMuesli Algorithm = "muesli"

	// AlgorithmProminent uses k-means++ on a downscaled copy via github.com/EdlinOrg/prominentcolor.
	AlgorithmProminent Algorithm = "prominent"

	// AlgorithmDominant extracts the most dominant colours via github.com/cenkalti/dominantcolor.
	AlgorithmDominant Algorithm = "dominant"

	// AlgorithmMedianCut uses median cut quantisation.
	AlgorithmMedianCut Algorithm = "mediancut"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmKMeans,
		AlgorithmMuesli,
		AlgorithmProminent,
		AlgorithmDominant,
		AlgorithmMedianCut,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	return slices.Contains(ValidAlgorithms(), alg)
}

// ExtractorOptions tunes extractor construction.
type ExtractorOptions struct {
	// Seed makes the built-in k-means reproducible. Nil means unseeded.
	// The third-party algorithms manage their own randomness and ignore it.
	Seed *int64
}

// NewExtractor creates a new Extractor based on the specified algorithm.
// Returns an error if the algorithm is not recognised.
func NewExtractor(alg Algorithm, opts ExtractorOptions) (Extractor, error) {
	switch alg {
	case AlgorithmKMeans:
		return NewKMeansExtractor(opts.Seed), nil
	case AlgorithmMuesli:
		return NewMuesliExtractor(), nil
	case AlgorithmProminent:
		return NewProminentExtractor(), nil
	case AlgorithmDominant:
		return NewDominantExtractor(), nil
	case AlgorithmMedianCut:
		return NewMedianCutExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// ExtractorConfig holds configuration for colour extraction.
type ExtractorConfig struct {
	Algorithm  Algorithm
	ColorCount int
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm:  AlgorithmKMeans,
		ColorCount: 5,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("invalid algorithm: %s (valid algorithms: %v)", c.Algorithm, ValidAlgorithms())
	}
	if c.ColorCount < 1 {
		return fmt.Errorf("color count must be at least 1, got %d", c.ColorCount)
	}
	if c.ColorCount > MaxColors {
		return fmt.Errorf("color count too large: %d (maximum: %d)", c.ColorCount, MaxColors)
	}
	return nil
}
