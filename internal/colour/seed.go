package colour

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"path/filepath"
	"slices"
)

// SeedMode determines how the random seed for k-means clustering is chosen.
type SeedMode string

const (
	// SeedModeRandom leaves clustering unseeded, so results may vary between runs.
	SeedModeRandom SeedMode = "random"
	// SeedModeContent derives the seed from a hash of the pixel data.
	SeedModeContent SeedMode = "content"
	// SeedModeFilepath derives the seed from a hash of the absolute file path.
	SeedModeFilepath SeedMode = "filepath"
	// SeedModeManual uses a user-provided seed value.
	SeedModeManual SeedMode = "manual"
)

// SeedConfig holds configuration for seed generation.
type SeedConfig struct {
	Mode  SeedMode
	Value int64 // only used when Mode is SeedModeManual
}

// ValidSeedModes returns a list of valid seed modes.
func ValidSeedModes() []SeedMode {
	return []SeedMode{SeedModeRandom, SeedModeContent, SeedModeFilepath, SeedModeManual}
}

// ParseSeedMode converts a string to a SeedMode.
func ParseSeedMode(s string) (SeedMode, error) {
	mode := SeedMode(s)
	if slices.Contains(ValidSeedModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %s (valid: random, content, filepath, manual)", s)
}

// CalculateSeed returns the seed for one extraction, or nil in random mode.
func CalculateSeed(px Pixels, imagePath string, config SeedConfig) (*int64, error) {
	var seed int64
	switch config.Mode {
	case SeedModeRandom, "":
		return nil, nil
	case SeedModeContent:
		if px == nil {
			return nil, fmt.Errorf("pixels are required for content-based seed mode")
		}
		seed = contentSeed(px)
	case SeedModeFilepath:
		if imagePath == "" {
			return nil, fmt.Errorf("image path is required for filepath-based seed mode")
		}
		seed = filepathSeed(imagePath)
	case SeedModeManual:
		seed = config.Value
	default:
		return nil, fmt.Errorf("unknown seed mode: %s", config.Mode)
	}
	return &seed, nil
}

// contentSeed hashes the pixel count and a grid sample of the pixels, so the
// same picture yields the same seed wherever it lives on disk.
func contentSeed(px Pixels) int64 {
	n := px.PixelCount()
	hasher := sha256.New()

	var countBytes [8]byte
	binary.LittleEndian.PutUint64(countBytes[:], uint64(n)) // #nosec G115 -- pixel counts are non-negative
	hasher.Write(countBytes[:])

	step := max(n/10000, 1)
	pixelBytes := make([]byte, 3)
	for i := 0; i < n; i += step {
		pixelBytes[0], pixelBytes[1], pixelBytes[2] = px.At(i)
		hasher.Write(pixelBytes)
	}

	hash := hasher.Sum(nil)
	return int64(binary.LittleEndian.Uint64(hash[:8])) // #nosec G115 -- hash conversion is safe
}

// filepathSeed hashes the absolute path, falling back to the path as given.
func filepathSeed(imagePath string) int64 {
	absPath, err := filepath.Abs(imagePath)
	if err != nil {
		absPath = imagePath
	}

	hash := sha256.Sum256([]byte(absPath))
	return int64(binary.LittleEndian.Uint64(hash[:8])) // #nosec G115 -- hash conversion is safe
}
