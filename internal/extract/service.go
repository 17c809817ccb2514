// Package extract finds the dominant colours of single images, memoising
// results per path.
package extract

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/dominant/internal/cache"
	"github.com/jmylchreest/dominant/internal/colour"
	"github.com/jmylchreest/dominant/internal/image"
	"github.com/jmylchreest/dominant/internal/render"
)

// Failure tags why an extraction produced no colours.
type Failure int

const (
	// FailureNone means the extraction succeeded.
	FailureNone Failure = iota
	// FailureNotFound means the image path does not exist.
	FailureNotFound
	// FailureDecode means the file exists but could not be read as an image.
	FailureDecode
	// FailureCluster means the clustering step failed.
	FailureCluster
	// FailureConvert means a cluster centre did not convert to a canonical hex colour.
	FailureConvert
)

func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureNotFound:
		return "not-found"
	case FailureDecode:
		return "decode"
	case FailureCluster:
		return "cluster"
	case FailureConvert:
		return "convert"
	default:
		return fmt.Sprintf("failure(%d)", int(f))
	}
}

// Result is the outcome of one extraction.
type Result struct {
	Path    string
	Colours []string
	// Weights holds the relative cluster size of each colour when the
	// algorithm reports one. Cached results carry no weights.
	Weights []float64
	// Cached is set when Colours came from an earlier extraction of Path.
	Cached  bool
	Failure Failure
	Err     error
	// RenderErr holds a display failure. It never affects Colours.
	RenderErr error
}

// OK reports whether colours were extracted.
func (r Result) OK() bool {
	return r.Failure == FailureNone
}

// Service extracts dominant colours. One Service owns one cache, so results
// are shared by every caller holding the same Service.
type Service struct {
	loader    image.Loader
	cache     *cache.Cache
	renderer  render.Renderer
	logger    hclog.Logger
	algorithm colour.Algorithm
	seed      colour.SeedConfig
}

// Option configures a Service.
type Option func(*Service)

// WithRenderer sets the renderer used when a palette should be shown.
func WithRenderer(r render.Renderer) Option {
	return func(s *Service) { s.renderer = r }
}

// WithLogger sets the logger.
func WithLogger(l hclog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithAlgorithm selects the extraction algorithm.
func WithAlgorithm(alg colour.Algorithm) Option {
	return func(s *Service) { s.algorithm = alg }
}

// WithSeed selects how clustering is seeded.
func WithSeed(cfg colour.SeedConfig) Option {
	return func(s *Service) { s.seed = cfg }
}

// New creates a Service. Without options it loads from disk, clusters with
// unseeded k-means, renders to the terminal and logs at debug level to stderr.
func New(opts ...Option) *Service {
	s := &Service{
		loader:    image.NewFileLoader(),
		cache:     cache.New(),
		algorithm: colour.AlgorithmKMeans,
		seed:      colour.SeedConfig{Mode: colour.SeedModeRandom},
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = hclog.New(&hclog.LoggerOptions{
			Name:  "dominant",
			Level: hclog.Debug,
		})
	}
	if s.renderer == nil {
		s.renderer = render.NewTerminal(os.Stdout, os.Stdin)
	}
	return s
}

// Extract returns up to k dominant colours of the image at path as "#rrggbb"
// strings. Any failure is logged and yields an empty list, so an empty list
// means "extraction failed", not "image has no colours". Use ExtractResult to
// learn why.
func (s *Service) Extract(path string, k int, show bool) []string {
	res := s.ExtractResult(path, k, show)
	if !res.OK() {
		return []string{}
	}
	return res.Colours
}

// ExtractResult extracts the dominant colours of the image at path.
//
// A path that was extracted before is answered from the cache without
// reading the file again, whatever k is now. When show is set, a freshly
// extracted palette is passed to the renderer.
func (s *Service) ExtractResult(path string, k int, show bool) Result {
	res := Result{Path: path}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) || path == "" {
		return s.fail(res, FailureNotFound, fmt.Errorf("%w: %s", image.ErrNotFound, path))
	}

	if colours, ok := s.cache.Get(path); ok {
		s.logger.Info("returning cached result", "path", path)
		res.Colours = colours
		res.Cached = true
		return res
	}

	raster, err := s.loader.Load(path)
	if err != nil {
		failure := FailureDecode
		if errors.Is(err, image.ErrNotFound) {
			failure = FailureNotFound
		} else if hdr, herr := image.ReadHeader(path); herr == nil {
			// The header parsed but the pixel data did not, e.g. a truncated file.
			s.logger.Debug("image header readable", "path", path, "format", hdr.Format, "width", hdr.Width, "height", hdr.Height)
		}
		return s.fail(res, failure, err)
	}
	s.logger.Debug("image loaded", "path", path, "width", raster.Width(), "height", raster.Height())

	seed, err := colour.CalculateSeed(raster, path, s.seed)
	if err != nil {
		return s.fail(res, FailureCluster, err)
	}

	extractor, err := colour.NewExtractor(s.algorithm, colour.ExtractorOptions{Seed: seed})
	if err != nil {
		return s.fail(res, FailureCluster, err)
	}

	palette, err := extractor.Extract(raster, k)
	if err != nil {
		return s.fail(res, FailureCluster, err)
	}
	s.logger.Debug("dominant colours found", "path", path, "algorithm", string(s.algorithm), "count", palette.Len())

	colours := palette.ToHex()
	for _, hex := range colours {
		if !colour.IsHex(hex) {
			return s.fail(res, FailureConvert, fmt.Errorf("non-canonical colour %q", hex))
		}
	}
	s.logger.Debug("dominant colours in hex", "path", path, "colours", colours)

	s.cache.Put(path, colours)
	s.logger.Trace("cached colours", "path", path, "entries", s.cache.Len())
	res.Colours = colours
	if len(palette.Weights) == len(colours) {
		res.Weights = slices.Clone(palette.Weights)
	}

	if show {
		s.logger.Debug("displaying colour palette", "colours", colours)
		if err := s.renderer.Render(colours); err != nil {
			s.logger.Warn("unable to display palette", "path", path, "error", err)
			res.RenderErr = err
		}
	}

	return res
}

func (s *Service) fail(res Result, failure Failure, err error) Result {
	res.Colours = nil
	res.Failure = failure
	res.Err = err
	s.logger.Error("error while extracting colours", "path", res.Path, "reason", failure.String(), "error", err)
	return res
}
