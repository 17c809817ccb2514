// Package analyze extracts dominant colours for every image under a directory
// and optionally averages them into a single palette.
package analyze

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/dominant/internal/image"
)

// Extractor returns the dominant colours of one image, or an empty list when
// extraction fails.
type Extractor interface {
	Extract(path string, k int, show bool) []string
}

// Options controls a directory analysis.
type Options struct {
	// K is the number of colours requested per image.
	K int
	// Show displays each freshly extracted palette.
	Show bool
	// Aggregate averages all per-image palettes into Result.Aggregate.
	Aggregate bool
}

// Entry is one successfully analysed image.
type Entry struct {
	Path    string
	Colours []string
}

// Result holds the outcome of a directory analysis.
type Result struct {
	// Files maps a base filename to its colours. Images sharing a base name
	// in different subdirectories overwrite each other, last one wins.
	Files map[string][]string
	// Entries lists every successful image in walk order with its full path.
	Entries []Entry
	// Aggregate is the averaged palette. It is nil unless aggregation was
	// requested and at least one image yielded colours.
	Aggregate []string
	// AggregateImages is the number of images folded into Aggregate.
	AggregateImages int
}

// Aggregated reports whether an aggregated palette was produced.
func (r *Result) Aggregated() bool {
	return r.Aggregate != nil
}

// Analyzer walks directories and runs an Extractor on each image.
type Analyzer struct {
	extractor Extractor
	logger    hclog.Logger
}

// New creates an Analyzer. A nil logger discards output.
func New(extractor Extractor, logger hclog.Logger) *Analyzer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Analyzer{
		extractor: extractor,
		logger:    logger,
	}
}

// Analyze visits every supported image under dir, recursively and in lexical
// order. Images that yield no colours are left out; only a missing or
// unreadable dir is an error.
func (a *Analyzer) Analyze(dir string, opts Options) (*Result, error) {
	paths, err := image.ScanDirectoryForImages(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	a.logger.Debug("found images", "dir", dir, "count", len(paths))

	result := &Result{Files: make(map[string][]string)}

	var agg *Aggregator
	if opts.Aggregate {
		agg = NewAggregator(opts.K)
	}

	for _, path := range paths {
		a.logger.Info("analyzing image", "path", path)

		colours := a.extractor.Extract(path, opts.K, opts.Show)
		if len(colours) == 0 {
			continue
		}

		result.Files[filepath.Base(path)] = colours
		result.Entries = append(result.Entries, Entry{Path: path, Colours: colours})

		if agg != nil {
			if err := agg.Add(colours); err != nil {
				a.logger.Warn("skipping image in aggregate", "path", path, "error", err)
			}
		}
	}

	if agg != nil {
		result.Aggregate = agg.Palette()
		result.AggregateImages = agg.Images()
		a.logger.Debug("aggregated palette", "images", agg.Images(), "colours", result.Aggregate)
	}

	return result, nil
}
