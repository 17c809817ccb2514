package analyze

import (
	"fmt"

	"github.com/jmylchreest/dominant/internal/colour"
)

// Aggregator averages colour lists position by position across images.
//
// Entry i of the result is the channel-wise integer mean of entry i from
// every contributing list. A list shorter than the others only contributes
// to the positions it has.
type Aggregator struct {
	k      int
	sums   [][3]int
	counts []int
	images int
}

// NewAggregator creates an aggregator producing at most k colours.
func NewAggregator(k int) *Aggregator {
	k = max(k, 0)
	return &Aggregator{
		k:      k,
		sums:   make([][3]int, k),
		counts: make([]int, k),
	}
}

// Add folds one image's colour list into the running sums. Entries past k are
// ignored. The list is rejected as a whole if any entry is not a hex colour.
func (a *Aggregator) Add(colours []string) error {
	if len(colours) == 0 {
		return nil
	}

	n := min(len(colours), a.k)
	parsed := make([]colour.RGB, n)
	for i := range n {
		rgb, err := colour.ParseHex(colours[i])
		if err != nil {
			return fmt.Errorf("colour %d: %w", i+1, err)
		}
		parsed[i] = rgb
	}

	for i, rgb := range parsed {
		a.sums[i][0] += int(rgb.R)
		a.sums[i][1] += int(rgb.G)
		a.sums[i][2] += int(rgb.B)
		a.counts[i]++
	}
	a.images++
	return nil
}

// Images returns the number of lists added.
func (a *Aggregator) Images() int {
	return a.images
}

// Palette returns the averaged colours, or nil when nothing was added.
func (a *Aggregator) Palette() []string {
	if a.images == 0 {
		return nil
	}

	palette := make([]string, 0, a.k)
	for i := range a.k {
		n := a.counts[i]
		if n == 0 {
			continue
		}
		rgb := colour.RGB{
			R: uint8(a.sums[i][0] / n), // #nosec G115 -- mean of uint8 values
			G: uint8(a.sums[i][1] / n), // #nosec G115 -- mean of uint8 values
			B: uint8(a.sums[i][2] / n), // #nosec G115 -- mean of uint8 values
		}
		palette = append(palette, rgb.Hex())
	}
	return palette
}
