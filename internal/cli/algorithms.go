package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/dominant/internal/colour"
)

var algorithmDescriptions = map[colour.Algorithm]string{
	colour.AlgorithmKMeans:    "k-means++ over RGB, honours --seed-mode",
	colour.AlgorithmMuesli:    "k-means via muesli/kmeans",
	colour.AlgorithmProminent: "k-means with downscaling via EdlinOrg/prominentcolor",
	colour.AlgorithmDominant:  "weighted k-means via cenkalti/dominantcolor",
	colour.AlgorithmMedianCut: "median cut quantisation via ericpauley/go-quantize",
}

var transparencyHandling = map[colour.Algorithm]string{
	colour.AlgorithmKMeans:    "alpha ignored, stored RGB used",
	colour.AlgorithmMuesli:    "alpha ignored, stored RGB used",
	colour.AlgorithmProminent: "skipped, fully transparent images fail",
	colour.AlgorithmDominant:  "skipped, fully transparent images fail",
	colour.AlgorithmMedianCut: "alpha ignored, stored RGB used",
}

var seedModeDescriptions = map[colour.SeedMode]string{
	colour.SeedModeRandom:   "unseeded, results may vary between runs",
	colour.SeedModeContent:  "seed from a hash of the pixel data",
	colour.SeedModeFilepath: "seed from a hash of the absolute file path",
	colour.SeedModeManual:   "seed from --seed",
}

func newAlgorithmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List extraction algorithms and seed modes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			algs := newTable("ALGORITHM", "DESCRIPTION", "TRANSPARENT PIXELS")
			for _, alg := range colour.ValidAlgorithms() {
				algs.addRow(string(alg), algorithmDescriptions[alg], transparencyHandling[alg])
			}

			seeds := newTable("SEED MODE", "DESCRIPTION")
			for _, mode := range colour.ValidSeedModes() {
				seeds.addRow(string(mode), seedModeDescriptions[mode])
			}

			fmt.Fprint(cmd.OutOrStdout(), algs.render(), "\n", seeds.render())
		},
	}
}
