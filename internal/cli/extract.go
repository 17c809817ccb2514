package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newExtractCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <image>...",
		Short: "Extract dominant colours from one or more images",
		Long: `Extract the dominant colours of each image given on the command line.

Images that cannot be read or clustered are logged and skipped; they never
change the exit status.

Supported image formats: PNG, JPEG, BMP, TIFF, GIF, WebP

Examples:
  # Extract 5 colours (default) from an image
  dominant extract wallpaper.jpg

  # Extract 8 colours from two images and show the palettes
  dominant extract --show -c 8 a.png b.tiff

  # Reproducible clustering
  dominant extract --seed-mode manual --seed 42 wallpaper.jpg

  # Machine-readable output
  dominant extract -f json wallpaper.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, v)
			if err != nil {
				return err
			}
			return a.runExtract(args)
		},
	}
}

// runExtract reports each path in order. Paths yielding no colours print nothing.
func (a *app) runExtract(paths []string) error {
	for _, path := range paths {
		res := a.service.ExtractResult(path, a.colours, a.show)
		if !res.OK() {
			continue
		}
		if err := a.report.Image(path, res.Colours, res.Weights); err != nil {
			return err
		}
	}
	return nil
}
