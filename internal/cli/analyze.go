package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/dominant/internal/analyze"
)

func newAnalyzeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <directory>",
		Short: "Extract dominant colours from every image in a directory",
		Long: `Analyze walks a directory recursively and extracts the dominant colours of
every .png, .jpg, .jpeg, .bmp and .tiff file it finds.

With --aggregate, the per-image palettes are averaged position by position
into a single palette for the whole directory.

Examples:
  # One report per image
  dominant analyze ~/Pictures/wallpapers

  # One palette for the whole directory
  dominant analyze --aggregate -c 3 ~/Pictures/wallpapers`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, v)
			if err != nil {
				return err
			}
			return a.runAnalyze(args[0], v.GetBool("aggregate"))
		},
	}

	cmd.Flags().Bool("aggregate", false, "average all images into one palette")

	return cmd
}

func (a *app) runAnalyze(dir string, aggregate bool) error {
	analyzer := analyze.New(a.service, a.logger.Named("analyze"))

	result, err := analyzer.Analyze(dir, analyze.Options{
		K:         a.colours,
		Show:      a.show,
		Aggregate: aggregate,
	})
	if err != nil {
		return err
	}

	if aggregate {
		if !result.Aggregated() {
			a.logger.Warn("no image yielded colours, nothing to aggregate", "dir", dir)
			return nil
		}
		return a.report.Aggregated(result.Aggregate, result.AggregateImages)
	}

	names := make(map[string]int, len(result.Entries))
	for _, entry := range result.Entries {
		names[filepath.Base(entry.Path)]++
	}

	for _, entry := range result.Entries {
		name := filepath.Base(entry.Path)
		// Images sharing a file name are told apart by their path under dir.
		if names[name] > 1 {
			if rel, err := filepath.Rel(dir, entry.Path); err == nil {
				name = rel
			}
		}
		if err := a.report.Image(name, entry.Colours, nil); err != nil {
			return err
		}
	}
	return nil
}
