// Package cli provides the command-line interface for dominant.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/dominant/internal/colour"
	"github.com/jmylchreest/dominant/internal/extract"
	"github.com/jmylchreest/dominant/internal/render"
	"github.com/jmylchreest/dominant/internal/report"
	"github.com/jmylchreest/dominant/internal/version"
)

// envPrefix prefixes the environment variable of every flag, e.g. DOMINANT_COLORS.
const envPrefix = "DOMINANT"

// NewRootCmd builds the dominant command tree. Flags may also be set from
// the environment; an explicit flag wins over the environment.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "dominant",
		Short: "Extract dominant colours from images",
		Long: `Dominant finds the most representative colours of an image by clustering
its pixels, and can summarise a whole directory of images as one palette.

Every flag can also be set through the environment, e.g. DOMINANT_COLORS=8
or DOMINANT_LOG_LEVEL=debug.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(v, cmd.Flags())
		},
	}

	defaults := colour.DefaultExtractorConfig()

	pf := rootCmd.PersistentFlags()
	pf.IntP("colors", "c", defaults.ColorCount, fmt.Sprintf("number of dominant colours per image (1-%d)", colour.MaxColors))
	pf.Bool("show", false, "display each palette in the terminal")
	pf.StringP("algorithm", "a", string(defaults.Algorithm), "extraction algorithm (kmeans, muesli, prominent, dominant, mediancut)")
	pf.String("seed-mode", string(colour.SeedModeRandom), "k-means seeding (random, content, filepath, manual)")
	pf.Int64("seed", 0, "seed value for --seed-mode manual")
	pf.String("palette-out", "", "directory to write each palette to as a PNG swatch strip")
	pf.StringP("format", "f", string(report.FormatText), "output format (text, json)")
	pf.String("log-level", "info", "log level (trace, debug, info, warn, error, off)")
	pf.Bool("log-json", false, "write logs as JSON")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newAlgorithmsCmd())
	rootCmd.AddCommand(newExtractCmd(v))
	rootCmd.AddCommand(newAnalyzeCmd(v))

	return rootCmd
}

// bindFlags makes every flag of the running command resolvable through v,
// which layers DOMINANT_* environment variables under explicitly set flags.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil {
			errs = append(errs, fmt.Errorf("failed to bind --%s: %w", f.Name, err))
		}
	})
	return errors.Join(errs...)
}

// app is the per-invocation state shared by the extract and analyze commands.
type app struct {
	logger  hclog.Logger
	service *extract.Service
	report  *report.Writer
	colours int
	show    bool
}

// newApp validates the resolved settings and wires the extraction service.
func newApp(cmd *cobra.Command, v *viper.Viper) (*app, error) {
	config := colour.ExtractorConfig{
		Algorithm:  colour.Algorithm(v.GetString("algorithm")),
		ColorCount: v.GetInt("colors"),
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	seedMode, err := colour.ParseSeedMode(v.GetString("seed-mode"))
	if err != nil {
		return nil, err
	}

	format, err := report.ParseFormat(v.GetString("format"))
	if err != nil {
		return nil, err
	}

	level := hclog.LevelFromString(v.GetString("log-level"))
	if level == hclog.NoLevel {
		return nil, fmt.Errorf("invalid log level: %s (valid: trace, debug, info, warn, error, off)", v.GetString("log-level"))
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "dominant",
		Level:      level,
		Output:     cmd.ErrOrStderr(),
		JSONFormat: v.GetBool("log-json"),
	})

	var renderers render.Multi
	if v.GetBool("show") {
		renderers = append(renderers, render.NewTerminal(cmd.OutOrStdout(), cmd.InOrStdin()))
	}
	if dir := v.GetString("palette-out"); dir != "" {
		renderers = append(renderers, render.NewPNG(dir, 0))
	}

	service := extract.New(
		extract.WithLogger(logger.Named("extract")),
		extract.WithRenderer(renderers),
		extract.WithAlgorithm(config.Algorithm),
		extract.WithSeed(colour.SeedConfig{Mode: seedMode, Value: v.GetInt64("seed")}),
	)

	logger.Debug("configuration resolved",
		"algorithm", string(config.Algorithm),
		"colors", config.ColorCount,
		"seed_mode", string(seedMode),
		"format", string(format))

	return &app{
		logger:  logger,
		service: service,
		report:  report.NewWriter(cmd.OutOrStdout(), format),
		colours: config.ColorCount,
		show:    len(renderers) > 0,
	}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
