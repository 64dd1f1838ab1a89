// Command dicesim rolls up to five six-sided dice in a desktop window.
package main

import (
	"context"
	"fmt"
	"os"

	"dicesim/internal/assets"
	"dicesim/internal/config"
	"dicesim/internal/dice"
	"dicesim/internal/logging"
	"dicesim/internal/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// launchFunc opens the window. Tests replace it to inspect the resolved options.
type launchFunc func(ctx context.Context, opts ui.Options) error

type flags struct {
	faceSet   string
	count     string
	assetDir  string
	seed      uint64
	history   int
	logLevel  string
	logFormat string
	noPrompt  bool
}

// apply copies every flag the user actually set over the env settings.
func (f *flags) apply(cmd *cobra.Command, s *config.Settings) {
	fl := cmd.Flags()
	if fl.Changed("type") {
		s.FaceSet = f.faceSet
	}
	if fl.Changed("count") {
		s.Count = f.count
	}
	if fl.Changed("assets") {
		s.AssetDir = f.assetDir
	}
	if fl.Changed("seed") {
		s.Seed = f.seed
	}
	if fl.Changed("history") {
		s.HistorySize = f.history
	}
	if fl.Changed("log-level") {
		s.LogLevel = f.logLevel
	}
	if fl.Changed("log-format") {
		s.LogFormat = f.logFormat
	}
	if fl.Changed("no-prompt") {
		s.NoPrompt = f.noPrompt
	}
}

// NewRootCmd creates the root command. launch is called with the fully
// resolved options once the assets have loaded.
func NewRootCmd(launch launchFunc) *cobra.Command {
	f := &flags{}
	rootCmd := &cobra.Command{
		Use:   "dicesim",
		Short: "Dice Simulator - roll 1 to 5 six-sided dice",
		Long: `Dice Simulator opens a window showing up to five dice.
Press SPACE to roll and ESC (or close the window) to quit.

Dice type and count not given by flag or environment are asked for on stdin.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.FromEnv()
			if err != nil {
				return err
			}
			f.apply(cmd, &settings)
			if err := settings.Validate(); err != nil {
				return err
			}

			logger := logging.New(settings.LogLevel, settings.LogFormat)
			defer logger.Sync() //nolint:errcheck

			if err := settings.FillMissing(config.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())); err != nil {
				return err
			}
			cfg := settings.DiceConfig(logger)

			lib, err := assets.Load(settings.AssetDir, assets.FaceSize)
			if err != nil {
				return err
			}
			logger.Info("assets loaded", zap.String("source", lib.Source()))

			opts := ui.Options{
				Config:      cfg,
				Assets:      lib,
				Logger:      logger,
				Results:     cmd.OutOrStdout(),
				HistorySize: settings.HistorySize,
			}
			if settings.Seed != 0 {
				opts.OutcomeSource = dice.NewSeededSource(settings.Seed, 1)
				opts.FlickerSource = dice.NewSeededSource(settings.Seed, 2)
			}
			return launch(cmd.Context(), opts)
		},
	}

	fl := rootCmd.Flags()
	fl.StringVarP(&f.faceSet, "type", "t", "", "Dice type: Q (ivory) or W (crimson); anything else means Q")
	fl.StringVarP(&f.count, "count", "n", "", "Number of dice, clamped to 1-5; non-numeric means 1")
	fl.StringVar(&f.assetDir, "assets", "", "Directory with Q1..Q6, W1..W6 and DIE images (default: built-in faces)")
	fl.Uint64Var(&f.seed, "seed", 0, "Seed for reproducible rolls (0 means random)")
	fl.IntVar(&f.history, "history", config.DefaultHistorySize, "Number of recent totals to show (0 to disable)")
	fl.StringVar(&f.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	fl.StringVar(&f.logFormat, "log-format", "console", "Log format: console or json")
	fl.BoolVar(&f.noPrompt, "no-prompt", false, "Never prompt; use defaults for missing values")

	return rootCmd
}

func main() {
	rootCmd := NewRootCmd(ui.Run)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
