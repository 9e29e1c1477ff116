package cli

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"chefwho/internal/app"
	"chefwho/internal/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chefwho",
	Short: "Chef Who - meal suggestions for the produce about to spoil",
	Long: `Chef Who picks the least fresh item in a user's inventory and asks a
language model for a meal or preservation idea that fits the time of day.

Run "chefwho serve" to start the HTTP API.`,
	SilenceUsage: true,
}

// Execute runs the command line. The caller exits non-zero on error.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", os.Getenv("CHEFWHO_CONFIG"), "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// bootstrap loads config and builds the application for one command.
func bootstrap(ctx context.Context, opts ...app.Option) (*app.App, *slog.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(cfg.BasicConfig.LogLevel)
	slog.SetDefault(logger)
	a, err := app.New(ctx, cfg, logger, opts...)
	if err != nil {
		logger.Error("startup failed", "error", err)
		return nil, nil, err
	}
	return a, logger, nil
}
