// Command stepwise reduces expressions and solves equations step by step,
// and serves the same operations as an HTTP tool endpoint.
//
// Usage:
//
//	stepwise reduce '{"type":"fraction","numerator":{"type":"item","value":"26"},"denominator":{"type":"item","value":"10"}}'
//	stepwise solve equation.json
//	stepwise gcd 26 10
//	stepwise batch exercises.yaml
//	stepwise serve --addr :8080
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/njchilds90/stepwise"
	"github.com/njchilds90/stepwise/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string
	format     string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "stepwise",
	Short: "Pupil-style stepwise arithmetic and algebra",
	Long: `stepwise reduces arithmetic and algebraic expressions one step at a time,
the way a pupil writes them, and produces worked solutions of equations.

Expressions are given as structured JSON records, never as free text.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if format != "" {
			cfg.Render.Format = format
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		zc := zap.NewProductionConfig()
		level, err := zapcore.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
		}
		zc.Level = zap.NewAtomicLevelAt(level)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		stepwise.SetLogger(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Trace every reduction step")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "stepwise.yaml", "Config file")
	rootCmd.PersistentFlags().StringVar(&format, "format", "", "Output format: text or latex (overrides config)")

	rootCmd.AddCommand(reduceCmd, solveCmd, gcdCmd, batchCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
