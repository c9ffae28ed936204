// Package main implements the signum CLI: sign evaluation for Go
// expressions, Lua chunks and Mangle facts.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"signum/internal/config"
	"signum/internal/logging"
	"signum/internal/sign"
)

var (
	verbose    bool
	configPath string

	cfg      *config.Config
	logger   *zap.Logger
	registry *logging.Registry
)

var rootCmd = &cobra.Command{
	Use:   "signum",
	Short: "signum - three-way sign of arbitrary values",
	Long: `signum computes the sign of a value (-1, 0, 1 or NaN) using only the
value's own order comparisons against zero.

Values that cannot be ordered produce a diagnostic naming the value and its
type. A fallback can replace the error and a preprocess hook can rewrite or
short-circuit the input.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		registry = logging.NewRegistry(logger, cfg.Logging)
		registry.Get(logging.CategoryCLI).Debug("config loaded",
			zap.String("path", configPath),
			zap.Int("repr_limit", cfg.Limits.Repr),
			zap.Int("type_limit", cfg.Limits.TypeName),
			zap.Int("inner_limit", cfg.Limits.Inner))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if registry != nil {
			registry.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to signum.yaml (defaults + SIGNUM_* env when empty)")

	evalCmd.Flags().StringVar(&fallbackExpr, "fallback", "", "Go expression returned instead of an error")
	evalCmd.Flags().StringVar(&preprocessSrc, "preprocess", "", "Go func(any) []any literal run before evaluation")

	luaCmd.Flags().StringVarP(&luaChunk, "execute", "e", "", "Lua chunk to run instead of a file")

	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd)

	rootCmd.AddCommand(evalCmd, luaCmd, factCmd, configCmd)
}

// evaluatorOptions returns the options every front end applies to its
// evaluator.
func evaluatorOptions() []sign.EvaluatorOption {
	return []sign.EvaluatorOption{
		sign.WithLogger(registry.Get(logging.CategoryCore)),
		sign.WithLimits(cfg.Limits.Sign()),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
