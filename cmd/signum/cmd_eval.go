package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"signum/internal/host/native"
	"signum/internal/logging"
	"signum/internal/script"
	"signum/internal/sign"
)

// =============================================================================
// EVAL COMMAND - sign of Go expressions
// =============================================================================

var (
	fallbackExpr  string
	preprocessSrc string
)

var evalCmd = &cobra.Command{
	Use:   "eval [expr...]",
	Short: "Print the sign of each Go expression",
	Long: `Evaluates each argument as a Go expression and prints its sign.

Examples:
  signum eval -- -3 0 2.5 'math.NaN()' 'big.NewRat(-1, 3)'
  signum eval --fallback 'nil' '"text"'
  signum eval --preprocess 'func(x any) []any { return []any{strings.TrimSpace(x.(string))} }' ' 1 '`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func runEval(cmd *cobra.Command, args []string) error {
	log := registry.Get(logging.CategoryCLI)
	engine := script.NewEngine(cfg.Script.AllowedPackages, registry.Get(logging.CategoryScript),
		script.WithCallTimeout(cfg.GetScriptTimeout()))
	evaluator := native.New(evaluatorOptions()...)

	var opts []sign.Option
	if fallbackExpr != "" {
		v, err := evalSnippet(cmd.Context(), engine, fallbackExpr)
		if err != nil {
			return fmt.Errorf("failed to evaluate fallback: %w", err)
		}
		opts = append(opts, sign.WithFallback(v))
	}
	if preprocessSrc != "" {
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.GetScriptTimeout())
		defer cancel()
		fn, err := engine.Preprocess(ctx, preprocessSrc)
		if err != nil {
			return fmt.Errorf("failed to compile preprocess: %w", err)
		}
		opts = append(opts, sign.WithPreprocess(fn))
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, expr := range args {
		v, err := evalSnippet(cmd.Context(), engine, expr)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", expr, err)
			continue
		}

		res, err := evaluator.Sign(v, opts...)
		if err != nil {
			failed++
			log.Debug("sign failed", zap.String("expr", expr), zap.Error(err))
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			continue
		}
		fmt.Fprintln(out, formatResult(res))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d evaluations failed", failed, len(args))
	}
	return nil
}

func evalSnippet(ctx context.Context, engine *script.Engine, src string) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.GetScriptTimeout())
	defer cancel()
	return engine.Eval(ctx, src)
}

// formatResult prints computed signs as -1/0/1/NaN and override or
// fallback payloads with the native representation.
func formatResult(res sign.Result) string {
	if res.Source == sign.SourceSign {
		return res.Sign.String()
	}
	s, err := native.Host{}.Repr(res.Value)
	if err != nil {
		return fmt.Sprintf("%v", res.Value)
	}
	return s
}
