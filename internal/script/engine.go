// Package script turns Go source snippets into values and preprocess hooks
// using the Yaegi interpreter.
//
// Snippets are expressions, never files: "-3.5", "math.Inf(-1)",
// "big.NewRat(-1, 3)", or a function literal of type func(any) []any for a
// preprocess hook. Only whitelisted standard-library packages can be
// referenced; they are imported on demand when their name appears in the
// snippet.
package script

import (
	"context"
	"fmt"
	"path"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"go.uber.org/zap"

	"signum/internal/sign"
)

// DefaultPackages is the whitelist used when none is configured. Packages
// with filesystem, network, process or unsafe access are never listed.
var DefaultPackages = []string{
	"fmt",
	"math",
	"math/big",
	"regexp",
	"strconv",
	"strings",
	"time",
}

var importRe = regexp.MustCompile(`\bimport\b`)

// Engine evaluates snippets. Each call gets a fresh interpreter, so
// snippets cannot leak state into each other.
type Engine struct {
	allowed map[string]bool
	timeout time.Duration
	log     *zap.Logger
}

// DefaultCallTimeout bounds a single preprocess hook call.
const DefaultCallTimeout = 5 * time.Second

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithCallTimeout bounds each preprocess hook call. Non-positive values
// keep DefaultCallTimeout.
func WithCallTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// NewEngine creates an engine restricted to the given packages. A nil list
// selects DefaultPackages.
func NewEngine(packages []string, logger *zap.Logger, opts ...EngineOption) *Engine {
	if packages == nil {
		packages = DefaultPackages
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	allowed := make(map[string]bool, len(packages))
	for _, p := range packages {
		allowed[p] = true
	}
	e := &Engine{allowed: allowed, timeout: DefaultCallTimeout, log: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Eval evaluates an expression and returns its Go value.
func (e *Engine) Eval(ctx context.Context, expr string) (any, error) {
	v, err := e.eval(ctx, expr)
	if err != nil {
		return nil, err
	}
	if !v.IsValid() {
		return nil, nil
	}
	return v.Interface(), nil
}

// Preprocess compiles a func(any) []any literal into a hook. The returned
// slice follows the sequence convention of sign.FromSequence; a nil slice
// keeps the input. Each hook call is bounded by the engine's call timeout.
func (e *Engine) Preprocess(ctx context.Context, src string) (sign.PreprocessFunc, error) {
	if err := e.validateSource(src); err != nil {
		return nil, fmt.Errorf("invalid snippet: %w", err)
	}
	i, err := e.interpreter()
	if err != nil {
		return nil, err
	}

	if _, err := i.EvalWithContext(ctx, e.wrapHook(src)); err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}
	v, err := i.EvalWithContext(ctx, "main.Hook")
	if err != nil {
		return nil, fmt.Errorf("hook not found: %w", err)
	}
	fn, ok := v.Interface().(func(any) []any)
	if !ok {
		return nil, fmt.Errorf("preprocess has incorrect signature (expected: func(any) []any, got %s)", v.Type())
	}

	return func(x sign.Value) (sign.PreprocessOutcome, error) {
		items, err := e.callHook(fn, x)
		if err != nil {
			return sign.NoChange(), err
		}
		return sign.FromSequence(items), nil
	}, nil
}

// wrapHook turns a function literal into a package declaring var Hook.
func (e *Engine) wrapHook(src string) string {
	var b strings.Builder
	b.WriteString("package main\n\n")
	for _, pkg := range e.referencedPackages(src) {
		fmt.Fprintf(&b, "import %q\n", pkg)
	}
	b.WriteString("\nvar Hook = ")
	b.WriteString(src)
	b.WriteString("\n")
	return b.String()
}

// callHook runs fn with the call timeout. Interpreted code cannot be
// interrupted, so a hook that overruns is abandoned rather than stopped.
func (e *Engine) callHook(fn func(any) []any, x sign.Value) ([]any, error) {
	resultChan := make(chan []any, 1)
	panicChan := make(chan any, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				panicChan <- r
			}
		}()
		resultChan <- fn(x)
	}()

	timer := time.NewTimer(e.timeout)
	defer timer.Stop()

	select {
	case items := <-resultChan:
		return items, nil
	case r := <-panicChan:
		return nil, fmt.Errorf("preprocess panicked: %v", r)
	case <-timer.C:
		e.log.Warn("preprocess hook timed out", zap.Duration("timeout", e.timeout))
		return nil, fmt.Errorf("preprocess timed out after %s", e.timeout)
	}
}

func (e *Engine) interpreter() (*interp.Interpreter, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("failed to load stdlib: %w", err)
	}
	return i, nil
}

func (e *Engine) eval(ctx context.Context, src string) (reflect.Value, error) {
	if err := e.validateSource(src); err != nil {
		return reflect.Value{}, fmt.Errorf("invalid snippet: %w", err)
	}

	i, err := e.interpreter()
	if err != nil {
		return reflect.Value{}, err
	}

	for _, pkg := range e.referencedPackages(src) {
		if _, err := i.EvalWithContext(ctx, fmt.Sprintf("import %q", pkg)); err != nil {
			return reflect.Value{}, fmt.Errorf("import %s: %w", pkg, err)
		}
	}

	e.log.Debug("evaluating snippet", zap.String("src", src))
	v, err := i.EvalWithContext(ctx, src)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("evaluation failed: %w", err)
	}
	return v, nil
}

// validateSource rejects empty snippets and explicit imports; packages are
// only reachable through the whitelist.
func (e *Engine) validateSource(src string) error {
	if strings.TrimSpace(src) == "" {
		return fmt.Errorf("empty snippet")
	}
	if importRe.MatchString(src) {
		return fmt.Errorf("import statements are not allowed (allowed packages: %v)", e.allowedPackages())
	}
	return nil
}

// referencedPackages returns the whitelisted packages whose name is used as
// a selector in src.
func (e *Engine) referencedPackages(src string) []string {
	var pkgs []string
	for pkg := range e.allowed {
		name := path.Base(pkg)
		if regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\.`).MatchString(src) {
			pkgs = append(pkgs, pkg)
		}
	}
	sort.Strings(pkgs)
	return pkgs
}

func (e *Engine) allowedPackages() []string {
	pkgs := make([]string, 0, len(e.allowed))
	for pkg := range e.allowed {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)
	return pkgs
}
