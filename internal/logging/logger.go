// Package logging builds the zap loggers used across signum and hands out
// per-category children that can be switched off in config.
package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"signum/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryCore   Category = "core"   // Sign evaluation
	CategoryHost   Category = "host"   // Host adapters (native, lua, mangle)
	CategoryScript Category = "script" // Go snippet interpreter
	CategoryCLI    Category = "cli"    // Command-line front end
)

// AllCategories lists every category, in display order.
var AllCategories = []Category{CategoryCore, CategoryHost, CategoryScript, CategoryCLI}

// New builds the root logger from config. verbose forces debug level.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// Registry caches one named child per category.
type Registry struct {
	base *zap.Logger
	cfg  config.LoggingConfig

	mu      sync.RWMutex
	loggers map[Category]*zap.Logger
}

func NewRegistry(base *zap.Logger, cfg config.LoggingConfig) *Registry {
	if base == nil {
		base = zap.NewNop()
	}
	return &Registry{base: base, cfg: cfg, loggers: make(map[Category]*zap.Logger)}
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if the category is disabled.
func (r *Registry) Get(category Category) *zap.Logger {
	if !r.cfg.IsCategoryEnabled(string(category)) {
		return zap.NewNop()
	}

	r.mu.RLock()
	if l, ok := r.loggers[category]; ok {
		r.mu.RUnlock()
		return l
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.loggers[category]; ok {
		return l
	}
	l := r.base.Named(string(category))
	r.loggers[category] = l
	return l
}

// Sync flushes the root logger. Errors from syncing stderr are ignored.
func (r *Registry) Sync() {
	_ = r.base.Sync()
}
