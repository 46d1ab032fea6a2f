package validate

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Option is a function that configures an Engine.
type Option func(*Engine) error

// WithConfig sets the engine configuration. The config is cloned so
// later caller mutations cannot reach a running engine.
func WithConfig(cfg *Config) Option {
	return func(e *Engine) error {
		if cfg == nil {
			return fmt.Errorf("config cannot be nil")
		}
		e.config = cfg.Clone()
		return nil
	}
}

// WithLogger sets the logger used for diagnostic output. Logging never
// affects the verdict; by default the engine is silent.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}
