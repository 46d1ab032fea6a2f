package apmatch

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agentstation/apmatch/pkg/constants"
	"github.com/agentstation/apmatch/pkg/validate"
)

// defaultWorkers bounds batch concurrency when no option overrides it.
const defaultWorkers = constants.DefaultBatchWorkers

// Option configures a Matcher during construction
type Option func(*matcher) error

// options applies the given options to the matcher
func (m *matcher) options(opts ...Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(m); err != nil {
			return err
		}
	}
	return nil
}

// WithConfig sets the validation configuration
func WithConfig(cfg *validate.Config) Option {
	return func(m *matcher) error {
		engine, err := validate.New(
			validate.WithConfig(cfg),
			validate.WithLogger(m.logger),
		)
		if err != nil {
			return err
		}
		m.engine = engine
		return nil
	}
}

// WithLogger sets the logger used by the matcher and its engine
func WithLogger(logger zerolog.Logger) Option {
	return func(m *matcher) error {
		m.logger = logger
		if m.engine != nil {
			engine, err := validate.New(
				validate.WithConfig(m.engine.Config()),
				validate.WithLogger(logger),
			)
			if err != nil {
				return err
			}
			m.engine = engine
		}
		return nil
	}
}

// WithWorkers sets the number of concurrent workers for batch validation
func WithWorkers(n int) Option {
	return func(m *matcher) error {
		if n <= 0 {
			return fmt.Errorf("worker count must be positive, got %d", n)
		}
		if n > constants.MaxBatchWorkers {
			n = constants.MaxBatchWorkers
		}
		m.workers = n
		return nil
	}
}
