// Package apmatch reconciles vendor invoices against purchase orders.
// It wraps the validation engine in pkg/validate with a small facade for
// one-shot checks and concurrent batch processing.
//
// Example usage:
//
//	m, err := apmatch.New()
//	if err != nil {
//	    return err
//	}
//	result, err := m.Validate(ctx, invoice, po)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Summary())
package apmatch

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agentstation/apmatch/pkg/documents"
	"github.com/agentstation/apmatch/pkg/logging"
	"github.com/agentstation/apmatch/pkg/validate"
)

// Matcher validates invoice and purchase order pairs
type Matcher interface {
	// Validate reconciles a single invoice against its purchase order
	Validate(ctx context.Context, inv *documents.Invoice, po *documents.PurchaseOrder) (*validate.Result, error)

	// ValidatePairs reconciles a batch of document pairs concurrently,
	// returning outcomes in input order
	ValidatePairs(ctx context.Context, pairs []Pair) []PairResult

	// Config returns a copy of the active validation configuration
	Config() *validate.Config
}

// matcher is the internal implementation of the Matcher interface
type matcher struct {
	engine  *validate.Engine
	logger  zerolog.Logger
	workers int
}

// New creates a new Matcher instance with the given options
func New(opts ...Option) (Matcher, error) {
	m := &matcher{
		logger:  *logging.Default(),
		workers: defaultWorkers,
	}

	if err := m.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	if m.engine == nil {
		engine, err := validate.New(validate.WithLogger(m.logger))
		if err != nil {
			return nil, fmt.Errorf("creating engine: %w", err)
		}
		m.engine = engine
	}

	return m, nil
}

// Validate reconciles a single invoice against its purchase order.
// The context is consulted before work begins; the engine itself is
// pure and does not block.
func (m *matcher) Validate(ctx context.Context, inv *documents.Invoice, po *documents.PurchaseOrder) (*validate.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.engine.Validate(inv, po)
}

// Config returns a copy of the active validation configuration
func (m *matcher) Config() *validate.Config {
	return m.engine.Config()
}

// Validate reconciles one invoice against one purchase order using the
// default configuration. It is a convenience for callers that do not
// need a long-lived Matcher.
func Validate(inv *documents.Invoice, po *documents.PurchaseOrder) (*validate.Result, error) {
	engine, err := validate.New()
	if err != nil {
		return nil, err
	}
	return engine.Validate(inv, po)
}
