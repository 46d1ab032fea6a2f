package logging_test

import (
	"context"
	"testing"

	"github.com/agentstation/apmatch/pkg/logging"
	"github.com/stretchr/testify/assert"
)

func TestContextFunctions(t *testing.T) {
	t.Run("WithInvoice adds invoice to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithInvoice(ctx, "INV-2025-001")

		// Extract logger and verify it has the invoice field
		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithPO adds purchase order to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithPO(ctx, "PO-2025-001")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithOperation adds operation to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithOperation(ctx, "validate_pair")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithVendor adds vendor to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithVendor(ctx, "ABC Corp")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithFields adds custom fields to context", func(t *testing.T) {
		ctx := context.Background()
		fields := map[string]interface{}{
			"user_id":    "123",
			"request_id": "abc-def",
		}
		ctx = logging.WithFields(ctx, fields)

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("FromContext returns logger from context", func(t *testing.T) {
		ctx := context.Background()

		// First call should create a new logger
		logger1 := logging.FromContext(ctx)
		assert.NotNil(t, logger1)

		// Add invoice and get logger again
		ctx = logging.WithInvoice(ctx, "INV-42")
		logger2 := logging.FromContext(ctx)
		assert.NotNil(t, logger2)
	})

	t.Run("Ctx extracts logger from context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithPO(ctx, "PO-42")

		logger := logging.Ctx(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("chaining context functions", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithInvoice(ctx, "INV-2025-001")
		ctx = logging.WithPO(ctx, "PO-2025-001")
		ctx = logging.WithOperation(ctx, "validate_pair")
		ctx = logging.WithVendor(ctx, "ABC Corp")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})
}
