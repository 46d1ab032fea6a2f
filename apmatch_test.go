package apmatch_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/apmatch"
	"github.com/agentstation/apmatch/pkg/documents"
	"github.com/agentstation/apmatch/pkg/logging"
	"github.com/agentstation/apmatch/pkg/validate"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func cleanPair(n int) (*documents.Invoice, *documents.PurchaseOrder) {
	item := documents.Item{
		SKU:         "W00123",
		Description: "Widget A",
		Quantity:    dec("2"),
		UnitPrice:   dec("50.00"),
		LineTotal:   dec("100.00"),
	}
	inv := &documents.Invoice{
		InvoiceNumber: fmt.Sprintf("INV-%d", n),
		PONumber:      fmt.Sprintf("PO-%d", n),
		Items:         []documents.Item{item},
		Total:         dec("100.00"),
	}
	po := &documents.PurchaseOrder{
		PONumber: fmt.Sprintf("PO-%d", n),
		Items:    []documents.Item{item},
		Total:    dec("100.00"),
	}
	return inv, po
}

func TestNewMatcherDefaults(t *testing.T) {
	m, err := apmatch.New()
	require.NoError(t, err)

	cfg := m.Config()
	require.NotNil(t, cfg)
	assert.False(t, cfg.AlwaysApprove)
}

func TestMatcherValidate(t *testing.T) {
	m, err := apmatch.New(apmatch.WithLogger(*logging.NewNopLogger()))
	require.NoError(t, err)

	inv, po := cleanPair(1)
	result, err := m.Validate(context.Background(), inv, po)
	require.NoError(t, err)
	assert.True(t, result.IsApproved())
	assert.Empty(t, result.Issues)
}

func TestMatcherValidateCancelledContext(t *testing.T) {
	m, err := apmatch.New()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inv, po := cleanPair(1)
	_, err = m.Validate(ctx, inv, po)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatcherWithConfig(t *testing.T) {
	cfg := validate.StrictConfig()
	m, err := apmatch.New(apmatch.WithConfig(cfg))
	require.NoError(t, err)

	got := m.Config()
	assert.True(t, got.PriceToleranceAbs.IsZero())
	assert.Equal(t, cfg.DescriptionThreshold, got.DescriptionThreshold)
}

func TestMatcherRejectsBadOptions(t *testing.T) {
	_, err := apmatch.New(apmatch.WithWorkers(0))
	assert.Error(t, err)

	bad := validate.DefaultConfig()
	bad.DescriptionThreshold = 2.0
	_, err = apmatch.New(apmatch.WithConfig(bad))
	assert.Error(t, err)
}

func TestPackageLevelValidate(t *testing.T) {
	inv, po := cleanPair(7)
	inv.Items[0].UnitPrice = dec("55.00")

	result, err := apmatch.Validate(inv, po)
	require.NoError(t, err)
	assert.False(t, result.IsApproved())
	assert.True(t, result.HasBlocking())
}
