package validate_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/apmatch/pkg/validate"
)

func TestConfigFactoriesAreValid(t *testing.T) {
	assert.NoError(t, validate.DefaultConfig().Validate())
	assert.NoError(t, validate.StrictConfig().Validate())
	assert.NoError(t, validate.RelaxedConfig().Validate())
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*validate.Config)
	}{
		{"negative absolute price tolerance", func(c *validate.Config) {
			c.PriceToleranceAbs = decimal.NewFromFloat(-0.01)
		}},
		{"negative relative price tolerance", func(c *validate.Config) {
			c.PriceToleranceRel = -0.5
		}},
		{"negative total tolerance", func(c *validate.Config) {
			c.TotalToleranceAbs = decimal.NewFromInt(-1)
		}},
		{"zero description threshold", func(c *validate.Config) {
			c.DescriptionThreshold = 0
		}},
		{"description threshold above one", func(c *validate.Config) {
			c.DescriptionThreshold = 1.5
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validate.DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfigCloneIsIndependent(t *testing.T) {
	cfg := validate.DefaultConfig()
	clone := cfg.Clone()
	require.NotNil(t, clone)

	clone.FeeVocabulary[0] = "mutated"
	clone.AlwaysApprove = true

	assert.NotEqual(t, "mutated", cfg.FeeVocabulary[0])
	assert.False(t, cfg.AlwaysApprove)
}

func TestConfigCloneNil(t *testing.T) {
	var cfg *validate.Config
	assert.Nil(t, cfg.Clone())
}

func TestRelativePriceTolerance(t *testing.T) {
	cfg := validate.DefaultConfig()
	cfg.PriceToleranceRel = 0.01 // 1%

	// 100.50 vs 100.00 is within 1%.
	inv := invoice("PO-100", line("ABC123", "1", "100.50"))
	po := purchaseOrder("PO-100", line("ABC123", "1", "100.00"))

	result, err := newEngine(t, validate.WithConfig(cfg)).Validate(inv, po)
	require.NoError(t, err)
	assert.Empty(t, result.Blocking())

	// 102.00 vs 100.00 is not.
	inv = invoice("PO-100", line("ABC123", "1", "102.00"))
	result, err = newEngine(t, validate.WithConfig(cfg)).Validate(inv, po)
	require.NoError(t, err)
	require.Len(t, result.Blocking(), 1)
	assert.Equal(t, validate.CodePriceMismatch, result.Blocking()[0].Code)
}
