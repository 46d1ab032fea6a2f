package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/apmatch/pkg/errors"
)

func TestValidateConfigDefaults(t *testing.T) {
	c := &Config{}
	cfg, err := c.ValidateConfig()
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.DescriptionThreshold)
	assert.False(t, cfg.AlwaysApprove)
}

func TestValidateConfigProfiles(t *testing.T) {
	strict, err := (&Config{Profile: "strict"}).ValidateConfig()
	require.NoError(t, err)
	assert.True(t, strict.PriceToleranceAbs.IsZero())

	relaxed, err := (&Config{Profile: "relaxed"}).ValidateConfig()
	require.NoError(t, err)
	assert.False(t, relaxed.TotalToleranceAbs.IsZero())

	_, err = (&Config{Profile: "aggressive"}).ValidateConfig()
	assert.True(t, errors.IsConfigError(err))
}

func TestValidateConfigOverrides(t *testing.T) {
	c := &Config{
		PriceToleranceAbs:    "0.05",
		DescriptionThreshold: 0.7,
		FeeVocabulary:        []string{"surcharge"},
		AlwaysApprove:        true,
	}
	cfg, err := c.ValidateConfig()
	require.NoError(t, err)
	assert.Equal(t, "0.05", cfg.PriceToleranceAbs.String())
	assert.Equal(t, 0.7, cfg.DescriptionThreshold)
	assert.Equal(t, []string{"surcharge"}, cfg.FeeVocabulary)
	assert.True(t, cfg.AlwaysApprove)
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	_, err := (&Config{PriceToleranceAbs: "lots"}).ValidateConfig()
	assert.True(t, errors.IsConfigError(err))

	_, err = (&Config{DescriptionThreshold: 1.5}).ValidateConfig()
	assert.Error(t, err)
}

func TestUpdateFromFlags(t *testing.T) {
	c := &Config{Output: "json"}
	c.UpdateFromFlags(true, false, true, "")
	assert.True(t, c.Verbose)
	assert.True(t, c.NoColor)
	assert.Equal(t, "json", c.Output)

	c.UpdateFromFlags(false, true, false, "text")
	assert.Equal(t, "text", c.Output)
}
