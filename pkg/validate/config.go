package validate

import (
	"github.com/shopspring/decimal"

	"github.com/agentstation/apmatch/pkg/errors"
)

// Config holds the tolerances, vocabulary, and policy flags for one
// validation run. The engine never reads ambient configuration; an
// explicit Config travels with every engine instance.
//
// The tolerances exist to absorb extraction rounding, not real price
// drift: the defaults require exact price matches.
type Config struct {
	// PriceToleranceAbs is the absolute unit-price difference allowed
	// before a price mismatch is raised. Zero means exact match.
	PriceToleranceAbs decimal.Decimal `yaml:"price_tolerance_abs" json:"price_tolerance_abs"`

	// PriceToleranceRel is the relative unit-price difference allowed,
	// as a fraction of the PO price (0.01 = 1%). Zero means exact match.
	// A price passes if it is within either the absolute or the
	// relative tolerance.
	PriceToleranceRel float64 `yaml:"price_tolerance_rel" json:"price_tolerance_rel"`

	// TotalToleranceAbs is the absolute difference allowed between the
	// sum of invoice line totals and the invoice-stated total.
	TotalToleranceAbs decimal.Decimal `yaml:"total_tolerance_abs" json:"total_tolerance_abs"`

	// DescriptionThreshold is the minimum token-overlap score for the
	// description fallback tier to accept a match.
	DescriptionThreshold float64 `yaml:"description_threshold" json:"description_threshold"`

	// FeeVocabulary lists the non-merchandise terms that mark a line
	// as a fee. Matching is token-based and case-insensitive.
	FeeVocabulary []string `yaml:"fee_vocabulary" json:"fee_vocabulary"`

	// AlwaysApprove forces APPROVED status while preserving every
	// detected issue. This is an external policy flag, not engine
	// logic: the issue list is identical either way.
	AlwaysApprove bool `yaml:"always_approve" json:"always_approve"`
}

// defaultFeeVocabulary covers freight/handling/shipping and the close
// variants seen on real vendor invoices.
var defaultFeeVocabulary = []string{
	"freight",
	"shipping",
	"handling",
	"delivery",
	"postage",
}

// DefaultConfig returns a configuration with sensible defaults:
// exact price matching, a small total tolerance for extraction
// rounding, and the standard fee vocabulary.
func DefaultConfig() *Config {
	return &Config{
		PriceToleranceAbs:    decimal.Zero,
		PriceToleranceRel:    0,
		TotalToleranceAbs:    decimal.NewFromFloat(0.01),
		DescriptionThreshold: 0.5,
		FeeVocabulary:        cloneStrings(defaultFeeVocabulary),
		AlwaysApprove:        false,
	}
}

// StrictConfig returns a configuration with zero tolerances and a high
// description threshold, for critical reconciliation.
func StrictConfig() *Config {
	return &Config{
		PriceToleranceAbs:    decimal.Zero,
		PriceToleranceRel:    0,
		TotalToleranceAbs:    decimal.Zero,
		DescriptionThreshold: 0.8,
		FeeVocabulary:        cloneStrings(defaultFeeVocabulary),
		AlwaysApprove:        false,
	}
}

// RelaxedConfig returns a configuration that absorbs a cent of price
// rounding and accepts looser description matches.
func RelaxedConfig() *Config {
	return &Config{
		PriceToleranceAbs:    decimal.NewFromFloat(0.01),
		PriceToleranceRel:    0.001,
		TotalToleranceAbs:    decimal.NewFromFloat(1.00),
		DescriptionThreshold: 0.4,
		FeeVocabulary:        cloneStrings(defaultFeeVocabulary),
		AlwaysApprove:        false,
	}
}

// Validate checks the configuration. Invalid tolerance values are
// rejected here, before any validate call runs.
func (c *Config) Validate() error {
	if c.PriceToleranceAbs.IsNegative() {
		return errors.NewConfigError("price_tolerance_abs", "must not be negative")
	}
	if c.PriceToleranceRel < 0 {
		return errors.NewConfigError("price_tolerance_rel", "must not be negative")
	}
	if c.TotalToleranceAbs.IsNegative() {
		return errors.NewConfigError("total_tolerance_abs", "must not be negative")
	}
	if c.DescriptionThreshold <= 0 || c.DescriptionThreshold > 1 {
		return errors.NewConfigError("description_threshold", "must be in (0, 1]")
	}
	return nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	clone.FeeVocabulary = cloneStrings(c.FeeVocabulary)
	return &clone
}

// priceWithin reports whether an invoice unit price is acceptable
// against a PO unit price: equal, or within the absolute or relative
// tolerance.
func (c *Config) priceWithin(invoicePrice, poPrice decimal.Decimal) bool {
	diff := invoicePrice.Sub(poPrice).Abs()
	if diff.IsZero() {
		return true
	}
	if c.PriceToleranceAbs.IsPositive() && diff.LessThanOrEqual(c.PriceToleranceAbs) {
		return true
	}
	if c.PriceToleranceRel > 0 {
		rel := poPrice.Abs().Mul(decimal.NewFromFloat(c.PriceToleranceRel))
		if diff.LessThanOrEqual(rel) {
			return true
		}
	}
	return false
}

// totalWithin reports whether the computed document total is within
// tolerance of the stated total.
func (c *Config) totalWithin(computed, stated decimal.Decimal) bool {
	return computed.Sub(stated).Abs().LessThanOrEqual(c.TotalToleranceAbs)
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
