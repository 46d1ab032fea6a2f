package documents

import (
	"github.com/shopspring/decimal"
)

// Item is a single line entry on either an invoice or a purchase
// order. Extraction is expected to be imperfect: any of the identifier
// fields may be missing or badly formatted, and the engine tolerates
// that rather than fixing it.
type Item struct {
	// SKU is the canonical part code when the vendor prints one.
	// A valid SKU is 6-7 alphanumeric characters; anything else is
	// ignored by the SKU matching tier.
	SKU string `yaml:"sku,omitempty" json:"sku,omitempty"`

	// VPN is the vendor part number, free-form.
	VPN string `yaml:"vpn,omitempty" json:"vpn,omitempty"`

	// Name is the cleaned item name, possibly derived by extraction.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Description is the full raw line text, kept even when Name is set.
	Description string `yaml:"description" json:"description"`

	// Quantity may be negative on credit-memo lines.
	Quantity decimal.Decimal `yaml:"quantity" json:"quantity"`

	UnitPrice decimal.Decimal `yaml:"unit_price" json:"unit_price"`
	LineTotal decimal.Decimal `yaml:"line_total" json:"line_total"`

	// IsFee is derived by the fee classifier during validation, never
	// asserted by extraction.
	IsFee bool `yaml:"-" json:"-"`
}

// HasIdentifier reports whether the item carries any text usable for
// matching: a SKU, a VPN, or a non-empty description.
func (i *Item) HasIdentifier() bool {
	return i.SKU != "" || i.VPN != "" || i.Description != "" || i.Name != ""
}

// IsCreditLine reports whether the line represents a refund or
// adjustment: negative quantity or negative line total.
func (i *Item) IsCreditLine() bool {
	return i.Quantity.IsNegative() || i.LineTotal.IsNegative()
}

// Text returns the best available free text for this item, preferring
// the derived name over the raw description.
func (i *Item) Text() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Description
}
