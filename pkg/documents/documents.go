// Package documents defines the invoice and purchase order data model
// consumed by the validation engine. Records are produced upstream by
// an extraction pipeline and passed in as plain data; this package only
// defines their shape, input-shape validation, and file (de)serialization.
//
// All monetary and quantity fields use decimal arithmetic. Extraction
// rounding is absorbed by engine tolerances, never by float math.
package documents

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/shopspring/decimal"

	"github.com/agentstation/apmatch/pkg/errors"
)

// Invoice is a vendor invoice as extracted from a source document.
type Invoice struct {
	// InvoiceNumber as printed on the invoice.
	InvoiceNumber string `yaml:"invoice_number" json:"invoice_number"`

	// PONumber is the purchase order number as printed on the invoice.
	// Optional; extraction may fail to find one.
	PONumber string `yaml:"po_number,omitempty" json:"po_number,omitempty"`

	// Vendor identity, free text. Used only for logging and
	// diagnostics, never for rule branching.
	Vendor string `yaml:"vendor,omitempty" json:"vendor,omitempty"`

	Items []Item `yaml:"items" json:"items"`

	// Total as stated on the invoice.
	Total decimal.Decimal `yaml:"total" json:"total"`
}

// PurchaseOrder is the purchase order an invoice claims to fulfill.
type PurchaseOrder struct {
	PONumber string          `yaml:"po_number" json:"po_number"`
	Items    []Item          `yaml:"items" json:"items"`
	Total    decimal.Decimal `yaml:"total" json:"total"`
}

// Validate checks the invoice for input-shape errors: conditions under
// which no meaningful reconciliation is possible. Business-rule
// findings are not shape errors and are reported by the engine instead.
func (inv *Invoice) Validate() error {
	if inv == nil {
		return errors.NewValidationError("invoice", "", "document is nil")
	}
	if len(inv.Items) == 0 {
		return errors.NewValidationError("invoice", "items", "document has no line items")
	}
	for i := range inv.Items {
		if err := validateItem(&inv.Items[i]); err != nil {
			return errors.WrapValidation("invoice", fmt.Sprintf("items[%d]", i), err)
		}
	}
	return nil
}

// Validate checks the purchase order for input-shape errors.
func (po *PurchaseOrder) Validate() error {
	if po == nil {
		return errors.NewValidationError("purchase order", "", "document is nil")
	}
	if po.PONumber == "" {
		return errors.NewValidationError("purchase order", "po_number", "missing PO number")
	}
	if len(po.Items) == 0 {
		return errors.NewValidationError("purchase order", "items", "document has no line items")
	}
	for i := range po.Items {
		if err := validateItem(&po.Items[i]); err != nil {
			return errors.WrapValidation("purchase order", fmt.Sprintf("items[%d]", i), err)
		}
	}
	return nil
}

// validateItem enforces the per-line invariants: every line carries at
// least one identifier or some description text, and unit prices are
// never negative. Negative quantities and line totals are allowed; the
// engine flags them as credit-memo lines rather than rejecting them.
func validateItem(item *Item) error {
	if !item.HasIdentifier() {
		return errors.New("line has no SKU, VPN, or description")
	}
	if item.UnitPrice.IsNegative() {
		return errors.New("negative unit price")
	}
	return nil
}

// ParseInvoice decodes an invoice from YAML or JSON bytes.
func ParseInvoice(data []byte) (*Invoice, error) {
	var inv Invoice
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, errors.NewParseError("yaml", "", err.Error(), err)
	}
	return &inv, nil
}

// ParsePurchaseOrder decodes a purchase order from YAML or JSON bytes.
func ParsePurchaseOrder(data []byte) (*PurchaseOrder, error) {
	var po PurchaseOrder
	if err := yaml.Unmarshal(data, &po); err != nil {
		return nil, errors.NewParseError("yaml", "", err.Error(), err)
	}
	return &po, nil
}

// LoadInvoice reads and decodes an invoice file.
func LoadInvoice(path string) (*Invoice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError("read", path, err)
	}
	inv, err := ParseInvoice(data)
	if err != nil {
		return nil, errors.NewParseError("yaml", path, err.Error(), err)
	}
	return inv, nil
}

// LoadPurchaseOrder reads and decodes a purchase order file.
func LoadPurchaseOrder(path string) (*PurchaseOrder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError("read", path, err)
	}
	po, err := ParsePurchaseOrder(data)
	if err != nil {
		return nil, errors.NewParseError("yaml", path, err.Error(), err)
	}
	return po, nil
}
