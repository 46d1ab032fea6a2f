package validate

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Status is the final verdict for one invoice / purchase order pair.
type Status string

const (
	// StatusApproved means the invoice may be auto-approved.
	StatusApproved Status = "APPROVED"
	// StatusReview means at least one blocking issue requires a human
	// reviewer.
	StatusReview Status = "REVIEW"
)

// Stats summarizes one validation run for reports and logs.
type Stats struct {
	InvoiceLines   int `yaml:"invoice_lines" json:"invoice_lines"`
	POLines        int `yaml:"po_lines" json:"po_lines"`
	MatchedLines   int `yaml:"matched_lines" json:"matched_lines"`
	FeeLines       int `yaml:"fee_lines" json:"fee_lines"`
	UnmatchedLines int `yaml:"unmatched_lines" json:"unmatched_lines"`

	// InvoiceTotal is the total as stated on the invoice.
	InvoiceTotal decimal.Decimal `yaml:"invoice_total" json:"invoice_total"`

	// ComputedTotal is the sum of invoice line totals, merchandise
	// plus recognized fees.
	ComputedTotal decimal.Decimal `yaml:"computed_total" json:"computed_total"`

	// POTotal is the total as stated on the purchase order.
	POTotal decimal.Decimal `yaml:"po_total" json:"po_total"`
}

// Result is the outcome of validating one invoice against its purchase
// order. Issues appear in detection order: document-level checks
// first, then per-line checks in invoice line order. Given identical
// inputs and configuration the result is bit-identical every time.
type Result struct {
	Status Status   `yaml:"status" json:"status"`
	Issues []Issue  `yaml:"issues" json:"issues"`
	Notes  []string `yaml:"notes,omitempty" json:"notes,omitempty"`
	Stats  Stats    `yaml:"stats" json:"stats"`

	// Overridden is set when the always-approve policy flag forced
	// APPROVED despite blocking issues. The issue list is preserved
	// either way.
	Overridden bool `yaml:"overridden,omitempty" json:"overridden,omitempty"`
}

// IsApproved reports whether the invoice may be auto-approved.
func (r *Result) IsApproved() bool {
	return r.Status == StatusApproved
}

// HasBlocking reports whether any issue carries blocking severity.
func (r *Result) HasBlocking() bool {
	for _, issue := range r.Issues {
		if issue.IsBlocking() {
			return true
		}
	}
	return false
}

// Blocking returns the blocking issues in detection order.
func (r *Result) Blocking() []Issue {
	var blocking []Issue
	for _, issue := range r.Issues {
		if issue.IsBlocking() {
			blocking = append(blocking, issue)
		}
	}
	return blocking
}

// Warnings returns the warning issues in detection order.
func (r *Result) Warnings() []Issue {
	var warnings []Issue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			warnings = append(warnings, issue)
		}
	}
	return warnings
}

// Summary returns a one-line human-readable summary of the result.
func (r *Result) Summary() string {
	blocking := len(r.Blocking())
	switch {
	case r.Overridden:
		return fmt.Sprintf("%s (override) - %d issues preserved for audit", r.Status, len(r.Issues))
	case blocking > 0:
		return fmt.Sprintf("%s - %d blocking issues, %d total", r.Status, blocking, len(r.Issues))
	case len(r.Issues) > 0:
		return fmt.Sprintf("%s with %d non-blocking issues", r.Status, len(r.Issues))
	default:
		return fmt.Sprintf("%s - no issues", r.Status)
	}
}

// Report generates a detailed plain-text report of the validation,
// suitable for an audit trail.
func (r *Result) Report() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Validation Report\n")
	fmt.Fprintf(&b, "=================\n")
	fmt.Fprintf(&b, "Status: %s\n", r.Status)
	if r.Overridden {
		fmt.Fprintf(&b, "Override: always-approve policy active; issues preserved\n")
	}
	fmt.Fprintf(&b, "\n")

	fmt.Fprintf(&b, "Lines:\n")
	fmt.Fprintf(&b, "------\n")
	fmt.Fprintf(&b, "Invoice Lines: %d\n", r.Stats.InvoiceLines)
	fmt.Fprintf(&b, "PO Lines: %d\n", r.Stats.POLines)
	fmt.Fprintf(&b, "Matched: %d\n", r.Stats.MatchedLines)
	fmt.Fprintf(&b, "Fees: %d\n", r.Stats.FeeLines)
	fmt.Fprintf(&b, "Unmatched: %d\n", r.Stats.UnmatchedLines)
	fmt.Fprintf(&b, "\n")

	fmt.Fprintf(&b, "Totals:\n")
	fmt.Fprintf(&b, "-------\n")
	fmt.Fprintf(&b, "Invoice Total (stated): %s\n", r.Stats.InvoiceTotal.StringFixed(2))
	fmt.Fprintf(&b, "Invoice Total (computed): %s\n", r.Stats.ComputedTotal.StringFixed(2))
	fmt.Fprintf(&b, "PO Total: %s\n", r.Stats.POTotal.StringFixed(2))
	fmt.Fprintf(&b, "\n")

	if len(r.Issues) > 0 {
		fmt.Fprintf(&b, "Issues (%d):\n", len(r.Issues))
		fmt.Fprintf(&b, "-----------\n")
		for i, issue := range r.Issues {
			fmt.Fprintf(&b, "%d. %s\n", i+1, issue)
		}
		fmt.Fprintf(&b, "\n")
	}

	if len(r.Notes) > 0 {
		fmt.Fprintf(&b, "Notes (%d):\n", len(r.Notes))
		fmt.Fprintf(&b, "----------\n")
		for i, note := range r.Notes {
			fmt.Fprintf(&b, "%d. %s\n", i+1, note)
		}
		fmt.Fprintf(&b, "\n")
	}

	return b.String()
}
