package validate

import (
	"fmt"
)

// checkPair evaluates quantity and price rules for one matched pair
// with a real PO counterpart. Fee-exempted and unmatched pairs never
// reach this function.
func checkPair(cfg *Config, pair MatchedPair) ([]Issue, []string) {
	var issues []Issue
	var notes []string

	label := pairLabel(pair)

	// Unit prices must agree within tolerance. The tolerance absorbs
	// extraction rounding, not real price drift.
	if !cfg.priceWithin(pair.Invoice.UnitPrice, pair.PO.UnitPrice) {
		issues = append(issues, Issue{
			Severity:   SeverityBlocking,
			Code:       CodePriceMismatch,
			Line:       pair.InvoiceLine,
			Identifier: pair.Identifier,
			Message: fmt.Sprintf("unit price mismatch for %s: invoice %s vs PO %s",
				label, pair.Invoice.UnitPrice.StringFixed(2), pair.PO.UnitPrice.StringFixed(2)),
		})
	}

	invQty, poQty := pair.Invoice.Quantity, pair.PO.Quantity
	switch {
	case invQty.GreaterThan(poQty):
		issues = append(issues, Issue{
			Severity:   SeverityBlocking,
			Code:       CodeOverShipment,
			Line:       pair.InvoiceLine,
			Identifier: pair.Identifier,
			Message: fmt.Sprintf("over-shipment for %s: invoiced %s vs ordered %s",
				label, invQty.String(), poQty.String()),
		})
	case invQty.IsZero():
		issues = append(issues, Issue{
			Severity:   SeverityWarning,
			Code:       CodeZeroQuantity,
			Line:       pair.InvoiceLine,
			Identifier: pair.Identifier,
			Message:    fmt.Sprintf("zero quantity invoiced for %s", label),
		})
	case invQty.LessThan(poQty):
		// Partial deliveries are an accepted business scenario.
		notes = append(notes, fmt.Sprintf("partial delivery accepted for %s: invoiced %s of %s ordered",
			label, invQty.String(), poQty.String()))
	}

	return issues, notes
}

// pairLabel names a pair for messages: canonical identifier when one
// exists, otherwise the item text.
func pairLabel(pair MatchedPair) string {
	if pair.Identifier != "" {
		return pair.Identifier
	}
	return fmt.Sprintf("%q", pair.Invoice.Text())
}

// aggregate combines all findings into the final status: REVIEW if any
// issue is blocking, APPROVED otherwise. Warnings and infos never
// change the status.
func aggregate(issues []Issue) Status {
	for _, issue := range issues {
		if issue.IsBlocking() {
			return StatusReview
		}
	}
	return StatusApproved
}
