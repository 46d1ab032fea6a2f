// Package validate reconciles a vendor invoice against its purchase
// order and decides whether the invoice can be auto-approved or must be
// routed to a human reviewer.
//
// The engine consumes already-structured documents and emits a Result;
// it performs no I/O and holds no state between calls, so one Engine
// may serve any number of goroutines concurrently. Both inputs come
// from an imperfect extraction pipeline: the rules here are tolerant of
// formatting variance and partial shipments, and every finding is
// preserved in the result for the audit trail.
//
// Example usage:
//
//	engine, err := validate.New(validate.WithConfig(validate.DefaultConfig()))
//	if err != nil {
//	    return err
//	}
//	result, err := engine.Validate(invoice, purchaseOrder)
//	if err != nil {
//	    return err // malformed input, not a business finding
//	}
//	if result.IsApproved() {
//	    ...
//	}
package validate

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/apmatch/internal/normalize"
	"github.com/agentstation/apmatch/pkg/documents"
)

// Engine validates invoices against purchase orders. It is stateless
// and freely constructible; callers may share one instance across
// workers or build one per call.
type Engine struct {
	config  *Config
	logger  zerolog.Logger
	matcher *matcher
	fees    *feeClassifier
}

// New creates an Engine with the given options. The configuration is
// validated here, before any document is processed.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		config: DefaultConfig(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}
	if err := e.config.Validate(); err != nil {
		return nil, err
	}
	e.matcher = newMatcher(e.config.DescriptionThreshold)
	e.fees = newFeeClassifier(e.config.FeeVocabulary)
	return e, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Validate reconciles one invoice against one purchase order.
//
// Input-shape errors (no line items, negative unit price) fail the
// call with a typed error; business findings never do, they are
// collected into the Result. A single pass, no retries: document
// checks, then line matching, then line checks, then aggregation.
func (e *Engine) Validate(inv *documents.Invoice, po *documents.PurchaseOrder) (*Result, error) {
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	if err := po.Validate(); err != nil {
		return nil, err
	}

	log := e.logger.With().
		Str("invoice", inv.InvoiceNumber).
		Str("po", po.PONumber).
		Logger()
	log.Info().Msg("validating invoice against purchase order")
	if inv.Vendor != "" {
		// Vendor identity is diagnostic only, never a rule input.
		log.Info().Str("vendor", inv.Vendor).Msg("invoice vendor")
	}

	// Work on copies: the engine derives fee flags and must not mutate
	// caller-supplied snapshots.
	invItems := make([]documents.Item, len(inv.Items))
	copy(invItems, inv.Items)
	poItems := make([]documents.Item, len(po.Items))
	copy(poItems, po.Items)

	stats := Stats{
		InvoiceLines: len(invItems),
		POLines:      len(poItems),
		InvoiceTotal: inv.Total,
		POTotal:      po.Total,
	}
	for i := range invItems {
		if e.fees.classify(&invItems[i]) {
			invItems[i].IsFee = true
			stats.FeeLines++
		}
		// Fees are still price-summed into the document total.
		stats.ComputedTotal = stats.ComputedTotal.Add(invItems[i].LineTotal)
	}

	var issues []Issue
	var notes []string

	// Document-level checks run first.
	if inv.InvoiceNumber == "" {
		issues = append(issues, Issue{
			Severity: SeverityBlocking,
			Code:     CodeMissingInvoiceNumber,
			Line:     DocumentLine,
			Message:  "missing invoice number",
		})
	}

	switch {
	case inv.PONumber == "":
		// Absent is not provably mismatched; flag and keep going.
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Code:     CodeMissingPONumber,
			Line:     DocumentLine,
			Message:  "invoice carries no PO number; correspondence cannot be confirmed",
		})
	case !normalize.Equal(inv.PONumber, po.PONumber):
		// With no reliable correspondence there is nothing further to
		// check; return what was found so far.
		issues = append(issues, Issue{
			Severity: SeverityBlocking,
			Code:     CodePONumberMismatch,
			Line:     DocumentLine,
			Message:  fmt.Sprintf("PO number mismatch: invoice %s vs PO %s", inv.PONumber, po.PONumber),
		})
		log.Warn().Str("invoice_po", inv.PONumber).Msg("PO number mismatch, skipping line checks")
		return e.finish(log, issues, notes, stats), nil
	}

	if !e.config.totalWithin(stats.ComputedTotal, inv.Total) {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Code:     CodeTotalMismatch,
			Line:     DocumentLine,
			Message: fmt.Sprintf("invoice line totals sum to %s but stated total is %s",
				stats.ComputedTotal.StringFixed(2), inv.Total.StringFixed(2)),
		})
	}

	// Line matching, then per-line checks in invoice line order.
	pairs, st := e.matcher.match(invItems, poItems)
	for _, pair := range pairs {
		lineIssues, lineNotes := e.checkLine(pair)
		issues = append(issues, lineIssues...)
		notes = append(notes, lineNotes...)
		if pair.PO != nil {
			stats.MatchedLines++
		} else if !pair.Invoice.IsFee {
			stats.UnmatchedLines++
		}
	}

	if leftover := st.leftoverPO(); len(leftover) > 0 {
		labels := make([]string, 0, len(leftover))
		for _, idx := range leftover {
			labels = append(labels, poLineLabel(&poItems[idx]))
		}
		notes = append(notes, fmt.Sprintf("%d PO line(s) with no invoice counterpart: %s",
			len(leftover), strings.Join(labels, ", ")))
	}

	return e.finish(log, issues, notes, stats), nil
}

// checkLine runs the edge-case detector and the quantity/price checker
// for one invoice line. All issues for a line are emitted together so
// the result reads in invoice order.
func (e *Engine) checkLine(pair MatchedPair) ([]Issue, []string) {
	item := pair.Invoice

	// Credit memos always require manual verification; no further
	// checks can clear them.
	if item.IsCreditLine() {
		return []Issue{{
			Severity:   SeverityBlocking,
			Code:       CodeCreditMemo,
			Line:       pair.InvoiceLine,
			Identifier: pair.Identifier,
			Message:    fmt.Sprintf("credit memo line %s requires manual verification", pairLabel(pair)),
		}}, nil
	}

	// Fee lines are exempt from PO correspondence and price checks.
	if item.IsFee {
		return nil, []string{fmt.Sprintf("line %q recognized as a fee, exempt from PO matching", item.Text())}
	}

	var issues []Issue
	var notes []string

	if pair.Ambiguous {
		issues = append(issues, Issue{
			Severity:   SeverityWarning,
			Code:       CodeAmbiguousIdentifier,
			Line:       pair.InvoiceLine,
			Identifier: pair.Identifier,
			Message:    fmt.Sprintf("ambiguous PO identifier %s appears on multiple PO lines; first unused line used", pair.Identifier),
		})
	}

	switch pair.Tier {
	case TierUnmatched:
		issues = append(issues, Issue{
			Severity: SeverityBlocking,
			Code:     CodeNoPOLine,
			Line:     pair.InvoiceLine,
			Message:  fmt.Sprintf("item %q has no corresponding PO line", item.Text()),
		})
		return issues, notes
	case TierDescription:
		// Fallback matches are a known accuracy risk; always flagged.
		issues = append(issues, Issue{
			Severity: SeverityInfo,
			Code:     CodeFallbackMatch,
			Line:     pair.InvoiceLine,
			Message: fmt.Sprintf("item %q matched PO line %q by description (score %.2f)",
				item.Text(), pair.PO.Text(), pair.Score),
		})
		if item.SKU == "" && item.VPN == "" {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Code:     CodeMissingIdentifier,
				Line:     pair.InvoiceLine,
				Message:  fmt.Sprintf("item %q has neither SKU nor VPN", item.Text()),
			})
		}
	}

	checkIssues, checkNotes := checkPair(e.config, pair)
	issues = append(issues, checkIssues...)
	notes = append(notes, checkNotes...)
	return issues, notes
}

// finish aggregates findings into the final result and applies the
// always-approve override. The engine never discards issues to make a
// document look cleaner: the override flips status only.
func (e *Engine) finish(log zerolog.Logger, issues []Issue, notes []string, stats Stats) *Result {
	result := &Result{
		Status: aggregate(issues),
		Issues: issues,
		Notes:  notes,
		Stats:  stats,
	}
	if e.config.AlwaysApprove && result.Status == StatusReview {
		result.Status = StatusApproved
		result.Overridden = true
	}
	for _, issue := range issues {
		if issue.IsBlocking() {
			log.Warn().Str("code", string(issue.Code)).Msg(issue.Message)
		}
	}
	log.Info().
		Str("status", string(result.Status)).
		Int("issues", len(result.Issues)).
		Bool("overridden", result.Overridden).
		Msg("validation complete")
	return result
}

// poLineLabel names a PO line for the leftover note.
func poLineLabel(item *documents.Item) string {
	if sku := normalize.Identifier(item.SKU); normalize.IsSKU(sku) {
		return sku
	}
	if vpn := normalize.Identifier(item.VPN); vpn != "" {
		return vpn
	}
	return fmt.Sprintf("%q", item.Text())
}
