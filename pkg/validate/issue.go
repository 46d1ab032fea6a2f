package validate

import "fmt"

// Severity classifies how a finding affects the verdict. Only Blocking
// findings route a document pair to human review; Warning and Info are
// carried in the result for the audit trail but never change status.
type Severity int

const (
	// SeverityInfo marks a non-blocking observation.
	SeverityInfo Severity = iota
	// SeverityWarning marks a finding a reviewer should see but which
	// does not by itself require review.
	SeverityWarning
	// SeverityBlocking marks a finding that forces manual review.
	SeverityBlocking
)

// String returns the string representation of a Severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityBlocking:
		return "BLOCKING"
	default:
		return "UNKNOWN"
	}
}

// Code identifies the rule that produced an issue.
type Code string

// Issue codes, document-level first.
const (
	CodeMissingInvoiceNumber Code = "MISSING_INVOICE_NUMBER"
	CodeMissingPONumber      Code = "MISSING_PO_NUMBER"
	CodePONumberMismatch     Code = "PO_NUMBER_MISMATCH"
	CodeTotalMismatch        Code = "TOTAL_MISMATCH"

	CodeCreditMemo          Code = "CREDIT_MEMO"
	CodeFallbackMatch       Code = "FALLBACK_MATCH"
	CodeMissingIdentifier   Code = "MISSING_IDENTIFIER"
	CodeAmbiguousIdentifier Code = "AMBIGUOUS_PO_IDENTIFIER"
	CodeNoPOLine            Code = "NO_PO_LINE"
	CodePriceMismatch       Code = "UNIT_PRICE_MISMATCH"
	CodeOverShipment        Code = "OVER_SHIPMENT"
	CodeZeroQuantity        Code = "ZERO_QUANTITY"
)

// DocumentLine marks an issue that refers to the whole document rather
// than a specific line.
const DocumentLine = -1

// Issue is an immutable finding produced by one validation rule.
// Issues are collected into the result in detection order and never
// mutated after creation.
type Issue struct {
	Severity Severity `yaml:"severity" json:"severity"`
	Code     Code     `yaml:"code" json:"code"`
	Message  string   `yaml:"message" json:"message"`

	// Line is the zero-based invoice line the issue refers to, or
	// DocumentLine for document-level issues.
	Line int `yaml:"line" json:"line"`

	// Identifier is the canonical identifier of the offending item,
	// when one exists.
	Identifier string `yaml:"identifier,omitempty" json:"identifier,omitempty"`
}

// String renders the issue for logs and reports.
func (i Issue) String() string {
	if i.Line == DocumentLine {
		return fmt.Sprintf("[%s] %s: %s", i.Severity, i.Code, i.Message)
	}
	return fmt.Sprintf("[%s] %s (line %d): %s", i.Severity, i.Code, i.Line+1, i.Message)
}

// IsBlocking reports whether the issue forces review.
func (i Issue) IsBlocking() bool {
	return i.Severity == SeverityBlocking
}

// MarshalYAML renders the severity as its string form.
func (s Severity) MarshalYAML() ([]byte, error) {
	return []byte(s.String()), nil
}

// MarshalJSON renders the severity as its string form.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}
