package validate

import (
	"github.com/agentstation/apmatch/internal/normalize"
	"github.com/agentstation/apmatch/pkg/documents"
)

// feeClassifier recognizes non-merchandise charges so they are not
// counted as mismatches. Classification runs before matching decisions
// are finalized: fee lines are exempt from the no-PO-counterpart rule
// but still contribute to the document total check.
type feeClassifier struct {
	vocabulary map[string]struct{}
}

// newFeeClassifier builds a classifier from the configured vocabulary.
// Terms are folded to tokens once so classification is a set lookup.
func newFeeClassifier(vocabulary []string) *feeClassifier {
	fc := &feeClassifier{vocabulary: make(map[string]struct{}, len(vocabulary))}
	for _, term := range vocabulary {
		for _, token := range normalize.Tokens(term) {
			fc.vocabulary[token] = struct{}{}
		}
	}
	return fc
}

// classify reports whether the item is a fee line: its name or
// description contains a vocabulary term AND it carries no SKU. A line
// with a real SKU is merchandise no matter what the text says.
func (fc *feeClassifier) classify(item *documents.Item) bool {
	if normalize.IsSKU(normalize.Identifier(item.SKU)) {
		return false
	}
	for _, token := range normalize.Tokens(item.Name) {
		if _, ok := fc.vocabulary[token]; ok {
			return true
		}
	}
	for _, token := range normalize.Tokens(item.Description) {
		if _, ok := fc.vocabulary[token]; ok {
			return true
		}
	}
	return false
}
