package validate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/apmatch/pkg/documents"
)

func item(sku, vpn, desc string) documents.Item {
	return documents.Item{
		SKU:         sku,
		VPN:         vpn,
		Description: desc,
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.NewFromInt(10),
		LineTotal:   decimal.NewFromInt(10),
	}
}

func TestMatcherSKUTier(t *testing.T) {
	m := newMatcher(0.5)
	pairs, _ := m.match(
		[]documents.Item{item("abc-123", "", "Widget")},
		[]documents.Item{item("ABC123", "", "Widget A retail")},
	)

	require.Len(t, pairs, 1)
	assert.Equal(t, TierSKU, pairs[0].Tier)
	assert.Equal(t, "ABC123", pairs[0].Identifier)
	assert.Equal(t, 0, pairs[0].POLine)
	assert.False(t, pairs[0].Ambiguous)
}

func TestMatcherSKULengthGate(t *testing.T) {
	// Five characters is not a SKU; both sides carry the same short
	// code but must fall through to the VPN tier.
	m := newMatcher(0.5)
	pairs, _ := m.match(
		[]documents.Item{item("AB123", "VP-9", "Widget")},
		[]documents.Item{item("AB123", "VP9", "Widget")},
	)

	require.Len(t, pairs, 1)
	assert.Equal(t, TierVPN, pairs[0].Tier)
}

func TestMatcherVPNOnlyWhenSKUFails(t *testing.T) {
	m := newMatcher(0.5)
	pairs, _ := m.match(
		[]documents.Item{item("ABC123", "VP-1", "Widget")},
		[]documents.Item{
			item("", "VP1", "Other thing"),
			item("ABC123", "", "Widget A"),
		},
	)

	require.Len(t, pairs, 1)
	assert.Equal(t, TierSKU, pairs[0].Tier, "SKU tier wins over VPN")
	assert.Equal(t, 1, pairs[0].POLine)
}

func TestMatcherDescriptionFallback(t *testing.T) {
	m := newMatcher(0.5)
	pairs, _ := m.match(
		[]documents.Item{item("", "", "Widget A Gen2")},
		[]documents.Item{item("", "", "Widget A (Generation 2)")},
	)

	require.Len(t, pairs, 1)
	assert.Equal(t, TierDescription, pairs[0].Tier)
	assert.Greater(t, pairs[0].Score, 0.5)
}

func TestMatcherDescriptionBelowThresholdUnmatched(t *testing.T) {
	m := newMatcher(0.9)
	pairs, _ := m.match(
		[]documents.Item{item("", "", "Widget A Gen2")},
		[]documents.Item{item("", "", "Widget A (Generation 2)")},
	)

	require.Len(t, pairs, 1)
	assert.Equal(t, TierUnmatched, pairs[0].Tier)
	assert.Nil(t, pairs[0].PO)
}

func TestMatcherEmptyIdentifiersNeverMatch(t *testing.T) {
	// Both sides lack identifiers entirely; empty canonical forms must
	// not be treated as equal.
	m := newMatcher(0.5)
	pairs, _ := m.match(
		[]documents.Item{item("", "", "alpha")},
		[]documents.Item{item("", "", "beta")},
	)

	require.Len(t, pairs, 1)
	assert.Equal(t, TierUnmatched, pairs[0].Tier)
}

func TestMatcherPOSideInjective(t *testing.T) {
	// Two invoice lines claim the same SKU; only one PO line carries
	// it. The second invoice line must not reuse the PO line.
	m := newMatcher(0.5)
	pairs, st := m.match(
		[]documents.Item{
			item("ABC123", "", "Widget"),
			item("ABC123", "", "Widget"),
		},
		[]documents.Item{item("ABC123", "", "Widget A")},
	)

	require.Len(t, pairs, 2)
	assert.Equal(t, TierSKU, pairs[0].Tier)

	seen := map[int]bool{}
	for _, p := range pairs {
		if p.POLine >= 0 {
			assert.False(t, seen[p.POLine], "PO line %d referenced twice", p.POLine)
			seen[p.POLine] = true
		}
	}
	assert.Empty(t, st.leftoverPO())
}

func TestMatcherDuplicateIdentifierTieBreak(t *testing.T) {
	// Repeat identifier on the PO side: first unused PO line in order
	// wins, and the pair is flagged ambiguous.
	m := newMatcher(0.5)
	pairs, _ := m.match(
		[]documents.Item{
			item("ABC123", "", "Widget"),
			item("ABC123", "", "Widget"),
		},
		[]documents.Item{
			item("ABC123", "", "Widget first"),
			item("ABC123", "", "Widget second"),
		},
	)

	require.Len(t, pairs, 2)
	assert.Equal(t, 0, pairs[0].POLine)
	assert.Equal(t, 1, pairs[1].POLine)
	assert.True(t, pairs[0].Ambiguous)
	assert.True(t, pairs[1].Ambiguous)
}

func TestMatcherLeftoverPOLines(t *testing.T) {
	m := newMatcher(0.5)
	_, st := m.match(
		[]documents.Item{item("ABC123", "", "Widget")},
		[]documents.Item{
			item("ABC123", "", "Widget A"),
			item("DEF456", "", "Widget B"),
			item("GHI789", "", "Widget C"),
		},
	)

	assert.Equal(t, []int{1, 2}, st.leftoverPO())
}

func TestMatcherDescriptionTieBreakEarlierLine(t *testing.T) {
	// Identical descriptions on two PO lines: equal scores, so the
	// earlier line must win for reproducibility.
	m := newMatcher(0.5)
	pairs, _ := m.match(
		[]documents.Item{item("", "", "Widget A")},
		[]documents.Item{
			item("", "", "Widget A"),
			item("", "", "Widget A"),
		},
	)

	require.Len(t, pairs, 1)
	assert.Equal(t, 0, pairs[0].POLine)
}
