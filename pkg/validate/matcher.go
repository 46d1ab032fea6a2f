package validate

import (
	"github.com/agentstation/apmatch/internal/normalize"
	"github.com/agentstation/apmatch/pkg/documents"
)

// MatchTier identifies which identifier tier paired an invoice line
// with a PO line.
type MatchTier int

const (
	// TierSKU is a canonical SKU equality match.
	TierSKU MatchTier = iota
	// TierVPN is a canonical vendor-part-number equality match.
	TierVPN
	// TierDescription is the token-overlap fallback. Never counts as a
	// confident match.
	TierDescription
	// TierUnmatched means no PO counterpart was found.
	TierUnmatched
)

// String returns the string representation of a MatchTier.
func (t MatchTier) String() string {
	switch t {
	case TierSKU:
		return "SKU"
	case TierVPN:
		return "VPN"
	case TierDescription:
		return "DESCRIPTION"
	case TierUnmatched:
		return "UNMATCHED"
	default:
		return "UNKNOWN"
	}
}

// MatchedPair links one invoice line to at most one PO line. Pairs are
// created fresh for each validate call and reference, not own, the
// underlying items.
type MatchedPair struct {
	Invoice     *documents.Item
	PO          *documents.Item // nil when unmatched
	InvoiceLine int
	POLine      int // -1 when unmatched
	Tier        MatchTier

	// Score is the token-overlap score for description-tier matches.
	Score float64

	// Ambiguous is set when the matched identifier appeared on more
	// than one PO line. The first unused PO line in order wins, and
	// the engine raises a warning instead of silently picking.
	Ambiguous bool

	// Identifier is the canonical identifier the match was made on.
	Identifier string
}

// matchState carries the per-call PO indexes and usage bitmap. A PO
// line is referenced by at most one pair; the used bitmap enforces
// that injectively.
type matchState struct {
	poItems  []documents.Item
	used     []bool
	skuIndex map[string][]int
	vpnIndex map[string][]int
}

// tierStrategy is one identifier tier. Tiers are tried in order and
// the first match wins; adding a future identifier type means
// appending a strategy, not editing control flow.
type tierStrategy interface {
	tier() MatchTier
	find(st *matchState, item *documents.Item) (pair MatchedPair, ok bool)
}

// matcher pairs invoice lines to PO lines using the tiered identifier
// strategy. It is stateless across calls; all working state lives in
// the matchState built per call.
type matcher struct {
	tiers []tierStrategy
}

func newMatcher(descriptionThreshold float64) *matcher {
	return &matcher{
		tiers: []tierStrategy{
			skuTier{},
			vpnTier{},
			descriptionTier{threshold: descriptionThreshold},
		},
	}
}

// match covers every invoice item exactly once, scanning left to right
// so results are reproducible. Leftover PO lines are reported by the
// caller from the returned state.
func (m *matcher) match(invoiceItems, poItems []documents.Item) ([]MatchedPair, *matchState) {
	st := &matchState{
		poItems:  poItems,
		used:     make([]bool, len(poItems)),
		skuIndex: make(map[string][]int),
		vpnIndex: make(map[string][]int),
	}
	for i := range poItems {
		if sku := normalize.Identifier(poItems[i].SKU); normalize.IsSKU(sku) {
			st.skuIndex[sku] = append(st.skuIndex[sku], i)
		}
		if vpn := normalize.Identifier(poItems[i].VPN); vpn != "" {
			st.vpnIndex[vpn] = append(st.vpnIndex[vpn], i)
		}
	}

	pairs := make([]MatchedPair, 0, len(invoiceItems))
	for i := range invoiceItems {
		item := &invoiceItems[i]
		pair := MatchedPair{
			Invoice:     item,
			InvoiceLine: i,
			POLine:      -1,
			Tier:        TierUnmatched,
		}
		for _, tier := range m.tiers {
			if found, ok := tier.find(st, item); ok {
				pair = found
				pair.Invoice = item
				pair.InvoiceLine = i
				st.used[pair.POLine] = true
				break
			}
		}
		pairs = append(pairs, pair)
	}
	return pairs, st
}

// leftoverPO returns the PO lines no invoice line claimed, in PO order.
func (st *matchState) leftoverPO() []int {
	var leftover []int
	for i, used := range st.used {
		if !used {
			leftover = append(leftover, i)
		}
	}
	return leftover
}

// firstUnused picks the first unused candidate in PO order.
func (st *matchState) firstUnused(candidates []int) (int, bool) {
	for _, idx := range candidates {
		if !st.used[idx] {
			return idx, true
		}
	}
	return 0, false
}

// skuTier matches on canonical SKU equality. Identifiers that are not
// 6-7 alphanumeric characters after normalization are not SKUs and do
// not participate, even if the field is populated.
type skuTier struct{}

func (skuTier) tier() MatchTier { return TierSKU }

func (skuTier) find(st *matchState, item *documents.Item) (MatchedPair, bool) {
	canonical := normalize.Identifier(item.SKU)
	if !normalize.IsSKU(canonical) {
		return MatchedPair{}, false
	}
	candidates := st.skuIndex[canonical]
	idx, ok := st.firstUnused(candidates)
	if !ok {
		return MatchedPair{}, false
	}
	return MatchedPair{
		PO:         &st.poItems[idx],
		POLine:     idx,
		Tier:       TierSKU,
		Ambiguous:  len(candidates) > 1,
		Identifier: canonical,
	}, true
}

// vpnTier matches on canonical vendor part number equality. Only
// attempted when the SKU tier produced no match.
type vpnTier struct{}

func (vpnTier) tier() MatchTier { return TierVPN }

func (vpnTier) find(st *matchState, item *documents.Item) (MatchedPair, bool) {
	canonical := normalize.Identifier(item.VPN)
	if canonical == "" {
		return MatchedPair{}, false
	}
	candidates := st.vpnIndex[canonical]
	idx, ok := st.firstUnused(candidates)
	if !ok {
		return MatchedPair{}, false
	}
	return MatchedPair{
		PO:         &st.poItems[idx],
		POLine:     idx,
		Tier:       TierVPN,
		Ambiguous:  len(candidates) > 1,
		Identifier: canonical,
	}, true
}

// descriptionTier is the loose token-overlap fallback. It is a known
// accuracy risk, so matches made here always raise an informational
// issue upstream. Best score wins; on ties the earlier PO line wins to
// keep results deterministic.
type descriptionTier struct {
	threshold float64
}

func (descriptionTier) tier() MatchTier { return TierDescription }

func (d descriptionTier) find(st *matchState, item *documents.Item) (MatchedPair, bool) {
	text := item.Text()
	if text == "" {
		return MatchedPair{}, false
	}
	best := -1
	bestScore := 0.0
	for i := range st.poItems {
		if st.used[i] {
			continue
		}
		score := normalize.TokenOverlap(text, st.poItems[i].Text())
		if score >= d.threshold && score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best < 0 {
		return MatchedPair{}, false
	}
	return MatchedPair{
		PO:     &st.poItems[best],
		POLine: best,
		Tier:   TierDescription,
		Score:  bestScore,
	}, true
}
