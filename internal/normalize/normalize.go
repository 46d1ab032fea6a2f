// Package normalize canonicalizes product identifiers and free-text
// descriptions so that two independently extracted documents can be
// compared. Extraction output varies in case, punctuation, and spacing;
// every identifier comparison in the engine goes through this package
// first.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// skuMinLen and skuMaxLen bound the canonical SKU format. Anything
// outside this range is not treated as a SKU even if the field is set.
const (
	skuMinLen = 6
	skuMaxLen = 7
)

// Identifier canonicalizes a SKU, VPN, or PO number for comparison.
// It trims surrounding whitespace, upper-cases, and drops internal
// hyphens, spaces, and punctuation. If nothing alphanumeric remains the
// result is the empty string, which never matches anything, not even
// another empty string. Two items that both lack an identifier are
// never "matched by identifier".
func Identifier(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range strings.TrimSpace(raw) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// Equal reports whether two raw identifiers are equal after
// canonicalization. Empty canonical forms never match.
func Equal(a, b string) bool {
	ca, cb := Identifier(a), Identifier(b)
	if ca == "" || cb == "" {
		return false
	}
	return ca == cb
}

// IsSKU reports whether a canonical identifier has the shape of a
// stock-keeping unit: 6-7 alphanumeric characters. Callers should pass
// the output of Identifier.
func IsSKU(canonical string) bool {
	if len(canonical) < skuMinLen || len(canonical) > skuMaxLen {
		return false
	}
	for _, r := range canonical {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return canonical != ""
}

// foldTransformer strips diacritics so "Génération" tokenizes the same
// as "Generation". NFD decomposition followed by removal of combining
// marks, then NFC recomposition.
var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Fold lower-cases text and removes diacritic marks. Used to prepare
// descriptions for tokenization.
func Fold(text string) string {
	folded, _, err := transform.String(foldTransformer, text)
	if err != nil {
		// Transform only fails on malformed input; fall back to the
		// original bytes rather than dropping the text.
		folded = text
	}
	return strings.ToLower(folded)
}

// Tokens splits free text into lower-cased, diacritic-folded word
// tokens. Runs of non-alphanumeric characters are treated as
// separators, so "Widget A (Generation 2)" and "Widget A Gen-2" share
// most of their tokens. Duplicate tokens are removed; order follows
// first appearance so downstream iteration stays deterministic.
func Tokens(text string) []string {
	fields := strings.FieldsFunc(Fold(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}

// TokenOverlap scores the similarity of two texts as the ratio of
// shared tokens to the tokens of the smaller set. The asymmetric
// denominator lets a short invoice description ("Widget A Gen2") match
// a longer PO description ("Widget A (Generation 2) retail box")
// without penalty for the extra words. Returns 0 when either side has
// no tokens.
func TokenOverlap(a, b string) float64 {
	ta, tb := Tokens(a), Tokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(tb))
	for _, t := range tb {
		set[t] = struct{}{}
	}
	shared := 0
	for _, t := range ta {
		if _, ok := set[t]; ok {
			shared++
		}
	}
	minLen := len(ta)
	if len(tb) < minLen {
		minLen = len(tb)
	}
	return float64(shared) / float64(minLen)
}
