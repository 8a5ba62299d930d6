// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/pdiddy/pdftotext/pkg/types"
)

// Strategy decides whether text matches any of the keyword terms. Terms
// are tried in order and the first hit is returned.
type Strategy interface {
	Match(text string, terms []string) (term string, ok bool)
}

// NewStrategy returns the strategy named by cfg.
func NewStrategy(cfg types.MatchConfig) (Strategy, error) {
	switch cfg.Strategy {
	case types.StrategyExact, "":
		return Exact{}, nil
	case types.StrategySimilarity:
		return Similarity{Threshold: cfg.Threshold}, nil
	default:
		return nil, fmt.Errorf("unknown match strategy %q", cfg.Strategy)
	}
}

// Exact matches when a term occurs verbatim in the text. Matching is
// case-sensitive: "INVOICE" does not match "invoice".
type Exact struct{}

// Match returns the first non-empty term contained in text.
func (Exact) Match(text string, terms []string) (string, bool) {
	for _, term := range terms {
		if term != "" && strings.Contains(text, term) {
			return term, true
		}
	}
	return "", false
}

// Similarity matches when the token-set ratio between a term and the text
// is strictly greater than Threshold (0-100). Both sides are lowercased and
// stripped of punctuation before tokenizing, so this strategy ignores case.
type Similarity struct {
	Threshold int
}

// Match returns the first term whose token-set ratio against text exceeds
// the threshold.
func (s Similarity) Match(text string, terms []string) (string, bool) {
	textTokens := tokenSet(text)
	for _, term := range terms {
		if term == "" {
			continue
		}
		if tokenSetRatio(textTokens, tokenSet(term)) > float64(s.Threshold) {
			return term, true
		}
	}
	return "", false
}

// TokenSetRatio scores how similar a and b are on a 0-100 scale, comparing
// their sets of words. When every word of one side appears in the other the
// score is 100.
func TokenSetRatio(a, b string) float64 {
	return tokenSetRatio(tokenSet(a), tokenSet(b))
}

func tokenSetRatio(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var common, onlyA, onlyB []string
	for t := range a {
		if _, ok := b[t]; ok {
			common = append(common, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range b {
		if _, ok := a[t]; !ok {
			onlyB = append(onlyB, t)
		}
	}
	if len(common) > 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 100
	}

	sect := joinSorted(common)
	withA := strings.TrimSpace(sect + " " + joinSorted(onlyA))
	withB := strings.TrimSpace(sect + " " + joinSorted(onlyB))

	best := ratio(withA, withB)
	if sect != "" {
		best = max(best, ratio(sect, withA), ratio(sect, withB))
	}
	return best
}

// ratio is the normalized insert/delete similarity of a and b on a 0-100
// scale. A substitution counts as one deletion plus one insertion.
func ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	dist := total - 2*lcsLength(ra, rb)
	return float64(total-dist) * 100 / float64(total)
}

// lcsLength returns the length of the longest common subsequence of a and b.
func lcsLength(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func joinSorted(tokens []string) string {
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
