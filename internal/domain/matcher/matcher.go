// Package matcher pairs invoice line items with contract line items.
//
// Descriptions on the two documents rarely agree byte-for-byte: words are
// reordered, truncated, or extended by the extraction step. The matcher
// scores every candidate pair with a token-set ratio, which is robust to
// word reordering and to one description being a word-superset of the
// other, and commits matches greedily in invoice order.
//
// The greedy assignment is intentional: an earlier invoice line can claim
// the single best contract match even if a later invoice line would have
// matched it more precisely. There is no backtracking, so results are
// fully deterministic for a given input order.
//
// Example usage:
//
//	m := matcher.New(matcher.DefaultConfig())
//	matches := m.MatchLines(invoice.Items, contract.LineItems)
package matcher

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/pactproof/backend/internal/domain/document"
)

// Config holds matcher configuration.
type Config struct {
	// FuzzyThreshold is the minimum similarity, as an integer percent
	// 0-100, for a pair to be committed as a match.
	FuzzyThreshold int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		FuzzyThreshold: 85,
	}
}

// Match pairs one invoice line with one contract line.
type Match struct {
	InvoiceIdx  int
	ContractIdx int
	// Confidence is the similarity score in [0,1].
	Confidence float64
}

// Matcher assigns invoice lines to contract lines.
type Matcher struct {
	threshold float64
}

// New creates a matcher with the given config.
func New(config Config) *Matcher {
	return &Matcher{
		threshold: float64(config.FuzzyThreshold) / 100.0,
	}
}

// MatchLines produces a one-to-one assignment of invoice lines to
// contract lines. Each index appears at most once across the result, and
// matches are ordered by ascending invoice index.
//
// Contract lines are claimed first-come: once a line is matched it is
// removed from consideration for all later invoice lines. An invoice
// line whose best available score falls below the threshold stays
// unmatched.
func (m *Matcher) MatchLines(items []document.InvoiceLine, lineItems []document.ContractLine) []Match {
	matches := make([]Match, 0, len(items))
	claimed := make(map[int]bool, len(lineItems))

	for invIdx, invLine := range items {
		bestConfidence := 0.0
		bestContractIdx := -1

		for contIdx, contLine := range lineItems {
			if claimed[contIdx] {
				continue
			}

			confidence := LineSimilarity(invLine.Description, contLine.Description)

			// Strictly greater: the earliest contract line wins ties.
			if confidence > bestConfidence {
				bestConfidence = confidence
				bestContractIdx = contIdx
			}
		}

		if bestContractIdx >= 0 && bestConfidence >= m.threshold {
			matches = append(matches, Match{
				InvoiceIdx:  invIdx,
				ContractIdx: bestContractIdx,
				Confidence:  bestConfidence,
			})
			claimed[bestContractIdx] = true
		}
	}

	return matches
}

// LineSimilarity scores two line descriptions in [0,1] using a token-set
// ratio over normalized text: lowercased, internal whitespace runs
// collapsed to single spaces, trimmed.
func LineSimilarity(invDesc, contDesc string) float64 {
	invNorm := normalize(invDesc)
	contNorm := normalize(contDesc)

	score := fuzzy.TokenSetRatio(invNorm, contNorm)
	return float64(score) / 100.0
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
