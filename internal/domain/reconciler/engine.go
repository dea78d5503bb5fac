// Package reconciler composes the line matcher and the rule checks into
// the reconciliation engine.
//
// Reconcile is a pure function of its two inputs and the engine
// configuration: no I/O, no shared state, identical inputs always
// produce identical, order-stable output. One engine may be shared by
// concurrent callers as long as each call gets its own documents.
package reconciler

import (
	"github.com/pactproof/backend/internal/domain/document"
	"github.com/pactproof/backend/internal/domain/matcher"
	"github.com/pactproof/backend/internal/domain/rules"
)

// Config holds engine configuration.
type Config struct {
	// FuzzyThreshold is the line-match similarity threshold as an
	// integer percent 0-100.
	FuzzyThreshold int

	// AllowedVariancePct is the unit price variance tolerance as a
	// float percent.
	AllowedVariancePct float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		FuzzyThreshold:     85,
		AllowedVariancePct: 2.0,
	}
}

// Engine reconciles an invoice against a contract.
type Engine struct {
	matcher            *matcher.Matcher
	allowedVariancePct float64
}

// NewEngine creates an engine with the given config.
func NewEngine(config Config) *Engine {
	return &Engine{
		matcher:            matcher.New(matcher.Config{FuzzyThreshold: config.FuzzyThreshold}),
		allowedVariancePct: config.AllowedVariancePct,
	}
}

// Reconcile matches invoice lines to contract lines, runs every check,
// and aggregates the findings into a severity-classified result.
//
// Finding order is fixed for reproducibility: currency, net terms, then
// per-matched-pair variance/overflow in match order, then unmatched
// lines. The call never fails: empty line lists and zero prices are
// handled by the checks themselves.
func (e *Engine) Reconcile(inv *document.Invoice, contract *document.Contract) *document.ReconcileResult {
	findings := make([]document.Finding, 0)

	findings = append(findings, rules.CheckCurrency(inv, contract)...)
	findings = append(findings, rules.CheckNetTerms(inv, contract)...)

	matches := e.matcher.MatchLines(inv.Items, contract.LineItems)
	findings = append(findings, rules.CheckLineVariances(inv, contract, matches, e.allowedVariancePct)...)

	var majorCount, minorCount int
	for _, f := range findings {
		switch f.Severity {
		case document.SeverityMajor:
			majorCount++
		case document.SeverityMinor:
			minorCount++
		}
	}

	return &document.ReconcileResult{
		Summary: document.Summary{
			Pass:       majorCount == 0,
			MajorCount: majorCount,
			MinorCount: minorCount,
			TotalCount: len(findings),
		},
		Findings: findings,
	}
}

// MatchLines exposes the engine's line matching for callers that need
// the pairing without the checks, e.g. the note drafter.
func (e *Engine) MatchLines(inv *document.Invoice, contract *document.Contract) []matcher.Match {
	return e.matcher.MatchLines(inv.Items, contract.LineItems)
}
