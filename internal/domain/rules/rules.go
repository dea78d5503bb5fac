// Package rules implements the fixed discrepancy checks run during
// reconciliation. Each check is a pure function over the two documents
// (plus the line matching where relevant) returning zero or more
// findings; the engine composes them and all checks always run.
//
// Two behaviors are deliberate and load-bearing:
//
//   - Absent optional fields compare as their literal defaults ("USD",
//     "Net 30"), not as unknown.
//   - A present-but-zero numeric behaves like an absent one: a zero max
//     quantity means unlimited, and a zero unit price on either side
//     skips the variance check.
package rules

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pactproof/backend/internal/domain/document"
	"github.com/pactproof/backend/internal/domain/matcher"
)

// CheckCurrency flags a MAJOR finding when the invoice and contract
// currencies disagree after default substitution.
func CheckCurrency(inv *document.Invoice, contract *document.Contract) []document.Finding {
	invCurr := inv.CurrencyOrDefault()
	contCurr := contract.CurrencyOrDefault()

	if invCurr == contCurr {
		return nil
	}

	return []document.Finding{{
		Type:     document.FindingCurrencyMismatch,
		Severity: document.SeverityMajor,
		Details:  fmt.Sprintf("Currency mismatch: Invoice %s vs Contract %s", invCurr, contCurr),
	}}
}

// CheckNetTerms flags a MINOR finding when the payment terms disagree
// after default substitution.
func CheckNetTerms(inv *document.Invoice, contract *document.Contract) []document.Finding {
	invTerms := inv.NetTermsOrDefault()
	contTerms := contract.NetTermsOrDefault()

	if invTerms == contTerms {
		return nil
	}

	return []document.Finding{{
		Type:     document.FindingTermsMismatch,
		Severity: document.SeverityMinor,
		Details:  fmt.Sprintf("Net terms mismatch: Invoice %s vs Contract %s", invTerms, contTerms),
	}}
}

// CheckLineVariances runs the per-line checks over the matching produced
// by the line matcher:
//
//   - unit price variance exceeding the allowed percentage (MAJOR)
//   - invoice quantity exceeding the contract line's max quantity (MAJOR)
//   - invoice lines with no matching contract line at all (MAJOR)
//
// Variance and overflow findings are interleaved in match order, with
// all unknown-line findings appended after them.
func CheckLineVariances(inv *document.Invoice, contract *document.Contract, matches []matcher.Match, allowedVariancePct float64) []document.Finding {
	var findings []document.Finding

	matchedInvoice := make(map[int]bool, len(matches))
	for _, m := range matches {
		matchedInvoice[m.InvoiceIdx] = true
	}

	for _, m := range matches {
		invIdx, contIdx := m.InvoiceIdx, m.ContractIdx
		invLine := inv.Items[invIdx]
		contLine := contract.LineItems[contIdx]

		if invLine.UnitPrice != 0 && contLine.UnitPrice != 0 {
			variance := ComputeVariance(invLine.UnitPrice, contLine.UnitPrice)
			if variance > allowedVariancePct/100.0 {
				findings = append(findings, document.Finding{
					Type:     document.FindingUnitPriceVariance,
					Severity: document.SeverityMajor,
					Details: fmt.Sprintf("Unit price variance %.1f%% exceeds %s%%: Invoice $%.2f vs Contract $%.2f",
						variance*100, formatNum(allowedVariancePct), invLine.UnitPrice, contLine.UnitPrice),
					InvoiceLineIdx:  intPtr(invIdx),
					ContractLineIdx: intPtr(contIdx),
				})
			}
		}

		if contLine.MaxQuantity != 0 && invLine.Quantity > contLine.MaxQuantity {
			findings = append(findings, document.Finding{
				Type:     document.FindingQuantityOverflow,
				Severity: document.SeverityMajor,
				Details: fmt.Sprintf("Quantity %s exceeds contract max %s",
					formatNum(invLine.Quantity), formatNum(contLine.MaxQuantity)),
				InvoiceLineIdx:  intPtr(invIdx),
				ContractLineIdx: intPtr(contIdx),
			})
		}
	}

	for invIdx := range inv.Items {
		if matchedInvoice[invIdx] {
			continue
		}
		findings = append(findings, document.Finding{
			Type:     document.FindingUnknownLine,
			Severity: document.SeverityMajor,
			Details: fmt.Sprintf("No matching contract line for invoice item: %s...",
				truncate(inv.Items[invIdx].Description, 60)),
			InvoiceLineIdx: intPtr(invIdx),
		})
	}

	return findings
}

// ComputeVariance returns the relative difference between the invoiced
// and contracted unit price as a fraction of the contracted price. A
// zero contracted price yields 1.0 for any non-zero invoiced price and
// 0.0 otherwise, so the result is always defined.
func ComputeVariance(actual, expected float64) float64 {
	if expected == 0 {
		if actual != 0 {
			return 1.0
		}
		return 0.0
	}
	return math.Abs(actual-expected) / expected
}

// formatNum renders a float with its shortest round-trip representation,
// keeping a trailing ".0" on integral values so thresholds and quantities
// read as decimals (2.0, 2.25, 60.0).
func formatNum(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func intPtr(i int) *int {
	return &i
}
