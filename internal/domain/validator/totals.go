// Package validator provides arithmetic validation for extracted invoices.
//
// The totals validator checks that line amounts sum to the invoice total
// before the document is reconciled. A mismatch usually means the
// extraction missed a line or misread a number, which would otherwise
// surface as spurious findings downstream.
package validator

import (
	"fmt"
	"math"

	"github.com/pactproof/backend/internal/domain/document"
)

// TotalsValidation contains the result of validating invoice totals.
type TotalsValidation struct {
	// Valid is true if the line amounts sum to the invoice total
	Valid bool

	// LineSum is the sum of all line total prices
	LineSum float64

	// ExpectedTotal is the invoice total adjusted for tax and discount
	ExpectedTotal float64

	// Difference is the gap between actual and expected
	Difference float64

	// Reason explains why validation failed (empty if valid)
	Reason string
}

// ValidateTotals checks that invoice line amounts sum to the stated total.
//
// The expected relation is:
//
//	sum(line total_price) ≈ subtotal.total - subtotal.tax + subtotal.discount
//
// A tolerance of 2 cents is allowed for rounding differences.
func ValidateTotals(inv *document.Invoice) *TotalsValidation {
	var lineSum float64
	for _, line := range inv.Items {
		lineSum += line.TotalPrice
	}
	lineSum = roundToCents(lineSum)

	expected := roundToCents(inv.Subtotal.Total - inv.Subtotal.Tax + inv.Subtotal.Discount)

	diff := roundToCents(lineSum - expected)

	// Allow 2 cent tolerance for rounding
	const tolerance = 0.02

	if math.Abs(diff) <= tolerance {
		return &TotalsValidation{
			Valid:         true,
			LineSum:       lineSum,
			ExpectedTotal: expected,
			Difference:    diff,
		}
	}

	var reason string
	if diff < 0 {
		reason = fmt.Sprintf("line amounts ($%.2f) are less than the invoice total ($%.2f) - missing $%.2f, likely a line was not extracted",
			lineSum, expected, -diff)
	} else {
		reason = fmt.Sprintf("line amounts ($%.2f) exceed the invoice total ($%.2f) by $%.2f - possible misread amount",
			lineSum, expected, diff)
	}

	return &TotalsValidation{
		Valid:         false,
		LineSum:       lineSum,
		ExpectedTotal: expected,
		Difference:    diff,
		Reason:        reason,
	}
}

func roundToCents(v float64) float64 {
	return math.Round(v*100) / 100
}
