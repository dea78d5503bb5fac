package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pactproof/backend/internal/domain/document"
)

func TestValidateTotals(t *testing.T) {
	t.Run("valid when lines sum to total", func(t *testing.T) {
		inv := &document.Invoice{
			Items: []document.InvoiceLine{
				{Description: "Consulting", TotalPrice: 1000.00},
				{Description: "Support", TotalPrice: 250.00},
			},
			Subtotal: document.Subtotal{Total: 1250.00},
		}

		result := ValidateTotals(inv)

		assert.True(t, result.Valid)
		assert.InDelta(t, 1250.00, result.LineSum, 1e-9)
		assert.Empty(t, result.Reason)
	})

	t.Run("accounts for tax and discount", func(t *testing.T) {
		inv := &document.Invoice{
			Items: []document.InvoiceLine{
				{Description: "Consulting", TotalPrice: 1000.00},
			},
			Subtotal: document.Subtotal{Tax: 90.90, Discount: 50.00, Total: 1040.90},
		}

		// 1040.90 - 90.90 + 50.00 = 1000.00
		result := ValidateTotals(inv)

		assert.True(t, result.Valid)
	})

	t.Run("tolerates rounding within two cents", func(t *testing.T) {
		inv := &document.Invoice{
			Items: []document.InvoiceLine{
				{Description: "Consulting", TotalPrice: 999.99},
			},
			Subtotal: document.Subtotal{Total: 1000.00},
		}

		result := ValidateTotals(inv)

		assert.True(t, result.Valid)
	})

	t.Run("fails when a line is missing", func(t *testing.T) {
		inv := &document.Invoice{
			Items: []document.InvoiceLine{
				{Description: "Consulting", TotalPrice: 1000.00},
			},
			Subtotal: document.Subtotal{Total: 1250.00},
		}

		result := ValidateTotals(inv)

		assert.False(t, result.Valid)
		assert.InDelta(t, -250.00, result.Difference, 1e-9)
		assert.Contains(t, result.Reason, "likely a line was not extracted")
	})

	t.Run("fails when line amounts exceed total", func(t *testing.T) {
		inv := &document.Invoice{
			Items: []document.InvoiceLine{
				{Description: "Consulting", TotalPrice: 1300.00},
			},
			Subtotal: document.Subtotal{Total: 1250.00},
		}

		result := ValidateTotals(inv)

		assert.False(t, result.Valid)
		assert.InDelta(t, 50.00, result.Difference, 1e-9)
		assert.Contains(t, result.Reason, "possible misread amount")
	})

	t.Run("empty invoice with zero total is valid", func(t *testing.T) {
		result := ValidateTotals(&document.Invoice{})

		assert.True(t, result.Valid)
	})
}
