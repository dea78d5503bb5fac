package note

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pactproof/backend/internal/domain/document"
)

func testInvoice() *document.Invoice {
	return &document.Invoice{
		ClientName:    "Clark-Foster",
		SellerName:    "Nguyen-Roach",
		InvoiceNumber: "84652373",
		InvoiceDate:   "02/23/2021",
		Currency:      "USD",
		NetTerms:      "Net 30",
	}
}

func testContract() *document.Contract {
	return &document.Contract{
		VendorName: "Nguyen-Roach",
		ClientName: "Clark-Foster",
		ContractID: "SOW-84652373",
	}
}

func TestDrafter_PassingResult(t *testing.T) {
	drafter := NewDrafter()
	result := &document.ReconcileResult{
		Summary:  document.Summary{Pass: true},
		Findings: []document.Finding{},
	}

	text, err := drafter.Draft(testInvoice(), testContract(), result)
	require.NoError(t, err)

	assert.Contains(t, text, "Invoice** 84652373")
	assert.Contains(t, text, "Contract** SOW-84652373")
	assert.Contains(t, text, "**PASS**")
	assert.Contains(t, text, "Approve for payment.")
	assert.NotContains(t, text, "## Major Findings")
	assert.NotContains(t, text, "## Minor Findings")
}

func TestDrafter_FailingResult(t *testing.T) {
	drafter := NewDrafter()
	result := &document.ReconcileResult{
		Summary: document.Summary{Pass: false, MajorCount: 1, MinorCount: 1, TotalCount: 2},
		Findings: []document.Finding{
			{
				Type:     document.FindingCurrencyMismatch,
				Severity: document.SeverityMajor,
				Details:  "Currency mismatch: Invoice EUR vs Contract USD",
			},
			{
				Type:     document.FindingTermsMismatch,
				Severity: document.SeverityMinor,
				Details:  "Net terms mismatch: Invoice Net 60 vs Contract Net 30",
			},
		},
	}

	text, err := drafter.Draft(testInvoice(), testContract(), result)
	require.NoError(t, err)

	assert.Contains(t, text, "**FAIL**")
	assert.Contains(t, text, "## Major Findings")
	assert.Contains(t, text, "[CURRENCY_MISMATCH] Currency mismatch: Invoice EUR vs Contract USD")
	assert.Contains(t, text, "## Minor Findings")
	assert.Contains(t, text, "[TERMS_MISMATCH]")
	assert.Contains(t, text, "Hold payment")
}

func TestDrafter_Deterministic(t *testing.T) {
	drafter := NewDrafter()
	result := &document.ReconcileResult{
		Summary: document.Summary{Pass: false, MajorCount: 1, TotalCount: 1},
		Findings: []document.Finding{
			{Type: document.FindingUnknownLine, Severity: document.SeverityMajor, Details: "No matching contract line for invoice item: widget..."},
		},
	}

	first, err := drafter.Draft(testInvoice(), testContract(), result)
	require.NoError(t, err)
	second, err := drafter.Draft(testInvoice(), testContract(), result)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExportPDF(t *testing.T) {
	text := "# Compliance Reconciliation Note\n\nAll checks passed.\n"

	data, err := ExportPDF(text)
	require.NoError(t, err)

	assert.NotEmpty(t, data)
	// PDF files start with the %PDF magic bytes.
	assert.Equal(t, "%PDF", string(data[:4]))
}
