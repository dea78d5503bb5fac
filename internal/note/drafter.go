// Package note renders a human-readable compliance note from a
// reconciliation result, and exports it as PDF.
//
// Drafting is deterministic: the note is a pure templating of the two
// documents and the findings, so the same inputs always produce the
// same text.
package note

import (
	"strings"
	"text/template"

	"github.com/pactproof/backend/internal/domain/document"
)

const noteTemplate = `# Compliance Reconciliation Note

**Invoice** {{.Invoice.InvoiceNumber}} from {{.Invoice.SellerName}} to {{.Invoice.ClientName}}, dated {{.Invoice.InvoiceDate}}.
**Contract** {{.Contract.ContractID}} between {{.Contract.VendorName}} and {{.Contract.ClientName}}.

## Summary

- Result: **{{if .Result.Summary.Pass}}PASS{{else}}FAIL{{end}}**
- Major findings: {{.Result.Summary.MajorCount}}
- Minor findings: {{.Result.Summary.MinorCount}}
- Total findings: {{.Result.Summary.TotalCount}}
{{if .MajorFindings}}
## Major Findings

{{range .MajorFindings}}- [{{.Type}}] {{.Details}}
{{end}}{{end}}{{if .MinorFindings}}
## Minor Findings

{{range .MinorFindings}}- [{{.Type}}] {{.Details}}
{{end}}{{end}}
## Recommendation

{{.Recommendation}}
`

// Drafter renders reconciliation notes.
type Drafter struct {
	tmpl *template.Template
}

// NewDrafter creates a note drafter.
func NewDrafter() *Drafter {
	return &Drafter{
		tmpl: template.Must(template.New("note").Parse(noteTemplate)),
	}
}

type noteContext struct {
	Invoice        *document.Invoice
	Contract       *document.Contract
	Result         *document.ReconcileResult
	MajorFindings  []document.Finding
	MinorFindings  []document.Finding
	Recommendation string
}

// Draft renders a markdown note for the given reconciliation.
func (d *Drafter) Draft(inv *document.Invoice, contract *document.Contract, result *document.ReconcileResult) (string, error) {
	ctx := noteContext{
		Invoice:  inv,
		Contract: contract,
		Result:   result,
	}
	for _, f := range result.Findings {
		switch f.Severity {
		case document.SeverityMajor:
			ctx.MajorFindings = append(ctx.MajorFindings, f)
		case document.SeverityMinor:
			ctx.MinorFindings = append(ctx.MinorFindings, f)
		}
	}
	ctx.Recommendation = recommendation(result.Summary)

	var sb strings.Builder
	if err := d.tmpl.Execute(&sb, ctx); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func recommendation(summary document.Summary) string {
	switch {
	case summary.Pass && summary.MinorCount == 0:
		return "The invoice matches the contract. Approve for payment."
	case summary.Pass:
		return "The invoice matches the contract on all blocking checks. " +
			"Approve for payment; the advisory findings above should be raised with the vendor."
	default:
		return "The invoice does not conform to the contract. " +
			"Hold payment until the major findings above are resolved with the vendor."
	}
}
