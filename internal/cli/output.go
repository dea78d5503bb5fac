package cli

import (
	"fmt"
	"strings"

	"github.com/pactproof/backend/internal/domain/document"
)

// PrintHeader prints the application header
func PrintHeader(invoiceNumber, contractID string) {
	fmt.Printf("pactproof: reconciling %s against %s\n", invoiceNumber, contractID)
}

// PrintSummary prints the reconciliation result summary
func PrintSummary(result *document.ReconcileResult) {
	fmt.Println(strings.Repeat("-", 60))

	verdict := "PASS"
	if !result.Summary.Pass {
		verdict = "FAIL"
	}
	fmt.Printf("Summary: %s Findings=%d Major=%d Minor=%d\n",
		verdict,
		result.Summary.TotalCount,
		result.Summary.MajorCount,
		result.Summary.MinorCount)

	if len(result.Findings) > 0 {
		fmt.Println("\nFindings:")
		for _, finding := range result.Findings {
			fmt.Printf("  [%s] %s: %s\n", finding.Severity, finding.Type, finding.Details)
		}
	}
}
