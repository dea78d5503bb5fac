package note

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// ExportPDF renders a drafted note as a PDF document and returns the
// raw bytes. The note text is laid out line by line in a monospace
// font under a fixed report title.
func ExportPDF(noteText string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(19, 19, 19)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "COMPLIANCE INVOICE RECONCILIATION REPORT", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Courier", "", 9)
	for _, line := range strings.Split(noteText, "\n") {
		if strings.TrimSpace(line) == "" {
			pdf.Ln(3)
			continue
		}
		pdf.MultiCell(0, 4.5, line, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
