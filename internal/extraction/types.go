// Package extraction turns raw uploaded documents into the canonical
// data model by calling an external agentic document extraction API.
//
// The engine treats extracted data as trusted input; this package only
// performs the network call and maps the provider's response shape into
// the canonical schema. A stub implementation returns canned documents
// for local development and tests.
package extraction

import (
	"context"

	"github.com/pactproof/backend/internal/domain/document"
)

// InvoiceExtraction is the result of extracting an invoice document.
type InvoiceExtraction struct {
	Invoice *document.Invoice         `json:"invoice"`
	Meta    []document.ExtractionMeta `json:"meta"`
	Parse   document.ParseResult      `json:"parse"`
}

// ContractExtraction is the result of extracting a contract document.
type ContractExtraction struct {
	Contract *document.Contract        `json:"contract"`
	Meta     []document.ExtractionMeta `json:"meta"`
	Parse    document.ParseResult      `json:"parse"`
}

// Extractor converts a document file into structured data.
type Extractor interface {
	// Parse reports page count and a markdown rendition of the document.
	Parse(ctx context.Context, filePath string) (document.ParseResult, error)

	// ExtractInvoice extracts a canonical Invoice plus field metadata.
	ExtractInvoice(ctx context.Context, filePath string) (*InvoiceExtraction, error)

	// ExtractContract extracts a canonical Contract plus field metadata.
	ExtractContract(ctx context.Context, filePath string) (*ContractExtraction, error)
}
