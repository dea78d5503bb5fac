package extraction

import (
	"context"
	"log/slog"

	"github.com/pactproof/backend/internal/domain/document"
)

// StubExtractor returns canned sample documents without any network
// call. Used in STUB mode for local development and as the fallback when
// the extraction API is unreachable.
type StubExtractor struct {
	logger *slog.Logger
}

// Compile-time check that StubExtractor implements Extractor
var _ Extractor = (*StubExtractor)(nil)

// NewStubExtractor creates a stub extractor.
func NewStubExtractor(logger *slog.Logger) *StubExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &StubExtractor{logger: logger}
}

// Parse returns a fixed single-page parse result.
func (s *StubExtractor) Parse(_ context.Context, filePath string) (document.ParseResult, error) {
	s.logger.Info("stub parse", "file", filePath)
	return document.ParseResult{
		Pages:    1,
		Markdown: "# Document Content\nMocked markdown from document.",
	}, nil
}

// ExtractInvoice returns the sample invoice with stub field locations.
func (s *StubExtractor) ExtractInvoice(_ context.Context, filePath string) (*InvoiceExtraction, error) {
	s.logger.Info("stub invoice extraction", "file", filePath)
	return &InvoiceExtraction{
		Invoice: &document.Invoice{
			ClientName:    "Sample Client Inc",
			ClientAddress: "123 Main St",
			SellerName:    "Sample Vendor LLC",
			SellerAddress: "456 Oak Ave",
			InvoiceNumber: "INV-001",
			InvoiceDate:   "01/15/2025",
			DueDate:       "02/15/2025",
			Items: []document.InvoiceLine{
				{
					Description: "Consulting services - Q1 2025",
					Quantity:    40.0,
					UnitPrice:   150.0,
					TotalPrice:  6000.0,
				},
			},
			Subtotal: document.Subtotal{Tax: 600.0, Total: 6600.0},
			Currency: "USD",
			NetTerms: "Net 30",
		},
		Meta:  stubInvoiceMeta(),
		Parse: document.ParseResult{Pages: 1},
	}, nil
}

// ExtractContract returns the sample contract with stub field locations.
func (s *StubExtractor) ExtractContract(_ context.Context, filePath string) (*ContractExtraction, error) {
	s.logger.Info("stub contract extraction", "file", filePath)
	return &ContractExtraction{
		Contract: &document.Contract{
			VendorName:         "Sample Vendor LLC",
			ClientName:         "Sample Client Inc",
			ContractID:         "SOW-001",
			Currency:           "USD",
			NetTerms:           "Net 30",
			DefaultTaxRate:     0.10,
			AllowedVariancePct: 2.0,
			LineItems: []document.ContractLine{
				{
					Description: "Consulting services - Q1 2025",
					UnitPrice:   150.0,
					MaxQuantity: 50.0,
				},
			},
		},
		Meta:  stubContractMeta(),
		Parse: document.ParseResult{Pages: 1},
	}, nil
}

func stubInvoiceMeta() []document.ExtractionMeta {
	return []document.ExtractionMeta{
		{FieldPath: "client_name", Page: 0, Boxes: []document.Box{{Page: 0, Left: 0.05, Top: 0.05, Right: 0.35, Bottom: 0.10}}},
		{FieldPath: "invoice_number", Page: 0, Boxes: []document.Box{{Page: 0, Left: 0.65, Top: 0.05, Right: 0.95, Bottom: 0.10}}},
		{FieldPath: "items[0].description", Page: 0, Boxes: []document.Box{{Page: 0, Left: 0.05, Top: 0.30, Right: 0.70, Bottom: 0.38}}},
		{FieldPath: "items[0].quantity", Page: 0, Boxes: []document.Box{{Page: 0, Left: 0.70, Top: 0.30, Right: 0.80, Bottom: 0.38}}},
		{FieldPath: "items[0].unit_price", Page: 0, Boxes: []document.Box{{Page: 0, Left: 0.80, Top: 0.30, Right: 0.90, Bottom: 0.38}}},
		{FieldPath: "subtotal.total", Page: 0, Boxes: []document.Box{{Page: 0, Left: 0.75, Top: 0.85, Right: 0.95, Bottom: 0.92}}},
	}
}

func stubContractMeta() []document.ExtractionMeta {
	return []document.ExtractionMeta{
		{FieldPath: "vendor_name", Page: 0, Boxes: []document.Box{{Page: 0, Left: 0.05, Top: 0.05, Right: 0.35, Bottom: 0.10}}},
		{FieldPath: "line_items[0].description", Page: 0, Boxes: []document.Box{{Page: 0, Left: 0.05, Top: 0.25, Right: 0.70, Bottom: 0.33}}},
		{FieldPath: "line_items[0].unit_price", Page: 0, Boxes: []document.Box{{Page: 0, Left: 0.80, Top: 0.25, Right: 0.95, Bottom: 0.33}}},
	}
}
