package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/pactproof/backend/internal/domain/document"
)

// fields_schema payloads sent to the extraction API. The provider
// returns whatever shape these describe; the mapper converts it into
// the canonical model.
const (
	invoiceFieldsSchema = `{
		"type": "object",
		"properties": {
			"invoice_number": {"type": "string", "description": "Invoice number"},
			"issue_date": {"type": "string", "description": "Invoice date"},
			"seller_name": {"type": "string", "description": "Vendor/Seller name"},
			"seller_address": {"type": "string", "description": "Seller address"},
			"client_name": {"type": "string", "description": "Client/Buyer name"},
			"client_address": {"type": "string", "description": "Client address"},
			"items": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"description": {"type": "string", "description": "Item description"},
						"qty": {"type": "number", "description": "Quantity"},
						"net_price": {"type": "number", "description": "Unit price (before tax)"},
						"gross_worth": {"type": "number", "description": "Line total (after tax)"}
					}
				},
				"description": "Line items"
			},
			"summary": {
				"type": "object",
				"properties": {
					"vat_value": {"type": "number", "description": "Total tax amount"},
					"gross_worth": {"type": "number", "description": "Grand total (after tax)"}
				},
				"description": "Summary totals"
			}
		}
	}`

	contractFieldsSchema = `{
		"type": "object",
		"properties": {
			"vendor_name": {"type": "string", "description": "Vendor name"},
			"client_name": {"type": "string", "description": "Client name"},
			"contract_id": {"type": "string", "description": "Contract or SOW identifier"},
			"currency": {"type": "string", "description": "Currency code"},
			"net_terms": {"type": "string", "description": "Payment terms, e.g. Net 30"},
			"line_items": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"description": {"type": "string", "description": "Line description"},
						"sku": {"type": "string", "description": "SKU"},
						"unit_price": {"type": "number", "description": "Contracted unit price"},
						"max_quantity": {"type": "number", "description": "Quantity ceiling"},
						"discount_pct": {"type": "number", "description": "Discount percentage"}
					}
				},
				"description": "Contracted line items"
			}
		}
	}`
)

// ADEClient calls the agentic document extraction API over HTTP. When a
// call fails for any reason it falls back to the stub extractor so the
// rest of the pipeline keeps working during demos and outages.
type ADEClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	fallback   *StubExtractor
}

// Compile-time check that ADEClient implements Extractor
var _ Extractor = (*ADEClient)(nil)

// NewADEClient creates an extraction API client.
func NewADEClient(apiKey, baseURL string, logger *slog.Logger) *ADEClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &ADEClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger:   logger,
		fallback: NewStubExtractor(logger),
	}
}

// Parse reports page count and markdown for the document. The provider
// has no standalone parse call, so this runs a schemaless extraction and
// returns its parse block.
func (c *ADEClient) Parse(ctx context.Context, filePath string) (document.ParseResult, error) {
	extracted, err := c.callExtract(ctx, filePath, "{}")
	if err != nil {
		c.logger.Error("parse failed, using fallback", "file", filePath, "error", err)
		return c.fallback.Parse(ctx, filePath)
	}

	markdown, _ := json.Marshal(extracted)
	return document.ParseResult{Pages: 1, Markdown: string(markdown)}, nil
}

// ExtractInvoice extracts a canonical Invoice from the document.
func (c *ADEClient) ExtractInvoice(ctx context.Context, filePath string) (*InvoiceExtraction, error) {
	extracted, err := c.callExtract(ctx, filePath, invoiceFieldsSchema)
	if err != nil {
		c.logger.Error("invoice extraction failed, using fallback", "file", filePath, "error", err)
		return c.fallback.ExtractInvoice(ctx, filePath)
	}

	return &InvoiceExtraction{
		Invoice: mapInvoicePayload(extracted),
		Meta:    []document.ExtractionMeta{},
		Parse:   document.ParseResult{Pages: 1},
	}, nil
}

// ExtractContract extracts a canonical Contract from the document.
func (c *ADEClient) ExtractContract(ctx context.Context, filePath string) (*ContractExtraction, error) {
	extracted, err := c.callExtract(ctx, filePath, contractFieldsSchema)
	if err != nil {
		c.logger.Error("contract extraction failed, using fallback", "file", filePath, "error", err)
		return c.fallback.ExtractContract(ctx, filePath)
	}

	return &ContractExtraction{
		Contract: mapContractPayload(extracted),
		Meta:     []document.ExtractionMeta{},
		Parse:    document.ParseResult{Pages: 1},
	}, nil
}

// callExtract uploads the file with the given fields schema and returns
// the unwrapped extracted_schema payload.
func (c *ADEClient) callExtract(ctx context.Context, filePath, fieldsSchema string) (map[string]any, error) {
	fileContent, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("pdf", "document.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(fileContent); err != nil {
		return nil, fmt.Errorf("failed to write form file: %w", err)
	}
	if err := writer.WriteField("fields_schema", fieldsSchema); err != nil {
		return nil, fmt.Errorf("failed to write fields schema: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	endpoint := c.baseURL + "/agentic-document-analysis"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extraction API returned status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Data struct {
			ExtractedSchema map[string]any `json:"extracted_schema"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return unwrapValues(response.Data.ExtractedSchema), nil
}

// NewExtractor returns the extractor for the configured mode: "STUB"
// for canned data, anything else for the real API client.
func NewExtractor(mode, apiKey, baseURL string, logger *slog.Logger) Extractor {
	if mode == "STUB" {
		return NewStubExtractor(logger)
	}
	return NewADEClient(apiKey, baseURL, logger)
}
