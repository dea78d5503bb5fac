// Package document defines the canonical data model shared by the
// extraction layer, the reconciliation engine, and the HTTP API.
//
// All types are plain value objects. The engine never mutates them: the
// lifecycle is build (extraction or JSON decode), reconcile, discard.
//
// Several numeric fields are optional in the source documents. They are
// modelled as plain float64 where the zero value means "absent": a
// present-but-zero unit price or max quantity behaves exactly like a
// missing one. Downstream checks depend on this quirk, so it is kept
// deliberately rather than modelled with pointers.
package document

// Default values substituted for absent optional fields before comparison.
const (
	DefaultCurrency           = "USD"
	DefaultNetTerms           = "Net 30"
	DefaultTaxRate            = 0.0909
	DefaultAllowedVariancePct = 2.0
)

// InvoiceLine is one billed row of an invoice.
type InvoiceLine struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price,omitempty"`
	TotalPrice  float64 `json:"total_price"`
	Tax         float64 `json:"tax,omitempty"`
	SKU         string  `json:"sku,omitempty"`
}

// Subtotal is the totals block at the bottom of an invoice.
type Subtotal struct {
	Tax      float64 `json:"tax,omitempty"`
	Discount float64 `json:"discount,omitempty"`
	Total    float64 `json:"total"`
}

// Invoice is a vendor invoice as extracted from a document.
type Invoice struct {
	ClientName    string        `json:"client_name"`
	ClientAddress string        `json:"client_address,omitempty"`
	SellerName    string        `json:"seller_name"`
	SellerAddress string        `json:"seller_address,omitempty"`
	InvoiceNumber string        `json:"invoice_number"`
	InvoiceDate   string        `json:"invoice_date"`
	DueDate       string        `json:"due_date,omitempty"`
	Items         []InvoiceLine `json:"items"`
	Subtotal      Subtotal      `json:"subtotal"`
	Currency      string        `json:"currency"`
	NetTerms      string        `json:"net_terms"`
	TaxRate       float64       `json:"tax_rate,omitempty"`
}

// CurrencyOrDefault returns the invoice currency, substituting the
// default when the field is absent.
func (i *Invoice) CurrencyOrDefault() string {
	if i.Currency == "" {
		return DefaultCurrency
	}
	return i.Currency
}

// NetTermsOrDefault returns the invoice net terms, substituting the
// default when the field is absent.
func (i *Invoice) NetTermsOrDefault() string {
	if i.NetTerms == "" {
		return DefaultNetTerms
	}
	return i.NetTerms
}

// ContractLine is one contracted row of a statement of work.
type ContractLine struct {
	Description string  `json:"description"`
	SKU         string  `json:"sku,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
	MaxQuantity float64 `json:"max_quantity,omitempty"`
	DiscountPct float64 `json:"discount_pct,omitempty"`
	TaxRate     float64 `json:"tax_rate,omitempty"`
}

// Contract is a signed statement of work.
type Contract struct {
	VendorName           string         `json:"vendor_name"`
	ClientName           string         `json:"client_name"`
	ContractID           string         `json:"contract_id"`
	Currency             string         `json:"currency"`
	NetTerms             string         `json:"net_terms"`
	EarlyPaymentDiscount float64        `json:"early_payment_discount,omitempty"`
	DefaultTaxRate       float64        `json:"default_tax_rate"`
	AllowedVariancePct   float64        `json:"allowed_variance_pct"`
	LineItems            []ContractLine `json:"line_items"`
}

// CurrencyOrDefault returns the contract currency, substituting the
// default when the field is absent.
func (c *Contract) CurrencyOrDefault() string {
	if c.Currency == "" {
		return DefaultCurrency
	}
	return c.Currency
}

// NetTermsOrDefault returns the contract net terms, substituting the
// default when the field is absent.
func (c *Contract) NetTermsOrDefault() string {
	if c.NetTerms == "" {
		return DefaultNetTerms
	}
	return c.NetTerms
}

// ApplyDefaults fills unset optional fields with their documented
// defaults. Called after decoding a contract uploaded as raw JSON, where
// no extraction schema supplies them.
func (c *Contract) ApplyDefaults() {
	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}
	if c.NetTerms == "" {
		c.NetTerms = DefaultNetTerms
	}
	if c.DefaultTaxRate == 0 {
		c.DefaultTaxRate = DefaultTaxRate
	}
	if c.AllowedVariancePct == 0 {
		c.AllowedVariancePct = DefaultAllowedVariancePct
	}
}
