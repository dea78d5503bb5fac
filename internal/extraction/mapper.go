package extraction

import (
	"github.com/pactproof/backend/internal/domain/document"
)

// unwrapValues flattens the provider's value-wrapped fields: each
// extracted field may arrive either as a bare value or as an object
// {"value": ..., "confidence": ...}.
func unwrapValues(extracted map[string]any) map[string]any {
	cleaned := make(map[string]any, len(extracted))
	for key, value := range extracted {
		if wrapped, ok := value.(map[string]any); ok {
			if inner, ok := wrapped["value"]; ok {
				cleaned[key] = inner
				continue
			}
		}
		cleaned[key] = value
	}
	return cleaned
}

// mapInvoicePayload maps the provider's invoice response shape into the
// canonical Invoice. Provider field names (issue_date, qty, net_price,
// gross_worth, vat_value) differ from the canonical ones, and absent
// numerics come through as zero values.
func mapInvoicePayload(data map[string]any) *document.Invoice {
	inv := &document.Invoice{
		InvoiceNumber: asString(data["invoice_number"]),
		InvoiceDate:   asString(data["issue_date"]),
		SellerName:    asString(data["seller_name"]),
		SellerAddress: asString(data["seller_address"]),
		ClientName:    asString(data["client_name"]),
		ClientAddress: asString(data["client_address"]),
		Currency:      document.DefaultCurrency,
		NetTerms:      document.DefaultNetTerms,
		Items:         []document.InvoiceLine{},
	}

	if items, ok := data["items"].([]any); ok {
		for _, raw := range items {
			item, ok := raw.(map[string]any)
			if !ok || len(item) == 0 {
				continue
			}
			inv.Items = append(inv.Items, document.InvoiceLine{
				Description: asString(item["description"]),
				Quantity:    asFloat(item["qty"]),
				UnitPrice:   asFloat(item["net_price"]),
				TotalPrice:  asFloat(item["gross_worth"]),
			})
		}
	}

	if summary, ok := data["summary"].(map[string]any); ok {
		inv.Subtotal = document.Subtotal{
			Tax:   asFloat(summary["vat_value"]),
			Total: asFloat(summary["gross_worth"]),
		}
	}

	return inv
}

// mapContractPayload maps the provider's contract response shape into
// the canonical Contract and applies documented defaults.
func mapContractPayload(data map[string]any) *document.Contract {
	contract := &document.Contract{
		VendorName: asString(data["vendor_name"]),
		ClientName: asString(data["client_name"]),
		ContractID: asString(data["contract_id"]),
		Currency:   asString(data["currency"]),
		NetTerms:   asString(data["net_terms"]),
		LineItems:  []document.ContractLine{},
	}
	contract.EarlyPaymentDiscount = asFloat(data["early_payment_discount"])
	contract.DefaultTaxRate = asFloat(data["default_tax_rate"])
	contract.AllowedVariancePct = asFloat(data["allowed_variance_pct"])

	if items, ok := data["line_items"].([]any); ok {
		for _, raw := range items {
			item, ok := raw.(map[string]any)
			if !ok || len(item) == 0 {
				continue
			}
			contract.LineItems = append(contract.LineItems, document.ContractLine{
				Description: asString(item["description"]),
				SKU:         asString(item["sku"]),
				UnitPrice:   asFloat(item["unit_price"]),
				MaxQuantity: asFloat(item["max_quantity"]),
				DiscountPct: asFloat(item["discount_pct"]),
				TaxRate:     asFloat(item["tax_rate"]),
			})
		}
	}

	contract.ApplyDefaults()
	return contract
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}
