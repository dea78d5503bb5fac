package document

// Severity classifies whether a finding blocks approval (MAJOR) or is
// advisory (MINOR). No other severities exist.
type Severity string

const (
	SeverityMajor Severity = "MAJOR"
	SeverityMinor Severity = "MINOR"
)

// FindingType identifies the check that produced a finding.
type FindingType string

const (
	FindingUnitPriceVariance FindingType = "UNIT_PRICE_VARIANCE"
	FindingQuantityOverflow  FindingType = "QUANTITY_OVERFLOW"
	FindingUnknownLine       FindingType = "UNKNOWN_LINE"
	FindingCurrencyMismatch  FindingType = "CURRENCY_MISMATCH"
	FindingTermsMismatch     FindingType = "TERMS_MISMATCH"
	FindingTaxMismatch       FindingType = "TAX_MISMATCH"
)

// Box is a normalized bounding rectangle on a document page, passed
// through from extraction metadata for evidentiary display only.
type Box struct {
	Page   int     `json:"page"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// ExtractionMeta locates one extracted field on the source document.
type ExtractionMeta struct {
	FieldPath string `json:"field_path"`
	Boxes     []Box  `json:"boxes"`
	Page      int    `json:"page"`
}

// ParseResult summarizes a parsed source document.
type ParseResult struct {
	Pages    int    `json:"pages"`
	Markdown string `json:"markdown,omitempty"`
}

// Finding is a single detected discrepancy between an invoice and a
// contract. Line indices are pointers so that index 0 survives
// serialization; they are nil where the check has no line context.
type Finding struct {
	Type            FindingType `json:"type"`
	Severity        Severity    `json:"severity"`
	Details         string      `json:"details"`
	InvoiceLineIdx  *int        `json:"invoice_line_idx,omitempty"`
	ContractLineIdx *int        `json:"contract_line_idx,omitempty"`
	EvidencePage    *int        `json:"evidence_page,omitempty"`
	EvidenceBoxes   []Box       `json:"evidence_boxes,omitempty"`
}

// Summary is the aggregate outcome of one reconciliation.
// Pass is true iff there are zero MAJOR findings.
type Summary struct {
	Pass       bool `json:"pass"`
	MajorCount int  `json:"major_count"`
	MinorCount int  `json:"minor_count"`
	TotalCount int  `json:"total_count"`
}

// ReconcileResult is the ordered finding sequence plus its summary.
type ReconcileResult struct {
	Summary  Summary   `json:"summary"`
	Findings []Finding `json:"findings"`
}
