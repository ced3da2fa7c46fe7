package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"rxconsole/internal/domain/filter"
)

// Transaction is one sale transaction row as reported upstream.
type Transaction struct {
	ID            int64            `json:"id"`
	PharmacyID    int64            `json:"pharmacy_id"`
	PharmacyName  string           `json:"pharmacy_name"`
	InvoiceNumber string           `json:"invoice_number"`
	EntryType     filter.EntryType `json:"entry_type"`
	Amount        decimal.Decimal  `json:"amount"`
	SoldAt        time.Time        `json:"sold_at"`
}

// PurchaseSummary aggregates the purchase report header figures.
type PurchaseSummary struct {
	TotalTransactions  int             `json:"total_transactions"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	AverageTransaction decimal.Decimal `json:"average_transaction"`
	ManualEntries      int             `json:"manual_entries"`
	AutomaticEntries   int             `json:"automatic_entries"`
}

// PurchaseReport combines the summary with a server-paginated transaction page.
type PurchaseReport struct {
	Summary      PurchaseSummary       `json:"summary"`
	Transactions Envelope[Transaction] `json:"transactions"`
}

// PharmacySalesRow is one pharmacy's sales aggregate. Returned as a full set.
type PharmacySalesRow struct {
	PharmacyID       int64           `json:"pharmacy_id"`
	CommercialName   string          `json:"commercial_name"`
	LegalName        string          `json:"legal_name"`
	TransactionCount int             `json:"transaction_count"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
}

// ProductSalesRow is one product's sales aggregate. Returned as a full set.
type ProductSalesRow struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Barcode     string          `json:"barcode"`
	UnitsSold   int             `json:"units_sold"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// PharmacyRedemptionRow is one pharmacy's redemption aggregate. Full set.
type PharmacyRedemptionRow struct {
	PharmacyID      int64           `json:"pharmacy_id"`
	CommercialName  string          `json:"commercial_name"`
	LegalName       string          `json:"legal_name"`
	RedemptionCount int             `json:"redemption_count"`
	TotalRedeemed   decimal.Decimal `json:"total_redeemed"`
}

// RedemptionDetail is one redemption event. Server-paginated.
type RedemptionDetail struct {
	ID            int64           `json:"id"`
	PharmacyName  string          `json:"pharmacy_name"`
	PatientRef    string          `json:"patient_ref"`
	ProductName   string          `json:"product_name"`
	InvoiceNumber string          `json:"invoice_number"`
	Amount        decimal.Decimal `json:"amount"`
	RedeemedAt    time.Time       `json:"redeemed_at"`
}

// ProductRedemptionRow is one product's redemption aggregate. Full set.
type ProductRedemptionRow struct {
	ProductID       int64           `json:"product_id"`
	ProductName     string          `json:"product_name"`
	RedemptionCount int             `json:"redemption_count"`
	TotalRedeemed   decimal.Decimal `json:"total_redeemed"`
}

// PatientProductRedemptionRow is a patient-by-product redemption aggregate.
// Server-paginated.
type PatientProductRedemptionRow struct {
	PatientID       int64     `json:"patient_id"`
	PatientRef      string    `json:"patient_ref"`
	ProductName     string    `json:"product_name"`
	RedemptionCount int       `json:"redemption_count"`
	LastRedeemedAt  time.Time `json:"last_redeemed_at"`
}

// SearchFields returns the strings free-text search matches against for each
// client-refined row type.

func (r PharmacySalesRow) SearchFields() []string {
	return []string{r.CommercialName, r.LegalName}
}

func (r ProductSalesRow) SearchFields() []string {
	return []string{r.ProductName, r.Barcode}
}

func (r PharmacyRedemptionRow) SearchFields() []string {
	return []string{r.CommercialName, r.LegalName}
}

func (r ProductRedemptionRow) SearchFields() []string {
	return []string{r.ProductName}
}
