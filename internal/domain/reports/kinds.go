// Package reports coordinates the console's report datasets: one fetcher per
// report kind, all sharing a single filter snapshot, each with independent
// loading state and pagination.
package reports

import "rxconsole/internal/core/apperror"

// Kind identifies one report dataset.
type Kind string

const (
	KindTransactions        Kind = "transactions"
	KindPurchases           Kind = "purchases"
	KindPharmacySales       Kind = "pharmacy_sales"
	KindProductSales        Kind = "product_sales"
	KindPharmacyRedemptions Kind = "pharmacy_redemptions"
	KindRedemptionDetails   Kind = "redemption_details"
	KindProductRedemptions  Kind = "product_redemptions"
	KindPatientRedemptions  Kind = "patient_product_redemptions"
	KindInvoiceGaps         Kind = "invoice_gaps"
	KindGapStatistics       Kind = "gap_statistics"
)

var allKinds = []Kind{
	KindTransactions,
	KindPurchases,
	KindPharmacySales,
	KindProductSales,
	KindPharmacyRedemptions,
	KindRedemptionDetails,
	KindProductRedemptions,
	KindPatientRedemptions,
	KindInvoiceGaps,
	KindGapStatistics,
}

// Kinds returns all report kinds in registration order.
func Kinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

// ParseKind validates a report kind string; unknown kinds fail closed.
func ParseKind(s string) (Kind, error) {
	for _, k := range allKinds {
		if Kind(s) == k {
			return k, nil
		}
	}
	return "", apperror.NewValidation("unknown report kind").WithDetail("kind", s)
}

// ClientPaginated reports whether the upstream endpoint for this kind returns
// the entire result set, leaving search and pagination to the refinement layer.
func (k Kind) ClientPaginated() bool {
	switch k {
	case KindPharmacySales, KindProductSales, KindPharmacyRedemptions,
		KindProductRedemptions, KindInvoiceGaps:
		return true
	}
	return false
}
