// Package console assembles the operator session: one filter manager, the
// full set of report fetchers behind one orchestrator, the pharmacy
// directory and the invoice-gap workflow.
package console

import (
	"context"
	"sync"

	"rxconsole/internal/domain/filter"
	"rxconsole/internal/domain/gaps"
	"rxconsole/internal/domain/pharmacy"
	"rxconsole/internal/domain/reports"
)

// Upstream is the full reporting API boundary the console consumes.
type Upstream interface {
	gaps.Upstream
	pharmacy.Loader

	ListTransactions(ctx context.Context, c filter.Criteria) (*reports.Envelope[reports.Transaction], error)
	GetPurchaseReport(ctx context.Context, c filter.Criteria) (*reports.PurchaseReport, error)
	GetPharmacySalesReport(ctx context.Context, c filter.Criteria) ([]reports.PharmacySalesRow, error)
	GetProductSalesReport(ctx context.Context, c filter.Criteria) ([]reports.ProductSalesRow, error)
	GetPharmacyRedemptionReport(ctx context.Context, c filter.Criteria) ([]reports.PharmacyRedemptionRow, error)
	GetRedemptionDetailsReport(ctx context.Context, c filter.Criteria) (*reports.Envelope[reports.RedemptionDetail], error)
	GetProductRedemptionReport(ctx context.Context, c filter.Criteria) ([]reports.ProductRedemptionRow, error)
	GetPatientProductRedemptionReport(ctx context.Context, c filter.Criteria) (*reports.Envelope[reports.PatientProductRedemptionRow], error)
}

// Console is the assembled operator session.
type Console struct {
	Filters   *filter.Manager
	Orch      *reports.Orchestrator
	Directory *pharmacy.Directory
	Gaps      *gaps.Service

	Transactions        *reports.Fetcher[*reports.Envelope[reports.Transaction]]
	Purchases           *reports.Fetcher[*reports.PurchaseReport]
	PharmacySales       *reports.Fetcher[[]reports.PharmacySalesRow]
	ProductSales        *reports.Fetcher[[]reports.ProductSalesRow]
	PharmacyRedemptions *reports.Fetcher[[]reports.PharmacyRedemptionRow]
	RedemptionDetails   *reports.Fetcher[*reports.Envelope[reports.RedemptionDetail]]
	ProductRedemptions  *reports.Fetcher[[]reports.ProductRedemptionRow]
	PatientRedemptions  *reports.Fetcher[*reports.Envelope[reports.PatientProductRedemptionRow]]
	InvoiceGaps         *reports.Fetcher[[]gaps.InvoiceGap]
	GapStatistics       *reports.Fetcher[*gaps.Statistics]

	// Resolution-status filter for the gap list. Server-side (is_resolved),
	// separate from the shared Criteria which only carries cross-report filters.
	resMu         sync.Mutex
	gapResolution *bool
}

// New assembles a console session on the given lifecycle context.
func New(ctx context.Context, client Upstream, perPage int) *Console {
	filters := filter.NewManager(perPage)
	orch := reports.NewOrchestrator(ctx, filters)
	gapSvc := gaps.NewService(client)

	c := &Console{
		Filters:   filters,
		Orch:      orch,
		Directory: pharmacy.NewDirectory(client),
		Gaps:      gapSvc,
	}

	c.Transactions = reports.NewFetcher(reports.KindTransactions, client.ListTransactions)
	c.Purchases = reports.NewFetcher(reports.KindPurchases, client.GetPurchaseReport)
	c.PharmacySales = reports.NewFetcher(reports.KindPharmacySales, client.GetPharmacySalesReport)
	c.ProductSales = reports.NewFetcher(reports.KindProductSales, client.GetProductSalesReport)
	c.PharmacyRedemptions = reports.NewFetcher(reports.KindPharmacyRedemptions, client.GetPharmacyRedemptionReport)
	c.RedemptionDetails = reports.NewFetcher(reports.KindRedemptionDetails, client.GetRedemptionDetailsReport)
	c.ProductRedemptions = reports.NewFetcher(reports.KindProductRedemptions, client.GetProductRedemptionReport)
	c.PatientRedemptions = reports.NewFetcher(reports.KindPatientRedemptions, client.GetPatientProductRedemptionReport)

	c.InvoiceGaps = reports.NewFetcher(reports.KindInvoiceGaps,
		func(ctx context.Context, cr filter.Criteria) ([]gaps.InvoiceGap, error) {
			return gapSvc.List(ctx, cr, c.GapResolution())
		})
	c.GapStatistics = reports.NewFetcher(reports.KindGapStatistics,
		func(ctx context.Context, _ filter.Criteria) (*gaps.Statistics, error) {
			return gapSvc.Statistics(ctx)
		})

	for _, s := range []reports.Source{
		c.Transactions, c.Purchases, c.PharmacySales, c.ProductSales,
		c.PharmacyRedemptions, c.RedemptionDetails, c.ProductRedemptions,
		c.PatientRedemptions, c.InvoiceGaps, c.GapStatistics,
	} {
		orch.Register(s)
	}

	gapSvc.SetRefresh(func(context.Context) {
		orch.RefreshKinds(reports.KindInvoiceGaps, reports.KindGapStatistics)
	})

	return c
}

// GapResolution returns the current resolution-status filter (nil = all).
func (c *Console) GapResolution() *bool {
	c.resMu.Lock()
	defer c.resMu.Unlock()
	if c.gapResolution == nil {
		return nil
	}
	v := *c.gapResolution
	return &v
}

// SetGapResolution sets the resolution-status filter and re-fetches the gap
// list; the other reports are unaffected.
func (c *Console) SetGapResolution(v *bool) {
	c.resMu.Lock()
	if v == nil {
		c.gapResolution = nil
	} else {
		val := *v
		c.gapResolution = &val
	}
	c.resMu.Unlock()

	c.Orch.RefreshKinds(reports.KindInvoiceGaps)
}
