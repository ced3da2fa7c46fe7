package handlers

import (
	"github.com/gin-gonic/gin"

	"rxconsole/internal/core/apperror"
	"rxconsole/internal/domain/console"
	"rxconsole/internal/domain/reports"
	"rxconsole/internal/infrastructure/http/v1/dto"
)

// ReportsHandler serves report slices. Server-paginated kinds return their
// upstream envelope as-is; full-set kinds go through the client-side
// refinement layer (search + local pagination) before rendering.
type ReportsHandler struct {
	*BaseHandler
	console *console.Console
}

// NewReportsHandler creates a reports handler.
func NewReportsHandler(base *BaseHandler, con *console.Console) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, console: con}
}

// Overview returns every slice's status plus the shared filter state. The
// view polls this while fetches are outstanding; there is no join barrier,
// each panel updates as its own fetch completes.
func (h *ReportsHandler) Overview(c *gin.Context) {
	orch := h.console.Orch
	statuses := orch.Statuses()

	entries := make([]dto.ReportStatusEntry, 0, len(statuses))
	for _, kind := range orch.Registered() {
		entry := dto.ReportStatusEntry{
			Kind:    string(kind),
			Status:  string(statuses[kind]),
			Loading: statuses[kind] == reports.StatusLoading,
			Page:    orch.Page(kind),
		}
		if appErr := h.lastError(kind); appErr != nil {
			entry.Error = &dto.ErrorResponse{
				Code:    appErr.Code,
				Message: appErr.Message,
				Details: appErr.Details,
			}
		}
		entries = append(entries, entry)
	}

	h.OK(c, dto.OverviewResponse{
		AnyLoading: orch.AnyLoading(),
		Reports:    entries,
		Filters: dto.FilterStateResponse{
			Staged:    dto.FromCriteria(orch.Staged()),
			Committed: dto.FromCriteria(orch.Snapshot()),
		},
	})
}

// Get returns one report slice. Full-set kinds accept search/page/per_page
// query parameters for local refinement.
func (h *ReportsHandler) Get(c *gin.Context) {
	kind, err := reports.ParseKind(c.Param("kind"))
	if err != nil {
		h.Error(c, err)
		return
	}

	search := c.Query("search")
	page := h.ParseIntQuery(c, "page", 1)
	perPage := h.ParseIntQuery(c, "per_page", h.console.Orch.Snapshot().PerPage)
	orchPage := h.console.Orch.Page(kind)

	con := h.console
	switch kind {
	case reports.KindTransactions:
		h.OK(c, dto.FromSlice(kind, con.Transactions.Slice(), orchPage))
	case reports.KindPurchases:
		h.OK(c, dto.FromSlice(kind, con.Purchases.Slice(), orchPage))
	case reports.KindPharmacySales:
		s := con.PharmacySales.Slice()
		h.OK(c, dto.FromRefined(dto.FromSlice(kind, s, orchPage), search,
			reports.Refine(s.Data, search, page, perPage)))
	case reports.KindProductSales:
		s := con.ProductSales.Slice()
		h.OK(c, dto.FromRefined(dto.FromSlice(kind, s, orchPage), search,
			reports.Refine(s.Data, search, page, perPage)))
	case reports.KindPharmacyRedemptions:
		s := con.PharmacyRedemptions.Slice()
		h.OK(c, dto.FromRefined(dto.FromSlice(kind, s, orchPage), search,
			reports.Refine(s.Data, search, page, perPage)))
	case reports.KindRedemptionDetails:
		h.OK(c, dto.FromSlice(kind, con.RedemptionDetails.Slice(), orchPage))
	case reports.KindProductRedemptions:
		s := con.ProductRedemptions.Slice()
		h.OK(c, dto.FromRefined(dto.FromSlice(kind, s, orchPage), search,
			reports.Refine(s.Data, search, page, perPage)))
	case reports.KindPatientRedemptions:
		h.OK(c, dto.FromSlice(kind, con.PatientRedemptions.Slice(), orchPage))
	case reports.KindInvoiceGaps:
		s := con.InvoiceGaps.Slice()
		h.OK(c, dto.FromRefined(dto.FromSlice(kind, s, orchPage), search,
			reports.Refine(s.Data, search, page, perPage)))
	case reports.KindGapStatistics:
		h.OK(c, dto.FromSlice(kind, con.GapStatistics.Slice(), orchPage))
	}
}

// SetPage positions one server-paginated report on a page and re-fetches
// only that report; the other reports keep their own pagers.
func (h *ReportsHandler) SetPage(c *gin.Context) {
	kind, err := reports.ParseKind(c.Param("kind"))
	if err != nil {
		h.Error(c, err)
		return
	}

	var req dto.SetPageRequest
	if !h.BindJSON(c, &req) {
		return
	}

	snapshot, err := h.console.Orch.SetPage(kind, req.Page)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Accepted(c, dto.FromCriteria(snapshot))
}

func (h *ReportsHandler) lastError(kind reports.Kind) *apperror.AppError {
	con := h.console
	switch kind {
	case reports.KindTransactions:
		return con.Transactions.LastError()
	case reports.KindPurchases:
		return con.Purchases.LastError()
	case reports.KindPharmacySales:
		return con.PharmacySales.LastError()
	case reports.KindProductSales:
		return con.ProductSales.LastError()
	case reports.KindPharmacyRedemptions:
		return con.PharmacyRedemptions.LastError()
	case reports.KindRedemptionDetails:
		return con.RedemptionDetails.LastError()
	case reports.KindProductRedemptions:
		return con.ProductRedemptions.LastError()
	case reports.KindPatientRedemptions:
		return con.PatientRedemptions.LastError()
	case reports.KindInvoiceGaps:
		return con.InvoiceGaps.LastError()
	case reports.KindGapStatistics:
		return con.GapStatistics.LastError()
	}
	return nil
}
