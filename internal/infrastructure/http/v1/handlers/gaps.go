package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"rxconsole/internal/core/apperror"
	"rxconsole/internal/domain/console"
	"rxconsole/internal/domain/reports"
	"rxconsole/internal/infrastructure/http/v1/dto"
)

// GapsHandler drives the invoice-gap review workflow.
type GapsHandler struct {
	*BaseHandler
	console *console.Console
}

// NewGapsHandler creates a gaps handler.
func NewGapsHandler(base *BaseHandler, con *console.Console) *GapsHandler {
	return &GapsHandler{BaseHandler: base, console: con}
}

// List returns the gap slice refined by local search and pagination.
// Resolution status (is_resolved) is a server-side filter: changing it
// re-fetches the gap list from the collaborator.
func (h *GapsHandler) List(c *gin.Context) {
	isResolved, err := h.ParseBoolQuery(c, "is_resolved")
	if err != nil {
		h.Error(c, err)
		return
	}
	if !boolPtrEqual(isResolved, h.console.GapResolution()) {
		h.console.SetGapResolution(isResolved)
	}

	search := c.Query("search")
	page := h.ParseIntQuery(c, "page", 1)
	perPage := h.ParseIntQuery(c, "per_page", h.console.Orch.Snapshot().PerPage)

	s := h.console.InvoiceGaps.Slice()
	kind := reports.KindInvoiceGaps
	h.OK(c, dto.FromRefined(
		dto.FromSlice(kind, s, h.console.Orch.Page(kind)),
		search,
		reports.Refine(s.Data, search, page, perPage),
	))
}

// Statistics returns the gap statistics slice. The aggregates are
// authoritative server-side state, re-fetched after every resolution.
func (h *GapsHandler) Statistics(c *gin.Context) {
	kind := reports.KindGapStatistics
	h.OK(c, dto.FromSlice(kind, h.console.GapStatistics.Slice(), 1))
}

// Details performs the full-fidelity fetch for one gap, including the
// complete anomaly details the list rows omit.
func (h *GapsHandler) Details(c *gin.Context) {
	id, ok := h.gapID(c)
	if !ok {
		return
	}

	gap, err := h.console.Gaps.Details(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gap)
}

// Resolve transitions a pending gap to resolved. A gap that is already
// resolved is rejected with a conflict; the entered notes stay client-side
// for retry on transient failures.
func (h *GapsHandler) Resolve(c *gin.Context) {
	id, ok := h.gapID(c)
	if !ok {
		return
	}

	var req dto.ResolveGapRequest
	if !h.BindJSON(c, &req) {
		return
	}

	gap, err := h.console.Gaps.Resolve(c.Request.Context(), id, req.ResolutionNotes)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gap)
}

func (h *GapsHandler) gapID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid gap id").WithDetail("id", c.Param("id")))
		return 0, false
	}
	return id, true
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
