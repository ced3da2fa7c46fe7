package handlers

import (
	"github.com/gin-gonic/gin"

	"rxconsole/internal/domain/console"
	"rxconsole/internal/infrastructure/http/v1/dto"
)

// FiltersHandler serves the shared filter state. Edits are staged without
// triggering any fetch; only Apply and Clear commit and re-trigger reports.
type FiltersHandler struct {
	*BaseHandler
	console *console.Console
}

// NewFiltersHandler creates a filters handler.
func NewFiltersHandler(base *BaseHandler, con *console.Console) *FiltersHandler {
	return &FiltersHandler{BaseHandler: base, console: con}
}

// Get returns both the staged and committed snapshots.
func (h *FiltersHandler) Get(c *gin.Context) {
	h.OK(c, dto.FilterStateResponse{
		Staged:    dto.FromCriteria(h.console.Orch.Staged()),
		Committed: dto.FromCriteria(h.console.Orch.Snapshot()),
	})
}

// Stage merges a partial edit into the staging area. No fetch happens.
func (h *FiltersHandler) Stage(c *gin.Context) {
	var req dto.FilterUpdateRequest
	if !h.BindJSON(c, &req) {
		return
	}
	update, err := req.ToUpdate()
	if err != nil {
		h.Error(c, err)
		return
	}
	staged := h.console.Orch.Stage(update)
	h.OK(c, dto.FromCriteria(staged))
}

// Apply commits staged edits and re-triggers every report fetch. Returns 202:
// the fetches run asynchronously and the view polls the overview endpoint.
func (h *FiltersHandler) Apply(c *gin.Context) {
	snapshot := h.console.Orch.ApplyFilters()
	h.Accepted(c, dto.FromCriteria(snapshot))
}

// Clear hard-resets the filter state and re-triggers every report fetch.
func (h *FiltersHandler) Clear(c *gin.Context) {
	snapshot := h.console.Orch.ClearFilters()
	h.Accepted(c, dto.FromCriteria(snapshot))
}
