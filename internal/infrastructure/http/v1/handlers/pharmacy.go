package handlers

import (
	"github.com/gin-gonic/gin"

	"rxconsole/internal/domain/pharmacy"
	"rxconsole/internal/infrastructure/http/v1/dto"
)

// PharmacyHandler serves the pharmacy reference directory.
type PharmacyHandler struct {
	*BaseHandler
	directory *pharmacy.Directory
}

// NewPharmacyHandler creates a pharmacy handler.
func NewPharmacyHandler(base *BaseHandler, directory *pharmacy.Directory) *PharmacyHandler {
	return &PharmacyHandler{BaseHandler: base, directory: directory}
}

// List returns the cached pharmacy list. A directory that never loaded is a
// degraded state, not an error: the response says so and the view disables
// the pharmacy filter.
func (h *PharmacyHandler) List(c *gin.Context) {
	h.OK(c, dto.PharmacyListResponse{
		Available:  h.directory.Available(),
		Pharmacies: h.directory.All(),
	})
}

// Refresh reloads the directory from the collaborator.
func (h *PharmacyHandler) Refresh(c *gin.Context) {
	if err := h.directory.Refresh(c.Request.Context()); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.PharmacyListResponse{
		Available:  true,
		Pharmacies: h.directory.All(),
	})
}
