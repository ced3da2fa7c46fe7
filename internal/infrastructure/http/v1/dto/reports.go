package dto

import (
	"rxconsole/internal/domain/reports"
)

// ReportResponse is one report slice as rendered to the view. Data carries
// the kind-specific payload; for client-refined kinds it is the refined page
// plus the page-number window, for server-paginated kinds the raw envelope.
type ReportResponse struct {
	Kind    string         `json:"kind"`
	Status  string         `json:"status"`
	Loaded  bool           `json:"loaded"`
	Page    int            `json:"page"`
	Error   *ErrorResponse `json:"error,omitempty"`
	Data    any            `json:"data,omitempty"`
	Refined *RefinedPage   `json:"refined,omitempty"`
}

// RefinedPage is a locally searched and paginated view over a full-set report.
type RefinedPage struct {
	Items      any                `json:"items"`
	Search     string             `json:"search"`
	Page       int                `json:"page"`
	PerPage    int                `json:"perPage"`
	TotalRows  int                `json:"totalRows"`
	TotalPages int                `json:"totalPages"`
	Pages      []reports.PageItem `json:"pages"`
}

// FromSlice builds a ReportResponse from a typed slice. Stale data is still
// rendered while a reload is in flight, per display policy.
func FromSlice[T any](kind reports.Kind, s reports.Slice[T], page int) ReportResponse {
	resp := ReportResponse{
		Kind:   string(kind),
		Status: string(s.Status),
		Loaded: s.Loaded,
		Page:   page,
	}
	if s.Err != nil {
		resp.Error = &ErrorResponse{
			Code:    s.Err.Code,
			Message: s.Err.Message,
			Details: s.Err.Details,
		}
	}
	if s.Loaded {
		resp.Data = s.Data
	}
	return resp
}

// FromRefined attaches a refined page to a ReportResponse, replacing the raw
// full-set payload with the visible page.
func FromRefined[T reports.Searchable](resp ReportResponse, search string, r reports.Refined[T]) ReportResponse {
	resp.Data = nil
	resp.Refined = &RefinedPage{
		Items:      r.Visible,
		Search:     search,
		Page:       r.Page,
		PerPage:    r.PerPage,
		TotalRows:  r.TotalRows,
		TotalPages: r.TotalPages,
		Pages:      reports.PageWindow(r.TotalPages, r.Page),
	}
	return resp
}

// OverviewResponse summarizes every registered report slice plus the shared
// filter state: what the view polls while fetches are outstanding.
type OverviewResponse struct {
	AnyLoading bool                `json:"anyLoading"`
	Reports    []ReportStatusEntry `json:"reports"`
	Filters    FilterStateResponse `json:"filters"`
}

// ReportStatusEntry is one kind's status line in the overview.
type ReportStatusEntry struct {
	Kind    string         `json:"kind"`
	Status  string         `json:"status"`
	Loading bool           `json:"loading"`
	Page    int            `json:"page"`
	Error   *ErrorResponse `json:"error,omitempty"`
}

// SetPageRequest positions one report's independent pager.
type SetPageRequest struct {
	Page int `json:"page" binding:"required,min=1"`
}
