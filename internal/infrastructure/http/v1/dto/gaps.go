package dto

// ResolveGapRequest carries the operator's resolution action.
type ResolveGapRequest struct {
	ResolutionNotes *string `json:"resolutionNotes"`
}

// PharmacyListResponse wraps the pharmacy directory with its availability
// flag. When the directory failed to load the console runs degraded:
// pharmacy filtering is unavailable but every other filter still works.
type PharmacyListResponse struct {
	Available  bool `json:"available"`
	Pharmacies any  `json:"pharmacies"`
}
