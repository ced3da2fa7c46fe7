// Package gaps implements the invoice-gap review workflow: detected
// numbering anomalies flow in from the detection collaborator as pending
// records and transition exactly once to resolved by operator action.
package gaps

import "time"

// MissingRange describes the span of invoice numbers a gap covers.
type MissingRange struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Count int    `json:"count"`
}

// AnomalyDetails carries the detection engine's full reasoning. Only the
// detail endpoint returns it; list rows omit it.
type AnomalyDetails struct {
	Reason               string   `json:"reason"`
	RecentInvoicesSample []string `json:"recent_invoices_sample"`
	PatternSimilarity    float64  `json:"pattern_similarity"`
}

// OperatorRef identifies the operator who resolved a gap.
type OperatorRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// InvoiceGap is one detected irregularity in a pharmacy's invoice numbering
// sequence. Created externally in pending state; resolution is terminal.
type InvoiceGap struct {
	ID            int64  `json:"id"`
	PharmacyID    int64  `json:"pharmacy_id"`
	SubPharmacyID *int64 `json:"sub_pharmacy_id,omitempty"`
	PharmacyName  string `json:"pharmacy_name"`

	ReceivedPattern string       `json:"received_pattern"`
	ExpectedPattern string       `json:"expected_pattern"`
	SimilarityScore float64      `json:"similarity_score"` // 0-100, computed externally
	MissingRange    MissingRange `json:"missing_range"`

	// Detail-fidelity payload; nil on list rows.
	AnomalyDetails *AnomalyDetails `json:"anomaly_details,omitempty"`

	IsResolved      bool         `json:"is_resolved"`
	ResolutionNotes *string      `json:"resolution_notes,omitempty"`
	ResolvedAt      *time.Time   `json:"resolved_at,omitempty"`
	ResolvedBy      *OperatorRef `json:"resolved_by,omitempty"`

	// TransactionID references the transaction that triggered detection.
	TransactionID int64     `json:"transaction_id"`
	DetectedAt    time.Time `json:"detected_at"`
}

// SearchFields feeds the client-side refinement layer for the gap list.
func (g InvoiceGap) SearchFields() []string {
	return []string{
		g.PharmacyName,
		g.ReceivedPattern,
		g.ExpectedPattern,
		g.MissingRange.From,
		g.MissingRange.To,
	}
}

// PharmacyGapCount is one row of the top-pharmacies statistic.
type PharmacyGapCount struct {
	PharmacyID   int64  `json:"pharmacy_id"`
	PharmacyName string `json:"pharmacy_name"`
	GapCount     int    `json:"gap_count"`
}

// Statistics are the authoritative server-side aggregates. They are always
// re-fetched after a resolution, never derived from the loaded page.
type Statistics struct {
	TotalGaps      int                `json:"total_gaps"`
	UnresolvedGaps int                `json:"unresolved_gaps"`
	ResolvedGaps   int                `json:"resolved_gaps"`
	GapsThisMonth  int                `json:"gaps_this_month"`
	TopPharmacies  []PharmacyGapCount `json:"top_pharmacies"`
}

// ResolveRequest is the operator action payload for resolving a gap.
type ResolveRequest struct {
	Notes      *string      `json:"resolution_notes,omitempty"`
	ResolvedBy *OperatorRef `json:"resolved_by,omitempty"`
}
