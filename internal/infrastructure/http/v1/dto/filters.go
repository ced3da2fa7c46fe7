package dto

import (
	"time"

	"rxconsole/internal/core/apperror"
	"rxconsole/internal/domain/filter"
)

// FilterUpdateRequest stages a partial filter edit. Nil fields are left
// untouched; the Clear* flags drop an optional field.
type FilterUpdateRequest struct {
	PharmacyID     *int64  `json:"pharmacyId"`
	ClearPharmacy  bool    `json:"clearPharmacy"`
	StartDate      *string `json:"startDate"` // YYYY-MM-DD
	EndDate        *string `json:"endDate"`   // YYYY-MM-DD
	ClearDates     bool    `json:"clearDates"`
	EntryType      *string `json:"entryType"` // manual | automatic
	ClearEntryType bool    `json:"clearEntryType"`
	SearchText     *string `json:"searchText"`
	PerPage        *int    `json:"perPage"`
}

// ToUpdate converts the request into a domain filter update, rejecting
// malformed dates and unknown entry types.
func (r FilterUpdateRequest) ToUpdate() (filter.Update, error) {
	u := filter.Update{
		PharmacyID:     r.PharmacyID,
		SearchText:     r.SearchText,
		PerPage:        r.PerPage,
		ClearPharmacy:  r.ClearPharmacy,
		ClearDates:     r.ClearDates,
		ClearEntryType: r.ClearEntryType,
	}

	if r.StartDate != nil {
		t, err := time.Parse(filter.DateFormat, *r.StartDate)
		if err != nil {
			return filter.Update{}, apperror.NewValidation("invalid start date").
				WithDetail("value", *r.StartDate)
		}
		u.StartDate = &t
	}
	if r.EndDate != nil {
		t, err := time.Parse(filter.DateFormat, *r.EndDate)
		if err != nil {
			return filter.Update{}, apperror.NewValidation("invalid end date").
				WithDetail("value", *r.EndDate)
		}
		u.EndDate = &t
	}
	if r.EntryType != nil {
		et, err := filter.ParseEntryType(*r.EntryType)
		if err != nil {
			return filter.Update{}, err
		}
		u.EntryType = &et
	}

	return u, nil
}

// FilterResponse is the snapshot projection returned to the view.
type FilterResponse struct {
	PharmacyID *int64  `json:"pharmacyId,omitempty"`
	StartDate  *string `json:"startDate,omitempty"`
	EndDate    *string `json:"endDate,omitempty"`
	EntryType  *string `json:"entryType,omitempty"`
	SearchText string  `json:"searchText"`
	Page       int     `json:"page"`
	PerPage    int     `json:"perPage"`
}

// FromCriteria creates FilterResponse from a snapshot.
func FromCriteria(c filter.Criteria) FilterResponse {
	resp := FilterResponse{
		PharmacyID: c.PharmacyID,
		SearchText: c.SearchText,
		Page:       c.Page,
		PerPage:    c.PerPage,
	}
	if c.StartDate != nil {
		s := c.StartDate.Format(filter.DateFormat)
		resp.StartDate = &s
	}
	if c.EndDate != nil {
		s := c.EndDate.Format(filter.DateFormat)
		resp.EndDate = &s
	}
	if c.EntryType != nil {
		s := string(*c.EntryType)
		resp.EntryType = &s
	}
	return resp
}

// FilterStateResponse carries both staged and committed snapshots.
type FilterStateResponse struct {
	Staged    FilterResponse `json:"staged"`
	Committed FilterResponse `json:"committed"`
}
