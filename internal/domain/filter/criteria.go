// Package filter holds the shared report filter state for an operator session.
// Criteria is an immutable snapshot: every edit produces a new value, so each
// fetch is parameterized by a value rather than a mutable cell.
package filter

import (
	"time"

	"rxconsole/internal/core/apperror"
)

// EntryType classifies how a transaction record was captured.
type EntryType string

const (
	EntryManual    EntryType = "manual"    // operator-entered
	EntryAutomatic EntryType = "automatic" // ingested from an automated feed
)

// ParseEntryType validates an entry type string. Unknown values are rejected
// rather than passed through, so new upstream entry types fail closed.
func ParseEntryType(s string) (EntryType, error) {
	switch EntryType(s) {
	case EntryManual, EntryAutomatic:
		return EntryType(s), nil
	}
	return "", apperror.NewValidation("unknown entry type").WithDetail("value", s)
}

// DateFormat is the wire format for date-only filter fields.
const DateFormat = "2006-01-02"

// DefaultPerPage is the per-page size used when a view does not set its own.
const DefaultPerPage = 10

// Criteria is one immutable filter snapshot. Optional fields are pointers;
// nil means "not set" and the field is omitted from upstream requests entirely.
type Criteria struct {
	PharmacyID *int64
	StartDate  *time.Time
	EndDate    *time.Time
	EntryType  *EntryType
	SearchText string
	Page       int
	PerPage    int
}

// Update is a partial edit of Criteria. Nil fields are left untouched.
// Clearing an optional field is expressed by a pointer to its zero value
// via the Clear* sentinels below.
type Update struct {
	PharmacyID *int64
	StartDate  *time.Time
	EndDate    *time.Time
	EntryType  *EntryType
	SearchText *string
	PerPage    *int

	// ClearPharmacy, ClearDates and ClearEntryType drop the corresponding
	// optional field instead of setting it.
	ClearPharmacy  bool
	ClearDates     bool
	ClearEntryType bool
}

// Empty returns the canonical empty snapshot for a view default page size.
func Empty(perPage int) Criteria {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return Criteria{Page: 1, PerPage: perPage}
}

// Apply merges a partial edit into the snapshot and returns the new value.
// Changing any field other than the page number resets Page to 1: the old
// page position is meaningless against a different result set.
func (c Criteria) Apply(u Update) Criteria {
	next := c
	changed := false

	if u.PharmacyID != nil {
		v := *u.PharmacyID
		next.PharmacyID = &v
		changed = true
	}
	if u.ClearPharmacy {
		next.PharmacyID = nil
		changed = true
	}
	if u.StartDate != nil {
		v := *u.StartDate
		next.StartDate = &v
		changed = true
	}
	if u.EndDate != nil {
		v := *u.EndDate
		next.EndDate = &v
		changed = true
	}
	if u.ClearDates {
		next.StartDate = nil
		next.EndDate = nil
		changed = true
	}
	if u.EntryType != nil {
		v := *u.EntryType
		next.EntryType = &v
		changed = true
	}
	if u.ClearEntryType {
		next.EntryType = nil
		changed = true
	}
	if u.SearchText != nil {
		next.SearchText = *u.SearchText
		changed = true
	}
	if u.PerPage != nil && *u.PerPage > 0 {
		next.PerPage = *u.PerPage
	}

	if changed {
		next.Page = 1
	}
	return next
}

// WithPage returns a copy positioned on page n, clamped to at least 1.
// Upper clamping is left to the caller when the last page is known; page
// numbers beyond it are accepted speculatively.
func (c Criteria) WithPage(n int) Criteria {
	if n < 1 {
		n = 1
	}
	next := c
	next.Page = n
	return next
}

// Equal reports whether two snapshots carry the same filter values.
func (c Criteria) Equal(o Criteria) bool {
	return eqInt64Ptr(c.PharmacyID, o.PharmacyID) &&
		eqTimePtr(c.StartDate, o.StartDate) &&
		eqTimePtr(c.EndDate, o.EndDate) &&
		eqEntryPtr(c.EntryType, o.EntryType) &&
		c.SearchText == o.SearchText &&
		c.Page == o.Page &&
		c.PerPage == o.PerPage
}

func eqInt64Ptr(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func eqEntryPtr(a, b *EntryType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
