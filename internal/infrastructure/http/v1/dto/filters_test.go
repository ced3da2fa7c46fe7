package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rxconsole/internal/core/apperror"
	"rxconsole/internal/domain/filter"
)

func strp(s string) *string { return &s }

func TestToUpdate_ParsesDatesAndEntryType(t *testing.T) {
	req := FilterUpdateRequest{
		StartDate: strp("2024-01-01"),
		EndDate:   strp("2024-01-31"),
		EntryType: strp("manual"),
	}

	u, err := req.ToUpdate()
	require.NoError(t, err)

	require.NotNil(t, u.StartDate)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *u.StartDate)
	require.NotNil(t, u.EntryType)
	assert.Equal(t, filter.EntryManual, *u.EntryType)
}

func TestToUpdate_RejectsMalformedInput(t *testing.T) {
	cases := map[string]FilterUpdateRequest{
		"bad start date":     {StartDate: strp("01/01/2024")},
		"bad end date":       {EndDate: strp("2024-13-40")},
		"unknown entry type": {EntryType: strp("imported")},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := req.ToUpdate()
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}

func TestFilterResponseRoundTrip(t *testing.T) {
	start, _ := time.Parse(filter.DateFormat, "2024-01-01")
	entry := filter.EntryAutomatic
	pharmacyID := int64(7)

	resp := FromCriteria(filter.Criteria{
		PharmacyID: &pharmacyID,
		StartDate:  &start,
		EntryType:  &entry,
		SearchText: "asp",
		Page:       2,
		PerPage:    25,
	})

	require.NotNil(t, resp.StartDate)
	assert.Equal(t, "2024-01-01", *resp.StartDate)
	assert.Nil(t, resp.EndDate)
	require.NotNil(t, resp.EntryType)
	assert.Equal(t, "automatic", *resp.EntryType)
	assert.Equal(t, 2, resp.Page)
}
