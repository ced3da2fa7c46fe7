package reports

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchRow struct {
	Name string
	Code string
}

func (r searchRow) SearchFields() []string { return []string{r.Name, r.Code} }

func makeRows(n int) []searchRow {
	rows := make([]searchRow, n)
	for i := range rows {
		rows[i] = searchRow{Name: fmt.Sprintf("Farmacia %02d", i+1), Code: fmt.Sprintf("PH-%03d", i+1)}
	}
	return rows
}

func TestRefine_PaginatesFilteredSet(t *testing.T) {
	rows := makeRows(23)

	r := Refine(rows, "", 1, 10)
	assert.Len(t, r.Visible, 10)
	assert.Equal(t, 23, r.TotalRows)
	assert.Equal(t, 3, r.TotalPages)

	r = Refine(rows, "", 3, 10)
	assert.Len(t, r.Visible, 3)
	assert.Equal(t, rows[20], r.Visible[0])
}

func TestRefine_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	rows := []searchRow{
		{Name: "Farmacia Central", Code: "PH-001"},
		{Name: "Botica del Sur", Code: "PH-002"},
		{Name: "Farmacia del Norte", Code: "PH-003"},
	}

	r := Refine(rows, "FARMACIA", 1, 10)
	require.Len(t, r.Visible, 2)
	assert.Equal(t, "Farmacia Central", r.Visible[0].Name)
	assert.Equal(t, "Farmacia del Norte", r.Visible[1].Name)

	// Matches any search field, not just the first.
	r = Refine(rows, "ph-002", 1, 10)
	require.Len(t, r.Visible, 1)
	assert.Equal(t, "Botica del Sur", r.Visible[0].Name)
}

func TestRefine_CountsReflectFilteredSetNotRaw(t *testing.T) {
	rows := makeRows(30) // "Farmacia 01".."Farmacia 30"

	r := Refine(rows, "farmacia 1", 1, 5) // matches 10..19 only
	assert.Equal(t, 10, r.TotalRows)
	assert.Equal(t, 2, r.TotalPages)
	assert.Len(t, r.Visible, 5)
}

func TestRefine_ClampsStalePageIntoRange(t *testing.T) {
	rows := makeRows(23)

	// Page 3 was valid before the search narrowed the set to one page.
	r := Refine(rows, "farmacia 01", 3, 10)
	assert.Equal(t, 1, r.Page)
	require.Len(t, r.Visible, 1)
	assert.Equal(t, "Farmacia 01", r.Visible[0].Name)
}

func TestRefine_NoMatches(t *testing.T) {
	r := Refine(makeRows(5), "zzz", 2, 10)
	assert.Empty(t, r.Visible)
	assert.Equal(t, 0, r.TotalRows)
	assert.Equal(t, 0, r.TotalPages)
	assert.Equal(t, 1, r.Page)
}

func TestPageWindow(t *testing.T) {
	page := func(ns ...int) []PageItem {
		items := make([]PageItem, 0, len(ns))
		for _, n := range ns {
			if n == 0 {
				items = append(items, PageItem{Ellipsis: true})
			} else {
				items = append(items, PageItem{Number: n})
			}
		}
		return items
	}

	cases := []struct {
		name    string
		total   int
		current int
		want    []PageItem
	}{
		{"empty", 0, 1, nil},
		{"single", 1, 1, page(1)},
		{"few pages all shown", 3, 2, page(1, 2, 3)},
		{"boundary of five", 5, 5, page(1, 2, 3, 4, 5)},
		{"near start", 12, 1, page(1, 2, 3, 4, 0, 12)},
		{"near start edge", 12, 3, page(1, 2, 3, 4, 0, 12)},
		{"middle", 12, 6, page(1, 0, 5, 6, 7, 0, 12)},
		{"near end edge", 12, 10, page(1, 0, 9, 10, 11, 12)},
		{"near end", 12, 12, page(1, 0, 9, 10, 11, 12)},
		{"current clamped high", 8, 99, page(1, 0, 5, 6, 7, 8)},
		{"current clamped low", 8, 0, page(1, 2, 3, 4, 0, 8)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PageWindow(tc.total, tc.current))
		})
	}
}
