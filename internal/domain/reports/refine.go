package reports

import "strings"

// Searchable rows expose the string fields free-text search matches against.
type Searchable interface {
	SearchFields() []string
}

// Refined is the result of client-side refinement over a full result set.
type Refined[T any] struct {
	Visible    []T
	Page       int
	PerPage    int
	TotalRows  int
	TotalPages int
}

// Refine applies case-insensitive substring search and local pagination over
// an already-fetched full result set. Pagination slices the filtered set, not
// the raw one, and the requested page is clamped into [1, TotalPages] so a
// stale page number never yields an empty page while matches exist.
func Refine[T Searchable](rows []T, search string, page, perPage int) Refined[T] {
	if perPage < 1 {
		perPage = 1
	}

	filtered := rows
	if needle := strings.ToLower(strings.TrimSpace(search)); needle != "" {
		filtered = make([]T, 0, len(rows))
		for _, row := range rows {
			if matches(row, needle) {
				filtered = append(filtered, row)
			}
		}
	}

	totalPages := len(filtered) / perPage
	if len(filtered)%perPage > 0 {
		totalPages++
	}

	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Refined[T]{
		Visible:    filtered[start:end],
		Page:       page,
		PerPage:    perPage,
		TotalRows:  len(filtered),
		TotalPages: totalPages,
	}
}

func matches[T Searchable](row T, needle string) bool {
	for _, field := range row.SearchFields() {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// PageItem is one entry in a page-number list: either a concrete page number
// or an ellipsis placeholder.
type PageItem struct {
	Number   int  `json:"number,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

func pageN(n int) PageItem { return PageItem{Number: n} }
func gap() PageItem        { return PageItem{Ellipsis: true} }

// PageWindow builds the page-number list for a pager. With five or fewer
// pages all are shown; near the start the first four plus the last page are
// shown; near the end the first page plus the last four; otherwise a window
// of one page either side of the current page, bracketed by both ends.
func PageWindow(totalPages, current int) []PageItem {
	if totalPages <= 0 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	if totalPages <= 5 {
		items := make([]PageItem, 0, totalPages)
		for n := 1; n <= totalPages; n++ {
			items = append(items, pageN(n))
		}
		return items
	}

	switch {
	case current <= 3:
		return []PageItem{pageN(1), pageN(2), pageN(3), pageN(4), gap(), pageN(totalPages)}
	case current >= totalPages-2:
		return []PageItem{
			pageN(1), gap(),
			pageN(totalPages - 3), pageN(totalPages - 2), pageN(totalPages - 1), pageN(totalPages),
		}
	default:
		return []PageItem{
			pageN(1), gap(),
			pageN(current - 1), pageN(current), pageN(current + 1),
			gap(), pageN(totalPages),
		}
	}
}
