package reports

// Envelope is the pagination envelope used by server-paginated report
// endpoints. Field semantics: From = (CurrentPage-1)*PerPage + 1 when
// Total > 0, otherwise 0.
type Envelope[T any] struct {
	Items       []T `json:"items"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	From        int `json:"from"`
	To          int `json:"to"`
	Total       int `json:"total"`
}

// NewEnvelope builds an envelope over a page of items with consistent
// from/to/last_page values.
func NewEnvelope[T any](items []T, page, perPage, total int) Envelope[T] {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	lastPage := total / perPage
	if total%perPage > 0 {
		lastPage++
	}
	if lastPage < 1 {
		lastPage = 1
	}
	from := 0
	to := 0
	if total > 0 && len(items) > 0 {
		from = (page-1)*perPage + 1
		to = from + len(items) - 1
	}
	return Envelope[T]{
		Items:       items,
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		From:        from,
		To:          to,
		Total:       total,
	}
}
