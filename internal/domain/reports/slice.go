package reports

import "rxconsole/internal/core/apperror"

// Status is the loading state of one report slice.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusError   Status = "error"
)

// Slice is the observable state of one report dataset. On a failed reload the
// previous data is kept (stale-but-displayed); only a failed first load leaves
// the slice without data.
type Slice[T any] struct {
	Status Status             `json:"status"`
	Data   T                  `json:"data"`
	Loaded bool               `json:"loaded"` // Data has been populated at least once
	Err    *apperror.AppError `json:"error,omitempty"`
}
