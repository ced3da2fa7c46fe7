package reports

import (
	"context"
	"sync"

	"rxconsole/internal/core/apperror"
	"rxconsole/internal/domain/filter"
	"rxconsole/pkg/logger"
)

// FetchFunc maps a filter snapshot to one report payload. Implementations
// serialize only the criteria fields relevant to their report kind.
type FetchFunc[T any] func(ctx context.Context, c filter.Criteria) (T, error)

// Source is the orchestrator's view of a fetcher, independent of payload type.
type Source interface {
	Kind() Kind
	Refresh(ctx context.Context, c filter.Criteria)
	Status() Status
	Loading() bool
	LastError() *apperror.AppError
}

// Fetcher owns one report slice and enforces single-flight supersession:
// every Refresh is tagged with a monotonically increasing sequence number,
// and a response is applied only if its request is still the latest issued.
// Last-issued wins, not last-completed, so a slow stale response can never
// overwrite the result of a newer filter.
type Fetcher[T any] struct {
	kind Kind
	fn   FetchFunc[T]

	mu    sync.Mutex
	seq   uint64
	slice Slice[T]
}

// NewFetcher creates a fetcher for one report kind.
func NewFetcher[T any](kind Kind, fn FetchFunc[T]) *Fetcher[T] {
	return &Fetcher[T]{
		kind:  kind,
		fn:    fn,
		slice: Slice[T]{Status: StatusIdle},
	}
}

// Kind returns the report kind this fetcher owns.
func (f *Fetcher[T]) Kind() Kind { return f.kind }

// Refresh issues a fetch for the given snapshot and applies the result unless
// a newer Refresh superseded it while in flight. Errors never propagate: they
// land on the slice for per-panel rendering.
func (f *Fetcher[T]) Refresh(ctx context.Context, c filter.Criteria) {
	f.mu.Lock()
	f.seq++
	mine := f.seq
	f.slice.Status = StatusLoading
	f.mu.Unlock()

	data, err := f.fn(ctx, c)

	f.mu.Lock()
	defer f.mu.Unlock()
	if mine != f.seq {
		// Superseded while in flight; the latest request owns the slice now.
		logger.Debug(ctx, "discarding superseded report response",
			"kind", f.kind, "seq", mine, "latest", f.seq)
		return
	}

	if err != nil {
		f.slice.Status = StatusError
		f.slice.Err = apperror.Wrap(err)
		if !f.slice.Loaded {
			var zero T
			f.slice.Data = zero
		}
		logger.Warn(ctx, "report fetch failed",
			"kind", f.kind, "error", err)
		return
	}

	f.slice.Status = StatusLoaded
	f.slice.Data = data
	f.slice.Loaded = true
	f.slice.Err = nil
}

// Slice returns a copy of the current slice state.
func (f *Fetcher[T]) Slice() Slice[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slice
}

// Status returns the current loading status.
func (f *Fetcher[T]) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slice.Status
}

// Loading reports whether a request is outstanding.
func (f *Fetcher[T]) Loading() bool {
	return f.Status() == StatusLoading
}

// LastError returns the error of the most recent failed fetch, if any.
func (f *Fetcher[T]) LastError() *apperror.AppError {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slice.Err
}
