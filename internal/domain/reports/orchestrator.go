package reports

import (
	"context"
	"sync"

	"rxconsole/internal/core/apperror"
	"rxconsole/internal/domain/filter"
)

// Orchestrator coordinates the registered report sources sharing one filter
// manager. Committing a filter change re-triggers every source; a pagination
// change for one report re-triggers only that report. Sources run
// concurrently with no join barrier: each slice updates as its own fetch
// completes, and one failure never blocks the others.
type Orchestrator struct {
	ctx     context.Context
	filters *filter.Manager

	mu      sync.Mutex
	sources map[Kind]Source
	order   []Kind
	pages   map[Kind]int

	wg sync.WaitGroup
}

// NewOrchestrator creates an orchestrator bound to a session context. Fetches
// triggered by commits run on this context, not on any single request's, so
// they survive the HTTP request that initiated them.
func NewOrchestrator(ctx context.Context, filters *filter.Manager) *Orchestrator {
	o := &Orchestrator{
		ctx:     ctx,
		filters: filters,
		sources: make(map[Kind]Source),
		pages:   make(map[Kind]int),
	}
	filters.Subscribe(o.onCommit)
	return o
}

// Register adds a report source. Registration order is preserved for
// overview rendering.
func (o *Orchestrator) Register(s Source) {
	o.mu.Lock()
	defer o.mu.Unlock()
	kind := s.Kind()
	if _, dup := o.sources[kind]; dup {
		return
	}
	o.sources[kind] = s
	o.order = append(o.order, kind)
	o.pages[kind] = 1
}

// Stage merges a partial filter edit without fetching anything.
func (o *Orchestrator) Stage(u filter.Update) filter.Criteria {
	return o.filters.Stage(u)
}

// Staged returns the staged, not yet committed, filter snapshot.
func (o *Orchestrator) Staged() filter.Criteria {
	return o.filters.Staged()
}

// Snapshot returns the committed filter snapshot.
func (o *Orchestrator) Snapshot() filter.Criteria {
	return o.filters.Snapshot()
}

// ApplyFilters commits staged edits; the commit notification re-triggers
// every registered source with the new snapshot.
func (o *Orchestrator) ApplyFilters() filter.Criteria {
	return o.filters.Apply()
}

// ClearFilters hard-resets the filter state and re-triggers every source.
func (o *Orchestrator) ClearFilters() filter.Criteria {
	return o.filters.Clear()
}

// onCommit runs synchronously inside Apply/Clear: every pager resets to 1,
// then all sources refresh concurrently.
func (o *Orchestrator) onCommit(c filter.Criteria) {
	o.mu.Lock()
	targets := make([]Source, 0, len(o.order))
	for _, kind := range o.order {
		o.pages[kind] = 1
		targets = append(targets, o.sources[kind])
	}
	o.mu.Unlock()

	for _, s := range targets {
		o.spawn(s, c.WithPage(1))
	}
}

// SetPage positions one report on a page and refreshes only that report.
// Page numbers beyond the known last page are accepted speculatively; the
// upstream envelope clamps them.
func (o *Orchestrator) SetPage(kind Kind, page int) (filter.Criteria, error) {
	if page < 1 {
		return filter.Criteria{}, apperror.NewValidation("page must be >= 1").
			WithDetail("page", page)
	}

	o.mu.Lock()
	s, ok := o.sources[kind]
	if !ok {
		o.mu.Unlock()
		return filter.Criteria{}, apperror.NewNotFound("report", string(kind))
	}
	o.pages[kind] = page
	o.mu.Unlock()

	c := o.filters.Snapshot().WithPage(page)
	o.spawn(s, c)
	return c, nil
}

// Page returns the current page of one report's independent pager.
func (o *Orchestrator) Page(kind Kind) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	if p, ok := o.pages[kind]; ok {
		return p
	}
	return 1
}

// Criteria returns the committed snapshot positioned on a kind's own page.
func (o *Orchestrator) Criteria(kind Kind) filter.Criteria {
	return o.filters.Snapshot().WithPage(o.Page(kind))
}

// RefreshKinds re-triggers the named sources with their current criteria.
// Used after a gap resolution to re-fetch the gap list and statistics.
func (o *Orchestrator) RefreshKinds(kinds ...Kind) {
	for _, kind := range kinds {
		o.mu.Lock()
		s, ok := o.sources[kind]
		o.mu.Unlock()
		if !ok {
			continue
		}
		o.spawn(s, o.Criteria(kind))
	}
}

// spawn runs one source refresh on the session context.
func (o *Orchestrator) spawn(s Source, c filter.Criteria) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		s.Refresh(o.ctx, c)
	}()
}

// Wait blocks until every refresh spawned so far has completed. The HTTP
// surface never calls this; it exists for command-line use and tests.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// AnyLoading reports whether at least one source has a request outstanding.
func (o *Orchestrator) AnyLoading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, s := range o.sources {
		if s.Loading() {
			return true
		}
	}
	return false
}

// Loading reports whether one kind has a request outstanding.
func (o *Orchestrator) Loading(kind Kind) bool {
	o.mu.Lock()
	s, ok := o.sources[kind]
	o.mu.Unlock()
	return ok && s.Loading()
}

// Statuses returns the per-kind slice status in registration order.
func (o *Orchestrator) Statuses() map[Kind]Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make(map[Kind]Status, len(o.sources))
	for kind, s := range o.sources {
		out[kind] = s.Status()
	}
	return out
}

// Registered returns the registered kinds in registration order.
func (o *Orchestrator) Registered() []Kind {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Kind, len(o.order))
	copy(out, o.order)
	return out
}
