package gaps

import (
	"context"
	"sync"

	"rxconsole/internal/core/apperror"
	appctx "rxconsole/internal/core/context"
	"rxconsole/internal/domain/filter"
	"rxconsole/pkg/logger"
)

// Upstream is the slice of the reporting API the gap workflow consumes.
type Upstream interface {
	ListInvoiceGaps(ctx context.Context, c filter.Criteria, isResolved *bool) ([]InvoiceGap, error)
	GetInvoiceGapStatistics(ctx context.Context) (*Statistics, error)
	GetInvoiceGapDetail(ctx context.Context, id int64) (*InvoiceGap, error)
	ResolveInvoiceGap(ctx context.Context, id int64, req ResolveRequest) (*InvoiceGap, error)
}

// Service drives the gap lifecycle. It tracks the resolution state of every
// gap it has seen this session so that a second resolve attempt is rejected
// locally before it ever reaches the collaborator.
type Service struct {
	upstream Upstream

	// refresh re-triggers the gap list and statistics report slices after a
	// successful resolution. Wired to the orchestrator at assembly time.
	refresh func(ctx context.Context)

	mu       sync.Mutex
	resolved map[int64]bool // last known resolution state per gap id
}

// NewService creates the gap lifecycle service.
func NewService(upstream Upstream) *Service {
	return &Service{
		upstream: upstream,
		resolved: make(map[int64]bool),
	}
}

// SetRefresh wires the post-resolution refetch hook.
func (s *Service) SetRefresh(fn func(ctx context.Context)) {
	s.refresh = fn
}

// List fetches gaps under the current filters. Resolution status is a
// server-side filter (the full gap set may be large); free-text search over
// the returned rows stays client-side in the refinement layer.
func (s *Service) List(ctx context.Context, c filter.Criteria, isResolved *bool) ([]InvoiceGap, error) {
	rows, err := s.upstream.ListInvoiceGaps(ctx, c, isResolved)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for _, g := range rows {
		s.resolved[g.ID] = g.IsResolved
	}
	s.mu.Unlock()

	return rows, nil
}

// Statistics fetches the authoritative aggregates.
func (s *Service) Statistics(ctx context.Context) (*Statistics, error) {
	return s.upstream.GetInvoiceGapStatistics(ctx)
}

// Details performs the full-fidelity fetch for one gap, including the
// complete anomaly details. The list-row projection is insufficient for a
// detail view; this must be called before rendering one.
func (s *Service) Details(ctx context.Context, id int64) (*InvoiceGap, error) {
	g, err := s.upstream.GetInvoiceGapDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.resolved[g.ID] = g.IsResolved
	s.mu.Unlock()

	return g, nil
}

// Resolve transitions a pending gap to resolved, the only legal transition.
// A gap already known to be resolved is rejected with a state conflict so a
// legitimate resolution is never overwritten. On success the record carries
// the server-confirmed resolution fields and the gap list and statistics are
// re-fetched from the collaborator; a failed statistics refetch never rolls
// the resolution back.
func (s *Service) Resolve(ctx context.Context, id int64, notes *string) (*InvoiceGap, error) {
	s.mu.Lock()
	if s.resolved[id] {
		s.mu.Unlock()
		return nil, apperror.NewStateConflict("invoice gap is already resolved").
			WithDetail("gap_id", id)
	}
	s.mu.Unlock()

	req := ResolveRequest{Notes: notes}
	if op := appctx.GetOperator(ctx); op != nil {
		req.ResolvedBy = &OperatorRef{ID: op.ID, Name: op.Name}
	}

	g, err := s.upstream.ResolveInvoiceGap(ctx, id, req)
	if err != nil {
		// State stays pending locally; the action is retryable as-is.
		return nil, err
	}

	s.mu.Lock()
	s.resolved[g.ID] = true
	s.mu.Unlock()

	logger.Info(ctx, "invoice gap resolved",
		"gap_id", g.ID, "pharmacy_id", g.PharmacyID)

	if s.refresh != nil {
		s.refresh(ctx)
	}

	return g, nil
}

// KnownResolved reports the last known resolution state for a gap id.
func (s *Service) KnownResolved(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolved[id]
}
