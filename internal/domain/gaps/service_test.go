package gaps

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rxconsole/internal/core/apperror"
	appctx "rxconsole/internal/core/context"
	"rxconsole/internal/domain/filter"
)

type fakeUpstream struct {
	listFn    func(ctx context.Context, c filter.Criteria, isResolved *bool) ([]InvoiceGap, error)
	statsFn   func(ctx context.Context) (*Statistics, error)
	detailFn  func(ctx context.Context, id int64) (*InvoiceGap, error)
	resolveFn func(ctx context.Context, id int64, req ResolveRequest) (*InvoiceGap, error)

	resolveCalls int
}

func (f *fakeUpstream) ListInvoiceGaps(ctx context.Context, c filter.Criteria, isResolved *bool) ([]InvoiceGap, error) {
	return f.listFn(ctx, c, isResolved)
}

func (f *fakeUpstream) GetInvoiceGapStatistics(ctx context.Context) (*Statistics, error) {
	return f.statsFn(ctx)
}

func (f *fakeUpstream) GetInvoiceGapDetail(ctx context.Context, id int64) (*InvoiceGap, error) {
	return f.detailFn(ctx, id)
}

func (f *fakeUpstream) ResolveInvoiceGap(ctx context.Context, id int64, req ResolveRequest) (*InvoiceGap, error) {
	f.resolveCalls++
	return f.resolveFn(ctx, id, req)
}

func pendingGap(id int64) InvoiceGap {
	return InvoiceGap{
		ID:              id,
		PharmacyID:      42,
		PharmacyName:    "Farmacia Central",
		ReceivedPattern: "F001-0150",
		ExpectedPattern: "F001-0121",
		SimilarityScore: 93,
		MissingRange:    MissingRange{From: "F001-0121", To: "F001-0149", Count: 29},
		TransactionID:   9001,
		DetectedAt:      time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func strp(s string) *string { return &s }

func TestResolve_TransitionsAndTriggersRefetch(t *testing.T) {
	now := time.Now()
	up := &fakeUpstream{
		resolveFn: func(ctx context.Context, id int64, req ResolveRequest) (*InvoiceGap, error) {
			require.NotNil(t, req.Notes)
			assert.Equal(t, "counted by hand", *req.Notes)
			require.NotNil(t, req.ResolvedBy)
			assert.Equal(t, "op-7", req.ResolvedBy.ID)

			g := pendingGap(id)
			g.IsResolved = true
			g.ResolutionNotes = req.Notes
			g.ResolvedAt = &now
			g.ResolvedBy = req.ResolvedBy
			return &g, nil
		},
	}

	svc := NewService(up)
	var refreshed int
	svc.SetRefresh(func(ctx context.Context) { refreshed++ })

	ctx := appctx.WithOperator(context.Background(), &appctx.OperatorContext{ID: "op-7", Name: "Ana"})
	g, err := svc.Resolve(ctx, 11, strp("counted by hand"))

	require.NoError(t, err)
	assert.True(t, g.IsResolved)
	require.NotNil(t, g.ResolvedAt)
	assert.Equal(t, 1, refreshed, "gap list and statistics must be re-fetched")
	assert.True(t, svc.KnownResolved(11))
}

func TestResolve_RejectsSecondAttemptLocally(t *testing.T) {
	resolved := pendingGap(11)
	resolved.IsResolved = true

	up := &fakeUpstream{
		listFn: func(ctx context.Context, c filter.Criteria, isResolved *bool) ([]InvoiceGap, error) {
			return []InvoiceGap{resolved, pendingGap(12)}, nil
		},
		resolveFn: func(ctx context.Context, id int64, req ResolveRequest) (*InvoiceGap, error) {
			t.Fatal("resolve must not reach the collaborator for a known-resolved gap")
			return nil, nil
		},
	}

	svc := NewService(up)
	_, err := svc.List(context.Background(), filter.Empty(10), nil)
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), 11, nil)
	assert.True(t, apperror.IsStateConflict(err))
	assert.Equal(t, 0, up.resolveCalls)
}

func TestResolve_UpstreamConflictPassesThrough(t *testing.T) {
	up := &fakeUpstream{
		resolveFn: func(ctx context.Context, id int64, req ResolveRequest) (*InvoiceGap, error) {
			// Another session resolved it first.
			return nil, apperror.NewStateConflict("invoice gap already resolved")
		},
	}

	svc := NewService(up)
	var refreshed int
	svc.SetRefresh(func(ctx context.Context) { refreshed++ })

	_, err := svc.Resolve(context.Background(), 11, nil)
	assert.True(t, apperror.IsStateConflict(err))
	assert.Equal(t, 0, refreshed, "no refetch on a failed resolution")
}

func TestResolve_FailureLeavesGapRetryable(t *testing.T) {
	var fail bool
	up := &fakeUpstream{
		resolveFn: func(ctx context.Context, id int64, req ResolveRequest) (*InvoiceGap, error) {
			if fail {
				return nil, apperror.NewNetwork(errors.New("connection refused"))
			}
			g := pendingGap(id)
			g.IsResolved = true
			return &g, nil
		},
	}

	svc := NewService(up)

	fail = true
	_, err := svc.Resolve(context.Background(), 11, nil)
	require.Error(t, err)
	assert.False(t, svc.KnownResolved(11), "failed attempt must not mark the gap resolved")

	fail = false
	g, err := svc.Resolve(context.Background(), 11, nil)
	require.NoError(t, err)
	assert.True(t, g.IsResolved)
	assert.Equal(t, 2, up.resolveCalls)
}

func TestList_RecordsResolutionState(t *testing.T) {
	resolved := pendingGap(1)
	resolved.IsResolved = true

	up := &fakeUpstream{
		listFn: func(ctx context.Context, c filter.Criteria, isResolved *bool) ([]InvoiceGap, error) {
			return []InvoiceGap{resolved, pendingGap(2)}, nil
		},
	}

	svc := NewService(up)
	rows, err := svc.List(context.Background(), filter.Empty(10), nil)

	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.True(t, svc.KnownResolved(1))
	assert.False(t, svc.KnownResolved(2))
}

func TestDetails_PassesThroughNotFound(t *testing.T) {
	up := &fakeUpstream{
		detailFn: func(ctx context.Context, id int64) (*InvoiceGap, error) {
			return nil, apperror.NewNotFound("invoice gap", id)
		},
	}

	svc := NewService(up)
	_, err := svc.Details(context.Background(), 999)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDetails_RecordsResolutionState(t *testing.T) {
	up := &fakeUpstream{
		detailFn: func(ctx context.Context, id int64) (*InvoiceGap, error) {
			g := pendingGap(id)
			g.IsResolved = true
			g.AnomalyDetails = &AnomalyDetails{Reason: "sequence jump", PatternSimilarity: 0.93}
			return &g, nil
		},
	}

	svc := NewService(up)
	g, err := svc.Details(context.Background(), 5)

	require.NoError(t, err)
	require.NotNil(t, g.AnomalyDetails)
	assert.True(t, svc.KnownResolved(5))
}
