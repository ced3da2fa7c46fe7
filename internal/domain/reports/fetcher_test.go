package reports

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rxconsole/internal/core/apperror"
	"rxconsole/internal/domain/filter"
)

func TestFetcher_RefreshAppliesResult(t *testing.T) {
	f := NewFetcher(KindTransactions, func(ctx context.Context, c filter.Criteria) ([]string, error) {
		return []string{"row"}, nil
	})

	require.Equal(t, StatusIdle, f.Status())
	f.Refresh(context.Background(), filter.Empty(10))

	s := f.Slice()
	assert.Equal(t, StatusLoaded, s.Status)
	assert.Equal(t, []string{"row"}, s.Data)
	assert.True(t, s.Loaded)
	assert.Nil(t, s.Err)
}

// A slow response from an older request must not overwrite the result of a
// newer one, regardless of completion order.
func TestFetcher_StaleResponseIsDiscarded(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	f := NewFetcher(KindTransactions, func(ctx context.Context, c filter.Criteria) ([]string, error) {
		if c.Page == 1 {
			close(entered)
			<-release
			return []string{"stale"}, nil
		}
		return []string{"fresh"}, nil
	})

	base := filter.Empty(10)

	firstDone := make(chan struct{})
	go func() {
		f.Refresh(context.Background(), base.WithPage(1))
		close(firstDone)
	}()
	<-entered // first request is in flight

	f.Refresh(context.Background(), base.WithPage(2))
	assert.Equal(t, []string{"fresh"}, f.Slice().Data)

	// Let the stale request complete after the fresh one.
	close(release)
	<-firstDone

	s := f.Slice()
	assert.Equal(t, []string{"fresh"}, s.Data, "superseded response must be discarded")
	assert.Equal(t, StatusLoaded, s.Status)
}

func TestFetcher_ErrorKeepsLastGoodData(t *testing.T) {
	var fail bool
	f := NewFetcher(KindPharmacySales, func(ctx context.Context, c filter.Criteria) ([]string, error) {
		if fail {
			return nil, apperror.NewNetwork(errors.New("connection refused"))
		}
		return []string{"good"}, nil
	})

	f.Refresh(context.Background(), filter.Empty(10))
	fail = true
	f.Refresh(context.Background(), filter.Empty(10))

	s := f.Slice()
	assert.Equal(t, StatusError, s.Status)
	require.NotNil(t, s.Err)
	assert.Equal(t, apperror.CodeNetwork, s.Err.Code)
	assert.Equal(t, []string{"good"}, s.Data, "stale data stays renderable next to the error")
	assert.True(t, s.Loaded)
}

func TestFetcher_ErrorBeforeFirstLoadLeavesZeroData(t *testing.T) {
	f := NewFetcher(KindPharmacySales, func(ctx context.Context, c filter.Criteria) ([]string, error) {
		return nil, errors.New("boom")
	})

	f.Refresh(context.Background(), filter.Empty(10))

	s := f.Slice()
	assert.Equal(t, StatusError, s.Status)
	assert.False(t, s.Loaded)
	assert.Nil(t, s.Data)
	require.NotNil(t, s.Err)
	assert.Equal(t, apperror.CodeInternal, s.Err.Code, "untyped errors wrap as internal")
}

func TestFetcher_RecoversAfterError(t *testing.T) {
	var fail bool
	f := NewFetcher(KindProductSales, func(ctx context.Context, c filter.Criteria) ([]string, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return []string{"recovered"}, nil
	})

	fail = true
	f.Refresh(context.Background(), filter.Empty(10))
	fail = false
	f.Refresh(context.Background(), filter.Empty(10))

	s := f.Slice()
	assert.Equal(t, StatusLoaded, s.Status)
	assert.Nil(t, s.Err)
	assert.Equal(t, []string{"recovered"}, s.Data)
}
