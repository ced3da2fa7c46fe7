package pharmacy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	refs  []Ref
	err   error
	calls int
}

func (f *fakeLoader) ListPharmacies(ctx context.Context) ([]Ref, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.refs, nil
}

func TestDirectory_LoadCachesList(t *testing.T) {
	loader := &fakeLoader{refs: []Ref{
		{ID: 1, CommercialName: "Farmacia Central", Active: true},
		{ID: 2, CommercialName: "Botica del Sur", Active: true},
	}}
	d := NewDirectory(loader)

	assert.False(t, d.Available())
	require.NoError(t, d.Load(context.Background()))

	assert.True(t, d.Available())
	assert.Len(t, d.All(), 2)

	r, ok := d.Get(2)
	require.True(t, ok)
	assert.Equal(t, "Botica del Sur", r.CommercialName)

	_, ok = d.Get(99)
	assert.False(t, ok)
}

func TestDirectory_LoadFailureDegrades(t *testing.T) {
	loader := &fakeLoader{err: errors.New("connection refused")}
	d := NewDirectory(loader)

	err := d.Load(context.Background())
	require.Error(t, err)
	assert.False(t, d.Available())
	assert.Empty(t, d.All())
}

func TestDirectory_RefreshSwapsList(t *testing.T) {
	loader := &fakeLoader{refs: []Ref{{ID: 1, CommercialName: "Farmacia Central"}}}
	d := NewDirectory(loader)
	require.NoError(t, d.Load(context.Background()))

	loader.refs = []Ref{
		{ID: 1, CommercialName: "Farmacia Central"},
		{ID: 3, CommercialName: "Farmacia del Norte"},
	}
	require.NoError(t, d.Refresh(context.Background()))

	assert.Len(t, d.All(), 2)
	_, ok := d.Get(3)
	assert.True(t, ok)
	assert.Equal(t, 2, loader.calls)
}

func TestDirectory_FailedRefreshKeepsPreviousList(t *testing.T) {
	loader := &fakeLoader{refs: []Ref{{ID: 1, CommercialName: "Farmacia Central"}}}
	d := NewDirectory(loader)
	require.NoError(t, d.Load(context.Background()))

	loader.err = errors.New("timeout")
	require.Error(t, d.Refresh(context.Background()))

	assert.True(t, d.Available(), "previous successful load still serves")
	assert.Len(t, d.All(), 1)
}
