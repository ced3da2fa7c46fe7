package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_StageDoesNotCommit(t *testing.T) {
	m := NewManager(10)

	var notifications int
	m.Subscribe(func(Criteria) { notifications++ })

	m.Stage(Update{PharmacyID: int64p(7)})
	m.Stage(Update{SearchText: strp("asp")})

	assert.Equal(t, 0, notifications)
	assert.Nil(t, m.Snapshot().PharmacyID, "committed snapshot must be untouched")
	require.NotNil(t, m.Staged().PharmacyID)
	assert.Equal(t, int64(7), *m.Staged().PharmacyID)
}

func TestManager_ApplyCommitsAndNotifiesSynchronously(t *testing.T) {
	m := NewManager(10)

	var got []Criteria
	m.Subscribe(func(c Criteria) { got = append(got, c) })

	m.Stage(Update{PharmacyID: int64p(7), StartDate: date("2024-01-01")})
	snapshot := m.Apply()

	require.Len(t, got, 1)
	assert.True(t, snapshot.Equal(got[0]))
	assert.True(t, snapshot.Equal(m.Snapshot()))
	require.NotNil(t, snapshot.PharmacyID)
	assert.Equal(t, int64(7), *snapshot.PharmacyID)
}

func TestManager_ClearYieldsCanonicalEmptySnapshot(t *testing.T) {
	m := NewManager(25)

	m.Stage(Update{
		PharmacyID: int64p(3),
		StartDate:  date("2024-01-01"),
		EndDate:    date("2024-12-31"),
		EntryType:  entryp(EntryManual),
		SearchText: strp("ibu"),
	})
	m.Apply()

	cleared := m.Clear()

	assert.True(t, cleared.Equal(Empty(25)), "clear must be a hard reset, not a merge")
	assert.True(t, m.Staged().Equal(Empty(25)), "staged edits must be dropped too")
}

func TestManager_ClearNotifiesSubscribers(t *testing.T) {
	m := NewManager(10)

	var notifications int
	m.Subscribe(func(Criteria) { notifications++ })

	m.Apply()
	m.Clear()

	assert.Equal(t, 2, notifications)
}
