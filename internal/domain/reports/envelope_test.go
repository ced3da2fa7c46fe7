package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEnvelope(t *testing.T) {
	e := NewEnvelope([]int{1, 2, 3, 4, 5}, 2, 5, 12)
	assert.Equal(t, 2, e.CurrentPage)
	assert.Equal(t, 3, e.LastPage)
	assert.Equal(t, 6, e.From)
	assert.Equal(t, 10, e.To)
	assert.Equal(t, 12, e.Total)
}

func TestNewEnvelope_PartialLastPage(t *testing.T) {
	e := NewEnvelope([]int{1, 2}, 3, 5, 12)
	assert.Equal(t, 11, e.From)
	assert.Equal(t, 12, e.To)
	assert.Equal(t, 3, e.LastPage)
}

func TestNewEnvelope_EmptyResult(t *testing.T) {
	e := NewEnvelope([]int(nil), 1, 10, 0)
	assert.Equal(t, 0, e.From, "from is zero when the result set is empty")
	assert.Equal(t, 0, e.To)
	assert.Equal(t, 1, e.LastPage, "last page never drops below 1")
}

func TestNewEnvelope_ClampsDegenerateInput(t *testing.T) {
	e := NewEnvelope([]int{1}, 0, 0, 1)
	assert.Equal(t, 1, e.CurrentPage)
	assert.Equal(t, 1, e.PerPage)
	assert.Equal(t, 1, e.From)
	assert.Equal(t, 1, e.To)
}
