package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catview/domain/catalog"
	"catview/domain/core"
)

func TestTableStoreGetPutDrop(t *testing.T) {
	s := NewTableStore()
	dataset := core.DatasetID(core.NewID())
	table := &catalog.Table{Headers: []string{"Module"}}

	_, ok := s.Get(dataset, "Sheet1")
	assert.False(t, ok)

	s.Put(dataset, "Sheet1", table)
	s.Put(dataset, "Sheet2", &catalog.Table{Headers: []string{"Segment"}})

	got, ok := s.Get(dataset, "Sheet1")
	require.True(t, ok)
	assert.Same(t, table, got)

	// Drop evicts every sheet of the dataset but nothing else.
	other := core.DatasetID(core.NewID())
	s.Put(other, "Sheet1", table)
	s.Drop(dataset)

	_, ok = s.Get(dataset, "Sheet1")
	assert.False(t, ok)
	_, ok = s.Get(dataset, "Sheet2")
	assert.False(t, ok)
	_, ok = s.Get(other, "Sheet1")
	assert.True(t, ok)
}
