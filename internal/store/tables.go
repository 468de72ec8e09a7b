package store

import (
	"sync"

	"catview/domain/catalog"
	"catview/domain/core"
)

// TableStore caches parsed tables in memory, keyed by dataset and sheet.
// Tables are read-only after load, so readers share the snapshot without
// further locking.
type TableStore struct {
	mu     sync.RWMutex
	tables map[tableKey]*catalog.Table
}

type tableKey struct {
	dataset core.DatasetID
	sheet   string
}

// NewTableStore creates an empty table cache
func NewTableStore() *TableStore {
	return &TableStore{tables: make(map[tableKey]*catalog.Table)}
}

// Get returns the cached table for a dataset sheet, if loaded
func (s *TableStore) Get(dataset core.DatasetID, sheet string) (*catalog.Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	table, ok := s.tables[tableKey{dataset: dataset, sheet: sheet}]
	return table, ok
}

// Put caches a loaded table
func (s *TableStore) Put(dataset core.DatasetID, sheet string, table *catalog.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[tableKey{dataset: dataset, sheet: sheet}] = table
}

// Drop evicts every cached sheet of a dataset
func (s *TableStore) Drop(dataset core.DatasetID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.tables {
		if key.dataset == dataset {
			delete(s.tables, key)
		}
	}
}
