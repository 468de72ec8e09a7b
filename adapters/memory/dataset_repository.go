package memory

import (
	"context"
	"sort"
	"sync"

	"catview/domain/catalog"
	"catview/domain/core"
	"catview/ports"
)

// datasetRepository is the in-memory DatasetRepository used when no
// DATABASE_URL is configured (single-process mode).
type datasetRepository struct {
	mu       sync.RWMutex
	datasets map[core.DatasetID]*catalog.Dataset
}

// NewDatasetRepository creates an in-memory dataset repository
func NewDatasetRepository() ports.DatasetRepository {
	return &datasetRepository{datasets: make(map[core.DatasetID]*catalog.Dataset)}
}

func (r *datasetRepository) Create(ctx context.Context, ds *catalog.Dataset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *ds
	r.datasets[ds.ID] = &copied
	return nil
}

func (r *datasetRepository) GetByID(ctx context.Context, id core.DatasetID) (*catalog.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ds, ok := r.datasets[id]
	if !ok {
		return nil, core.NewNotFoundError("dataset", id.String())
	}
	copied := *ds
	return &copied, nil
}

func (r *datasetRepository) List(ctx context.Context, limit, offset int) ([]*catalog.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*catalog.Dataset, 0, len(r.datasets))
	for _, ds := range r.datasets {
		copied := *ds
		all = append(all, &copied)
	}
	// Newest first, matching the Postgres adapter's ordering.
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *datasetRepository) Delete(ctx context.Context, id core.DatasetID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.datasets[id]; !ok {
		return core.NewNotFoundError("dataset", id.String())
	}
	delete(r.datasets, id)
	return nil
}
