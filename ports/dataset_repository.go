package ports

import (
	"context"

	"catview/domain/catalog"
	"catview/domain/core"
)

// DatasetRepository persists dataset metadata
type DatasetRepository interface {
	Create(ctx context.Context, ds *catalog.Dataset) error
	GetByID(ctx context.Context, id core.DatasetID) (*catalog.Dataset, error)
	List(ctx context.Context, limit, offset int) ([]*catalog.Dataset, error)
	Delete(ctx context.Context, id core.DatasetID) error
}
