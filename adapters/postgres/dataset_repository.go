package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"catview/domain/catalog"
	"catview/domain/core"
	"catview/ports"
)

// datasetRepository implements the DatasetRepository interface
type datasetRepository struct {
	db *sqlx.DB
}

// NewDatasetRepository creates a new dataset repository
func NewDatasetRepository(db *sqlx.DB) ports.DatasetRepository {
	return &datasetRepository{db: db}
}

// Create inserts a new dataset into the database
func (r *datasetRepository) Create(ctx context.Context, ds *catalog.Dataset) error {
	sheetsJSON, err := json.Marshal(ds.Sheets)
	if err != nil {
		return fmt.Errorf("failed to marshal sheets: %w", err)
	}

	query := `INSERT INTO datasets (
		id, original_filename, file_path, file_size, mime_type, sheets, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		ds.ID, ds.OriginalFilename, ds.FilePath, ds.FileSize, ds.MimeType, sheetsJSON, ds.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to create dataset: %w", err)
	}

	return nil
}

// GetByID retrieves a dataset by its ID
func (r *datasetRepository) GetByID(ctx context.Context, id core.DatasetID) (*catalog.Dataset, error) {
	query := `SELECT
		id, original_filename, COALESCE(file_path, '') AS file_path,
		COALESCE(file_size, 0) AS file_size, COALESCE(mime_type, '') AS mime_type,
		sheets, created_at
	FROM datasets WHERE id = $1`

	var ds catalog.Dataset
	var sheetsJSON []byte
	var createdAt time.Time

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ds.ID, &ds.OriginalFilename, &ds.FilePath, &ds.FileSize, &ds.MimeType, &sheetsJSON, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.NewNotFoundError("dataset", id.String())
		}
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}

	if len(sheetsJSON) > 0 {
		if err := json.Unmarshal(sheetsJSON, &ds.Sheets); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sheets: %w", err)
		}
	}
	ds.CreatedAt = core.NewTimestamp(createdAt)

	return &ds, nil
}

// List retrieves datasets with pagination, newest first
func (r *datasetRepository) List(ctx context.Context, limit, offset int) ([]*catalog.Dataset, error) {
	query := `SELECT
		id, original_filename, COALESCE(file_path, '') AS file_path,
		COALESCE(file_size, 0) AS file_size, COALESCE(mime_type, '') AS mime_type,
		sheets, created_at
	FROM datasets
	ORDER BY created_at DESC
	LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query datasets: %w", err)
	}
	defer rows.Close()

	var datasets []*catalog.Dataset
	for rows.Next() {
		var ds catalog.Dataset
		var sheetsJSON []byte
		var createdAt time.Time

		if err := rows.Scan(&ds.ID, &ds.OriginalFilename, &ds.FilePath, &ds.FileSize, &ds.MimeType, &sheetsJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan dataset: %w", err)
		}
		if len(sheetsJSON) > 0 {
			if err := json.Unmarshal(sheetsJSON, &ds.Sheets); err != nil {
				return nil, fmt.Errorf("failed to unmarshal sheets: %w", err)
			}
		}
		ds.CreatedAt = core.NewTimestamp(createdAt)

		datasets = append(datasets, &ds)
	}

	return datasets, rows.Err()
}

// Delete removes a dataset by ID
func (r *datasetRepository) Delete(ctx context.Context, id core.DatasetID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return core.NewNotFoundError("dataset", id.String())
	}
	return nil
}
