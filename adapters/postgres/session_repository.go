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

// sessionRepository implements the SessionRepository interface
type sessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sqlx.DB) ports.SessionRepository {
	return &sessionRepository{db: db}
}

// Create inserts a new session into the database
func (r *sessionRepository) Create(ctx context.Context, session *catalog.Session) error {
	mappingJSON, selectionsJSON, err := marshalSessionState(session)
	if err != nil {
		return err
	}

	query := `INSERT INTO sessions (
		id, dataset_id, sheet, mapping, selections, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		session.ID, session.DatasetID, session.Sheet, mappingJSON, selectionsJSON,
		session.CreatedAt.Time(), session.UpdatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetByID retrieves a session by its ID
func (r *sessionRepository) GetByID(ctx context.Context, id core.SessionID) (*catalog.Session, error) {
	query := `SELECT id, dataset_id, COALESCE(sheet, '') AS sheet, mapping, selections, created_at, updated_at
	FROM sessions WHERE id = $1`

	var session catalog.Session
	var mappingJSON, selectionsJSON []byte
	var createdAt, updatedAt time.Time

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID, &session.DatasetID, &session.Sheet, &mappingJSON, &selectionsJSON, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.NewNotFoundError("session", id.String())
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if len(mappingJSON) > 0 {
		if err := json.Unmarshal(mappingJSON, &session.Mapping); err != nil {
			return nil, fmt.Errorf("failed to unmarshal mapping: %w", err)
		}
	}
	if len(selectionsJSON) > 0 {
		if err := json.Unmarshal(selectionsJSON, &session.Selections); err != nil {
			return nil, fmt.Errorf("failed to unmarshal selections: %w", err)
		}
	}
	session.CreatedAt = core.NewTimestamp(createdAt)
	session.UpdatedAt = core.NewTimestamp(updatedAt)

	return &session, nil
}

// Update rewrites the session's mutable state
func (r *sessionRepository) Update(ctx context.Context, session *catalog.Session) error {
	mappingJSON, selectionsJSON, err := marshalSessionState(session)
	if err != nil {
		return err
	}

	query := `UPDATE sessions SET sheet = $2, mapping = $3, selections = $4, updated_at = $5 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		session.ID, session.Sheet, mappingJSON, selectionsJSON, session.UpdatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return core.NewNotFoundError("session", session.ID.String())
	}
	return nil
}

// Delete removes a session by ID
func (r *sessionRepository) Delete(ctx context.Context, id core.SessionID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return core.NewNotFoundError("session", id.String())
	}
	return nil
}

func marshalSessionState(session *catalog.Session) (mappingJSON, selectionsJSON []byte, err error) {
	mappingJSON, err = json.Marshal(session.Mapping)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal mapping: %w", err)
	}
	selectionsJSON, err = json.Marshal(session.Selections)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal selections: %w", err)
	}
	return mappingJSON, selectionsJSON, nil
}
