package ports

import (
	"context"

	"catview/domain/catalog"
	"catview/domain/core"
)

// SessionRepository persists per-viewer session state (sheet, mapping,
// selections). Sessions are small and rewritten whole on every change.
type SessionRepository interface {
	Create(ctx context.Context, session *catalog.Session) error
	GetByID(ctx context.Context, id core.SessionID) (*catalog.Session, error)
	Update(ctx context.Context, session *catalog.Session) error
	Delete(ctx context.Context, id core.SessionID) error
}
