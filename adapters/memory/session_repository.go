package memory

import (
	"context"
	"sync"

	"catview/domain/catalog"
	"catview/domain/core"
	"catview/ports"
)

// sessionRepository is the in-memory SessionRepository used when no
// DATABASE_URL is configured.
type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*catalog.Session
}

// NewSessionRepository creates an in-memory session repository
func NewSessionRepository() ports.SessionRepository {
	return &sessionRepository{sessions: make(map[core.SessionID]*catalog.Session)}
}

func (r *sessionRepository) Create(ctx context.Context, session *catalog.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = cloneSession(session)
	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id core.SessionID) (*catalog.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, core.NewNotFoundError("session", id.String())
	}
	return cloneSession(session), nil
}

func (r *sessionRepository) Update(ctx context.Context, session *catalog.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session.ID]; !ok {
		return core.NewNotFoundError("session", session.ID.String())
	}
	r.sessions[session.ID] = cloneSession(session)
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id core.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return core.NewNotFoundError("session", id.String())
	}
	delete(r.sessions, id)
	return nil
}

// cloneSession copies the session deeply enough that callers cannot mutate
// stored state through the returned pointer.
func cloneSession(session *catalog.Session) *catalog.Session {
	copied := *session
	copied.Mapping = make(catalog.Mapping, len(session.Mapping))
	for role, col := range session.Mapping {
		copied.Mapping[role] = col
	}
	copied.Selections = append(catalog.Selections(nil), session.Selections...)
	return &copied
}
