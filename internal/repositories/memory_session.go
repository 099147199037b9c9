package repositories

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resumai/internal/models"
)

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*models.Session
}

// NewMemorySessionRepository keeps sessions in process memory. Everything is
// lost on restart.
func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[uuid.UUID]*models.Session),
	}
}

func (r *memorySessionRepository) Create(session *models.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	now := time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = cloneSession(session)

	return nil
}

func (r *memorySessionRepository) FindByID(id uuid.UUID) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return cloneSession(session), nil
}

func (r *memorySessionRepository) UpdateProfile(id uuid.UUID, profile models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	session.Profile = profile
	session.UpdatedAt = time.Now()

	return nil
}

func (r *memorySessionRepository) AppendHistory(id uuid.UUID, action, details string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}

	entry := models.HistoryEntry{
		SessionID: id,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now(),
	}
	session.History = slices.Insert(session.History, 0, entry)

	return nil
}

func (r *memorySessionRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)

	return nil
}

func cloneSession(s *models.Session) *models.Session {
	out := *s
	out.History = slices.Clone(s.History)
	return &out
}
