package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vaultpass/passgen-go/internal/model"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrDuplicateID     = errors.New("session id already exists")
)

// SessionRepository keeps generator sessions in memory. Records are copied
// in and out so callers never share a *model.Session with the store.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
	now      func() time.Time
}

// NewSessionRepository creates an empty SessionRepository.
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]model.Session),
		now:      time.Now,
	}
}

// Create stores a new session.
func (r *SessionRepository) Create(ctx context.Context, s *model.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[s.ID]; exists {
		return ErrDuplicateID
	}

	now := r.now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	r.sessions[s.ID] = *s
	return nil
}

// GetByID retrieves a live session. Expired sessions are reported as not found.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*model.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok || r.expired(s) {
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

// Update replaces the stored session with s.
func (r *SessionRepository) Update(ctx context.Context, s *model.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.sessions[s.ID]
	if !ok || r.expired(existing) {
		return ErrSessionNotFound
	}

	s.CreatedAt = existing.CreatedAt
	s.UpdatedAt = r.now().UTC()
	r.sessions[s.ID] = *s
	return nil
}

// Delete removes a session. Deleting an unknown session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	return nil
}

// DeleteExpired drops every expired session and returns how many were removed.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if r.expired(s) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Count returns the number of stored sessions, expired ones included.
func (r *SessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *SessionRepository) expired(s model.Session) bool {
	return !s.ExpiresAt.IsZero() && !r.now().Before(s.ExpiresAt)
}
