// Package sessionrepo manages data access layer of sessions.
//
// Sessions are kept in process memory only: restarting the server drops
// every session, which is exactly the lifetime the transient
// authenticated-this-session marker is supposed to have.
package sessionrepo

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Jonixmax/pokebank-go/internal/domain"
)

// RepoMem facilitates in-memory session storage.
type RepoMem struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]domain.Session
}

// NewRepoMem returns an empty in-memory session repo.
func NewRepoMem() *RepoMem {
	return &RepoMem{sessions: make(map[uuid.UUID]domain.Session)}
}

// Create stores the given session.
func (r *RepoMem) Create(ctx context.Context, sess domain.Session) (domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sess.ID] = sess

	return sess, nil
}

// Get returns the session with the given ID.
func (r *RepoMem) Get(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	return sess, nil
}

// Delete removes the session with the given ID.
func (r *RepoMem) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}

	delete(r.sessions, id)

	return nil
}
