package repository

import (
	"context"
	"time"

	"github.com/chhatrapati/linkup/internal/entity"
	gocache "github.com/patrickmn/go-cache"
)

// SessionRepository is the keyed session storage contract.
type SessionRepository interface {
	CreateSession(ctx context.Context, session entity.Session) (*entity.Session, error)
	GetSessionByUserID(ctx context.Context, userID string) (*entity.Session, error)
	UpdateSession(ctx context.Context, session entity.Session) error
}

// SessionCache keeps sessions in process memory, keyed by user ID. Entries
// never expire and nothing evicts them, so the map grows for the lifetime
// of the process. That is a known limitation of the service, not something
// this layer papers over.
type SessionCache struct {
	cache *gocache.Cache
}

func NewSessionCache() *SessionCache {
	return &SessionCache{
		// NoExpiration for both TTL and cleanup interval: no janitor runs.
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// CreateSession stores the session under its user ID, overwriting any prior
// session for the same user. Returns a detached copy.
func (r *SessionCache) CreateSession(_ context.Context, session entity.Session) (*entity.Session, error) {
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now
	if session.Answers == nil {
		session.Answers = make(map[string]string)
	}

	r.cache.Set(session.UserID, cloneSession(session), gocache.NoExpiration)

	stored := cloneSession(session)
	return &stored, nil
}

// GetSessionByUserID returns a detached copy of the user's session, or
// entity.ErrSessionNotFound.
func (r *SessionCache) GetSessionByUserID(_ context.Context, userID string) (*entity.Session, error) {
	raw, found := r.cache.Get(userID)
	if !found {
		return nil, entity.ErrSessionNotFound
	}

	session := cloneSession(raw.(entity.Session))
	return &session, nil
}

// UpdateSession writes the session back. The session must already exist.
func (r *SessionCache) UpdateSession(_ context.Context, session entity.Session) error {
	if _, found := r.cache.Get(session.UserID); !found {
		return entity.ErrSessionNotFound
	}

	session.UpdatedAt = time.Now().UTC()
	r.cache.Set(session.UserID, cloneSession(session), gocache.NoExpiration)
	return nil
}

// cloneSession copies the session including its answers map so cached state
// is never shared with callers.
func cloneSession(session entity.Session) entity.Session {
	answers := make(map[string]string, len(session.Answers))
	for field, value := range session.Answers {
		answers[field] = value
	}
	session.Answers = answers
	return session
}
