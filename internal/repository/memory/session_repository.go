package memory

import (
	"time"

	"henna-assistant-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionFactory builds the state for a session id seen for the first time.
type SessionFactory func(id string) *store.Session

type SessionRepository struct {
	cache   *cache.Cache
	factory SessionFactory
}

// NewSessionRepository keeps sessions for ttl after their last use and purges
// expired items every 10 minutes.
func NewSessionRepository(ttl time.Duration, factory SessionFactory) *SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionRepository{
		cache:   cache.New(ttl, 10*time.Minute),
		factory: factory,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

// GetOrCreate returns the session for id, creating it on first use. The
// second return value reports whether it was created by this call.
func (r *SessionRepository) GetOrCreate(sessionID string) (*store.Session, bool) {
	if s, ok := r.Get(sessionID); ok {
		// Sliding expiration
		r.Save(s)
		return s, false
	}

	s := r.factory(sessionID)
	if err := r.cache.Add(sessionID, s, cache.DefaultExpiration); err != nil {
		// Another request created it first
		if existing, ok := r.Get(sessionID); ok {
			return existing, false
		}
		r.Save(s)
	}
	return s, true
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
