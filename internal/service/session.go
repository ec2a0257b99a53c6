package service

import (
	"sync"
	"time"

	"github.com/walex4242/godheranca-storefront/internal/domain"
)

const (
	// DefaultSessionTTL is how long an idle session survives.
	DefaultSessionTTL = 2 * time.Hour

	cleanupInterval = time.Minute
)

// Session is one shopper's in-memory state: the cart, the store it belongs
// to, and the shopper's resolved location. Sessions are never persisted;
// checkout or expiry discards them.
type Session struct {
	ID       string
	StoreID  string
	Location *domain.GeoPoint
	Cart     domain.Cart
	LastSeen time.Time
}

// SessionStore holds live sessions, guarded by a single lock. Expired
// sessions are swept by a background loop.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	s := &SessionStore{
		sessions:    make(map[string]*Session),
		ttl:         ttl,
		stopCleanup: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

func (s *SessionStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireSessions()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *SessionStore) expireSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.ttl)
	for id, session := range s.sessions {
		if session.LastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

// Update runs fn on the session under the store lock, creating the session
// first if needed. All mutations go through here.
func (s *SessionStore) Update(id string, fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		session = &Session{ID: id}
		s.sessions[id] = session
	}
	session.LastSeen = time.Now()
	fn(session)
}

// UpdateExisting runs fn on the session under the store lock, reporting
// whether the session exists. Unlike Update it never creates one, so probing
// an unknown session leaves no trace behind.
func (s *SessionStore) UpdateExisting(id string, fn func(*Session)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return false
	}
	session.LastSeen = time.Now()
	fn(session)
	return true
}

// Snapshot returns a copy of the session whose cart is independent of the
// stored one. The second result reports whether the session exists.
func (s *SessionStore) Snapshot(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}

	snapshot := *session
	snapshot.Cart = session.Cart.Clone()
	return snapshot, true
}

// Close stops the cleanup loop.
func (s *SessionStore) Close() {
	close(s.stopCleanup)
	s.wg.Wait()
}
