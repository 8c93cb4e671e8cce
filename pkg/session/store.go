package session

import (
	"sync"
)

// Session holds the browsing state for one chat: the profile link currently
// being browsed and the images not yet shown, in extraction order.
type Session struct {
	SourceURL string
	Pending   []string
}

// Store maps chat identities to their browsing sessions. The store owns all
// Session values; callers receive copies and must write mutations back via
// Put or UpdatePending. A per-identity mutex serializes read-modify-write
// cycles so concurrent events for the same chat cannot interleave, while
// different chats proceed fully in parallel.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	locks    map[int64]*sync.Mutex
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// Get returns a copy of the session for the given chat, if one exists
func (s *Store) Get(chatID int64) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		return Session{}, false
	}
	return Session{
		SourceURL: sess.SourceURL,
		Pending:   append([]string(nil), sess.Pending...),
	}, true
}

// Put unconditionally replaces the session for the given chat. A new valid
// link submission atomically replaces whatever was being browsed before.
func (s *Store) Put(chatID int64, sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[chatID] = &Session{
		SourceURL: sess.SourceURL,
		Pending:   append([]string(nil), sess.Pending...),
	}
}

// UpdatePending replaces only the pending queue of an existing session.
// No-op when the chat has no session.
func (s *Store) UpdatePending(chatID int64, pending []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		return
	}
	sess.Pending = append([]string(nil), pending...)
}

// Len returns the number of tracked sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// WithLock runs fn while holding the mutex for the given chat identity.
// Get-then-update sequences on the same chat must run inside fn, or two
// concurrent "next page" events could both read the same pending queue and
// duplicate or skip a page. Locks are per identity; chats never block each
// other.
func (s *Store) WithLock(chatID int64, fn func()) {
	m := s.lockFor(chatID)
	m.Lock()
	defer m.Unlock()
	fn()
}

// lockFor returns the mutex for a chat identity, creating it on first use
func (s *Store) lockFor(chatID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.locks[chatID]
	if !ok {
		m = &sync.Mutex{}
		s.locks[chatID] = m
	}
	return m
}
