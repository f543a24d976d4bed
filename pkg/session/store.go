package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"maqsad/pkg/normalize"
)

// Session is the transient state for one inbound message: the utterance, its
// transcript, the routed drafts and their buckets. It lives until the user
// confirms/rejects or the TTL elapses.
type Session struct {
	ID         string
	UserID     int
	Utterance  string
	Transcript string
	Decision   normalize.Decision
	CardID     int // message id of the confirmation card, for edits
	CreatedAt  time.Time
}

// Store keeps extraction sessions keyed by correlation id. It is the only
// shared mutable state between concurrent user pipelines.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Put registers a new session and returns its correlation id.
func (s *Store) Put(userID int, utterance, transcript string, decision normalize.Decision) *Session {
	sess := &Session{
		ID:         uuid.NewString(),
		UserID:     userID,
		Utterance:  utterance,
		Transcript: transcript,
		Decision:   decision,
		CreatedAt:  time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess

	return sess
}

// Get returns a live session or nil when unknown or expired.
func (s *Store) Get(id string) *Session {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil
	}
	if time.Since(sess.CreatedAt) > s.ttl {
		s.Delete(id)
		return nil
	}

	return sess
}

// Delete discards a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Sweep evicts expired sessions; called from housekeeping.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	cutoff := time.Now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if sess.CreatedAt.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}

	return n
}
