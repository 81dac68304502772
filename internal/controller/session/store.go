package session

import (
	"sync"
	"time"
)

// Store is the session-store abstraction the dispatcher works against.
// The production implementation is in-memory; tests may substitute it.
type Store interface {
	Get(chatID int64) (*Session, bool)
	Put(s *Session)
	Delete(chatID int64)
	Sweep(maxIdle time.Duration) int
}

// MemoryStore keeps sessions in a process-lifetime map keyed by chat ID.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[int64]*Session),
		now:      time.Now,
	}
}

// Get returns the session for a chat, touching its activity timestamp.
func (m *MemoryStore) Get(chatID int64) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[chatID]
	if !ok {
		return nil, false
	}
	s.LastActivity = m.now()
	return s, true
}

// Put stores (or replaces) a session, stamping its activity timestamp.
func (m *MemoryStore) Put(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s.LastActivity = m.now()
	m.sessions[s.ChatID] = s
}

// Delete removes a chat's session.
func (m *MemoryStore) Delete(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, chatID)
}

// Sweep deletes every session idle longer than maxIdle and returns the
// number removed.
func (m *MemoryStore) Sweep(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-maxIdle)
	removed := 0
	for chatID, s := range m.sessions {
		if s.LastActivity.Before(cutoff) {
			delete(m.sessions, chatID)
			removed++
		}
	}
	return removed
}

// PostingStore keeps admin posting sessions, one per admin chat.
type PostingStore struct {
	mu       sync.Mutex
	sessions map[int64]*PostingSession
}

// NewPostingStore creates an empty posting-session store.
func NewPostingStore() *PostingStore {
	return &PostingStore{sessions: make(map[int64]*PostingSession)}
}

// Get returns the active posting session for an admin chat, or nil.
func (p *PostingStore) Get(chatID int64) *PostingSession {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sessions[chatID]
}

// Put stores a posting session.
func (p *PostingStore) Put(s *PostingSession) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessions[s.ChatID] = s
}

// Delete discards an admin's posting session (cancel or completion).
func (p *PostingStore) Delete(chatID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.sessions, chatID)
}
