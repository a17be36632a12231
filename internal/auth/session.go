package auth

import (
	"sync"
	"time"
)

// Session is the server-side record behind one issued token. Besides the
// revocation state it carries the dashboard state remembered across reloads:
// the index of the tab the user last had open.
type Session struct {
	JTI        string
	Username   string
	ExpiresAt  time.Time
	RevokedAt  *time.Time
	ActiveView int
}

// Sessions is an in-process registry keyed by jti. The backing stores are
// flat files owned by this process, so sessions do not outlive it.
type Sessions struct {
	mu   sync.Mutex
	byID map[string]*Session
	now  func() time.Time
}

func NewSessions() *Sessions {
	return &Sessions{byID: make(map[string]*Session), now: time.Now}
}

func (s *Sessions) Register(jti, username string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[jti] = &Session{JTI: jti, Username: username, ExpiresAt: expiresAt}
	s.pruneLocked()
}

// Valid reports whether the session exists and is neither revoked nor expired.
func (s *Sessions) Valid(jti string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[jti]
	if !ok {
		return false
	}
	if sess.RevokedAt != nil || s.now().After(sess.ExpiresAt) {
		return false
	}
	return true
}

func (s *Sessions) Revoke(jti string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.byID[jti]; ok {
		now := s.now()
		sess.RevokedAt = &now
	}
}

func (s *Sessions) ActiveView(jti string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.byID[jti]; ok {
		return sess.ActiveView
	}
	return 0
}

func (s *Sessions) SetActiveView(jti string, view int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.byID[jti]; ok {
		sess.ActiveView = view
	}
}

func (s *Sessions) pruneLocked() {
	now := s.now()
	for id, sess := range s.byID {
		if now.After(sess.ExpiresAt) {
			delete(s.byID, id)
		}
	}
}
