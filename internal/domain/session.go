package domain

import (
	"sync"
	"time"
)

// Session is the binding between one WebSocket connection and at most one
// (room, peer) membership. It exists only for the connection's lifetime and
// decides which leave-path runs when the connection drops.
type Session struct {
	ID           string
	RoomID       string
	PeerID       string
	UserName     string
	CreatedAt    time.Time
	LastActiveAt time.Time
	mu           sync.RWMutex
}

// NewSession creates an unbound session for a connection.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		CreatedAt:    now,
		LastActiveAt: now,
	}
}

// Bind attaches the session to a (room, peer) pair.
func (s *Session) Bind(roomID, peerID, userName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RoomID = roomID
	s.PeerID = peerID
	s.UserName = userName
	s.LastActiveAt = time.Now()
}

// Unbind clears the membership. No-op if the session was never bound.
func (s *Session) Unbind() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RoomID = ""
	s.PeerID = ""
	s.LastActiveAt = time.Now()
}

// Bound reports whether the session currently belongs to a room.
func (s *Session) Bound() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.RoomID != ""
}

// Membership returns the current (room, peer) pair. Both are empty while
// the session is unbound.
func (s *Session) Membership() (roomID, peerID string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.RoomID, s.PeerID
}

// UpdateActivity updates the last active timestamp.
func (s *Session) UpdateActivity() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastActiveAt = time.Now()
}
