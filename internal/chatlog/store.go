package chatlog

import (
	"sync"

	"github.com/imbaesible/lets-meet-server/internal/domain"
)

// Store keeps an append-only chat log per room. Ordering is arrival order at
// the store, not client timestamp. Logs live for the lifetime of the process.
type Store struct {
	mu   sync.Mutex
	logs map[string][]domain.ChatMessage
}

// NewStore creates an empty chat log store.
func NewStore() *Store {
	return &Store{
		logs: make(map[string][]domain.ChatMessage),
	}
}

// Append adds a message to the room's log, creating the log if absent.
// Timestamps are clamped so the log stays monotonically non-decreasing per
// room; the stored (possibly clamped) message is returned so callers
// broadcast exactly what was appended.
func (s *Store) Append(roomID string, msg domain.ChatMessage) domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.logs[roomID]
	if n := len(log); n > 0 && msg.Timestamp < log[n-1].Timestamp {
		msg.Timestamp = log[n-1].Timestamp
	}
	s.logs[roomID] = append(log, msg)
	return msg
}

// History returns the room's full log in append order, empty if the room has
// no log yet.
func (s *Store) History(roomID string) []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.logs[roomID]
	out := make([]domain.ChatMessage, len(log))
	copy(out, log)
	return out
}
