package service

import "sync"

// roomLocks hands out one mutex per room key. The dispatcher holds a room's
// lock across the whole mutate-then-broadcast sequence, so a join snapshot
// and its fanout are atomic with respect to other events on the same room.
// Rooms are never deleted, so the lock set only grows with the room set.
type roomLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for roomID and returns its unlock function.
func (r *roomLocks) lock(roomID string) func() {
	r.mu.Lock()
	m, ok := r.locks[roomID]
	if !ok {
		m = &sync.Mutex{}
		r.locks[roomID] = m
	}
	r.mu.Unlock()

	m.Lock()
	return m.Unlock
}
