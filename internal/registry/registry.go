package registry

import (
	"sync"

	"github.com/google/uuid"

	"github.com/imbaesible/lets-meet-server/internal/domain"
)

// Registry is the single source of truth for room membership. It maps room
// IDs to their participant sets. Rooms live for the lifetime of the process:
// they are never deleted, even when the last participant leaves.
//
// The registry guards the room index with an RWMutex and each room's
// participant set with its own mutex, so concurrent mutations to different
// rooms never contend and mutations to the same room are linearizable.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*room
}

type room struct {
	mu           sync.Mutex
	participants map[string]domain.Participant
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		rooms: make(map[string]*room),
	}
}

// CreateRoom allocates a fresh collision-resistant room ID, inserts an empty
// room under it, and returns the ID.
func (r *Registry) CreateRoom() string {
	id := uuid.New().String()
	r.ensure(id)
	return id
}

// EnsureRoom creates an empty room under id if it does not exist yet.
// Idempotent.
func (r *Registry) EnsureRoom(id string) {
	r.ensure(id)
}

// Exists reports whether a room is known to the registry.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[id]
	return ok
}

// Join inserts or overwrites the participant under (roomID, peerID) and
// returns a snapshot of the room's full participant set, including the
// joiner. Re-join by the same peer ID replaces the existing record. The room
// is created if it does not exist.
func (r *Registry) Join(roomID string, p domain.Participant) map[string]domain.Participant {
	rm := r.ensure(roomID)

	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.participants[p.PeerID] = p
	return snapshot(rm.participants)
}

// Leave removes the participant from the room. No-op if either the room or
// the participant is unknown. The room is kept even if it becomes empty.
func (r *Registry) Leave(roomID, peerID string) {
	rm := r.get(roomID)
	if rm == nil {
		return
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()
	delete(rm.participants, peerID)
}

// Rename updates a participant's display name. It reports whether the
// participant existed; callers use this to suppress the broadcast when the
// rename did not happen.
func (r *Registry) Rename(roomID, peerID, userName string) bool {
	rm := r.get(roomID)
	if rm == nil {
		return false
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()
	p, ok := rm.participants[peerID]
	if !ok {
		return false
	}
	p.UserName = userName
	rm.participants[peerID] = p
	return true
}

// Participants returns a read-only snapshot of the room's participant set,
// empty if the room is unknown.
func (r *Registry) Participants(roomID string) map[string]domain.Participant {
	rm := r.get(roomID)
	if rm == nil {
		return map[string]domain.Participant{}
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()
	return snapshot(rm.participants)
}

func (r *Registry) get(id string) *room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rooms[id]
}

func (r *Registry) ensure(id string) *room {
	r.mu.RLock()
	rm, ok := r.rooms[id]
	r.mu.RUnlock()
	if ok {
		return rm
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if rm, ok = r.rooms[id]; ok {
		return rm
	}
	rm = &room{participants: make(map[string]domain.Participant)}
	r.rooms[id] = rm
	return rm
}

func snapshot(m map[string]domain.Participant) map[string]domain.Participant {
	out := make(map[string]domain.Participant, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
