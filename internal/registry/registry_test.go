package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imbaesible/lets-meet-server/internal/domain"
)

func TestRegistry_CreateRoom(t *testing.T) {
	req := require.New(t)
	reg := New()

	id1 := reg.CreateRoom()
	id2 := reg.CreateRoom()

	req.NotEmpty(id1)
	req.NotEmpty(id2)
	req.NotEqual(id1, id2)
	req.True(reg.Exists(id1))
	req.True(reg.Exists(id2))
	req.Empty(reg.Participants(id1))
}

func TestRegistry_EnsureRoom_Idempotent(t *testing.T) {
	req := require.New(t)
	reg := New()

	reg.EnsureRoom("room-a")
	reg.Join("room-a", domain.Participant{PeerID: "p1"})
	reg.EnsureRoom("room-a")

	// Ensuring an existing room must not wipe its members
	req.Len(reg.Participants("room-a"), 1)
}

func TestRegistry_Join_ReturnsSnapshotIncludingJoiner(t *testing.T) {
	req := require.New(t)
	reg := New()
	roomID := reg.CreateRoom()

	reg.Join(roomID, domain.Participant{PeerID: "p1", UserName: "Alice"})
	snap := reg.Join(roomID, domain.Participant{PeerID: "p2", UserName: "Bob"})

	req.Len(snap, 2)
	req.Equal("Alice", snap["p1"].UserName)
	req.Equal("Bob", snap["p2"].UserName)
}

func TestRegistry_Join_UnknownRoomCreatesIt(t *testing.T) {
	req := require.New(t)
	reg := New()

	snap := reg.Join("never-seen", domain.Participant{PeerID: "p1"})

	req.True(reg.Exists("never-seen"))
	req.Len(snap, 1)
}

func TestRegistry_Rejoin_ReplacesNotDuplicates(t *testing.T) {
	req := require.New(t)
	reg := New()
	roomID := reg.CreateRoom()

	reg.Join(roomID, domain.Participant{PeerID: "p1", UserName: "Alice"})
	snap := reg.Join(roomID, domain.Participant{PeerID: "p1", UserName: "Alicia"})

	req.Len(snap, 1)
	req.Equal("Alicia", snap["p1"].UserName)
}

func TestRegistry_Leave(t *testing.T) {
	req := require.New(t)
	reg := New()
	roomID := reg.CreateRoom()
	reg.Join(roomID, domain.Participant{PeerID: "p1"})
	reg.Join(roomID, domain.Participant{PeerID: "p2"})

	reg.Leave(roomID, "p1")

	snap := reg.Participants(roomID)
	req.Len(snap, 1)
	req.Contains(snap, "p2")
}

func TestRegistry_Leave_EmptyRoomIsKept(t *testing.T) {
	req := require.New(t)
	reg := New()
	roomID := reg.CreateRoom()
	reg.Join(roomID, domain.Participant{PeerID: "p1"})

	reg.Leave(roomID, "p1")

	req.True(reg.Exists(roomID))
	req.Empty(reg.Participants(roomID))
}

func TestRegistry_Leave_NoOps(t *testing.T) {
	reg := New()
	roomID := reg.CreateRoom()
	reg.Join(roomID, domain.Participant{PeerID: "p1"})

	// Unknown room and unknown participant are both no-ops
	reg.Leave("no-such-room", "p1")
	reg.Leave(roomID, "no-such-peer")

	require.Len(t, reg.Participants(roomID), 1)
}

func TestRegistry_Rename(t *testing.T) {
	req := require.New(t)
	reg := New()
	roomID := reg.CreateRoom()
	reg.Join(roomID, domain.Participant{PeerID: "p1", UserName: "Alice"})

	req.True(reg.Rename(roomID, "p1", "Alicia"))
	req.Equal("Alicia", reg.Participants(roomID)["p1"].UserName)
}

func TestRegistry_Rename_AbsentParticipant(t *testing.T) {
	req := require.New(t)
	reg := New()
	roomID := reg.CreateRoom()
	reg.Join(roomID, domain.Participant{PeerID: "p1", UserName: "Alice"})

	req.False(reg.Rename(roomID, "ghost", "Casper"))
	req.False(reg.Rename("no-such-room", "p1", "Alicia"))

	// State unchanged
	req.Equal("Alice", reg.Participants(roomID)["p1"].UserName)
}

func TestRegistry_Participants_UnknownRoomIsEmpty(t *testing.T) {
	reg := New()
	require.Empty(t, reg.Participants("no-such-room"))
}

func TestRegistry_Participants_SnapshotIsDetached(t *testing.T) {
	req := require.New(t)
	reg := New()
	roomID := reg.CreateRoom()
	reg.Join(roomID, domain.Participant{PeerID: "p1"})

	snap := reg.Participants(roomID)
	snap["p2"] = domain.Participant{PeerID: "p2"}

	req.Len(reg.Participants(roomID), 1)
}

func TestRegistry_JoinLeaveSequence(t *testing.T) {
	req := require.New(t)
	reg := New()
	roomID := reg.CreateRoom()

	// A sequence of joins and leaves ends with exactly the unmatched joins
	reg.Join(roomID, domain.Participant{PeerID: "p1"})
	reg.Join(roomID, domain.Participant{PeerID: "p2"})
	reg.Join(roomID, domain.Participant{PeerID: "p3"})
	reg.Leave(roomID, "p2")
	reg.Join(roomID, domain.Participant{PeerID: "p4"})
	reg.Leave(roomID, "p1")

	snap := reg.Participants(roomID)
	req.Len(snap, 2)
	req.Contains(snap, "p3")
	req.Contains(snap, "p4")
}

func TestRegistry_ConcurrentJoins(t *testing.T) {
	req := require.New(t)
	reg := New()
	roomID := reg.CreateRoom()

	const n = 64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			reg.Join(roomID, domain.Participant{PeerID: fmt.Sprintf("p%d", i)})
		}(i)
	}
	wg.Wait()

	req.Len(reg.Participants(roomID), n)
}
