package kafka

import "context"

// RoomEvent represents a room lifecycle change for downstream consumers
// (presence dashboards, analytics). It mirrors what the relay broadcasts to
// peers but on a durable channel; the relay itself never reads these back.
type RoomEvent struct {
	Type      string `json:"type"` // "room_created" | "peer_joined" | "peer_left"
	RoomID    string `json:"room_id"`
	PeerID    string `json:"peer_id,omitempty"`
	Reason    string `json:"reason,omitempty"` // "explicit" | "disconnect"
	Timestamp int64  `json:"timestamp"`
}

// Event types
const (
	EventRoomCreated = "room_created"
	EventPeerJoined  = "peer_joined"
	EventPeerLeft    = "peer_left"
)

// Leave reasons
const (
	ReasonExplicit   = "explicit"
	ReasonDisconnect = "disconnect"
)

// RoomEventProducer defines the interface for producing room events.
type RoomEventProducer interface {
	ProduceRoomCreated(ctx context.Context, roomID string) error
	ProducePeerJoined(ctx context.Context, roomID, peerID string) error
	ProducePeerLeft(ctx context.Context, roomID, peerID, reason string) error
	Close() error
}
