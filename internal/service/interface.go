package service

import (
	"context"

	"github.com/imbaesible/lets-meet-server/internal/domain"
)

// Transport is the connection layer the dispatcher relays events through.
// It can address one connection, manage a room's fanout group, and address
// every connection in a room except the sender. *hub.Hub implements it.
type Transport interface {
	SendToClient(clientID string, message interface{}) error
	BroadcastToRoom(roomID string, message interface{}, exclude string) error
	JoinRoom(clientID, roomID string)
	LeaveRoom(clientID, roomID string)
}

// SignalService is the protocol state machine: it validates inbound events,
// mutates the room registry and chat log, and computes the fanout.
type SignalService interface {
	HandleCreateRoom(ctx context.Context, sess *domain.Session, peerID, userName string) error
	HandleJoinRoom(ctx context.Context, sess *domain.Session, roomID, peerID, userName string) error
	HandleStartSharing(ctx context.Context, sess *domain.Session, roomID, peerID string) error
	HandleStopSharing(ctx context.Context, sess *domain.Session, roomID string) error
	HandleSendMessage(ctx context.Context, sess *domain.Session, roomID string, msg domain.ChatMessage) error
	HandleChangeName(ctx context.Context, sess *domain.Session, roomID, peerID, userName string) error
	HandleDisconnect(ctx context.Context, sess *domain.Session) error
}
