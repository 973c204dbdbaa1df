package domain

// WebSocket event types from client.
const (
	MsgTypeCreateRoom   = "create-room"
	MsgTypeJoinRoom     = "join-room"
	MsgTypeStartSharing = "start-sharing"
	MsgTypeStopSharing  = "stop-sharing"
	MsgTypeSendMessage  = "send-message"
	MsgTypeChangeName   = "change-name"
)

// WebSocket event types to client.
const (
	MsgTypeRoomCreated        = "room-created"
	MsgTypeUserJoined         = "user-joined"
	MsgTypeGetMessages        = "get-messages"
	MsgTypeGetUsersList       = "get-users-list"
	MsgTypeUserStartedSharing = "user-started-sharing"
	MsgTypeUserStoppedSharing = "user-stopped-sharing"
	MsgTypeAddMessage         = "add-message"
	MsgTypeChangedName        = "changed-name"
	MsgTypeUserDisconnected   = "user-disconnected"
	MsgTypeError              = "error"
)

// Error codes
const (
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeRoomNotFound  = "ROOM_NOT_FOUND"
	ErrCodeNotInRoom     = "NOT_IN_ROOM"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// BaseMessage is the base structure for all WebSocket messages.
type BaseMessage struct {
	Type string `json:"type"`
}

// Client -> Server messages

// CreateRoomMessage asks the server to allocate a fresh room and join it.
type CreateRoomMessage struct {
	Type     string `json:"type"`
	PeerID   string `json:"peerId" validate:"required"`
	UserName string `json:"userName"`
}

// JoinRoomMessage is sent by a client to join a room.
type JoinRoomMessage struct {
	Type     string `json:"type"`
	RoomID   string `json:"roomId" validate:"required"`
	PeerID   string `json:"peerId" validate:"required"`
	UserName string `json:"userName"`
}

// StartSharingMessage announces a screen share to the room.
type StartSharingMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId" validate:"required"`
	PeerID string `json:"peerId" validate:"required"`
}

// StopSharingMessage ends the current screen share.
type StopSharingMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId" validate:"required"`
}

// SendMessageMessage carries a chat message for the room.
type SendMessageMessage struct {
	Type    string      `json:"type"`
	RoomID  string      `json:"roomId" validate:"required"`
	Message ChatMessage `json:"message" validate:"required"`
}

// ChangeNameMessage updates a participant's display name.
type ChangeNameMessage struct {
	Type     string `json:"type"`
	RoomID   string `json:"roomId" validate:"required"`
	PeerID   string `json:"peerId" validate:"required"`
	UserName string `json:"userName" validate:"required"`
}

// Server -> Client messages

// RoomCreatedMessage is the direct reply to create-room.
type RoomCreatedMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
}

// UserJoinedMessage is broadcast to existing members when a peer joins.
type UserJoinedMessage struct {
	Type     string `json:"type"`
	RoomID   string `json:"roomId"`
	PeerID   string `json:"peerId"`
	UserName string `json:"userName,omitempty"`
}

// GetMessagesMessage replays the room's chat history to the joiner.
type GetMessagesMessage struct {
	Type     string        `json:"type"`
	RoomID   string        `json:"roomId"`
	Messages []ChatMessage `json:"messages"`
}

// GetUsersListMessage gives the joiner a snapshot of current members.
type GetUsersListMessage struct {
	Type         string                 `json:"type"`
	RoomID       string                 `json:"roomId"`
	Participants map[string]Participant `json:"participants"`
}

// UserStartedSharingMessage is broadcast when a peer starts a screen share.
type UserStartedSharingMessage struct {
	Type   string `json:"type"`
	PeerID string `json:"peerId"`
}

// UserStoppedSharingMessage is broadcast when the screen share ends.
type UserStoppedSharingMessage struct {
	Type string `json:"type"`
}

// AddMessageMessage is broadcast when a chat message arrives.
type AddMessageMessage struct {
	Type    string      `json:"type"`
	RoomID  string      `json:"roomId"`
	Message ChatMessage `json:"message"`
}

// ChangedNameMessage is broadcast when a participant renames.
type ChangedNameMessage struct {
	Type     string `json:"type"`
	PeerID   string `json:"peerId"`
	UserName string `json:"userName"`
}

// UserDisconnectedMessage is broadcast when a peer leaves or drops.
type UserDisconnectedMessage struct {
	Type   string `json:"type"`
	PeerID string `json:"peerId"`
}

// ErrorMessage is sent when an event cannot be processed.
type ErrorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorMessage creates a new error message.
func NewErrorMessage(code, message string) *ErrorMessage {
	return &ErrorMessage{
		Type:    MsgTypeError,
		Code:    code,
		Message: message,
	}
}
