package domain

// Participant is one peer inside a room, keyed by its peer id.
type Participant struct {
	PeerID   string `json:"peerId"`
	UserName string `json:"userName,omitempty"`
}

// ChatMessage is a single chat entry in a room's log. Immutable once appended.
type ChatMessage struct {
	Content   string `json:"content" validate:"required"`
	Author    string `json:"author,omitempty"`
	Timestamp int64  `json:"timestamp"`
}
