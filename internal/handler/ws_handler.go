package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/imbaesible/lets-meet-server/internal/domain"
	"github.com/imbaesible/lets-meet-server/internal/hub"
	"github.com/imbaesible/lets-meet-server/internal/service"
	pkglog "github.com/imbaesible/lets-meet-server/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// WSHandler handles WebSocket connections.
type WSHandler struct {
	hub      *hub.Hub
	service  service.SignalService
	validate *validator.Validate
}

// NewWSHandler creates a new WebSocket handler.
func NewWSHandler(h *hub.Hub, svc service.SignalService) *WSHandler {
	return &WSHandler{
		hub:      h,
		service:  svc,
		validate: validator.New(),
	}
}

// HandleWebSocket handles WebSocket upgrade and message routing.
func (h *WSHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	l := pkglog.Ctx(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	clientID := uuid.New().String()
	client := &hub.Client{
		ID:      clientID,
		Hub:     h.hub,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		Session: domain.NewSession(clientID),
	}

	// Drive the leave-path exactly once when the transport drops.
	client.SetDisconnectHandler(func(c *hub.Client) {
		if err := h.service.HandleDisconnect(context.Background(), c.Session); err != nil {
			l.Error().Err(err).Str(pkglog.FieldClientID, c.ID).Msg("disconnect handler error")
		}
	})

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h.handleMessage)
}

// decode unmarshals an inbound payload and validates its required fields.
// Malformed payloads never reach the dispatcher.
func (h *WSHandler) decode(client *hub.Client, raw []byte, msg interface{}, what string) bool {
	if err := json.Unmarshal(raw, msg); err != nil {
		client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "invalid "+what+" message"))
		return false
	}
	if err := h.validate.Struct(msg); err != nil {
		client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "invalid "+what+" message"))
		return false
	}
	return true
}

func (h *WSHandler) handleMessage(client *hub.Client, message []byte) {
	l := pkglog.L()

	var base domain.BaseMessage
	if err := json.Unmarshal(message, &base); err != nil {
		client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "invalid message format"))
		return
	}

	ctx := context.Background()

	switch base.Type {
	case domain.MsgTypeCreateRoom:
		var msg domain.CreateRoomMessage
		if !h.decode(client, message, &msg, "create-room") {
			return
		}
		if err := h.service.HandleCreateRoom(ctx, client.Session, msg.PeerID, msg.UserName); err != nil {
			l.Error().Err(err).Str(pkglog.FieldEvent, base.Type).Str(pkglog.FieldClientID, client.ID).Msg("create room failed")
		}

	case domain.MsgTypeJoinRoom:
		var msg domain.JoinRoomMessage
		if !h.decode(client, message, &msg, "join-room") {
			return
		}
		if err := h.service.HandleJoinRoom(ctx, client.Session, msg.RoomID, msg.PeerID, msg.UserName); err != nil {
			l.Error().Err(err).Str(pkglog.FieldEvent, base.Type).Str(pkglog.FieldClientID, client.ID).Msg("join room failed")
		}

	case domain.MsgTypeStartSharing:
		var msg domain.StartSharingMessage
		if !h.decode(client, message, &msg, "start-sharing") {
			return
		}
		if err := h.service.HandleStartSharing(ctx, client.Session, msg.RoomID, msg.PeerID); err != nil {
			l.Error().Err(err).Str(pkglog.FieldEvent, base.Type).Str(pkglog.FieldClientID, client.ID).Msg("start sharing failed")
		}

	case domain.MsgTypeStopSharing:
		var msg domain.StopSharingMessage
		if !h.decode(client, message, &msg, "stop-sharing") {
			return
		}
		if err := h.service.HandleStopSharing(ctx, client.Session, msg.RoomID); err != nil {
			l.Error().Err(err).Str(pkglog.FieldEvent, base.Type).Str(pkglog.FieldClientID, client.ID).Msg("stop sharing failed")
		}

	case domain.MsgTypeSendMessage:
		var msg domain.SendMessageMessage
		if !h.decode(client, message, &msg, "send-message") {
			return
		}
		if err := h.service.HandleSendMessage(ctx, client.Session, msg.RoomID, msg.Message); err != nil {
			l.Error().Err(err).Str(pkglog.FieldEvent, base.Type).Str(pkglog.FieldClientID, client.ID).Msg("send message failed")
		}

	case domain.MsgTypeChangeName:
		var msg domain.ChangeNameMessage
		if !h.decode(client, message, &msg, "change-name") {
			return
		}
		if err := h.service.HandleChangeName(ctx, client.Session, msg.RoomID, msg.PeerID, msg.UserName); err != nil {
			l.Error().Err(err).Str(pkglog.FieldEvent, base.Type).Str(pkglog.FieldClientID, client.ID).Msg("change name failed")
		}

	default:
		client.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "unknown message type"))
	}
}

// RegisterRoutes registers the WebSocket route.
func (h *WSHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", h.HandleWebSocket)
}
