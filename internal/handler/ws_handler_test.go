package handler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imbaesible/lets-meet-server/internal/config"
	"github.com/imbaesible/lets-meet-server/internal/domain"
	"github.com/imbaesible/lets-meet-server/internal/hub"
)

// stubService records which dispatcher operation ran and with what arguments.
type stubService struct {
	calls []string
	args  map[string]string
}

func newStubService() *stubService {
	return &stubService{args: make(map[string]string)}
}

func (s *stubService) HandleCreateRoom(_ context.Context, _ *domain.Session, peerID, userName string) error {
	s.calls = append(s.calls, domain.MsgTypeCreateRoom)
	s.args["peerId"] = peerID
	s.args["userName"] = userName
	return nil
}

func (s *stubService) HandleJoinRoom(_ context.Context, _ *domain.Session, roomID, peerID, userName string) error {
	s.calls = append(s.calls, domain.MsgTypeJoinRoom)
	s.args["roomId"] = roomID
	s.args["peerId"] = peerID
	s.args["userName"] = userName
	return nil
}

func (s *stubService) HandleStartSharing(_ context.Context, _ *domain.Session, roomID, peerID string) error {
	s.calls = append(s.calls, domain.MsgTypeStartSharing)
	return nil
}

func (s *stubService) HandleStopSharing(_ context.Context, _ *domain.Session, roomID string) error {
	s.calls = append(s.calls, domain.MsgTypeStopSharing)
	return nil
}

func (s *stubService) HandleSendMessage(_ context.Context, _ *domain.Session, roomID string, msg domain.ChatMessage) error {
	s.calls = append(s.calls, domain.MsgTypeSendMessage)
	s.args["content"] = msg.Content
	return nil
}

func (s *stubService) HandleChangeName(_ context.Context, _ *domain.Session, roomID, peerID, userName string) error {
	s.calls = append(s.calls, domain.MsgTypeChangeName)
	return nil
}

func (s *stubService) HandleDisconnect(_ context.Context, _ *domain.Session) error {
	s.calls = append(s.calls, "disconnect")
	return nil
}

func newTestHandler() (*WSHandler, *stubService, *hub.Client) {
	svc := newStubService()
	h := NewWSHandler(hub.NewHub(config.WebSocketConfig{MaxMessageSize: 65536}), svc)
	client := &hub.Client{
		ID:      "conn-test",
		Send:    make(chan []byte, 16),
		Session: domain.NewSession("conn-test"),
	}
	return h, svc, client
}

func sentError(t *testing.T, client *hub.Client) *domain.ErrorMessage {
	t.Helper()
	select {
	case raw := <-client.Send:
		var msg domain.ErrorMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		require.Equal(t, domain.MsgTypeError, msg.Type)
		return &msg
	default:
		t.Fatal("no message sent to client")
		return nil
	}
}

func TestHandleMessage_RoutesValidEvents(t *testing.T) {
	req := require.New(t)
	h, svc, client := newTestHandler()

	h.handleMessage(client, []byte(`{"type":"join-room","roomId":"r1","peerId":"p1","userName":"Alice"}`))

	req.Equal([]string{domain.MsgTypeJoinRoom}, svc.calls)
	req.Equal("r1", svc.args["roomId"])
	req.Equal("p1", svc.args["peerId"])
	req.Equal("Alice", svc.args["userName"])
}

func TestHandleMessage_SendMessagePayload(t *testing.T) {
	req := require.New(t)
	h, svc, client := newTestHandler()

	h.handleMessage(client, []byte(`{"type":"send-message","roomId":"r1","message":{"content":"hi","timestamp":1}}`))

	req.Equal([]string{domain.MsgTypeSendMessage}, svc.calls)
	req.Equal("hi", svc.args["content"])
}

func TestHandleMessage_MalformedJSON(t *testing.T) {
	req := require.New(t)
	h, svc, client := newTestHandler()

	h.handleMessage(client, []byte(`{not json`))

	req.Empty(svc.calls)
	errMsg := sentError(t, client)
	req.Equal(domain.ErrCodeBadRequest, errMsg.Code)
}

func TestHandleMessage_MissingRequiredField(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"join-room without roomId", `{"type":"join-room","peerId":"p1"}`},
		{"join-room without peerId", `{"type":"join-room","roomId":"r1"}`},
		{"create-room without peerId", `{"type":"create-room","userName":"Alice"}`},
		{"change-name without userName", `{"type":"change-name","roomId":"r1","peerId":"p1"}`},
		{"send-message without content", `{"type":"send-message","roomId":"r1","message":{"timestamp":1}}`},
		{"start-sharing without roomId", `{"type":"start-sharing","peerId":"p1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			h, svc, client := newTestHandler()

			h.handleMessage(client, []byte(tt.payload))

			// Rejected at the validation boundary, never reaches the dispatcher
			req.Empty(svc.calls)
			errMsg := sentError(t, client)
			req.Equal(domain.ErrCodeBadRequest, errMsg.Code)
		})
	}
}

func TestHandleMessage_UnknownType(t *testing.T) {
	req := require.New(t)
	h, svc, client := newTestHandler()

	h.handleMessage(client, []byte(`{"type":"teleport"}`))

	req.Empty(svc.calls)
	errMsg := sentError(t, client)
	req.Equal(domain.ErrCodeBadRequest, errMsg.Code)
}
