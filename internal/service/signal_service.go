package service

import (
	"context"

	"github.com/imbaesible/lets-meet-server/internal/chatlog"
	"github.com/imbaesible/lets-meet-server/internal/config"
	"github.com/imbaesible/lets-meet-server/internal/domain"
	"github.com/imbaesible/lets-meet-server/internal/kafka"
	"github.com/imbaesible/lets-meet-server/internal/registry"
	pkglog "github.com/imbaesible/lets-meet-server/pkg/log"
)

type signalService struct {
	transport Transport
	registry  *registry.Registry
	chatlog   *chatlog.Store
	producer  kafka.RoomEventProducer
	policy    config.SignalingConfig
	locks     *roomLocks
}

// NewSignalService creates the dispatcher. producer may be nil; the relay
// works without Kafka.
func NewSignalService(
	transport Transport,
	reg *registry.Registry,
	store *chatlog.Store,
	producer kafka.RoomEventProducer,
	policy config.SignalingConfig,
) SignalService {
	return &signalService{
		transport: transport,
		registry:  reg,
		chatlog:   store,
		producer:  producer,
		policy:    policy,
		locks:     newRoomLocks(),
	}
}

func (s *signalService) HandleCreateRoom(ctx context.Context, sess *domain.Session, peerID, userName string) error {
	// A bound session switching rooms leaves its current room first.
	if sess.Bound() {
		s.leave(ctx, sess, kafka.ReasonExplicit)
	}

	roomID := s.registry.CreateRoom()

	pkglog.Ctx(ctx).Info().
		Str(pkglog.FieldClientID, sess.ID).
		Str(pkglog.FieldRoomID, roomID).
		Str(pkglog.FieldPeerID, peerID).
		Msg("room created")

	if s.producer != nil {
		if err := s.producer.ProduceRoomCreated(ctx, roomID); err != nil {
			pkglog.Ctx(ctx).Error().Err(err).Str(pkglog.FieldRoomID, roomID).Msg("failed to produce room_created")
		}
	}

	if err := s.transport.SendToClient(sess.ID, &domain.RoomCreatedMessage{
		Type:   domain.MsgTypeRoomCreated,
		RoomID: roomID,
	}); err != nil {
		return err
	}

	return s.join(ctx, sess, roomID, peerID, userName)
}

func (s *signalService) HandleJoinRoom(ctx context.Context, sess *domain.Session, roomID, peerID, userName string) error {
	if !s.policy.AllowLazyRoomCreation && !s.registry.Exists(roomID) {
		return s.transport.SendToClient(sess.ID,
			domain.NewErrorMessage(domain.ErrCodeRoomNotFound, "room does not exist"))
	}

	if sess.Bound() {
		s.leave(ctx, sess, kafka.ReasonExplicit)
	}

	return s.join(ctx, sess, roomID, peerID, userName)
}

// join runs the shared join path: mutate the registry, put the connection in
// the room's fanout group, announce the joiner to the other members, and
// reply with the chat history and membership snapshot.
func (s *signalService) join(ctx context.Context, sess *domain.Session, roomID, peerID, userName string) error {
	unlock := s.locks.lock(roomID)
	defer unlock()

	participants := s.registry.Join(roomID, domain.Participant{PeerID: peerID, UserName: userName})
	history := s.chatlog.History(roomID)

	s.transport.JoinRoom(sess.ID, roomID)
	sess.Bind(roomID, peerID, userName)

	if err := s.transport.BroadcastToRoom(roomID, &domain.UserJoinedMessage{
		Type:     domain.MsgTypeUserJoined,
		RoomID:   roomID,
		PeerID:   peerID,
		UserName: userName,
	}, sess.ID); err != nil {
		return err
	}

	if err := s.transport.SendToClient(sess.ID, &domain.GetMessagesMessage{
		Type:     domain.MsgTypeGetMessages,
		RoomID:   roomID,
		Messages: history,
	}); err != nil {
		return err
	}

	if err := s.transport.SendToClient(sess.ID, &domain.GetUsersListMessage{
		Type:         domain.MsgTypeGetUsersList,
		RoomID:       roomID,
		Participants: participants,
	}); err != nil {
		return err
	}

	pkglog.Ctx(ctx).Info().
		Str(pkglog.FieldClientID, sess.ID).
		Str(pkglog.FieldRoomID, roomID).
		Str(pkglog.FieldPeerID, peerID).
		Msg("peer joined room")

	if s.producer != nil {
		if err := s.producer.ProducePeerJoined(ctx, roomID, peerID); err != nil {
			pkglog.Ctx(ctx).Error().Err(err).Str(pkglog.FieldRoomID, roomID).Msg("failed to produce peer_joined")
		}
	}

	return nil
}

func (s *signalService) HandleStartSharing(ctx context.Context, sess *domain.Session, roomID, peerID string) error {
	if ok, err := s.allowRoomEvent(sess, roomID); !ok {
		return err
	}

	return s.transport.BroadcastToRoom(roomID, &domain.UserStartedSharingMessage{
		Type:   domain.MsgTypeUserStartedSharing,
		PeerID: peerID,
	}, sess.ID)
}

func (s *signalService) HandleStopSharing(ctx context.Context, sess *domain.Session, roomID string) error {
	if ok, err := s.allowRoomEvent(sess, roomID); !ok {
		return err
	}

	return s.transport.BroadcastToRoom(roomID, &domain.UserStoppedSharingMessage{
		Type: domain.MsgTypeUserStoppedSharing,
	}, sess.ID)
}

func (s *signalService) HandleSendMessage(ctx context.Context, sess *domain.Session, roomID string, msg domain.ChatMessage) error {
	if ok, err := s.allowRoomEvent(sess, roomID); !ok {
		return err
	}

	unlock := s.locks.lock(roomID)
	defer unlock()

	stored := s.chatlog.Append(roomID, msg)

	return s.transport.BroadcastToRoom(roomID, &domain.AddMessageMessage{
		Type:    domain.MsgTypeAddMessage,
		RoomID:  roomID,
		Message: stored,
	}, sess.ID)
}

func (s *signalService) HandleChangeName(ctx context.Context, sess *domain.Session, roomID, peerID, userName string) error {
	if ok, err := s.allowRoomEvent(sess, roomID); !ok {
		return err
	}

	unlock := s.locks.lock(roomID)
	defer unlock()

	// Rename of an absent participant is a benign no-op; the broadcast is
	// suppressed.
	if !s.registry.Rename(roomID, peerID, userName) {
		return nil
	}

	return s.transport.BroadcastToRoom(roomID, &domain.ChangedNameMessage{
		Type:     domain.MsgTypeChangedName,
		PeerID:   peerID,
		UserName: userName,
	}, sess.ID)
}

func (s *signalService) HandleDisconnect(ctx context.Context, sess *domain.Session) error {
	if !sess.Bound() {
		return nil
	}
	s.leave(ctx, sess, kafka.ReasonDisconnect)
	return nil
}

// allowRoomEvent gates non-join events: the room must exist, and with
// membership enforcement on, the session must be bound to it. On rejection
// the caller gets an error reply and must not mutate or broadcast.
func (s *signalService) allowRoomEvent(sess *domain.Session, roomID string) (bool, error) {
	if !s.registry.Exists(roomID) {
		return false, s.transport.SendToClient(sess.ID,
			domain.NewErrorMessage(domain.ErrCodeRoomNotFound, "room does not exist"))
	}

	if s.policy.EnforceMembership {
		if boundRoom, _ := sess.Membership(); boundRoom != roomID {
			return false, s.transport.SendToClient(sess.ID,
				domain.NewErrorMessage(domain.ErrCodeNotInRoom, "not a member of this room"))
		}
	}

	return true, nil
}

// leave runs the shared leave path for explicit room switches and transport
// disconnects. The room itself is kept, even when it becomes empty.
func (s *signalService) leave(ctx context.Context, sess *domain.Session, reason string) {
	roomID, peerID := sess.Membership()
	if roomID == "" {
		return
	}

	unlock := s.locks.lock(roomID)
	defer unlock()

	s.registry.Leave(roomID, peerID)
	s.transport.LeaveRoom(sess.ID, roomID)
	sess.Unbind()

	if err := s.transport.BroadcastToRoom(roomID, &domain.UserDisconnectedMessage{
		Type:   domain.MsgTypeUserDisconnected,
		PeerID: peerID,
	}, sess.ID); err != nil {
		pkglog.Ctx(ctx).Error().Err(err).Str(pkglog.FieldRoomID, roomID).Msg("failed to broadcast user-disconnected")
	}

	pkglog.Ctx(ctx).Info().
		Str(pkglog.FieldClientID, sess.ID).
		Str(pkglog.FieldRoomID, roomID).
		Str(pkglog.FieldPeerID, peerID).
		Str("reason", reason).
		Msg("peer left room")

	if s.producer != nil {
		if err := s.producer.ProducePeerLeft(ctx, roomID, peerID, reason); err != nil {
			pkglog.Ctx(ctx).Error().Err(err).Str(pkglog.FieldRoomID, roomID).Msg("failed to produce peer_left")
		}
	}
}
