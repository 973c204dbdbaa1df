package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSession_BindUnbind(t *testing.T) {
	req := require.New(t)
	sess := NewSession("client-1")

	req.False(sess.Bound())
	roomID, peerID := sess.Membership()
	req.Empty(roomID)
	req.Empty(peerID)

	sess.Bind("room-a", "p1", "Alice")

	req.True(sess.Bound())
	roomID, peerID = sess.Membership()
	req.Equal("room-a", roomID)
	req.Equal("p1", peerID)

	sess.Unbind()

	req.False(sess.Bound())
	roomID, peerID = sess.Membership()
	req.Empty(roomID)
	req.Empty(peerID)
}

func TestSession_UnbindBeforeBindIsNoOp(t *testing.T) {
	sess := NewSession("client-1")
	sess.Unbind()
	require.False(t, sess.Bound())
}
