package services

import (
	"context"
	"testing"

	"nepshift_backend/internal/models"
	"nepshift_backend/internal/services/dto"
	"nepshift_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomKey(t *testing.T) {
	t.Run("symmetric for both orderings", func(t *testing.T) {
		assert.Equal(t, RoomKey("alice", "bob"), RoomKey("bob", "alice"))
	})

	t.Run("sorted pair joined by colon", func(t *testing.T) {
		assert.Equal(t, "a:b", RoomKey("b", "a"))
	})

	t.Run("members round-trip", func(t *testing.T) {
		a, b, ok := RoomMembers(RoomKey("zed", "amy"))
		require.True(t, ok)
		assert.Equal(t, "amy", a)
		assert.Equal(t, "zed", b)
	})
}

type chatFixture struct {
	svc      *ChatService
	users    *fakeUserRepo
	messages *fakeChatRepo

	alice *models.User
	bob   *models.User
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	f := &chatFixture{
		users:    newFakeUserRepo(),
		messages: newFakeChatRepo(),
	}
	f.svc = NewChatService(testDB(t), f.messages, f.users)
	f.alice = f.users.add(&models.User{Email: "alice@example.com", Role: models.UserRoleHelper})
	f.bob = f.users.add(&models.User{Email: "bob@example.com", Role: models.UserRoleHirer})
	return f
}

func TestSendMessage(t *testing.T) {
	t.Run("stores and addresses the message", func(t *testing.T) {
		f := newChatFixture(t)

		resp, err := f.svc.SendMessage(context.Background(), f.alice.ID, &dto.SendMessageRequest{
			RecipientID: f.bob.ID,
			ClientMsgID: "msg-1",
			Body:        "hello",
		})
		require.NoError(t, err)
		assert.Equal(t, RoomKey(f.alice.ID, f.bob.ID), resp.RoomKey)
		assert.False(t, resp.Duplicate)
		assert.False(t, resp.SentAt.IsZero())
	})

	t.Run("resend returns the stored message flagged duplicate", func(t *testing.T) {
		f := newChatFixture(t)

		req := &dto.SendMessageRequest{RecipientID: f.bob.ID, ClientMsgID: "msg-1", Body: "hello"}
		first, err := f.svc.SendMessage(context.Background(), f.alice.ID, req)
		require.NoError(t, err)

		second, err := f.svc.SendMessage(context.Background(), f.alice.ID, req)
		require.NoError(t, err)
		assert.True(t, second.Duplicate)
		assert.Equal(t, first.ID, second.ID)

		history, err := f.svc.GetHistory(context.Background(), f.alice.ID, f.bob.ID, 50)
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("same client id in another room is a distinct message", func(t *testing.T) {
		f := newChatFixture(t)
		carol := f.users.add(&models.User{Email: "carol@example.com", Role: models.UserRoleHirer})

		_, err := f.svc.SendMessage(context.Background(), f.alice.ID, &dto.SendMessageRequest{
			RecipientID: f.bob.ID, ClientMsgID: "msg-1", Body: "hi bob",
		})
		require.NoError(t, err)

		resp, err := f.svc.SendMessage(context.Background(), f.alice.ID, &dto.SendMessageRequest{
			RecipientID: carol.ID, ClientMsgID: "msg-1", Body: "hi carol",
		})
		require.NoError(t, err)
		assert.False(t, resp.Duplicate)
	})

	t.Run("self-messaging is refused", func(t *testing.T) {
		f := newChatFixture(t)

		_, err := f.svc.SendMessage(context.Background(), f.alice.ID, &dto.SendMessageRequest{
			RecipientID: f.alice.ID, ClientMsgID: "msg-1", Body: "echo",
		})
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	})

	t.Run("unknown recipient is refused", func(t *testing.T) {
		f := newChatFixture(t)

		_, err := f.svc.SendMessage(context.Background(), f.alice.ID, &dto.SendMessageRequest{
			RecipientID: "nonexistent", ClientMsgID: "msg-1", Body: "hello",
		})
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
	})
}

func TestChatAccess(t *testing.T) {
	t.Run("non-members cannot read a room", func(t *testing.T) {
		f := newChatFixture(t)

		err := f.svc.AuthorizeRoom("stranger", RoomKey(f.alice.ID, f.bob.ID))
		assert.ErrorIs(t, err, apperrors.ErrChatAccessDenied)
	})

	t.Run("both members may read", func(t *testing.T) {
		f := newChatFixture(t)
		roomKey := RoomKey(f.alice.ID, f.bob.ID)

		assert.NoError(t, f.svc.AuthorizeRoom(f.alice.ID, roomKey))
		assert.NoError(t, f.svc.AuthorizeRoom(f.bob.ID, roomKey))
	})
}
