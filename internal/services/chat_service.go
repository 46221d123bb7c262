package services

import (
	"context"
	"strings"

	"nepshift_backend/internal/models"
	"nepshift_backend/internal/repositories"
	"nepshift_backend/internal/services/dto"
	"nepshift_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// RoomKey derives the canonical 1:1 conversation key from the two user ids.
// Both sides compute the same key regardless of who messaged first.
func RoomKey(userA, userB string) string {
	if userA > userB {
		userA, userB = userB, userA
	}
	return userA + ":" + userB
}

// RoomMembers is the inverse of RoomKey.
func RoomMembers(roomKey string) (string, string, bool) {
	a, b, ok := strings.Cut(roomKey, ":")
	return a, b, ok
}

type ChatService struct {
	db       *gorm.DB
	chatRepo repositories.ChatRepository
	userRepo repositories.UserRepository
}

func NewChatService(db *gorm.DB, chatRepo repositories.ChatRepository, userRepo repositories.UserRepository) *ChatService {
	return &ChatService{db: db, chatRepo: chatRepo, userRepo: userRepo}
}

// SendMessage stores a message addressed to the recipient. A resend carrying
// an already-seen client_msg_id returns the stored message flagged as a
// duplicate instead of creating a second row.
func (s *ChatService) SendMessage(ctx context.Context, senderID string, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error) {
	if senderID == req.RecipientID {
		return nil, apperrors.NewBadRequestError("Cannot send a message to yourself")
	}
	if _, err := s.userRepo.FindByID(s.db, req.RecipientID); err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	msg := &models.ChatMessage{
		RoomKey:     RoomKey(senderID, req.RecipientID),
		ClientMsgID: req.ClientMsgID,
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Body:        req.Body,
	}

	if err := s.chatRepo.Create(s.db, msg); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateMessage) {
			stored, findErr := s.chatRepo.FindByRoomAndClientID(s.db, msg.RoomKey, req.ClientMsgID)
			if findErr != nil {
				return nil, apperrors.InternalError(findErr)
			}
			resp := buildChatMessageResponse(stored)
			resp.Duplicate = true
			return resp, nil
		}
		return nil, apperrors.InternalError(err)
	}

	return buildChatMessageResponse(msg), nil
}

// GetHistory returns room history in server-timestamp order. Only the two
// room members may read it.
func (s *ChatService) GetHistory(ctx context.Context, userID, peerID string, limit int) ([]dto.ChatMessageResponse, error) {
	roomKey := RoomKey(userID, peerID)
	if err := s.authorizeRoom(userID, roomKey); err != nil {
		return nil, err
	}

	messages, err := s.chatRepo.ListByRoom(s.db, roomKey, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ChatMessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, *buildChatMessageResponse(&messages[i]))
	}
	return responses, nil
}

func (s *ChatService) GetRooms(ctx context.Context, userID string) ([]string, error) {
	rooms, err := s.chatRepo.ListRoomsForUser(s.db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return rooms, nil
}

// AuthorizeRoom reports whether the user is one of the two room members.
func (s *ChatService) AuthorizeRoom(userID, roomKey string) error {
	return s.authorizeRoom(userID, roomKey)
}

func (s *ChatService) authorizeRoom(userID, roomKey string) error {
	a, b, ok := RoomMembers(roomKey)
	if !ok || (userID != a && userID != b) {
		return apperrors.ErrChatAccessDenied
	}
	return nil
}

func buildChatMessageResponse(msg *models.ChatMessage) *dto.ChatMessageResponse {
	return &dto.ChatMessageResponse{
		ID:          msg.ID,
		RoomKey:     msg.RoomKey,
		ClientMsgID: msg.ClientMsgID,
		SenderID:    msg.SenderID,
		RecipientID: msg.RecipientID,
		Body:        msg.Body,
		SentAt:      msg.SentAt,
	}
}
