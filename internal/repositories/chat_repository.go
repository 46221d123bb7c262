package repositories

import (
	"nepshift_backend/internal/models"

	"gorm.io/gorm"
)

type ChatRepository interface {
	// Create relies on the (room_key, client_msg_id) unique index: a redelivered
	// or echoed message surfaces as ErrDuplicateMessage instead of a second row.
	Create(db *gorm.DB, msg *models.ChatMessage) error
	FindByRoomAndClientID(db *gorm.DB, roomKey, clientMsgID string) (*models.ChatMessage, error)
	ListByRoom(db *gorm.DB, roomKey string, limit int) ([]models.ChatMessage, error)
	ListRoomsForUser(db *gorm.DB, userID string) ([]string, error)
}

type chatRepository struct{}

func NewChatRepository() ChatRepository {
	return &chatRepository{}
}

func (r *chatRepository) Create(db *gorm.DB, msg *models.ChatMessage) error {
	if err := db.Create(msg).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateMessage
		}
		return err
	}
	return nil
}

func (r *chatRepository) FindByRoomAndClientID(db *gorm.DB, roomKey, clientMsgID string) (*models.ChatMessage, error) {
	var msg models.ChatMessage
	err := db.Where("room_key = ? AND client_msg_id = ?", roomKey, clientMsgID).
		First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListByRoom returns history in server-timestamp order, not arrival order.
func (r *chatRepository) ListByRoom(db *gorm.DB, roomKey string, limit int) ([]models.ChatMessage, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	var messages []models.ChatMessage
	err := db.Where("room_key = ?", roomKey).
		Order("sent_at ASC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *chatRepository) ListRoomsForUser(db *gorm.DB, userID string) ([]string, error) {
	var rooms []string
	err := db.Model(&models.ChatMessage{}).
		Distinct("room_key").
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Pluck("room_key", &rooms).Error
	return rooms, err
}
