package models

import "time"

// ChatMessage is one persisted message between a hirer and a worker.
// RoomKey is derived from the sorted participant pair (see chat.RoomKey).
// The (room_key, client_msg_id) index de-duplicates at-least-once delivery.
type ChatMessage struct {
	BaseModel
	RoomKey     string    `gorm:"not null;index;uniqueIndex:idx_room_client_msg"`
	ClientMsgID string    `gorm:"not null;uniqueIndex:idx_room_client_msg"`
	SenderID    string    `gorm:"not null;index"`
	RecipientID string    `gorm:"not null;index"`
	Body        string    `gorm:"not null"`
	SentAt      time.Time `gorm:"not null;default:now()"` // server timestamp, display order
}
