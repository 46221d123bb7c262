package dto

import "time"

type SendMessageRequest struct {
	RecipientID string `json:"recipient_id" validate:"required,uuid4"`
	ClientMsgID string `json:"client_msg_id" validate:"required,max=64"`
	Body        string `json:"body" validate:"required,max=2000"`
}

type ChatMessageResponse struct {
	ID          string    `json:"id"`
	RoomKey     string    `json:"room_key"`
	ClientMsgID string    `json:"client_msg_id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Body        string    `json:"body"`
	SentAt      time.Time `json:"sent_at"`
	// Duplicate marks a redelivered message the client should drop.
	Duplicate bool `json:"duplicate,omitempty"`
}
