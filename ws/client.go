package ws

import (
	"context"
	"encoding/json"

	"nepshift_backend/internal/logger"
	"nepshift_backend/internal/services/dto"
	"nepshift_backend/pkg/apperrors"

	"github.com/gorilla/websocket"
)

type IncomingMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type OutgoingEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type Client struct {
	UserID  string
	Conn    *websocket.Conn
	Send    chan any
	Ctx     context.Context
	Manager *Manager
}

func (c *Client) readPump() {
	defer func() {
		c.Manager.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WithError(err).Warn("ws read error", "user_id", c.UserID)
			}
			return
		}

		var msg IncomingMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.sendError(apperrors.NewBadRequestError("Malformed message"))
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	defer c.Conn.Close()
	for event := range c.Send {
		if err := c.Conn.WriteJSON(event); err != nil {
			logger.WithError(err).Warn("ws write error", "user_id", c.UserID)
			return
		}
	}
}

func (c *Client) handleMessage(msg IncomingMessage) {
	switch msg.Action {
	case "send_message":
		var req dto.SendMessageRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			c.sendError(apperrors.NewBadRequestError("Invalid send_message payload"))
			return
		}

		resp, err := c.Manager.chatService.SendMessage(c.Ctx, c.UserID, &req)
		if err != nil {
			c.sendError(err)
			return
		}

		if resp.Duplicate {
			// acknowledge the resend to the sender only, no refan-out
			c.Manager.SendToUser(c.UserID, OutgoingEvent{Event: "message", Data: resp})
			return
		}
		c.Manager.SendToRoom(resp.RoomKey, OutgoingEvent{Event: "message", Data: resp})

	default:
		c.sendError(apperrors.NewBadRequestError("Unknown action: " + msg.Action))
	}
}

func (c *Client) sendError(err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.InternalError(err)
	}
	select {
	case c.Send <- OutgoingEvent{Event: "error", Data: appErr}:
	default:
	}
}
