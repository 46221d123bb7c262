package ws

import (
	"net/http"

	"nepshift_backend/internal/auth"
	"nepshift_backend/internal/logger"
	"nepshift_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin policy handled by the deployment proxy
	},
}

type Handler struct {
	Manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{Manager: manager}
}

// ServeWS upgrades the connection. Browsers cannot set an Authorization
// header on the ws handshake, so the token is also accepted as a query
// parameter.
func (h *Handler) ServeWS(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		claims, err := auth.ParseToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		userID = claims.UserID
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WithError(err).Warn("ws upgrade failed")
		return
	}

	client := &Client{
		UserID:  userID,
		Conn:    conn,
		Send:    make(chan any, 256),
		Ctx:     c.Request.Context(),
		Manager: h.Manager,
	}

	h.Manager.register <- client
	go client.readPump()
	go client.writePump()
}
