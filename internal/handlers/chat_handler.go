package handlers

import (
	"net/http"

	"nepshift_backend/internal/middleware"
	"nepshift_backend/internal/services"
	"nepshift_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	*BaseHandler
	chatService *services.ChatService
}

func NewChatHandler(base *BaseHandler, chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{BaseHandler: base, chatService: chatService}
}

func (h *ChatHandler) RegisterRoutes(r *gin.RouterGroup) {
	chat := r.Group("/chat")
	chat.Use(middleware.AuthMiddleware())
	{
		chat.POST("/messages", h.Send)
		chat.GET("/rooms", h.Rooms)
		chat.GET("/with/:userId", h.History)
	}
}

func (h *ChatHandler) Send(c *gin.Context) {
	userID, ok := h.MustUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.chatService.SendMessage(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ChatHandler) Rooms(c *gin.Context) {
	userID, ok := h.MustUserID(c)
	if !ok {
		return
	}

	rooms, err := h.chatService.GetRooms(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

func (h *ChatHandler) History(c *gin.Context) {
	userID, ok := h.MustUserID(c)
	if !ok {
		return
	}

	limit := ParseQueryInt(c, "limit", 100)
	messages, err := h.chatService.GetHistory(c.Request.Context(), userID, c.Param("userId"), limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
