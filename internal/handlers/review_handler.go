package handlers

import (
	"net/http"

	"nepshift_backend/internal/middleware"
	"nepshift_backend/internal/services"
	"nepshift_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService *services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{BaseHandler: base, reviewService: reviewService}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	reviews := r.Group("")
	reviews.Use(middleware.AuthMiddleware())
	{
		reviews.POST("/shifts/:shiftId/reviews", h.Submit)
		reviews.GET("/shifts/:shiftId/reviews/can-create", h.CanReview)
		reviews.GET("/users/:userId/reviews", h.ListForUser)
	}
}

func (h *ReviewHandler) Submit(c *gin.Context) {
	userID, ok := h.MustUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.reviewService.SubmitReview(c.Request.Context(), userID, c.Param("shiftId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ReviewHandler) CanReview(c *gin.Context) {
	userID, ok := h.MustUserID(c)
	if !ok {
		return
	}

	resp, err := h.reviewService.CanReview(c.Request.Context(), userID, c.Param("shiftId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) ListForUser(c *gin.Context) {
	reviews, err := h.reviewService.GetReviewsForUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
