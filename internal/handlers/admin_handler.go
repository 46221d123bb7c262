package handlers

import (
	"net/http"

	"nepshift_backend/internal/middleware"
	"nepshift_backend/internal/models"
	"nepshift_backend/internal/services"
	"nepshift_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the moderation surface: the review queue for pending
// verifications and the approve/reject decisions.
type AdminHandler struct {
	*BaseHandler
	verificationService *services.VerificationService
}

func NewAdminHandler(base *BaseHandler, verificationService *services.VerificationService) *AdminHandler {
	return &AdminHandler{BaseHandler: base, verificationService: verificationService}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin/verifications")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.UserRoleAdmin))
	{
		admin.GET("/pending", h.ListPending)
		admin.POST("/:userId/approve", h.Approve)
		admin.POST("/:userId/reject", h.Reject)
	}
}

func (h *AdminHandler) ListPending(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	pending, total, err := h.verificationService.ListPending(c.Request.Context(), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"verifications": pending,
		"total":         total,
		"page":          page,
		"page_size":     pageSize,
	})
}

func (h *AdminHandler) Approve(c *gin.Context) {
	if err := h.verificationService.Approve(c.Request.Context(), c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(models.VerificationStatusApproved)})
}

func (h *AdminHandler) Reject(c *gin.Context) {
	var req dto.RejectVerificationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.verificationService.Reject(c.Request.Context(), c.Param("userId"), req.Reason); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(models.VerificationStatusRejected)})
}
