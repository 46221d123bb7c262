package handlers

import (
	"net/http"

	"nepshift_backend/internal/middleware"
	"nepshift_backend/internal/models"
	"nepshift_backend/internal/services"
	"nepshift_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService *services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{BaseHandler: base, profileService: profileService}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	profiles := r.Group("/profiles")
	profiles.Use(middleware.AuthMiddleware())
	{
		profiles.GET("/workers/:userId", h.GetWorker)
		profiles.GET("/hirers/:userId", h.GetHirer)
		profiles.GET("/workers", h.SearchWorkers)
	}

	worker := r.Group("/profiles/workers")
	worker.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.UserRoleHelper))
	{
		worker.PUT("/me", h.UpdateWorker)
	}

	hirer := r.Group("/profiles/hirers")
	hirer.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.UserRoleHirer))
	{
		hirer.PUT("/me", h.UpdateHirer)
	}
}

func (h *ProfileHandler) GetWorker(c *gin.Context) {
	resp, err := h.profileService.GetWorkerProfile(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) GetHirer(c *gin.Context) {
	resp, err := h.profileService.GetHirerProfile(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) UpdateWorker(c *gin.Context) {
	userID, ok := h.MustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkerProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.profileService.UpdateWorkerProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) UpdateHirer(c *gin.Context) {
	userID, ok := h.MustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateHirerProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.profileService.UpdateHirerProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) SearchWorkers(c *gin.Context) {
	var req dto.WorkerSearchRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}
	req.Page, req.PageSize = normalizePagination(req.Page, req.PageSize)

	workers, total, err := h.profileService.SearchWorkers(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"workers":   workers,
		"total":     total,
		"page":      req.Page,
		"page_size": req.PageSize,
	})
}
