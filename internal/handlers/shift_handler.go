package handlers

import (
	"net/http"

	"nepshift_backend/internal/middleware"
	"nepshift_backend/internal/models"
	"nepshift_backend/internal/services"
	"nepshift_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ShiftHandler struct {
	*BaseHandler
	shiftService *services.ShiftService
}

func NewShiftHandler(base *BaseHandler, shiftService *services.ShiftService) *ShiftHandler {
	return &ShiftHandler{BaseHandler: base, shiftService: shiftService}
}

func (h *ShiftHandler) RegisterRoutes(r *gin.RouterGroup) {
	shifts := r.Group("/shifts")
	shifts.Use(middleware.AuthMiddleware())
	{
		shifts.GET("", h.Search)
		shifts.GET("/:shiftId", h.Get)
		shifts.GET("/:shiftId/applications", h.ListApplications)
	}

	hirer := r.Group("/shifts")
	hirer.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.UserRoleHirer))
	{
		hirer.POST("", h.Post)
		hirer.GET("/my", h.MyShifts)
		hirer.PATCH("/:shiftId/status", h.ChangeStatus)
		hirer.POST("/:shiftId/complete", h.Complete)
	}

	worker := r.Group("")
	worker.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.UserRoleHelper))
	{
		worker.POST("/shifts/:shiftId/applications", h.Apply)
		worker.GET("/applications/my", h.MyApplications)
	}

	applications := r.Group("/applications")
	applications.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.UserRoleHirer))
	{
		applications.POST("/:applicationId/accept", h.Accept)
		applications.POST("/:applicationId/reject", h.Reject)
	}
}

func (h *ShiftHandler) Post(c *gin.Context) {
	userID, ok := h.MustUserID(c)
	if !ok {
		return
	}

	var req dto.PostShiftRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.shiftService.PostShift(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ShiftHandler) Get(c *gin.Context) {
	userID, ok := h.MustUserID(c)
	if !ok {
		return
	}

	resp, err := h.shiftService.GetShift(c.Request.Context(), c.Param("shiftId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ShiftHandler) Search(c *gin.Context) {
	var req dto.ShiftSearchRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}
	req.Page, req.PageSize = normalizePagination(req.Page, req.PageSize)

	shifts, total, err := h.shiftService.SearchShifts(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"shifts":    shifts,
		"total":     total,
		"page":      req.Page,
		"page_size": req.PageSize,
	})
}

func (h *ShiftHandler) MyShifts(c *gin.Context) {
	userID, ok := h.MustUserID(c)
	if !ok {
		return
	}

	shifts, err := h.shiftService.GetHirerShifts(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": shifts})
}

func (h *ShiftHandler) ChangeStatus(c *gin.Context) {
	userID, ok := h.MustUserID(c)
	if !ok {
		return
	}

	var req dto.ChangeShiftStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.shiftService.ChangeShiftStatus(c.Request.Context(), userID, c.Param("shiftId"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ShiftHandler) Complete(c *gin.Context) {
	userID, ok := h.MustUserID(c)
	if !ok {
		return
	}

	resp, err := h.shiftService.CompleteShift(c.Request.Context(), userID, c.Param("shiftId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ShiftHandler) Apply(c *gin.Context) {
	userID, ok := h.MustUserID(c)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.shiftService.ApplyToShift(c.Request.Context(), userID, c.Param("shiftId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ShiftHandler) ListApplications(c *gin.Context) {
	userID, ok := h.MustUserID(c)
	if !ok {
		return
	}

	apps, err := h.shiftService.GetShiftApplications(c.Request.Context(), userID, c.Param("shiftId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *ShiftHandler) MyApplications(c *gin.Context) {
	userID, ok := h.MustUserID(c)
	if !ok {
		return
	}

	apps, err := h.shiftService.GetWorkerApplications(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *ShiftHandler) Accept(c *gin.Context) {
	userID, ok := h.MustUserID(c)
	if !ok {
		return
	}

	resp, err := h.shiftService.AcceptApplication(c.Request.Context(), userID, c.Param("applicationId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ShiftHandler) Reject(c *gin.Context) {
	userID, ok := h.MustUserID(c)
	if !ok {
		return
	}

	resp, err := h.shiftService.RejectApplication(c.Request.Context(), userID, c.Param("applicationId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func normalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
