package handlers

import (
	"strconv"

	"nepshift_backend/internal/logger"
	"nepshift_backend/internal/middleware"
	"nepshift_backend/internal/validator"
	"nepshift_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		logger.WithError(err).Warn("failed to bind request body", "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) BindAndValidateQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		logger.WithError(err).Warn("failed to bind query params", "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	err := h.validator.Validate(obj)
	if err == nil {
		return true
	}
	if vErr, ok := err.(*validator.ValidationError); ok {
		logger.Warn("validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
	} else {
		logger.WithError(err).Error("validator error", "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
	return false
}

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		logger.Warn("service error",
			"code", appErr.Code,
			"error", appErr.Message,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
		return
	}
	logger.WithError(err).Error("internal server error", "path", c.Request.URL.Path)
	apperrors.HandleError(c, apperrors.InternalError(err))
}

// MustUserID reads the authenticated user id put there by AuthMiddleware.
func (h *BaseHandler) MustUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok || userID == "" {
		logger.Warn("unauthorized access: no user in context",
			"path", c.Request.URL.Path, "ip", c.ClientIP())
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return "", false
	}
	return userID, true
}

func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func ParsePagination(c *gin.Context) (page, pageSize int) {
	const maxPageSize = 100

	page = ParseQueryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize = ParseQueryInt(c, "page_size", 20)
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = 20
	}
	return page, pageSize
}
