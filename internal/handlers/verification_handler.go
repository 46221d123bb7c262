package handlers

import (
	"net/http"

	"nepshift_backend/internal/middleware"
	"nepshift_backend/internal/models"
	"nepshift_backend/internal/services"
	"nepshift_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	*BaseHandler
	verificationService *services.VerificationService
}

func NewVerificationHandler(base *BaseHandler, verificationService *services.VerificationService) *VerificationHandler {
	return &VerificationHandler{BaseHandler: base, verificationService: verificationService}
}

func (h *VerificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	verification := r.Group("/verification")
	verification.Use(middleware.AuthMiddleware())
	{
		verification.GET("", h.GetStatus)
		verification.POST("/documents", h.UploadDocument)
		verification.POST("/submit", h.Submit)
	}
}

func (h *VerificationHandler) GetStatus(c *gin.Context) {
	userID, ok := h.MustUserID(c)
	if !ok {
		return
	}

	resp, err := h.verificationService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UploadDocument takes multipart form data: a "kind" field plus a "file".
func (h *VerificationHandler) UploadDocument(c *gin.Context) {
	userID, ok := h.MustUserID(c)
	if !ok {
		return
	}

	kind := c.PostForm("kind")
	if kind == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Form field 'kind' is required"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Form file 'file' is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer file.Close()

	resp, err := h.verificationService.UploadDocument(c.Request.Context(), userID, services.DocumentUpload{
		Kind:        models.DocumentKind(kind),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VerificationHandler) Submit(c *gin.Context) {
	userID, ok := h.MustUserID(c)
	if !ok {
		return
	}

	resp, err := h.verificationService.Submit(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
