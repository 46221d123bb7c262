package handlers

import (
	"io"
	"net/http"
	"strings"

	"nepshift_backend/internal/middleware"
	"nepshift_backend/internal/models"
	"nepshift_backend/internal/repositories"
	"nepshift_backend/internal/storage"
	"nepshift_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FileHandler streams stored files. Verification documents are private: only
// the uploader and admins may fetch them.
type FileHandler struct {
	*BaseHandler
	db         *gorm.DB
	store      storage.Storage
	uploadRepo repositories.UploadRepository
}

func NewFileHandler(base *BaseHandler, db *gorm.DB, store storage.Storage, uploadRepo repositories.UploadRepository) *FileHandler {
	return &FileHandler{BaseHandler: base, db: db, store: store, uploadRepo: uploadRepo}
}

func (h *FileHandler) RegisterRoutes(r *gin.RouterGroup) {
	files := r.Group("/files")
	files.Use(middleware.AuthMiddleware())
	{
		files.GET("/*path", h.Serve)
	}
}

func (h *FileHandler) Serve(c *gin.Context) {
	userID, ok := h.MustUserID(c)
	if !ok {
		return
	}
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" || strings.Contains(path, "..") {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid file path"))
		return
	}

	upload, err := h.uploadRepo.FindByPath(h.db, path)
	if err != nil {
		h.HandleServiceError(c, apperrors.ErrNotFound(err))
		return
	}

	role, _ := middleware.CurrentRole(c)
	if upload.UserID != userID && role != models.UserRoleAdmin {
		h.HandleServiceError(c, apperrors.ErrInsufficientPermissions)
		return
	}

	reader, err := h.store.Get(c.Request.Context(), path)
	if err != nil {
		h.HandleServiceError(c, apperrors.ErrNotFound(err))
		return
	}
	defer reader.Close()

	c.Header("Content-Type", upload.MimeType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
