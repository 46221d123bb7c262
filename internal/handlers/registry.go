package handlers

import (
	"nepshift_backend/internal/repositories"
	"nepshift_backend/internal/services"
	"nepshift_backend/internal/storage"
	"nepshift_backend/internal/validator"

	"gorm.io/gorm"
)

// AppHandlers bundles all HTTP handlers of the application.
type AppHandlers struct {
	Auth         *AuthHandler
	Verification *VerificationHandler
	Profile      *ProfileHandler
	Shift        *ShiftHandler
	Review       *ReviewHandler
	Chat         *ChatHandler
	Admin        *AdminHandler
	File         *FileHandler
}

func NewAppHandlers(container *services.ServiceContainer, v *validator.Validator, db *gorm.DB, store storage.Storage) *AppHandlers {
	base := NewBaseHandler(v)
	return &AppHandlers{
		Auth:         NewAuthHandler(base, container.Auth),
		Verification: NewVerificationHandler(base, container.Verification),
		Profile:      NewProfileHandler(base, container.Profile),
		Shift:        NewShiftHandler(base, container.Shift),
		Review:       NewReviewHandler(base, container.Review),
		Chat:         NewChatHandler(base, container.Chat),
		Admin:        NewAdminHandler(base, container.Verification),
		File:         NewFileHandler(base, db, store, repositories.NewUploadRepository()),
	}
}
