package services

import (
	"nepshift_backend/internal/config"
	"nepshift_backend/internal/email"
	"nepshift_backend/internal/imageprocessor"
	"nepshift_backend/internal/repositories"
	"nepshift_backend/internal/storage"

	"gorm.io/gorm"
)

// ServiceContainer wires every service over the shared *gorm.DB and the
// stateless repositories.
type ServiceContainer struct {
	Auth         *AuthService
	Verification *VerificationService
	Profile      *ProfileService
	Shift        *ShiftService
	Review       *ReviewService
	Chat         *ChatService
}

func NewServiceContainer(db *gorm.DB, store storage.Storage, emailProvider email.Provider, cfg *config.Config) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	verificationRepo := repositories.NewVerificationRepository()
	profileRepo := repositories.NewProfileRepository()
	shiftRepo := repositories.NewShiftRepository()
	applicationRepo := repositories.NewApplicationRepository()
	reviewRepo := repositories.NewReviewRepository()
	chatRepo := repositories.NewChatRepository()
	uploadRepo := repositories.NewUploadRepository()

	processor := imageprocessor.NewProcessor(cfg.Upload.ImageQuality)
	policy := UploadPolicy{
		MaxSize:      cfg.Upload.MaxSize,
		AllowedTypes: cfg.Upload.AllowedTypes,
	}

	return &ServiceContainer{
		Auth:         NewAuthService(db, userRepo, profileRepo),
		Verification: NewVerificationService(db, verificationRepo, userRepo, uploadRepo, store, processor, emailProvider, policy),
		Profile:      NewProfileService(db, profileRepo),
		Shift:        NewShiftService(db, shiftRepo, applicationRepo, userRepo, profileRepo, verificationRepo, emailProvider),
		Review:       NewReviewService(db, reviewRepo, shiftRepo, applicationRepo, userRepo, profileRepo),
		Chat:         NewChatService(db, chatRepo, userRepo),
	}
}
