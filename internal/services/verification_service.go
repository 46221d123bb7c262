package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"nepshift_backend/internal/imageprocessor"
	"nepshift_backend/internal/logger"
	"nepshift_backend/internal/models"
	"nepshift_backend/internal/repositories"
	"nepshift_backend/internal/services/dto"
	"nepshift_backend/internal/storage"
	"nepshift_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentUpload describes one incoming verification document file.
type DocumentUpload struct {
	Kind        models.DocumentKind
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UploadPolicy externalizes the document constraints (5MB, image/PDF by
// default; see config).
type UploadPolicy struct {
	MaxSize      int64
	AllowedTypes []string
}

func (p UploadPolicy) allows(contentType string) bool {
	for _, t := range p.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

// VerificationService drives the identity-verification lifecycle:
// unverified -> pending -> approved | rejected, with rejected re-entering
// unverified on the next document upload. One role-parameterized workflow
// serves helpers and hirers.
type VerificationService struct {
	db               *gorm.DB
	verificationRepo repositories.VerificationRepository
	userRepo         repositories.UserRepository
	uploadRepo       repositories.UploadRepository
	store            storage.Storage
	processor        *imageprocessor.Processor
	email            Notifier
	policy           UploadPolicy
}

// Notifier is the slice of the email provider the services need.
type Notifier interface {
	SendVerificationApproved(to, name string) error
	SendVerificationRejected(to, name, reason string) error
	SendApplicationAccepted(to, shiftTitle string) error
	SendApplicationRejected(to, shiftTitle string) error
}

func NewVerificationService(
	db *gorm.DB,
	verificationRepo repositories.VerificationRepository,
	userRepo repositories.UserRepository,
	uploadRepo repositories.UploadRepository,
	store storage.Storage,
	processor *imageprocessor.Processor,
	email Notifier,
	policy UploadPolicy,
) *VerificationService {
	return &VerificationService{
		db:               db,
		verificationRepo: verificationRepo,
		userRepo:         userRepo,
		uploadRepo:       uploadRepo,
		store:            store,
		processor:        processor,
		email:            email,
		policy:           policy,
	}
}

// GetProfile returns the verification state, creating the empty profile on
// first access.
func (s *VerificationService) GetProfile(ctx context.Context, userID string) (*dto.VerificationResponse, error) {
	profile, err := s.getOrCreate(s.db, userID)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, profile), nil
}

// UploadDocument stores or overwrites the document under kind. It never
// moves the profile forward; the one status effect is the explicit
// rejected -> unverified reset that reopens editing after a rejection.
func (s *VerificationService) UploadDocument(ctx context.Context, userID string, upload DocumentUpload) (*dto.VerificationResponse, error) {
	user, err := s.userRepo.FindByID(s.db, userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if !models.ValidDocumentKind(user.Role, upload.Kind) {
		return nil, apperrors.ErrInvalidDocumentKind
	}
	if upload.Size > s.policy.MaxSize {
		return nil, apperrors.ErrFileTooLarge
	}
	if !s.policy.allows(upload.ContentType) {
		return nil, apperrors.ErrInvalidFileType
	}

	data, err := io.ReadAll(io.LimitReader(upload.Reader, s.policy.MaxSize+1))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if int64(len(data)) > s.policy.MaxSize {
		return nil, apperrors.ErrFileTooLarge
	}

	path := fmt.Sprintf("verification/%s/%s%s", userID, uuid.NewString(), safeExt(upload.FileName))
	if err := s.store.Save(ctx, path, bytes.NewReader(data), upload.ContentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	thumbPath := ""
	if strings.HasPrefix(upload.ContentType, "image/") {
		thumbPath = s.makeThumbnail(ctx, path, data)
	}

	var profile *models.VerificationProfile
	err = s.db.Transaction(func(tx *gorm.DB) error {
		profile, err = s.getOrCreate(tx, userID)
		if err != nil {
			return err
		}

		uploadRow := &models.Upload{
			UserID:        userID,
			Usage:         "verification_document",
			Path:          path,
			ThumbnailPath: thumbPath,
			MimeType:      upload.ContentType,
			Size:          int64(len(data)),
			OriginalName:  upload.FileName,
		}
		if err := s.uploadRepo.Create(tx, uploadRow); err != nil {
			return err
		}

		doc := &models.VerificationDocument{
			ProfileID: profile.ID,
			Kind:      upload.Kind,
			UploadID:  uploadRow.ID,
			Path:      path,
			MimeType:  upload.ContentType,
			Size:      int64(len(data)),
		}
		if err := s.verificationRepo.UpsertDocument(tx, doc); err != nil {
			return err
		}

		// Explicit re-entry: a rejected profile becomes editable again the
		// moment any document changes.
		if profile.Status == models.VerificationStatusRejected {
			if err := s.verificationRepo.UpdateStatus(tx, profile.ID, models.VerificationStatusUnverified, nil); err != nil {
				return err
			}
		}

		profile, err = s.verificationRepo.FindByUserID(tx, userID)
		return err
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	return s.buildResponse(ctx, profile), nil
}

// Submit moves the profile to pending once every required document is present.
func (s *VerificationService) Submit(ctx context.Context, userID string) (*dto.VerificationResponse, error) {
	var profile *models.VerificationProfile

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		profile, err = s.getOrCreate(tx, userID)
		if err != nil {
			return err
		}

		switch profile.Status {
		case models.VerificationStatusPending, models.VerificationStatusApproved:
			return apperrors.ErrAlreadySubmitted
		}

		if missing := profile.MissingDocuments(); len(missing) > 0 {
			return apperrors.ErrDocumentsIncomplete.WithDetails(map[string]interface{}{
				"missing_documents": missing,
			})
		}

		if err := s.verificationRepo.UpdateStatus(tx, profile.ID, models.VerificationStatusPending, nil); err != nil {
			return err
		}
		profile.Status = models.VerificationStatusPending
		profile.RejectionReason = nil
		return nil
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	return s.buildResponse(ctx, profile), nil
}

// Approve transitions pending -> approved. Admin-only; the role check lives
// in middleware, state checks live here.
func (s *VerificationService) Approve(ctx context.Context, targetUserID string) error {
	return s.decide(ctx, targetUserID, models.VerificationStatusApproved, nil)
}

// Reject transitions pending -> rejected and records the reason.
func (s *VerificationService) Reject(ctx context.Context, targetUserID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return apperrors.ValidationError(map[string]string{"reason": "This field is required"})
	}
	return s.decide(ctx, targetUserID, models.VerificationStatusRejected, &reason)
}

func (s *VerificationService) decide(ctx context.Context, targetUserID string, status models.VerificationStatus, reason *string) error {
	var user *models.User

	err := s.db.Transaction(func(tx *gorm.DB) error {
		profile, err := s.verificationRepo.FindByUserID(tx, targetUserID)
		if err != nil {
			return apperrors.ErrNotFound(err)
		}

		if profile.Status != models.VerificationStatusPending {
			return apperrors.ErrVerificationNotPending
		}

		user, err = s.userRepo.FindByID(tx, targetUserID)
		if err != nil {
			return apperrors.ErrNotFound(err)
		}

		return s.verificationRepo.UpdateStatus(tx, profile.ID, status, reason)
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return appErr
		}
		return apperrors.InternalError(err)
	}

	go s.notifyDecision(user, status, reason)
	return nil
}

// IsVerified is the convenience query: true iff status is approved.
func (s *VerificationService) IsVerified(ctx context.Context, userID string) (bool, error) {
	profile, err := s.verificationRepo.FindByUserID(s.db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrVerificationNotFound) {
			return false, nil
		}
		return false, apperrors.InternalError(err)
	}
	return profile.IsVerified(), nil
}

// ListPending returns profiles awaiting review, oldest submissions first.
func (s *VerificationService) ListPending(ctx context.Context, page, pageSize int) ([]dto.PendingVerificationSummary, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	profiles, total, err := s.verificationRepo.ListByStatus(
		s.db, models.VerificationStatusPending, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	summaries := make([]dto.PendingVerificationSummary, 0, len(profiles))
	for _, p := range profiles {
		summaries = append(summaries, dto.PendingVerificationSummary{
			ProfileID:   p.ID,
			UserID:      p.UserID,
			Role:        p.Role,
			SubmittedAt: p.UpdatedAt,
		})
	}
	return summaries, total, nil
}

// --- Helpers ---

func (s *VerificationService) getOrCreate(db *gorm.DB, userID string) (*models.VerificationProfile, error) {
	profile, err := s.verificationRepo.FindByUserID(db, userID)
	if err == nil {
		return profile, nil
	}
	if !apperrors.Is(err, repositories.ErrVerificationNotFound) {
		return nil, err
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	profile = &models.VerificationProfile{
		UserID: userID,
		Role:   user.Role,
		Status: models.VerificationStatusUnverified,
	}
	if err := s.verificationRepo.Create(db, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *VerificationService) makeThumbnail(ctx context.Context, originalPath string, data []byte) string {
	thumb, _, err := s.processor.ProcessImage(bytes.NewReader(data), imageprocessor.SizeThumbnail)
	if err != nil {
		logger.Warn("thumbnail generation failed", "path", originalPath, "error", err)
		return ""
	}

	thumbPath := strings.TrimSuffix(originalPath, filepath.Ext(originalPath)) + "_thumb.jpg"
	if err := s.store.Save(ctx, thumbPath, thumb, "image/jpeg"); err != nil {
		logger.Warn("thumbnail save failed", "path", thumbPath, "error", err)
		return ""
	}
	return thumbPath
}

func (s *VerificationService) notifyDecision(user *models.User, status models.VerificationStatus, reason *string) {
	var err error
	switch status {
	case models.VerificationStatusApproved:
		err = s.email.SendVerificationApproved(user.Email, user.FullName)
	case models.VerificationStatusRejected:
		msg := ""
		if reason != nil {
			msg = *reason
		}
		err = s.email.SendVerificationRejected(user.Email, user.FullName, msg)
	}
	if err != nil {
		logger.Warn("verification decision email failed", "user_id", user.ID, "error", err)
	}
}

func (s *VerificationService) buildResponse(ctx context.Context, profile *models.VerificationProfile) *dto.VerificationResponse {
	docs := make([]dto.DocumentResponse, 0, len(profile.Documents))
	for _, d := range profile.Documents {
		url, err := s.store.GetURL(ctx, d.Path)
		if err != nil {
			url = ""
		}
		docs = append(docs, dto.DocumentResponse{
			Kind:       d.Kind,
			URL:        url,
			MimeType:   d.MimeType,
			Size:       d.Size,
			UploadedAt: d.UpdatedAt,
		})
	}

	return &dto.VerificationResponse{
		Status:               profile.Status,
		IsVerified:           profile.IsVerified(),
		CompletionPercentage: profile.CompletionPercentage(),
		RejectionReason:      profile.RejectionReason,
		MissingDocuments:     profile.MissingDocuments(),
		Documents:            docs,
	}
}

func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".pdf":
		return ext
	default:
		return ""
	}
}
