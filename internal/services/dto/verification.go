package dto

import (
	"time"

	"nepshift_backend/internal/models"
)

type UploadDocumentRequest struct {
	Kind models.DocumentKind `form:"kind" validate:"required"`
}

type RejectVerificationRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

type DocumentResponse struct {
	Kind       models.DocumentKind `json:"kind"`
	URL        string              `json:"url"`
	MimeType   string              `json:"mime_type"`
	Size       int64               `json:"size"`
	UploadedAt time.Time           `json:"uploaded_at"`
}

type VerificationResponse struct {
	Status               models.VerificationStatus `json:"status"`
	IsVerified           bool                      `json:"is_verified"`
	CompletionPercentage int                       `json:"completion_percentage"`
	RejectionReason      *string                   `json:"rejection_reason,omitempty"`
	MissingDocuments     []models.DocumentKind     `json:"missing_documents,omitempty"`
	Documents            []DocumentResponse        `json:"documents"`
}

type PendingVerificationSummary struct {
	ProfileID   string          `json:"profile_id"`
	UserID      string          `json:"user_id"`
	Role        models.UserRole `json:"role"`
	SubmittedAt time.Time       `json:"submitted_at"`
}
