package apperrors

import (
	"net/http"
)

/*
Factories and predefined variables for domain errors shared across services.
One variable per stable error, factories where the message varies.
*/

// --- Factories ---

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound) into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is used for uniqueness races; callers may retry with fresh state.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidStatus signals an operation invalid for the entity's current state.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// ErrPrecondition signals a required condition the caller can still satisfy,
// e.g. missing verification documents before a submit.
func ErrPrecondition(domain, message string) *AppError {
	return New(CodePreconditionFailed, domain, message, http.StatusUnprocessableEntity)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Auth & roles ---

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

// --- Verification ---

var ErrDocumentsIncomplete = New(
	CodePreconditionFailed,
	"verification",
	"All required documents must be uploaded before submitting",
	http.StatusUnprocessableEntity,
)

var ErrVerificationNotPending = New(
	CodeInvalidStatus,
	"verification",
	"Verification is not awaiting review",
	http.StatusConflict,
)

var ErrAlreadySubmitted = New(
	CodeInvalidStatus,
	"verification",
	"Verification has already been submitted or approved",
	http.StatusConflict,
)

var ErrWorkerNotVerified = New(
	CodeForbidden,
	"eligibility",
	"Identity verification must be approved before bidding",
	http.StatusForbidden,
)

// --- Uploads ---

var ErrFileTooLarge = New(
	CodeValidationFailed,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusBadRequest,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

var ErrInvalidDocumentKind = New(
	CodeValidationFailed,
	"verification",
	"Unknown document kind for this role",
	http.StatusBadRequest,
)

// --- Shifts & applications ---

var ErrShiftNotOpen = New(
	CodeInvalidStatus,
	"shift",
	"Shift is no longer accepting applications",
	http.StatusConflict,
)

var ErrShiftAlreadyFinished = New(
	CodeInvalidStatus,
	"shift",
	"Shift is already completed or cancelled",
	http.StatusConflict,
)

var ErrApplicationNotPending = New(
	CodeInvalidStatus,
	"application",
	"Application has already been decided",
	http.StatusConflict,
)

var ErrDuplicateApplication = New(
	CodeConflict,
	"application",
	"An active application for this shift already exists",
	http.StatusConflict,
)

var ErrCannotApplyToOwnShift = New(
	CodeInvalidOperation,
	"application",
	"Cannot apply to your own shift",
	http.StatusBadRequest,
)

// --- Reviews ---

var ErrShiftNotCompleted = New(
	CodeForbidden,
	"review",
	"Reviews open only after the shift is completed",
	http.StatusForbidden,
)

var ErrNotShiftParticipant = New(
	CodeForbidden,
	"review",
	"Only shift participants may leave a review",
	http.StatusForbidden,
)

var ErrAlreadyReviewed = New(
	CodeConflict,
	"review",
	"You have already reviewed this shift",
	http.StatusConflict,
)

// --- Chat ---

var ErrChatAccessDenied = New(
	CodeForbidden,
	"chat",
	"Access to this chat room denied",
	http.StatusForbidden,
)
