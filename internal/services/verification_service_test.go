package services

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"nepshift_backend/internal/imageprocessor"
	"nepshift_backend/internal/models"
	"nepshift_backend/internal/storage"
	"nepshift_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verificationFixture struct {
	svc          *VerificationService
	users        *fakeUserRepo
	verification *fakeVerificationRepo
	uploads      *fakeUploadRepo
	notifier     *fakeNotifier

	helper *models.User
}

func newVerificationFixture(t *testing.T) *verificationFixture {
	t.Helper()
	f := &verificationFixture{
		users:        newFakeUserRepo(),
		verification: newFakeVerificationRepo(),
		uploads:      newFakeUploadRepo(),
		notifier:     &fakeNotifier{},
	}

	store, err := storage.NewStorage(storage.Config{Type: "local", BasePath: t.TempDir(), BaseURL: "/files"})
	require.NoError(t, err)

	policy := UploadPolicy{
		MaxSize:      1024,
		AllowedTypes: []string{"image/jpeg", "image/png", "application/pdf"},
	}
	f.svc = NewVerificationService(testDB(t), f.verification, f.users, f.uploads, store, imageprocessor.NewProcessor(85), f.notifier, policy)

	f.helper = f.users.add(&models.User{Email: "helper@example.com", Role: models.UserRoleHelper, FullName: "Helper"})
	return f
}

func (f *verificationFixture) upload(kind models.DocumentKind) DocumentUpload {
	content := []byte("%PDF-1.4 stub")
	return DocumentUpload{
		Kind:        kind,
		FileName:    string(kind) + ".pdf",
		ContentType: "application/pdf",
		Size:        int64(len(content)),
		Reader:      bytes.NewReader(content),
	}
}

func (f *verificationFixture) uploadAllRequired(t *testing.T) {
	t.Helper()
	for _, kind := range models.RequiredDocuments(models.UserRoleHelper) {
		_, err := f.svc.UploadDocument(context.Background(), f.helper.ID, f.upload(kind))
		require.NoError(t, err)
	}
}

func TestVerificationUploadDocument(t *testing.T) {
	t.Run("first upload creates the profile", func(t *testing.T) {
		f := newVerificationFixture(t)

		resp, err := f.svc.UploadDocument(context.Background(), f.helper.ID, f.upload(models.DocumentKindCitizenshipFront))
		require.NoError(t, err)
		assert.Equal(t, models.VerificationStatusUnverified, resp.Status)
		assert.Len(t, resp.Documents, 1)
		assert.NotContains(t, resp.MissingDocuments, models.DocumentKindCitizenshipFront)
	})

	t.Run("re-upload overwrites the same kind", func(t *testing.T) {
		f := newVerificationFixture(t)

		_, err := f.svc.UploadDocument(context.Background(), f.helper.ID, f.upload(models.DocumentKindCitizenshipFront))
		require.NoError(t, err)
		resp, err := f.svc.UploadDocument(context.Background(), f.helper.ID, f.upload(models.DocumentKindCitizenshipFront))
		require.NoError(t, err)
		assert.Len(t, resp.Documents, 1)
	})

	t.Run("unknown kind is refused", func(t *testing.T) {
		f := newVerificationFixture(t)

		doc := f.upload("passport_page")
		_, err := f.svc.UploadDocument(context.Background(), f.helper.ID, doc)
		assert.ErrorIs(t, err, apperrors.ErrInvalidDocumentKind)
	})

	t.Run("oversized file is refused", func(t *testing.T) {
		f := newVerificationFixture(t)

		doc := f.upload(models.DocumentKindCitizenshipFront)
		doc.Size = 4096
		_, err := f.svc.UploadDocument(context.Background(), f.helper.ID, doc)
		assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)

		// size violations are validation failures, same as the other
		// upload constraints
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
	})

	t.Run("size is re-checked against the actual stream", func(t *testing.T) {
		f := newVerificationFixture(t)

		doc := f.upload(models.DocumentKindCitizenshipFront)
		doc.Size = 10 // lies about the size
		doc.Reader = strings.NewReader(strings.Repeat("a", 2048))
		_, err := f.svc.UploadDocument(context.Background(), f.helper.ID, doc)
		assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
	})

	t.Run("disallowed content type is refused", func(t *testing.T) {
		f := newVerificationFixture(t)

		doc := f.upload(models.DocumentKindCitizenshipFront)
		doc.ContentType = "image/gif"
		_, err := f.svc.UploadDocument(context.Background(), f.helper.ID, doc)
		assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
	})

	t.Run("upload after rejection reopens the profile", func(t *testing.T) {
		f := newVerificationFixture(t)
		f.uploadAllRequired(t)

		_, err := f.svc.Submit(context.Background(), f.helper.ID)
		require.NoError(t, err)
		require.NoError(t, f.svc.Reject(context.Background(), f.helper.ID, "selfie is blurry"))

		resp, err := f.svc.UploadDocument(context.Background(), f.helper.ID, f.upload(models.DocumentKindSelfieWithID))
		require.NoError(t, err)
		assert.Equal(t, models.VerificationStatusUnverified, resp.Status)
	})
}

func TestVerificationSubmit(t *testing.T) {
	t.Run("submit with missing documents fails with details", func(t *testing.T) {
		f := newVerificationFixture(t)

		_, err := f.svc.UploadDocument(context.Background(), f.helper.ID, f.upload(models.DocumentKindCitizenshipFront))
		require.NoError(t, err)

		_, err = f.svc.Submit(context.Background(), f.helper.ID)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodePreconditionFailed, appErr.Code)
		assert.Contains(t, appErr.Details.(map[string]interface{}), "missing_documents")
	})

	t.Run("complete documents move the profile to pending", func(t *testing.T) {
		f := newVerificationFixture(t)
		f.uploadAllRequired(t)

		resp, err := f.svc.Submit(context.Background(), f.helper.ID)
		require.NoError(t, err)
		assert.Equal(t, models.VerificationStatusPending, resp.Status)
		assert.Equal(t, 100, resp.CompletionPercentage)
	})

	t.Run("double submit is refused", func(t *testing.T) {
		f := newVerificationFixture(t)
		f.uploadAllRequired(t)

		_, err := f.svc.Submit(context.Background(), f.helper.ID)
		require.NoError(t, err)

		_, err = f.svc.Submit(context.Background(), f.helper.ID)
		assert.ErrorIs(t, err, apperrors.ErrAlreadySubmitted)
	})
}

func TestVerificationDecisions(t *testing.T) {
	submitted := func(t *testing.T) *verificationFixture {
		f := newVerificationFixture(t)
		f.uploadAllRequired(t)
		_, err := f.svc.Submit(context.Background(), f.helper.ID)
		require.NoError(t, err)
		return f
	}

	t.Run("approve marks the user verified", func(t *testing.T) {
		f := submitted(t)

		require.NoError(t, f.svc.Approve(context.Background(), f.helper.ID))

		verified, err := f.svc.IsVerified(context.Background(), f.helper.ID)
		require.NoError(t, err)
		assert.True(t, verified)
	})

	t.Run("reject keeps the reason", func(t *testing.T) {
		f := submitted(t)

		require.NoError(t, f.svc.Reject(context.Background(), f.helper.ID, "document unreadable"))

		profile, err := f.verification.FindByUserID(nil, f.helper.ID)
		require.NoError(t, err)
		assert.Equal(t, models.VerificationStatusRejected, profile.Status)
		require.NotNil(t, profile.RejectionReason)
		assert.Equal(t, "document unreadable", *profile.RejectionReason)

		verified, err := f.svc.IsVerified(context.Background(), f.helper.ID)
		require.NoError(t, err)
		assert.False(t, verified)
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		f := submitted(t)

		err := f.svc.Reject(context.Background(), f.helper.ID, "   ")
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	})

	t.Run("deciding a non-pending profile fails", func(t *testing.T) {
		f := submitted(t)

		require.NoError(t, f.svc.Approve(context.Background(), f.helper.ID))
		err := f.svc.Approve(context.Background(), f.helper.ID)
		assert.ErrorIs(t, err, apperrors.ErrVerificationNotPending)
	})

	t.Run("never-submitted user is not verified", func(t *testing.T) {
		f := newVerificationFixture(t)

		verified, err := f.svc.IsVerified(context.Background(), f.helper.ID)
		require.NoError(t, err)
		assert.False(t, verified)
	})
}
