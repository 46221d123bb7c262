package repositories

import (
	"nepshift_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VerificationRepository interface {
	Create(db *gorm.DB, profile *models.VerificationProfile) error
	FindByUserID(db *gorm.DB, userID string) (*models.VerificationProfile, error)
	UpdateStatus(db *gorm.DB, profileID string, status models.VerificationStatus, rejectionReason *string) error
	UpsertDocument(db *gorm.DB, doc *models.VerificationDocument) error
	ListByStatus(db *gorm.DB, status models.VerificationStatus, limit, offset int) ([]models.VerificationProfile, int64, error)
}

type verificationRepository struct{}

func NewVerificationRepository() VerificationRepository {
	return &verificationRepository{}
}

func (r *verificationRepository) Create(db *gorm.DB, profile *models.VerificationProfile) error {
	return db.Create(profile).Error
}

func (r *verificationRepository) FindByUserID(db *gorm.DB, userID string) (*models.VerificationProfile, error) {
	var profile models.VerificationProfile
	err := db.Preload("Documents").First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if notFound(err) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *verificationRepository) UpdateStatus(db *gorm.DB, profileID string, status models.VerificationStatus, rejectionReason *string) error {
	return db.Model(&models.VerificationProfile{}).
		Where("id = ?", profileID).
		Updates(map[string]interface{}{
			"status":           status,
			"rejection_reason": rejectionReason,
		}).Error
}

// UpsertDocument overwrites an existing document of the same kind instead of
// duplicating it.
func (r *verificationRepository) UpsertDocument(db *gorm.DB, doc *models.VerificationDocument) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "profile_id"}, {Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"upload_id", "path", "mime_type", "size", "updated_at",
		}),
	}).Create(doc).Error
}

func (r *verificationRepository) ListByStatus(db *gorm.DB, status models.VerificationStatus, limit, offset int) ([]models.VerificationProfile, int64, error) {
	var profiles []models.VerificationProfile
	var total int64

	q := db.Model(&models.VerificationProfile{}).Where("status = ?", status)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Documents").
		Order("updated_at ASC").
		Limit(limit).Offset(offset).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}
