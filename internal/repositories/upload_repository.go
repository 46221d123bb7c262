package repositories

import (
	"nepshift_backend/internal/models"

	"gorm.io/gorm"
)

type UploadRepository interface {
	Create(db *gorm.DB, upload *models.Upload) error
	FindByID(db *gorm.DB, id string) (*models.Upload, error)
	FindByPath(db *gorm.DB, path string) (*models.Upload, error)
	ListByUser(db *gorm.DB, userID string) ([]models.Upload, error)
}

type uploadRepository struct{}

func NewUploadRepository() UploadRepository {
	return &uploadRepository{}
}

func (r *uploadRepository) Create(db *gorm.DB, upload *models.Upload) error {
	return db.Create(upload).Error
}

func (r *uploadRepository) FindByID(db *gorm.DB, id string) (*models.Upload, error) {
	var upload models.Upload
	if err := db.First(&upload, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &upload, nil
}

// FindByPath also matches the thumbnail path, so derived files inherit the
// original's access rules.
func (r *uploadRepository) FindByPath(db *gorm.DB, path string) (*models.Upload, error) {
	var upload models.Upload
	if err := db.First(&upload, "path = ? OR thumbnail_path = ?", path, path).Error; err != nil {
		return nil, err
	}
	return &upload, nil
}

func (r *uploadRepository) ListByUser(db *gorm.DB, userID string) ([]models.Upload, error) {
	var uploads []models.Upload
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&uploads).Error
	return uploads, err
}
