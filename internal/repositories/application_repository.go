package repositories

import (
	"nepshift_backend/internal/models"

	"gorm.io/gorm"
)

type ApplicationRepository interface {
	// Create relies on the partial unique index
	// (shift_id, worker_id) WHERE status <> 'rejected' and reports a race
	// as ErrDuplicateApplication.
	Create(db *gorm.DB, app *models.ShiftApplication) error
	FindByID(db *gorm.DB, id string) (*models.ShiftApplication, error)
	UpdateStatus(db *gorm.DB, appID string, status models.ApplicationStatus) error
	RejectSiblings(db *gorm.DB, shiftID, acceptedAppID string) error
	ListByShift(db *gorm.DB, shiftID string) ([]models.ShiftApplication, error)
	ListByWorker(db *gorm.DB, workerID string) ([]models.ShiftApplication, error)
	FindAcceptedByShift(db *gorm.DB, shiftID string) (*models.ShiftApplication, error)
}

type applicationRepository struct{}

func NewApplicationRepository() ApplicationRepository {
	return &applicationRepository{}
}

func (r *applicationRepository) Create(db *gorm.DB, app *models.ShiftApplication) error {
	if err := db.Create(app).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateApplication
		}
		return err
	}
	return nil
}

func (r *applicationRepository) FindByID(db *gorm.DB, id string) (*models.ShiftApplication, error) {
	var app models.ShiftApplication
	if err := db.First(&app, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) UpdateStatus(db *gorm.DB, appID string, status models.ApplicationStatus) error {
	return db.Model(&models.ShiftApplication{}).
		Where("id = ?", appID).
		Update("status", status).Error
}

// RejectSiblings rejects every still-pending application on the shift except
// the accepted one.
func (r *applicationRepository) RejectSiblings(db *gorm.DB, shiftID, acceptedAppID string) error {
	return db.Model(&models.ShiftApplication{}).
		Where("shift_id = ? AND id <> ? AND status = ?", shiftID, acceptedAppID, models.ApplicationStatusPending).
		Update("status", models.ApplicationStatusRejected).Error
}

func (r *applicationRepository) ListByShift(db *gorm.DB, shiftID string) ([]models.ShiftApplication, error) {
	var apps []models.ShiftApplication
	err := db.Where("shift_id = ?", shiftID).
		Order("created_at ASC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) ListByWorker(db *gorm.DB, workerID string) ([]models.ShiftApplication, error) {
	var apps []models.ShiftApplication
	err := db.Preload("Shift").
		Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) FindAcceptedByShift(db *gorm.DB, shiftID string) (*models.ShiftApplication, error) {
	var app models.ShiftApplication
	err := db.First(&app, "shift_id = ? AND status = ?", shiftID, models.ApplicationStatusAccepted).Error
	if err != nil {
		if notFound(err) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}
