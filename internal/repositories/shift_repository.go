package repositories

import (
	"time"

	"nepshift_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShiftRepository interface {
	Create(db *gorm.DB, shift *models.Shift) error
	FindByID(db *gorm.DB, id string) (*models.Shift, error)
	// FindByIDForUpdate locks the shift row for the duration of the enclosing
	// transaction. Apply and accept both re-check status under this lock.
	FindByIDForUpdate(db *gorm.DB, id string) (*models.Shift, error)
	UpdateStatus(db *gorm.DB, shiftID string, status models.ShiftStatus) error
	ListByHirer(db *gorm.DB, hirerID string) ([]models.Shift, error)
	Search(db *gorm.DB, criteria ShiftSearchCriteria) ([]models.Shift, int64, error)
}

type ShiftSearchCriteria struct {
	City     string
	Category string
	PayMin   *float64
	PayMax   *float64
	DateFrom *time.Time
	Status   models.ShiftStatus
	Page     int
	PageSize int
}

type shiftRepository struct{}

func NewShiftRepository() ShiftRepository {
	return &shiftRepository{}
}

func (r *shiftRepository) Create(db *gorm.DB, shift *models.Shift) error {
	return db.Create(shift).Error
}

func (r *shiftRepository) FindByID(db *gorm.DB, id string) (*models.Shift, error) {
	var shift models.Shift
	if err := db.First(&shift, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) FindByIDForUpdate(db *gorm.DB, id string) (*models.Shift, error) {
	var shift models.Shift
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&shift, "id = ?", id).Error
	if err != nil {
		if notFound(err) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) UpdateStatus(db *gorm.DB, shiftID string, status models.ShiftStatus) error {
	return db.Model(&models.Shift{}).
		Where("id = ?", shiftID).
		Update("status", status).Error
}

func (r *shiftRepository) ListByHirer(db *gorm.DB, hirerID string) ([]models.Shift, error) {
	var shifts []models.Shift
	err := db.Preload("Applications").
		Where("hirer_id = ?", hirerID).
		Order("created_at DESC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepository) Search(db *gorm.DB, criteria ShiftSearchCriteria) ([]models.Shift, int64, error) {
	q := db.Model(&models.Shift{})

	status := criteria.Status
	if status == "" {
		status = models.ShiftStatusOpen
	}
	q = q.Where("status = ?", status)

	if criteria.City != "" {
		q = q.Where("city = ?", criteria.City)
	}
	if criteria.Category != "" {
		q = q.Where("category = ?", criteria.Category)
	}
	if criteria.PayMin != nil {
		q = q.Where("pay_max >= ?", *criteria.PayMin)
	}
	if criteria.PayMax != nil {
		q = q.Where("pay_min <= ?", *criteria.PayMax)
	}
	if criteria.DateFrom != nil {
		q = q.Where("date >= ?", *criteria.DateFrom)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var shifts []models.Shift
	err := q.Order("date ASC, created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&shifts).Error
	if err != nil {
		return nil, 0, err
	}
	return shifts, total, nil
}
