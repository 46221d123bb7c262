package repositories

import (
	"nepshift_backend/internal/models"

	"gorm.io/gorm"
)

type ProfileRepository interface {
	CreateWorkerProfile(db *gorm.DB, profile *models.WorkerProfile) error
	FindWorkerByUserID(db *gorm.DB, userID string) (*models.WorkerProfile, error)
	UpdateWorkerProfile(db *gorm.DB, profile *models.WorkerProfile) error
	IncrementJobsCompleted(db *gorm.DB, userID string) error
	UpdateWorkerRating(db *gorm.DB, userID string, average float64, count int) error

	CreateHirerProfile(db *gorm.DB, profile *models.HirerProfile) error
	FindHirerByUserID(db *gorm.DB, userID string) (*models.HirerProfile, error)
	UpdateHirerProfile(db *gorm.DB, profile *models.HirerProfile) error
	UpdateHirerRating(db *gorm.DB, userID string, average float64, count int) error

	SearchWorkers(db *gorm.DB, criteria WorkerSearchCriteria) ([]models.WorkerProfile, int64, error)
}

// WorkerSearchCriteria filters hirer-side worker browsing.
type WorkerSearchCriteria struct {
	City          string
	SkillCategory string
	MaxHourlyRate *float64
	OnlyAvailable bool
	// OnlyVisible gates on the stored completion percentage, so the count
	// and the page come from the same predicate.
	OnlyVisible bool
	Page        int
	PageSize    int
}

type profileRepository struct{}

func NewProfileRepository() ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) CreateWorkerProfile(db *gorm.DB, profile *models.WorkerProfile) error {
	return db.Create(profile).Error
}

func (r *profileRepository) FindWorkerByUserID(db *gorm.DB, userID string) (*models.WorkerProfile, error) {
	var profile models.WorkerProfile
	if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if notFound(err) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) UpdateWorkerProfile(db *gorm.DB, profile *models.WorkerProfile) error {
	return db.Save(profile).Error
}

func (r *profileRepository) IncrementJobsCompleted(db *gorm.DB, userID string) error {
	return db.Model(&models.WorkerProfile{}).
		Where("user_id = ?", userID).
		UpdateColumn("total_jobs_completed", gorm.Expr("total_jobs_completed + 1")).Error
}

func (r *profileRepository) UpdateWorkerRating(db *gorm.DB, userID string, average float64, count int) error {
	return db.Model(&models.WorkerProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"average_rating": average,
			"review_count":   count,
		}).Error
}

func (r *profileRepository) CreateHirerProfile(db *gorm.DB, profile *models.HirerProfile) error {
	return db.Create(profile).Error
}

func (r *profileRepository) FindHirerByUserID(db *gorm.DB, userID string) (*models.HirerProfile, error) {
	var profile models.HirerProfile
	if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if notFound(err) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) UpdateHirerProfile(db *gorm.DB, profile *models.HirerProfile) error {
	return db.Save(profile).Error
}

func (r *profileRepository) UpdateHirerRating(db *gorm.DB, userID string, average float64, count int) error {
	return db.Model(&models.HirerProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"average_rating": average,
			"review_count":   count,
		}).Error
}

func (r *profileRepository) SearchWorkers(db *gorm.DB, criteria WorkerSearchCriteria) ([]models.WorkerProfile, int64, error) {
	q := db.Model(&models.WorkerProfile{})

	if criteria.City != "" {
		q = q.Where("city = ?", criteria.City)
	}
	if criteria.SkillCategory != "" {
		q = q.Where("skill_category = ?", criteria.SkillCategory)
	}
	if criteria.MaxHourlyRate != nil {
		q = q.Where("hourly_rate <= ?", *criteria.MaxHourlyRate)
	}
	if criteria.OnlyAvailable {
		q = q.Where("is_available = ?", true)
	}
	if criteria.OnlyVisible {
		q = q.Where("completion_pct >= ?", models.SearchVisibilityThreshold)
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

	var profiles []models.WorkerProfile
	err := q.Order("average_rating DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}
