package repositories

import (
	"nepshift_backend/internal/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	// Create relies on the (shift_id, author_id) unique index and reports a
	// double submit as ErrDuplicateReview.
	Create(db *gorm.DB, review *models.Review) error
	ExistsByShiftAndAuthor(db *gorm.DB, shiftID, authorID string) (bool, error)
	ListBySubject(db *gorm.DB, subjectID string) ([]models.Review, error)
	// AverageForSubject recomputes the arithmetic mean and count over all
	// ratings the subject has received.
	AverageForSubject(db *gorm.DB, subjectID string) (float64, int, error)
}

type reviewRepository struct{}

func NewReviewRepository() ReviewRepository {
	return &reviewRepository{}
}

func (r *reviewRepository) Create(db *gorm.DB, review *models.Review) error {
	if err := db.Create(review).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateReview
		}
		return err
	}
	return nil
}

func (r *reviewRepository) ExistsByShiftAndAuthor(db *gorm.DB, shiftID, authorID string) (bool, error) {
	var count int64
	err := db.Model(&models.Review{}).
		Where("shift_id = ? AND author_id = ?", shiftID, authorID).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) ListBySubject(db *gorm.DB, subjectID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Where("subject_id = ?", subjectID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) AverageForSubject(db *gorm.DB, subjectID string) (float64, int, error) {
	var result struct {
		Average float64
		Count   int64
	}
	err := db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("subject_id = ?", subjectID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.Average, int(result.Count), nil
}
