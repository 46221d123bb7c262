package services

import (
	"context"

	"nepshift_backend/internal/models"
	"nepshift_backend/internal/repositories"
	"nepshift_backend/internal/services/dto"
	"nepshift_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ReviewService handles reviews unlocked by shift completion. A review is
// written by one participant of a completed shift about the other, at most
// once per shift per author.
type ReviewService struct {
	db              *gorm.DB
	reviewRepo      repositories.ReviewRepository
	shiftRepo       repositories.ShiftRepository
	applicationRepo repositories.ApplicationRepository
	userRepo        repositories.UserRepository
	profileRepo     repositories.ProfileRepository
}

func NewReviewService(
	db *gorm.DB,
	reviewRepo repositories.ReviewRepository,
	shiftRepo repositories.ShiftRepository,
	applicationRepo repositories.ApplicationRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
) *ReviewService {
	return &ReviewService{
		db:              db,
		reviewRepo:      reviewRepo,
		shiftRepo:       shiftRepo,
		applicationRepo: applicationRepo,
		userRepo:        userRepo,
		profileRepo:     profileRepo,
	}
}

// CanReview reports whether the author may review the given shift, with a
// human-readable reason when they may not.
func (s *ReviewService) CanReview(ctx context.Context, authorID, shiftID string) (*dto.CanReviewResponse, error) {
	_, _, err := s.reviewTarget(s.db, authorID, shiftID)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return &dto.CanReviewResponse{CanReview: false, Reason: appErr.Message}, nil
		}
		return nil, apperrors.InternalError(err)
	}

	exists, err := s.reviewRepo.ExistsByShiftAndAuthor(s.db, shiftID, authorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return &dto.CanReviewResponse{CanReview: false, Reason: "You have already reviewed this shift"}, nil
	}
	return &dto.CanReviewResponse{CanReview: true}, nil
}

// SubmitReview stores the review and refreshes the subject's aggregate
// rating. The composite unique key on (shift, author) settles concurrent
// double submits.
func (s *ReviewService) SubmitReview(ctx context.Context, authorID, shiftID string, req *dto.SubmitReviewRequest) (*dto.ReviewResponse, error) {
	var review *models.Review

	err := s.db.Transaction(func(tx *gorm.DB) error {
		subjectID, _, err := s.reviewTarget(tx, authorID, shiftID)
		if err != nil {
			return err
		}

		review = &models.Review{
			ShiftID:   shiftID,
			AuthorID:  authorID,
			SubjectID: subjectID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		}
		if err := s.reviewRepo.Create(tx, review); err != nil {
			if apperrors.Is(err, repositories.ErrDuplicateReview) {
				return apperrors.ErrAlreadyReviewed
			}
			return err
		}

		return s.recomputeRating(tx, subjectID)
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	return buildReviewResponse(review), nil
}

func (s *ReviewService) GetReviewsForUser(ctx context.Context, subjectID string) ([]dto.ReviewResponse, error) {
	reviews, err := s.reviewRepo.ListBySubject(s.db, subjectID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *buildReviewResponse(&reviews[i]))
	}
	return responses, nil
}

// reviewTarget validates that the shift is completed and the author is a
// participant, and returns the other participant as the review subject.
func (s *ReviewService) reviewTarget(db *gorm.DB, authorID, shiftID string) (subjectID string, shift *models.Shift, err error) {
	shift, err = s.shiftRepo.FindByID(db, shiftID)
	if err != nil {
		return "", nil, apperrors.ErrNotFound(err)
	}
	if shift.Status != models.ShiftStatusCompleted {
		return "", nil, apperrors.ErrShiftNotCompleted
	}

	accepted, err := s.applicationRepo.FindAcceptedByShift(db, shiftID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return "", nil, apperrors.ErrNotShiftParticipant
		}
		return "", nil, err
	}

	switch authorID {
	case shift.HirerID:
		return accepted.WorkerID, shift, nil
	case accepted.WorkerID:
		return shift.HirerID, shift, nil
	default:
		return "", nil, apperrors.ErrNotShiftParticipant
	}
}

// recomputeRating rereads the mean from the reviews table instead of
// maintaining a running sum, so retries and deletes stay correct.
func (s *ReviewService) recomputeRating(db *gorm.DB, subjectID string) error {
	average, count, err := s.reviewRepo.AverageForSubject(db, subjectID)
	if err != nil {
		return err
	}

	subject, err := s.userRepo.FindByID(db, subjectID)
	if err != nil {
		return err
	}

	switch subject.Role {
	case models.UserRoleHelper:
		return s.profileRepo.UpdateWorkerRating(db, subjectID, average, count)
	case models.UserRoleHirer:
		return s.profileRepo.UpdateHirerRating(db, subjectID, average, count)
	default:
		return nil
	}
}

func buildReviewResponse(review *models.Review) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:        review.ID,
		ShiftID:   review.ShiftID,
		AuthorID:  review.AuthorID,
		SubjectID: review.SubjectID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}
