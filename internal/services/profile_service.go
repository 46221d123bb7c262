package services

import (
	"context"

	"nepshift_backend/internal/models"
	"nepshift_backend/internal/repositories"
	"nepshift_backend/internal/services/dto"
	"nepshift_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProfileService struct {
	db          *gorm.DB
	profileRepo repositories.ProfileRepository
}

func NewProfileService(db *gorm.DB, profileRepo repositories.ProfileRepository) *ProfileService {
	return &ProfileService{db: db, profileRepo: profileRepo}
}

func (s *ProfileService) GetWorkerProfile(ctx context.Context, userID string) (*dto.WorkerProfileResponse, error) {
	profile, err := s.profileRepo.FindWorkerByUserID(s.db, userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return buildWorkerProfileResponse(profile), nil
}

func (s *ProfileService) UpdateWorkerProfile(ctx context.Context, userID string, req *dto.UpdateWorkerProfileRequest) (*dto.WorkerProfileResponse, error) {
	profile, err := s.profileRepo.FindWorkerByUserID(s.db, userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if req.SkillCategory != nil {
		profile.SkillCategory = *req.SkillCategory
	}
	if req.YearsOfExperience != nil {
		profile.YearsOfExperience = *req.YearsOfExperience
	}
	if req.AboutMe != nil {
		profile.AboutMe = *req.AboutMe
	}
	if req.HourlyRate != nil {
		profile.HourlyRate = *req.HourlyRate
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}
	if req.City != nil {
		profile.City = *req.City
	}
	if req.Latitude != nil {
		profile.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		profile.Longitude = req.Longitude
	}
	if req.Skills != nil {
		profile.SetSkills(req.Skills)
	}
	if req.IsAvailable != nil {
		profile.IsAvailable = *req.IsAvailable
	}

	if err := s.profileRepo.UpdateWorkerProfile(s.db, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildWorkerProfileResponse(profile), nil
}

func (s *ProfileService) GetHirerProfile(ctx context.Context, userID string) (*dto.HirerProfileResponse, error) {
	profile, err := s.profileRepo.FindHirerByUserID(s.db, userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return buildHirerProfileResponse(profile), nil
}

func (s *ProfileService) UpdateHirerProfile(ctx context.Context, userID string, req *dto.UpdateHirerProfileRequest) (*dto.HirerProfileResponse, error) {
	profile, err := s.profileRepo.FindHirerByUserID(s.db, userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.CompanyName != nil {
		profile.CompanyName = *req.CompanyName
	}
	if req.ContactPerson != nil {
		profile.ContactPerson = *req.ContactPerson
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.City != nil {
		profile.City = *req.City
	}
	if req.Description != nil {
		profile.Description = *req.Description
	}

	if err := s.profileRepo.UpdateHirerProfile(s.db, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildHirerProfileResponse(profile), nil
}

// SearchWorkers returns workers matching the criteria. Profiles below the
// completion threshold stay out of the results even when they match; the
// gate runs in the query so total counts the same set the page came from.
func (s *ProfileService) SearchWorkers(ctx context.Context, req *dto.WorkerSearchRequest) ([]dto.WorkerProfileResponse, int64, error) {
	profiles, total, err := s.profileRepo.SearchWorkers(s.db, repositories.WorkerSearchCriteria{
		City:          req.City,
		SkillCategory: req.SkillCategory,
		MaxHourlyRate: req.MaxHourlyRate,
		OnlyAvailable: true,
		OnlyVisible:   true,
		Page:          req.Page,
		PageSize:      req.PageSize,
	})
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	responses := make([]dto.WorkerProfileResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, *buildWorkerProfileResponse(&profiles[i]))
	}
	return responses, total, nil
}

func buildWorkerProfileResponse(profile *models.WorkerProfile) *dto.WorkerProfileResponse {
	return &dto.WorkerProfileResponse{
		UserID:               profile.UserID,
		SkillCategory:        profile.SkillCategory,
		YearsOfExperience:    profile.YearsOfExperience,
		AboutMe:              profile.AboutMe,
		HourlyRate:           profile.HourlyRate,
		Address:              profile.Address,
		City:                 profile.City,
		Latitude:             profile.Latitude,
		Longitude:            profile.Longitude,
		Skills:               profile.GetSkills(),
		IsAvailable:          profile.IsAvailable,
		AverageRating:        profile.AverageRating,
		ReviewCount:          profile.ReviewCount,
		TotalJobsCompleted:   profile.TotalJobsCompleted,
		CompletionPercentage: profile.CompletionPercentage(),
	}
}

func buildHirerProfileResponse(profile *models.HirerProfile) *dto.HirerProfileResponse {
	return &dto.HirerProfileResponse{
		UserID:        profile.UserID,
		DisplayName:   profile.DisplayName,
		CompanyName:   profile.CompanyName,
		ContactPerson: profile.ContactPerson,
		Phone:         profile.Phone,
		City:          profile.City,
		Description:   profile.Description,
		AverageRating: profile.AverageRating,
		ReviewCount:   profile.ReviewCount,
	}
}
