package services

import (
	"context"

	"nepshift_backend/internal/auth"
	"nepshift_backend/internal/models"
	"nepshift_backend/internal/repositories"
	"nepshift_backend/internal/services/dto"
	"nepshift_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService struct {
	db          *gorm.DB
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
}

func NewAuthService(db *gorm.DB, userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository) *AuthService {
	return &AuthService{db: db, userRepo: userRepo, profileRepo: profileRepo}
}

// Register creates the account together with its empty role profile so the
// rest of the app can assume the profile row exists.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		FullName:     req.FullName,
		Phone:        req.Phone,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			if apperrors.Is(err, repositories.ErrEmailTaken) {
				return apperrors.ErrEmailAlreadyExists
			}
			return err
		}

		switch user.Role {
		case models.UserRoleHelper:
			return s.profileRepo.CreateWorkerProfile(tx, &models.WorkerProfile{UserID: user.ID, IsAvailable: true})
		case models.UserRoleHirer:
			return s.profileRepo.CreateHirerProfile(tx, &models.HirerProfile{UserID: user.ID, DisplayName: req.FullName})
		}
		return nil
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{Token: token, User: buildUserResponse(user)}, nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(s.db, req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{Token: token, User: buildUserResponse(user)}, nil
}

func (s *AuthService) GetUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(s.db, userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	resp := buildUserResponse(user)
	return &resp, nil
}

func buildUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Role:     user.Role,
		FullName: user.FullName,
		Phone:    user.Phone,
	}
}
