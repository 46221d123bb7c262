package services

import (
	"context"
	"encoding/json"

	"nepshift_backend/internal/logger"
	"nepshift_backend/internal/models"
	"nepshift_backend/internal/repositories"
	"nepshift_backend/internal/services/dto"
	"nepshift_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ShiftService owns the shift lifecycle (open -> reserved -> in-progress ->
// completed, cancellable until terminal) and the application lifecycle
// (pending -> accepted | rejected) layered on it.
type ShiftService struct {
	db               *gorm.DB
	shiftRepo        repositories.ShiftRepository
	applicationRepo  repositories.ApplicationRepository
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	verificationRepo repositories.VerificationRepository
	email            Notifier
}

func NewShiftService(
	db *gorm.DB,
	shiftRepo repositories.ShiftRepository,
	applicationRepo repositories.ApplicationRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	verificationRepo repositories.VerificationRepository,
	email Notifier,
) *ShiftService {
	return &ShiftService{
		db:               db,
		shiftRepo:        shiftRepo,
		applicationRepo:  applicationRepo,
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		verificationRepo: verificationRepo,
		email:            email,
	}
}

// --- Shift operations ---

func (s *ShiftService) PostShift(ctx context.Context, hirerID string, req *dto.PostShiftRequest) (*dto.ShiftResponse, error) {
	hirer, err := s.userRepo.FindByID(s.db, hirerID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if hirer.Role != models.UserRoleHirer {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.PayMax < req.PayMin {
		return nil, apperrors.ValidationError(map[string]string{
			"pay_max": "Maximum pay cannot be less than minimum pay",
		})
	}

	skillsJSON, err := json.Marshal(req.Skills)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	shift := &models.Shift{
		HirerID:     hirerID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		PayMin:      req.PayMin,
		PayMax:      req.PayMax,
		Address:     req.Address,
		City:        req.City,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Date:        &req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Skills:      datatypes.JSON(skillsJSON),
		Status:      models.ShiftStatusOpen,
	}

	if err := s.shiftRepo.Create(s.db, shift); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.buildShiftResponse(shift, nil), nil
}

func (s *ShiftService) GetShift(ctx context.Context, shiftID, requesterID string) (*dto.ShiftResponse, error) {
	shift, err := s.shiftRepo.FindByID(s.db, shiftID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	// Applications are visible to the owning hirer only.
	var apps []models.ShiftApplication
	if shift.HirerID == requesterID {
		apps, err = s.applicationRepo.ListByShift(s.db, shiftID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	return s.buildShiftResponse(shift, apps), nil
}

func (s *ShiftService) SearchShifts(ctx context.Context, req *dto.ShiftSearchRequest) ([]dto.ShiftResponse, int64, error) {
	shifts, total, err := s.shiftRepo.Search(s.db, repositories.ShiftSearchCriteria{
		City:     req.City,
		Category: req.Category,
		PayMin:   req.PayMin,
		PayMax:   req.PayMax,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	responses := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		responses = append(responses, *s.buildShiftResponse(&shifts[i], nil))
	}
	return responses, total, nil
}

func (s *ShiftService) GetHirerShifts(ctx context.Context, hirerID string) ([]dto.ShiftResponse, error) {
	shifts, err := s.shiftRepo.ListByHirer(s.db, hirerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		responses = append(responses, *s.buildShiftResponse(&shifts[i], shifts[i].Applications))
	}
	return responses, nil
}

// ChangeShiftStatus performs an owner-driven forward move among the shift
// states. Completion routes through CompleteShift so its side effects run.
func (s *ShiftService) ChangeShiftStatus(ctx context.Context, hirerID, shiftID string, newStatus models.ShiftStatus) (*dto.ShiftResponse, error) {
	if newStatus == models.ShiftStatusCompleted {
		return s.CompleteShift(ctx, hirerID, shiftID)
	}

	var shift *models.Shift
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		shift, err = s.shiftRepo.FindByIDForUpdate(tx, shiftID)
		if err != nil {
			return apperrors.ErrNotFound(err)
		}
		if shift.HirerID != hirerID {
			return apperrors.ErrInsufficientPermissions
		}
		if !shift.Status.CanTransitionTo(newStatus) {
			return apperrors.ErrInvalidStatus("shift",
				"Cannot move shift from '"+string(shift.Status)+"' to '"+string(newStatus)+"'")
		}
		if err := s.shiftRepo.UpdateStatus(tx, shiftID, newStatus); err != nil {
			return err
		}
		shift.Status = newStatus
		return nil
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	return s.buildShiftResponse(shift, nil), nil
}

// CompleteShift marks the shift completed, increments the accepted worker's
// job counter, and unlocks reviews for both participants.
func (s *ShiftService) CompleteShift(ctx context.Context, hirerID, shiftID string) (*dto.ShiftResponse, error) {
	var shift *models.Shift
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		shift, err = s.shiftRepo.FindByIDForUpdate(tx, shiftID)
		if err != nil {
			return apperrors.ErrNotFound(err)
		}
		if shift.HirerID != hirerID {
			return apperrors.ErrInsufficientPermissions
		}
		if shift.Status.IsTerminal() {
			return apperrors.ErrShiftAlreadyFinished
		}

		if err := s.shiftRepo.UpdateStatus(tx, shiftID, models.ShiftStatusCompleted); err != nil {
			return err
		}
		shift.Status = models.ShiftStatusCompleted

		accepted, err := s.applicationRepo.FindAcceptedByShift(tx, shiftID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrApplicationNotFound) {
				return nil // completed without a worker; nothing to aggregate
			}
			return err
		}
		return s.profileRepo.IncrementJobsCompleted(tx, accepted.WorkerID)
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	return s.buildShiftResponse(shift, nil), nil
}

// --- Application operations ---

// ApplyToShift creates a pending bid. The eligibility gate is re-evaluated
// here, the shift row is locked so the status check and the insert share one
// transaction, and the partial unique index resolves the duplicate-bid race.
func (s *ShiftService) ApplyToShift(ctx context.Context, workerID, shiftID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	var app *models.ShiftApplication

	err := s.db.Transaction(func(tx *gorm.DB) error {
		worker, err := s.userRepo.FindByID(tx, workerID)
		if err != nil {
			return apperrors.ErrNotFound(err)
		}

		var verification *models.VerificationProfile
		verification, err = s.verificationRepo.FindByUserID(tx, workerID)
		if err != nil && !apperrors.Is(err, repositories.ErrVerificationNotFound) {
			return err
		}
		if !CanBid(worker, verification) {
			return apperrors.ErrWorkerNotVerified
		}

		shift, err := s.shiftRepo.FindByIDForUpdate(tx, shiftID)
		if err != nil {
			return apperrors.ErrNotFound(err)
		}
		if shift.HirerID == workerID {
			return apperrors.ErrCannotApplyToOwnShift
		}
		if shift.Status != models.ShiftStatusOpen {
			return apperrors.ErrShiftNotOpen
		}

		app = &models.ShiftApplication{
			ShiftID:          shiftID,
			WorkerID:         workerID,
			BidAmount:        req.BidAmount,
			EstimatedArrival: req.EstimatedArrival,
			Message:          req.Message,
			Status:           models.ApplicationStatusPending,
		}
		if err := s.applicationRepo.Create(tx, app); err != nil {
			if apperrors.Is(err, repositories.ErrDuplicateApplication) {
				return apperrors.ErrDuplicateApplication
			}
			return err
		}
		return nil
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	return buildApplicationResponse(app, nil), nil
}

// AcceptApplication accepts one pending bid: the shift leaves open for
// reserved and sibling pending bids are auto-rejected, so exactly one worker
// holds the shift.
func (s *ShiftService) AcceptApplication(ctx context.Context, hirerID, applicationID string) (*dto.ApplicationResponse, error) {
	var app *models.ShiftApplication
	var shift *models.Shift

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		app, err = s.applicationRepo.FindByID(tx, applicationID)
		if err != nil {
			return apperrors.ErrNotFound(err)
		}

		shift, err = s.shiftRepo.FindByIDForUpdate(tx, app.ShiftID)
		if err != nil {
			return apperrors.ErrNotFound(err)
		}
		if shift.HirerID != hirerID {
			return apperrors.ErrInsufficientPermissions
		}
		if app.Status != models.ApplicationStatusPending {
			return apperrors.ErrApplicationNotPending
		}
		if shift.Status != models.ShiftStatusOpen {
			return apperrors.ErrShiftNotOpen
		}

		if err := s.applicationRepo.UpdateStatus(tx, app.ID, models.ApplicationStatusAccepted); err != nil {
			return err
		}
		if err := s.applicationRepo.RejectSiblings(tx, shift.ID, app.ID); err != nil {
			return err
		}
		if err := s.shiftRepo.UpdateStatus(tx, shift.ID, models.ShiftStatusReserved); err != nil {
			return err
		}
		app.Status = models.ApplicationStatusAccepted
		return nil
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	go s.notifyApplicant(app.WorkerID, shift.Title, true)
	return buildApplicationResponse(app, nil), nil
}

func (s *ShiftService) RejectApplication(ctx context.Context, hirerID, applicationID string) (*dto.ApplicationResponse, error) {
	var app *models.ShiftApplication
	var shift *models.Shift

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		app, err = s.applicationRepo.FindByID(tx, applicationID)
		if err != nil {
			return apperrors.ErrNotFound(err)
		}

		shift, err = s.shiftRepo.FindByID(tx, app.ShiftID)
		if err != nil {
			return apperrors.ErrNotFound(err)
		}
		if shift.HirerID != hirerID {
			return apperrors.ErrInsufficientPermissions
		}
		if app.Status != models.ApplicationStatusPending {
			return apperrors.ErrApplicationNotPending
		}

		if err := s.applicationRepo.UpdateStatus(tx, app.ID, models.ApplicationStatusRejected); err != nil {
			return err
		}
		app.Status = models.ApplicationStatusRejected
		return nil
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	go s.notifyApplicant(app.WorkerID, shift.Title, false)
	return buildApplicationResponse(app, nil), nil
}

func (s *ShiftService) GetShiftApplications(ctx context.Context, hirerID, shiftID string) ([]dto.ApplicationResponse, error) {
	shift, err := s.shiftRepo.FindByID(s.db, shiftID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if shift.HirerID != hirerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	apps, err := s.applicationRepo.ListByShift(s.db, shiftID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		responses = append(responses, *buildApplicationResponse(&apps[i], nil))
	}
	return responses, nil
}

func (s *ShiftService) GetWorkerApplications(ctx context.Context, workerID string) ([]dto.ApplicationResponse, error) {
	apps, err := s.applicationRepo.ListByWorker(s.db, workerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		var shiftResp *dto.ShiftResponse
		if apps[i].Shift != nil {
			shiftResp = s.buildShiftResponse(apps[i].Shift, nil)
		}
		responses = append(responses, *buildApplicationResponse(&apps[i], shiftResp))
	}
	return responses, nil
}

// --- Helpers ---

func (s *ShiftService) notifyApplicant(workerID, shiftTitle string, accepted bool) {
	worker, err := s.userRepo.FindByID(s.db, workerID)
	if err != nil {
		logger.Warn("application notification skipped", "worker_id", workerID, "error", err)
		return
	}
	if accepted {
		err = s.email.SendApplicationAccepted(worker.Email, shiftTitle)
	} else {
		err = s.email.SendApplicationRejected(worker.Email, shiftTitle)
	}
	if err != nil {
		logger.Warn("application notification email failed", "worker_id", workerID, "error", err)
	}
}

func (s *ShiftService) buildShiftResponse(shift *models.Shift, apps []models.ShiftApplication) *dto.ShiftResponse {
	var skills []string
	if len(shift.Skills) > 0 {
		_ = json.Unmarshal(shift.Skills, &skills)
	}

	resp := &dto.ShiftResponse{
		ID:          shift.ID,
		HirerID:     shift.HirerID,
		Title:       shift.Title,
		Description: shift.Description,
		Category:    shift.Category,
		PayMin:      shift.PayMin,
		PayMax:      shift.PayMax,
		Address:     shift.Address,
		City:        shift.City,
		Latitude:    shift.Latitude,
		Longitude:   shift.Longitude,
		Date:        shift.Date,
		StartTime:   shift.StartTime,
		EndTime:     shift.EndTime,
		Skills:      skills,
		Status:      shift.Status,
		CreatedAt:   shift.CreatedAt,
	}

	for i := range apps {
		resp.Applications = append(resp.Applications, *buildApplicationResponse(&apps[i], nil))
	}
	return resp
}

func buildApplicationResponse(app *models.ShiftApplication, shift *dto.ShiftResponse) *dto.ApplicationResponse {
	return &dto.ApplicationResponse{
		ID:               app.ID,
		ShiftID:          app.ShiftID,
		WorkerID:         app.WorkerID,
		BidAmount:        app.BidAmount,
		EstimatedArrival: app.EstimatedArrival,
		Message:          app.Message,
		Status:           app.Status,
		AppliedAt:        app.CreatedAt,
		Shift:            shift,
	}
}
