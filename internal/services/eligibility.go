package services

import (
	"nepshift_backend/internal/models"
)

// CanBid is the eligibility gate for creating shift applications: only a
// helper with an approved verification may bid. Pure and side-effect free;
// it is evaluated server-side inside ApplyToShift and never trusted from a
// client-supplied flag.
func CanBid(user *models.User, verification *models.VerificationProfile) bool {
	if user == nil || user.Role != models.UserRoleHelper {
		return false
	}
	return verification != nil && verification.IsVerified()
}
