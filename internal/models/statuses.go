package models

type UserRole string
type VerificationStatus string
type ShiftStatus string
type ApplicationStatus string
type DocumentKind string

const (
	UserRoleHelper UserRole = "helper"
	UserRoleHirer  UserRole = "hirer"
	UserRoleAdmin  UserRole = "admin"

	VerificationStatusUnverified VerificationStatus = "unverified"
	VerificationStatusPending    VerificationStatus = "pending"
	VerificationStatusApproved   VerificationStatus = "approved"
	VerificationStatusRejected   VerificationStatus = "rejected"

	ShiftStatusOpen       ShiftStatus = "open"
	ShiftStatusReserved   ShiftStatus = "reserved"
	ShiftStatusInProgress ShiftStatus = "in-progress"
	ShiftStatusCompleted  ShiftStatus = "completed"
	ShiftStatusCancelled  ShiftStatus = "cancelled"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"

	DocumentKindCitizenshipFront DocumentKind = "citizenship_front"
	DocumentKindCitizenshipBack  DocumentKind = "citizenship_back"
	DocumentKindSelfieWithID     DocumentKind = "selfie_with_id"
)

// shiftStatusRank orders the forward lifecycle. Cancelled sits outside the
// ladder: it is reachable from any non-terminal state.
var shiftStatusRank = map[ShiftStatus]int{
	ShiftStatusOpen:       0,
	ShiftStatusReserved:   1,
	ShiftStatusInProgress: 2,
	ShiftStatusCompleted:  3,
}

// IsTerminal reports whether no further transitions are allowed.
func (s ShiftStatus) IsTerminal() bool {
	return s == ShiftStatusCompleted || s == ShiftStatusCancelled
}

// CanTransitionTo allows only forward moves along the ladder, plus
// cancellation from any non-terminal state.
func (s ShiftStatus) CanTransitionTo(next ShiftStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == ShiftStatusCancelled {
		return true
	}
	from, ok := shiftStatusRank[s]
	if !ok {
		return false
	}
	to, ok := shiftStatusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// RequiredDocuments is the policy table mapping a role to the document kinds
// its verification needs. Helpers and hirers go through the same flow.
func RequiredDocuments(role UserRole) []DocumentKind {
	switch role {
	case UserRoleHelper, UserRoleHirer:
		return []DocumentKind{
			DocumentKindCitizenshipFront,
			DocumentKindCitizenshipBack,
			DocumentKindSelfieWithID,
		}
	default:
		return nil
	}
}

// ValidDocumentKind reports whether kind is accepted for the given role.
func ValidDocumentKind(role UserRole, kind DocumentKind) bool {
	for _, k := range RequiredDocuments(role) {
		if k == kind {
			return true
		}
	}
	return false
}
