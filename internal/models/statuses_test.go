package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShiftStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to ShiftStatus
		want     bool
	}{
		{ShiftStatusOpen, ShiftStatusReserved, true},
		{ShiftStatusOpen, ShiftStatusInProgress, true},
		{ShiftStatusOpen, ShiftStatusCompleted, true},
		{ShiftStatusReserved, ShiftStatusInProgress, true},
		{ShiftStatusInProgress, ShiftStatusCompleted, true},

		// no backward moves
		{ShiftStatusReserved, ShiftStatusOpen, false},
		{ShiftStatusInProgress, ShiftStatusReserved, false},
		{ShiftStatusCompleted, ShiftStatusOpen, false},

		// cancel from any non-terminal state only
		{ShiftStatusOpen, ShiftStatusCancelled, true},
		{ShiftStatusReserved, ShiftStatusCancelled, true},
		{ShiftStatusInProgress, ShiftStatusCancelled, true},
		{ShiftStatusCompleted, ShiftStatusCancelled, false},
		{ShiftStatusCancelled, ShiftStatusCancelled, false},

		// terminal states are final
		{ShiftStatusCompleted, ShiftStatusInProgress, false},
		{ShiftStatusCancelled, ShiftStatusOpen, false},

		// self-transition is not a move
		{ShiftStatusOpen, ShiftStatusOpen, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestShiftStatusIsTerminal(t *testing.T) {
	assert.False(t, ShiftStatusOpen.IsTerminal())
	assert.False(t, ShiftStatusReserved.IsTerminal())
	assert.False(t, ShiftStatusInProgress.IsTerminal())
	assert.True(t, ShiftStatusCompleted.IsTerminal())
	assert.True(t, ShiftStatusCancelled.IsTerminal())
}

func TestRequiredDocuments(t *testing.T) {
	expected := []DocumentKind{
		DocumentKindCitizenshipFront,
		DocumentKindCitizenshipBack,
		DocumentKindSelfieWithID,
	}

	// helpers and hirers share the same policy row
	assert.Equal(t, expected, RequiredDocuments(UserRoleHelper))
	assert.Equal(t, expected, RequiredDocuments(UserRoleHirer))
	assert.Empty(t, RequiredDocuments(UserRoleAdmin))
}

func TestValidDocumentKind(t *testing.T) {
	assert.True(t, ValidDocumentKind(UserRoleHelper, DocumentKindSelfieWithID))
	assert.True(t, ValidDocumentKind(UserRoleHirer, DocumentKindCitizenshipBack))
	assert.False(t, ValidDocumentKind(UserRoleHelper, "passport_page"))
	assert.False(t, ValidDocumentKind(UserRoleAdmin, DocumentKindSelfieWithID))
}
