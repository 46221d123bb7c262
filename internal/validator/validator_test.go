package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shiftTimes struct {
	StartTime string `json:"start_time" validate:"required,shifttime"`
}

func TestShiftTimeRule(t *testing.T) {
	v := New()

	valid := []string{"00:00", "09:30", "18:00", "23:59"}
	for _, in := range valid {
		assert.NoError(t, v.Validate(shiftTimes{StartTime: in}), "expected %q to pass", in)
	}

	invalid := []string{"24:00", "9:00", "18:60", "18-00", "noon"}
	for _, in := range invalid {
		assert.Error(t, v.Validate(shiftTimes{StartTime: in}), "expected %q to fail", in)
	}
}

func TestValidationErrorUsesJSONFieldNames(t *testing.T) {
	v := New()

	type payload struct {
		Email    string `json:"email" validate:"required,email"`
		FullName string `json:"full_name" validate:"required,min=2"`
		Rating   int    `json:"rating" validate:"min=1,max=5"`
	}

	err := v.Validate(payload{Email: "not-an-email", FullName: "x", Rating: 9})
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)

	assert.Contains(t, verr.Errors, "email")
	assert.Contains(t, verr.Errors, "full_name")
	assert.Contains(t, verr.Errors, "rating")
	assert.NotContains(t, verr.Errors, "FullName")
}
