package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email  string `validate:"required,email"`
	Reason string `validate:"required,min=3"`
	Sex    string `validate:"required,oneof=male female"`
}

func TestValidatePasses(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&sampleRequest{
		Email:  "student@clinic.test",
		Reason: "headache",
		Sex:    "female",
	})
	assert.NoError(t, err)
}

func TestFormatValidationErrors(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&sampleRequest{Email: "not-an-email", Reason: "ok", Sex: "other"})
	require.Error(t, err)

	fields := cv.FormatValidationErrors(err)
	assert.Equal(t, "Email must be a valid email address", fields["Email"])
	assert.Equal(t, "Reason must be at least 3 characters", fields["Reason"])
	assert.Equal(t, "Sex must be one of: male female", fields["Sex"])
}
