package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type bookingForm struct {
	Email string `validate:"required,email"`
	Shift string `validate:"required,oneof=morning afternoon evening"`
	Date  string `validate:"required,datetime=2006-01-02"`
}

func TestValidate_ValidStruct(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&bookingForm{
		Email: "nguyen.van.a@example.com",
		Shift: "morning",
		Date:  "2026-03-02",
	})
	assert.NoError(t, err)
}

func TestFormatValidationErrors(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&bookingForm{
		Email: "not-an-email",
		Shift: "night",
		Date:  "02/03/2026",
	})
	assert.Error(t, err)

	formatted := cv.FormatValidationErrors(err)
	assert.Equal(t, "Email must be a valid email address", formatted["Email"])
	assert.Equal(t, "Shift must be one of: morning afternoon evening", formatted["Shift"])
	assert.Equal(t, "Date must match the format 2006-01-02", formatted["Date"])
}

func TestFormatValidationErrors_Required(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&bookingForm{})
	assert.Error(t, err)

	formatted := cv.FormatValidationErrors(err)
	assert.Equal(t, "Email is required", formatted["Email"])
	assert.Equal(t, "Shift is required", formatted["Shift"])
	assert.Equal(t, "Date is required", formatted["Date"])
}
