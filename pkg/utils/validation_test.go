package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func TestValidateStruct(t *testing.T) {
	errs := ValidateStruct(&sampleInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	assert.Nil(t, errs)

	errs = ValidateStruct(&sampleInput{
		Email:    "nope",
		Password: "12345",
	})
	assert.Equal(t, "This field is required", errs["Name"])
	assert.Equal(t, "Invalid email format", errs["Email"])
	assert.Equal(t, "Minimum length is 6", errs["Password"])
}

func TestFormatValidationErrors(t *testing.T) {
	out := FormatValidationErrors(map[string]string{"Email": "Invalid email format"})
	assert.Equal(t, "Email: Invalid email format", out)
}
