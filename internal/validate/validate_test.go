package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registration struct {
	FullName string `json:"full_name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestStructCollectsEveryViolation(t *testing.T) {
	errs := Struct(registration{Email: "not-an-email", Password: "abc"})
	require.NotNil(t, errs)

	// One submission, all three problems reported at once.
	assert.Contains(t, errs, "full_name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")

	assert.Equal(t, []string{"the full_name field is required"}, errs["full_name"])
	assert.Equal(t, []string{"the email field must be a valid email address"}, errs["email"])
	assert.Equal(t, []string{"the password field must be at least 6 characters"}, errs["password"])
}

func TestStructValidReturnsNil(t *testing.T) {
	errs := Struct(registration{FullName: "John Doe", Email: "john@example.com", Password: "secret123"})
	assert.Nil(t, errs)
}

func TestStructOneofMessage(t *testing.T) {
	type roleReq struct {
		Role string `json:"role" validate:"required,oneof=admin employee customer"`
	}
	errs := Struct(roleReq{Role: "owner"})
	require.NotNil(t, errs)
	assert.Equal(t, []string{"the role field must be one of: admin, employee, customer"}, errs["role"])
}
