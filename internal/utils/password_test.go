package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	h, err := HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, VerifyPassword(h, "secret123"))
	assert.False(t, VerifyPassword(h, "wrong"))
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "secret123"))
}

func TestHashPasswordReplacesOutOfRangeCost(t *testing.T) {
	h, err := HashPassword("secret123", 99)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(h))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
