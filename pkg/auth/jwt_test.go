package auth_test

import (
	"testing"

	"github.com/sarthakjain/storerate/pkg/auth"
	"github.com/sarthakjain/storerate/pkg/rbac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.GenerateToken(42, rbac.RoleOwner)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, rbac.RoleOwner, claims.Role)
}

func TestValidateRejectsGarbage(t *testing.T) {
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := auth.ValidateToken(tok)
		assert.Error(t, err, tok)
	}
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	token, err := auth.GenerateToken(7, rbac.RoleUser)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = auth.ValidateToken(tampered)
	assert.Error(t, err)
}

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := auth.HashPassword("Password@123")
	require.NoError(t, err)
	assert.NotEqual(t, "Password@123", hash)

	assert.True(t, auth.CheckPassword(hash, "Password@123"))
	assert.False(t, auth.CheckPassword(hash, "Password@124"))
}
