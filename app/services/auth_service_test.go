package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarthakjain/storerate/pkg/apperr"
	"github.com/sarthakjain/storerate/pkg/auth"
	"github.com/sarthakjain/storerate/pkg/rbac"
)

func validSignup(email string) SignupInput {
	return SignupInput{
		Name:     "Jonathan Montgomery Whitfield",
		Email:    email,
		Address:  "221B Baker Street, London",
		Password: "Secret@Pass1",
	}
}

func TestSignupForcesUserRole(t *testing.T) {
	h := newHarness(t)

	user, err := h.authSvc.Signup(validSignup("jon@example.com"))
	require.NoError(t, err)

	assert.Equal(t, rbac.RoleUser, user.Role)
	assert.NotEqual(t, "Secret@Pass1", user.Password, "password must be stored hashed")
	assert.True(t, auth.CheckPassword(user.Password, "Secret@Pass1"))
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	h := newHarness(t)

	_, err := h.authSvc.Signup(validSignup("dup@example.com"))
	require.NoError(t, err)

	_, err = h.authSvc.Signup(validSignup("dup@example.com"))
	require.Error(t, err)

	appErr, ok := apperr.From(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Status)
}

func TestLogin(t *testing.T) {
	h := newHarness(t)
	_, err := h.authSvc.Signup(validSignup("login@example.com"))
	require.NoError(t, err)

	token, user, err := h.authSvc.Login("login@example.com", "Secret@Pass1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "login@example.com", user.Email)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, rbac.RoleUser, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h := newHarness(t)
	_, err := h.authSvc.Signup(validSignup("secure@example.com"))
	require.NoError(t, err)

	// Unknown email and wrong password produce the same 401.
	for _, attempt := range []struct{ email, password string }{
		{"nobody@example.com", "Secret@Pass1"},
		{"secure@example.com", "Wrong@Pass1"},
	} {
		_, _, err := h.authSvc.Login(attempt.email, attempt.password)
		require.Error(t, err)
		appErr, ok := apperr.From(err)
		require.True(t, ok)
		assert.Equal(t, 401, appErr.Status)
		assert.Equal(t, "Invalid email or password", appErr.Message)
	}
}

func TestChangePassword(t *testing.T) {
	h := newHarness(t)
	user, err := h.authSvc.Signup(validSignup("rotate@example.com"))
	require.NoError(t, err)

	err = h.authSvc.ChangePassword(user.ID, "Wrong@Pass1", "Fresh@Pass22")
	require.Error(t, err)
	appErr, ok := apperr.From(err)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.Status)

	require.NoError(t, h.authSvc.ChangePassword(user.ID, "Secret@Pass1", "Fresh@Pass22"))

	_, _, err = h.authSvc.Login("rotate@example.com", "Fresh@Pass22")
	assert.NoError(t, err)
	_, _, err = h.authSvc.Login("rotate@example.com", "Secret@Pass1")
	assert.Error(t, err)
}

func TestProfile(t *testing.T) {
	h := newHarness(t)
	user := h.user(t, "Profile Person With Long Name", "profile@example.com", rbac.RoleUser)

	got, err := h.authSvc.Profile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = h.authSvc.Profile(9999)
	require.Error(t, err)
	appErr, ok := apperr.From(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status)
}
