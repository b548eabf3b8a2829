package controllers

import (
	"net/http"

	"github.com/sarthakjain/storerate/app/services"
	"github.com/sarthakjain/storerate/pkg/ctx"
)

// AuthController serves signup, login, and credential maintenance.
type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Signup registers a new USER account. POST /api/auth/signup
func (a *AuthController) Signup(c *ctx.Context) {
	var in services.SignupInput
	if !c.BindJSON(&in) {
		return
	}

	user, err := a.service.Signup(in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created("User registered successfully", user)
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and returns a bearer token. POST /api/auth/login
func (a *AuthController) Login(c *ctx.Context) {
	var in loginInput
	if !c.BindJSON(&in) {
		return
	}

	token, user, err := a.service.Login(in.Email, in.Password)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK("Login successful", map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

type changePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,password"`
}

// ChangePassword rotates the caller's password. POST /api/auth/change-password
func (a *AuthController) ChangePassword(c *ctx.Context) {
	id, ok := c.Identity()
	if !ok {
		c.Error(http.StatusUnauthorized, "Unauthorized")
		return
	}

	var in changePasswordInput
	if !c.BindJSON(&in) {
		return
	}

	if err := a.service.ChangePassword(id.UserID, in.OldPassword, in.NewPassword); err != nil {
		c.Fail(err)
		return
	}
	c.OK("Password updated successfully", nil)
}

// Profile returns the caller's account. GET /api/auth/profile
func (a *AuthController) Profile(c *ctx.Context) {
	id, ok := c.Identity()
	if !ok {
		c.Error(http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := a.service.Profile(id.UserID)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK("Profile retrieved successfully", user)
}
