package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/sarthakjain/storerate/app/models"
	"github.com/sarthakjain/storerate/app/repositories"
	"github.com/sarthakjain/storerate/pkg/apperr"
	"github.com/sarthakjain/storerate/pkg/auth"
	"github.com/sarthakjain/storerate/pkg/rbac"
)

// AuthService implements signup, login, and credential maintenance.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// SignupInput carries the validated signup payload.
type SignupInput struct {
	Name     string `json:"name" validate:"required,between=20,60"`
	Email    string `json:"email" validate:"required,email"`
	Address  string `json:"address" validate:"required,max=400"`
	Password string `json:"password" validate:"required,password"`
}

// Signup registers a new USER account. Role is always USER here; privileged
// accounts are created through the admin surface.
func (s *AuthService) Signup(in SignupInput) (models.User, error) {
	user := models.User{
		Name:    in.Name,
		Email:   in.Email,
		Address: in.Address,
		Role:    rbac.RoleUser,
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}
	user.Password = hash

	if err := s.users.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, apperr.Conflict("Email already registered")
		}
		return models.User{}, err
	}
	return user, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password produce the same 401 so the response does not leak which one it
// was.
func (s *AuthService) Login(email, password string) (string, models.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.User{}, apperr.Unauthorized("Invalid email or password")
		}
		return "", models.User{}, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", models.User{}, apperr.Unauthorized("Invalid email or password")
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", models.User{}, err
	}
	return token, user, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found")
		}
		return err
	}

	if !auth.CheckPassword(user.Password, oldPassword) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hash
	return s.users.Update(&user)
}

// Profile returns the authenticated user's record.
func (s *AuthService) Profile(userID uint) (models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apperr.NotFound("User not found")
		}
		return models.User{}, err
	}
	return user, nil
}
