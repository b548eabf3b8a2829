package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/sarthakjain/storerate/app/models"
	"github.com/sarthakjain/storerate/app/repositories"
	"github.com/sarthakjain/storerate/pkg/apperr"
	"github.com/sarthakjain/storerate/pkg/auth"
	"github.com/sarthakjain/storerate/pkg/cache"
	"github.com/sarthakjain/storerate/pkg/metrics"
	"github.com/sarthakjain/storerate/pkg/pagination"
	"github.com/sarthakjain/storerate/pkg/rbac"
)

// AdminService implements the user/store administration surface and the
// dashboard counts.
type AdminService struct {
	users    *repositories.UserRepository
	stores   *repositories.StoreRepository
	ratings  *repositories.RatingRepository
	storeSvc *StoreService
}

func NewAdminService(
	users *repositories.UserRepository,
	stores *repositories.StoreRepository,
	ratings *repositories.RatingRepository,
	storeSvc *StoreService,
) *AdminService {
	return &AdminService{users: users, stores: stores, ratings: ratings, storeSvc: storeSvc}
}

// AdminUserView is a user row in the admin listing. AverageRating is nil for
// non-owners and set (possibly 0) for owners.
type AdminUserView struct {
	UserView
	AverageRating *float64 `json:"averageRating,omitempty"`
}

// UserPage is the paginated admin user listing.
type UserPage struct {
	Users      []AdminUserView `json:"users"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
}

// AdminUserInput carries the validated admin user-creation payload. Unlike
// signup it accepts a role.
type AdminUserInput struct {
	Name     string `json:"name" validate:"required,between=20,60"`
	Email    string `json:"email" validate:"required,email"`
	Address  string `json:"address" validate:"required,max=400"`
	Password string `json:"password" validate:"required,password"`
	Role     string `json:"role" validate:"required,in=USER,OWNER,ADMIN"`
}

// DashboardCounts are the admin dashboard totals.
type DashboardCounts struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}

// ListUsers returns a page of users with an optional role filter, decorated
// with each owner's average rating.
func (s *AdminService) ListUsers(p pagination.Params, role string) (UserPage, error) {
	var roleFilter rbac.Role
	if role != "" {
		parsed, err := rbac.Parse(role)
		if err != nil {
			return UserPage{}, apperr.BadRequest("Invalid role filter")
		}
		roleFilter = parsed
	}

	users, total, err := s.users.List(p, roleFilter)
	if err != nil {
		return UserPage{}, err
	}

	views := make([]AdminUserView, 0, len(users))
	for _, u := range users {
		view := AdminUserView{UserView: toUserView(u)}
		if u.Role == rbac.RoleOwner {
			avg, err := s.ratings.AverageForOwner(u.ID)
			if err != nil {
				return UserPage{}, err
			}
			view.AverageRating = &avg
		}
		views = append(views, view)
	}

	return UserPage{
		Users:      views,
		Total:      total,
		Page:       p.Page,
		TotalPages: p.TotalPages(total),
	}, nil
}

// AdminUserDetail is the admin view of one user with their stores and
// ratings.
type AdminUserDetail struct {
	AdminUserView
	Stores  []StoreView  `json:"stores"`
	Ratings []RatingView `json:"ratings"`
}

// GetUser returns the full admin detail for one user.
func (s *AdminService) GetUser(id uint) (AdminUserDetail, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AdminUserDetail{}, apperr.NotFound("User not found")
		}
		return AdminUserDetail{}, err
	}

	detail := AdminUserDetail{
		AdminUserView: AdminUserView{UserView: toUserView(user)},
		Stores:        []StoreView{},
		Ratings:       []RatingView{},
	}

	if user.Role == rbac.RoleOwner {
		avg, err := s.ratings.AverageForOwner(user.ID)
		if err != nil {
			return AdminUserDetail{}, err
		}
		detail.AverageRating = &avg

		stores, err := s.storeSvc.OwnerStores(user.ID)
		if err != nil && !isNotFound(err) {
			return AdminUserDetail{}, err
		}
		if stores != nil {
			detail.Stores = stores
		}
	}

	ratings, err := s.ratings.ForUser(user.ID)
	if err != nil {
		return AdminUserDetail{}, err
	}
	for _, rating := range ratings {
		detail.Ratings = append(detail.Ratings, toRatingView(rating))
	}

	return detail, nil
}

// CreateUser registers an account with any role.
func (s *AdminService) CreateUser(in AdminUserInput) (models.User, error) {
	role, err := rbac.Parse(in.Role)
	if err != nil {
		return models.User{}, apperr.BadRequest("Invalid role")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Address:  in.Address,
		Password: hash,
		Role:     role,
	}
	if err := s.users.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, apperr.Conflict("Email already registered")
		}
		return models.User{}, err
	}

	cache.Del(dashboardCacheKey)
	return user, nil
}

// DeleteUser removes an account.
func (s *AdminService) DeleteUser(id uint) error {
	if _, err := s.users.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("User not found")
		}
		return err
	}
	if err := s.users.Delete(id); err != nil {
		return err
	}
	cache.Del(dashboardCacheKey)
	return nil
}

// ListStores returns a page of all stores with their aggregates.
func (s *AdminService) ListStores(p pagination.Params) ([]StoreView, int64, error) {
	return s.storeSvc.List(p, nil)
}

// DeleteStore removes a store and its ratings.
func (s *AdminService) DeleteStore(id uint) error {
	if _, err := s.stores.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Store not found")
		}
		return err
	}
	if err := s.stores.Delete(id); err != nil {
		return err
	}
	cache.Del(storeAvgCacheKey(id), dashboardCacheKey)
	return nil
}

// Dashboard returns the entity totals, cached for 30s.
func (s *AdminService) Dashboard() (DashboardCounts, error) {
	var cached DashboardCounts
	if cache.Get(dashboardCacheKey, &cached) {
		metrics.CacheHits.WithLabelValues("dashboard").Inc()
		return cached, nil
	}
	metrics.CacheMisses.WithLabelValues("dashboard").Inc()

	users, err := s.users.Count()
	if err != nil {
		return DashboardCounts{}, err
	}
	stores, err := s.stores.Count()
	if err != nil {
		return DashboardCounts{}, err
	}
	ratings, err := s.ratings.Count()
	if err != nil {
		return DashboardCounts{}, err
	}

	counts := DashboardCounts{TotalUsers: users, TotalStores: stores, TotalRatings: ratings}
	cache.Set(dashboardCacheKey, counts, dashboardTTL)
	return counts, nil
}

func isNotFound(err error) bool {
	appErr, ok := apperr.From(err)
	return ok && appErr.Status == 404
}
