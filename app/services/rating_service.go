package services

import (
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/sarthakjain/storerate/app/models"
	"github.com/sarthakjain/storerate/app/repositories"
	"github.com/sarthakjain/storerate/pkg/apperr"
	"github.com/sarthakjain/storerate/pkg/cache"
	"github.com/sarthakjain/storerate/pkg/metrics"
	"github.com/sarthakjain/storerate/pkg/rbac"
)

// Cache keys and TTLs. Rating writes invalidate both the affected store's
// average and the dashboard counts.
const (
	dashboardCacheKey = "admin:dashboard"
	storeAvgTTL       = 60 * time.Second
	dashboardTTL      = 30 * time.Second
)

func storeAvgCacheKey(storeID uint) string {
	return "store:avg:" + strconv.FormatUint(uint64(storeID), 10)
}

// RatingService implements rating submission, maintenance, and aggregates.
type RatingService struct {
	ratings *repositories.RatingRepository
	stores  *repositories.StoreRepository
}

func NewRatingService(
	ratings *repositories.RatingRepository,
	stores *repositories.StoreRepository,
) *RatingService {
	return &RatingService{ratings: ratings, stores: stores}
}

// RatingInput carries the validated rating payload.
type RatingInput struct {
	StoreID uint `json:"storeId" validate:"required"`
	Value   int  `json:"value" validate:"required,integer,between=1,5"`
}

// Submit creates the caller's rating for a store. The composite unique index
// rejects a second rating for the same (store, user) pair; that surfaces as
// gorm.ErrDuplicatedKey and maps to a conflict, so there is no read-then-write
// race.
func (s *RatingService) Submit(userID uint, in RatingInput) (models.Rating, error) {
	if _, err := s.stores.FindByID(in.StoreID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Rating{}, apperr.NotFound("Store not found")
		}
		return models.Rating{}, err
	}

	rating := models.Rating{
		StoreID: in.StoreID,
		UserID:  userID,
		Value:   in.Value,
	}
	if err := s.ratings.Create(&rating); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Rating{}, apperr.Conflict("You have already rated this store")
		}
		return models.Rating{}, err
	}

	metrics.RatingsSubmitted.WithLabelValues("create").Inc()
	s.invalidate(in.StoreID)
	return rating, nil
}

// Update changes the value of an existing rating. Only the author may update;
// store and user bindings never change.
func (s *RatingService) Update(id, userID uint, value int) (models.Rating, error) {
	rating, err := s.ratings.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Rating{}, apperr.NotFound("Rating not found")
		}
		return models.Rating{}, err
	}
	if rating.UserID != userID {
		return models.Rating{}, apperr.Forbidden("You can only update your own rating")
	}

	rating.Value = value
	if err := s.ratings.Update(&rating); err != nil {
		return models.Rating{}, err
	}

	metrics.RatingsSubmitted.WithLabelValues("update").Inc()
	s.invalidate(rating.StoreID)
	return rating, nil
}

// Delete removes a rating. The author may delete their own; admins may delete
// any.
func (s *RatingService) Delete(id uint, caller rbac.Identity) error {
	rating, err := s.ratings.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Rating not found")
		}
		return err
	}
	if rating.UserID != caller.UserID && caller.Role != rbac.RoleAdmin {
		return apperr.Forbidden("You can only delete your own rating")
	}

	if err := s.ratings.Delete(id); err != nil {
		return err
	}

	metrics.RatingsSubmitted.WithLabelValues("delete").Inc()
	s.invalidate(rating.StoreID)
	return nil
}

// ForStore returns a store's ratings newest first with rater identity, 404
// when the store is absent.
func (s *RatingService) ForStore(storeID uint) ([]RatingView, error) {
	if _, err := s.stores.FindByID(storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Store not found")
		}
		return nil, err
	}

	ratings, err := s.ratings.ForStore(storeID)
	if err != nil {
		return nil, err
	}

	views := make([]RatingView, 0, len(ratings))
	for _, rating := range ratings {
		views = append(views, toRatingView(rating))
	}
	return views, nil
}

// StoreAverage is the cached average-rating view for one store.
type StoreAverage struct {
	StoreID       uint    `json:"storeId"`
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int64   `json:"totalRatings"`
}

// Average returns the store's mean rating, 0 when it has none. Served from
// Redis when warm; recomputed and cached for 60s otherwise.
func (s *RatingService) Average(storeID uint) (StoreAverage, error) {
	key := storeAvgCacheKey(storeID)

	var cached StoreAverage
	if cache.Get(key, &cached) {
		metrics.CacheHits.WithLabelValues("store_avg").Inc()
		return cached, nil
	}
	metrics.CacheMisses.WithLabelValues("store_avg").Inc()

	if _, err := s.stores.FindByID(storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StoreAverage{}, apperr.NotFound("Store not found")
		}
		return StoreAverage{}, err
	}

	avg, count, err := s.ratings.AverageForStore(storeID)
	if err != nil {
		return StoreAverage{}, err
	}

	out := StoreAverage{StoreID: storeID, AverageRating: avg, TotalRatings: count}
	cache.Set(key, out, storeAvgTTL)
	return out, nil
}

func (s *RatingService) invalidate(storeID uint) {
	cache.Del(storeAvgCacheKey(storeID), dashboardCacheKey)
}
