package repositories

import (
	"gorm.io/gorm"

	"github.com/sarthakjain/storerate/app/models"
)

// RatingRepository handles database operations for Rating.
type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// FindByID looks up a rating by primary key.
func (r *RatingRepository) FindByID(id uint) (models.Rating, error) {
	var rating models.Rating
	err := r.db.Where("id = ?", id).First(&rating).Error
	return rating, err
}

// FindByStoreAndUser returns the caller's rating for a store, if any.
func (r *RatingRepository) FindByStoreAndUser(storeID, userID uint) (models.Rating, error) {
	var rating models.Rating
	err := r.db.Where("store_id = ? AND user_id = ?", storeID, userID).First(&rating).Error
	return rating, err
}

// Create inserts a new rating. A duplicate (store_id, user_id) pair hits the
// composite unique index and comes back as gorm.ErrDuplicatedKey.
func (r *RatingRepository) Create(rating *models.Rating) error {
	return r.db.Create(rating).Error
}

// Update persists a changed rating value.
func (r *RatingRepository) Update(rating *models.Rating) error {
	return r.db.Save(rating).Error
}

// Delete removes a rating by primary key.
func (r *RatingRepository) Delete(id uint) error {
	return r.db.Delete(&models.Rating{}, id).Error
}

// StoreAverage is the scan target for grouped aggregates.
type StoreAverage struct {
	StoreID uint
	Avg     float64
	Count   int64
}

// AverageForStore returns the mean rating and rating count for one store.
// A store with no ratings reports average 0.
func (r *RatingRepository) AverageForStore(storeID uint) (float64, int64, error) {
	var row StoreAverage
	err := r.db.Model(&models.Rating{}).
		Select("store_id, COALESCE(AVG(value), 0) as avg, COUNT(*) as count").
		Where("store_id = ?", storeID).
		Group("store_id").
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Avg, row.Count, nil
}

// AveragesForStores returns mean rating and count keyed by store ID for a
// batch of stores. Stores with no ratings are absent from the map.
func (r *RatingRepository) AveragesForStores(storeIDs []uint) (map[uint]StoreAverage, error) {
	out := make(map[uint]StoreAverage, len(storeIDs))
	if len(storeIDs) == 0 {
		return out, nil
	}

	var rows []StoreAverage
	err := r.db.Model(&models.Rating{}).
		Select("store_id, AVG(value) as avg, COUNT(*) as count").
		Where("store_id IN ?", storeIDs).
		Group("store_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.StoreID] = row
	}
	return out, nil
}

// ValuesForUser returns the caller's rating values keyed by store ID for a
// batch of stores.
func (r *RatingRepository) ValuesForUser(userID uint, storeIDs []uint) (map[uint]int, error) {
	out := make(map[uint]int, len(storeIDs))
	if len(storeIDs) == 0 {
		return out, nil
	}

	var ratings []models.Rating
	err := r.db.Where("user_id = ? AND store_id IN ?", userID, storeIDs).Find(&ratings).Error
	if err != nil {
		return nil, err
	}

	for _, rating := range ratings {
		out[rating.StoreID] = rating.Value
	}
	return out, nil
}

// ForStore returns every rating of a store with the rater preloaded, newest
// first.
func (r *RatingRepository) ForStore(storeID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.Preload("User").
		Where("store_id = ?", storeID).
		Order("created_at desc").
		Find(&ratings).Error
	return ratings, err
}

// ForUser returns every rating a user has submitted, newest first.
func (r *RatingRepository) ForUser(userID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.Preload("User").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&ratings).Error
	return ratings, err
}

// ForStores returns every rating of a batch of stores with the rater
// preloaded, newest first.
func (r *RatingRepository) ForStores(storeIDs []uint) ([]models.Rating, error) {
	if len(storeIDs) == 0 {
		return nil, nil
	}
	var ratings []models.Rating
	err := r.db.Preload("User").
		Where("store_id IN ?", storeIDs).
		Order("created_at desc").
		Find(&ratings).Error
	return ratings, err
}

// AverageForOwner returns the mean rating across every store the owner
// manages, 0 when none of them have ratings.
func (r *RatingRepository) AverageForOwner(ownerID uint) (float64, error) {
	var row struct{ Avg float64 }
	err := r.db.Model(&models.Rating{}).
		Select("COALESCE(AVG(ratings.value), 0) as avg").
		Joins("JOIN stores ON stores.id = ratings.store_id").
		Where("stores.owner_id = ? AND stores.deleted_at IS NULL", ownerID).
		Scan(&row).Error
	return row.Avg, err
}

// Count returns the total number of ratings.
func (r *RatingRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Rating{}).Count(&n).Error
	return n, err
}
