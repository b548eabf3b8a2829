package repositories

import (
	"gorm.io/gorm"

	"github.com/sarthakjain/storerate/app/models"
	"github.com/sarthakjain/storerate/pkg/pagination"
)

// StoreRepository handles database operations for Store.
type StoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

// FindByID looks up a store by primary key.
func (r *StoreRepository) FindByID(id uint) (models.Store, error) {
	var store models.Store
	err := r.db.Where("id = ?", id).First(&store).Error
	return store, err
}

// Create persists a new store record.
func (r *StoreRepository) Create(store *models.Store) error {
	return r.db.Create(store).Error
}

// Update persists changes to an existing store.
func (r *StoreRepository) Update(store *models.Store) error {
	return r.db.Save(store).Error
}

// Delete removes a store and its ratings.
func (r *StoreRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("store_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Store{}, id).Error
	})
}

// List returns a page of stores matching the search term (name or address,
// case-insensitive substring), plus the total matching row count.
func (r *StoreRepository) List(p pagination.Params) ([]models.Store, int64, error) {
	q := r.db.Model(&models.Store{})

	if p.Search != "" {
		like := "%" + p.Search + "%"
		q = q.Where("LOWER(name) LIKE LOWER(?) OR LOWER(address) LIKE LOWER(?)", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var stores []models.Store
	if err := q.Scopes(p.Scope).Find(&stores).Error; err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}

// FindByOwner returns every store managed by the given owner.
func (r *StoreRepository) FindByOwner(ownerID uint) ([]models.Store, error) {
	var stores []models.Store
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at desc").Find(&stores).Error
	return stores, err
}

// Count returns the total number of stores.
func (r *StoreRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Store{}).Count(&n).Error
	return n, err
}
