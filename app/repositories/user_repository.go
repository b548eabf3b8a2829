package repositories

import (
	"gorm.io/gorm"

	"github.com/sarthakjain/storerate/app/models"
	"github.com/sarthakjain/storerate/pkg/pagination"
	"github.com/sarthakjain/storerate/pkg/rbac"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := r.db.Where("id = ?", id).First(&user).Error
	return user, err
}

// FindByIDs returns users keyed by primary key for a batch of IDs.
func (r *UserRepository) FindByIDs(ids []uint) (map[uint]models.User, error) {
	out := make(map[uint]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []models.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete removes a user and their ratings. Hard delete: a soft-deleted row
// would keep its email in the unique index and block that address from ever
// registering again.
func (r *UserRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.User{}, id).Error
	})
}

// List returns a page of users matching the search term (name, email, or
// address, case-insensitive substring) and optional role filter, plus the
// total matching row count.
func (r *UserRepository) List(p pagination.Params, role rbac.Role) ([]models.User, int64, error) {
	q := r.db.Model(&models.User{})

	if p.Search != "" {
		like := "%" + p.Search + "%"
		q = q.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?) OR LOWER(address) LIKE LOWER(?)",
			like, like, like,
		)
	}
	if role != "" {
		q = q.Where("role = ?", role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := q.Scopes(p.Scope).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Count returns the total number of users.
func (r *UserRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.User{}).Count(&n).Error
	return n, err
}
