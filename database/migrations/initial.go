package migrations

import (
	"gorm.io/gorm"

	"github.com/sarthakjain/storerate/app/models"
	"github.com/sarthakjain/storerate/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260101000001_create_stores_table", &CreateStoresTable{})
	migration.Register("20260101000002_create_ratings_table", &CreateRatingsTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: stores --------

type CreateStoresTable struct{}

func (m *CreateStoresTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Store{})
}

func (m *CreateStoresTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("stores")
}

// -------- 0003: ratings (composite unique index on store_id, user_id) --------

type CreateRatingsTable struct{}

func (m *CreateRatingsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Rating{})
}

func (m *CreateRatingsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("ratings")
}
