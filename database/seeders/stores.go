package seeders

import (
	"errors"

	"gorm.io/gorm"

	"github.com/sarthakjain/storerate/app/models"
)

func init() {
	Register("stores", SeedStores)
}

// SeedStores inserts three stores under the seeded owner account. Runs after
// the users seeder by registration order.
func SeedStores(db *gorm.DB) error {
	var owner models.User
	if err := db.Where("email = ?", "owner@storerate.local").First(&owner).Error; err != nil {
		return err
	}

	stores := []models.Store{
		{Name: "Harborview Grocers", Email: "contact@harborview.local", Address: "12 Wharf Street"},
		{Name: "Elm Street Espresso", Email: "hello@elmespresso.local", Address: "3 Elm Avenue"},
		{Name: "Thornbury Hardware", Email: "sales@thornburyhw.local", Address: "44 Forge Road"},
	}

	for _, s := range stores {
		var existing models.Store
		err := db.Where("name = ?", s.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		s.OwnerID = &owner.ID
		if err := db.Create(&s).Error; err != nil {
			return err
		}
	}
	return nil
}
