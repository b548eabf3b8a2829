package seeders

import (
	"errors"

	"gorm.io/gorm"

	"github.com/sarthakjain/storerate/app/models"
	"github.com/sarthakjain/storerate/pkg/auth"
	"github.com/sarthakjain/storerate/pkg/rbac"
)

func init() {
	Register("users", SeedUsers)
}

// seedPassword is the shared password for every seeded account.
const seedPassword = "Password@123"

var seedUsers = []models.User{
	{Name: "System Administrator Account", Email: "admin@storerate.local", Address: "1 Admin Plaza", Role: rbac.RoleAdmin},
	{Name: "Oliver Pemberton Storeholder", Email: "owner@storerate.local", Address: "2 Commerce Court", Role: rbac.RoleOwner},
	{Name: "Natalie Rosalind Featherston", Email: "natalie@storerate.local", Address: "3 Elm Avenue", Role: rbac.RoleUser},
	{Name: "Gregory Alexander Thornbury", Email: "gregory@storerate.local", Address: "4 Oak Boulevard", Role: rbac.RoleUser},
	{Name: "Isabella Marguerite Caldwell", Email: "isabella@storerate.local", Address: "5 Pine Crescent", Role: rbac.RoleUser},
	{Name: "Maximilian Bartholomew Reyes", Email: "max@storerate.local", Address: "6 Cedar Lane", Role: rbac.RoleUser},
}

// SeedUsers inserts one admin, one owner, and four regular users. Existing
// emails are skipped so the seeder is safe to re-run.
func SeedUsers(db *gorm.DB) error {
	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		return err
	}

	for _, u := range seedUsers {
		var existing models.User
		err := db.Where("email = ?", u.Email).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		u.Password = hash
		if err := db.Create(&u).Error; err != nil {
			return err
		}
	}
	return nil
}
