package models

import (
	"gorm.io/gorm"

	"github.com/sarthakjain/storerate/pkg/rbac"
)

// User is the primary user model. Role is one of USER, OWNER, ADMIN.
type User struct {
	gorm.Model
	Name     string    `gorm:"size:60;not null" json:"name"`
	Email    string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string    `gorm:"size:255;not null" json:"-"` // hashed, never serialised
	Address  string    `gorm:"size:400" json:"address"`
	Role     rbac.Role `gorm:"size:20;default:USER" json:"role"`

	Stores  []Store  `gorm:"foreignKey:OwnerID" json:"stores,omitempty"`
	Ratings []Rating `gorm:"foreignKey:UserID" json:"ratings,omitempty"`
}
