package models

import "gorm.io/gorm"

// Store is a rateable store. OwnerID links it to the OWNER account that
// manages it; admin-created stores without a designated owner leave it nil.
type Store struct {
	gorm.Model
	Name    string `gorm:"size:60;not null" json:"name"`
	Email   string `gorm:"size:255;not null" json:"email"`
	Address string `gorm:"size:400;not null" json:"address"`
	OwnerID *uint  `gorm:"index" json:"owner_id,omitempty"`

	Ratings []Rating `gorm:"foreignKey:StoreID" json:"ratings,omitempty"`
}
