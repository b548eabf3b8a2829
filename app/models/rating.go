package models

import "time"

// Rating is one user's 1-5 rating of one store. The composite unique index
// is the source of truth for the one-rating-per-user-per-store rule: a
// second insert surfaces as gorm.ErrDuplicatedKey (TranslateError is on)
// and the service layer maps it to a conflict.
//
// Ratings delete hard: no DeletedAt column. A soft-deleted row would keep
// occupying the composite unique index and block the user from ever rating
// the store again.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"ID"`
	CreatedAt time.Time `json:"CreatedAt"`
	UpdatedAt time.Time `json:"UpdatedAt"`

	StoreID uint `gorm:"not null;uniqueIndex:idx_ratings_store_user" json:"store_id"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_ratings_store_user" json:"user_id"`
	Value   int  `gorm:"not null" json:"value"`

	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Store Store `gorm:"foreignKey:StoreID" json:"store,omitempty"`
}
