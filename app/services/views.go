package services

import (
	"time"

	"github.com/sarthakjain/storerate/app/models"
	"github.com/sarthakjain/storerate/pkg/rbac"
)

// UserSummary is the sanitized user shape embedded in other views.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserView is the full sanitized user shape (no password hash).
type UserView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Role      rbac.Role `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// RatingView is a rating with its rater's identity.
type RatingView struct {
	ID        uint        `json:"id"`
	StoreID   uint        `json:"storeId"`
	Value     int         `json:"value"`
	CreatedAt time.Time   `json:"createdAt"`
	User      UserSummary `json:"user"`
}

// StoreView is a store with its computed aggregate and rating roster.
type StoreView struct {
	ID            uint         `json:"id"`
	Name          string       `json:"name"`
	Email         string       `json:"email"`
	Address       string       `json:"address"`
	OwnerID       *uint        `json:"ownerId,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	Owner         *UserSummary `json:"owner,omitempty"`
	AverageRating float64      `json:"averageRating"`
	TotalRatings  int64        `json:"totalRatings"`
	Ratings       []RatingView `json:"ratings"`
	MyRating      *int         `json:"myRating,omitempty"`
}

func toUserSummary(u models.User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toUserView(u models.User) UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Address:   u.Address,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func toRatingView(r models.Rating) RatingView {
	return RatingView{
		ID:        r.ID,
		StoreID:   r.StoreID,
		Value:     r.Value,
		CreatedAt: r.CreatedAt,
		User:      toUserSummary(r.User),
	}
}
