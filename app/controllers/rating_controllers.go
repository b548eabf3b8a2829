package controllers

import (
	"net/http"

	"github.com/sarthakjain/storerate/app/services"
	"github.com/sarthakjain/storerate/pkg/ctx"
)

// RatingController serves rating submission, maintenance, and aggregates.
type RatingController struct {
	service *services.RatingService
}

func NewRatingController(service *services.RatingService) *RatingController {
	return &RatingController{service: service}
}

// Submit records the caller's rating for a store. POST /api/ratings
func (r *RatingController) Submit(c *ctx.Context) {
	id, ok := c.Identity()
	if !ok {
		c.Error(http.StatusUnauthorized, "Unauthorized")
		return
	}

	var in services.RatingInput
	if !c.BindJSON(&in) {
		return
	}

	rating, err := r.service.Submit(id.UserID, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created("Rating submitted successfully", rating)
}

type updateRatingInput struct {
	Value int `json:"value" validate:"required,integer,between=1,5"`
}

// Update changes the value of the caller's rating. PUT /api/ratings/{id}
func (r *RatingController) Update(c *ctx.Context) {
	id, ok := c.Identity()
	if !ok {
		c.Error(http.StatusUnauthorized, "Unauthorized")
		return
	}

	ratingID, err := c.ParamUint("id")
	if err != nil {
		c.Fail(err)
		return
	}

	var in updateRatingInput
	if !c.BindJSON(&in) {
		return
	}

	rating, err := r.service.Update(ratingID, id.UserID, in.Value)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK("Rating updated successfully", rating)
}

// Delete removes a rating (author or admin). DELETE /api/ratings/{id}
func (r *RatingController) Delete(c *ctx.Context) {
	id, ok := c.Identity()
	if !ok {
		c.Error(http.StatusUnauthorized, "Unauthorized")
		return
	}

	ratingID, err := c.ParamUint("id")
	if err != nil {
		c.Fail(err)
		return
	}

	if err := r.service.Delete(ratingID, id); err != nil {
		c.Fail(err)
		return
	}
	c.OK("Rating deleted successfully", nil)
}

// ForStore lists a store's ratings newest first. GET /api/ratings/{id}
// (id is the store ID here).
func (r *RatingController) ForStore(c *ctx.Context) {
	storeID, err := c.ParamUint("id")
	if err != nil {
		c.Fail(err)
		return
	}

	ratings, err := r.service.ForStore(storeID)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK("Ratings retrieved successfully", ratings)
}

// Average returns a store's mean rating. GET /api/ratings/{id}/average
func (r *RatingController) Average(c *ctx.Context) {
	storeID, err := c.ParamUint("id")
	if err != nil {
		c.Fail(err)
		return
	}

	avg, err := r.service.Average(storeID)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK("Average rating retrieved successfully", avg)
}

// Raters lists the users who rated a store, with their ratings.
// GET /api/ratings/{id}/users
func (r *RatingController) Raters(c *ctx.Context) {
	storeID, err := c.ParamUint("id")
	if err != nil {
		c.Fail(err)
		return
	}

	ratings, err := r.service.ForStore(storeID)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK("Store raters retrieved successfully", ratings)
}
