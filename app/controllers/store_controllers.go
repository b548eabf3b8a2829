package controllers

import (
	"net/http"

	"github.com/sarthakjain/storerate/app/services"
	"github.com/sarthakjain/storerate/pkg/ctx"
	"github.com/sarthakjain/storerate/pkg/pagination"
)

// StoreController serves store browsing, creation, and the owner view.
type StoreController struct {
	service *services.StoreService
}

func NewStoreController(service *services.StoreService) *StoreController {
	return &StoreController{service: service}
}

// Create registers a store under the authenticated owner. POST /api/stores
func (s *StoreController) Create(c *ctx.Context) {
	id, ok := c.Identity()
	if !ok {
		c.Error(http.StatusUnauthorized, "Unauthorized")
		return
	}

	var in services.StoreInput
	if !c.BindJSON(&in) {
		return
	}

	store, err := s.service.Create(id.UserID, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created("Store created successfully", store)
}

// List returns stores with aggregates, searchable and paginated.
// GET /api/stores
func (s *StoreController) List(c *ctx.Context) {
	p := pagination.FromRequest(c.R)

	// Public route; a viewer is only present when a token was sent anyway.
	var viewerID *uint
	if id, ok := c.Identity(); ok {
		viewerID = &id.UserID
	}

	stores, total, err := s.service.List(p, viewerID)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK("Stores retrieved successfully", map[string]interface{}{
		"stores":     stores,
		"total":      total,
		"page":       p.Page,
		"totalPages": p.TotalPages(total),
	})
}

// Get returns one store with its aggregate. GET /api/stores/{id}
func (s *StoreController) Get(c *ctx.Context) {
	storeID, err := c.ParamUint("id")
	if err != nil {
		c.Fail(err)
		return
	}

	var viewerID *uint
	if id, ok := c.Identity(); ok {
		viewerID = &id.UserID
	}

	store, err := s.service.Get(storeID, viewerID)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK("Store retrieved successfully", store)
}

// OwnerStores returns the caller's stores with their rating rosters.
// GET /api/stores/get/owner
func (s *StoreController) OwnerStores(c *ctx.Context) {
	id, ok := c.Identity()
	if !ok {
		c.Error(http.StatusUnauthorized, "Unauthorized")
		return
	}

	stores, err := s.service.OwnerStores(id.UserID)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK("Owner stores retrieved successfully", stores)
}
