package controllers

import (
	"github.com/sarthakjain/storerate/app/services"
	"github.com/sarthakjain/storerate/pkg/ctx"
	"github.com/sarthakjain/storerate/pkg/pagination"
)

// AdminController serves the ADMIN-only management surface.
type AdminController struct {
	service *services.AdminService
}

func NewAdminController(service *services.AdminService) *AdminController {
	return &AdminController{service: service}
}

// ListUsers returns users with search, role filter, and pagination.
// GET /api/admin/users
func (a *AdminController) ListUsers(c *ctx.Context) {
	p := pagination.FromRequest(c.R)
	role := c.Query("role")

	page, err := a.service.ListUsers(p, role)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK("Users retrieved successfully", page)
}

// GetUser returns one user with stores and ratings. GET /api/admin/users/{id}
func (a *AdminController) GetUser(c *ctx.Context) {
	userID, err := c.ParamUint("id")
	if err != nil {
		c.Fail(err)
		return
	}

	detail, err := a.service.GetUser(userID)
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK("User retrieved successfully", detail)
}

// CreateUser registers an account with any role. POST /api/admin/users
func (a *AdminController) CreateUser(c *ctx.Context) {
	var in services.AdminUserInput
	if !c.BindJSON(&in) {
		return
	}

	user, err := a.service.CreateUser(in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created("User created successfully", user)
}

// DeleteUser removes an account. DELETE /api/admin/users/{id}
func (a *AdminController) DeleteUser(c *ctx.Context) {
	userID, err := c.ParamUint("id")
	if err != nil {
		c.Fail(err)
		return
	}

	if err := a.service.DeleteUser(userID); err != nil {
		c.Fail(err)
		return
	}
	c.OK("User deleted successfully", nil)
}

// ListStores returns all stores with aggregates. GET /api/admin/stores
func (a *AdminController) ListStores(c *ctx.Context) {
	p := pagination.FromRequest(c.R)

	stores, total, err := a.service.ListStores(p)
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

// DeleteStore removes a store and its ratings. DELETE /api/admin/stores/{id}
func (a *AdminController) DeleteStore(c *ctx.Context) {
	storeID, err := c.ParamUint("id")
	if err != nil {
		c.Fail(err)
		return
	}

	if err := a.service.DeleteStore(storeID); err != nil {
		c.Fail(err)
		return
	}
	c.OK("Store deleted successfully", nil)
}

// Dashboard returns the entity totals. GET /api/admin/dashboard
func (a *AdminController) Dashboard(c *ctx.Context) {
	counts, err := a.service.Dashboard()
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK("Dashboard retrieved successfully", counts)
}
