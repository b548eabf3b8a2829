package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarthakjain/storerate/pkg/apperr"
	"github.com/sarthakjain/storerate/pkg/pagination"
	"github.com/sarthakjain/storerate/pkg/rbac"
)

func TestListUsersRoleFilterAndOwnerAverage(t *testing.T) {
	h := newHarness(t)
	owner := h.user(t, "Olivia The Owner Of Everything", "owner@example.com", rbac.RoleOwner)
	plain := h.user(t, "Ursula The Unprivileged User", "user@example.com", rbac.RoleUser)
	store := h.store(t, "Corner Coffee", owner.ID)
	h.rate(t, store.ID, plain.ID, 3)

	page, err := h.adminSvc.ListUsers(pagination.Params{Page: 1, Limit: 10, Order: "desc"}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 1, page.TotalPages)

	for _, u := range page.Users {
		switch u.Role {
		case rbac.RoleOwner:
			require.NotNil(t, u.AverageRating, "owners carry an average")
			assert.InDelta(t, 3.0, *u.AverageRating, 0.0001)
		default:
			assert.Nil(t, u.AverageRating, "non-owners carry no average")
		}
	}

	page, err = h.adminSvc.ListUsers(pagination.Params{Page: 1, Limit: 10, Order: "desc"}, "owner")
	require.NoError(t, err)
	require.Len(t, page.Users, 1)
	assert.Equal(t, rbac.RoleOwner, page.Users[0].Role)

	_, err = h.adminSvc.ListUsers(pagination.Params{Page: 1, Limit: 10, Order: "desc"}, "WIZARD")
	require.Error(t, err)
	appErr, ok := apperr.From(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)
}

func TestGetUserDetail(t *testing.T) {
	h := newHarness(t)
	owner := h.user(t, "Olivia The Owner Of Everything", "owner@example.com", rbac.RoleOwner)
	rater := h.user(t, "Randall The Rating Enthusiast", "rater@example.com", rbac.RoleUser)
	store := h.store(t, "Corner Coffee", owner.ID)
	h.rate(t, store.ID, rater.ID, 4)

	detail, err := h.adminSvc.GetUser(owner.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.AverageRating)
	assert.InDelta(t, 4.0, *detail.AverageRating, 0.0001)
	require.Len(t, detail.Stores, 1)
	assert.Equal(t, "Corner Coffee", detail.Stores[0].Name)

	detail, err = h.adminSvc.GetUser(rater.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.AverageRating)
	assert.Empty(t, detail.Stores)
	require.Len(t, detail.Ratings, 1)
	assert.Equal(t, 4, detail.Ratings[0].Value)

	_, err = h.adminSvc.GetUser(999)
	require.Error(t, err)
	appErr, ok := apperr.From(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status)
}

func TestAdminCreateUser(t *testing.T) {
	h := newHarness(t)

	in := AdminUserInput{
		Name:     "Omar The Designated Shopkeeper",
		Email:    "omar@example.com",
		Address:  "3 Harbour Lane",
		Password: "Owner@Pass12",
		Role:     "owner",
	}

	user, err := h.adminSvc.CreateUser(in)
	require.NoError(t, err)
	assert.Equal(t, rbac.RoleOwner, user.Role)

	_, err = h.adminSvc.CreateUser(in)
	require.Error(t, err)
	appErr, ok := apperr.From(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Status)

	in.Email = "another@example.com"
	in.Role = "SUPERHERO"
	_, err = h.adminSvc.CreateUser(in)
	require.Error(t, err)
	appErr, ok = apperr.From(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)
}

func TestDashboardCounts(t *testing.T) {
	h := newHarness(t)
	owner := h.user(t, "Olivia The Owner Of Everything", "owner@example.com", rbac.RoleOwner)
	rater := h.user(t, "Randall The Rating Enthusiast", "rater@example.com", rbac.RoleUser)
	store := h.store(t, "Corner Coffee", owner.ID)
	h.store(t, "Hardware Depot", owner.ID)
	h.rate(t, store.ID, rater.ID, 5)

	counts, err := h.adminSvc.Dashboard()
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.TotalUsers)
	assert.Equal(t, int64(2), counts.TotalStores)
	assert.Equal(t, int64(1), counts.TotalRatings)
}

func TestAdminDeletes(t *testing.T) {
	h := newHarness(t)
	owner := h.user(t, "Olivia The Owner Of Everything", "owner@example.com", rbac.RoleOwner)
	rater := h.user(t, "Randall The Rating Enthusiast", "rater@example.com", rbac.RoleUser)
	store := h.store(t, "Corner Coffee", owner.ID)
	h.rate(t, store.ID, rater.ID, 5)

	require.NoError(t, h.adminSvc.DeleteStore(store.ID))
	_, err := h.storeSvc.Get(store.ID, nil)
	require.Error(t, err)

	require.NoError(t, h.adminSvc.DeleteUser(rater.ID))
	err = h.adminSvc.DeleteUser(rater.ID)
	require.Error(t, err)
	appErr, ok := apperr.From(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status)

	// The deleted account releases its email for a fresh signup.
	_, err = h.authSvc.Signup(validSignup("rater@example.com"))
	assert.NoError(t, err)
}
