package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarthakjain/storerate/pkg/apperr"
	"github.com/sarthakjain/storerate/pkg/pagination"
	"github.com/sarthakjain/storerate/pkg/rbac"
)

func TestCreateStoreRequiresOwnerRole(t *testing.T) {
	h := newHarness(t)
	owner := h.user(t, "Olivia The Owner Of Everything", "owner@example.com", rbac.RoleOwner)
	plain := h.user(t, "Ursula The Unprivileged User", "user@example.com", rbac.RoleUser)

	in := StoreInput{Name: "Corner Coffee", Email: "shop@example.com", Address: "2 Market Road"}

	_, err := h.storeSvc.Create(plain.ID, in)
	require.Error(t, err)
	appErr, ok := apperr.From(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)

	store, err := h.storeSvc.Create(owner.ID, in)
	require.NoError(t, err)
	require.NotNil(t, store.OwnerID)
	assert.Equal(t, owner.ID, *store.OwnerID)
}

func TestGetStore(t *testing.T) {
	h := newHarness(t)
	owner := h.user(t, "Olivia The Owner Of Everything", "owner@example.com", rbac.RoleOwner)
	rater := h.user(t, "Randall The Rating Enthusiast", "rater@example.com", rbac.RoleUser)
	store := h.store(t, "Corner Coffee", owner.ID)
	h.rate(t, store.ID, rater.ID, 4)

	view, err := h.storeSvc.Get(store.ID, &rater.ID)
	require.NoError(t, err)
	assert.Equal(t, "Corner Coffee", view.Name)
	assert.InDelta(t, 4.0, view.AverageRating, 0.0001)
	require.NotNil(t, view.Owner)
	assert.Equal(t, owner.ID, view.Owner.ID)
	require.Len(t, view.Ratings, 1)
	assert.Equal(t, rater.ID, view.Ratings[0].User.ID)
	require.NotNil(t, view.MyRating)
	assert.Equal(t, 4, *view.MyRating)

	_, err = h.storeSvc.Get(999, nil)
	require.Error(t, err)
	appErr, ok := apperr.From(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status)
}

func TestListStoresSearchAndPagination(t *testing.T) {
	h := newHarness(t)
	owner := h.user(t, "Olivia The Owner Of Everything", "owner@example.com", rbac.RoleOwner)

	for i := 1; i <= 8; i++ {
		h.store(t, fmt.Sprintf("Bakery %d", i), owner.ID)
	}
	h.store(t, "Hardware Depot", owner.ID)

	// Case-insensitive substring search.
	views, total, err := h.storeSvc.List(pagination.Params{Page: 1, Limit: 10, Search: "bAkErY", Order: "desc"}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(8), total)
	assert.Len(t, views, 8)

	// page=2,limit=5 over 8 matching rows yields the remaining 3.
	views, total, err = h.storeSvc.List(pagination.Params{Page: 2, Limit: 5, Search: "Bakery", Order: "desc"}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(8), total)
	assert.Len(t, views, 3)

	// A page beyond the data is an empty list, not an error.
	views, _, err = h.storeSvc.List(pagination.Params{Page: 50, Limit: 10, Order: "desc"}, nil)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestStoreWithoutRatingsAveragesZero(t *testing.T) {
	h := newHarness(t)
	owner := h.user(t, "Olivia The Owner Of Everything", "owner@example.com", rbac.RoleOwner)
	h.store(t, "Silent Store", owner.ID)

	views, _, err := h.storeSvc.List(pagination.Params{Page: 1, Limit: 10, Order: "desc"}, nil)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, float64(0), views[0].AverageRating)
	assert.Equal(t, int64(0), views[0].TotalRatings)
	assert.NotNil(t, views[0].Ratings)
	assert.Empty(t, views[0].Ratings)
}

func TestOwnerStores(t *testing.T) {
	h := newHarness(t)
	owner := h.user(t, "Olivia The Owner Of Everything", "owner@example.com", rbac.RoleOwner)
	idle := h.user(t, "Oscar The Owner Without Shops", "idle@example.com", rbac.RoleOwner)
	rater := h.user(t, "Randall The Rating Enthusiast", "rater@example.com", rbac.RoleUser)
	store := h.store(t, "Corner Coffee", owner.ID)
	h.rate(t, store.ID, rater.ID, 5)

	views, err := h.storeSvc.OwnerStores(owner.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.InDelta(t, 5.0, views[0].AverageRating, 0.0001)
	require.Len(t, views[0].Ratings, 1)
	assert.Equal(t, rater.Email, views[0].Ratings[0].User.Email)

	_, err = h.storeSvc.OwnerStores(idle.ID)
	require.Error(t, err)
	appErr, ok := apperr.From(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status)
}
