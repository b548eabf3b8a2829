package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sarthakjain/storerate/app/models"
	"github.com/sarthakjain/storerate/pkg/auth"
	"github.com/sarthakjain/storerate/pkg/database"
	"github.com/sarthakjain/storerate/pkg/rbac"
	"github.com/sarthakjain/storerate/pkg/router"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newAPI(t *testing.T) http.Handler {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Store{}, &models.Rating{}))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})

	r := router.New()
	RegisterAPI(r)
	return r.Handler()
}

func seedUser(t *testing.T, name, email string, role rbac.Role) models.User {
	t.Helper()
	hash, err := auth.HashPassword("Password@123")
	require.NoError(t, err)
	u := models.User{Name: name, Email: email, Address: "1 Test Street", Password: hash, Role: role}
	require.NoError(t, database.DB.Create(&u).Error)
	return u
}

func seedStore(t *testing.T, name string, ownerID uint) models.Store {
	t.Helper()
	s := models.Store{Name: name, Email: "store@example.com", Address: "2 Market Road", OwnerID: &ownerID}
	require.NoError(t, database.DB.Create(&s).Error)
	return s
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env),
			"body: %s", rec.Body.String())
	}
	return rec, env
}

func tokenFor(t *testing.T, u models.User) string {
	t.Helper()
	token, err := auth.GenerateToken(u.ID, u.Role)
	require.NoError(t, err)
	return token
}

func TestLiveness(t *testing.T) {
	h := newAPI(t)

	rec, env := do(t, h, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}

func TestSignupAndLoginFlow(t *testing.T) {
	h := newAPI(t)

	// Name below 20 characters fails validation.
	rec, env := do(t, h, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "Too Short",
		"email":    "short@example.com",
		"address":  "1 Test Street",
		"password": "Secret@Pass1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)

	rec, env = do(t, h, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "Jonathan Montgomery Whitfield",
		"email":    "jon@example.com",
		"address":  "1 Test Street",
		"password": "Secret@Pass1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", env.Message)

	rec, env = do(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "jon@example.com",
		"password": "Secret@Pass1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.NotEmpty(t, payload.Token)
	assert.Equal(t, "jon@example.com", payload.User.Email)

	rec, _ = do(t, h, http.MethodGet, "/api/auth/profile", payload.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = do(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "jon@example.com",
		"password": "Wrong@Pass11",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)
}

func TestAuthGates(t *testing.T) {
	h := newAPI(t)
	user := seedUser(t, "Ursula The Unprivileged User", "user@example.com", rbac.RoleUser)

	// No token at all.
	rec, _ := do(t, h, http.MethodPost, "/api/ratings", "", map[string]any{"storeId": 1, "value": 3})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage token.
	rec, _ = do(t, h, http.MethodGet, "/api/auth/profile", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Wrong role on the admin surface.
	rec, _ = do(t, h, http.MethodGet, "/api/admin/dashboard", tokenFor(t, user), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// USER cannot create stores.
	rec, _ = do(t, h, http.MethodPost, "/api/stores", tokenFor(t, user), map[string]string{
		"name": "Sneaky Shop", "email": "shop@example.com", "address": "2 Market Road",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRatingFlow(t *testing.T) {
	h := newAPI(t)
	owner := seedUser(t, "Olivia The Owner Of Everything", "owner@example.com", rbac.RoleOwner)
	user := seedUser(t, "Randall The Rating Enthusiast", "rater@example.com", rbac.RoleUser)
	store := seedStore(t, "Corner Coffee", owner.ID)
	token := tokenFor(t, user)

	// Out-of-range value.
	rec, _ := do(t, h, http.MethodPost, "/api/ratings", token, map[string]any{"storeId": store.ID, "value": 7})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Missing store.
	rec, _ = do(t, h, http.MethodPost, "/api/ratings", token, map[string]any{"storeId": 999, "value": 4})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env := do(t, h, http.MethodPost, "/api/ratings", token, map[string]any{"storeId": store.ID, "value": 4})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", env.Message)

	var created models.Rating
	require.NoError(t, json.Unmarshal(env.Data, &created))

	// Second rating for the same store conflicts.
	rec, _ = do(t, h, http.MethodPost, "/api/ratings", token, map[string]any{"storeId": store.ID, "value": 5})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Author updates their rating.
	rec, _ = do(t, h, http.MethodPut, fmt.Sprintf("/api/ratings/%d", created.ID), token, map[string]any{"value": 5})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Public average reflects the update.
	rec, env = do(t, h, http.MethodGet, fmt.Sprintf("/api/ratings/%d/average", store.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var avg struct {
		StoreID       uint    `json:"storeId"`
		AverageRating float64 `json:"averageRating"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &avg))
	assert.InDelta(t, 5.0, avg.AverageRating, 0.0001)

	// Non-author cannot update.
	other := seedUser(t, "Ivan The Impatient Interloper", "ivan@example.com", rbac.RoleUser)
	rec, _ = do(t, h, http.MethodPut, fmt.Sprintf("/api/ratings/%d", created.ID), tokenFor(t, other), map[string]any{"value": 1})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Owner sees the roster through the gated raters route.
	rec, _ = do(t, h, http.MethodGet, fmt.Sprintf("/api/ratings/%d/users", store.ID), tokenFor(t, owner), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Author deletes their rating.
	rec, _ = do(t, h, http.MethodDelete, fmt.Sprintf("/api/ratings/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// After deleting, the same user can rate the store again.
	rec, env = do(t, h, http.MethodPost, "/api/ratings", token, map[string]any{"storeId": store.ID, "value": 3})
	assert.Equal(t, http.StatusCreated, rec.Code, "body: %s", env.Message)
}

func TestStoreBrowsing(t *testing.T) {
	h := newAPI(t)
	owner := seedUser(t, "Olivia The Owner Of Everything", "owner@example.com", rbac.RoleOwner)
	for i := 1; i <= 8; i++ {
		seedStore(t, fmt.Sprintf("Bakery %d", i), owner.ID)
	}

	rec, env := do(t, h, http.MethodGet, "/api/stores?search=bakery&page=2&limit=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Stores     []json.RawMessage `json:"stores"`
		Total      int64             `json:"total"`
		TotalPages int               `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(8), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Stores, 3)

	// Unknown store is a 404 with the envelope shape.
	rec, env = do(t, h, http.MethodGet, "/api/stores/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)

	// Owner store view is gated but works for the owner.
	rec, _ = do(t, h, http.MethodGet, "/api/stores/get/owner", tokenFor(t, owner), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, h, http.MethodGet, "/api/stores/get/owner", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStoreDetailCarriesMyRating(t *testing.T) {
	h := newAPI(t)
	owner := seedUser(t, "Olivia The Owner Of Everything", "owner@example.com", rbac.RoleOwner)
	user := seedUser(t, "Randall The Rating Enthusiast", "rater@example.com", rbac.RoleUser)
	store := seedStore(t, "Corner Coffee", owner.ID)
	require.NoError(t, database.DB.Create(&models.Rating{StoreID: store.ID, UserID: user.ID, Value: 4}).Error)

	path := fmt.Sprintf("/api/stores/%d", store.ID)

	var view struct {
		MyRating      *int    `json:"myRating"`
		AverageRating float64 `json:"averageRating"`
	}

	// Anonymous browsing still works, just without the personal rating.
	rec, env := do(t, h, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Nil(t, view.MyRating)

	rec, env = do(t, h, http.MethodGet, path, tokenFor(t, user), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &view))
	require.NotNil(t, view.MyRating)
	assert.Equal(t, 4, *view.MyRating)
	assert.InDelta(t, 4.0, view.AverageRating, 0.0001)
}

func TestAdminSurface(t *testing.T) {
	h := newAPI(t)
	admin := seedUser(t, "Administrator Of This Platform", "admin@example.com", rbac.RoleAdmin)
	owner := seedUser(t, "Olivia The Owner Of Everything", "owner@example.com", rbac.RoleOwner)
	user := seedUser(t, "Randall The Rating Enthusiast", "rater@example.com", rbac.RoleUser)
	store := seedStore(t, "Corner Coffee", owner.ID)
	require.NoError(t, database.DB.Create(&models.Rating{StoreID: store.ID, UserID: user.ID, Value: 4}).Error)

	token := tokenFor(t, admin)

	rec, env := do(t, h, http.MethodGet, "/api/admin/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var counts struct {
		TotalUsers   int64 `json:"totalUsers"`
		TotalStores  int64 `json:"totalStores"`
		TotalRatings int64 `json:"totalRatings"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &counts))
	assert.Equal(t, int64(3), counts.TotalUsers)
	assert.Equal(t, int64(1), counts.TotalStores)
	assert.Equal(t, int64(1), counts.TotalRatings)

	rec, _ = do(t, h, http.MethodGet, "/api/admin/users?role=OWNER", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, h, http.MethodGet, fmt.Sprintf("/api/admin/users/%d", owner.ID), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Creating an account with a duplicate email conflicts.
	rec, _ = do(t, h, http.MethodPost, "/api/admin/users", token, map[string]string{
		"name":     "Administrator Number Two Here",
		"email":    "admin@example.com",
		"address":  "4 Duplicate Drive",
		"password": "Admin@Pass12",
		"role":     "ADMIN",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = do(t, h, http.MethodDelete, fmt.Sprintf("/api/admin/stores/%d", store.ID), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, h, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", user.ID), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSignupReusesDeletedUsersEmail(t *testing.T) {
	h := newAPI(t)
	admin := seedUser(t, "Administrator Of This Platform", "admin@example.com", rbac.RoleAdmin)
	user := seedUser(t, "Randall The Rating Enthusiast", "rater@example.com", rbac.RoleUser)

	rec, _ := do(t, h, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", user.ID), tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The deleted account must release its email, so a fresh signup with
	// the same address succeeds instead of tripping the unique index.
	rec, env := do(t, h, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "Completely Different Person Now",
		"email":    "rater@example.com",
		"address":  "5 Second Chance Street",
		"password": "Secret@Pass1",
	})
	assert.Equal(t, http.StatusCreated, rec.Code, "body: %s", env.Message)
}
