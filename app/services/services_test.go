package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sarthakjain/storerate/app/models"
	"github.com/sarthakjain/storerate/app/repositories"
	"github.com/sarthakjain/storerate/pkg/auth"
	"github.com/sarthakjain/storerate/pkg/rbac"
)

// harness wires the full service stack against an in-memory sqlite database.
type harness struct {
	db      *gorm.DB
	users   *repositories.UserRepository
	stores  *repositories.StoreRepository
	ratings *repositories.RatingRepository

	authSvc   *AuthService
	storeSvc  *StoreService
	ratingSvc *RatingService
	adminSvc  *AdminService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	// Named in-memory database so each test gets its own isolated store.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Store{}, &models.Rating{}))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})

	h := &harness{
		db:      db,
		users:   repositories.NewUserRepository(db),
		stores:  repositories.NewStoreRepository(db),
		ratings: repositories.NewRatingRepository(db),
	}
	h.authSvc = NewAuthService(h.users)
	h.storeSvc = NewStoreService(h.stores, h.users, h.ratings)
	h.ratingSvc = NewRatingService(h.ratings, h.stores)
	h.adminSvc = NewAdminService(h.users, h.stores, h.ratings, h.storeSvc)
	return h
}

func (h *harness) user(t *testing.T, name, email string, role rbac.Role) models.User {
	t.Helper()
	hash, err := auth.HashPassword("Password@123")
	require.NoError(t, err)
	u := models.User{Name: name, Email: email, Address: "1 Test Street", Password: hash, Role: role}
	require.NoError(t, h.users.Create(&u))
	return u
}

func (h *harness) store(t *testing.T, name string, ownerID uint) models.Store {
	t.Helper()
	s := models.Store{Name: name, Email: "store@example.com", Address: "2 Market Road", OwnerID: &ownerID}
	require.NoError(t, h.stores.Create(&s))
	return s
}

func (h *harness) rate(t *testing.T, storeID, userID uint, value int) models.Rating {
	t.Helper()
	r := models.Rating{StoreID: storeID, UserID: userID, Value: value}
	require.NoError(t, h.ratings.Create(&r))
	return r
}
