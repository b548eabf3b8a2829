// Package routes declares the full HTTP route table.
package routes

import (
	"github.com/sarthakjain/storerate/app/controllers"
	"github.com/sarthakjain/storerate/app/repositories"
	"github.com/sarthakjain/storerate/app/services"
	"github.com/sarthakjain/storerate/pkg/ctx"
	"github.com/sarthakjain/storerate/pkg/database"
	"github.com/sarthakjain/storerate/pkg/metrics"
	"github.com/sarthakjain/storerate/pkg/middleware"
	"github.com/sarthakjain/storerate/pkg/rbac"
	"github.com/sarthakjain/storerate/pkg/router"
)

// RegisterAPI wires repositories, services, and controllers onto the router.
func RegisterAPI(r *router.Router) {
	users := repositories.NewUserRepository(database.DB)
	stores := repositories.NewStoreRepository(database.DB)
	ratings := repositories.NewRatingRepository(database.DB)

	authSvc := services.NewAuthService(users)
	storeSvc := services.NewStoreService(stores, users, ratings)
	ratingSvc := services.NewRatingService(ratings, stores)
	adminSvc := services.NewAdminService(users, stores, ratings, storeSvc)

	authCtrl := controllers.NewAuthController(authSvc)
	storeCtrl := controllers.NewStoreController(storeSvc)
	ratingCtrl := controllers.NewRatingController(ratingSvc)
	adminCtrl := controllers.NewAdminController(adminSvc)

	r.Get("/", "liveness", ctx.Wrap(func(c *ctx.Context) {
		c.OK("Store rating API is running", nil)
	}))
	r.HandleFunc("/metrics", metrics.Handler())

	api := r.Group("/api")

	// Public auth surface.
	auth := api.Group("/auth")
	auth.Post("/signup", "auth.signup", ctx.Wrap(authCtrl.Signup))
	auth.Post("/login", "auth.login", ctx.Wrap(authCtrl.Login))
	auth.Post("/change-password", "auth.change_password", ctx.Wrap(authCtrl.ChangePassword), middleware.Authenticate)
	auth.Get("/profile", "auth.profile", ctx.Wrap(authCtrl.Profile), middleware.Authenticate)

	// Stores: browsing is public, creation is OWNER-only. The fixed
	// /get/owner segment is registered before the {id} wildcard.
	storesGrp := api.Group("/stores")
	storesGrp.Get("/get/owner", "stores.owner", ctx.Wrap(storeCtrl.OwnerStores),
		middleware.Authenticate, rbac.HasRole(rbac.RoleAdmin, rbac.RoleOwner))
	storesGrp.Get("", "stores.index", ctx.Wrap(storeCtrl.List), middleware.MaybeAuthenticate)
	storesGrp.Get("/{id}", "stores.show", ctx.Wrap(storeCtrl.Get), middleware.MaybeAuthenticate)
	storesGrp.Post("", "stores.create", ctx.Wrap(storeCtrl.Create),
		middleware.Authenticate, rbac.HasRole(rbac.RoleOwner))

	// Ratings: reads are public, writes need a token.
	ratingsGrp := api.Group("/ratings")
	ratingsGrp.Post("", "ratings.submit", ctx.Wrap(ratingCtrl.Submit), middleware.Authenticate)
	ratingsGrp.Put("/{id}", "ratings.update", ctx.Wrap(ratingCtrl.Update), middleware.Authenticate)
	ratingsGrp.Delete("/{id}", "ratings.delete", ctx.Wrap(ratingCtrl.Delete), middleware.Authenticate)
	ratingsGrp.Get("/{id}", "ratings.for_store", ctx.Wrap(ratingCtrl.ForStore))
	ratingsGrp.Get("/{id}/average", "ratings.average", ctx.Wrap(ratingCtrl.Average))
	ratingsGrp.Get("/{id}/users", "ratings.raters", ctx.Wrap(ratingCtrl.Raters),
		middleware.Authenticate, rbac.HasRole(rbac.RoleAdmin, rbac.RoleOwner))

	// Admin surface, fully ADMIN-gated.
	admin := api.Group("/admin", middleware.Authenticate, rbac.HasRole(rbac.RoleAdmin))
	admin.Get("/users", "admin.users.index", ctx.Wrap(adminCtrl.ListUsers))
	admin.Post("/users", "admin.users.create", ctx.Wrap(adminCtrl.CreateUser))
	admin.Get("/users/{id}", "admin.users.show", ctx.Wrap(adminCtrl.GetUser))
	admin.Delete("/users/{id}", "admin.users.delete", ctx.Wrap(adminCtrl.DeleteUser))
	admin.Get("/stores", "admin.stores.index", ctx.Wrap(adminCtrl.ListStores))
	admin.Delete("/stores/{id}", "admin.stores.delete", ctx.Wrap(adminCtrl.DeleteStore))
	admin.Get("/dashboard", "admin.dashboard", ctx.Wrap(adminCtrl.Dashboard))
}
