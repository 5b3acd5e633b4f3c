package routes

import (
	"time"

	"github.com/shashiranjanraj/kalaghar/app/controllers"
	"github.com/shashiranjanraj/kalaghar/app/models"
	"github.com/shashiranjanraj/kalaghar/app/services"
	"github.com/shashiranjanraj/kalaghar/pkg/middleware"
	"github.com/shashiranjanraj/kalaghar/pkg/rbac"
	"github.com/shashiranjanraj/kalaghar/pkg/router"
)

// Services are the dependencies the API handlers call into.
type Services struct {
	Auth           *services.AuthService
	Users          *services.UserService
	Artworks       *services.ArtworkService
	Orders         *services.OrderService
	MaxUploadBytes int64
}

// AuthAttempts caps signup and login calls per client IP per minute.
var AuthAttempts = 20

func RegisterAPI(r *router.Router, s Services) {
	authController := controllers.NewAuthController(s.Auth)
	userController := controllers.NewUserController(s.Users)
	artworkController := controllers.NewArtworkController(s.Artworks, s.MaxUploadBytes)
	orderController := controllers.NewOrderController(s.Orders)

	api := r.Group("/api")

	// public
	api.Get("/artworks", "artworks.index", artworkController.Index)
	api.Get("/artworks/{id}", "artworks.show", artworkController.Show)
	api.Get("/artworks/{id}/quote", "artworks.quote", artworkController.Quote)
	api.Get("/checkout/quote", "checkout.quote", artworkController.CheckoutQuote)

	guest := api.Group("/auth", middleware.RateLimit(AuthAttempts, time.Minute))
	guest.Post("/signup", "auth.signup", authController.Signup)
	guest.Post("/login", "auth.login", authController.Login)

	// authenticated
	protected := api.Group("", middleware.Auth, middleware.Account(s.Users.Active))
	protected.Get("/auth/me", "auth.me", authController.Me)
	protected.Post("/orders", "orders.store", orderController.Store)

	artists := protected.Group("/artworks", rbac.HasRole(models.RoleArtist, models.RoleAdmin))
	artists.Post("/", "artworks.store", artworkController.Store)
	artists.Post("/images", "artworks.images", artworkController.UploadImage)

	admin := protected.Group("", rbac.HasRole(models.RoleAdmin))
	admin.Get("/orders", "orders.index", orderController.Index)
	admin.Get("/users", "users.index", userController.Index)
	admin.Patch("/users/{id}/role", "users.role", userController.ChangeRole)
	admin.Patch("/users/{id}/status", "users.status", userController.ChangeStatus)

	selfOrAdmin := protected.Group("/users/{id}", rbac.SelfOrRole("id", models.RoleAdmin))
	selfOrAdmin.Get("/", "users.show", userController.Show)
	selfOrAdmin.Put("/profile", "users.profile", userController.UpdateProfile)
	selfOrAdmin.Delete("/", "users.destroy", userController.Destroy)

	self := protected.Group("/users/{id}", rbac.SelfOrRole("id"))
	self.Put("/password", "users.password", userController.ChangePassword)
	self.Put("/payout", "users.payout", userController.UpdatePayout)
	self.Put("/privacy", "users.privacy", userController.UpdateSettings)
}
