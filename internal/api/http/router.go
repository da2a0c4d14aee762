package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/library-service/internal/api/http/handlers"
	"github.com/spec-kit/library-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Admin          *handlers.AdminHandler
	Books          *handlers.BooksHandler
	Transactions   *handlers.TransactionsHandler
	Members        *handlers.MembersHandler
	AuthMiddleware *auth.Middleware
	UploadsDir     string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Static("/uploads", cfg.UploadsDir)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Put("/update/:id", cfg.Auth.UpdateProfile)
	authGroup.Get("/getuser/:id", cfg.Auth.GetUser)
	authGroup.Get("/allmembers", cfg.Auth.AllMembers)

	api.Post("/admin/login", cfg.Admin.Login)

	books := api.Group("/books")
	books.Get("/", cfg.Books.List)
	books.Get("/:bookId/details", cfg.Books.Details)
	books.Post("/add", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Books.Add)
	books.Put("/:bookId", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Books.Update)
	books.Delete("/:bookId", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Books.Delete)

	api.Get("/categories", cfg.Books.Categories)

	transactions := api.Group("/transactions")
	transactions.Get("/", cfg.Transactions.List)
	transactions.Post("/add", cfg.Transactions.Add)
	transactions.Put("/:id", cfg.Transactions.Update)

	users := api.Group("/users")
	users.Put("/:userId/transactions/:transactionId",
		cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Members.MoveTransaction)
	users.Post("/uploadphoto/:id", cfg.Members.UploadPhoto)
	users.Put("/updatephotourl/:id", cfg.Members.UpdatePhotoURL)
}
