package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bookshop/internal/auth"
	"bookshop/internal/config"
	"bookshop/internal/handler"
	"bookshop/internal/middleware"
)

// Register wires routes and middleware. The route layout mirrors the API
// surface under /api/v1; mutation routes on users and products are
// admin-only, invoice routes require any authenticated role.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokens *auth.TokenService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	productHandler *handler.ProductHandler,
	categoryHandler *handler.CategoryHandler,
	invoiceHandler *handler.InvoiceHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/img", cfg.UploadDir)

	authenticated := middleware.Authenticate(tokens)
	adminOnly := middleware.RequireRole(auth.RoleAdmin)
	anyRole := middleware.RequireRole(auth.RoleUser, auth.RoleAdmin)

	api := e.Group("/api/v1")

	// Public auth routes
	account := api.Group("/auth")
	account.POST("/register", authHandler.Register)
	account.POST("/login", authHandler.Login)
	account.POST("/refresh", authHandler.Refresh)
	account.POST("/logout", authHandler.Logout)

	// User management, admin only
	users := api.Group("/users", authenticated, adminOnly)
	users.GET("/list-user", userHandler.List)
	users.GET("/list-paginate-user", userHandler.ListPage)
	users.POST("/create-user", userHandler.Create)
	users.GET("/detail-user/:id", userHandler.Detail)
	users.PATCH("/update-user/:id", userHandler.Update)
	users.DELETE("/delete-user/:id", userHandler.Delete)

	// Catalog: reads public, writes admin only
	products := api.Group("/products")
	products.GET("/list-product", productHandler.List)
	products.GET("/list-paginate-product", productHandler.ListPage)
	products.GET("/search-product", productHandler.Search)
	products.GET("/detail-product/:id", productHandler.Detail)
	products.POST("/create-product", productHandler.Create, authenticated, adminOnly)
	products.PATCH("/update-product/:id", productHandler.Update, authenticated, adminOnly)
	products.DELETE("/delete-product/:id", productHandler.Delete, authenticated, adminOnly)

	// Categories are open CRUD
	categories := api.Group("/category")
	categories.GET("/list-category", categoryHandler.List)
	categories.POST("/create-category", categoryHandler.Create)
	categories.GET("/detail-category/:id", categoryHandler.Detail)
	categories.PATCH("/update-category/:id", categoryHandler.Update)
	categories.DELETE("/delete-category/:id", categoryHandler.Delete)

	// Invoices require an authenticated user of any role
	invoices := api.Group("/invoice", authenticated, anyRole)
	invoices.GET("/list-invoice", invoiceHandler.List)
	invoices.POST("/create-invoice", invoiceHandler.Create)
	invoices.GET("/detail-invoice/:id", invoiceHandler.Detail)
	invoices.PATCH("/update-invoice/:id", invoiceHandler.Update)
	invoices.DELETE("/delete-invoice/:id", invoiceHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
