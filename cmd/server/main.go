package main

import (
	"log"
	"net/http"

	"bookshop/docs"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"bookshop/internal/auth"
	"bookshop/internal/cache"
	"bookshop/internal/config"
	"bookshop/internal/db"
	"bookshop/internal/handler"
	"bookshop/internal/model"
	"bookshop/internal/repository"
	"bookshop/internal/router"
	"bookshop/internal/service"
	"bookshop/internal/storage"
)

// @title Bookshop API
// @version 1.0
// @description E-commerce API with JWT authentication, role-gated routes and offset pagination.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(echomw.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			log.Printf("database close: %v", err)
		}
	}()

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Invoice{},
		&model.InvoiceItem{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() {
		if err := cacheClient.Close(); err != nil {
			log.Printf("cache close: %v", err)
		}
	}()

	imageStore, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("image store init: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	invoiceRepo := repository.NewInvoiceRepository(gormDB)

	// Auth components
	tokens := auth.NewTokenService(
		cfg.AccessTokenSecret, cfg.AccessTokenTTL,
		cfg.RefreshTokenSecret, cfg.RefreshTokenTTL,
	)

	// Services
	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo, cacheClient)
	productService := service.NewProductService(productRepo, imageStore, cacheClient)
	categoryService := service.NewCategoryService(categoryRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, productRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)

	router.Register(
		e,
		cfg,
		tokens,
		authHandler,
		userHandler,
		productHandler,
		categoryHandler,
		invoiceHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
