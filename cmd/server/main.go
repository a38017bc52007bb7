package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/ParthChaturvedi07/InvestorSarthi/internal/auth"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/cache"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/config"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/db"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/handler"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/model"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/repository"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/router"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/service"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/storage"
)

// @title Real Estate Listings API
// @version 1.0
// @description Project listing platform with admin CRUD, image galleries, and JWT authentication.
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token. A `token` cookie works as well.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(echomw.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Project{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	blobStorage, err := storage.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	projectService := service.NewProjectService(projectRepo, blobStorage, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.CookieSecure)
	projectHandler := handler.NewProjectHandler(projectService)

	// Register routes
	router.Register(e, cfg, jwtService, tokenStore, authService, authHandler, projectHandler)

	log.Printf("listening on :%s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("server: %v", err)
	}
}
