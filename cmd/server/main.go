package main

import (
	"log"
	"net/http"

	"taskplanner/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"taskplanner/internal/auth"
	"taskplanner/internal/cache"
	"taskplanner/internal/config"
	"taskplanner/internal/db"
	"taskplanner/internal/handler"
	"taskplanner/internal/model"
	"taskplanner/internal/repository"
	"taskplanner/internal/router"
	"taskplanner/internal/service"
)

// @title Task Planner API
// @version 1.0
// @description Task and schedule planner API with local and Google authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Task{},
		&model.Schedule{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	scheduleRepo := repository.NewScheduleRepository(gormDB)

	// Initialize auth components
	tokenService := auth.NewTokenService(cfg.SecretKey, cfg.Algorithm, cfg.AccessTokenTTL)
	passwordHasher := auth.NewPasswordHasher(auth.DefaultBcryptCost)
	resolver := auth.NewIdentityResolver(tokenService, userRepo)
	googleProvider := auth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)

	// Initialize services
	authService := service.NewAuthService(userRepo, passwordHasher, tokenService)
	taskService := service.NewTaskService(taskRepo, cacheClient)
	scheduleService := service.NewScheduleService(scheduleRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, googleProvider)
	taskHandler := handler.NewTaskHandler(taskService)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)
	seedHandler := handler.NewSeedHandler(authService, taskService, scheduleService)

	// Register routes
	router.Register(
		e,
		resolver,
		authHandler,
		taskHandler,
		scheduleHandler,
		seedHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
