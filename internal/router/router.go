package router

import (
	"log"

	"cityscope-backend/internal/handlers"
	"cityscope-backend/internal/middleware"
	"cityscope-backend/internal/models"
	"cityscope-backend/internal/repositories"
	"cityscope-backend/pkg/config"
	"cityscope-backend/pkg/storage"
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *config.DB, firebaseAuthClient *auth.Client, uploader storage.ImageUploader, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	err := db.Postgres.AutoMigrate(
		&models.User{},
		&models.Favorite{},
		&models.FavoriteGroup{},
		&models.GroupCity{},
		&models.Notification{},
		&models.SearchEntry{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	commentRepo := repositories.NewMongoCommentRepository(db.MongoDB)
	favoriteRepo := repositories.NewPostgresFavoriteRepository(db.Postgres)
	groupRepo := repositories.NewPostgresGroupRepository(db.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)
	searchHistoryRepo := repositories.NewPostgresSearchHistoryRepository(db.Postgres)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require session JWT) ---
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api group.")

	authHandler.RegisterProtectedAuthRoutes(api)

	// Comment thread routes
	commentHandler := handlers.NewCommentHandler(commentRepo, notificationRepo, uploader)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Favorite routes
	favoriteHandler := handlers.NewFavoriteHandler(favoriteRepo, commentRepo)
	favoriteHandler.RegisterFavoriteRoutes(api)
	log.Println("Favorite routes configured.")

	// Favorite group routes
	groupHandler := handlers.NewGroupHandler(groupRepo)
	groupHandler.RegisterGroupRoutes(api)
	log.Println("Group routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// Search history routes
	searchHistoryHandler := handlers.NewSearchHistoryHandler(searchHistoryRepo)
	searchHistoryHandler.RegisterSearchHistoryRoutes(api)
	log.Println("Search history routes configured.")

	log.Println("All routes configured.")
}
