package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/mkowalczyk/timesheet-api/internal/config"
	"github.com/mkowalczyk/timesheet-api/internal/constants"
	"github.com/mkowalczyk/timesheet-api/internal/database"
	"github.com/mkowalczyk/timesheet-api/internal/handlers"
	"github.com/mkowalczyk/timesheet-api/internal/middleware"
	"github.com/mkowalczyk/timesheet-api/internal/repository"
	"github.com/mkowalczyk/timesheet-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Index pass is postgres-only; mysql picks the indexes up from the model tags
	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(database.GetDB()); err != nil {
			log.Fatalf("Failed to add indexes: %v", err)
		}
	}

	// Seed the bootstrap administrator account
	if err := database.SeedAdmin(cfg); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(database.GetDB())
	campaignRepo := repository.NewCampaignRepository(database.GetDB())

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	campaignService := services.NewCampaignService(campaignRepo)
	timesheetService := services.NewTimesheetService(campaignRepo, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, campaignService)
	campaignHandler := handlers.NewCampaignHandler(campaignService, timesheetService)
	timesheetHandler := handlers.NewTimesheetHandler(timesheetService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Timesheet API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public except /me)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// User directory (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.PUT("", userHandler.BulkUpdateUsers)
			users.GET("/:id/campaigns", userHandler.UserCampaigns)
			users.POST("/:id/campaigns", userHandler.CreateUserCampaign)
		}

		// Campaigns (protected; :id routes require ownership)
		campaigns := api.Group("/campaigns")
		campaigns.Use(middleware.RequireAuth())
		{
			campaigns.GET("", campaignHandler.ListCampaigns)
			campaigns.POST("", campaignHandler.CreateCampaign)
			campaigns.DELETE("/:id", middleware.RequireCampaignOwner(), campaignHandler.DeleteCampaign)
			campaigns.POST("/:id/reports", middleware.RequireCampaignOwner(), campaignHandler.RecordWorkReport)
			campaigns.GET("/:id/reports", middleware.RequireCampaignOwner(), campaignHandler.ListWorkReports)
		}

		// Bulk timesheet submission and supervisor view (protected)
		api.POST("/timesheet", middleware.RequireAuth(), timesheetHandler.SubmitTimesheet)
		api.GET("/report", middleware.RequireAuth(), timesheetHandler.SupervisorReport)
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
