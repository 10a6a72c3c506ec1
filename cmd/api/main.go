// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clubhub-dev/clubhub-backend/internal/api/handlers"
	"github.com/clubhub-dev/clubhub-backend/internal/api/middleware"
	"github.com/clubhub-dev/clubhub-backend/internal/config"
	"github.com/clubhub-dev/clubhub-backend/internal/cron"
	"github.com/clubhub-dev/clubhub-backend/internal/db"
	"github.com/clubhub-dev/clubhub-backend/internal/duty"
	"github.com/clubhub-dev/clubhub-backend/internal/notification"
	"github.com/clubhub-dev/clubhub-backend/internal/repository"
	"github.com/clubhub-dev/clubhub-backend/internal/seed"
	"github.com/clubhub-dev/clubhub-backend/internal/service"
	"github.com/clubhub-dev/clubhub-backend/internal/socket"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// ============================================
	// Load environment variables
	// ============================================
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// ============================================
	// Load configuration
	// ============================================
	cfg := config.Load()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ============================================
	// Run Database Migrations FIRST
	// ============================================
	log.Println("🔄 Running database migrations...")
	migrationsPath := "./internal/db/migrations"
	if err := db.RunMigrations(cfg.DatabaseURL, migrationsPath); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	// ============================================
	// Initialize PostgreSQL
	// ============================================
	ctx := context.Background()

	pgPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to create pgx pool: %v", err)
	}
	defer pgPool.Close()

	if err := pgPool.Ping(ctx); err != nil {
		log.Fatalf("❌ Failed to ping PostgreSQL: %v", err)
	}
	log.Println("✅ Connected to PostgreSQL")

	// ============================================
	// Initialize Repositories
	// ============================================
	repos := repository.NewRepositories(pgPool)
	log.Println("📦 Repositories initialized")

	// ============================================
	// Initialize Redis (optional)
	// ============================================
	var redisDB *db.RedisDB
	if cfg.RedisURL != "" {
		redisDB, err = db.NewRedisDB(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️ Failed to connect to Redis: %v (continuing without cache)", err)
			redisDB = nil
		} else {
			defer redisDB.Close()
			log.Println("⚡ Redis cache enabled")
		}
	}

	// ============================================
	// Initialize Duty Ledger
	// ============================================
	var dutyStore duty.Store
	switch cfg.DutyStore {
	case "postgres":
		dutyStore = duty.NewPgStore(pgPool)
		log.Println("🏅 Duty ledger: postgres")
	default:
		dutyStore, err = duty.NewMemStore()
		if err != nil {
			log.Fatalf("❌ Failed to create duty ledger: %v", err)
		}
		log.Println("🏅 Duty ledger: embedded memdb")
	}

	// ============================================
	// Initialize WebSocket Hub
	// ============================================
	hub := socket.NewHub()
	go hub.Run()
	broadcaster := socket.NewBroadcaster(hub)
	wsHandler := socket.NewHandler(hub, cfg.JWTSecret)
	log.Println("🔌 WebSocket hub initialized")

	// ============================================
	// Seed Data (for development)
	// ============================================
	if cfg.Environment != "production" {
		log.Println("🌱 Seeding development data...")
		seed.SeedData(repos)
	}

	// ============================================
	// Initialize Notification Service
	// ============================================
	notificationSvc := notification.NewService(repos.NotificationRepo)
	notificationSvc.SetBroadcaster(broadcaster)

	// ============================================
	// Initialize All Services
	// ============================================
	services := service.NewServices(&service.ServiceDeps{
		Config:      cfg,
		Repos:       repos,
		DutyStore:   dutyStore,
		Redis:       redisDB,
		NotifSvc:    notificationSvc,
		Broadcaster: broadcaster,
	})
	log.Println("✨ All services initialized")

	// ============================================
	// Initialize Handlers
	// ============================================
	h := handlers.NewHandlers(services)

	// ============================================
	// Initialize Cron Scheduler
	// ============================================
	cronScheduler := cron.NewScheduler(
		notificationSvc,
		dutyStore,
		repos.EventRepo,
		repos.NotificationRepo,
		redisDB,
	)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// ============================================
	// Create Gin Router
	// ============================================
	r := gin.Default()
	r.Use(middleware.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL, "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"timestamp":  time.Now(),
			"database":   "connected",
			"cache":      getCacheStatus(redisDB),
			"websocket":  "active",
			"ws_clients": hub.GetConnectedClientsCount(),
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// ============================================
		// Public routes (no auth required)
		// ============================================
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		// WebSocket route
		api.GET("/ws", wsHandler.HandleWebSocket)

		// ============================================
		// Protected routes (require auth middleware)
		// ============================================
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(services.Auth))
		{
			// User routes
			users := protected.Group("/users")
			{
				users.GET("/me", h.User.Me)
				users.PUT("/me", h.User.UpdateMe)
				users.GET("/search", h.User.Search)
			}

			// Club routes
			clubs := protected.Group("/clubs")
			{
				clubs.GET("", h.Club.List)
				clubs.POST("", h.Club.Create)
				clubs.GET("/:clubId", h.Club.Get)
				clubs.PUT("/:clubId", h.Club.Update)
				clubs.DELETE("/:clubId", h.Club.Delete)

				// Aggregated member view
				clubs.GET("/:clubId/members", h.Club.ListMembers)
				clubs.POST("/:clubId/members", h.Club.AddMember)
				clubs.PUT("/:clubId/members/:userId/roles", h.Club.UpdateMemberRoles)
				clubs.DELETE("/:clubId/members/:userId/roles/:role", h.Club.RemoveMemberRole)
				clubs.DELETE("/:clubId/members/:userId", h.Club.RemoveMember)

				// Teams
				clubs.GET("/:clubId/teams", h.Team.ListByClub)
				clubs.POST("/:clubId/teams", h.Team.Create)

				// Events
				clubs.GET("/:clubId/events", h.Event.ListByClub)
				clubs.POST("/:clubId/events", h.Event.Create)

				// Points
				clubs.GET("/:clubId/leaderboard", h.Duty.Leaderboard)
			}

			// Team routes
			teams := protected.Group("/teams")
			{
				teams.GET("/:teamId", h.Team.Get)
				teams.PUT("/:teamId", h.Team.Update)
				teams.DELETE("/:teamId", h.Team.Delete)
				teams.GET("/:teamId/members", h.Team.ListMembers)
				teams.POST("/:teamId/members", h.Team.AddMember)
				teams.PUT("/:teamId/members/:userId/roles", h.Team.UpdateMemberRoles)
				teams.DELETE("/:teamId/members/:userId", h.Team.RemoveMember)
			}

			// Child routes
			children := protected.Group("/children")
			{
				children.GET("", h.Child.List)
				children.POST("", h.Child.Create)
				children.GET("/:childId", h.Child.Get)
				children.PUT("/:childId", h.Child.Update)
				children.DELETE("/:childId", h.Child.Delete)
			}

			// Event routes
			events := protected.Group("/events")
			{
				events.GET("/:eventId", h.Event.Get)
				events.DELETE("/:eventId", h.Event.Delete)
				events.GET("/:eventId/duties", h.Duty.ListByEvent)
			}

			// Vault routes
			vault := protected.Group("/vault")
			{
				vault.GET("/folders", h.Vault.ListFolders)
				vault.GET("/folders/:folderId/subfolders", h.Vault.ListSubfolders)
				vault.POST("/folders/:folderId/subfolders", h.Vault.CreateSubfolder)
				vault.GET("/folders/:folderId/contents/:kind", h.Vault.ListContents)
				vault.POST("/folders/:folderId/contents/:kind", h.Vault.Upload)
				vault.DELETE("/subfolders/:subfolderId", h.Vault.DeleteSubfolder)
			}

			// Duty routes
			duties := protected.Group("/duties")
			{
				duties.POST("/complete", h.Duty.MarkCompleted)
				duties.POST("/:completionId/approve", h.Duty.Approve)
				duties.GET("/mine", h.Duty.MyCompletions)
				duties.GET("/balance", h.Duty.MyBalance)
			}

			// Notification routes
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.GET("/unread-count", h.Notification.UnreadCount)
				notifications.PUT("/:notificationId/read", h.Notification.MarkRead)
				notifications.PUT("/read-all", h.Notification.MarkAllRead)
				notifications.DELETE("/:notificationId", h.Notification.Delete)
			}
		}
	}

	// ============================================
	// Start HTTP Server with graceful shutdown
	// ============================================
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("🚀 Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Forced shutdown: %v", err)
	}
	log.Println("👋 Server stopped")
}

func getCacheStatus(redisDB *db.RedisDB) string {
	if redisDB == nil {
		return "disabled"
	}
	return "connected"
}
