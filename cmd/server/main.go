// @title TeamBoard API
// @version 1.0
// @description Backend API for the TeamBoard team-collaboration service
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"log"
	"time"

	"teamboard-be/config"
	"teamboard-be/internal/database"
	"teamboard-be/internal/handlers"
	"teamboard-be/internal/middleware"
	"teamboard-be/internal/models"
	"teamboard-be/internal/repository"
	"teamboard-be/internal/services"
	"teamboard-be/internal/utils"

	"github.com/gin-gonic/gin"

	_ "teamboard-be/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// seedAdmin makes sure the configured admin account exists so a fresh
// deployment can be managed immediately.
func seedAdmin(cfg *config.Config, userRepo *repository.UserRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if existing, err := userRepo.FindByLoginID(ctx, cfg.AdminLoginID); err == nil && existing != nil {
		return
	}

	hashedPassword, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatal("Failed to hash admin password:", err)
	}
	admin := &models.User{
		LoginID:    cfg.AdminLoginID,
		Password:   hashedPassword,
		Name:       cfg.AdminName,
		GlobalRole: models.RoleAdmin,
		IsActive:   true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Println("Failed to seed admin account:", err)
		return
	}
	log.Printf("Seeded admin account %q", cfg.AdminLoginID)
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to MongoDB
	mongodb, err := database.NewMongoDB(cfg.MongoDBURI, cfg.MongoDBDatabase)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongodb.Disconnect()

	// Initialize repositories
	userRepo := repository.NewUserRepository(mongodb.Database)
	teamRepo := repository.NewTeamRepository(mongodb.Database)
	boardRepo := repository.NewBoardRepository(mongodb.Database)
	columnRepo := repository.NewColumnRepository(mongodb.Database)
	cardRepo := repository.NewCardRepository(mongodb.Database)
	projectRepo := repository.NewProjectRepository(mongodb.Database)
	weeklyRepo := repository.NewWeeklyRepository(mongodb.Database)

	seedAdmin(cfg, userRepo)

	// Initialize services
	access := services.NewAccessService(userRepo, teamRepo, boardRepo)
	boardSvc := services.NewBoardService(boardRepo, columnRepo, cardRepo, mongodb)
	columnSvc := services.NewColumnService(columnRepo, boardRepo, cardRepo, mongodb)
	cardSvc := services.NewCardService(cardRepo, columnRepo, projectRepo, mongodb)
	hub := services.NewHub()

	// Due-date reminder fan-out
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	services.StartReminderWorker(workerCtx, cfg.ReminderInterval, cardRepo, hub)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg, userRepo)
	teamHandler := handlers.NewTeamHandler(access, teamRepo)
	boardHandler := handlers.NewBoardHandler(access, boardSvc, hub)
	columnHandler := handlers.NewColumnHandler(access, columnSvc, hub)
	cardHandler := handlers.NewCardHandler(access, cardSvc, hub)
	projectHandler := handlers.NewProjectHandler(access, projectRepo)
	weeklyHandler := handlers.NewWeeklyHandler(access, weeklyRepo)
	summaryHandler := handlers.NewSummaryHandler(access, boardRepo, columnRepo, cardRepo, projectRepo, teamRepo)
	searchHandler := handlers.NewSearchHandler(access, boardRepo, cardRepo, projectRepo)
	adminHandler := handlers.NewAdminHandler(access, userRepo, teamRepo)
	wsHandler := handlers.NewWsHandler(cfg, access, hub)

	// Initialize Gin
	r := gin.Default()

	r.Use(middleware.CORS(cfg))
	r.Use(middleware.RequestID())

	// Public routes
	public := r.Group("/api")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":   "ok",
				"message":  "TeamBoard API is running",
				"database": "MongoDB connected",
			})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// WebSocket authenticates via query token, not the auth middleware
		public.GET("/boards/:boardId/ws", wsHandler.Subscribe)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(cfg))
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.Me)

		protected.POST("/teams/join", teamHandler.Join)
		protected.GET("/teams/mine", teamHandler.Mine)

		protected.GET("/teams/:teamId/boards", boardHandler.List)
		protected.POST("/teams/:teamId/boards", boardHandler.Create)
		protected.GET("/boards/:boardId", boardHandler.Detail)
		protected.PATCH("/boards/:boardId", boardHandler.Rename)
		protected.DELETE("/boards/:boardId", boardHandler.Delete)

		protected.POST("/columns", columnHandler.Create)
		protected.PATCH("/columns/:columnId", columnHandler.Update)
		protected.DELETE("/columns/:columnId", columnHandler.Delete)
		protected.PATCH("/columns/:columnId/move", columnHandler.Move)

		protected.POST("/card", cardHandler.Create)
		protected.PATCH("/card/:cardId", cardHandler.Update)
		protected.DELETE("/card/:cardId", cardHandler.Delete)
		protected.PATCH("/card/:cardId/move", cardHandler.Move)

		protected.GET("/teams/:teamId/projects", projectHandler.List)
		protected.POST("/teams/:teamId/projects", projectHandler.Create)
		protected.GET("/projects/:projectId", projectHandler.Get)
		protected.PATCH("/projects/:projectId", projectHandler.Update)
		protected.DELETE("/projects/:projectId", projectHandler.Delete)

		protected.GET("/weekly/me/index", weeklyHandler.Index)
		protected.GET("/weekly/me", weeklyHandler.Get)
		protected.POST("/weekly", weeklyHandler.Upsert)

		protected.GET("/summary/:teamId", summaryHandler.Get)
		protected.GET("/teams/:teamId/search", searchHandler.Search)

		admin := protected.Group("/admin")
		admin.Use(adminHandler.RequireAdmin())
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.POST("/users", adminHandler.CreateUser)
			admin.PATCH("/users/:userId/role", adminHandler.SetUserRole)
			admin.POST("/users/:userId/password", adminHandler.ResetUserPassword)
			admin.DELETE("/users/:userId", adminHandler.DeactivateUser)

			admin.GET("/teams", adminHandler.ListTeams)
			admin.POST("/teams", adminHandler.CreateTeam)
			admin.DELETE("/teams/:teamId", adminHandler.DeleteTeam)
			admin.POST("/teams/:teamId/members", adminHandler.AddTeamMember)
			admin.DELETE("/teams/:teamId/members/:userId", adminHandler.RemoveTeamMember)
		}
	}

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Printf("Server starting on port %s", cfg.Port)
	log.Printf("Connected to MongoDB: %s", cfg.MongoDBDatabase)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
