package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/moranr123/Pawsafety-sub002/internal/config"
	"github.com/moranr123/Pawsafety-sub002/internal/feed"
	"github.com/moranr123/Pawsafety-sub002/internal/handlers"
	"github.com/moranr123/Pawsafety-sub002/internal/localstore"
	"github.com/moranr123/Pawsafety-sub002/internal/middleware"
	"github.com/moranr123/Pawsafety-sub002/internal/repository"
	"github.com/moranr123/Pawsafety-sub002/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize Firebase
	if err := config.InitFirebase(); err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}
	defer config.CloseFirebase()

	// Open the local durable store for read cursors and hidden sets
	localPath := os.Getenv("LOCAL_STORE_PATH")
	if localPath == "" {
		localPath = "./pawsafety.db"
	}
	local, err := localstore.NewSQLiteStore(localPath)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}
	defer local.Close()
	log.Println("✅ Local store opened")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	eventRepo := repository.NewEventRepository()
	commentRepo := repository.NewCommentRepository()

	// One feed engine per principal, built on demand
	sessions := services.NewFeedSessionStore(func(principal string) *feed.Engine {
		readState := feed.NewReadStateStore(local, eventRepo, principal)
		hidden := feed.NewHiddenStore(local, eventRepo, principal)
		return feed.NewEngine(eventRepo.Sources(principal), readState, hidden)
	})

	// Initialize services
	tokens := services.NewTokenStore(sessions.Drop)
	authService := services.NewAuthService(userRepo, tokens)
	commentService := services.NewCommentService(commentRepo)

	// Initialize Gin router
	router := gin.Default()

	// Apply middleware
	router.Use(middleware.CORS())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	feedHandler := handlers.NewFeedHandler(sessions)
	commentHandler := handlers.NewCommentHandler(commentService)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Pawsafety API is running",
		})
	})

	// API routes group
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)

			// Protected routes
			authProtected := auth.Group("")
			authProtected.Use(middleware.AuthMiddleware(tokens))
			{
				authProtected.POST("/logout", authHandler.Logout)
			}
		}

		// Feed routes (protected)
		feedRoutes := api.Group("/feed")
		feedRoutes.Use(middleware.AuthMiddleware(tokens))
		{
			feedRoutes.GET("", feedHandler.GetFeed)
			feedRoutes.GET("/badge", feedHandler.GetBadge)
			feedRoutes.GET("/unread", feedHandler.GetUnreadCounts)
			feedRoutes.POST("/read", feedHandler.MarkRead)
			feedRoutes.POST("/read-all", feedHandler.MarkAllRead)
			feedRoutes.POST("/hide", feedHandler.Hide)
			feedRoutes.DELETE("/:category/:eventId", feedHandler.DeleteEvent)
			feedRoutes.DELETE("/:category", feedHandler.DeleteCategory)
		}

		// Comment routes (protected)
		posts := api.Group("/posts")
		posts.Use(middleware.AuthMiddleware(tokens))
		{
			posts.GET("/:postId/comments", commentHandler.GetForest)
			posts.POST("/:postId/comments", commentHandler.AddComment)
		}

		commentRoutes := api.Group("/comments")
		commentRoutes.Use(middleware.AuthMiddleware(tokens))
		{
			commentRoutes.POST("/:commentId/edit", commentHandler.BeginEdit)
			commentRoutes.DELETE("/:commentId/edit", commentHandler.CancelEdit)
			commentRoutes.PUT("/:commentId", commentHandler.EditComment)
			commentRoutes.DELETE("/:commentId", commentHandler.DeleteComment)
			commentRoutes.POST("/:commentId/like", commentHandler.ToggleLike)
		}
	}

	// Start server
	log.Printf("🚀 Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
