package routes

import (
	"project-board-api/internal/assign"
	"project-board-api/internal/database"
	"project-board-api/internal/handlers"
	"project-board-api/internal/middleware"
	"project-board-api/internal/suggest"

	"github.com/gin-gonic/gin"
)

func SetupRoutes() *gin.Engine {
	// Wire the board coordinator; the suggestion client is optional and
	// disabled when no endpoint is configured.
	var suggester assign.Suggester
	if client := suggest.NewClientFromEnv(); client != nil {
		suggester = client
	}
	handlers.InitCoordinator(database.GetDB(), suggester)

	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Project board API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/register", handlers.Register)
		api.POST("/login", handlers.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Project endpoints
		protectedRoutes.POST("/projects", handlers.CreateProject)
		protectedRoutes.GET("/projects", handlers.GetProjects)
		protectedRoutes.GET("/projects/:id", handlers.GetProject)
		protectedRoutes.POST("/projects/:id/members", handlers.AddMember)
		protectedRoutes.GET("/projects/:id/columns", handlers.GetColumns)
		protectedRoutes.POST("/projects/:id/columns", handlers.CreateColumn)
		protectedRoutes.POST("/projects/:id/notes", handlers.CreateNote)
		protectedRoutes.GET("/projects/:id/notes", handlers.GetNotes)
		// Task endpoints
		protectedRoutes.GET("/tasks", handlers.GetTasks)
		protectedRoutes.GET("/tasks/:id", handlers.GetTaskByID)
		protectedRoutes.POST("/tasks", handlers.CreateTask)
		protectedRoutes.POST("/tasks/:id/move", handlers.MoveTask)
		protectedRoutes.PUT("/tasks/:id", handlers.UpdateTask)
		protectedRoutes.DELETE("/tasks/:id", handlers.DeleteTask)
		// Note endpoints
		protectedRoutes.DELETE("/notes/:id", handlers.DeleteNote)
		// Focus session endpoints
		protectedRoutes.POST("/focus/start", handlers.StartFocus)
		protectedRoutes.POST("/focus/:id/stop", handlers.StopFocus)
		protectedRoutes.GET("/focus", handlers.GetFocusSessions)
		// Users endpoint
		protectedRoutes.GET("/users", handlers.GetAllUsers)
		// Realtime board updates
		protectedRoutes.GET("/ws", handlers.WebSocketHandler)
	}

	return ginRouter
}
