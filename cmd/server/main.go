package main

import (
	"log"
	"os"

	"project-board-api/internal/database"
	"project-board-api/internal/routes"
)

func main() {
	// Init database
	database.InitDB()

	// Setup the routes (public and protected routes)
	ginRoutes := routes.SetupRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8008"
	}

	log.Printf("Server starting on port :%s", port)
	log.Println("API endpoints:")
	log.Println("  POST   /api/register")
	log.Println("  POST   /api/login")
	log.Println("  POST   /api/projects")
	log.Println("  GET    /api/projects")
	log.Println("  POST   /api/tasks")
	log.Println("  POST   /api/tasks/:id/move")
	log.Println("  GET    /api/tasks")
	log.Println("  GET    /api/ws")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
