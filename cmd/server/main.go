package main

import (
	"log"
	"os"

	"habit-tracker-api/internal/database"
	"habit-tracker-api/internal/routes"
)

func main() {
	// Init database (explicit, idempotent schema migration)
	database.InitDB()

	// Setup the routes (public and protected routes)
	ginRoutes := routes.SetupRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8008"
	} else if port[0] != ':' {
		port = ":" + port
	}

	log.Printf("Server starting on port %s", port)
	log.Println("API endpoints:")
	log.Println("  POST   /api/register")
	log.Println("  POST   /api/login")
	log.Println("  POST   /api/habits")
	log.Println("  POST   /api/habits/progress")
	log.Println("  GET    /api/habits")
	log.Println("  GET    /api/habits/analytics")
	log.Println("  GET    /api/ws")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
