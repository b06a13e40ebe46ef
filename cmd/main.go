package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/vovantri123/glamora-store-api/internal/router"
	"github.com/vovantri123/glamora-store-api/pkg/backend"
	"github.com/vovantri123/glamora-store-api/pkg/checkout"
	"github.com/vovantri123/glamora-store-api/pkg/global"
	"github.com/vovantri123/glamora-store-api/pkg/mongo"
	"github.com/vovantri123/glamora-store-api/pkg/session"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	db := mongo.Connect()
	mongo.EnsureIndexesOnStartup(db)
	journal := mongo.NewJournal(db)

	sessions := session.NewStore(session.NewRedisClient())
	api := backend.NewClientFromEnv()
	orchestrator := checkout.NewService(api, sessions, journal)

	router.Init(api, sessions, orchestrator, journal, db)
	router.InitEngine()
	router.InitializeRoutes()

	port := global.GetEnvOrDefault("PORT", "8000")
	log.Printf("Server is running on port %s", port)

	if err := router.Router.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
