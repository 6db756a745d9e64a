package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/bugemco/multimedia-request-hub/config"
	"github.com/bugemco/multimedia-request-hub/database"
	"github.com/bugemco/multimedia-request-hub/router"
	"github.com/bugemco/multimedia-request-hub/services"
	"github.com/bugemco/multimedia-request-hub/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate schema: %v", err)
	}

	// Sessions live in memory only; a restart logs every admin out.
	sessions, err := services.NewSessionService(cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to initialize session service: %v", err)
	}

	if err := services.GetMailerService().ValidateConfig(); err != nil {
		utils.InfoLogger.Printf("Warning: mailer not fully configured: %v", err)
	}

	r := router.SetupRouter(db, cfg, sessions)

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
