package main

import (
	"os"

	"lashbook-backend/config"
	"lashbook-backend/models"
	"lashbook-backend/routes"
	"lashbook-backend/services"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found")
	}
	config.InitLogger()
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Staff{},
		&models.StaffNote{},
		&models.Service{},
		&models.Appointment{},
		&models.VIPProfile{},
		&models.Notification{},
		&models.Payment{},
		&models.Course{},
		&models.CourseEnrollment{},
	)
}

func main() {
	services.Payments = services.NewStripeProvider()

	scheduler := services.StartScheduler(config.DB)
	defer scheduler.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter()
	log.Info().Str("port", port).Msg("Server starting")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
