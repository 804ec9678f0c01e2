package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/parking-app/config"
	"github.com/yeremiapane/parking-app/models"
	"github.com/yeremiapane/parking-app/router"
	"github.com/yeremiapane/parking-app/services"
	"github.com/yeremiapane/parking-app/utils"
	"gorm.io/gorm"
)

func init() {
	// Load .env file di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	// Initialize logger
	utils.InfoLogger = logrus.New()
	utils.ErrorLogger = logrus.New()

	utils.InfoLogger.SetOutput(os.Stdout)
	utils.ErrorLogger.SetOutput(os.Stderr)

	utils.InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   true,
	})
	utils.ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   true,
	})
}

func main() {
	// Initialize DB
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	// Set gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)
	seedSlots(db)

	// Scheduler auto-clear harian (jam 18:00 lokal, lihat AUTO_CLEAR_HOUR)
	clearScheduler := services.NewAutoClearScheduler(db)
	clearScheduler.Start()
	defer clearScheduler.Stop()

	// Audit periodik invariant slot vs sesi aktif
	occupancyMonitor := services.NewOccupancyMonitor(db)
	occupancyMonitor.Start()
	defer occupancyMonitor.Stop()

	// Setup router
	r := router.SetupRouter(db, clearScheduler)

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	// Run server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.ParkingSlot{},
		&models.ParkingSession{},
		&models.Notification{},
		&models.LoginAttempt{},
		&models.JobRun{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

// seedSlots mengisi slot awal untuk instalasi baru (SEED_SLOTS=true)
func seedSlots(db *gorm.DB) {
	if os.Getenv("SEED_SLOTS") != "true" {
		return
	}

	var count int64
	db.Model(&models.ParkingSlot{}).Count(&count)
	if count > 0 {
		return
	}

	slots := []models.ParkingSlot{
		{SlotNumber: "A1", SlotType: models.VehicleTypeCar},
		{SlotNumber: "A2", SlotType: models.VehicleTypeCar},
		{SlotNumber: "A3", SlotType: models.VehicleTypeCar},
		{SlotNumber: "B1", SlotType: models.VehicleTypeBike},
		{SlotNumber: "B2", SlotType: models.VehicleTypeBike},
		{SlotNumber: "T1", SlotType: models.VehicleTypeTruck},
	}
	if err := db.Create(&slots).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to seed slots: %v", err)
		return
	}
	utils.InfoLogger.Printf("Seeded %d parking slots", len(slots))
}
