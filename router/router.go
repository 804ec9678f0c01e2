package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/parking-app/controllers"
	"github.com/yeremiapane/parking-app/events"
	"github.com/yeremiapane/parking-app/middlewares"
	"github.com/yeremiapane/parking-app/services"
	"github.com/yeremiapane/parking-app/utils"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, clearer *services.AutoClearScheduler) *gin.Engine {
	r := gin.Default()

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Limiter global per IP harus terpasang sebelum route didaftarkan,
	// gin snapshot middleware chain saat registrasi
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	vehicleCtrl := controllers.NewVehicleController(db)
	slotCtrl := controllers.NewSlotController(db)
	sessionCtrl := controllers.NewSessionController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	statsCtrl := controllers.NewStatsController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Websocket untuk dashboard realtime (token lewat query)
	r.GET("/ws", events.Handler)

	api := r.Group("/api")

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	public := api.Group("/auth")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := api.Group("")
	auth.Use(middlewares.AuthMiddleware())

	auth.POST("/auth/logout", userCtrl.Logout)
	auth.GET("/auth/profile", userCtrl.GetProfile)

	// VEHICLES
	auth.GET("/vehicles", vehicleCtrl.GetAllVehicles)
	auth.POST("/vehicles", vehicleCtrl.CreateVehicle)
	auth.GET("/vehicles/:vehicle_id", vehicleCtrl.GetVehicleByID)
	auth.DELETE("/vehicles/:vehicle_id", vehicleCtrl.DeleteVehicle)

	// PARKING SLOTS
	auth.GET("/parking-slots", slotCtrl.GetAllSlots)
	auth.GET("/parking-slots/available", slotCtrl.GetAvailableSlots)
	auth.GET("/parking-slots/:slot_id", slotCtrl.GetSlotByID)

	// PARKING SESSIONS
	auth.GET("/parking-sessions", sessionCtrl.GetActiveSessions)
	auth.GET("/parking-sessions/history", sessionCtrl.GetSessionHistory)
	auth.POST("/parking-sessions", sessionCtrl.StartSession)
	auth.PUT("/parking-sessions/:session_id/exit", sessionCtrl.EndSession)

	// NOTIFICATIONS
	auth.GET("/notifications", notificationCtrl.GetAllNotifications)
	auth.PUT("/notifications/:notif_id/read", notificationCtrl.MarkAsRead)

	// STATS
	auth.GET("/stats", statsCtrl.GetStats)

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := auth.Group("")
	admin.Use(middlewares.AdminOnly())

	admin.POST("/parking-slots", slotCtrl.CreateSlot)
	admin.DELETE("/parking-slots/:slot_id", slotCtrl.DeleteSlot)
	admin.POST("/notifications", notificationCtrl.CreateNotification)
	admin.GET("/admin/dashboard", statsCtrl.GetDashboardStats)

	// Trigger manual untuk bulk clear, routine yang sama dengan scheduler
	admin.POST("/admin/parking/clear", func(c *gin.Context) {
		cleared, freed, err := clearer.RunNow()
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Parking cleared", gin.H{
			"cleared_sessions": cleared,
			"freed_slots":      freed,
		})
	})

	return r
}
