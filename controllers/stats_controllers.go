package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/parking-app/models"
	"github.com/yeremiapane/parking-app/utils"
	"gorm.io/gorm"
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

// GetStats -> ringkasan untuk user yang login. Sesi dan kendaraan dihitung
// per user, slot kosong dihitung global karena slot adalah resource bersama.
func (sc *StatsController) GetStats(c *gin.Context) {
	userID := currentUserID(c)

	var stats struct {
		ActiveSessions int64 `json:"active_sessions"`
		TotalVehicles  int64 `json:"total_vehicles"`
		AvailableSlots int64 `json:"available_slots"`
	}

	if err := sc.DB.Model(&models.ParkingSession{}).
		Where("user_id = ? AND status = ?", userID, models.SessionStatusActive).
		Count(&stats.ActiveSessions).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := sc.DB.Model(&models.Vehicle{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalVehicles).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := sc.DB.Model(&models.ParkingSlot{}).
		Where("is_occupied = ?", false).
		Count(&stats.AvailableSlots).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Parking stats", stats)
}

// GetDashboardStats -> statistik lengkap untuk admin dashboard
func (sc *StatsController) GetDashboardStats(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	var stats struct {
		SlotStats struct {
			Available int64 `json:"available"`
			Occupied  int64 `json:"occupied"`
			Total     int64 `json:"total"`
		} `json:"slot_stats"`
		VehicleStats struct {
			Car   int64 `json:"car"`
			Bike  int64 `json:"bike"`
			Truck int64 `json:"truck"`
			Other int64 `json:"other"`
			Total int64 `json:"total"`
		} `json:"vehicle_stats"`
		ActiveSessions int64 `json:"active_sessions"`
		TodaySessions  int64 `json:"today_sessions"`
	}

	sc.DB.Model(&models.ParkingSlot{}).Where("is_occupied = ?", false).Count(&stats.SlotStats.Available)
	sc.DB.Model(&models.ParkingSlot{}).Where("is_occupied = ?", true).Count(&stats.SlotStats.Occupied)
	stats.SlotStats.Total = stats.SlotStats.Available + stats.SlotStats.Occupied

	sc.DB.Model(&models.Vehicle{}).Where("vehicle_type = ?", models.VehicleTypeCar).Count(&stats.VehicleStats.Car)
	sc.DB.Model(&models.Vehicle{}).Where("vehicle_type = ?", models.VehicleTypeBike).Count(&stats.VehicleStats.Bike)
	sc.DB.Model(&models.Vehicle{}).Where("vehicle_type = ?", models.VehicleTypeTruck).Count(&stats.VehicleStats.Truck)
	sc.DB.Model(&models.Vehicle{}).Where("vehicle_type = ?", models.VehicleTypeOther).Count(&stats.VehicleStats.Other)
	sc.DB.Model(&models.Vehicle{}).Count(&stats.VehicleStats.Total)

	sc.DB.Model(&models.ParkingSession{}).Where("status = ?", models.SessionStatusActive).Count(&stats.ActiveSessions)
	sc.DB.Model(&models.ParkingSession{}).Where("DATE(entry_time) = ?", today).Count(&stats.TodaySessions)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}
