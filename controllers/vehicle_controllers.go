package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/parking-app/models"
	"github.com/yeremiapane/parking-app/utils"
	"gorm.io/gorm"
)

type VehicleController struct {
	DB *gorm.DB
}

func NewVehicleController(db *gorm.DB) *VehicleController {
	return &VehicleController{DB: db}
}

// CreateVehicle -> mendaftarkan kendaraan milik user yang login.
// Nomor kendaraan unik secara global, bukan per user.
func (vc *VehicleController) CreateVehicle(c *gin.Context) {
	var req struct {
		VehicleNumber string  `json:"vehicle_number" binding:"required"`
		VehicleType   string  `json:"vehicle_type" binding:"required"`
		Model         *string `json:"model"`
		Color         *string `json:"color"`
		OwnerName     *string `json:"owner_name"`
		PhoneNumber   *string `json:"phone_number"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.IsValidVehicleType(req.VehicleType) {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("unknown vehicle type: %s", req.VehicleType))
		return
	}

	var existing int64
	if err := vc.DB.Model(&models.Vehicle{}).
		Where("vehicle_number = ?", req.VehicleNumber).
		Count(&existing).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if existing > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("vehicle already registered"))
		return
	}

	vehicle := models.Vehicle{
		UserID:        currentUserID(c),
		VehicleNumber: req.VehicleNumber,
		VehicleType:   req.VehicleType,
		Model:         req.Model,
		Color:         req.Color,
		OwnerName:     req.OwnerName,
		PhoneNumber:   req.PhoneNumber,
	}

	if err := vc.DB.Create(&vehicle).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Vehicle registered: %s (type=%s)", vehicle.VehicleNumber, vehicle.VehicleType)
	utils.RespondJSON(c, http.StatusCreated, "Vehicle registered", vehicle)
}

// GetAllVehicles -> kendaraan milik user yang login, terbaru dulu
func (vc *VehicleController) GetAllVehicles(c *gin.Context) {
	var vehicles []models.Vehicle
	if err := vc.DB.Where("user_id = ?", currentUserID(c)).
		Order("created_at DESC").
		Find(&vehicles).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of vehicles", vehicles)
}

// GetVehicleByID -> detail satu kendaraan
func (vc *VehicleController) GetVehicleByID(c *gin.Context) {
	vehicleID := c.Param("vehicle_id")

	var vehicle models.Vehicle
	if err := vc.DB.Where("user_id = ?", currentUserID(c)).
		First(&vehicle, vehicleID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("vehicle not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Vehicle detail", vehicle)
}

// DeleteVehicle -> menghapus kendaraan. Ditolak kalau masih parkir,
// supaya sesi aktif tidak kehilangan referensi kendaraan.
func (vc *VehicleController) DeleteVehicle(c *gin.Context) {
	vehicleID := c.Param("vehicle_id")

	var vehicle models.Vehicle
	if err := vc.DB.Where("user_id = ?", currentUserID(c)).
		First(&vehicle, vehicleID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("vehicle not found"))
		return
	}

	var activeSessions int64
	if err := vc.DB.Model(&models.ParkingSession{}).
		Where("vehicle_id = ? AND status = ?", vehicle.ID, models.SessionStatusActive).
		Count(&activeSessions).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if activeSessions > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("vehicle has an active parking session"))
		return
	}

	if err := vc.DB.Delete(&vehicle).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Vehicle %d deleted (%s)", vehicle.ID, vehicle.VehicleNumber)
	utils.RespondJSON(c, http.StatusOK, "Vehicle deleted", gin.H{
		"id": vehicle.ID,
	})
}
