package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/parking-app/events"
	"github.com/yeremiapane/parking-app/models"
	"github.com/yeremiapane/parking-app/utils"
	"gorm.io/gorm"
)

type SlotController struct {
	DB *gorm.DB
}

func NewSlotController(db *gorm.DB) *SlotController {
	return &SlotController{DB: db}
}

// CreateSlot -> menambahkan slot parkir baru (admin)
func (sc *SlotController) CreateSlot(c *gin.Context) {
	var req struct {
		SlotNumber string `json:"slot_number" binding:"required"`
		SlotType   string `json:"slot_type" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.IsValidVehicleType(req.SlotType) {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("unknown slot type: %s", req.SlotType))
		return
	}

	var existing int64
	if err := sc.DB.Model(&models.ParkingSlot{}).
		Where("slot_number = ?", req.SlotNumber).
		Count(&existing).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if existing > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("slot number already exists"))
		return
	}

	slot := models.ParkingSlot{
		SlotNumber: req.SlotNumber,
		SlotType:   req.SlotType,
		IsOccupied: false,
	}

	if err := sc.DB.Create(&slot).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastSlotCreate(slot)

	utils.InfoLogger.Printf("New slot created: %s (type=%s)", slot.SlotNumber, slot.SlotType)
	utils.RespondJSON(c, http.StatusCreated, "Slot created successfully", slot)
}

// GetAllSlots -> seluruh slot diurutkan berdasarkan nomor
func (sc *SlotController) GetAllSlots(c *gin.Context) {
	var slots []models.ParkingSlot
	if err := sc.DB.Order("slot_number").Find(&slots).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of slots", slots)
}

// GetAvailableSlots -> slot kosong, opsional difilter per tipe (?type=Car)
func (sc *SlotController) GetAvailableSlots(c *gin.Context) {
	query := sc.DB.Where("is_occupied = ?", false)

	if slotType := c.Query("type"); slotType != "" {
		query = query.Where("slot_type = ?", slotType)
	}

	var slots []models.ParkingSlot
	if err := query.Order("slot_number").Find(&slots).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Available slots", slots)
}

// GetSlotByID -> detail satu slot
func (sc *SlotController) GetSlotByID(c *gin.Context) {
	slotID := c.Param("slot_id")
	var slot models.ParkingSlot
	if err := sc.DB.First(&slot, slotID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("slot not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Slot detail", slot)
}

// DeleteSlot -> menghapus slot (admin). Slot yang sedang dipakai tidak
// boleh dihapus karena sesi aktifnya masih menunjuk ke sana.
func (sc *SlotController) DeleteSlot(c *gin.Context) {
	slotID := c.Param("slot_id")
	var slot models.ParkingSlot

	if err := sc.DB.First(&slot, slotID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("slot not found"))
		return
	}

	if slot.IsOccupied {
		utils.RespondError(c, http.StatusBadRequest, errors.New("slot is currently occupied"))
		return
	}

	if err := sc.DB.Delete(&slot).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastSlotDelete(slot.ID)

	utils.InfoLogger.Printf("Slot %d deleted (%s)", slot.ID, slot.SlotNumber)
	utils.RespondJSON(c, http.StatusOK, "Slot deleted", gin.H{
		"id": slot.ID,
	})
}
