package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yeremiapane/parking-app/events"
	"github.com/yeremiapane/parking-app/models"
	"github.com/yeremiapane/parking-app/utils"
	"gorm.io/gorm"
)

type SessionController struct {
	DB *gorm.DB
}

func NewSessionController(db *gorm.DB) *SessionController {
	return &SessionController{DB: db}
}

// StartSession -> kendaraan masuk dan mengklaim slot.
//
// Seluruh check-and-claim berjalan dalam satu transaksi. Klaim slot
// memakai conditional update (is_occupied = false di WHERE clause) dan
// diverifikasi lewat RowsAffected, sehingga dua request bersamaan untuk
// slot yang sama tidak mungkin dua-duanya berhasil.
func (sc *SessionController) StartSession(c *gin.Context) {
	var req struct {
		VehicleID uint `json:"vehicle_id" binding:"required"`
		SlotID    uint `json:"slot_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userID := currentUserID(c)

	tx := sc.DB.Begin()
	if tx.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, tx.Error)
		return
	}

	var slot models.ParkingSlot
	if err := tx.First(&slot, req.SlotID).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusNotFound, errors.New("slot not found"))
		return
	}

	if slot.IsOccupied {
		tx.Rollback()
		utils.RespondError(c, http.StatusBadRequest, errors.New("slot already occupied"))
		return
	}

	var vehicle models.Vehicle
	if err := tx.Where("user_id = ?", userID).First(&vehicle, req.VehicleID).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusNotFound, errors.New("vehicle not found"))
		return
	}

	// Satu kendaraan tidak boleh menempati dua slot sekaligus
	var parked int64
	if err := tx.Model(&models.ParkingSession{}).
		Where("vehicle_id = ? AND status = ?", vehicle.ID, models.SessionStatusActive).
		Count(&parked).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if parked > 0 {
		tx.Rollback()
		utils.RespondError(c, http.StatusBadRequest, errors.New("vehicle already parked"))
		return
	}

	session := models.ParkingSession{
		TicketCode: uuid.NewString(),
		VehicleID:  vehicle.ID,
		SlotID:     slot.ID,
		UserID:     userID,
		EntryTime:  time.Now(),
		Status:     models.SessionStatusActive,
	}

	if err := tx.Create(&session).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Klaim slot. RowsAffected == 0 berarti request lain sudah menang.
	claim := tx.Model(&models.ParkingSlot{}).
		Where("id = ? AND is_occupied = ?", slot.ID, false).
		Update("is_occupied", true)
	if claim.Error != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, claim.Error)
		return
	}
	if claim.RowsAffected == 0 {
		tx.Rollback()
		utils.RespondError(c, http.StatusBadRequest, errors.New("slot already occupied"))
		return
	}

	notif := models.Notification{
		UserID:  userID,
		Message: "Vehicle " + vehicle.VehicleNumber + " parked at slot " + slot.SlotNumber,
	}
	if err := tx.Create(&notif).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	session.Vehicle = vehicle
	slot.IsOccupied = true
	session.Slot = slot

	events.BroadcastSessionStart(session)
	events.BroadcastSlotUpdate(slot)

	utils.InfoLogger.Printf("Parking session %d started: vehicle %s -> slot %s",
		session.ID, vehicle.VehicleNumber, slot.SlotNumber)

	utils.RespondJSON(c, http.StatusCreated, "Parking session started", gin.H{
		"id":          session.ID,
		"ticket_code": session.TicketCode,
	})
}

// EndSession -> kendaraan keluar, slot dibebaskan.
//
// Update status di-guard dengan status = 'active' di WHERE clause. Exit
// kedua untuk sesi yang sama (atau exit yang balapan dengan auto-clear)
// tidak akan membebaskan slot yang mungkin sudah diklaim sesi lain.
func (sc *SessionController) EndSession(c *gin.Context) {
	sessionID := c.Param("session_id")
	userID := currentUserID(c)

	tx := sc.DB.Begin()
	if tx.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, tx.Error)
		return
	}

	var session models.ParkingSession
	if err := tx.Where("user_id = ?", userID).First(&session, sessionID).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusNotFound, errors.New("session not found"))
		return
	}

	if !session.CanExit() {
		tx.Rollback()
		utils.RespondError(c, http.StatusBadRequest, errors.New("session already completed"))
		return
	}

	now := time.Now()
	finish := tx.Model(&models.ParkingSession{}).
		Where("id = ? AND status = ?", session.ID, models.SessionStatusActive).
		Updates(map[string]interface{}{
			"status":    models.SessionStatusCompleted,
			"exit_time": now,
		})
	if finish.Error != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, finish.Error)
		return
	}
	if finish.RowsAffected == 0 {
		// Sesi diselesaikan request lain di antara read dan update
		tx.Rollback()
		utils.RespondError(c, http.StatusBadRequest, errors.New("session already completed"))
		return
	}

	if err := tx.Model(&models.ParkingSlot{}).
		Where("id = ?", session.SlotID).
		Update("is_occupied", false).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	notif := models.Notification{
		UserID:  userID,
		Message: "Parking session " + session.TicketCode + " completed",
	}
	if err := tx.Create(&notif).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	session.Status = models.SessionStatusCompleted
	session.ExitTime = &now

	var slot models.ParkingSlot
	if err := sc.DB.First(&slot, session.SlotID).Error; err == nil {
		events.BroadcastSlotUpdate(slot)
	}
	events.BroadcastSessionExit(session)

	utils.InfoLogger.Printf("Parking session %d completed, slot %d freed", session.ID, session.SlotID)

	utils.RespondJSON(c, http.StatusOK, "Vehicle exited successfully", gin.H{
		"id":        session.ID,
		"exit_time": now,
	})
}

// GetActiveSessions -> sesi aktif milik user, join kendaraan + slot
func (sc *SessionController) GetActiveSessions(c *gin.Context) {
	var sessions []models.ParkingSession
	if err := sc.DB.Preload("Vehicle").Preload("Slot").
		Where("user_id = ? AND status = ?", currentUserID(c), models.SessionStatusActive).
		Order("entry_time DESC").
		Find(&sessions).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active parking sessions", sessions)
}

// GetSessionHistory -> sesi yang sudah selesai, terbaru dulu
func (sc *SessionController) GetSessionHistory(c *gin.Context) {
	var sessions []models.ParkingSession
	if err := sc.DB.Preload("Vehicle").Preload("Slot").
		Where("user_id = ? AND status = ?", currentUserID(c), models.SessionStatusCompleted).
		Order("entry_time DESC").
		Find(&sessions).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Parking session history", sessions)
}
