package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/parking-app/models"
	"github.com/yeremiapane/parking-app/utils"
)

func TestCheckOnceNoDrift(t *testing.T) {
	utils.InitLogger()
	db := setupSchedulerTestDB(t)
	seedActiveSession(db, "t-1", "A1", "B1")
	db.Create(&models.ParkingSlot{SlotNumber: "A2", SlotType: models.VehicleTypeCar})

	om := NewOccupancyMonitor(db)
	assert.Equal(t, 0, om.CheckOnce())
}

func TestCheckOnceFreesStaleSlot(t *testing.T) {
	utils.InitLogger()
	db := setupSchedulerTestDB(t)

	// Slot ditandai occupied tapi tidak ada sesi aktif
	slot := models.ParkingSlot{SlotNumber: "A1", SlotType: models.VehicleTypeCar, IsOccupied: true}
	db.Create(&slot)

	om := NewOccupancyMonitor(db)
	assert.Equal(t, 1, om.CheckOnce())

	var got models.ParkingSlot
	db.First(&got, slot.ID)
	assert.False(t, got.IsOccupied)
}

func TestCheckOnceMarksOrphanedSlot(t *testing.T) {
	utils.InitLogger()
	db := setupSchedulerTestDB(t)

	user := models.User{Email: "u@example.com", Password: "x", FullName: "U", Role: "user"}
	db.Create(&user)
	vehicle := models.Vehicle{UserID: user.ID, VehicleNumber: "B1", VehicleType: models.VehicleTypeCar}
	db.Create(&vehicle)

	// Sesi aktif menunjuk slot yang flag-nya tidak ter-set
	slot := models.ParkingSlot{SlotNumber: "A1", SlotType: models.VehicleTypeCar, IsOccupied: false}
	db.Create(&slot)
	db.Create(&models.ParkingSession{
		TicketCode: "t-1", VehicleID: vehicle.ID, SlotID: slot.ID, UserID: user.ID,
		EntryTime: time.Now(), Status: models.SessionStatusActive,
	})

	om := NewOccupancyMonitor(db)
	assert.Equal(t, 1, om.CheckOnce())

	var got models.ParkingSlot
	db.First(&got, slot.ID)
	assert.True(t, got.IsOccupied)

	// Putaran kedua tidak menemukan drift lagi
	assert.Equal(t, 0, om.CheckOnce())
}
