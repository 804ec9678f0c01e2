package services

import (
	"time"

	"github.com/yeremiapane/parking-app/models"
	"github.com/yeremiapane/parking-app/utils"
	"gorm.io/gorm"
)

// OccupancyMonitor mengaudit invariant slot secara periodik:
// is_occupied harus true jika dan hanya jika ada sesi aktif yang
// menunjuk slot itu. Drift (mis. karena crash di tengah operasi lama
// sebelum klaim dibuat transaksional) di-log lalu diperbaiki.
type OccupancyMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

func NewOccupancyMonitor(db *gorm.DB) *OccupancyMonitor {
	return &OccupancyMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 5 * time.Minute,
	}
}

func (om *OccupancyMonitor) Start() {
	go func() {
		ticker := time.NewTicker(om.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				om.CheckOnce()
			case <-om.StopChan:
				return
			}
		}
	}()
	utils.InfoLogger.Println("Occupancy monitor started")
}

func (om *OccupancyMonitor) Stop() {
	close(om.StopChan)
}

// CheckOnce menjalankan satu putaran audit. Return jumlah slot yang
// diperbaiki supaya gampang diverifikasi dari test.
func (om *OccupancyMonitor) CheckOnce() int {
	repaired := 0

	activeSlotIDs := om.DB.Model(&models.ParkingSession{}).
		Select("slot_id").
		Where("status = ?", models.SessionStatusActive)

	// Slot ditandai occupied tapi tidak ada sesi aktif -> bebaskan
	var stale []models.ParkingSlot
	if err := om.DB.Where("is_occupied = ? AND id NOT IN (?)", true, activeSlotIDs).
		Find(&stale).Error; err != nil {
		utils.ErrorLogger.Printf("Occupancy audit query failed: %v", err)
		return repaired
	}
	for _, slot := range stale {
		res := om.DB.Model(&models.ParkingSlot{}).
			Where("id = ? AND is_occupied = ?", slot.ID, true).
			Update("is_occupied", false)
		if res.Error != nil {
			utils.ErrorLogger.Printf("Failed to free stale slot %d: %v", slot.ID, res.Error)
			continue
		}
		if res.RowsAffected > 0 {
			utils.ErrorLogger.Printf("Occupancy drift: slot %s marked occupied without an active session, freed", slot.SlotNumber)
			repaired++
		}
	}

	// Sesi aktif menunjuk slot yang tidak ditandai occupied -> tandai
	var orphaned []models.ParkingSlot
	if err := om.DB.Where("is_occupied = ? AND id IN (?)", false, activeSlotIDs).
		Find(&orphaned).Error; err != nil {
		utils.ErrorLogger.Printf("Occupancy audit query failed: %v", err)
		return repaired
	}
	for _, slot := range orphaned {
		res := om.DB.Model(&models.ParkingSlot{}).
			Where("id = ? AND is_occupied = ?", slot.ID, false).
			Update("is_occupied", true)
		if res.Error != nil {
			utils.ErrorLogger.Printf("Failed to mark slot %d occupied: %v", slot.ID, res.Error)
			continue
		}
		if res.RowsAffected > 0 {
			utils.ErrorLogger.Printf("Occupancy drift: slot %s has an active session but was not marked occupied, fixed", slot.SlotNumber)
			repaired++
		}
	}

	return repaired
}
