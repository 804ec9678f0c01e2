package services

import (
	"os"
	"strconv"
	"time"

	"github.com/yeremiapane/parking-app/events"
	"github.com/yeremiapane/parking-app/models"
	"github.com/yeremiapane/parking-app/utils"
	"gorm.io/gorm"
)

const autoClearJobName = "auto_clear"

// AutoClearScheduler menutup semua sesi parkir aktif dan membebaskan
// semua slot sekali sehari pada jam yang dikonfigurasi (default 18:00
// waktu lokal). Marker last-run disimpan di tabel job_runs dalam
// transaksi yang sama dengan clear-nya, jadi restart server di hari yang
// sama tidak menyebabkan job jalan dua kali — dan restart setelah jam
// trigger tetap menjalankan clear yang terlewat di hari itu.
type AutoClearScheduler struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
	Hour     int
}

func NewAutoClearScheduler(db *gorm.DB) *AutoClearScheduler {
	hour := 18
	if h := os.Getenv("AUTO_CLEAR_HOUR"); h != "" {
		if parsed, err := strconv.Atoi(h); err == nil && parsed >= 0 && parsed < 24 {
			hour = parsed
		}
	}

	return &AutoClearScheduler{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Minute,
		Hour:     hour,
	}
}

func (s *AutoClearScheduler) Start() {
	go func() {
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.checkAndRun(time.Now())
			case <-s.StopChan:
				return
			}
		}
	}()
	utils.InfoLogger.Printf("Auto-clear scheduler started (daily at %02d:00)", s.Hour)
}

func (s *AutoClearScheduler) Stop() {
	close(s.StopChan)
}

// checkAndRun menjalankan clear kalau sudah melewati jam trigger dan
// marker belum menunjuk ke hari ini. Error hanya di-log; firing
// berikutnya tidak terpengaruh.
func (s *AutoClearScheduler) checkAndRun(now time.Time) {
	if now.Hour() < s.Hour {
		return
	}

	today := now.Format("2006-01-02")

	var run models.JobRun
	err := s.DB.Where("job_name = ?", autoClearJobName).First(&run).Error
	if err == nil && run.LastDate == today {
		return
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		utils.ErrorLogger.Printf("Auto-clear: failed to read job marker: %v", err)
		return
	}

	cleared, freed, err := s.RunNow()
	if err != nil {
		utils.ErrorLogger.Printf("Auto-clear failed: %v", err)
		return
	}

	utils.InfoLogger.Printf("Auto-clear done: %d sessions closed, %d slots freed", cleared, freed)
}

// RunNow mengeksekusi bulk clear sekarang juga, dipakai scheduler dan
// endpoint manual admin. Satu transaksi: tutup sesi, bebaskan slot,
// tulis notifikasi, update marker.
func (s *AutoClearScheduler) RunNow() (int64, int64, error) {
	now := time.Now()
	today := now.Format("2006-01-02")

	var cleared, freed int64

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Kumpulkan pemilik sesi aktif untuk notifikasi sebelum di-update
		var userIDs []uint
		if err := tx.Model(&models.ParkingSession{}).
			Where("status = ?", models.SessionStatusActive).
			Distinct("user_id").
			Pluck("user_id", &userIDs).Error; err != nil {
			return err
		}

		// Slot yang akan dibebaskan = slot milik sesi yang ditutup batch ini
		var slotIDs []uint
		if err := tx.Model(&models.ParkingSession{}).
			Where("status = ?", models.SessionStatusActive).
			Distinct("slot_id").
			Pluck("slot_id", &slotIDs).Error; err != nil {
			return err
		}

		res := tx.Model(&models.ParkingSession{}).
			Where("status = ?", models.SessionStatusActive).
			Updates(map[string]interface{}{
				"status":    models.SessionStatusCompleted,
				"exit_time": now,
			})
		if res.Error != nil {
			return res.Error
		}
		cleared = res.RowsAffected

		// Slot yang barusan diklaim ulang oleh entry yang commit di sela
		// batch ini masih punya sesi aktif dan tidak boleh ikut dibebaskan
		if len(slotIDs) > 0 {
			stillActive := tx.Model(&models.ParkingSession{}).
				Select("slot_id").
				Where("status = ?", models.SessionStatusActive)
			res = tx.Model(&models.ParkingSlot{}).
				Where("id IN ? AND is_occupied = ? AND id NOT IN (?)", slotIDs, true, stillActive).
				Update("is_occupied", false)
			if res.Error != nil {
				return res.Error
			}
			freed = res.RowsAffected
		}

		for _, uid := range userIDs {
			notif := models.Notification{
				UserID:  uid,
				Message: "Your parking session was closed by the daily auto-clear",
			}
			if err := tx.Create(&notif).Error; err != nil {
				return err
			}
		}

		// Update marker dalam transaksi yang sama -> exactly-once per hari
		var run models.JobRun
		err := tx.Where("job_name = ?", autoClearJobName).First(&run).Error
		if err == gorm.ErrRecordNotFound {
			run = models.JobRun{JobName: autoClearJobName, LastDate: today, LastRunAt: now}
			return tx.Create(&run).Error
		}
		if err != nil {
			return err
		}
		run.LastDate = today
		run.LastRunAt = now
		return tx.Save(&run).Error
	})
	if err != nil {
		return 0, 0, err
	}

	events.BroadcastAutoClear(cleared, freed)
	return cleared, freed, nil
}
