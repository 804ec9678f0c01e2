package models

import "time"

// JobRun menyimpan marker "sudah jalan hari ini" untuk job terjadwal,
// supaya restart server tidak menyebabkan double-fire di hari yang sama.
type JobRun struct {
	ID        uint      `gorm:"primaryKey"`
	JobName   string    `gorm:"type:varchar(100);unique;not null"`
	LastDate  string    `gorm:"type:varchar(10);not null"` // format 2006-01-02, local time
	LastRunAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
