package models

import "time"

// LoginAttempt mencatat setiap percobaan login, berhasil maupun gagal
type LoginAttempt struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"type:varchar(255);not null;index"`
	IPAddress *string   `gorm:"type:varchar(45)"`
	Success   bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}
