package models

import "time"

// Status sesi parkir. Sesi dibuat "active" dan berakhir "completed" tepat satu kali.
const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
)

type ParkingSession struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	TicketCode string      `gorm:"type:varchar(64);unique;not null" json:"ticket_code"`
	VehicleID  uint        `gorm:"not null;index" json:"vehicle_id"`
	Vehicle    Vehicle     `gorm:"foreignKey:VehicleID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"vehicle"`
	SlotID     uint        `gorm:"not null;index" json:"slot_id"`
	Slot       ParkingSlot `gorm:"foreignKey:SlotID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"slot"`
	UserID     uint        `gorm:"not null;index" json:"user_id"`
	User       User        `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	EntryTime  time.Time   `gorm:"not null" json:"entry_time"`
	ExitTime   *time.Time  `json:"exit_time,omitempty"`
	Status     string      `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt  time.Time   `gorm:"not null" json:"-"`
	UpdatedAt  time.Time   `gorm:"not null" json:"-"`
}

// CanExit -> hanya sesi active yang boleh di-exit; completed adalah terminal state
func (s *ParkingSession) CanExit() bool {
	return s.Status == SessionStatusActive
}
