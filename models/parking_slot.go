package models

import "time"

type ParkingSlot struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SlotNumber string    `gorm:"type:varchar(20);unique;not null" json:"slot_number"`
	SlotType   string    `gorm:"type:varchar(20);not null" json:"slot_type"`
	IsOccupied bool      `gorm:"not null;default:false" json:"is_occupied"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"-"`
}
