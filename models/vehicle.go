package models

import "time"

// Jenis kendaraan yang didukung, harus cocok dengan slot_type pada ParkingSlot
const (
	VehicleTypeCar   = "Car"
	VehicleTypeBike  = "Bike"
	VehicleTypeTruck = "Truck"
	VehicleTypeOther = "Other"
)

type Vehicle struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	User          User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	VehicleNumber string    `gorm:"type:varchar(20);unique;not null" json:"vehicle_number"`
	VehicleType   string    `gorm:"type:varchar(20);not null" json:"vehicle_type"`
	Model         *string   `gorm:"type:varchar(100)" json:"model,omitempty"`
	Color         *string   `gorm:"type:varchar(50)" json:"color,omitempty"`
	OwnerName     *string   `gorm:"type:varchar(255)" json:"owner_name,omitempty"`
	PhoneNumber   *string   `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"-"`
}

// IsValidVehicleType memeriksa apakah tipe kendaraan dikenal
func IsValidVehicleType(t string) bool {
	switch t {
	case VehicleTypeCar, VehicleTypeBike, VehicleTypeTruck, VehicleTypeOther:
		return true
	}
	return false
}
