package models

import (
	"time"
)

// Booking status constants
const (
	BookingStatusPending   = 0
	BookingStatusConfirmed = 1
	BookingStatusCancelled = 2
)

// Booking giữ phòng theo khoảng ngày [check-in, check-out),
// ngày trả phòng không tính vào khoảng giữ
type Booking struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"userId"`
	User         *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	RoomID       uint      `json:"roomId"`
	Room         Room      `json:"room" gorm:"foreignKey:RoomID;references:RoomID"`
	CheckInDate  time.Time `gorm:"type:date" json:"checkInDate"`
	CheckOutDate time.Time `gorm:"type:date" json:"checkOutDate"`
	Status       int       `gorm:"default:0" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Nights số đêm của booking, sàn 1 đêm
func (b *Booking) Nights() int {
	nights := int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
	if nights <= 0 {
		nights = 1
	}
	return nights
}

// TotalPrice giá trị dẫn xuất, không lưu: số đêm x giá phòng
func (b *Booking) TotalPrice() float64 {
	return float64(b.Nights() * b.Room.Price)
}
