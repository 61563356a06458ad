package models

import (
	"fmt"
	"time"
)

type Room struct {
	RoomID    uint      `json:"id" gorm:"primaryKey;column:room_id"`
	HotelID   uint      `json:"hotelId"`
	Number    string    `gorm:"size:20" json:"number"`
	Type      string    `gorm:"size:50" json:"type"`
	Price     int       `json:"price"` // Giá mỗi đêm
	People    int       `json:"people"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Hotel     Hotel     `json:"hotel" gorm:"foreignKey:HotelID"`
}

func (r *Room) ValidatePrice() error {
	if r.Price <= 0 {
		return fmt.Errorf("invalid price: %d, must be positive", r.Price)
	}
	return nil
}
