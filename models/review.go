package models

import "time"

// Review mỗi user chỉ được đánh giá một khách sạn một lần
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	HotelID   uint      `json:"hotelId" gorm:"uniqueIndex:idx_reviews_hotel_user"`
	UserID    uint      `json:"userId" gorm:"uniqueIndex:idx_reviews_hotel_user"`
	Comment   string    `json:"comment"` // Bình luận của người dùng
	Rating    int       `json:"rating"`  // Số sao (1-5)
	Photo     string    `json:"photo"`   // URL ảnh, có thể rỗng
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	User      User      `json:"user" gorm:"foreignKey:UserID"`
	Hotel     Hotel     `json:"hotel" gorm:"foreignKey:HotelID"`
}
