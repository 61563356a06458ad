package services

import (
	"math"

	"hotelbooking/models"

	"gorm.io/gorm"
)

// RatingService tính lại rating của khách sạn từ toàn bộ review.
// Luôn tính lại từ đầu, không cộng trừ theo delta để khỏi bị lệch dần.
type RatingService struct {
	db *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

// UpdateHotelRating đọc toàn bộ rating của khách sạn, lấy trung bình cộng
// (0 nếu chưa có review), làm tròn 2 chữ số và ghi vào hotels.rating.
// Đọc và ghi nằm trong cùng một transaction.
func (s *RatingService) UpdateHotelRating(hotelID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var ratings []int
		if err := tx.Model(&models.Review{}).Where("hotel_id = ?", hotelID).Pluck("rating", &ratings).Error; err != nil {
			return err
		}

		var average float64
		if len(ratings) > 0 {
			total := 0
			for _, r := range ratings {
				total += r
			}
			average = float64(total) / float64(len(ratings))
			average = math.Round(average*100) / 100
		}

		return tx.Model(&models.Hotel{}).
			Where("id = ?", hotelID).
			Update("rating", average).Error
	})
}
