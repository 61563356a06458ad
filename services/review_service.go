package services

import (
	stderrors "errors"

	"hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/validator"

	"gorm.io/gorm"
)

// ReviewService xử lý review của khách: mỗi (khách sạn, user) một review,
// mọi thay đổi đều kéo theo tính lại rating của khách sạn đó
type ReviewService struct {
	db      *gorm.DB
	ratings *RatingService
}

func NewReviewService(db *gorm.DB, ratings *RatingService) *ReviewService {
	return &ReviewService{
		db:      db,
		ratings: ratings,
	}
}

// Create tạo review mới rồi tính lại rating của khách sạn
func (s *ReviewService) Create(userID, hotelID uint, rating int, comment, photo string) (*models.Review, error) {
	if err := validator.ValidateRating(rating); err != nil {
		return nil, err
	}

	var hotel models.Hotel
	if err := s.db.First(&hotel, hotelID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeDBNotFound, "Không tìm thấy khách sạn", err)
		}
		return nil, err
	}

	var existing models.Review
	if err := s.db.Where("user_id = ? AND hotel_id = ?", userID, hotelID).First(&existing).Error; err == nil {
		return nil, errors.NewAppError(errors.ErrCodeDuplicateReview, "Bạn đã đánh giá khách sạn này trước đó", nil)
	}

	review := models.Review{
		UserID:  userID,
		HotelID: hotelID,
		Rating:  rating,
		Comment: comment,
		Photo:   photo,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, err
	}

	if err := s.ratings.UpdateHotelRating(hotelID); err != nil {
		return nil, err
	}
	return &review, nil
}

// Update sửa review rồi tính lại rating
func (s *ReviewService) Update(review *models.Review, rating int, comment, photo string) error {
	if err := validator.ValidateRating(rating); err != nil {
		return err
	}

	review.Rating = rating
	review.Comment = comment
	if photo != "" {
		review.Photo = photo
	}
	if err := s.db.Save(review).Error; err != nil {
		return err
	}

	return s.ratings.UpdateHotelRating(review.HotelID)
}

// Delete xóa review rồi tính lại rating của khách sạn vừa mất review
func (s *ReviewService) Delete(review *models.Review) error {
	hotelID := review.HotelID
	if err := s.db.Delete(review).Error; err != nil {
		return err
	}
	return s.ratings.UpdateHotelRating(hotelID)
}

// GetByID lấy review theo ID kèm user và khách sạn
func (s *ReviewService) GetByID(reviewID uint) (*models.Review, error) {
	var review models.Review
	if err := s.db.Preload("User").Preload("Hotel").First(&review, reviewID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeReviewNotFound, "Không tìm thấy review", err)
		}
		return nil, err
	}
	return &review, nil
}
