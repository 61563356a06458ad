package dto

import "time"

// CreateReviewRequest là DTO cho request tạo review
type CreateReviewRequest struct {
	HotelID uint   `json:"hotelId" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"required"`
	Photo   string `json:"photo,omitempty"`
}

// UpdateReviewRequest là DTO cho request sửa review
type UpdateReviewRequest struct {
	ID      uint   `json:"id" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"required"`
	Photo   string `json:"photo,omitempty"`
}

// ReviewResponse là DTO cho response của review
type ReviewResponse struct {
	ID        uint               `json:"id"`
	Hotel     HotelShortResponse `json:"hotel"`
	User      UserInfo           `json:"user"`
	Rating    int                `json:"rating"`
	Comment   string             `json:"comment"`
	Photo     string             `json:"photo,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
