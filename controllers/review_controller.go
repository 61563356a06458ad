package controllers

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"hotelbooking/config"
	"hotelbooking/dto"
	"hotelbooking/models"
	"hotelbooking/response"
	"hotelbooking/services"

	"github.com/gin-gonic/gin"
)

func reviewService() *services.ReviewService {
	return services.NewReviewService(config.DB, services.NewRatingService(config.DB))
}

func convertToReviewResponse(review *models.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID: review.ID,
		Hotel: dto.HotelShortResponse{
			ID:   review.Hotel.ID,
			Name: review.Hotel.Name,
		},
		User: dto.UserInfo{
			ID:    review.User.ID,
			Name:  review.User.Name,
			Email: review.User.Email,
		},
		Rating:    review.Rating,
		Comment:   review.Comment,
		Photo:     review.Photo,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}

// invalidateReviewCache xóa cache review và cache khách sạn vì rating đổi theo
func invalidateReviewCache(userID uint) {
	rdb, err := config.ConnectRedis()
	if err != nil {
		return
	}
	_ = services.DeleteFromRedis(config.Ctx, rdb, "reviews:all")
	_ = services.DeleteFromRedis(config.Ctx, rdb, fmt.Sprintf("reviews:user:%d", userID))
	_ = services.DeleteKeysByPattern(config.Ctx, rdb, "hotels:*")
}

// GetReviews trả danh sách review: admin thấy tất cả, khách chỉ thấy của mình
func GetReviews(c *gin.Context) {
	actorID, actorRole, ok := actorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	hotelIDFilter := c.Query("hotelId")
	ratingFilter := c.Query("rating")

	cacheKey := "reviews:all"
	if actorRole != 1 {
		cacheKey = fmt.Sprintf("reviews:user:%d", actorID)
	}

	rdb, err := config.ConnectRedis()
	if err != nil {
		response.ServerError(c)
		return
	}

	var reviews []models.Review
	if err := services.GetFromRedis(config.Ctx, rdb, cacheKey, &reviews); err != nil || len(reviews) == 0 {
		tx := config.DB.Preload("User").Preload("Hotel").Order("created_at DESC")
		if actorRole != 1 {
			tx = tx.Where("user_id = ?", actorID)
		}
		if err := tx.Find(&reviews).Error; err != nil {
			response.ServerError(c)
			return
		}

		if err := services.SetToRedis(config.Ctx, rdb, cacheKey, reviews, 10*time.Minute); err != nil {
			log.Printf("Lỗi khi lưu danh sách review vào Redis: %v", err)
		}
	}

	reviewResponses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		review := &reviews[i]
		if hotelIDFilter != "" {
			parsedHotelID, err := strconv.Atoi(hotelIDFilter)
			if err != nil || review.HotelID != uint(parsedHotelID) {
				continue
			}
		}
		if ratingFilter != "" {
			parsedRating, err := strconv.Atoi(ratingFilter)
			if err != nil || review.Rating != parsedRating {
				continue
			}
		}
		reviewResponses = append(reviewResponses, convertToReviewResponse(review))
	}

	response.Success(c, reviewResponses)
}

// CreateReview tạo review mới, mỗi user chỉ đánh giá một khách sạn một lần
func CreateReview(c *gin.Context) {
	actorID, _, ok := actorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var request dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	review, err := reviewService().Create(actorID, request.HotelID, request.Rating, request.Comment, request.Photo)
	if err != nil {
		respondAppError(c, err)
		return
	}

	invalidateReviewCache(actorID)

	created, err := reviewService().GetByID(review.ID)
	if err != nil {
		response.Created(c, review)
		return
	}
	response.Created(c, convertToReviewResponse(created))
}

// GetReviewDetail trả chi tiết review, chỉ chủ review hoặc admin xem được
func GetReviewDetail(c *gin.Context) {
	actorID, actorRole, ok := actorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	review, err := reviewService().GetByID(uint(id))
	if err != nil {
		respondAppError(c, err)
		return
	}

	if !services.CanAccessReview(actorID, actorRole, review) {
		response.Forbidden(c)
		return
	}

	response.Success(c, convertToReviewResponse(review))
}

// UpdateReview sửa review, rating của khách sạn được tính lại ngay
func UpdateReview(c *gin.Context) {
	actorID, actorRole, ok := actorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var request dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	review, err := reviewService().GetByID(request.ID)
	if err != nil {
		respondAppError(c, err)
		return
	}

	if !services.CanAccessReview(actorID, actorRole, review) {
		response.Forbidden(c)
		return
	}

	if err := reviewService().Update(review, request.Rating, request.Comment, request.Photo); err != nil {
		respondAppError(c, err)
		return
	}

	invalidateReviewCache(review.UserID)

	response.Success(c, convertToReviewResponse(review))
}

// DeleteReview xóa review, khách sạn mất review này và rating được tính lại
func DeleteReview(c *gin.Context) {
	actorID, actorRole, ok := actorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	review, err := reviewService().GetByID(uint(id))
	if err != nil {
		respondAppError(c, err)
		return
	}

	if !services.CanAccessReview(actorID, actorRole, review) {
		response.Forbidden(c)
		return
	}

	if err := reviewService().Delete(review); err != nil {
		respondAppError(c, err)
		return
	}

	invalidateReviewCache(review.UserID)

	response.Success(c, gin.H{"id": review.ID})
}
