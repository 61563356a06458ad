package services

import (
	"hotelbooking/constants"
	"hotelbooking/models"
)

// Quyền trên từng object gom về một chỗ: chủ sở hữu hoặc admin.
// Các controller chỉ gọi các hàm này thay vì tự so role.

// CanAccessBooking chủ booking hoặc admin
func CanAccessBooking(actorID uint, actorRole int, booking *models.Booking) bool {
	return actorRole == constants.RoleAdmin || booking.UserID == actorID
}

// CanAccessReview chủ review hoặc admin
func CanAccessReview(actorID uint, actorRole int, review *models.Review) bool {
	return actorRole == constants.RoleAdmin || review.UserID == actorID
}

// CanAccessPayment chủ booking gắn với payment hoặc admin
func CanAccessPayment(actorID uint, actorRole int, payment *models.Payment) bool {
	if actorRole == constants.RoleAdmin {
		return true
	}
	return payment.Booking != nil && payment.Booking.UserID == actorID
}
