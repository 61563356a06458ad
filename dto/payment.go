package dto

import "time"

// CreatePaymentRequest là DTO cho request tạo payment cho một booking có sẵn.
// FineAmount bắt buộc khi kind là FINE.
type CreatePaymentRequest struct {
	BookingID  uint     `json:"bookingId" binding:"required"`
	Kind       int      `json:"kind"`
	FineAmount *float64 `json:"fineAmount,omitempty"`
}

// PaymentListResponse là DTO rút gọn cho danh sách payment
type PaymentListResponse struct {
	ID        uint    `json:"id"`
	BookingID uint    `json:"bookingId"`
	Amount    float64 `json:"amount"`
	Status    int     `json:"status"`
	Kind      int     `json:"kind"`
}

// PaymentResponse là DTO đầy đủ cho một payment
type PaymentResponse struct {
	ID         uint       `json:"id"`
	BookingID  uint       `json:"bookingId"`
	Amount     float64    `json:"amount"`
	Status     int        `json:"status"`
	Kind       int        `json:"kind"`
	SessionID  string     `json:"sessionId"`
	SessionURL string     `json:"sessionUrl"`
	PaidAt     *time.Time `json:"paidAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// PaymentDetailResponse là DTO chi tiết payment kèm booking
type PaymentDetailResponse struct {
	PaymentResponse
	Booking *BookingResponse `json:"booking,omitempty"`
}
