package dto

import "time"

// CreateBookingRequest là DTO cho request tạo booking
type CreateBookingRequest struct {
	RoomID       uint   `json:"roomId" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required"`
	CheckOutDate string `json:"checkOutDate" binding:"required"`
}

// UpdateBookingRequest là DTO cho request đổi ngày booking
type UpdateBookingRequest struct {
	ID           uint   `json:"id" binding:"required"`
	CheckInDate  string `json:"checkInDate,omitempty"`
	CheckOutDate string `json:"checkOutDate,omitempty"`
}

type BookingHotelResponse struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Rating  float64 `json:"rating"`
}

type BookingRoomResponse struct {
	ID      uint   `json:"id"`
	HotelID uint   `json:"hotelId"`
	Number  string `json:"number"`
	Type    string `json:"type"`
	Price   int    `json:"price"`
}

// BookingResponse là DTO cho response của booking.
// PaymentURL chỉ có mặt trong response tạo mới: link thanh toán của phiên vừa mở.
type BookingResponse struct {
	ID           uint                 `json:"id"`
	User         ActorResponse        `json:"user"`
	Hotel        BookingHotelResponse `json:"hotel"`
	Room         BookingRoomResponse  `json:"room"`
	CheckInDate  string               `json:"checkInDate"`
	CheckOutDate string               `json:"checkOutDate"`
	Status       int                  `json:"status"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
	TotalPrice   float64              `json:"totalPrice"`
	PaymentURL   string               `json:"paymentUrl,omitempty"`
}
