package models

import (
	"time"
)

// Payment status constants
const (
	PaymentStatusPending   = 0
	PaymentStatusPaid      = 1
	PaymentStatusCancelled = 2
	PaymentStatusExpired   = 3
	PaymentStatusFailed    = 4
)

// Payment kind constants
const (
	PaymentKindPayment = 0
	PaymentKindFine    = 1
)

// Payment gắn 1-1 với Booking. SessionID và SessionURL là chuỗi
// mờ do cổng thanh toán cấp, hệ thống chỉ lưu lại để đối chiếu callback.
type Payment struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	BookingID  uint       `json:"bookingId"`
	Booking    *Booking   `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	Amount     float64    `json:"amount"`
	Status     int        `gorm:"default:0" json:"status"`
	Kind       int        `gorm:"default:0" json:"kind"`
	SessionID  string     `gorm:"index;size:255" json:"sessionId"`
	SessionURL string     `json:"sessionUrl"`
	PaidAt     *time.Time `json:"paidAt,omitempty"` // Chỉ set khi chuyển sang PAID
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// IsTerminal true với mọi trạng thái không còn chuyển tiếp
func (p *Payment) IsTerminal() bool {
	return p.Status != PaymentStatusPending
}
