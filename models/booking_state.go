package models

import "errors"

// BookingState định nghĩa interface cho các trạng thái booking
type BookingState interface {
	Confirm(booking *Booking) error
	Cancel(booking *Booking) error
}

// PendingState trạng thái chờ thanh toán
type PendingState struct{}

func (s *PendingState) Confirm(booking *Booking) error {
	booking.Status = BookingStatusConfirmed
	return nil
}

func (s *PendingState) Cancel(booking *Booking) error {
	booking.Status = BookingStatusCancelled
	return nil
}

// ConfirmedState trạng thái đã xác nhận
type ConfirmedState struct{}

func (s *ConfirmedState) Confirm(booking *Booking) error {
	return errors.New("booking already confirmed")
}

func (s *ConfirmedState) Cancel(booking *Booking) error {
	booking.Status = BookingStatusCancelled
	return nil
}

// CancelledState trạng thái đã hủy
type CancelledState struct{}

func (s *CancelledState) Confirm(booking *Booking) error {
	return errors.New("cannot confirm cancelled booking")
}

func (s *CancelledState) Cancel(booking *Booking) error {
	return errors.New("booking already cancelled")
}

// GetBookingState trả về state tương ứng với trạng thái booking
func GetBookingState(status int) BookingState {
	switch status {
	case BookingStatusConfirmed:
		return &ConfirmedState{}
	case BookingStatusCancelled:
		return &CancelledState{}
	default:
		return &PendingState{}
	}
}
