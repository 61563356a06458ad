package models

import (
	"errors"
	"time"
)

// PaymentState định nghĩa interface cho các trạng thái payment.
// Chỉ PENDING có chuyển tiếp; mọi trạng thái còn lại là terminal.
type PaymentState interface {
	MarkPaid(payment *Payment, at time.Time) error
	MarkCancelled(payment *Payment) error
	MarkExpired(payment *Payment) error
	MarkFailed(payment *Payment) error
}

// PaymentPendingState trạng thái chờ thanh toán
type PaymentPendingState struct{}

func (s *PaymentPendingState) MarkPaid(payment *Payment, at time.Time) error {
	payment.Status = PaymentStatusPaid
	payment.PaidAt = &at
	return nil
}

func (s *PaymentPendingState) MarkCancelled(payment *Payment) error {
	payment.Status = PaymentStatusCancelled
	return nil
}

func (s *PaymentPendingState) MarkExpired(payment *Payment) error {
	payment.Status = PaymentStatusExpired
	return nil
}

func (s *PaymentPendingState) MarkFailed(payment *Payment) error {
	payment.Status = PaymentStatusFailed
	return nil
}

// PaymentTerminalState các trạng thái đã chốt, mọi chuyển tiếp đều bị từ chối
type PaymentTerminalState struct{}

func (s *PaymentTerminalState) MarkPaid(payment *Payment, at time.Time) error {
	return errors.New("payment already in terminal status")
}

func (s *PaymentTerminalState) MarkCancelled(payment *Payment) error {
	return errors.New("payment already in terminal status")
}

func (s *PaymentTerminalState) MarkExpired(payment *Payment) error {
	return errors.New("payment already in terminal status")
}

func (s *PaymentTerminalState) MarkFailed(payment *Payment) error {
	return errors.New("payment already in terminal status")
}

// GetPaymentState trả về state tương ứng với trạng thái payment
func GetPaymentState(status int) PaymentState {
	if status == PaymentStatusPending {
		return &PaymentPendingState{}
	}
	return &PaymentTerminalState{}
}
