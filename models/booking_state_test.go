package models

import (
	"testing"
	"time"
)

func TestBookingStateTransitions(t *testing.T) {
	booking := &Booking{Status: BookingStatusPending}

	if err := GetBookingState(booking.Status).Confirm(booking); err != nil {
		t.Fatalf("PENDING phải confirm được: %v", err)
	}
	if booking.Status != BookingStatusConfirmed {
		t.Fatalf("muốn CONFIRMED, nhận %d", booking.Status)
	}

	if err := GetBookingState(booking.Status).Confirm(booking); err == nil {
		t.Error("confirm lần hai phải bị từ chối")
	}

	if err := GetBookingState(booking.Status).Cancel(booking); err != nil {
		t.Fatalf("CONFIRMED phải hủy được: %v", err)
	}
	if booking.Status != BookingStatusCancelled {
		t.Fatalf("muốn CANCELLED, nhận %d", booking.Status)
	}

	if err := GetBookingState(booking.Status).Cancel(booking); err == nil {
		t.Error("hủy lần hai phải bị từ chối")
	}
	if err := GetBookingState(booking.Status).Confirm(booking); err == nil {
		t.Error("confirm booking đã hủy phải bị từ chối")
	}
}

func TestPaymentStateTransitions(t *testing.T) {
	now := time.Now()

	payment := &Payment{Status: PaymentStatusPending}
	if err := GetPaymentState(payment.Status).MarkPaid(payment, now); err != nil {
		t.Fatalf("PENDING phải chuyển PAID được: %v", err)
	}
	if payment.Status != PaymentStatusPaid || payment.PaidAt == nil {
		t.Fatalf("muốn PAID kèm PaidAt, nhận status %d", payment.Status)
	}

	// Mọi chuyển tiếp từ trạng thái đã chốt đều bị từ chối
	firstPaidAt := *payment.PaidAt
	if err := GetPaymentState(payment.Status).MarkPaid(payment, now.Add(time.Hour)); err == nil {
		t.Error("MarkPaid trên payment đã chốt phải bị từ chối")
	}
	if !payment.PaidAt.Equal(firstPaidAt) {
		t.Error("PaidAt không được đổi khi chuyển tiếp bị từ chối")
	}
	if err := GetPaymentState(payment.Status).MarkCancelled(payment); err == nil {
		t.Error("MarkCancelled trên payment đã chốt phải bị từ chối")
	}

	cancelled := &Payment{Status: PaymentStatusPending}
	if err := GetPaymentState(cancelled.Status).MarkCancelled(cancelled); err != nil {
		t.Fatalf("PENDING phải hủy được: %v", err)
	}
	if cancelled.Status != PaymentStatusCancelled || cancelled.PaidAt != nil {
		t.Fatalf("muốn CANCELLED không kèm PaidAt, nhận status %d", cancelled.Status)
	}

	expired := &Payment{Status: PaymentStatusPending}
	if err := GetPaymentState(expired.Status).MarkExpired(expired); err != nil {
		t.Fatalf("PENDING phải chuyển EXPIRED được: %v", err)
	}
	if !expired.IsTerminal() {
		t.Error("EXPIRED phải là trạng thái terminal")
	}
}
