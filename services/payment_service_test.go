package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"hotelbooking/errors"
	"hotelbooking/models"
)

func seedPendingPayment(t *testing.T, service *PaymentService, bookingID uint, sessionID string, amount float64) *models.Payment {
	t.Helper()

	session := &CheckoutSession{
		SessionID:  sessionID,
		SessionURL: "https://checkout.example.com/pay/" + sessionID,
		Amount:     amount,
	}
	payment, err := service.RecordPending(bookingID, session, models.PaymentKindPayment)
	if err != nil {
		t.Fatalf("không ghi được payment chờ: %v", err)
	}
	return payment
}

func TestRecordPendingRejectsSecondActivePayment(t *testing.T) {
	db := setupTestDB(t)
	room := seedRoom(t, db, 100)
	bookings := NewBookingService(db, testLogger())
	payments := NewPaymentService(db, testLogger())

	booking, err := bookings.Create(1, room.RoomID, date(2026, 9, 10), date(2026, 9, 13))
	if err != nil {
		t.Fatalf("booking phải thành công: %v", err)
	}

	seedPendingPayment(t, payments, booking.ID, "sess_1", 300)

	session := &CheckoutSession{SessionID: "sess_2", Amount: 300}
	if _, err := payments.RecordPending(booking.ID, session, models.PaymentKindPayment); !errors.HasCode(err, errors.ErrCodePaymentExists) {
		t.Errorf("muốn lỗi PAYMENT_EXISTS, nhận %v", err)
	}

	// Tiền phạt không bị giới hạn một payment
	fineSession := &CheckoutSession{SessionID: "sess_fine", Amount: 50}
	if _, err := payments.RecordPending(booking.ID, fineSession, models.PaymentKindFine); err != nil {
		t.Errorf("payment loại FINE phải tạo được: %v", err)
	}
}

func TestConcurrentRecordPendingAtMostOneWins(t *testing.T) {
	db := setupTestDB(t)
	room := seedRoom(t, db, 100)
	bookings := NewBookingService(db, testLogger())
	payments := NewPaymentService(db, testLogger())

	booking, err := bookings.Create(1, room.RoomID, date(2026, 9, 10), date(2026, 9, 13))
	if err != nil {
		t.Fatalf("booking phải thành công: %v", err)
	}

	const workers = 4
	var wg sync.WaitGroup
	results := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			session := &CheckoutSession{
				SessionID: fmt.Sprintf("sess_race_%d", idx),
				Amount:    300,
			}
			_, err := payments.RecordPending(booking.ID, session, models.PaymentKindPayment)
			results[idx] = err
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		if !errors.HasCode(err, errors.ErrCodePaymentExists) {
			t.Errorf("lỗi không mong đợi khi mở phiên song song: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("muốn đúng một payment được ghi, nhận %d", succeeded)
	}

	var count int64
	if err := db.Model(&models.Payment{}).Where("booking_id = ? AND kind = ?", booking.ID, models.PaymentKindPayment).Count(&count).Error; err != nil {
		t.Fatalf("không đếm được payment: %v", err)
	}
	if count != 1 {
		t.Errorf("muốn đúng một bản ghi payment, nhận %d", count)
	}
}

func TestHandleSuccessConfirmsBooking(t *testing.T) {
	db := setupTestDB(t)
	room := seedRoom(t, db, 100)
	bookings := NewBookingService(db, testLogger())
	payments := NewPaymentService(db, testLogger())

	booking, err := bookings.Create(1, room.RoomID, date(2026, 9, 10), date(2026, 9, 13))
	if err != nil {
		t.Fatalf("booking phải thành công: %v", err)
	}
	payment := seedPendingPayment(t, payments, booking.ID, "sess_ok", 300)

	found, transitioned, err := payments.HandleSuccess("sess_ok")
	if err != nil {
		t.Fatalf("HandleSuccess lỗi: %v", err)
	}
	if !found {
		t.Fatal("phiên tồn tại nhưng báo không tìm thấy")
	}
	if !transitioned {
		t.Fatal("lần chuyển trạng thái đầu tiên phải báo transitioned")
	}

	var savedPayment models.Payment
	if err := db.First(&savedPayment, payment.ID).Error; err != nil {
		t.Fatalf("không đọc lại được payment: %v", err)
	}
	if savedPayment.Status != models.PaymentStatusPaid {
		t.Errorf("muốn status PAID, nhận %d", savedPayment.Status)
	}
	if savedPayment.PaidAt == nil {
		t.Error("PaidAt phải được set khi thanh toán thành công")
	}

	var savedBooking models.Booking
	if err := db.First(&savedBooking, booking.ID).Error; err != nil {
		t.Fatalf("không đọc lại được booking: %v", err)
	}
	if savedBooking.Status != models.BookingStatusConfirmed {
		t.Errorf("muốn booking CONFIRMED, nhận %d", savedBooking.Status)
	}
}

func TestHandleSuccessReplayIsNoop(t *testing.T) {
	db := setupTestDB(t)
	room := seedRoom(t, db, 100)
	bookings := NewBookingService(db, testLogger())
	payments := NewPaymentService(db, testLogger())

	booking, err := bookings.Create(1, room.RoomID, date(2026, 9, 10), date(2026, 9, 13))
	if err != nil {
		t.Fatalf("booking phải thành công: %v", err)
	}
	payment := seedPendingPayment(t, payments, booking.ID, "sess_replay", 300)

	if _, _, err := payments.HandleSuccess("sess_replay"); err != nil {
		t.Fatalf("lần callback đầu lỗi: %v", err)
	}

	var firstPaidAt *time.Time
	var savedPayment models.Payment
	if err := db.First(&savedPayment, payment.ID).Error; err != nil {
		t.Fatalf("không đọc lại được payment: %v", err)
	}
	firstPaidAt = savedPayment.PaidAt

	// Provider gọi lại cùng session, không được đổi gì thêm
	found, transitioned, err := payments.HandleSuccess("sess_replay")
	if err != nil {
		t.Fatalf("callback lặp lại không được trả lỗi: %v", err)
	}
	if !found {
		t.Error("callback lặp lại vẫn phải báo tìm thấy phiên")
	}
	if transitioned {
		t.Error("callback lặp lại không được báo transitioned")
	}

	if err := db.First(&savedPayment, payment.ID).Error; err != nil {
		t.Fatalf("không đọc lại được payment: %v", err)
	}
	if savedPayment.Status != models.PaymentStatusPaid {
		t.Errorf("status phải giữ PAID, nhận %d", savedPayment.Status)
	}
	if firstPaidAt == nil || savedPayment.PaidAt == nil || !savedPayment.PaidAt.Equal(*firstPaidAt) {
		t.Errorf("PaidAt không được đổi khi replay: %v != %v", savedPayment.PaidAt, firstPaidAt)
	}
}

func TestHandleSuccessUnknownSession(t *testing.T) {
	db := setupTestDB(t)
	payments := NewPaymentService(db, testLogger())

	found, transitioned, err := payments.HandleSuccess("sess_missing")
	if err != nil {
		t.Fatalf("phiên lạ không được trả lỗi: %v", err)
	}
	if found {
		t.Error("phiên lạ phải báo không tìm thấy")
	}
	if transitioned {
		t.Error("phiên lạ không được báo transitioned")
	}
}

func TestHandleCancelLeavesBookingPending(t *testing.T) {
	db := setupTestDB(t)
	room := seedRoom(t, db, 100)
	bookings := NewBookingService(db, testLogger())
	payments := NewPaymentService(db, testLogger())

	booking, err := bookings.Create(1, room.RoomID, date(2026, 9, 10), date(2026, 9, 13))
	if err != nil {
		t.Fatalf("booking phải thành công: %v", err)
	}
	payment := seedPendingPayment(t, payments, booking.ID, "sess_cancel", 300)

	found, err := payments.HandleCancel("sess_cancel")
	if err != nil {
		t.Fatalf("HandleCancel lỗi: %v", err)
	}
	if !found {
		t.Fatal("phiên tồn tại nhưng báo không tìm thấy")
	}

	var savedPayment models.Payment
	if err := db.First(&savedPayment, payment.ID).Error; err != nil {
		t.Fatalf("không đọc lại được payment: %v", err)
	}
	if savedPayment.Status != models.PaymentStatusCancelled {
		t.Errorf("muốn status CANCELLED, nhận %d", savedPayment.Status)
	}
	if savedPayment.PaidAt != nil {
		t.Error("PaidAt không được set khi hủy phiên")
	}

	var savedBooking models.Booking
	if err := db.First(&savedBooking, booking.ID).Error; err != nil {
		t.Fatalf("không đọc lại được booking: %v", err)
	}
	if savedBooking.Status != models.BookingStatusPending {
		t.Errorf("booking phải giữ trạng thái chờ, nhận %d", savedBooking.Status)
	}
}

func TestHandleCancelAfterPaidIsNoop(t *testing.T) {
	db := setupTestDB(t)
	room := seedRoom(t, db, 100)
	bookings := NewBookingService(db, testLogger())
	payments := NewPaymentService(db, testLogger())

	booking, err := bookings.Create(1, room.RoomID, date(2026, 9, 10), date(2026, 9, 13))
	if err != nil {
		t.Fatalf("booking phải thành công: %v", err)
	}
	payment := seedPendingPayment(t, payments, booking.ID, "sess_paid_cancel", 300)

	if _, _, err := payments.HandleSuccess("sess_paid_cancel"); err != nil {
		t.Fatalf("HandleSuccess lỗi: %v", err)
	}
	if _, err := payments.HandleCancel("sess_paid_cancel"); err != nil {
		t.Fatalf("HandleCancel sau PAID không được trả lỗi: %v", err)
	}

	var savedPayment models.Payment
	if err := db.First(&savedPayment, payment.ID).Error; err != nil {
		t.Fatalf("không đọc lại được payment: %v", err)
	}
	if savedPayment.Status != models.PaymentStatusPaid {
		t.Errorf("payment đã PAID phải giữ nguyên, nhận %d", savedPayment.Status)
	}
}

func TestExpireStale(t *testing.T) {
	db := setupTestDB(t)
	room := seedRoom(t, db, 100)
	bookings := NewBookingService(db, testLogger())
	payments := NewPaymentService(db, testLogger())

	booking, err := bookings.Create(1, room.RoomID, date(2026, 9, 10), date(2026, 9, 13))
	if err != nil {
		t.Fatalf("booking phải thành công: %v", err)
	}
	payment := seedPendingPayment(t, payments, booking.ID, "sess_stale", 300)

	// Đẩy created_at về quá khứ để payment thành quá hạn
	staleTime := time.Now().Add(-48 * time.Hour)
	if err := db.Model(&models.Payment{}).Where("id = ?", payment.ID).Update("created_at", staleTime).Error; err != nil {
		t.Fatalf("không chỉnh được created_at: %v", err)
	}

	expired, err := payments.ExpireStale(24 * time.Hour)
	if err != nil {
		t.Fatalf("ExpireStale lỗi: %v", err)
	}
	if expired != 1 {
		t.Errorf("muốn 1 payment quá hạn, nhận %d", expired)
	}

	var savedPayment models.Payment
	if err := db.First(&savedPayment, payment.ID).Error; err != nil {
		t.Fatalf("không đọc lại được payment: %v", err)
	}
	if savedPayment.Status != models.PaymentStatusExpired {
		t.Errorf("muốn status EXPIRED, nhận %d", savedPayment.Status)
	}

	// Quét lại không nhặt thêm gì
	expired, err = payments.ExpireStale(24 * time.Hour)
	if err != nil {
		t.Fatalf("ExpireStale lần hai lỗi: %v", err)
	}
	if expired != 0 {
		t.Errorf("lần quét thứ hai phải trả 0, nhận %d", expired)
	}
}
