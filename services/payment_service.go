package services

import (
	"database/sql"
	stderrors "errors"
	"time"

	"hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/logger"

	"gorm.io/gorm"
)

// PaymentService là sổ thanh toán: ghi payment chờ, xử lý callback
// từ provider và xác nhận booking khi thanh toán thành công
type PaymentService struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewPaymentService(db *gorm.DB, l logger.Logger) *PaymentService {
	return &PaymentService{
		db:     db,
		logger: l,
	}
}

// RecordPending ghi payment mới ở trạng thái chờ ngay sau khi mở phiên.
// Mỗi booking chỉ được có một payment loại PAYMENT chưa chốt; FINE thì không giới hạn.
// Kiểm tra và ghi nằm trong cùng một transaction serializable: hai request
// mở phiên song song cho cùng booking thì tối đa một cái thành công.
func (s *PaymentService) RecordPending(bookingID uint, session *CheckoutSession, kind int) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if kind == models.PaymentKindPayment {
			var count int64
			err := tx.Model(&models.Payment{}).
				Where("booking_id = ? AND kind = ? AND status IN ?",
					bookingID, models.PaymentKindPayment,
					[]int{models.PaymentStatusPending, models.PaymentStatusPaid}).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				return errors.NewAppError(errors.ErrCodePaymentExists, "Booking đã có phiên thanh toán đang hoạt động", nil)
			}
		}

		payment = models.Payment{
			BookingID:  bookingID,
			Amount:     session.Amount,
			Status:     models.PaymentStatusPending,
			Kind:       kind,
			SessionID:  session.SessionID,
			SessionURL: session.SessionURL,
		}
		return tx.Create(&payment).Error
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil {
		if isSerializationFailure(err) {
			return nil, errors.NewAppError(errors.ErrCodePaymentExists, "Booking đã có phiên thanh toán đang hoạt động", err)
		}
		return nil, err
	}
	return &payment, nil
}

// HandleSuccess xử lý callback thành công từ provider theo session_id.
// Không tìm thấy session (hoặc payment đã chốt) là kết quả bình thường,
// trả found/transitioned mà không có lỗi để callback replay được an toàn:
// transitioned chỉ true ở lần chuyển PENDING sang PAID, caller dựa vào đó
// để không lặp lại các side effect (email, websocket).
// Chuyển payment sang PAID và xác nhận booking nằm trong cùng một transaction.
func (s *PaymentService) HandleSuccess(sessionID string) (bool, bool, error) {
	found := false
	transitioned := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.Where("session_id = ?", sessionID).First(&payment).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true

		state := models.GetPaymentState(payment.Status)
		if err := state.MarkPaid(&payment, time.Now()); err != nil {
			// Payment đã chốt từ trước, callback lặp lại
			return nil
		}
		transitioned = true
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		var booking models.Booking
		if err := tx.First(&booking, payment.BookingID).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		bookingState := models.GetBookingState(booking.Status)
		if err := bookingState.Confirm(&booking); err != nil {
			return nil
		}
		return tx.Save(&booking).Error
	})
	if err != nil {
		return found, false, err
	}
	if transitioned {
		s.logger.Info("Phiên %s thanh toán thành công", sessionID)
	}
	return found, transitioned, nil
}

// HandleCancel xử lý callback hủy phiên: chỉ chuyển payment sang CANCELLED,
// booking giữ nguyên trạng thái chờ
func (s *PaymentService) HandleCancel(sessionID string) (bool, error) {
	found := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.Where("session_id = ?", sessionID).First(&payment).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true

		state := models.GetPaymentState(payment.Status)
		if err := state.MarkCancelled(&payment); err != nil {
			return nil
		}
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		s.logger.Info("Phiên %s bị hủy, booking %d vẫn ở trạng thái chờ", sessionID, payment.BookingID)
		return nil
	})
	return found, err
}

// ExpireStale chuyển các payment còn chờ quá hạn sang EXPIRED,
// trả về số bản ghi đã chuyển. Được cron gọi định kỳ.
func (s *PaymentService) ExpireStale(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	result := s.db.Model(&models.Payment{}).
		Where("status = ? AND created_at < ?", models.PaymentStatusPending, cutoff).
		Update("status", models.PaymentStatusExpired)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		s.logger.Info("Đã chuyển %d payment quá hạn sang EXPIRED", result.RowsAffected)
	}
	return result.RowsAffected, nil
}

// GetByID lấy payment theo ID kèm booking
func (s *PaymentService) GetByID(paymentID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.Preload("Booking.Room.Hotel").First(&payment, paymentID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewAppError(errors.ErrCodePaymentNotFound, "Không tìm thấy payment", err)
		}
		return nil, err
	}
	return &payment, nil
}
