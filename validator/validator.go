package validator

import (
	"time"

	"hotelbooking/errors"
	"hotelbooking/models"
)

// ValidateDateRange kiểm tra khoảng ngày đặt phòng, check-in phải trước check-out
func ValidateDateRange(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Ngày nhận phòng và ngày trả phòng không được để trống", nil)
	}

	if !checkIn.Before(checkOut) {
		return errors.NewAppError(errors.ErrCodeInvalidDateRange, "Ngày trả phòng phải sau ngày nhận phòng", nil)
	}

	return nil
}

// ValidateRating kiểm tra số sao đánh giá phải nằm trong [1,5]
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return errors.NewAppError(errors.ErrCodeInvalidRating, "Số sao phải từ 1 đến 5", nil)
	}
	return nil
}

// ValidateFineAmount kiểm tra payment loại FINE phải kèm số tiền dương
func ValidateFineAmount(kind int, fineAmount *float64) error {
	if kind != models.PaymentKindFine {
		return nil
	}

	if fineAmount == nil {
		return errors.NewAppError(errors.ErrCodeFineAmountRequired, "Thiếu số tiền phạt cho payment loại FINE", nil)
	}

	if *fineAmount <= 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Số tiền phạt phải lớn hơn 0", nil)
	}

	return nil
}
