package errors

import (
	"errors"
	"fmt"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken ErrorCode = "MISSING_TOKEN"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeInvalidRole  ErrorCode = "INVALID_ROLE"

	// Booking errors
	ErrCodeInvalidDateRange ErrorCode = "INVALID_DATE_RANGE"
	ErrCodeRoomUnavailable  ErrorCode = "ROOM_UNAVAILABLE"
	ErrCodeBookingNotFound  ErrorCode = "BOOKING_NOT_FOUND"
	ErrCodeRoomNotFound     ErrorCode = "ROOM_NOT_FOUND"

	// Payment errors
	ErrCodeGateway            ErrorCode = "GATEWAY_ERROR"
	ErrCodeFineAmountRequired ErrorCode = "FINE_AMOUNT_REQUIRED"
	ErrCodePaymentExists      ErrorCode = "PAYMENT_EXISTS"
	ErrCodePaymentNotFound    ErrorCode = "PAYMENT_NOT_FOUND"
	ErrCodeInvalidKind        ErrorCode = "INVALID_PAYMENT_KIND"

	// Review errors
	ErrCodeInvalidRating   ErrorCode = "INVALID_RATING"
	ErrCodeDuplicateReview ErrorCode = "DUPLICATE_REVIEW"
	ErrCodeReviewNotFound  ErrorCode = "REVIEW_NOT_FOUND"

	// Database errors
	ErrCodeDBError     ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound  ErrorCode = "DB_NOT_FOUND"
	ErrCodeDBDuplicate ErrorCode = "DB_DUPLICATE"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode kiểm tra error có mang mã lỗi chỉ định không
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

var (
	// Booking errors
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingCancelled = errors.New("booking already cancelled")
	ErrBookingConfirmed = errors.New("booking already confirmed")

	// Room errors
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomNotAvailable = errors.New("room not available")

	// Payment errors
	ErrPaymentNotFound = errors.New("payment not found")
	ErrPaymentTerminal = errors.New("payment already in terminal status")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingRequired = errors.New("missing required field")
)
