package controllers

import (
	"time"

	"hotelbooking/errors"
	"hotelbooking/response"

	"github.com/gin-gonic/gin"
)

// ConvertDateToISOFormat chuyển chuỗi ngày dd/MM/yyyy thành time.Time
func ConvertDateToISOFormat(dateStr string) (time.Time, error) {
	parsedDate, err := time.Parse("02/01/2006", dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return parsedDate, nil
}

// actorFromContext lấy userID và role do AuthMiddleware đặt vào context
func actorFromContext(c *gin.Context) (uint, int, bool) {
	userIDValue, okID := c.Get("userID")
	roleValue, okRole := c.Get("userRole")
	if !okID || !okRole {
		return 0, 0, false
	}
	userID, okID := userIDValue.(uint)
	role, okRole := roleValue.(int)
	if !okID || !okRole {
		return 0, 0, false
	}
	return userID, role, true
}

// respondAppError map mã lỗi AppError sang response HTTP tương ứng
func respondAppError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		response.ServerError(c)
		return
	}

	switch appErr.Code {
	case errors.ErrCodeRoomUnavailable, errors.ErrCodePaymentExists:
		response.Conflict(c, appErr.Message)
	case errors.ErrCodeInvalidDateRange, errors.ErrCodeInvalidRating,
		errors.ErrCodeDuplicateReview, errors.ErrCodeFineAmountRequired,
		errors.ErrCodeInvalidKind, errors.ErrCodeValidation, errors.ErrCodeRequiredField:
		response.BadRequest(c, appErr.Message)
	case errors.ErrCodeBookingNotFound, errors.ErrCodeRoomNotFound,
		errors.ErrCodePaymentNotFound, errors.ErrCodeReviewNotFound, errors.ErrCodeDBNotFound:
		response.NotFound(c)
	case errors.ErrCodeGateway:
		response.GatewayError(c, appErr.Message)
	case errors.ErrCodeUnauthorized, errors.ErrCodeInvalidToken, errors.ErrCodeMissingToken:
		response.Unauthorized(c)
	case errors.ErrCodeForbidden:
		response.Forbidden(c)
	default:
		response.ServerError(c)
	}
}
