package controllers

import (
	"fmt"
	"log"
	"strconv"

	"hotelbooking/config"
	"hotelbooking/dto"
	"hotelbooking/models"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/services/logger"
	"hotelbooking/services/notification"
	"hotelbooking/validator"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type PaymentController struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Bookings *services.BookingService
	Payments *services.PaymentService
	Gateway  services.CheckoutGateway
	Notifier notification.Service
}

func NewPaymentController(db *gorm.DB, redisCli *redis.Client, gateway services.CheckoutGateway, notifier notification.Service) *PaymentController {
	l := logger.NewDefaultLogger(logger.InfoLevel)
	return &PaymentController{
		DB:       db,
		Redis:    redisCli,
		Bookings: services.NewBookingService(db, l),
		Payments: services.NewPaymentService(db, l),
		Gateway:  gateway,
		Notifier: notifier,
	}
}

func convertToPaymentResponse(payment *models.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:         payment.ID,
		BookingID:  payment.BookingID,
		Amount:     payment.Amount,
		Status:     payment.Status,
		Kind:       payment.Kind,
		SessionID:  payment.SessionID,
		SessionURL: payment.SessionURL,
		PaidAt:     payment.PaidAt,
		CreatedAt:  payment.CreatedAt,
	}
}

// GetPayments trả danh sách payment: admin thấy tất cả, khách chỉ thấy của mình
func (ctrl *PaymentController) GetPayments(c *gin.Context) {
	actorID, actorRole, ok := actorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	statusFilter := c.Query("status")
	kindFilter := c.Query("kind")

	page := 0
	limit := 10
	if pageStr := c.Query("page"); pageStr != "" {
		if parsedPage, err := strconv.Atoi(pageStr); err == nil && parsedPage >= 0 {
			page = parsedPage
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	var payments []models.Payment
	tx := ctrl.DB.Model(&models.Payment{}).Order("payments.created_at DESC")
	if actorRole != 1 {
		tx = tx.Joins("JOIN bookings ON bookings.id = payments.booking_id").
			Where("bookings.user_id = ?", actorID)
	}
	if statusFilter != "" {
		if parsedStatus, err := strconv.Atoi(statusFilter); err == nil {
			tx = tx.Where("payments.status = ?", parsedStatus)
		}
	}
	if kindFilter != "" {
		if parsedKind, err := strconv.Atoi(kindFilter); err == nil {
			tx = tx.Where("payments.kind = ?", parsedKind)
		}
	}

	if err := tx.Find(&payments).Error; err != nil {
		response.ServerError(c)
		return
	}

	total := len(payments)
	start := page * limit
	end := start + limit
	if start >= total {
		payments = []models.Payment{}
	} else {
		if end > total {
			end = total
		}
		payments = payments[start:end]
	}

	paymentResponses := make([]dto.PaymentListResponse, 0, len(payments))
	for _, payment := range payments {
		paymentResponses = append(paymentResponses, dto.PaymentListResponse{
			ID:        payment.ID,
			BookingID: payment.BookingID,
			Amount:    payment.Amount,
			Status:    payment.Status,
			Kind:      payment.Kind,
		})
	}

	response.SuccessWithPagination(c, paymentResponses, page, limit, total)
}

// CreatePayment mở phiên thanh toán mới cho booking có sẵn.
// Kind = 1 là tiền phạt và bắt buộc phải có fineAmount.
func (ctrl *PaymentController) CreatePayment(c *gin.Context) {
	actorID, actorRole, ok := actorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var request dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if err := validator.ValidateFineAmount(request.Kind, request.FineAmount); err != nil {
		respondAppError(c, err)
		return
	}

	booking, err := ctrl.Bookings.GetByID(request.BookingID)
	if err != nil {
		respondAppError(c, err)
		return
	}

	if !services.CanAccessBooking(actorID, actorRole, booking) {
		response.Forbidden(c)
		return
	}

	session, err := ctrl.Gateway.OpenSession(c.Request.Context(), booking, request.Kind, request.FineAmount)
	if err != nil {
		respondAppError(c, err)
		return
	}

	payment, err := ctrl.Payments.RecordPending(booking.ID, session, request.Kind)
	if err != nil {
		respondAppError(c, err)
		return
	}

	response.Created(c, convertToPaymentResponse(payment))
}

// GetPaymentDetail trả chi tiết payment kèm booking gắn với nó
func (ctrl *PaymentController) GetPaymentDetail(c *gin.Context) {
	actorID, actorRole, ok := actorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return
	}

	payment, err := ctrl.Payments.GetByID(uint(id))
	if err != nil {
		respondAppError(c, err)
		return
	}

	if !services.CanAccessPayment(actorID, actorRole, payment) {
		response.Forbidden(c)
		return
	}

	detail := dto.PaymentDetailResponse{
		PaymentResponse: convertToPaymentResponse(payment),
	}
	if payment.Booking != nil {
		bookingResponse := convertToBookingResponse(payment.Booking, "")
		detail.Booking = &bookingResponse
	}

	response.Success(c, detail)
}

// PaymentSuccess là callback từ cổng thanh toán khi khách trả tiền xong.
// Không yêu cầu auth: provider gọi thẳng về với session_id trong query.
// Callback có thể bị gọi lặp, lần lặp lại không đổi gì thêm.
func (ctrl *PaymentController) PaymentSuccess(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		response.BadRequest(c, "Thiếu session_id")
		return
	}

	found, transitioned, err := ctrl.Payments.HandleSuccess(sessionID)
	if err != nil {
		response.ServerError(c)
		return
	}
	if !found {
		response.NotFound(c)
		return
	}

	// Side effect chỉ chạy ở lần chuyển trạng thái thật, replay không gửi lại
	var payment models.Payment
	if !transitioned {
		response.Success(c, gin.H{"status": "success"})
		return
	}
	if err := ctrl.DB.Preload("Booking.User").Where("session_id = ?", sessionID).First(&payment).Error; err == nil && payment.Booking != nil {
		_ = services.DeleteFromRedis(config.Ctx, ctrl.Redis, "bookings:all")
		_ = services.DeleteFromRedis(config.Ctx, ctrl.Redis, fmt.Sprintf("bookings:user:%d", payment.Booking.UserID))

		message := notification.BuildBookingEvent("booking_paid", payment.BookingID, payment.Booking.RoomID, payment.Booking.Status, payment.Amount)
		if err := ctrl.Notifier.SendMessage(message); err != nil {
			log.Printf("Lỗi khi gửi thông báo thanh toán: %v", err)
		}

		if payment.Booking.User != nil && payment.Booking.User.Email != "" {
			if err := services.SendBookingPaidEmail(
				payment.Booking.User.Email,
				payment.BookingID,
				payment.Amount,
				payment.Booking.CheckInDate.Format("02/01/2006"),
				payment.Booking.CheckOutDate.Format("02/01/2006"),
			); err != nil {
				log.Printf("Lỗi khi gửi email xác nhận thanh toán: %v", err)
			}
		}
	}

	response.Success(c, gin.H{"status": "success"})
}

// PaymentCancel là callback khi khách hủy phiên thanh toán.
// Payment chuyển sang CANCELLED, booking vẫn ở trạng thái chờ.
func (ctrl *PaymentController) PaymentCancel(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		response.BadRequest(c, "Thiếu session_id")
		return
	}

	found, err := ctrl.Payments.HandleCancel(sessionID)
	if err != nil {
		response.ServerError(c)
		return
	}
	if !found {
		response.NotFound(c)
		return
	}

	response.Success(c, gin.H{"status": "cancelled"})
}
