package controllers

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"hotelbooking/config"
	"hotelbooking/dto"
	"hotelbooking/models"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/services/logger"
	"hotelbooking/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type BookingController struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Bookings *services.BookingService
	Payments *services.PaymentService
	Gateway  services.CheckoutGateway
	Notifier notification.Service
}

func NewBookingController(db *gorm.DB, redisCli *redis.Client, gateway services.CheckoutGateway, notifier notification.Service) *BookingController {
	l := logger.NewDefaultLogger(logger.InfoLevel)
	return &BookingController{
		DB:       db,
		Redis:    redisCli,
		Bookings: services.NewBookingService(db, l),
		Payments: services.NewPaymentService(db, l),
		Gateway:  gateway,
		Notifier: notifier,
	}
}

func convertToBookingResponse(booking *models.Booking, paymentURL string) dto.BookingResponse {
	var actor dto.ActorResponse
	if booking.User != nil {
		actor = dto.ActorResponse{
			Name:        booking.User.Name,
			Email:       booking.User.Email,
			PhoneNumber: booking.User.PhoneNumber,
		}
	}

	return dto.BookingResponse{
		ID:   booking.ID,
		User: actor,
		Hotel: dto.BookingHotelResponse{
			ID:      booking.Room.Hotel.ID,
			Name:    booking.Room.Hotel.Name,
			Address: booking.Room.Hotel.Address,
			Rating:  booking.Room.Hotel.Rating,
		},
		Room: dto.BookingRoomResponse{
			ID:      booking.Room.RoomID,
			HotelID: booking.Room.HotelID,
			Number:  booking.Room.Number,
			Type:    booking.Room.Type,
			Price:   booking.Room.Price,
		},
		CheckInDate:  booking.CheckInDate.Format("02/01/2006"),
		CheckOutDate: booking.CheckOutDate.Format("02/01/2006"),
		Status:       booking.Status,
		CreatedAt:    booking.CreatedAt,
		UpdatedAt:    booking.UpdatedAt,
		TotalPrice:   booking.TotalPrice(),
		PaymentURL:   paymentURL,
	}
}

// invalidateBookingCache xóa cache danh sách booking sau khi dữ liệu đổi
func (ctrl *BookingController) invalidateBookingCache(userID uint) {
	_ = services.DeleteFromRedis(config.Ctx, ctrl.Redis, "bookings:all")
	_ = services.DeleteFromRedis(config.Ctx, ctrl.Redis, fmt.Sprintf("bookings:user:%d", userID))
}

// GetBookings trả danh sách booking: admin thấy tất cả, khách chỉ thấy của mình
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	actorID, actorRole, ok := actorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	statusFilter := c.Query("status")
	roomIDFilter := c.Query("roomId")
	fromDateFilter := c.Query("fromDate")
	toDateFilter := c.Query("toDate")
	nameFilter := c.Query("name")

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

	cacheKey := "bookings:all"
	if actorRole != 1 {
		cacheKey = fmt.Sprintf("bookings:user:%d", actorID)
	}

	var allBookings []models.Booking
	if err := services.GetFromRedis(config.Ctx, ctrl.Redis, cacheKey, &allBookings); err != nil || len(allBookings) == 0 {
		tx := ctrl.DB.Preload("Room.Hotel").Preload("User").Order("created_at DESC")
		if actorRole != 1 {
			tx = tx.Where("user_id = ?", actorID)
		}
		if err := tx.Find(&allBookings).Error; err != nil {
			response.ServerError(c)
			return
		}

		if err := services.SetToRedis(config.Ctx, ctrl.Redis, cacheKey, allBookings, 10*time.Minute); err != nil {
			log.Printf("Lỗi khi lưu danh sách booking vào Redis: %v", err)
		}
	}

	// Lọc trên dữ liệu đã cache
	filtered := make([]models.Booking, 0, len(allBookings))
	for _, booking := range allBookings {
		if statusFilter != "" {
			parsedStatus, err := strconv.Atoi(statusFilter)
			if err != nil || booking.Status != parsedStatus {
				continue
			}
		}
		if roomIDFilter != "" {
			parsedRoomID, err := strconv.Atoi(roomIDFilter)
			if err != nil || booking.RoomID != uint(parsedRoomID) {
				continue
			}
		}
		if fromDateFilter != "" {
			fromDate, err := ConvertDateToISOFormat(fromDateFilter)
			if err != nil || booking.CheckInDate.Before(fromDate) {
				continue
			}
		}
		if toDateFilter != "" {
			toDate, err := ConvertDateToISOFormat(toDateFilter)
			if err != nil || booking.CheckOutDate.After(toDate) {
				continue
			}
		}
		if nameFilter != "" && booking.Room.Hotel.Name != nameFilter {
			continue
		}
		filtered = append(filtered, booking)
	}

	total := len(filtered)
	start := page * limit
	end := start + limit
	if start >= total {
		filtered = []models.Booking{}
	} else {
		if end > total {
			end = total
		}
		filtered = filtered[start:end]
	}

	bookingResponses := make([]dto.BookingResponse, 0, len(filtered))
	for i := range filtered {
		bookingResponses = append(bookingResponses, convertToBookingResponse(&filtered[i], ""))
	}

	response.SuccessWithPagination(c, bookingResponses, page, limit, total)
}

// CreateBooking tạo booking mới rồi mở phiên thanh toán cho nó.
// Response trả kèm paymentUrl để client chuyển hướng sang trang thanh toán.
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	actorID, _, ok := actorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var request dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	checkInDate, err := ConvertDateToISOFormat(request.CheckInDate)
	if err != nil {
		response.BadRequest(c, "Ngày nhận phòng không hợp lệ")
		return
	}
	checkOutDate, err := ConvertDateToISOFormat(request.CheckOutDate)
	if err != nil {
		response.BadRequest(c, "Ngày trả phòng không hợp lệ")
		return
	}

	booking, err := ctrl.Bookings.Create(actorID, request.RoomID, checkInDate, checkOutDate)
	if err != nil {
		respondAppError(c, err)
		return
	}

	session, err := ctrl.Gateway.OpenSession(c.Request.Context(), booking, models.PaymentKindPayment, nil)
	if err != nil {
		respondAppError(c, err)
		return
	}

	if _, err := ctrl.Payments.RecordPending(booking.ID, session, models.PaymentKindPayment); err != nil {
		respondAppError(c, err)
		return
	}

	var user models.User
	if err := ctrl.DB.First(&user, actorID).Error; err == nil {
		booking.User = &user
	}

	ctrl.invalidateBookingCache(actorID)

	message := notification.BuildBookingEvent("booking_created", booking.ID, booking.RoomID, booking.Status, session.Amount)
	if err := ctrl.Notifier.SendMessage(message); err != nil {
		log.Printf("Lỗi khi gửi thông báo booking mới: %v", err)
	}

	response.Created(c, convertToBookingResponse(booking, session.SessionURL))
}

// GetBookingDetail trả chi tiết booking, chỉ chủ booking hoặc admin xem được
func (ctrl *BookingController) GetBookingDetail(c *gin.Context) {
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

	booking, err := ctrl.Bookings.GetByID(uint(id))
	if err != nil {
		respondAppError(c, err)
		return
	}

	if !services.CanAccessBooking(actorID, actorRole, booking) {
		response.Forbidden(c)
		return
	}

	response.Success(c, convertToBookingResponse(booking, ""))
}

// UpdateBooking đổi ngày của booking, ngày nào không gửi thì giữ nguyên
func (ctrl *BookingController) UpdateBooking(c *gin.Context) {
	actorID, actorRole, ok := actorFromContext(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var request dto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	booking, err := ctrl.Bookings.GetByID(request.ID)
	if err != nil {
		respondAppError(c, err)
		return
	}

	if !services.CanAccessBooking(actorID, actorRole, booking) {
		response.Forbidden(c)
		return
	}

	var newCheckIn, newCheckOut *time.Time
	if request.CheckInDate != "" {
		parsed, err := ConvertDateToISOFormat(request.CheckInDate)
		if err != nil {
			response.BadRequest(c, "Ngày nhận phòng không hợp lệ")
			return
		}
		newCheckIn = &parsed
	}
	if request.CheckOutDate != "" {
		parsed, err := ConvertDateToISOFormat(request.CheckOutDate)
		if err != nil {
			response.BadRequest(c, "Ngày trả phòng không hợp lệ")
			return
		}
		newCheckOut = &parsed
	}

	updated, err := ctrl.Bookings.Update(request.ID, newCheckIn, newCheckOut)
	if err != nil {
		respondAppError(c, err)
		return
	}
	updated.User = booking.User

	ctrl.invalidateBookingCache(booking.UserID)

	response.Success(c, convertToBookingResponse(updated, ""))
}

// CancelBooking hủy booking, phòng được giải phóng cho người khác đặt
func (ctrl *BookingController) CancelBooking(c *gin.Context) {
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

	booking, err := ctrl.Bookings.GetByID(uint(id))
	if err != nil {
		respondAppError(c, err)
		return
	}

	if !services.CanAccessBooking(actorID, actorRole, booking) {
		response.Forbidden(c)
		return
	}

	if err := ctrl.Bookings.Cancel(booking); err != nil {
		respondAppError(c, err)
		return
	}

	ctrl.invalidateBookingCache(booking.UserID)

	message := notification.BuildBookingEvent("booking_cancelled", booking.ID, booking.RoomID, booking.Status, 0)
	if err := ctrl.Notifier.SendMessage(message); err != nil {
		log.Printf("Lỗi khi gửi thông báo hủy booking: %v", err)
	}

	response.Success(c, convertToBookingResponse(booking, ""))
}
