package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"

	"hotelbooking/dto"
	middlewares "hotelbooking/middleware"
	"hotelbooking/models"
	"hotelbooking/services"
	"hotelbooking/services/logger"
	"hotelbooking/services/notification"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// recordingNotifier gom các message đã phát để test đếm lại được
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingNotifier) SendMessage(message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
	return nil
}

func (r *recordingNotifier) count(event string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, message := range r.messages {
		if strings.Contains(message, event) {
			n++
		}
	}
	return n
}

func newPaymentRouter(db *gorm.DB, gateway services.CheckoutGateway) *gin.Engine {
	return newPaymentRouterWithNotifier(db, gateway, notification.NewMelodyService(nil))
}

func newPaymentRouterWithNotifier(db *gorm.DB, gateway services.CheckoutGateway, notifier notification.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewPaymentController(db, testRedis(), gateway, notifier)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.GET("/payment", middlewares.AuthMiddleware(), ctrl.GetPayments)
	v1.POST("/payment", middlewares.AuthMiddleware(), ctrl.CreatePayment)
	v1.GET("/payment/:id", middlewares.AuthMiddleware(), ctrl.GetPaymentDetail)
	v1.GET("/paymentSuccess", ctrl.PaymentSuccess)
	v1.GET("/paymentCancel", ctrl.PaymentCancel)
	return router
}

func seedBookingWithPayment(t *testing.T, db *gorm.DB, userID uint, sessionID string) (*models.Booking, *models.Payment) {
	t.Helper()

	room := seedRoom(t, db, 100)
	l := logger.NewDefaultLogger(logger.ErrorLevel)
	bookings := services.NewBookingService(db, l)
	payments := services.NewPaymentService(db, l)

	booking, err := bookings.Create(userID, room.RoomID, date(2026, 9, 10), date(2026, 9, 13))
	if err != nil {
		t.Fatalf("booking phải tạo được: %v", err)
	}

	payment, err := payments.RecordPending(booking.ID, &services.CheckoutSession{
		SessionID:  sessionID,
		SessionURL: "https://checkout.example.com/pay/" + sessionID,
		Amount:     300,
	}, models.PaymentKindPayment)
	if err != nil {
		t.Fatalf("payment chờ phải ghi được: %v", err)
	}
	return booking, payment
}

func TestPaymentSuccessCallback(t *testing.T) {
	db := setupTestDB(t)
	booking, payment := seedBookingWithPayment(t, db, 1, "sess_cb_ok")
	router := newPaymentRouter(db, nil)

	recorder := doJSON(t, router, http.MethodGet, "/api/v1/paymentSuccess?session_id=sess_cb_ok", "", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("muốn status 200, nhận %d: %s", recorder.Code, recorder.Body.String())
	}

	var savedPayment models.Payment
	if err := db.First(&savedPayment, payment.ID).Error; err != nil {
		t.Fatalf("không đọc lại được payment: %v", err)
	}
	if savedPayment.Status != models.PaymentStatusPaid {
		t.Errorf("muốn payment PAID, nhận %d", savedPayment.Status)
	}

	var savedBooking models.Booking
	if err := db.First(&savedBooking, booking.ID).Error; err != nil {
		t.Fatalf("không đọc lại được booking: %v", err)
	}
	if savedBooking.Status != models.BookingStatusConfirmed {
		t.Errorf("muốn booking CONFIRMED, nhận %d", savedBooking.Status)
	}

	// Provider gọi lại lần nữa, vẫn 200 và không đổi gì
	recorder = doJSON(t, router, http.MethodGet, "/api/v1/paymentSuccess?session_id=sess_cb_ok", "", nil)
	if recorder.Code != http.StatusOK {
		t.Errorf("callback lặp lại phải trả 200, nhận %d", recorder.Code)
	}
}

func TestPaymentSuccessReplayDoesNotResendEvents(t *testing.T) {
	db := setupTestDB(t)
	seedBookingWithPayment(t, db, 1, "sess_cb_replay")
	notifier := &recordingNotifier{}
	router := newPaymentRouterWithNotifier(db, nil, notifier)

	if recorder := doJSON(t, router, http.MethodGet, "/api/v1/paymentSuccess?session_id=sess_cb_replay", "", nil); recorder.Code != http.StatusOK {
		t.Fatalf("muốn status 200, nhận %d", recorder.Code)
	}
	if got := notifier.count("booking_paid"); got != 1 {
		t.Fatalf("lần callback đầu phải phát đúng một sự kiện, nhận %d", got)
	}

	// Replay: vẫn 200 nhưng không phát lại sự kiện
	if recorder := doJSON(t, router, http.MethodGet, "/api/v1/paymentSuccess?session_id=sess_cb_replay", "", nil); recorder.Code != http.StatusOK {
		t.Fatalf("callback lặp lại phải trả 200, nhận %d", recorder.Code)
	}
	if got := notifier.count("booking_paid"); got != 1 {
		t.Errorf("callback lặp lại không được phát thêm sự kiện, nhận %d", got)
	}
}

func TestPaymentSuccessCallbackUnknownSession(t *testing.T) {
	db := setupTestDB(t)
	router := newPaymentRouter(db, nil)

	recorder := doJSON(t, router, http.MethodGet, "/api/v1/paymentSuccess?session_id=sess_unknown", "", nil)
	if recorder.Code != http.StatusNotFound {
		t.Errorf("phiên lạ: muốn status 404, nhận %d", recorder.Code)
	}

	recorder = doJSON(t, router, http.MethodGet, "/api/v1/paymentSuccess", "", nil)
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("thiếu session_id: muốn status 400, nhận %d", recorder.Code)
	}
}

func TestPaymentCancelCallback(t *testing.T) {
	db := setupTestDB(t)
	booking, payment := seedBookingWithPayment(t, db, 1, "sess_cb_cancel")
	router := newPaymentRouter(db, nil)

	recorder := doJSON(t, router, http.MethodGet, "/api/v1/paymentCancel?session_id=sess_cb_cancel", "", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("muốn status 200, nhận %d: %s", recorder.Code, recorder.Body.String())
	}

	var savedPayment models.Payment
	if err := db.First(&savedPayment, payment.ID).Error; err != nil {
		t.Fatalf("không đọc lại được payment: %v", err)
	}
	if savedPayment.Status != models.PaymentStatusCancelled {
		t.Errorf("muốn payment CANCELLED, nhận %d", savedPayment.Status)
	}

	// Hủy phiên không đụng tới booking
	var savedBooking models.Booking
	if err := db.First(&savedBooking, booking.ID).Error; err != nil {
		t.Fatalf("không đọc lại được booking: %v", err)
	}
	if savedBooking.Status != models.BookingStatusPending {
		t.Errorf("booking phải giữ trạng thái chờ, nhận %d", savedBooking.Status)
	}
}

func TestCreateFinePaymentEndpoint(t *testing.T) {
	db := setupTestDB(t)
	booking, _ := seedBookingWithPayment(t, db, 1, "sess_base")
	gateway := &stubGateway{session: &services.CheckoutSession{
		SessionID:  "sess_fine_1",
		SessionURL: "https://checkout.example.com/pay/sess_fine_1",
		Amount:     50,
	}}
	router := newPaymentRouter(db, gateway)

	fine := 50.0
	request := dto.CreatePaymentRequest{
		BookingID:  booking.ID,
		Kind:       models.PaymentKindFine,
		FineAmount: &fine,
	}
	recorder := doJSON(t, router, http.MethodPost, "/api/v1/payment", testToken(1, 0), request)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("tạo payment phạt phải thành công: %d: %s", recorder.Code, recorder.Body.String())
	}

	// Thiếu fineAmount thì bị chặn ngay từ validator
	request.FineAmount = nil
	recorder = doJSON(t, router, http.MethodPost, "/api/v1/payment", testToken(1, 0), request)
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("thiếu fineAmount: muốn status 400, nhận %d", recorder.Code)
	}
}

func TestGetPaymentDetailOwnerOrAdmin(t *testing.T) {
	db := setupTestDB(t)
	_, payment := seedBookingWithPayment(t, db, 1, "sess_detail")
	router := newPaymentRouter(db, nil)

	path := fmt.Sprintf("/api/v1/payment/%d", payment.ID)

	recorder := doJSON(t, router, http.MethodGet, path, testToken(1, 0), nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("chủ booking phải xem được payment: %d", recorder.Code)
	}

	var envelope struct {
		Data dto.PaymentDetailResponse `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("không parse được response: %v", err)
	}
	if envelope.Data.SessionID != "sess_detail" {
		t.Errorf("sessionId không đúng: %q", envelope.Data.SessionID)
	}
	if envelope.Data.Booking == nil {
		t.Error("chi tiết payment phải kèm booking")
	}

	if recorder := doJSON(t, router, http.MethodGet, path, testToken(2, 0), nil); recorder.Code != http.StatusForbidden {
		t.Errorf("khách khác phải bị chặn: %d", recorder.Code)
	}
	if recorder := doJSON(t, router, http.MethodGet, path, testToken(9, 1), nil); recorder.Code != http.StatusOK {
		t.Errorf("admin phải xem được: %d", recorder.Code)
	}
}
