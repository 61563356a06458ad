package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"time"

	"hotelbooking/errors"
	"hotelbooking/models"
)

// CheckoutSession phiên thanh toán do cổng bên ngoài mở,
// session_id và session_url là chuỗi mờ từ phía provider
type CheckoutSession struct {
	SessionID  string
	SessionURL string
	Amount     float64
}

// CheckoutGateway là hợp đồng với cổng thanh toán bên ngoài.
// Core chỉ phụ thuộc interface này, không phụ thuộc provider cụ thể.
type CheckoutGateway interface {
	OpenSession(ctx context.Context, booking *models.Booking, kind int, fineAmount *float64) (*CheckoutSession, error)
}

type checkoutRequest struct {
	Amount      int64  `json:"amount"` // Đơn vị nhỏ nhất của tiền tệ
	Currency    string `json:"currency"`
	ProductName string `json:"product_name"`
	Description string `json:"description"`
	SuccessURL  string `json:"success_url"`
	CancelURL   string `json:"cancel_url"`
}

type checkoutResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// HTTPCheckoutGateway gọi API mở phiên của provider qua HTTP
type HTTPCheckoutGateway struct {
	baseURL      string
	apiKey       string
	callbackBase string
	client       *http.Client
}

func NewHTTPCheckoutGateway() *HTTPCheckoutGateway {
	return &HTTPCheckoutGateway{
		baseURL:      os.Getenv("CHECKOUT_API_URL"),
		apiKey:       os.Getenv("CHECKOUT_API_KEY"),
		callbackBase: os.Getenv("PUBLIC_BASE_URL"),
		client:       &http.Client{Timeout: 15 * time.Second},
	}
}

// sessionCharge tính số tiền và mô tả dòng hàng cho phiên thanh toán
func sessionCharge(booking *models.Booking, kind int, fineAmount *float64) (float64, string, string, error) {
	switch kind {
	case models.PaymentKindPayment:
		nights := booking.Nights()
		total := float64(nights * booking.Room.Price)
		productName := fmt.Sprintf("Room: %s in %s", booking.Room.Number, booking.Room.Hotel.Name)
		description := fmt.Sprintf("Room rental for %d days", nights)
		return total, productName, description, nil
	case models.PaymentKindFine:
		if fineAmount == nil {
			return 0, "", "", errors.NewAppError(errors.ErrCodeFineAmountRequired, "Thiếu số tiền phạt cho payment loại FINE", nil)
		}
		productName := fmt.Sprintf("Fine: Room %s", booking.Room.Number)
		description := fmt.Sprintf("Fine for booking #%d", booking.ID)
		return *fineAmount, productName, description, nil
	default:
		return 0, "", "", errors.NewAppError(errors.ErrCodeInvalidKind, "Loại payment không được hỗ trợ", nil)
	}
}

// OpenSession mở phiên thanh toán cho booking. Lỗi từ provider được
// bọc lại và trả thẳng cho caller, không retry ở đây.
func (g *HTTPCheckoutGateway) OpenSession(ctx context.Context, booking *models.Booking, kind int, fineAmount *float64) (*CheckoutSession, error) {
	total, productName, description, err := sessionCharge(booking, kind, fineAmount)
	if err != nil {
		return nil, err
	}

	payload := checkoutRequest{
		// Làm tròn thay vì cắt: 10.07 * 100 là 1006.999... ở float64
		Amount:      int64(math.Round(total * 100)),
		Currency:    "usd",
		ProductName: productName,
		Description: description,
		SuccessURL:  g.callbackBase + "/api/v1/paymentSuccess?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   g.callbackBase + "/api/v1/paymentCancel?session_id={CHECKOUT_SESSION_ID}",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeGateway, "Không thể tạo request mở phiên thanh toán", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeGateway, "Không thể tạo request mở phiên thanh toán", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeGateway, "Không gọi được cổng thanh toán", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		return nil, errors.NewAppError(errors.ErrCodeGateway,
			fmt.Sprintf("Cổng thanh toán trả về status %d: %s", resp.StatusCode, string(raw)), nil)
	}

	var session checkoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeGateway, "Không thể parse phản hồi từ cổng thanh toán", err)
	}

	return &CheckoutSession{
		SessionID:  session.ID,
		SessionURL: session.URL,
		Amount:     total,
	}, nil
}
