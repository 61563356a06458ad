package notification

import (
	"encoding/json"
	"fmt"

	"github.com/olahol/melody"
)

// Service gửi sự kiện booking/payment cho các socket đang kết nối
type Service interface {
	SendMessage(message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// BookingEvent payload phát qua websocket khi booking thay đổi
type BookingEvent struct {
	Event     string  `json:"event"`
	BookingID uint    `json:"bookingId"`
	RoomID    uint    `json:"roomId"`
	Status    int     `json:"status"`
	Amount    float64 `json:"amount,omitempty"`
}

// BuildBookingEvent dựng message JSON cho sự kiện booking
func BuildBookingEvent(event string, bookingID, roomID uint, status int, amount float64) string {
	payload := BookingEvent{
		Event:     event,
		BookingID: bookingID,
		RoomID:    roomID,
		Status:    status,
		Amount:    amount,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf(`{"event":%q,"bookingId":%d}`, event, bookingID)
	}
	return string(data)
}
