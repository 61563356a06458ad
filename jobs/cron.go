package jobs

import (
	"log"
	"time"

	"hotelbooking/services/notification"

	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

// PaymentExpirer định nghĩa interface cho việc hết hạn payment còn chờ
type PaymentExpirer interface {
	ExpireStale(olderThan time.Duration) (int64, error)
}

var paymentExpirer PaymentExpirer

// SetPaymentExpirer thiết lập implementation cho PaymentExpirer
func SetPaymentExpirer(expirer PaymentExpirer) {
	paymentExpirer = expirer
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron, m *melody.Melody) error {
	// Cron job chạy mỗi giờ: payment chờ quá 24h thì chuyển sang EXPIRED
	_, err := c.AddFunc("0 * * * *", func() {
		if paymentExpirer == nil {
			log.Printf("Lỗi: PaymentExpirer chưa được thiết lập")
			return
		}
		expired, err := paymentExpirer.ExpireStale(24 * time.Hour)
		if err != nil {
			log.Printf("Lỗi khi quét payment quá hạn: %v", err)
			return
		}
		if expired > 0 && m != nil {
			message := notification.BuildBookingEvent("payments_expired", 0, 0, 0, float64(expired))
			if err := m.Broadcast([]byte(message)); err != nil {
				log.Printf("Lỗi khi gửi thông báo payment quá hạn: %v", err)
			}
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
