package services

import (
	"fmt"
	"net/smtp"
	"os"
)

// SendBookingPaidEmail gửi email xác nhận khi thanh toán thành công
func SendBookingPaidEmail(email string, bookingID uint, amount float64, checkInDate, checkOutDate string) error {
	from := os.Getenv("SMTP_USER")
	password := os.Getenv("SMTP_PASSWORD")

	host := "smtp.gmail.com"
	port := "587"
	to := []string{email}
	subject := "Subject: Thanh toán thành công\n"

	body := fmt.Sprintf(`<!DOCTYPE html>
	<html>
	<head>
		<meta charset="UTF-8">
		<title>Thanh toán thành công</title>
	</head>
	<body>
		<p>Xin chào,</p>
		<p>Booking của bạn đã được thanh toán và xác nhận.</p>
		<p>Thông tin booking của bạn như sau:</p>
		<ul>
			<li>Mã booking: <strong>%d</strong></li>
			<li>Ngày nhận phòng: <strong>%s</strong></li>
			<li>Ngày trả phòng: <strong>%s</strong></li>
			<li>Số tiền đã thanh toán: <strong>%.2f USD</strong></li>
		</ul>
		<p>Cảm ơn bạn đã sử dụng dịch vụ của chúng tôi!</p>
		<p>Xin cảm ơn,<br>Nhóm hỗ trợ</p>
	</body>
	</html>`, bookingID, checkInDate, checkOutDate, amount)

	msg := []byte("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n" + subject + "\n" + body)

	auth := smtp.PlainAuth("", from, password, host)

	return smtp.SendMail(host+":"+port, auth, from, to, msg)
}
