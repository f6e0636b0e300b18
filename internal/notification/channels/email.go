// Package channels chứa các kênh gửi thông báo ra bên ngoài (email, WhatsApp).
// Các kênh được khởi tạo một lần ở cmd/server và inject vào service.
package channels

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"kol_market/config"
)

// EmailSender gửi email HTML qua SMTP với dialer được dựng một lần từ config
type EmailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailSender khởi tạo EmailSender.
// Trả về (nil, nil) khi thiếu cấu hình SMTP — kênh email bị tắt.
func NewEmailSender(c *config.Configuration) (*EmailSender, error) {
	if c.EmailUser == "" || c.EmailPass == "" {
		return nil, nil
	}

	return &EmailSender{
		dialer: gomail.NewDialer(c.EmailHost, c.EmailPort, c.EmailUser, c.EmailPass),
		from:   c.EmailUser,
	}, nil
}

// SendMail gửi một email HTML
func (s *EmailSender) SendMail(to string, subject string, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return s.dialer.DialAndSend(msg)
}

// WelcomeEmail dựng nội dung email chào mừng tài khoản mới
func WelcomeEmail(name string) (subject string, body string) {
	subject = "Chào mừng bạn đến với KOL Market"
	body = fmt.Sprintf(`<h2>Xin chào %s,</h2>
<p>Tài khoản của bạn đã được tạo thành công. Chúc bạn có những chiến dịch hiệu quả!</p>
<p>Đội ngũ KOL Market</p>`, name)
	return subject, body
}

// AssignmentEmail dựng nội dung email báo brand có influencer mới được gán vào chiến dịch
func AssignmentEmail(brandName string, campaignTitle string, assignedCount int) (subject string, body string) {
	subject = fmt.Sprintf("Chiến dịch \"%s\" có influencer mới", campaignTitle)
	body = fmt.Sprintf(`<h2>Xin chào %s,</h2>
<p>Chiến dịch <b>%s</b> vừa được gán thêm <b>%d</b> influencer.</p>
<p>Đăng nhập để xem chi tiết và theo dõi tiến độ.</p>`, brandName, campaignTitle, assignedCount)
	return subject, body
}

// DeliverableEmail dựng nội dung email báo có bài đăng mới được nộp
func DeliverableEmail(recipientName string, campaignTitle string, influencerName string, submitted int, required int) (subject string, body string) {
	subject = fmt.Sprintf("Bài đăng mới cho chiến dịch \"%s\"", campaignTitle)
	body = fmt.Sprintf(`<h2>Xin chào %s,</h2>
<p>Influencer <b>%s</b> vừa nộp bài đăng mới cho chiến dịch <b>%s</b>.</p>
<p>Tiến độ hiện tại: <b>%d/%d</b> bài.</p>`, recipientName, influencerName, campaignTitle, submitted, required)
	return subject, body
}

// ResetPasswordEmail dựng nội dung email chứa link đặt lại mật khẩu
func ResetPasswordEmail(name string, resetLink string) (subject string, body string) {
	subject = "Đặt lại mật khẩu KOL Market"
	body = fmt.Sprintf(`<h2>Xin chào %s,</h2>
<p>Bạn vừa yêu cầu đặt lại mật khẩu. Link có hiệu lực trong 1 giờ:</p>
<p><a href="%s">Đặt lại mật khẩu</a></p>
<p>Nếu không phải bạn, hãy bỏ qua email này.</p>`, name, resetLink)
	return subject, body
}
