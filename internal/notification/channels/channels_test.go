// Package channels - Test điều kiện bật/tắt kênh và nội dung thông báo.
package channels

import (
	"strings"
	"testing"

	"kol_market/config"
)

func TestNewEmailSenderDisabledWithoutConfig(t *testing.T) {
	sender, err := NewEmailSender(&config.Configuration{EmailHost: "smtp.gmail.com", EmailPort: 587})
	if err != nil {
		t.Fatalf("NewEmailSender lỗi: %v", err)
	}
	if sender != nil {
		t.Error("NewEmailSender thiếu tài khoản SMTP phải trả về nil")
	}
}

func TestNewWhatsAppSenderDisabledWithoutConfig(t *testing.T) {
	sender, err := NewWhatsAppSender(&config.Configuration{})
	if err != nil {
		t.Fatalf("NewWhatsAppSender lỗi: %v", err)
	}
	if sender != nil {
		t.Error("NewWhatsAppSender thiếu cấu hình Twilio phải trả về nil")
	}
}

func TestResetPasswordEmailContainsLink(t *testing.T) {
	link := "http://localhost:3000/reset-password?token=abc123"
	_, body := ResetPasswordEmail("Acme", link)
	if !strings.Contains(body, link) {
		t.Errorf("body không chứa link reset: %q", body)
	}
	if !strings.Contains(body, "Acme") {
		t.Errorf("body không chứa tên người nhận: %q", body)
	}
}

func TestDeliverableMessageContainsProgress(t *testing.T) {
	msg := DeliverableMessage("Summer Launch", "Ngọc", 2, 5)
	if !strings.Contains(msg, "Summer Launch") || !strings.Contains(msg, "Ngọc") {
		t.Errorf("tin nhắn thiếu tên chiến dịch hoặc influencer: %q", msg)
	}
	if !strings.Contains(msg, "2/5") {
		t.Errorf("tin nhắn thiếu tiến độ 2/5: %q", msg)
	}
}
