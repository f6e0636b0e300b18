package channels

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kol_market/config"
)

// WhatsAppSender gửi tin nhắn WhatsApp qua Twilio REST API.
// Twilio không có SDK trong dependency set nên gọi trực tiếp endpoint
// /2010-04-01/Accounts/{sid}/Messages.json với basic auth.
type WhatsAppSender struct {
	httpClient *http.Client
	accountSID string
	authToken  string
	from       string
	baseURL    string
}

// NewWhatsAppSender khởi tạo WhatsAppSender.
// Trả về (nil, nil) khi thiếu cấu hình Twilio — kênh WhatsApp bị tắt.
func NewWhatsAppSender(c *config.Configuration) (*WhatsAppSender, error) {
	if c.TwilioAccountSID == "" || c.TwilioAuthToken == "" {
		return nil, nil
	}

	return &WhatsAppSender{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		accountSID: c.TwilioAccountSID,
		authToken:  c.TwilioAuthToken,
		from:       c.TwilioWhatsAppFrom,
		baseURL:    "https://api.twilio.com",
	}, nil
}

// SendMessage gửi một tin nhắn WhatsApp đến số điện thoại (dạng quốc tế, ví dụ +84912345678)
func (s *WhatsAppSender) SendMessage(ctx context.Context, toPhone string, message string) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, s.accountSID)

	form := url.Values{}
	form.Set("From", s.from)
	form.Set("To", "whatsapp:"+strings.TrimPrefix(toPhone, "whatsapp:"))
	form.Set("Body", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build twilio request: %w", err)
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call twilio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("twilio trả về status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// DeliverableMessage dựng nội dung tin nhắn WhatsApp báo bài đăng mới
func DeliverableMessage(campaignTitle string, influencerName string, submitted int, required int) string {
	return fmt.Sprintf("KOL Market: %s vừa nộp bài cho chiến dịch \"%s\" (%d/%d bài).",
		influencerName, campaignTitle, submitted, required)
}
