// Package payment chứa client gọi cổng thanh toán Flutterwave.
// Flutterwave không có SDK Go chính thức nên client là một HTTP client
// mỏng với timeout cố định, cùng kiểu với các kênh outbound khác.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"kol_market/config"
	"kol_market/internal/common"
)

// verifyTimeout là timeout cho một lần gọi verify giao dịch
const verifyTimeout = 15 * time.Second

// Customer là thông tin khách hàng trong giao dịch đã xác minh
type Customer struct {
	Email string `json:"email"`
}

// VerifyData là phần data trong response verify của Flutterwave
type VerifyData struct {
	ID          int64    `json:"id"`
	TxRef       string   `json:"tx_ref"`
	FlwRef      string   `json:"flw_ref"`
	Amount      float64  `json:"amount"`
	Currency    string   `json:"currency"`
	Status      string   `json:"status"`
	PaymentType string   `json:"payment_type"`
	CreatedAt   string   `json:"created_at"`
	Customer    Customer `json:"customer"`
}

// verifyResponse là envelope response của Flutterwave
type verifyResponse struct {
	Status  string     `json:"status"`
	Message string     `json:"message"`
	Data    VerifyData `json:"data"`
}

// Client gọi API Flutterwave để xác minh giao dịch
type Client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
}

// NewClient tạo client Flutterwave từ config.
// Trả về nil khi secret key chưa được cấu hình (tắt xác minh thanh toán).
func NewClient(c *config.Configuration) *Client {
	if c.FlutterwaveSecretKey == "" {
		return nil
	}
	return &Client{
		httpClient: &http.Client{Timeout: verifyTimeout},
		baseURL:    c.FlutterwaveBaseURL,
		secretKey:  c.FlutterwaveSecretKey,
	}
}

// VerifyTransaction gọi GET /v3/transactions/{id}/verify và phân loại lỗi gateway:
// 404 -> giao dịch không tồn tại, 401/403 -> sai secret key,
// lỗi mạng/timeout -> 502 network, còn lại -> 502 gateway.
func (c *Client) VerifyTransaction(ctx context.Context, transactionID string) (*VerifyData, error) {
	endpoint := fmt.Sprintf("%s/v3/transactions/%s/verify", c.baseURL, url.PathEscape(transactionID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, common.NewError(common.ErrCodePaymentGateway,
			"Không tạo được request đến cổng thanh toán", common.StatusBadGateway, nil)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, common.NewError(common.ErrCodePaymentGateway,
				"Cổng thanh toán không phản hồi (timeout)", common.StatusBadGateway, nil)
		}
		return nil, common.NewError(common.ErrCodePaymentGateway,
			"Không kết nối được đến cổng thanh toán", common.StatusBadGateway, nil)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, common.NewError(common.ErrCodePaymentNotFound,
			"Không tìm thấy giao dịch trên cổng thanh toán", common.StatusNotFound, nil)
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, common.NewError(common.ErrCodePaymentAuth,
			"Xác thực với cổng thanh toán thất bại", common.StatusBadGateway, nil)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, common.NewError(common.ErrCodePaymentGateway,
			fmt.Sprintf("Cổng thanh toán trả về lỗi %d", resp.StatusCode), common.StatusBadGateway, string(body))
	}

	var parsed verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, common.NewError(common.ErrCodePaymentGateway,
			"Response của cổng thanh toán không hợp lệ", common.StatusBadGateway, nil)
	}

	if parsed.Status != "success" {
		return nil, common.NewError(common.ErrCodePaymentGateway,
			fmt.Sprintf("Cổng thanh toán từ chối: %s", parsed.Message), common.StatusBadGateway, nil)
	}
	return &parsed.Data, nil
}
