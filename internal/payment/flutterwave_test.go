// Package payment - Test phân loại lỗi của client verify giao dịch Flutterwave.
package payment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"kol_market/config"
	"kol_market/internal/common"
)

func newTestClient(serverURL string) *Client {
	return NewClient(&config.Configuration{
		FlutterwaveSecretKey: "FLWSECK_TEST",
		FlutterwaveBaseURL:   serverURL,
	})
}

func TestNewClientWithoutSecretKey(t *testing.T) {
	if c := NewClient(&config.Configuration{}); c != nil {
		t.Error("NewClient không có secret key phải trả về nil")
	}
}

func TestVerifyTransactionSuccess(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "success",
			"message": "Transaction fetched successfully",
			"data": {
				"id": 1234567,
				"tx_ref": "tx-001",
				"flw_ref": "FLW-MOCK-REF",
				"amount": 150000,
				"currency": "NGN",
				"status": "successful",
				"payment_type": "card",
				"created_at": "2025-01-15T10:30:00.000Z",
				"customer": {"email": "brand@example.com"}
			}
		}`))
	}))
	defer server.Close()

	data, err := newTestClient(server.URL).VerifyTransaction(context.Background(), "1234567")
	if err != nil {
		t.Fatalf("VerifyTransaction lỗi: %v", err)
	}

	if gotAuth != "Bearer FLWSECK_TEST" {
		t.Errorf("Authorization = %q, muốn Bearer FLWSECK_TEST", gotAuth)
	}
	if gotPath != "/v3/transactions/1234567/verify" {
		t.Errorf("path = %q, muốn /v3/transactions/1234567/verify", gotPath)
	}
	if data.Status != "successful" {
		t.Errorf("data.Status = %q, muốn successful", data.Status)
	}
	if data.TxRef != "tx-001" {
		t.Errorf("data.TxRef = %q, muốn tx-001", data.TxRef)
	}
	if data.Amount != 150000 {
		t.Errorf("data.Amount = %v, muốn 150000", data.Amount)
	}
}

func TestVerifyTransactionClassifiesErrors(t *testing.T) {
	cases := []struct {
		name       string
		httpStatus int
		body       string
		wantCode   common.ErrorCode
		wantStatus int
	}{
		{"404 giao dịch không tồn tại", http.StatusNotFound, `{"status":"error"}`, common.ErrCodePaymentNotFound, common.StatusNotFound},
		{"401 sai secret key", http.StatusUnauthorized, `{"status":"error"}`, common.ErrCodePaymentAuth, common.StatusBadGateway},
		{"403 bị chặn", http.StatusForbidden, `{"status":"error"}`, common.ErrCodePaymentAuth, common.StatusBadGateway},
		{"500 lỗi gateway", http.StatusInternalServerError, `oops`, common.ErrCodePaymentGateway, common.StatusBadGateway},
		{"body không phải JSON", http.StatusOK, `<html>`, common.ErrCodePaymentGateway, common.StatusBadGateway},
		{"status không phải success", http.StatusOK, `{"status":"error","message":"No transaction was found"}`, common.ErrCodePaymentGateway, common.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.httpStatus)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).VerifyTransaction(context.Background(), "txid")
			if err == nil {
				t.Fatal("muốn lỗi, nhận nil")
			}

			var customErr *common.Error
			if !errors.As(err, &customErr) {
				t.Fatalf("muốn *common.Error, nhận %T", err)
			}
			if customErr.Code != tc.wantCode {
				t.Errorf("Code = %v, muốn %v", customErr.Code, tc.wantCode)
			}
			if customErr.StatusCode != tc.wantStatus {
				t.Errorf("StatusCode = %d, muốn %d", customErr.StatusCode, tc.wantStatus)
			}
		})
	}
}

func TestVerifyTransactionConnectionRefused(t *testing.T) {
	// Server đóng ngay để mô phỏng gateway không kết nối được
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newTestClient(server.URL).VerifyTransaction(context.Background(), "txid")
	if err == nil {
		t.Fatal("muốn lỗi kết nối, nhận nil")
	}

	var customErr *common.Error
	if !errors.As(err, &customErr) {
		t.Fatalf("muốn *common.Error, nhận %T", err)
	}
	if customErr.StatusCode != common.StatusBadGateway {
		t.Errorf("StatusCode = %d, muốn %d", customErr.StatusCode, common.StatusBadGateway)
	}
}
