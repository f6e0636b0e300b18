package main

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"kol_market/internal/common"
)

// TestRecoverTraVeEnvelopeChuan kiểm tra panic trong handler được trả về
// theo envelope chuẩn của API thay vì format riêng.
func TestRecoverTraVeEnvelopeChuan(t *testing.T) {
	app := fiber.New()
	app.Use(recover.New(recover.Config{
		EnableStackTrace:  true,
		StackTraceHandler: recoverStackTraceHandler,
	}))
	app.Get("/boom", func(c fiber.Ctx) error {
		panic("hỏng bất ngờ")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	if err != nil {
		t.Fatalf("app.Test trả về lỗi không mong muốn: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Errorf("StatusCode = %d, mong muốn %d", resp.StatusCode, fiber.StatusInternalServerError)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Đọc body thất bại: %v", err)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("Body không phải JSON: %v", err)
	}

	if body["code"] != common.ErrCodeInternalServer.Code {
		t.Errorf("code = %v, mong muốn %v", body["code"], common.ErrCodeInternalServer.Code)
	}
	if body["message"] != "Internal Server Error" {
		t.Errorf("message = %v, mong muốn Internal Server Error", body["message"])
	}
	if body["status"] != "error" {
		t.Errorf("status = %v, mong muốn error", body["status"])
	}
	if _, ok := body["success"]; ok {
		t.Error("Envelope không được chứa trường success")
	}
}
