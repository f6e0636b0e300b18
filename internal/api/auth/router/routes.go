// Package router đăng ký các route thuộc domain Auth: đăng nhập, refresh,
// đặt lại mật khẩu và health check hệ thống.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"kol_market/config"
	authhdl "kol_market/internal/api/auth/handler"
	authsvc "kol_market/internal/api/auth/service"
	basehdl "kol_market/internal/api/base/handler"
	apirouter "kol_market/internal/api/router"
	"kol_market/internal/notification/channels"
)

// Register trả về hàm đăng ký các route auth lên v1.
// email có thể nil khi kênh email chưa được cấu hình (tắt gửi link reset).
func Register(cfg *config.Configuration, email *channels.EmailSender) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		authService, err := authsvc.NewAuthService(cfg, email)
		if err != nil {
			return fmt.Errorf("create auth service: %w", err)
		}
		authHandler, err := authhdl.NewAuthHandler(authService, cfg)
		if err != nil {
			return fmt.Errorf("create auth handler: %w", err)
		}

		auth := v1.Group("/auth")
		auth.Post("/login", authHandler.HandleLogin)
		auth.Post("/refresh", authHandler.HandleRefresh)
		auth.Post("/forgot-password", authHandler.HandleForgotPassword)
		auth.Post("/reset-password", authHandler.HandleResetPassword)

		systemHandler, err := basehdl.NewSystemHandler()
		if err != nil {
			return fmt.Errorf("create system handler: %w", err)
		}
		v1.Get("/system/health", systemHandler.HandleHealth)
		return nil
	}
}
