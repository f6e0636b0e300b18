// Package router đăng ký các route thuộc domain Payment: xác minh thanh toán
// qua Flutterwave và tra cứu trạng thái.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"kol_market/internal/api/middleware"
	paymenthdl "kol_market/internal/api/payment/handler"
	paymentsvc "kol_market/internal/api/payment/service"
	apirouter "kol_market/internal/api/router"
)

// Register trả về hàm đăng ký các route payment lên v1.
// gateway có thể nil khi Flutterwave chưa được cấu hình.
func Register(gateway paymentsvc.Gateway) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		paymentService, err := paymentsvc.NewPaymentService(gateway)
		if err != nil {
			return fmt.Errorf("create payment service: %w", err)
		}
		paymentHandler, err := paymenthdl.NewPaymentHandler(paymentService)
		if err != nil {
			return fmt.Errorf("create payment handler: %w", err)
		}

		auth := middleware.AuthMiddleware()
		brandOnly := []fiber.Handler{auth, middleware.RequireRoles(middleware.RoleBrand)}
		brandOrAdmin := []fiber.Handler{auth, middleware.RequireRoles(middleware.RoleBrand, middleware.RoleAdmin)}

		prefix := "/payment"
		apirouter.RegisterRouteWithMiddleware(v1, prefix, "POST", "/verify-payment", brandOnly, paymentHandler.HandleVerifyPayment)
		apirouter.RegisterRouteWithMiddleware(v1, prefix, "GET", "/get-status", brandOrAdmin, paymentHandler.HandleGetStatus)

		return nil
	}
}
