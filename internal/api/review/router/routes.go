// Package router đăng ký các route thuộc domain Review: thread bình luận
// trên các bài đã nộp.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"kol_market/internal/api/middleware"
	reviewhdl "kol_market/internal/api/review/handler"
	reviewsvc "kol_market/internal/api/review/service"
	apirouter "kol_market/internal/api/router"
)

// Register trả về hàm đăng ký các route review lên v1
func Register() apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		reviewService, err := reviewsvc.NewReviewService()
		if err != nil {
			return fmt.Errorf("create review service: %w", err)
		}
		reviewHandler, err := reviewhdl.NewReviewHandler(reviewService)
		if err != nil {
			return fmt.Errorf("create review handler: %w", err)
		}

		authed := []fiber.Handler{
			middleware.AuthMiddleware(),
			middleware.RequireRoles(middleware.RoleBrand, middleware.RoleInfluencer),
		}

		prefix := "/reviews"
		apirouter.RegisterRouteWithMiddleware(v1, prefix, "POST", "/:campaignId/jobs/:jobId/reviews", authed, reviewHandler.HandleAddReview)
		apirouter.RegisterRouteWithMiddleware(v1, prefix, "PATCH", "/:campaignId/jobs/:jobId/reviews/:reviewId", authed, reviewHandler.HandleUpdateReview)
		apirouter.RegisterRouteWithMiddleware(v1, prefix, "DELETE", "/:campaignId/jobs/:jobId/reviews/:reviewId", authed, reviewHandler.HandleDeleteReview)

		return nil
	}
}
