// Package router đăng ký các route thuộc domain Account: Brand, Influencer, Admin.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	accounthdl "kol_market/internal/api/account/handler"
	accountsvc "kol_market/internal/api/account/service"
	"kol_market/internal/api/middleware"
	apirouter "kol_market/internal/api/router"
	"kol_market/internal/notification/channels"
	"kol_market/internal/storage"
)

// profileUpdateConfig chỉ bật cập nhật theo id (chủ tài khoản hoặc admin).
var profileUpdateConfig = apirouter.CRUDConfig{UpdById: true}

// adminDeleteConfig chỉ bật xoá theo id (admin).
var adminDeleteConfig = apirouter.CRUDConfig{DelById: true}

// Register trả về hàm đăng ký các route account lên v1.
// email và uploader có thể nil khi kênh tương ứng chưa được cấu hình.
func Register(email *channels.EmailSender, uploader storage.Uploader) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		auth := middleware.AuthMiddleware()
		adminOnly := []fiber.Handler{auth, middleware.RequireRoles(middleware.RoleAdmin)}
		authed := []fiber.Handler{auth}

		// Brand
		brandService, err := accountsvc.NewBrandService(email)
		if err != nil {
			return fmt.Errorf("create brand service: %w", err)
		}
		brandHandler, err := accounthdl.NewBrandHandler(brandService)
		if err != nil {
			return fmt.Errorf("create brand handler: %w", err)
		}
		v1.Post("/brands/register", brandHandler.HandleRegister)
		r.RegisterCRUDRoutes(v1, "/brands", brandHandler, apirouter.ReadOnlyConfig, authed)
		r.RegisterCRUDRoutes(v1, "/brands", brandHandler, profileUpdateConfig, []fiber.Handler{auth, middleware.RequireSelfOrAdmin("id")})
		r.RegisterCRUDRoutes(v1, "/brands", brandHandler, adminDeleteConfig, adminOnly)

		// Influencer
		influencerService, err := accountsvc.NewInfluencerService(email)
		if err != nil {
			return fmt.Errorf("create influencer service: %w", err)
		}
		influencerHandler, err := accounthdl.NewInfluencerHandler(influencerService, uploader)
		if err != nil {
			return fmt.Errorf("create influencer handler: %w", err)
		}
		v1.Post("/influencers/createInfluencer", influencerHandler.HandleCreateInfluencer)
		r.RegisterCRUDRoutes(v1, "/influencers", influencerHandler, apirouter.ReadOnlyConfig, authed)
		r.RegisterCRUDRoutes(v1, "/influencers", influencerHandler, profileUpdateConfig, []fiber.Handler{auth, middleware.RequireSelfOrAdmin("id")})
		r.RegisterCRUDRoutes(v1, "/influencers", influencerHandler, adminDeleteConfig, adminOnly)

		// Admin
		adminService, err := accountsvc.NewAdminService()
		if err != nil {
			return fmt.Errorf("create admin service: %w", err)
		}
		adminHandler, err := accounthdl.NewAdminHandler(adminService)
		if err != nil {
			return fmt.Errorf("create admin handler: %w", err)
		}
		apirouter.RegisterRouteWithMiddleware(v1, "/admins", "POST", "/register", adminOnly, adminHandler.HandleRegister)
		r.RegisterCRUDRoutes(v1, "/admins", adminHandler, apirouter.ReadOnlyConfig, adminOnly)
		r.RegisterCRUDRoutes(v1, "/admins", adminHandler, profileUpdateConfig, adminOnly)
		r.RegisterCRUDRoutes(v1, "/admins", adminHandler, adminDeleteConfig, adminOnly)

		return nil
	}
}
