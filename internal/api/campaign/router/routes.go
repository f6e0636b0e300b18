// Package router đăng ký các route thuộc domain Campaign: CRUD chiến dịch,
// gán influencer và phản hồi lời mời.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	campaignhdl "kol_market/internal/api/campaign/handler"
	campaignsvc "kol_market/internal/api/campaign/service"
	"kol_market/internal/api/middleware"
	apirouter "kol_market/internal/api/router"
	"kol_market/internal/notification/channels"
)

// Register trả về hàm đăng ký các route campaign lên v1
func Register(email *channels.EmailSender) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		campaignService, err := campaignsvc.NewCampaignService(email)
		if err != nil {
			return fmt.Errorf("create campaign service: %w", err)
		}
		campaignHandler, err := campaignhdl.NewCampaignHandler(campaignService)
		if err != nil {
			return fmt.Errorf("create campaign handler: %w", err)
		}

		auth := middleware.AuthMiddleware()
		authed := []fiber.Handler{auth}
		brandOnly := []fiber.Handler{auth, middleware.RequireRoles(middleware.RoleBrand)}
		influencerOnly := []fiber.Handler{auth, middleware.RequireRoles(middleware.RoleInfluencer)}
		adminOnly := []fiber.Handler{auth, middleware.RequireRoles(middleware.RoleAdmin)}

		apirouter.RegisterRouteWithMiddleware(v1, "/campaigns", "POST", "/", brandOnly, campaignHandler.HandleCreateCampaign)
		apirouter.RegisterRouteWithMiddleware(v1, "/campaigns", "GET", "/", authed, campaignHandler.FindWithPagination)
		apirouter.RegisterRouteWithMiddleware(v1, "/campaigns", "GET", "/:id", authed, campaignHandler.FindOneById)
		apirouter.RegisterRouteWithMiddleware(v1, "/campaigns", "PUT", "/:id", authed, campaignHandler.HandleUpdateCampaign)
		apirouter.RegisterRouteWithMiddleware(v1, "/campaigns", "DELETE", "/:id", adminOnly, campaignHandler.DeleteById)

		apirouter.RegisterRouteWithMiddleware(v1, "/campaigns", "POST", "/:id/assign-influencers", adminOnly, campaignHandler.HandleAssignInfluencers)
		apirouter.RegisterRouteWithMiddleware(v1, "/campaigns", "POST", "/:id/respond", influencerOnly, campaignHandler.HandleRespond)

		return nil
	}
}
