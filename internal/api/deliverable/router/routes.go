// Package router đăng ký các route thuộc domain Deliverable: nộp bài,
// tiến độ và lưu nháp.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	deliverablehdl "kol_market/internal/api/deliverable/handler"
	deliverablesvc "kol_market/internal/api/deliverable/service"
	"kol_market/internal/api/middleware"
	apirouter "kol_market/internal/api/router"
	"kol_market/internal/notification/channels"
)

// Register trả về hàm đăng ký các route deliverable lên v1
func Register(email *channels.EmailSender, whatsapp *channels.WhatsAppSender, adminEmail string) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		deliverableService, err := deliverablesvc.NewDeliverableService(email, whatsapp, adminEmail)
		if err != nil {
			return fmt.Errorf("create deliverable service: %w", err)
		}
		deliverableHandler, err := deliverablehdl.NewDeliverableHandler(deliverableService)
		if err != nil {
			return fmt.Errorf("create deliverable handler: %w", err)
		}

		influencerOnly := []fiber.Handler{
			middleware.AuthMiddleware(),
			middleware.RequireRoles(middleware.RoleInfluencer),
		}

		prefix := "/deliverables"
		apirouter.RegisterRouteWithMiddleware(v1, prefix, "POST", "/:campaignId/deliverables", influencerOnly, deliverableHandler.HandleSubmitDeliverables)
		apirouter.RegisterRouteWithMiddleware(v1, prefix, "PUT", "/:campaignId/deliverables/:jobId", influencerOnly, deliverableHandler.HandleUpdateDeliverable)
		apirouter.RegisterRouteWithMiddleware(v1, prefix, "GET", "/:campaignId/status", influencerOnly, deliverableHandler.HandleGetStatus)

		apirouter.RegisterRouteWithMiddleware(v1, prefix, "POST", "/:campaignId/stash", influencerOnly, deliverableHandler.HandleStashDeliverables)
		apirouter.RegisterRouteWithMiddleware(v1, prefix, "GET", "/:campaignId/stash", influencerOnly, deliverableHandler.HandleGetStashedDeliverables)
		apirouter.RegisterRouteWithMiddleware(v1, prefix, "GET", "/:campaignId/stash/:stashId", influencerOnly, deliverableHandler.HandleGetStashById)
		apirouter.RegisterRouteWithMiddleware(v1, prefix, "DELETE", "/:campaignId/stash/:stashId", influencerOnly, deliverableHandler.HandleDeleteStash)
		apirouter.RegisterRouteWithMiddleware(v1, prefix, "DELETE", "/:campaignId/stash", influencerOnly, deliverableHandler.HandleClearStash)

		return nil
	}
}
