package paymenthdl

import (
	"fmt"

	basehdl "kol_market/internal/api/base/handler"
	campmodels "kol_market/internal/api/campaign/models"
	paymentdto "kol_market/internal/api/payment/dto"
	paymentsvc "kol_market/internal/api/payment/service"
	"kol_market/internal/common"
	"kol_market/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentHandler xử lý các request xác minh và tra cứu thanh toán
type PaymentHandler struct {
	*basehdl.BaseHandler[campmodels.Campaign, paymentdto.VerifyPaymentInput, paymentdto.VerifyPaymentInput]
	paymentService *paymentsvc.PaymentService
}

// NewPaymentHandler tạo mới PaymentHandler
func NewPaymentHandler(paymentService *paymentsvc.PaymentService) (*PaymentHandler, error) {
	if paymentService == nil {
		return nil, fmt.Errorf("payment service is required")
	}
	return &PaymentHandler{
		BaseHandler:    basehdl.NewBaseHandler[campmodels.Campaign, paymentdto.VerifyPaymentInput, paymentdto.VerifyPaymentInput](paymentService),
		paymentService: paymentService,
	}, nil
}

// callerFromContext lấy account id và role của caller từ Locals
func callerFromContext(c fiber.Ctx) (primitive.ObjectID, string, error) {
	accountID, _ := c.Locals("account_id").(string)
	role, _ := c.Locals("account_role").(string)

	objID, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return primitive.NilObjectID, "", common.ErrTokenInvalid
	}
	return objID, role, nil
}

// HandleVerifyPayment brand xác minh thanh toán cho chiến dịch của mình
func (h *PaymentHandler) HandleVerifyPayment(c fiber.Ctx) error {
	brandID, _, err := callerFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	var input paymentdto.VerifyPaymentInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	campaignID, err := primitive.ObjectIDFromHex(input.CampaignID)
	if err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat,
			"ID chiến dịch không hợp lệ", common.StatusBadRequest, nil))
		return nil
	}

	campaign, err := h.paymentService.VerifyPayment(c.Context(), campaignID, brandID, input.TransactionID)
	if err == nil {
		logger.LogAction("payment_verify", c, map[string]interface{}{
			"campaign_id":    input.CampaignID,
			"transaction_id": input.TransactionID,
		})
	}
	h.HandleResponse(c, campaign, err)
	return nil
}

// HandleGetStatus tra cứu trạng thái thanh toán của chiến dịch
func (h *PaymentHandler) HandleGetStatus(c fiber.Ctx) error {
	callerID, role, err := callerFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	campaignID, err := primitive.ObjectIDFromHex(c.Query("campaignId"))
	if err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat,
			"ID chiến dịch không hợp lệ", common.StatusBadRequest, nil))
		return nil
	}

	status, err := h.paymentService.GetStatus(c.Context(), campaignID, callerID, role)
	h.HandleResponse(c, status, err)
	return nil
}
