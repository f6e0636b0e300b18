package deliverablehdl

import (
	"fmt"

	basehdl "kol_market/internal/api/base/handler"
	campmodels "kol_market/internal/api/campaign/models"
	deliverabledto "kol_market/internal/api/deliverable/dto"
	deliverablesvc "kol_market/internal/api/deliverable/service"
	"kol_market/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeliverableHandler xử lý các request nộp bài và lưu nháp deliverable
type DeliverableHandler struct {
	*basehdl.BaseHandler[campmodels.Campaign, deliverabledto.SubmitDeliverablesInput, deliverabledto.UpdateDeliverableInput]
	deliverableService *deliverablesvc.DeliverableService
}

// NewDeliverableHandler tạo mới DeliverableHandler
func NewDeliverableHandler(deliverableService *deliverablesvc.DeliverableService) (*DeliverableHandler, error) {
	if deliverableService == nil {
		return nil, fmt.Errorf("deliverable service is required")
	}
	return &DeliverableHandler{
		BaseHandler:        basehdl.NewBaseHandler[campmodels.Campaign, deliverabledto.SubmitDeliverablesInput, deliverabledto.UpdateDeliverableInput](deliverableService),
		deliverableService: deliverableService,
	}, nil
}

// requestContext lấy influencer id từ token và campaign id từ URL
func requestContext(c fiber.Ctx) (campaignID primitive.ObjectID, influencerID primitive.ObjectID, err error) {
	accountID, _ := c.Locals("account_id").(string)
	influencerID, err = primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, common.ErrTokenInvalid
	}

	campaignID, err = primitive.ObjectIDFromHex(c.Params("campaignId"))
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat,
			"ID chiến dịch không hợp lệ", common.StatusBadRequest, nil)
	}
	return campaignID, influencerID, nil
}

// HandleSubmitDeliverables influencer nộp bài cho chiến dịch
func (h *DeliverableHandler) HandleSubmitDeliverables(c fiber.Ctx) error {
	campaignID, influencerID, err := requestContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	var input deliverabledto.SubmitDeliverablesInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	status, err := h.deliverableService.SubmitDeliverables(c.Context(), campaignID, influencerID, &input)
	h.HandleResponse(c, status, err)
	return nil
}

// HandleUpdateDeliverable influencer sửa bài đã nộp chưa được duyệt
func (h *DeliverableHandler) HandleUpdateDeliverable(c fiber.Ctx) error {
	campaignID, influencerID, err := requestContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	jobID := c.Params("jobId")
	if jobID == "" {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput,
			"Thiếu ID bài đã nộp", common.StatusBadRequest, nil))
		return nil
	}

	var input deliverabledto.UpdateDeliverableInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	campaign, err := h.deliverableService.UpdateDeliverable(c.Context(), campaignID, influencerID, jobID, &input)
	h.HandleResponse(c, campaign, err)
	return nil
}

// HandleGetStatus trả về tiến độ nộp bài của influencer
func (h *DeliverableHandler) HandleGetStatus(c fiber.Ctx) error {
	campaignID, influencerID, err := requestContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	status, err := h.deliverableService.GetStatus(c.Context(), campaignID, influencerID)
	h.HandleResponse(c, status, err)
	return nil
}

// HandleStashDeliverables lưu nháp deliverable
func (h *DeliverableHandler) HandleStashDeliverables(c fiber.Ctx) error {
	campaignID, influencerID, err := requestContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	var input deliverabledto.StashDeliverablesInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	stashed, err := h.deliverableService.StashDeliverables(c.Context(), campaignID, influencerID, &input)
	h.HandleResponse(c, stashed, err)
	return nil
}

// HandleGetStashedDeliverables trả về toàn bộ nháp của influencer
func (h *DeliverableHandler) HandleGetStashedDeliverables(c fiber.Ctx) error {
	campaignID, influencerID, err := requestContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	stashed, err := h.deliverableService.GetStashedDeliverables(c.Context(), campaignID, influencerID)
	h.HandleResponse(c, stashed, err)
	return nil
}

// HandleGetStashById trả về một nháp theo stashId
func (h *DeliverableHandler) HandleGetStashById(c fiber.Ctx) error {
	campaignID, influencerID, err := requestContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	stash, err := h.deliverableService.GetStashByID(c.Context(), campaignID, influencerID, c.Params("stashId"))
	h.HandleResponse(c, stash, err)
	return nil
}

// HandleDeleteStash xóa một nháp theo stashId
func (h *DeliverableHandler) HandleDeleteStash(c fiber.Ctx) error {
	campaignID, influencerID, err := requestContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	err = h.deliverableService.DeleteStash(c.Context(), campaignID, influencerID, c.Params("stashId"))
	h.HandleResponse(c, nil, err)
	return nil
}

// HandleClearStash xóa toàn bộ nháp của influencer trong chiến dịch
func (h *DeliverableHandler) HandleClearStash(c fiber.Ctx) error {
	campaignID, influencerID, err := requestContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	err = h.deliverableService.ClearStash(c.Context(), campaignID, influencerID)
	h.HandleResponse(c, nil, err)
	return nil
}
