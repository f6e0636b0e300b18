package campaignhdl

import (
	"fmt"

	basehdl "kol_market/internal/api/base/handler"
	campaigndto "kol_market/internal/api/campaign/dto"
	campmodels "kol_market/internal/api/campaign/models"
	campaignsvc "kol_market/internal/api/campaign/service"
	"kol_market/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CampaignHandler xử lý các request liên quan đến chiến dịch
type CampaignHandler struct {
	*basehdl.BaseHandler[campmodels.Campaign, campaigndto.CampaignCreateInput, campaigndto.CampaignUpdateInput]
	campaignService *campaignsvc.CampaignService
}

// NewCampaignHandler tạo mới CampaignHandler
func NewCampaignHandler(campaignService *campaignsvc.CampaignService) (*CampaignHandler, error) {
	if campaignService == nil {
		return nil, fmt.Errorf("campaign service is required")
	}

	hdl := &CampaignHandler{
		BaseHandler:     basehdl.NewBaseHandler[campmodels.Campaign, campaigndto.CampaignCreateInput, campaigndto.CampaignUpdateInput](campaignService),
		campaignService: campaignService,
	}
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// callerFromContext lấy account id (dạng ObjectID) và role của caller từ context
func callerFromContext(c fiber.Ctx) (primitive.ObjectID, string, error) {
	accountID, _ := c.Locals("account_id").(string)
	role, _ := c.Locals("account_role").(string)
	if accountID == "" {
		return primitive.NilObjectID, "", common.ErrTokenMissing
	}
	objID, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return primitive.NilObjectID, "", common.ErrTokenInvalid
	}
	return objID, role, nil
}

// campaignIDFromParams parse param :id thành ObjectID
func campaignIDFromParams(c fiber.Ctx) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat,
			"ID chiến dịch không hợp lệ", common.StatusBadRequest, nil)
	}
	return objID, nil
}

// HandleCreateCampaign brand tạo chiến dịch mới
func (h *CampaignHandler) HandleCreateCampaign(c fiber.Ctx) error {
	brandID, _, err := callerFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	var input campaigndto.CampaignCreateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	campaign, err := h.campaignService.CreateCampaign(c.Context(), brandID, &input)
	h.HandleResponse(c, campaign, err)
	return nil
}

// HandleUpdateCampaign cập nhật chiến dịch (brand sở hữu hoặc admin)
func (h *CampaignHandler) HandleUpdateCampaign(c fiber.Ctx) error {
	callerID, role, err := callerFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	campaignID, err := campaignIDFromParams(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	var input campaigndto.CampaignUpdateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	campaign, err := h.campaignService.UpdateCampaign(c.Context(), campaignID, callerID.Hex(), role, &input)
	h.HandleResponse(c, campaign, err)
	return nil
}

// HandleAssignInfluencers admin gán influencer vào chiến dịch
func (h *CampaignHandler) HandleAssignInfluencers(c fiber.Ctx) error {
	campaignID, err := campaignIDFromParams(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	var input campaigndto.AssignInfluencersInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	result, err := h.campaignService.AssignInfluencers(c.Context(), campaignID, &input)
	h.HandleResponse(c, result, err)
	return nil
}

// HandleRespond influencer phản hồi lời mời tham gia chiến dịch
func (h *CampaignHandler) HandleRespond(c fiber.Ctx) error {
	influencerID, _, err := callerFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	campaignID, err := campaignIDFromParams(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	var input campaigndto.RespondInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	campaign, err := h.campaignService.RespondToAssignment(c.Context(), campaignID, influencerID, input.Status)
	h.HandleResponse(c, campaign, err)
	return nil
}
