package campaignsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	accountsvc "kol_market/internal/api/account/service"
	basesvc "kol_market/internal/api/base/service"
	campaigndto "kol_market/internal/api/campaign/dto"
	campmodels "kol_market/internal/api/campaign/models"
	"kol_market/internal/api/middleware"
	"kol_market/internal/common"
	"kol_market/internal/global"
	"kol_market/internal/logger"
	"kol_market/internal/notification/channels"
	"kol_market/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CampaignService là cấu trúc chứa các phương thức liên quan đến chiến dịch
type CampaignService struct {
	*basesvc.BaseServiceMongoImpl[campmodels.Campaign]
	brandService      *accountsvc.BrandService
	influencerService *accountsvc.InfluencerService
	email             *channels.EmailSender
}

// NewCampaignService tạo mới CampaignService
func NewCampaignService(email *channels.EmailSender) (*CampaignService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Campaigns)
	if !exist {
		return nil, fmt.Errorf("failed to get campaigns collection: %v", common.ErrNotFound)
	}

	brandService, err := accountsvc.NewBrandService(nil)
	if err != nil {
		return nil, err
	}
	influencerService, err := accountsvc.NewInfluencerService(nil)
	if err != nil {
		return nil, err
	}

	return &CampaignService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[campmodels.Campaign](collection),
		brandService:         brandService,
		influencerService:    influencerService,
		email:                email,
	}, nil
}

// CreateCampaign tạo chiến dịch mới cho brand: trạng thái pending,
// chưa thanh toán, danh sách influencer rỗng
func (s *CampaignService) CreateCampaign(ctx context.Context, brandID primitive.ObjectID, input *campaigndto.CampaignCreateInput) (campmodels.Campaign, error) {
	var zero campmodels.Campaign

	if input.InfluencersMin > input.InfluencersMax {
		return zero, common.NewError(common.ErrCodeValidationInput,
			"Số influencer tối thiểu không được lớn hơn tối đa", common.StatusBadRequest, nil)
	}

	campaign := campmodels.Campaign{
		BrandID:        brandID,
		Title:          input.Title,
		Description:    input.Description,
		Platforms:      input.Platforms,
		InfluencersMin: input.InfluencersMin,
		InfluencersMax: input.InfluencersMax,
		Pricing: campmodels.Pricing{
			Currency:      input.Pricing.Currency,
			TotalBudget:   input.Pricing.TotalBudget,
			PerInfluencer: input.Pricing.PerInfluencer,
			PlatformFee:   input.Pricing.PlatformFee,
		},
		PostFrequency:       input.PostFrequency,
		PostCount:           input.PostCount,
		Status:              campmodels.CampaignStatusPending,
		PaymentStatus:       campmodels.PaymentStatusUnpaid,
		AssignedInfluencers: []campmodels.AssignedInfluencer{},
	}

	created, err := s.InsertOne(ctx, campaign)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return created, nil
}

// UpdateCampaign cập nhật chiến dịch. Chỉ brand sở hữu hoặc admin được phép;
// assignment và thông tin thanh toán không đổi được qua đường này.
func (s *CampaignService) UpdateCampaign(ctx context.Context, campaignID primitive.ObjectID, callerID string, callerRole string, input *campaigndto.CampaignUpdateInput) (campmodels.Campaign, error) {
	var zero campmodels.Campaign

	campaign, err := s.FindOneById(ctx, campaignID)
	if err != nil {
		return zero, err
	}

	if callerRole != middleware.RoleAdmin && campaign.BrandID.Hex() != callerID {
		return zero, common.ErrForbidden
	}

	set := bson.M{}
	if input.Title != "" {
		set["title"] = input.Title
	}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if len(input.Platforms) > 0 {
		set["platforms"] = input.Platforms
	}

	newMin := campaign.InfluencersMin
	newMax := campaign.InfluencersMax
	if input.InfluencersMin > 0 {
		newMin = input.InfluencersMin
	}
	if input.InfluencersMax > 0 {
		newMax = input.InfluencersMax
	}
	if newMin > newMax {
		return zero, common.NewError(common.ErrCodeValidationInput,
			"Số influencer tối thiểu không được lớn hơn tối đa", common.StatusBadRequest, nil)
	}
	if newMax < len(campaign.AssignedInfluencers) {
		return zero, common.NewError(common.ErrCodeBusinessState,
			"Không thể giảm tối đa xuống dưới số influencer đã gán", common.StatusBadRequest, nil)
	}
	if newMin != campaign.InfluencersMin {
		set["influencersMin"] = newMin
	}
	if newMax != campaign.InfluencersMax {
		set["influencersMax"] = newMax
	}

	if input.Pricing != nil {
		set["pricing"] = campmodels.Pricing{
			Currency:      input.Pricing.Currency,
			TotalBudget:   input.Pricing.TotalBudget,
			PerInfluencer: input.Pricing.PerInfluencer,
			PlatformFee:   input.Pricing.PlatformFee,
		}
	}
	if input.PostFrequency != "" {
		set["postFrequency"] = input.PostFrequency
	}
	if input.PostCount > 0 {
		set["postCount"] = input.PostCount
	}
	if input.Status != "" {
		set["status"] = input.Status
	}

	if len(set) == 0 {
		return campaign, nil
	}

	return s.UpdateById(ctx, campaignID, &basesvc.UpdateData{Set: set})
}

// AssignResult là kết quả gán influencer vào chiến dịch
type AssignResult struct {
	Campaign       campmodels.Campaign             `json:"campaign"`
	NewAssignments []campmodels.AssignedInfluencer `json:"newAssignments"`
	TotalAssigned  int                             `json:"totalAssigned"`
	MinimumMet     bool                            `json:"minimumMet"`
}

// parseInfluencerIDs validate định dạng và khử trùng lặp danh sách id đầu vào
func parseInfluencerIDs(ids []string) ([]primitive.ObjectID, error) {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	result := make([]primitive.ObjectID, 0, len(ids))
	for _, raw := range ids {
		objID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat,
				fmt.Sprintf("ID influencer không hợp lệ: %s", raw), common.StatusBadRequest, nil)
		}
		if seen[objID] {
			continue
		}
		seen[objID] = true
		result = append(result, objID)
	}
	return result, nil
}

// filterNewAssignees loại các id đã được gán trong campaign
func filterNewAssignees(existing []campmodels.AssignedInfluencer, ids []primitive.ObjectID) []primitive.ObjectID {
	assigned := make(map[primitive.ObjectID]bool, len(existing))
	for _, a := range existing {
		assigned[a.InfluencerID] = true
	}

	result := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if !assigned[id] {
			result = append(result, id)
		}
	}
	return result
}

// capacityError trả về lỗi vượt giới hạn influencer của chiến dịch
func capacityError(max int, current int) error {
	return common.NewError(common.ErrCodeBusinessState,
		fmt.Sprintf("Cannot assign more influencers: limit is %d, currently %d assigned", max, current),
		common.StatusBadRequest, nil)
}

// AssignInfluencers gán danh sách influencer vào chiến dịch (admin).
// Ghi bằng một update có điều kiện trên kích thước mảng để hai request
// đồng thời không thể vượt giới hạn influencersMax.
func (s *CampaignService) AssignInfluencers(ctx context.Context, campaignID primitive.ObjectID, input *campaigndto.AssignInfluencersInput) (*AssignResult, error) {
	ids, err := parseInfluencerIDs(input.InfluencerIDs)
	if err != nil {
		return nil, err
	}

	// Kiểm tra influencer tồn tại
	count, err := s.influencerService.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if int(count) != len(ids) {
		return nil, common.NewError(common.ErrCodeDatabaseQuery,
			"Một hoặc nhiều influencer không tồn tại", common.StatusNotFound, nil)
	}

	campaign, err := s.FindOneById(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	newIDs := filterNewAssignees(campaign.AssignedInfluencers, ids)
	current := len(campaign.AssignedInfluencers)

	if len(newIDs) == 0 {
		return &AssignResult{
			Campaign:       campaign,
			NewAssignments: []campmodels.AssignedInfluencer{},
			TotalAssigned:  current,
			MinimumMet:     current >= campaign.InfluencersMin,
		}, nil
	}

	if current+len(newIDs) > campaign.InfluencersMax {
		return nil, capacityError(campaign.InfluencersMax, current)
	}

	now := time.Now().UnixMilli()
	newAssignments := make([]campmodels.AssignedInfluencer, 0, len(newIDs))
	for _, id := range newIDs {
		newAssignments = append(newAssignments, campmodels.AssignedInfluencer{
			InfluencerID:     id,
			AcceptanceStatus: campmodels.AcceptanceStatusPending,
			CompletionStatus: campmodels.CompletionPending,
			AssignedAt:       now,
		})
	}

	// Update atomic: chỉ push khi size mảng sau khi thêm vẫn <= influencersMax.
	// Không match nghĩa là một request đồng thời đã chiếm chỗ trước.
	filter := bson.M{
		"_id": campaignID,
		"$expr": bson.M{
			"$lte": bson.A{
				bson.M{"$add": bson.A{bson.M{"$size": "$assignedInfluencers"}, len(newAssignments)}},
				"$influencersMax",
			},
		},
	}
	update := bson.M{
		"$push": bson.M{"assignedInfluencers": bson.M{"$each": newAssignments}},
		"$set":  bson.M{"updatedAt": now},
	}

	updated, err := s.FindOneAndUpdateRaw(ctx, filter, update, options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, capacityError(campaign.InfluencersMax, current)
		}
		return nil, err
	}

	// Lần gán đầu tiên chuyển chiến dịch pending -> approved
	if updated.Status == campmodels.CampaignStatusPending {
		approved, err := s.FindOneAndUpdateRaw(ctx,
			bson.M{"_id": campaignID, "status": campmodels.CampaignStatusPending},
			bson.M{"$set": bson.M{"status": campmodels.CampaignStatusApproved, "updatedAt": time.Now().UnixMilli()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After))
		if err == nil {
			updated = approved
		}
	}

	s.notifyBrandAssigned(ctx, &updated, len(newAssignments))

	return &AssignResult{
		Campaign:       updated,
		NewAssignments: newAssignments,
		TotalAssigned:  len(updated.AssignedInfluencers),
		MinimumMet:     len(updated.AssignedInfluencers) >= updated.InfluencersMin,
	}, nil
}

// notifyBrandAssigned gửi email thông báo cho brand khi có influencer mới được gán
func (s *CampaignService) notifyBrandAssigned(ctx context.Context, campaign *campmodels.Campaign, assignedCount int) {
	if s.email == nil {
		return
	}

	brand, err := s.brandService.FindOneById(ctx, campaign.BrandID)
	if err != nil {
		logger.GetDeliveryLogger().WithError(err).
			WithField("brandId", campaign.BrandID.Hex()).
			Warn("Không tìm thấy brand để gửi thông báo gán influencer")
		return
	}

	title := campaign.Title
	utility.GoProtect(func() {
		subject, body := channels.AssignmentEmail(brand.BrandName, title, assignedCount)
		if err := s.email.SendMail(brand.Email, subject, body); err != nil {
			logger.GetDeliveryLogger().WithError(err).
				WithField("to", brand.Email).
				Warn("Gửi email thông báo gán influencer thất bại")
		}
	})
}

// RespondToAssignment ghi nhận influencer chấp nhận/từ chối lời mời.
// Update atomic trên phần tử assignment đang pending: request thứ hai
// (hoặc influencer chưa được gán) sẽ không match và nhận 404.
func (s *CampaignService) RespondToAssignment(ctx context.Context, campaignID primitive.ObjectID, influencerID primitive.ObjectID, status string) (campmodels.Campaign, error) {
	completion := campmodels.CompletionPending
	if status == campmodels.AcceptanceStatusAccepted {
		completion = campmodels.CompletionInProgress
	}

	filter := bson.M{
		"_id": campaignID,
		"assignedInfluencers": bson.M{
			"$elemMatch": bson.M{
				"influencerId":     influencerID,
				"acceptanceStatus": campmodels.AcceptanceStatusPending,
			},
		},
	}
	now := time.Now().UnixMilli()
	update := bson.M{
		"$set": bson.M{
			"assignedInfluencers.$.acceptanceStatus": status,
			"assignedInfluencers.$.respondedAt":      now,
			"assignedInfluencers.$.completionStatus": completion,
			"updatedAt":                              now,
		},
	}

	updated, err := s.FindOneAndUpdateRaw(ctx, filter, update, options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return updated, common.NewError(common.ErrCodeDatabaseQuery,
				"Không tìm thấy lời mời đang chờ phản hồi trong chiến dịch này", common.StatusNotFound, nil)
		}
		return updated, err
	}
	return updated, nil
}
