package deliverablesvc

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	accountsvc "kol_market/internal/api/account/service"
	basesvc "kol_market/internal/api/base/service"
	campmodels "kol_market/internal/api/campaign/models"
	deliverabledto "kol_market/internal/api/deliverable/dto"
	"kol_market/internal/common"
	"kol_market/internal/global"
	"kol_market/internal/logger"
	"kol_market/internal/notification/channels"
	"kol_market/internal/utility"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// reDeliverableURL chỉ chấp nhận URL http/https
var reDeliverableURL = regexp.MustCompile(`^https?://`)

// DeliverableService xử lý nộp bài, lưu nháp và trạng thái hoàn thành
// của influencer trong chiến dịch. Thao tác trực tiếp trên collection campaigns.
type DeliverableService struct {
	*basesvc.BaseServiceMongoImpl[campmodels.Campaign]
	brandService      *accountsvc.BrandService
	influencerService *accountsvc.InfluencerService
	email             *channels.EmailSender
	whatsapp          *channels.WhatsAppSender
	adminEmail        string
}

// NewDeliverableService tạo mới DeliverableService.
// email/whatsapp có thể nil khi kênh tương ứng chưa được cấu hình.
func NewDeliverableService(email *channels.EmailSender, whatsapp *channels.WhatsAppSender, adminEmail string) (*DeliverableService, error) {
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

	return &DeliverableService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[campmodels.Campaign](collection),
		brandService:         brandService,
		influencerService:    influencerService,
		email:                email,
		whatsapp:             whatsapp,
		adminEmail:           adminEmail,
	}, nil
}

// RequiredPosts trả về số bài influencer phải nộp cho chiến dịch
func RequiredPosts(campaign *campmodels.Campaign) int {
	if campaign.PostCount > 0 {
		return campaign.PostCount
	}
	return ExtractPostCount(campaign.PostFrequency)
}

// DeliverableStatus là trạng thái nộp bài của một influencer trong chiến dịch
type DeliverableStatus struct {
	Submitted        int                         `json:"submitted"`
	Required         int                         `json:"required"`
	CompletionStatus campmodels.CompletionStatus `json:"completionStatus"`
	AcceptanceStatus string                      `json:"acceptanceStatus"`
}

// loadAssignment load campaign và assignment của influencer.
// Influencer chưa được gán vào chiến dịch nhận 404.
func (s *DeliverableService) loadAssignment(ctx context.Context, campaignID primitive.ObjectID, influencerID primitive.ObjectID) (campmodels.Campaign, *campmodels.AssignedInfluencer, error) {
	campaign, err := s.FindOneById(ctx, campaignID)
	if err != nil {
		return campaign, nil, err
	}

	assignment := campaign.FindAssignment(influencerID)
	if assignment == nil {
		return campaign, nil, common.NewError(common.ErrCodeDatabaseQuery,
			"Bạn chưa được gán vào chiến dịch này", common.StatusNotFound, nil)
	}
	return campaign, assignment, nil
}

// influencerArrayFilter là arrayFilters trỏ đến phần tử assignment của influencer
func influencerArrayFilter(influencerID primitive.ObjectID) *options.ArrayFilters {
	return &options.ArrayFilters{
		Filters: []interface{}{bson.M{"inf.influencerId": influencerID}},
	}
}

// submitFilter là filter nguyên tử cho việc nộp bài: chỉ match khi influencer
// đã chấp nhận, chưa hoàn thành, và tổng số bài sau khi nộp không vượt quá yêu cầu.
// Hai request nộp đồng thời thì chỉ request giữ được hạn mức mới match,
// giống cách AssignInfluencers giữ hạn mức chỗ trống bằng $expr.
func submitFilter(campaignID primitive.ObjectID, influencerID primitive.ObjectID, newJobs int, required int) bson.M {
	// Phần tử assignment của influencer trong mảng assignedInfluencers
	matchedAssignment := bson.M{"$arrayElemAt": bson.A{
		bson.M{"$filter": bson.M{
			"input": "$assignedInfluencers",
			"as":    "inf",
			"cond":  bson.M{"$eq": bson.A{"$$inf.influencerId", influencerID}},
		}},
		0,
	}}
	submittedJobs := bson.M{"$let": bson.M{
		"vars": bson.M{"matched": matchedAssignment},
		"in":   bson.M{"$ifNull": bson.A{"$$matched.submittedJobs", bson.A{}}},
	}}

	return bson.M{
		"_id": campaignID,
		"assignedInfluencers": bson.M{"$elemMatch": bson.M{
			"influencerId":     influencerID,
			"acceptanceStatus": campmodels.AcceptanceStatusAccepted,
			"completionStatus": bson.M{"$ne": campmodels.CompletionCompleted},
		}},
		"$expr": bson.M{
			"$lte": bson.A{
				bson.M{"$add": bson.A{bson.M{"$size": submittedJobs}, newJobs}},
				required,
			},
		},
	}
}

// SubmitDeliverables nộp một hoặc nhiều bài cho chiến dịch.
// Nộp đủ số bài yêu cầu chuyển completionStatus sang completed trong cùng một update.
func (s *DeliverableService) SubmitDeliverables(ctx context.Context, campaignID primitive.ObjectID, influencerID primitive.ObjectID, input *deliverabledto.SubmitDeliverablesInput) (*DeliverableStatus, error) {
	for _, d := range input.Deliverables {
		if !reDeliverableURL.MatchString(d.URL) {
			return nil, common.NewError(common.ErrCodeValidationFormat,
				fmt.Sprintf("URL không hợp lệ: %s", d.URL), common.StatusBadRequest, nil)
		}
	}

	campaign, assignment, err := s.loadAssignment(ctx, campaignID, influencerID)
	if err != nil {
		return nil, err
	}

	if assignment.AcceptanceStatus != campmodels.AcceptanceStatusAccepted {
		return nil, common.NewError(common.ErrCodeAuthRole,
			"Bạn chưa chấp nhận lời mời tham gia chiến dịch này", common.StatusForbidden, nil)
	}
	if assignment.CompletionStatus == campmodels.CompletionCompleted {
		return nil, common.NewError(common.ErrCodeBusinessState,
			"Chiến dịch đã hoàn thành, không thể nộp thêm bài", common.StatusBadRequest, nil)
	}

	required := RequiredPosts(&campaign)
	existing := len(assignment.SubmittedJobs)
	if existing >= required {
		return nil, common.NewError(common.ErrCodeBusinessState,
			fmt.Sprintf("Đã nộp đủ %d/%d bài yêu cầu", existing, required), common.StatusBadRequest, nil)
	}

	now := time.Now().UnixMilli()
	jobs := make([]campmodels.SubmittedJob, 0, len(input.Deliverables))
	for _, d := range input.Deliverables {
		jobs = append(jobs, campmodels.SubmittedJob{
			JobID:          primitive.NewObjectID().Hex(),
			Platform:       d.Platform,
			URL:            d.URL,
			Description:    d.Description,
			SubmittedAt:    now,
			ApprovalStatus: campmodels.ApprovalStatusPending,
		})
	}

	set := bson.M{"updatedAt": now}
	total := existing + len(jobs)
	if total >= required {
		set["assignedInfluencers.$[inf].completionStatus"] = campmodels.CompletionCompleted
	}
	update := bson.M{
		"$push": bson.M{"assignedInfluencers.$[inf].submittedJobs": bson.M{"$each": jobs}},
		"$set":  set,
	}

	// Filter nguyên tử: request đồng thời làm mất hạn mức thì update không match.
	updated, err := s.FindOneAndUpdateRaw(ctx, submitFilter(campaignID, influencerID, len(jobs), required), update,
		options.FindOneAndUpdate().
			SetArrayFilters(*influencerArrayFilter(influencerID)).
			SetReturnDocument(options.After))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrCodeBusinessState,
				fmt.Sprintf("Không thể nộp %d bài: vượt quá %d bài yêu cầu hoặc chiến dịch đã hoàn thành", len(jobs), required),
				common.StatusBadRequest, nil)
		}
		return nil, err
	}

	result := s.statusOf(&updated, influencerID, required)

	// Request đồng thời có thể đẩy tổng số bài chạm mức yêu cầu sau khi set ở trên
	// đã được tính, nên đối chiếu lại completionStatus từ document trả về.
	if result.Submitted >= required && result.CompletionStatus != campmodels.CompletionCompleted {
		reconciled, rerr := s.FindOneAndUpdateRaw(ctx,
			bson.M{"_id": campaignID},
			bson.M{"$set": bson.M{
				"assignedInfluencers.$[inf].completionStatus": campmodels.CompletionCompleted,
				"updatedAt": time.Now().UnixMilli(),
			}},
			options.FindOneAndUpdate().
				SetArrayFilters(*influencerArrayFilter(influencerID)).
				SetReturnDocument(options.After))
		if rerr == nil {
			updated = reconciled
			result = s.statusOf(&updated, influencerID, required)
		}
	}
	s.notifyDeliverableSubmitted(ctx, &updated, influencerID, result)
	return result, nil
}

// statusOf tính trạng thái nộp bài hiện tại của influencer trong campaign
func (s *DeliverableService) statusOf(campaign *campmodels.Campaign, influencerID primitive.ObjectID, required int) *DeliverableStatus {
	assignment := campaign.FindAssignment(influencerID)
	if assignment == nil {
		return &DeliverableStatus{Required: required}
	}
	return &DeliverableStatus{
		Submitted:        len(assignment.SubmittedJobs),
		Required:         required,
		CompletionStatus: assignment.CompletionStatus,
		AcceptanceStatus: assignment.AcceptanceStatus,
	}
}

// notifyDeliverableSubmitted gửi thông báo WhatsApp + email cho brand và admin.
// Mọi kênh đều fire-and-forget, lỗi chỉ ghi vào delivery log.
func (s *DeliverableService) notifyDeliverableSubmitted(ctx context.Context, campaign *campmodels.Campaign, influencerID primitive.ObjectID, status *DeliverableStatus) {
	influencerName := influencerID.Hex()
	if influencer, err := s.influencerService.FindOneById(ctx, influencerID); err == nil {
		influencerName = influencer.FullName
	}

	brand, err := s.brandService.FindOneById(ctx, campaign.BrandID)
	if err != nil {
		logger.GetDeliveryLogger().WithError(err).
			WithField("brandId", campaign.BrandID.Hex()).
			Warn("Không tìm thấy brand để gửi thông báo nộp bài")
		return
	}

	title := campaign.Title
	submitted, required := status.Submitted, status.Required

	if s.whatsapp != nil && brand.Phone != "" {
		phone := brand.Phone
		utility.GoProtect(func() {
			msg := channels.DeliverableMessage(title, influencerName, submitted, required)
			if err := s.whatsapp.SendMessage(context.Background(), phone, msg); err != nil {
				logger.GetDeliveryLogger().WithError(err).
					WithField("to", phone).
					Warn("Gửi WhatsApp thông báo nộp bài thất bại")
			}
		})
	}

	if s.email != nil {
		brandEmail, brandName := brand.Email, brand.BrandName
		utility.GoProtect(func() {
			subject, body := channels.DeliverableEmail(brandName, title, influencerName, submitted, required)
			if err := s.email.SendMail(brandEmail, subject, body); err != nil {
				logger.GetDeliveryLogger().WithError(err).
					WithField("to", brandEmail).
					Warn("Gửi email thông báo nộp bài cho brand thất bại")
			}
		})

		if s.adminEmail != "" {
			adminEmail := s.adminEmail
			utility.GoProtect(func() {
				subject, body := channels.DeliverableEmail("Admin", title, influencerName, submitted, required)
				if err := s.email.SendMail(adminEmail, subject, body); err != nil {
					logger.GetDeliveryLogger().WithError(err).
						WithField("to", adminEmail).
						Warn("Gửi email thông báo nộp bài cho admin thất bại")
				}
			})
		}
	}
}

// UpdateDeliverable cho influencer sửa URL/mô tả của bài đã nộp
// nhưng chưa được brand duyệt
func (s *DeliverableService) UpdateDeliverable(ctx context.Context, campaignID primitive.ObjectID, influencerID primitive.ObjectID, jobID string, input *deliverabledto.UpdateDeliverableInput) (campmodels.Campaign, error) {
	var zero campmodels.Campaign

	if input.URL != "" && !reDeliverableURL.MatchString(input.URL) {
		return zero, common.NewError(common.ErrCodeValidationFormat,
			fmt.Sprintf("URL không hợp lệ: %s", input.URL), common.StatusBadRequest, nil)
	}

	now := time.Now().UnixMilli()
	set := bson.M{"updatedAt": now}
	if input.URL != "" {
		set["assignedInfluencers.$[inf].submittedJobs.$[job].url"] = input.URL
	}
	if input.Description != "" {
		set["assignedInfluencers.$[inf].submittedJobs.$[job].description"] = input.Description
	}
	if len(set) == 1 {
		return zero, common.NewError(common.ErrCodeValidationInput,
			"Không có trường nào để cập nhật", common.StatusBadRequest, nil)
	}

	arrayFilters := options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"inf.influencerId": influencerID},
			bson.M{"job.jobId": jobID, "job.approvalStatus": bson.M{"$ne": campmodels.ApprovalStatusApproved}},
		},
	}

	updated, err := s.FindOneAndUpdateRaw(ctx, bson.M{
		"_id": campaignID,
		"assignedInfluencers": bson.M{
			"$elemMatch": bson.M{
				"influencerId":  influencerID,
				"submittedJobs": bson.M{"$elemMatch": bson.M{"jobId": jobID}},
			},
		},
	}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetArrayFilters(arrayFilters).SetReturnDocument(options.After))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, common.NewError(common.ErrCodeDatabaseQuery,
				"Không tìm thấy bài đã nộp hoặc bài đã được duyệt", common.StatusNotFound, nil)
		}
		return zero, err
	}
	return updated, nil
}

// GetStatus trả về tiến độ nộp bài của influencer trong chiến dịch
func (s *DeliverableService) GetStatus(ctx context.Context, campaignID primitive.ObjectID, influencerID primitive.ObjectID) (*DeliverableStatus, error) {
	campaign, assignment, err := s.loadAssignment(ctx, campaignID, influencerID)
	if err != nil {
		return nil, err
	}

	return &DeliverableStatus{
		Submitted:        len(assignment.SubmittedJobs),
		Required:         RequiredPosts(&campaign),
		CompletionStatus: assignment.CompletionStatus,
		AcceptanceStatus: assignment.AcceptanceStatus,
	}, nil
}

// StashDeliverables lưu nháp deliverable, không tính vào số bài đã nộp
func (s *DeliverableService) StashDeliverables(ctx context.Context, campaignID primitive.ObjectID, influencerID primitive.ObjectID, input *deliverabledto.StashDeliverablesInput) ([]campmodels.StashedDeliverable, error) {
	_, assignment, err := s.loadAssignment(ctx, campaignID, influencerID)
	if err != nil {
		return nil, err
	}
	if assignment.CompletionStatus == campmodels.CompletionCompleted {
		return nil, common.NewError(common.ErrCodeBusinessState,
			"Chiến dịch đã hoàn thành, không thể lưu nháp", common.StatusBadRequest, nil)
	}

	now := time.Now().UnixMilli()
	stashed := make([]campmodels.StashedDeliverable, 0, len(input.Deliverables))
	for _, d := range input.Deliverables {
		stashed = append(stashed, campmodels.StashedDeliverable{
			StashID:     uuid.NewString(),
			Platform:    d.Platform,
			URL:         d.URL,
			Description: d.Description,
			StashedAt:   now,
		})
	}

	update := bson.M{
		"$push": bson.M{"assignedInfluencers.$[inf].stashedDeliverables": bson.M{"$each": stashed}},
		"$set":  bson.M{"updatedAt": now},
	}
	_, err = s.FindOneAndUpdateRaw(ctx, bson.M{"_id": campaignID}, update,
		options.FindOneAndUpdate().
			SetArrayFilters(*influencerArrayFilter(influencerID)).
			SetReturnDocument(options.After))
	if err != nil {
		return nil, err
	}
	return stashed, nil
}

// GetStashedDeliverables trả về toàn bộ nháp của influencer trong chiến dịch
func (s *DeliverableService) GetStashedDeliverables(ctx context.Context, campaignID primitive.ObjectID, influencerID primitive.ObjectID) ([]campmodels.StashedDeliverable, error) {
	_, assignment, err := s.loadAssignment(ctx, campaignID, influencerID)
	if err != nil {
		return nil, err
	}
	if assignment.StashedDeliverables == nil {
		return []campmodels.StashedDeliverable{}, nil
	}
	return assignment.StashedDeliverables, nil
}

// GetStashByID trả về một nháp theo stashId
func (s *DeliverableService) GetStashByID(ctx context.Context, campaignID primitive.ObjectID, influencerID primitive.ObjectID, stashID string) (*campmodels.StashedDeliverable, error) {
	stashed, err := s.GetStashedDeliverables(ctx, campaignID, influencerID)
	if err != nil {
		return nil, err
	}
	for i := range stashed {
		if stashed[i].StashID == stashID {
			return &stashed[i], nil
		}
	}
	return nil, common.NewError(common.ErrCodeDatabaseQuery,
		"Không tìm thấy nháp deliverable", common.StatusNotFound, nil)
}

// DeleteStash xóa một nháp theo stashId
func (s *DeliverableService) DeleteStash(ctx context.Context, campaignID primitive.ObjectID, influencerID primitive.ObjectID, stashID string) error {
	// Kiểm tra tồn tại trước để trả 404 chính xác
	if _, err := s.GetStashByID(ctx, campaignID, influencerID, stashID); err != nil {
		return err
	}

	update := bson.M{
		"$pull": bson.M{"assignedInfluencers.$[inf].stashedDeliverables": bson.M{"stashId": stashID}},
		"$set":  bson.M{"updatedAt": time.Now().UnixMilli()},
	}
	_, err := s.FindOneAndUpdateRaw(ctx, bson.M{"_id": campaignID}, update,
		options.FindOneAndUpdate().
			SetArrayFilters(*influencerArrayFilter(influencerID)).
			SetReturnDocument(options.After))
	return err
}

// ClearStash xóa toàn bộ nháp của influencer trong chiến dịch
func (s *DeliverableService) ClearStash(ctx context.Context, campaignID primitive.ObjectID, influencerID primitive.ObjectID) error {
	if _, _, err := s.loadAssignment(ctx, campaignID, influencerID); err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"assignedInfluencers.$[inf].stashedDeliverables": []campmodels.StashedDeliverable{},
			"updatedAt": time.Now().UnixMilli(),
		},
	}
	_, err := s.FindOneAndUpdateRaw(ctx, bson.M{"_id": campaignID}, update,
		options.FindOneAndUpdate().
			SetArrayFilters(*influencerArrayFilter(influencerID)).
			SetReturnDocument(options.After))
	return err
}
