package reviewsvc

import (
	"context"
	"fmt"
	"time"

	accountsvc "kol_market/internal/api/account/service"
	basesvc "kol_market/internal/api/base/service"
	campmodels "kol_market/internal/api/campaign/models"
	"kol_market/internal/api/middleware"
	"kol_market/internal/common"
	"kol_market/internal/global"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Caller là thông tin người gọi lấy từ token, dùng để phân quyền review
type Caller struct {
	ID   primitive.ObjectID
	Role string
	Name string
}

// ReviewService xử lý thread review trên các bài đã nộp.
// Review nhúng trong document campaign nên mọi thao tác là update trên campaigns.
type ReviewService struct {
	*basesvc.BaseServiceMongoImpl[campmodels.Campaign]
	brandService      *accountsvc.BrandService
	influencerService *accountsvc.InfluencerService
}

// NewReviewService tạo mới ReviewService
func NewReviewService() (*ReviewService, error) {
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

	return &ReviewService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[campmodels.Campaign](collection),
		brandService:         brandService,
		influencerService:    influencerService,
	}, nil
}

// locateJob tìm assignment chứa job trong campaign, 404 khi không có
func locateJob(campaign *campmodels.Campaign, jobID string) (*campmodels.AssignedInfluencer, *campmodels.SubmittedJob, error) {
	for i := range campaign.AssignedInfluencers {
		assignment := &campaign.AssignedInfluencers[i]
		for j := range assignment.SubmittedJobs {
			if assignment.SubmittedJobs[j].JobID == jobID {
				return assignment, &assignment.SubmittedJobs[j], nil
			}
		}
	}
	return nil, nil, common.NewError(common.ErrCodeDatabaseQuery,
		"Không tìm thấy bài đã nộp trong chiến dịch này", common.StatusNotFound, nil)
}

// canComment kiểm tra caller là brand sở hữu chiến dịch hoặc influencer của assignment
func canComment(campaign *campmodels.Campaign, assignment *campmodels.AssignedInfluencer, caller *Caller) bool {
	switch caller.Role {
	case middleware.RoleBrand:
		return campaign.BrandID == caller.ID
	case middleware.RoleInfluencer:
		return assignment.InfluencerID == caller.ID
	}
	return false
}

// resolveAuthorName trả về tên tác giả: ưu tiên name trong token,
// tra DB khi token không mang name
func (s *ReviewService) resolveAuthorName(ctx context.Context, caller *Caller) string {
	if caller.Name != "" {
		return caller.Name
	}

	switch caller.Role {
	case middleware.RoleBrand:
		if brand, err := s.brandService.FindOneById(ctx, caller.ID); err == nil {
			return brand.BrandName
		}
	case middleware.RoleInfluencer:
		if influencer, err := s.influencerService.FindOneById(ctx, caller.ID); err == nil {
			return influencer.FullName
		}
	}
	return caller.ID.Hex()
}

// jobArrayFilters là arrayFilters trỏ đến job cụ thể của một assignment
func jobArrayFilters(influencerID primitive.ObjectID, jobID string) options.ArrayFilters {
	return options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"inf.influencerId": influencerID},
			bson.M{"job.jobId": jobID},
		},
	}
}

// AddReview thêm bình luận vào thread review của một bài đã nộp
func (s *ReviewService) AddReview(ctx context.Context, campaignID primitive.ObjectID, jobID string, caller *Caller, comment string) (*campmodels.ReviewComment, error) {
	campaign, err := s.FindOneById(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	assignment, _, err := locateJob(&campaign, jobID)
	if err != nil {
		return nil, err
	}
	if !canComment(&campaign, assignment, caller) {
		return nil, common.NewError(common.ErrCodeAuthRole,
			"Bạn không có quyền bình luận trên bài này", common.StatusForbidden, nil)
	}

	now := time.Now().UnixMilli()
	review := campmodels.ReviewComment{
		ReviewID:   uuid.NewString(),
		AuthorType: caller.Role,
		AuthorID:   caller.ID.Hex(),
		AuthorName: s.resolveAuthorName(ctx, caller),
		Comment:    comment,
		CreatedAt:  now,
	}

	update := bson.M{
		"$push": bson.M{"assignedInfluencers.$[inf].submittedJobs.$[job].reviews": review},
		"$set":  bson.M{"updatedAt": now},
	}
	filters := jobArrayFilters(assignment.InfluencerID, jobID)
	_, err = s.FindOneAndUpdateRaw(ctx, bson.M{"_id": campaignID}, update,
		options.FindOneAndUpdate().SetArrayFilters(filters).SetReturnDocument(options.After))
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// findReview tìm review trong campaign, trả về assignment chứa nó
func findReview(campaign *campmodels.Campaign, jobID string, reviewID string) (*campmodels.AssignedInfluencer, *campmodels.ReviewComment, error) {
	assignment, job, err := locateJob(campaign, jobID)
	if err != nil {
		return nil, nil, err
	}
	for i := range job.Reviews {
		if job.Reviews[i].ReviewID == reviewID {
			return assignment, &job.Reviews[i], nil
		}
	}
	return nil, nil, common.NewError(common.ErrCodeDatabaseQuery,
		"Không tìm thấy bình luận review", common.StatusNotFound, nil)
}

// UpdateReview sửa nội dung bình luận, chỉ tác giả gốc được phép
func (s *ReviewService) UpdateReview(ctx context.Context, campaignID primitive.ObjectID, jobID string, reviewID string, caller *Caller, comment string) (*campmodels.ReviewComment, error) {
	campaign, err := s.FindOneById(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	assignment, review, err := findReview(&campaign, jobID, reviewID)
	if err != nil {
		return nil, err
	}
	if review.AuthorID != caller.ID.Hex() {
		return nil, common.NewError(common.ErrCodeAuthRole,
			"Chỉ tác giả mới được sửa bình luận", common.StatusForbidden, nil)
	}

	now := time.Now().UnixMilli()
	filters := options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"inf.influencerId": assignment.InfluencerID},
			bson.M{"job.jobId": jobID},
			bson.M{"rev.reviewId": reviewID},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"assignedInfluencers.$[inf].submittedJobs.$[job].reviews.$[rev].comment":   comment,
			"assignedInfluencers.$[inf].submittedJobs.$[job].reviews.$[rev].updatedAt": now,
			"updatedAt": now,
		},
	}
	_, err = s.FindOneAndUpdateRaw(ctx, bson.M{"_id": campaignID}, update,
		options.FindOneAndUpdate().SetArrayFilters(filters).SetReturnDocument(options.After))
	if err != nil {
		return nil, err
	}

	review.Comment = comment
	review.UpdatedAt = now
	return review, nil
}

// DeleteReview xóa bình luận: tác giả hoặc brand sở hữu chiến dịch
func (s *ReviewService) DeleteReview(ctx context.Context, campaignID primitive.ObjectID, jobID string, reviewID string, caller *Caller) error {
	campaign, err := s.FindOneById(ctx, campaignID)
	if err != nil {
		return err
	}

	assignment, review, err := findReview(&campaign, jobID, reviewID)
	if err != nil {
		return err
	}

	isAuthor := review.AuthorID == caller.ID.Hex()
	isOwnerBrand := caller.Role == middleware.RoleBrand && campaign.BrandID == caller.ID
	if !isAuthor && !isOwnerBrand {
		return common.NewError(common.ErrCodeAuthRole,
			"Bạn không có quyền xóa bình luận này", common.StatusForbidden, nil)
	}

	update := bson.M{
		"$pull": bson.M{"assignedInfluencers.$[inf].submittedJobs.$[job].reviews": bson.M{"reviewId": reviewID}},
		"$set":  bson.M{"updatedAt": time.Now().UnixMilli()},
	}
	filters := jobArrayFilters(assignment.InfluencerID, jobID)
	_, err = s.FindOneAndUpdateRaw(ctx, bson.M{"_id": campaignID}, update,
		options.FindOneAndUpdate().SetArrayFilters(filters).SetReturnDocument(options.After))
	return err
}
