package reviewhdl

import (
	"fmt"

	basehdl "kol_market/internal/api/base/handler"
	campmodels "kol_market/internal/api/campaign/models"
	reviewdto "kol_market/internal/api/review/dto"
	reviewsvc "kol_market/internal/api/review/service"
	"kol_market/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewHandler xử lý các request liên quan đến thread review
type ReviewHandler struct {
	*basehdl.BaseHandler[campmodels.Campaign, reviewdto.AddReviewInput, reviewdto.UpdateReviewInput]
	reviewService *reviewsvc.ReviewService
}

// NewReviewHandler tạo mới ReviewHandler
func NewReviewHandler(reviewService *reviewsvc.ReviewService) (*ReviewHandler, error) {
	if reviewService == nil {
		return nil, fmt.Errorf("review service is required")
	}
	return &ReviewHandler{
		BaseHandler:   basehdl.NewBaseHandler[campmodels.Campaign, reviewdto.AddReviewInput, reviewdto.UpdateReviewInput](reviewService),
		reviewService: reviewService,
	}, nil
}

// callerFromContext dựng Caller từ Locals do AuthMiddleware set.
// Name lấy từ account document (fullName hoặc brandName tùy loại tài khoản).
func callerFromContext(c fiber.Ctx) (*reviewsvc.Caller, error) {
	accountID, _ := c.Locals("account_id").(string)
	role, _ := c.Locals("account_role").(string)

	objID, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return nil, common.ErrTokenInvalid
	}

	name := ""
	if account, ok := c.Locals("account").(bson.M); ok {
		if v, ok := account["fullName"].(string); ok && v != "" {
			name = v
		} else if v, ok := account["brandName"].(string); ok && v != "" {
			name = v
		}
	}

	return &reviewsvc.Caller{ID: objID, Role: role, Name: name}, nil
}

// reviewParams parse campaignId và jobId từ URL
func reviewParams(c fiber.Ctx) (primitive.ObjectID, string, error) {
	campaignID, err := primitive.ObjectIDFromHex(c.Params("campaignId"))
	if err != nil {
		return primitive.NilObjectID, "", common.NewError(common.ErrCodeValidationFormat,
			"ID chiến dịch không hợp lệ", common.StatusBadRequest, nil)
	}

	jobID := c.Params("jobId")
	if jobID == "" {
		return primitive.NilObjectID, "", common.NewError(common.ErrCodeValidationInput,
			"Thiếu ID bài đã nộp", common.StatusBadRequest, nil)
	}
	return campaignID, jobID, nil
}

// HandleAddReview thêm bình luận vào thread review của một bài đã nộp
func (h *ReviewHandler) HandleAddReview(c fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	campaignID, jobID, err := reviewParams(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	var input reviewdto.AddReviewInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	review, err := h.reviewService.AddReview(c.Context(), campaignID, jobID, caller, input.Comment)
	h.HandleResponse(c, review, err)
	return nil
}

// HandleUpdateReview sửa bình luận (chỉ tác giả)
func (h *ReviewHandler) HandleUpdateReview(c fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	campaignID, jobID, err := reviewParams(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	var input reviewdto.UpdateReviewInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	review, err := h.reviewService.UpdateReview(c.Context(), campaignID, jobID, c.Params("reviewId"), caller, input.Comment)
	h.HandleResponse(c, review, err)
	return nil
}

// HandleDeleteReview xóa bình luận (tác giả hoặc brand sở hữu)
func (h *ReviewHandler) HandleDeleteReview(c fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	campaignID, jobID, err := reviewParams(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	err = h.reviewService.DeleteReview(c.Context(), campaignID, jobID, c.Params("reviewId"), caller)
	h.HandleResponse(c, nil, err)
	return nil
}
