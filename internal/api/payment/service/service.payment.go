package paymentsvc

import (
	"context"
	"fmt"
	"time"

	basesvc "kol_market/internal/api/base/service"
	campmodels "kol_market/internal/api/campaign/models"
	"kol_market/internal/api/middleware"
	"kol_market/internal/common"
	"kol_market/internal/global"
	"kol_market/internal/payment"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Gateway là phần client Flutterwave mà service cần, tách interface để test
type Gateway interface {
	VerifyTransaction(ctx context.Context, transactionID string) (*payment.VerifyData, error)
}

// PaymentStatusResult là kết quả tra cứu trạng thái thanh toán của chiến dịch
type PaymentStatusResult struct {
	PaymentStatus  string                     `json:"paymentStatus"`
	PaymentDetails *campmodels.PaymentDetails `json:"paymentDetails,omitempty"`
}

// PaymentService xác minh thanh toán chiến dịch qua cổng Flutterwave
type PaymentService struct {
	*basesvc.BaseServiceMongoImpl[campmodels.Campaign]
	gateway Gateway
}

// NewPaymentService tạo mới PaymentService.
// gateway có thể nil khi Flutterwave chưa được cấu hình.
func NewPaymentService(gateway Gateway) (*PaymentService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Campaigns)
	if !exist {
		return nil, fmt.Errorf("failed to get campaigns collection: %v", common.ErrNotFound)
	}

	return &PaymentService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[campmodels.Campaign](collection),
		gateway:              gateway,
	}, nil
}

// VerifyPayment xác minh giao dịch với Flutterwave và đánh dấu chiến dịch đã
// thanh toán. Idempotent: chiến dịch đã paid nhận 400 và không mutate gì thêm.
func (s *PaymentService) VerifyPayment(ctx context.Context, campaignID primitive.ObjectID, brandID primitive.ObjectID, transactionID string) (campmodels.Campaign, error) {
	var zero campmodels.Campaign

	if s.gateway == nil {
		return zero, common.NewError(common.ErrCodePaymentGateway,
			"Cổng thanh toán chưa được cấu hình", common.StatusBadGateway, nil)
	}

	campaign, err := s.FindOneById(ctx, campaignID)
	if err != nil {
		return zero, err
	}
	if campaign.BrandID != brandID {
		return zero, common.ErrForbidden
	}
	if campaign.PaymentStatus == campmodels.PaymentStatusPaid {
		return zero, common.NewError(common.ErrCodeBusinessState,
			"Thanh toán đã được xác minh trước đó", common.StatusBadRequest, nil)
	}

	data, err := s.gateway.VerifyTransaction(ctx, transactionID)
	if err != nil {
		return zero, err
	}
	if data.Status != "successful" {
		return zero, common.NewError(common.ErrCodeBusinessState,
			fmt.Sprintf("Giao dịch chưa thành công (trạng thái: %s)", data.Status), common.StatusBadRequest, nil)
	}

	paidAt := time.Now().UnixMilli()
	if t, err := time.Parse(time.RFC3339, data.CreatedAt); err == nil {
		paidAt = t.UnixMilli()
	}

	details := campmodels.PaymentDetails{
		TransactionID: transactionID,
		FlwRef:        data.FlwRef,
		Amount:        data.Amount,
		Currency:      data.Currency,
		PaidAt:        paidAt,
		Channel:       data.PaymentType,
		CustomerEmail: data.Customer.Email,
	}

	// Guard trên paymentStatus: request thứ hai chạy song song sẽ không match
	filter := bson.M{
		"_id":           campaignID,
		"paymentStatus": bson.M{"$ne": campmodels.PaymentStatusPaid},
	}
	update := bson.M{
		"$set": bson.M{
			"paymentStatus":  campmodels.PaymentStatusPaid,
			"paymentDetails": details,
			"updatedAt":      time.Now().UnixMilli(),
		},
	}

	updated, err := s.FindOneAndUpdateRaw(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err != nil {
		return zero, common.NewError(common.ErrCodeBusinessState,
			"Thanh toán đã được xác minh trước đó", common.StatusBadRequest, nil)
	}
	return updated, nil
}

// GetStatus trả về trạng thái thanh toán của chiến dịch.
// Brand chỉ xem được chiến dịch của mình, admin xem được tất cả.
func (s *PaymentService) GetStatus(ctx context.Context, campaignID primitive.ObjectID, callerID primitive.ObjectID, callerRole string) (*PaymentStatusResult, error) {
	campaign, err := s.FindOneById(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if callerRole != middleware.RoleAdmin && campaign.BrandID != callerID {
		return nil, common.ErrForbidden
	}

	return &PaymentStatusResult{
		PaymentStatus:  campaign.PaymentStatus,
		PaymentDetails: campaign.PaymentDetails,
	}, nil
}
