package accountsvc

import (
	"context"
	"fmt"

	accountdto "kol_market/internal/api/account/dto"
	accmodels "kol_market/internal/api/account/models"
	basesvc "kol_market/internal/api/base/service"
	"kol_market/internal/common"
	"kol_market/internal/global"
	"kol_market/internal/logger"
	"kol_market/internal/notification/channels"
	"kol_market/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// BrandService là cấu trúc chứa các phương thức liên quan đến tài khoản nhãn hàng
type BrandService struct {
	*basesvc.BaseServiceMongoImpl[accmodels.Brand]
	email *channels.EmailSender
}

// NewBrandService tạo mới BrandService
func NewBrandService(email *channels.EmailSender) (*BrandService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Brands)
	if !exist {
		return nil, fmt.Errorf("failed to get account_brands collection: %v", common.ErrNotFound)
	}

	return &BrandService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[accmodels.Brand](collection),
		email:                email,
	}, nil
}

// FindByEmail tìm nhãn hàng theo email
func (s *BrandService) FindByEmail(ctx context.Context, email string) (accmodels.Brand, error) {
	return s.FindOne(ctx, bson.M{"email": email}, nil)
}

// Register đăng ký tài khoản nhãn hàng mới: hash mật khẩu, insert,
// gửi email chào mừng (fire-and-forget)
func (s *BrandService) Register(ctx context.Context, input *accountdto.BrandCreateInput) (accmodels.Brand, error) {
	var zero accmodels.Brand

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return zero, common.NewError(common.ErrCodeInternalServer, "Không thể xử lý mật khẩu", common.StatusInternalServerError, nil)
	}

	brand := accmodels.Brand{
		Email:        input.Email,
		PasswordHash: string(hash),
		BrandName:    input.BrandName,
		ContactName:  input.ContactName,
		Phone:        input.Phone,
		Website:      input.Website,
		Industry:     input.Industry,
	}

	created, err := s.InsertOne(ctx, brand)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	if s.email != nil {
		utility.GoProtect(func() {
			subject, body := channels.WelcomeEmail(created.BrandName)
			if err := s.email.SendMail(created.Email, subject, body); err != nil {
				logger.GetDeliveryLogger().WithError(err).
					WithField("to", created.Email).
					Warn("Gửi email chào mừng thất bại")
			}
		})
	}

	return created, nil
}
