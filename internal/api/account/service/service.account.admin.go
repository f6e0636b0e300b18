package accountsvc

import (
	"context"
	"fmt"

	accountdto "kol_market/internal/api/account/dto"
	accmodels "kol_market/internal/api/account/models"
	basesvc "kol_market/internal/api/base/service"
	"kol_market/internal/common"
	"kol_market/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// AdminService là cấu trúc chứa các phương thức liên quan đến tài khoản quản trị viên
type AdminService struct {
	*basesvc.BaseServiceMongoImpl[accmodels.Admin]
}

// NewAdminService tạo mới AdminService
func NewAdminService() (*AdminService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Admins)
	if !exist {
		return nil, fmt.Errorf("failed to get account_admins collection: %v", common.ErrNotFound)
	}

	return &AdminService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[accmodels.Admin](collection),
	}, nil
}

// FindByEmail tìm quản trị viên theo email
func (s *AdminService) FindByEmail(ctx context.Context, email string) (accmodels.Admin, error) {
	return s.FindOne(ctx, bson.M{"email": email}, nil)
}

// Register tạo tài khoản quản trị viên mới
func (s *AdminService) Register(ctx context.Context, input *accountdto.AdminCreateInput) (accmodels.Admin, error) {
	var zero accmodels.Admin

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return zero, common.NewError(common.ErrCodeInternalServer, "Không thể xử lý mật khẩu", common.StatusInternalServerError, nil)
	}

	admin := accmodels.Admin{
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
	}

	created, err := s.InsertOne(ctx, admin)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	return created, nil
}

// SeedInitialAdmin tạo quản trị viên đầu tiên từ cấu hình nếu chưa tồn tại.
// Gọi một lần khi khởi động server.
func (s *AdminService) SeedInitialAdmin(ctx context.Context, email string, password string) error {
	if email == "" || password == "" {
		return nil
	}

	exists, err := s.DocumentExists(ctx, bson.M{"email": email})
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if exists {
		return nil
	}

	_, err = s.Register(ctx, &accountdto.AdminCreateInput{
		Email:    email,
		Password: password,
		FullName: "System Administrator",
	})
	return err
}
