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

// InfluencerService là cấu trúc chứa các phương thức liên quan đến tài khoản influencer
type InfluencerService struct {
	*basesvc.BaseServiceMongoImpl[accmodels.Influencer]
	email *channels.EmailSender
}

// NewInfluencerService tạo mới InfluencerService
func NewInfluencerService(email *channels.EmailSender) (*InfluencerService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Influencers)
	if !exist {
		return nil, fmt.Errorf("failed to get account_influencers collection: %v", common.ErrNotFound)
	}

	return &InfluencerService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[accmodels.Influencer](collection),
		email:                email,
	}, nil
}

// FindByEmail tìm influencer theo email
func (s *InfluencerService) FindByEmail(ctx context.Context, email string) (accmodels.Influencer, error) {
	return s.FindOne(ctx, bson.M{"email": email}, nil)
}

// Register đăng ký tài khoản influencer mới. Các URL minh chứng
// (proof đã upload S3) được handler truyền vào sau khi upload xong.
func (s *InfluencerService) Register(ctx context.Context, input *accountdto.InfluencerCreateInput, platformProofURLs map[string]string, audienceProofURL string) (accmodels.Influencer, error) {
	var zero accmodels.Influencer

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return zero, common.NewError(common.ErrCodeInternalServer, "Không thể xử lý mật khẩu", common.StatusInternalServerError, nil)
	}

	platforms := make([]accmodels.PlatformProfile, 0, len(input.Platforms))
	for _, p := range input.Platforms {
		platforms = append(platforms, accmodels.PlatformProfile{
			Platform:     p.Platform,
			Handle:       p.Handle,
			ProfileURL:   p.ProfileURL,
			Followers:    p.Followers,
			ProofFileURL: platformProofURLs[p.Platform],
		})
	}

	influencer := accmodels.Influencer{
		Email:            input.Email,
		PasswordHash:     string(hash),
		FullName:         input.FullName,
		Phone:            input.Phone,
		Country:          input.Country,
		Niches:           input.Niches,
		Platforms:        platforms,
		AudienceProofURL: audienceProofURL,
	}

	created, err := s.InsertOne(ctx, influencer)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	if s.email != nil {
		utility.GoProtect(func() {
			subject, body := channels.WelcomeEmail(created.FullName)
			if err := s.email.SendMail(created.Email, subject, body); err != nil {
				logger.GetDeliveryLogger().WithError(err).
					WithField("to", created.Email).
					Warn("Gửi email chào mừng thất bại")
			}
		})
	}

	return created, nil
}
