package authsvc

import (
	"context"
	"fmt"
	"time"

	"kol_market/config"
	authdto "kol_market/internal/api/auth/dto"
	"kol_market/internal/api/middleware"
	"kol_market/internal/common"
	"kol_market/internal/global"
	"kol_market/internal/logger"
	"kol_market/internal/notification/channels"
	"kol_market/internal/utility"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
	resetTokenTTL   = time.Hour

	// PurposeRefresh đánh dấu refresh token, không dùng được làm access token
	PurposeRefresh = "refresh"
	// PurposeReset đánh dấu token đặt lại mật khẩu gửi qua email
	PurposeReset = "password_reset"
)

// credentialRecord là phần tài khoản cần cho xác thực, decode từ
// bất kỳ collection account nào (brand/influencer/admin).
type credentialRecord struct {
	ID           primitive.ObjectID `bson:"_id"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
	FullName     string             `bson:"fullName"`
	BrandName    string             `bson:"brandName"`
	IsBlocked    bool               `bson:"isBlocked"`
}

// displayName trả về tên hiển thị của tài khoản theo loại
func (r *credentialRecord) displayName() string {
	if r.BrandName != "" {
		return r.BrandName
	}
	return r.FullName
}

// LoginResult là kết quả đăng nhập trả về cho client.
// RefreshToken được handler set vào cookie httpOnly, không nằm trong body.
type LoginResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"-"`
	AccountID    string `json:"accountId"`
	Role         string `json:"role"`
	Name         string `json:"name"`
	Email        string `json:"email"`
}

// AuthService xử lý đăng nhập, refresh token và đặt lại mật khẩu
// trên cả ba loại tài khoản.
type AuthService struct {
	cfg   *config.Configuration
	email *channels.EmailSender
}

// NewAuthService tạo mới AuthService
func NewAuthService(cfg *config.Configuration, email *channels.EmailSender) (*AuthService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	return &AuthService{cfg: cfg, email: email}, nil
}

// collectionForRole lấy collection tài khoản tương ứng với role
func collectionForRole(role string) (*mongo.Collection, error) {
	var name string
	switch role {
	case middleware.RoleBrand:
		name = global.MongoDB_ColNames.Brands
	case middleware.RoleInfluencer:
		name = global.MongoDB_ColNames.Influencers
	case middleware.RoleAdmin:
		name = global.MongoDB_ColNames.Admins
	default:
		return nil, common.NewError(common.ErrCodeValidationInput, "Vai trò không hợp lệ", common.StatusBadRequest, nil)
	}

	collection, exist := global.RegistryCollections.Get(name)
	if !exist {
		return nil, common.ErrMongoConnection
	}
	return collection, nil
}

// findByEmail tra tài khoản theo email trong collection của role
func (s *AuthService) findByEmail(ctx context.Context, role string, email string) (*credentialRecord, error) {
	collection, err := collectionForRole(role)
	if err != nil {
		return nil, err
	}

	var record credentialRecord
	if err := collection.FindOne(ctx, bson.M{"email": email}).Decode(&record); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, common.ErrNotFound
		}
		return nil, common.ConvertMongoError(err)
	}
	return &record, nil
}

// Login xác thực email/mật khẩu và phát hành cặp access/refresh token
func (s *AuthService) Login(ctx context.Context, input *authdto.LoginInput) (*LoginResult, error) {
	record, err := s.findByEmail(ctx, input.Role, input.Email)
	if err != nil {
		return nil, common.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(input.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	if record.IsBlocked {
		return nil, common.ErrAccountBlocked
	}

	name := record.displayName()
	accessToken, err := utility.CreateToken(s.cfg.JwtSecret, utility.TokenClaims{
		Role:  input.Role,
		Name:  name,
		Email: record.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: record.ID.Hex(),
		},
	}, accessTokenTTL)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, "Không thể phát hành token", common.StatusInternalServerError, nil)
	}

	refreshToken, err := utility.CreateToken(s.cfg.JwtRefreshSecret, utility.TokenClaims{
		Role:    input.Role,
		Purpose: PurposeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: record.ID.Hex(),
		},
	}, refreshTokenTTL)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, "Không thể phát hành token", common.StatusInternalServerError, nil)
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccountID:    record.ID.Hex(),
		Role:         input.Role,
		Name:         name,
		Email:        record.Email,
	}, nil
}

// Refresh xác thực refresh token và phát hành access token mới.
// Tài khoản bị khóa hoặc đã xóa sẽ không refresh được.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := utility.ParseToken(s.cfg.JwtRefreshSecret, refreshToken)
	if err != nil {
		return "", err
	}
	if claims.Purpose != PurposeRefresh {
		return "", common.ErrTokenInvalid
	}

	collection, err := collectionForRole(claims.Role)
	if err != nil {
		return "", err
	}

	objID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return "", common.ErrTokenInvalid
	}

	var record credentialRecord
	if err := collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&record); err != nil {
		return "", common.ErrTokenInvalid
	}
	if record.IsBlocked {
		return "", common.ErrAccountBlocked
	}

	accessToken, err := utility.CreateToken(s.cfg.JwtSecret, utility.TokenClaims{
		Role:  claims.Role,
		Name:  record.displayName(),
		Email: record.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: record.ID.Hex(),
		},
	}, accessTokenTTL)
	if err != nil {
		return "", common.NewError(common.ErrCodeInternalServer, "Không thể phát hành token", common.StatusInternalServerError, nil)
	}
	return accessToken, nil
}

// ForgotPassword phát hành token đặt lại mật khẩu (hạn 1 giờ) và gửi link
// qua email. Luôn trả về nil để không lộ thông tin tài khoản tồn tại hay không.
func (s *AuthService) ForgotPassword(ctx context.Context, input *authdto.ForgotPasswordInput) error {
	record, err := s.findByEmail(ctx, input.Role, input.Email)
	if err != nil {
		// Không phân biệt "không tồn tại" với thành công
		return nil
	}

	resetToken, err := utility.CreateToken(s.cfg.JwtSecret, utility.TokenClaims{
		Role:    input.Role,
		Email:   record.Email,
		Purpose: PurposeReset,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: record.ID.Hex(),
		},
	}, resetTokenTTL)
	if err != nil {
		logger.GetAppLogger().WithError(err).Error("Không thể phát hành reset token")
		return nil
	}

	if s.email != nil {
		resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.FrontendURL, resetToken)
		name := record.displayName()
		utility.GoProtect(func() {
			subject, body := channels.ResetPasswordEmail(name, resetLink)
			if err := s.email.SendMail(record.Email, subject, body); err != nil {
				logger.GetDeliveryLogger().WithError(err).
					WithField("to", record.Email).
					Warn("Gửi email đặt lại mật khẩu thất bại")
			}
		})
	}
	return nil
}

// ResetPassword xác thực reset token và cập nhật mật khẩu mới
func (s *AuthService) ResetPassword(ctx context.Context, input *authdto.ResetPasswordInput) error {
	claims, err := utility.ParseToken(s.cfg.JwtSecret, input.Token)
	if err != nil {
		return err
	}
	if claims.Purpose != PurposeReset {
		return common.ErrTokenInvalid
	}

	collection, err := collectionForRole(claims.Role)
	if err != nil {
		return err
	}

	objID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return common.ErrTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return common.NewError(common.ErrCodeInternalServer, "Không thể xử lý mật khẩu", common.StatusInternalServerError, nil)
	}

	result, err := collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$set": bson.M{
			"passwordHash": string(hash),
			"updatedAt":    time.Now().UnixMilli(),
		},
	})
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.MatchedCount == 0 {
		return common.ErrNotFound
	}

	// Token cũ trong cache middleware không còn dùng được mật khẩu cũ,
	// nhưng vẫn xóa cache account để thông tin mới có hiệu lực ngay
	middleware.GetAuthenticator().InvalidateAccount(claims.Role, claims.Subject)
	return nil
}
