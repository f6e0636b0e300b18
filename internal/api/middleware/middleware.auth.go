package middleware

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"kol_market/internal/common"
	"kol_market/internal/global"
	"kol_market/internal/logger"
	"kol_market/internal/utility"
)

// Các vai trò tài khoản trong hệ thống
const (
	RoleBrand      = "brand"
	RoleInfluencer = "influencer"
	RoleAdmin      = "admin"
)

// Authenticator xác thực người dùng từ access token và nạp tài khoản tương ứng.
// Tài khoản được cache 5 phút để tránh query database mỗi request.
type Authenticator struct {
	cache *utility.Cache
}

var (
	authenticatorInstance *Authenticator
	authenticatorOnce     sync.Once
)

// GetAuthenticator trả về instance duy nhất của Authenticator (singleton pattern)
func GetAuthenticator() *Authenticator {
	authenticatorOnce.Do(func() {
		authenticatorInstance = &Authenticator{
			cache: utility.NewCache(5*time.Minute, 10*time.Minute),
		}
	})
	return authenticatorInstance
}

// collectionNameForRole trả về tên collection chứa tài khoản theo vai trò
func collectionNameForRole(role string) string {
	switch role {
	case RoleBrand:
		return global.MongoDB_ColNames.Brands
	case RoleInfluencer:
		return global.MongoDB_ColNames.Influencers
	case RoleAdmin:
		return global.MongoDB_ColNames.Admins
	default:
		return ""
	}
}

// cloneAccount tạo bản sao nông của document tài khoản.
// Document trong cache được chia sẻ giữa các request đồng thời,
// nên mọi thao tác đọc/ghi phải đi qua bản sao riêng của từng request.
func cloneAccount(account bson.M) bson.M {
	clone := make(bson.M, len(account))
	for k, v := range account {
		clone[k] = v
	}
	return clone
}

// loadAccount nạp tài khoản theo vai trò và id, có cache.
// passwordHash bị loại bỏ trước khi đưa vào cache, và mỗi lần đọc
// trả về một bản sao để caller không làm thay đổi document đang cache.
func (a *Authenticator) loadAccount(ctx context.Context, role string, accountID string) (bson.M, error) {
	cacheKey := "account:" + role + ":" + accountID

	if cached, found := a.cache.Get(cacheKey); found {
		if acc, ok := cached.(bson.M); ok && acc != nil {
			return cloneAccount(acc), nil
		}
	}

	colName := collectionNameForRole(role)
	if colName == "" {
		return nil, common.ErrTokenInvalid
	}

	collection, exists := global.RegistryCollections.Get(colName)
	if !exists {
		return nil, common.ErrMongoConnection
	}

	var account bson.M
	err := collection.FindOne(ctx, bson.M{"_id": utility.String2ObjectID(accountID)}).Decode(&account)
	if err != nil {
		return nil, common.ErrTokenInvalid
	}

	delete(account, "passwordHash")
	a.cache.Set(cacheKey, account)
	return cloneAccount(account), nil
}

// InvalidateAccount xóa cache của một tài khoản (gọi khi tài khoản bị khóa/cập nhật)
func (a *Authenticator) InvalidateAccount(role string, accountID string) {
	a.cache.Set("account:"+role+":"+accountID, nil)
}

// AuthMiddleware xác thực access token cho Fiber.
// Sau khi xác thực thành công, middleware lưu vào context:
//   - account_id: id tài khoản (hex string)
//   - account_role: vai trò (brand | influencer | admin)
//   - account: document tài khoản (bson.M, không có passwordHash)
func AuthMiddleware() fiber.Handler {
	authenticator := GetAuthenticator()

	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("Thiếu Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		claims, err := utility.ParseToken(global.MongoDB_ServerConfig.JwtSecret, parts[1])
		if err != nil {
			HandleErrorResponse(c, err)
			return nil
		}

		// Token reset mật khẩu không được dùng để truy cập API
		if claims.Purpose != "" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		account, err := authenticator.loadAccount(c.Context(), claims.Role, claims.Subject)
		if err != nil || account == nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":       c.Path(),
				"account_id": claims.Subject,
				"role":       claims.Role,
			}).Warn("Token hợp lệ nhưng không tìm thấy tài khoản")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		if blocked, ok := account["isBlocked"].(bool); ok && blocked {
			HandleErrorResponse(c, common.ErrAccountBlocked)
			return nil
		}

		c.Locals("account_id", claims.Subject)
		c.Locals("account_role", claims.Role)
		c.Locals("account", account)
		return c.Next()
	}
}

// RequireRoles giới hạn truy cập theo vai trò. Phải đứng sau AuthMiddleware.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		role, ok := c.Locals("account_role").(string)
		if !ok || role == "" {
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		logger.GetAppLogger().WithFields(logrus.Fields{
			"path":           c.Path(),
			"account_role":   role,
			"required_roles": roles,
		}).Warn("Tài khoản không có vai trò phù hợp")
		HandleErrorResponse(c, common.ErrForbidden)
		return nil
	}
}

// RequireSelfOrAdmin chỉ cho phép chủ tài khoản (param :id trùng account_id)
// hoặc admin thao tác. Dùng cho các route cập nhật hồ sơ.
func RequireSelfOrAdmin(paramName string) fiber.Handler {
	return func(c fiber.Ctx) error {
		role, _ := c.Locals("account_role").(string)
		if role == RoleAdmin {
			return c.Next()
		}

		accountID, _ := c.Locals("account_id").(string)
		if accountID != "" && accountID == c.Params(paramName) {
			return c.Next()
		}

		logger.GetAppLogger().WithFields(logrus.Fields{
			"path":       c.Path(),
			"account_id": accountID,
		}).Warn("Tài khoản không có quyền thao tác trên tài nguyên này")
		HandleErrorResponse(c, common.ErrForbidden)
		return nil
	}
}
