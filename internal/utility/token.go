package utility

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"kol_market/internal/common"
)

// TokenClaims là claims của access/refresh token trong hệ thống.
// Subject chứa account id; Role phân biệt brand/influencer/admin;
// Purpose đánh dấu token đặc biệt (refresh, password_reset).
type TokenClaims struct {
	Role    string `json:"role"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// CreateToken ký một JWT HS256 với claims cho trước và thời gian sống ttl
func CreateToken(secret string, claims TokenClaims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken xác thực chữ ký và hạn của token, trả về claims nếu hợp lệ
func ParseToken(secret string, tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		// Chỉ chấp nhận HMAC, chặn thuật toán "none" hoặc RS256 giả mạo
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, common.ErrTokenInvalid
	}
	return claims, nil
}
