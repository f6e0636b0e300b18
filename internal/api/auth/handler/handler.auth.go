package authhdl

import (
	"fmt"
	"time"

	"kol_market/config"
	authdto "kol_market/internal/api/auth/dto"
	authsvc "kol_market/internal/api/auth/service"
	basehdl "kol_market/internal/api/base/handler"
	"kol_market/internal/common"
	"kol_market/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// refreshCookieName là tên cookie httpOnly chứa refresh token
const refreshCookieName = "refresh_token"

// AuthHandler xử lý các request đăng nhập, refresh token và đặt lại mật khẩu
type AuthHandler struct {
	*basehdl.BaseHandler[interface{}, interface{}, interface{}]
	authService *authsvc.AuthService
	cfg         *config.Configuration
}

// NewAuthHandler tạo mới AuthHandler
func NewAuthHandler(authService *authsvc.AuthService, cfg *config.Configuration) (*AuthHandler, error) {
	if authService == nil {
		return nil, fmt.Errorf("auth service is required")
	}
	return &AuthHandler{
		BaseHandler: &basehdl.BaseHandler[interface{}, interface{}, interface{}]{},
		authService: authService,
		cfg:         cfg,
	}, nil
}

// setRefreshCookie set refresh token vào cookie httpOnly, hạn 7 ngày
func (h *AuthHandler) setRefreshCookie(c fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/api/v1/auth",
		HTTPOnly: true,
		Secure:   h.cfg.EnableTLS,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
	})
}

// HandleLogin xử lý đăng nhập. Refresh token đi qua cookie httpOnly,
// access token trả trong body.
func (h *AuthHandler) HandleLogin(c fiber.Ctx) error {
	var input authdto.LoginInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	result, err := h.authService.Login(c.Context(), &input)
	if err != nil {
		logger.LogAuth("login_failed", c, map[string]interface{}{
			"email": input.Email,
			"role":  input.Role,
		})
		h.HandleResponse(c, nil, err)
		return nil
	}

	logger.LogAuth("login_success", c, map[string]interface{}{
		"email":      input.Email,
		"role":       input.Role,
		"account_id": result.AccountID,
	})
	h.setRefreshCookie(c, result.RefreshToken)
	h.HandleResponse(c, result, nil)
	return nil
}

// HandleRefresh phát hành access token mới từ refresh cookie
func (h *AuthHandler) HandleRefresh(c fiber.Ctx) error {
	refreshToken := c.Cookies(refreshCookieName)
	if refreshToken == "" {
		h.HandleResponse(c, nil, common.ErrTokenMissing)
		return nil
	}

	accessToken, err := h.authService.Refresh(c.Context(), refreshToken)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	h.HandleResponse(c, fiber.Map{"accessToken": accessToken}, nil)
	return nil
}

// HandleForgotPassword nhận email và gửi link đặt lại mật khẩu.
// Luôn trả về 200 để không lộ tài khoản có tồn tại hay không.
func (h *AuthHandler) HandleForgotPassword(c fiber.Ctx) error {
	var input authdto.ForgotPasswordInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	if err := h.authService.ForgotPassword(c.Context(), &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	h.HandleResponse(c, fiber.Map{
		"message": "Nếu email tồn tại trong hệ thống, link đặt lại mật khẩu đã được gửi",
	}, nil)
	return nil
}

// HandleResetPassword đặt lại mật khẩu bằng token nhận qua email
func (h *AuthHandler) HandleResetPassword(c fiber.Ctx) error {
	var input authdto.ResetPasswordInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	if err := h.authService.ResetPassword(c.Context(), &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	logger.LogAuth("password_reset", c, nil)
	h.HandleResponse(c, fiber.Map{"message": "Đặt lại mật khẩu thành công"}, nil)
	return nil
}
