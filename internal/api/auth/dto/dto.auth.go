package authdto

// LoginInput đầu vào đăng nhập: role xác định collection tài khoản cần tra.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=brand influencer admin"`
}

// ForgotPasswordInput đầu vào yêu cầu đặt lại mật khẩu.
type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=brand influencer admin"`
}

// ResetPasswordInput đầu vào đặt lại mật khẩu bằng token nhận qua email.
type ResetPasswordInput struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,strong_password"`
}
