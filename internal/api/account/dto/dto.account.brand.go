package accountdto

// BrandCreateInput đầu vào đăng ký tài khoản nhãn hàng.
type BrandCreateInput struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,strong_password"`
	BrandName   string `json:"brandName" validate:"required,no_xss"`
	ContactName string `json:"contactName" validate:"omitempty,no_xss"`
	Phone       string `json:"phone"`
	Website     string `json:"website" validate:"omitempty,url"`
	Industry    string `json:"industry" validate:"omitempty,no_xss"`
}

// BrandUpdateInput đầu vào cập nhật hồ sơ nhãn hàng.
// Email và mật khẩu không đổi qua đường cập nhật hồ sơ.
type BrandUpdateInput struct {
	BrandName   string `json:"brandName" validate:"omitempty,no_xss"`
	ContactName string `json:"contactName" validate:"omitempty,no_xss"`
	Phone       string `json:"phone"`
	Website     string `json:"website" validate:"omitempty,url"`
	Industry    string `json:"industry" validate:"omitempty,no_xss"`
}
