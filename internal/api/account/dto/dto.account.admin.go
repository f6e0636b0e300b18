package accountdto

// AdminCreateInput đầu vào tạo tài khoản quản trị viên.
type AdminCreateInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strong_password"`
	FullName string `json:"fullName" validate:"required,no_xss"`
}

// AdminUpdateInput đầu vào cập nhật tài khoản quản trị viên.
type AdminUpdateInput struct {
	FullName string `json:"fullName" validate:"omitempty,no_xss"`
}
