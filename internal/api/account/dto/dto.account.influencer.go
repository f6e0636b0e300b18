package accountdto

// PlatformProfileInput hồ sơ một nền tảng mạng xã hội trong form đăng ký.
type PlatformProfileInput struct {
	Platform   string `json:"platform" validate:"required,platform"`
	Handle     string `json:"handle" validate:"required,no_xss"`
	ProfileURL string `json:"profileUrl" validate:"omitempty,url"`
	Followers  int64  `json:"followers" validate:"gte=0"`
}

// InfluencerCreateInput đầu vào đăng ký tài khoản influencer.
// Request là multipart/form-data: field "data" chứa JSON của struct này,
// file đính kèm được handler đọc riêng từ form.
type InfluencerCreateInput struct {
	Email     string                 `json:"email" validate:"required,email"`
	Password  string                 `json:"password" validate:"required,strong_password"`
	FullName  string                 `json:"fullName" validate:"required,no_xss"`
	Phone     string                 `json:"phone" validate:"required"`
	Country   string                 `json:"country"`
	Niches    []string               `json:"niches" validate:"omitempty,dive,no_xss"`
	Platforms []PlatformProfileInput `json:"platforms" validate:"omitempty,dive"`
}

// InfluencerUpdateInput đầu vào cập nhật hồ sơ influencer.
type InfluencerUpdateInput struct {
	FullName string   `json:"fullName" validate:"omitempty,no_xss"`
	Phone    string   `json:"phone"`
	Country  string   `json:"country"`
	Niches   []string `json:"niches" validate:"omitempty,dive,no_xss"`
}
