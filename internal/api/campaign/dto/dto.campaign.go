package campaigndto

// PricingInput cơ cấu ngân sách trong form tạo chiến dịch.
type PricingInput struct {
	Currency      string  `json:"currency" validate:"required,len=3"`
	TotalBudget   float64 `json:"totalBudget" validate:"required,gt=0"`
	PerInfluencer float64 `json:"perInfluencer" validate:"gte=0"`
	PlatformFee   float64 `json:"platformFee" validate:"gte=0"`
}

// CampaignCreateInput đầu vào tạo chiến dịch mới.
type CampaignCreateInput struct {
	Title          string       `json:"title" validate:"required,no_xss,max=200"`
	Description    string       `json:"description" validate:"omitempty,no_xss,max=5000"`
	Platforms      []string     `json:"platforms" validate:"required,min=1,dive,platform"`
	InfluencersMin int          `json:"influencersMin" validate:"required,gte=1"`
	InfluencersMax int          `json:"influencersMax" validate:"required,gte=1"`
	Pricing        PricingInput `json:"pricing" validate:"required"`
	PostFrequency  string       `json:"postFrequency" validate:"omitempty,no_xss,max=500"`
	PostCount      int          `json:"postCount" validate:"gte=0"`
}

// CampaignUpdateInput đầu vào cập nhật chiến dịch.
// Assignment và trạng thái thanh toán không đổi được qua đường cập nhật này.
type CampaignUpdateInput struct {
	Title          string        `json:"title" validate:"omitempty,no_xss,max=200"`
	Description    string        `json:"description" validate:"omitempty,no_xss,max=5000"`
	Platforms      []string      `json:"platforms" validate:"omitempty,dive,platform"`
	InfluencersMin int           `json:"influencersMin" validate:"gte=0"`
	InfluencersMax int           `json:"influencersMax" validate:"gte=0"`
	Pricing        *PricingInput `json:"pricing" validate:"omitempty"`
	PostFrequency  string        `json:"postFrequency" validate:"omitempty,no_xss,max=500"`
	PostCount      int           `json:"postCount" validate:"gte=0"`
	Status         string        `json:"status" validate:"omitempty,oneof=draft pending approved completed cancelled"`
}

// AssignInfluencersInput đầu vào gán influencer vào chiến dịch (admin).
// Mỗi id phải tồn tại trong collection account_influencers.
type AssignInfluencersInput struct {
	InfluencerIDs []string `json:"influencerIds" validate:"required,min=1,dive,exists=account_influencers"`
}

// RespondInput đầu vào influencer phản hồi lời mời tham gia chiến dịch.
type RespondInput struct {
	Status string `json:"status" validate:"required,oneof=accepted declined"`
}
