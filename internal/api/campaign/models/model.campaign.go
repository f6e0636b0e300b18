package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái vòng đời của chiến dịch.
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusPending   = "pending"
	CampaignStatusApproved  = "approved"
	CampaignStatusCompleted = "completed"
	CampaignStatusCancelled = "cancelled"
)

// Trạng thái thanh toán của chiến dịch.
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Trạng thái phản hồi lời mời của influencer.
const (
	AcceptanceStatusPending  = "pending"
	AcceptanceStatusAccepted = "accepted"
	AcceptanceStatusDeclined = "declined"
)

// Trạng thái duyệt của một bài đã nộp.
const (
	ApprovalStatusPending  = "pending"
	ApprovalStatusApproved = "approved"
	ApprovalStatusRejected = "rejected"
)

// Loại tác giả của một bình luận review.
const (
	AuthorTypeBrand      = "brand"
	AuthorTypeInfluencer = "influencer"
)

// CompletionStatus là trạng thái hoàn thành công việc của một influencer
// trong chiến dịch. Kiểu riêng để không trộn lẫn với các trạng thái string khác.
type CompletionStatus string

const (
	// CompletionPending influencer chưa chấp nhận lời mời
	CompletionPending CompletionStatus = "pending"
	// CompletionInProgress đã chấp nhận, đang nộp bài
	CompletionInProgress CompletionStatus = "in_progress"
	// CompletionCompleted đã nộp đủ số bài yêu cầu
	CompletionCompleted CompletionStatus = "completed"
)

// Valid kiểm tra giá trị CompletionStatus hợp lệ
func (s CompletionStatus) Valid() bool {
	switch s {
	case CompletionPending, CompletionInProgress, CompletionCompleted:
		return true
	}
	return false
}

// Pricing là cơ cấu ngân sách của chiến dịch
type Pricing struct {
	Currency      string  `json:"currency" bson:"currency"`
	TotalBudget   float64 `json:"totalBudget" bson:"totalBudget"`
	PerInfluencer float64 `json:"perInfluencer" bson:"perInfluencer"`
	PlatformFee   float64 `json:"platformFee" bson:"platformFee"`
}

// PaymentDetails lưu thông tin giao dịch đã xác minh từ cổng thanh toán
type PaymentDetails struct {
	TransactionID string  `json:"transactionId" bson:"transactionId"`
	FlwRef        string  `json:"flwRef" bson:"flwRef"`
	Amount        float64 `json:"amount" bson:"amount"`
	Currency      string  `json:"currency" bson:"currency"`
	PaidAt        int64   `json:"paidAt" bson:"paidAt"`
	Channel       string  `json:"channel" bson:"channel"`
	CustomerEmail string  `json:"customerEmail" bson:"customerEmail"`
}

// ReviewComment là một bình luận trong thread review của bài đã nộp
type ReviewComment struct {
	ReviewID   string `json:"reviewId" bson:"reviewId"`
	AuthorType string `json:"authorType" bson:"authorType"`
	AuthorID   string `json:"authorId" bson:"authorId"`
	AuthorName string `json:"authorName" bson:"authorName"`
	Comment    string `json:"comment" bson:"comment"`
	CreatedAt  int64  `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64  `json:"updatedAt" bson:"updatedAt,omitempty"`
}

// SubmittedJob là một bài đã nộp của influencer trong chiến dịch
type SubmittedJob struct {
	JobID          string          `json:"jobId" bson:"jobId"`
	Platform       string          `json:"platform" bson:"platform"`
	URL            string          `json:"url" bson:"url"`
	Description    string          `json:"description" bson:"description,omitempty"`
	SubmittedAt    int64           `json:"submittedAt" bson:"submittedAt"`
	ApprovalStatus string          `json:"approvalStatus" bson:"approvalStatus,omitempty"`
	Reviews        []ReviewComment `json:"reviews" bson:"reviews,omitempty"`
}

// StashedDeliverable là bản nháp deliverable lưu tạm, không tính vào số bài đã nộp
type StashedDeliverable struct {
	StashID     string `json:"stashId" bson:"stashId"`
	Platform    string `json:"platform" bson:"platform"`
	URL         string `json:"url" bson:"url"`
	Description string `json:"description" bson:"description,omitempty"`
	StashedAt   int64  `json:"stashedAt" bson:"stashedAt"`
}

// AssignedInfluencer là một influencer được gán vào chiến dịch,
// nhúng trong document campaign.
type AssignedInfluencer struct {
	InfluencerID        primitive.ObjectID   `json:"influencerId" bson:"influencerId"`
	AcceptanceStatus    string               `json:"acceptanceStatus" bson:"acceptanceStatus"`
	CompletionStatus    CompletionStatus     `json:"completionStatus" bson:"completionStatus"`
	AssignedAt          int64                `json:"assignedAt" bson:"assignedAt"`
	RespondedAt         int64                `json:"respondedAt" bson:"respondedAt,omitempty"`
	SubmittedJobs       []SubmittedJob       `json:"submittedJobs" bson:"submittedJobs,omitempty"`
	StashedDeliverables []StashedDeliverable `json:"stashedDeliverables" bson:"stashedDeliverables,omitempty"`
}

// Campaign là chiến dịch marketing của một brand.
// Danh sách influencer được gán nhúng trực tiếp để mọi thao tác
// assignment/deliverable là một atomic update trên một document.
type Campaign struct {
	ID                  primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	BrandID             primitive.ObjectID   `json:"brandId" bson:"brandId" index:"single:1"`
	Title               string               `json:"title" bson:"title"`
	Description         string               `json:"description" bson:"description,omitempty"`
	Platforms           []string             `json:"platforms" bson:"platforms,omitempty"`
	InfluencersMin      int                  `json:"influencersMin" bson:"influencersMin"`
	InfluencersMax      int                  `json:"influencersMax" bson:"influencersMax"`
	Pricing             Pricing              `json:"pricing" bson:"pricing"`
	PostFrequency       string               `json:"postFrequency" bson:"postFrequency,omitempty"`
	PostCount           int                  `json:"postCount" bson:"postCount,omitempty"`
	Status              string               `json:"status" bson:"status" index:"single:1"`
	PaymentStatus       string               `json:"paymentStatus" bson:"paymentStatus"`
	PaymentDetails      *PaymentDetails      `json:"paymentDetails,omitempty" bson:"paymentDetails,omitempty"`
	AssignedInfluencers []AssignedInfluencer `json:"assignedInfluencers" bson:"assignedInfluencers"`
	CreatedAt           int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt           int64                `json:"updatedAt" bson:"updatedAt"`
}

// FindAssignment trả về assignment của một influencer trong campaign, nil nếu chưa được gán
func (c *Campaign) FindAssignment(influencerID primitive.ObjectID) *AssignedInfluencer {
	for i := range c.AssignedInfluencers {
		if c.AssignedInfluencers[i].InfluencerID == influencerID {
			return &c.AssignedInfluencers[i]
		}
	}
	return nil
}
