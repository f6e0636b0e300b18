package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlatformProfile là hồ sơ của influencer trên một nền tảng mạng xã hội
type PlatformProfile struct {
	Platform     string `json:"platform" bson:"platform"`
	Handle       string `json:"handle" bson:"handle"`
	ProfileURL   string `json:"profileUrl,omitempty" bson:"profileUrl,omitempty"`
	Followers    int64  `json:"followers,omitempty" bson:"followers,omitempty"`
	ProofFileURL string `json:"proofFileUrl,omitempty" bson:"proofFileUrl,omitempty"` // File minh chứng trên S3
}

// Influencer là tài khoản người sáng tạo nội dung nhận chiến dịch
type Influencer struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email            string             `json:"email" bson:"email" index:"unique"`
	PasswordHash     string             `json:"-" bson:"passwordHash"`
	FullName         string             `json:"fullName" bson:"fullName" index:"single:1"`
	Phone            string             `json:"phone,omitempty" bson:"phone,omitempty"` // Số WhatsApp nhận thông báo
	Country          string             `json:"country,omitempty" bson:"country,omitempty"`
	Niches           []string           `json:"niches,omitempty" bson:"niches,omitempty"`
	Platforms        []PlatformProfile  `json:"platforms,omitempty" bson:"platforms,omitempty"`
	AudienceProofURL string             `json:"audienceProofUrl,omitempty" bson:"audienceProofUrl,omitempty"`
	IsValidated      bool               `json:"isValidated" bson:"isValidated"`
	IsBlocked        bool               `json:"isBlocked" bson:"isBlocked"`
	CreatedAt        int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt        int64              `json:"updatedAt" bson:"updatedAt"`
}
