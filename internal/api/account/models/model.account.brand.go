// Package models - các model tài khoản (Brand, Influencer, Admin).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Brand là tài khoản nhãn hàng tạo chiến dịch và thanh toán
type Brand struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email        string             `json:"email" bson:"email" index:"unique"`
	PasswordHash string             `json:"-" bson:"passwordHash"`
	BrandName    string             `json:"brandName" bson:"brandName" index:"single:1"`
	ContactName  string             `json:"contactName" bson:"contactName"`
	Phone        string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Website      string             `json:"website,omitempty" bson:"website,omitempty"`
	Industry     string             `json:"industry,omitempty" bson:"industry,omitempty"`
	IsValidated  bool               `json:"isValidated" bson:"isValidated"`
	IsBlocked    bool               `json:"isBlocked" bson:"isBlocked"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}
