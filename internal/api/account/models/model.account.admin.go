package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin là tài khoản quản trị viên của hệ thống
type Admin struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email        string             `json:"email" bson:"email" index:"unique"`
	PasswordHash string             `json:"-" bson:"passwordHash"`
	FullName     string             `json:"fullName" bson:"fullName"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}
