package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Global roles. ADMIN bypasses team membership checks everywhere.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type User struct {
	ID           primitive.ObjectID `json:"userId" bson:"_id,omitempty"`
	LoginID      string             `json:"id" bson:"loginId"` // human-chosen login id, unique
	Password     string             `json:"-" bson:"password"` // bcrypt hash, never sent to client
	Name         string             `json:"name" bson:"name"`
	Department   string             `json:"department,omitempty" bson:"department,omitempty"`
	GlobalRole   string             `json:"globalRole" bson:"globalRole"`
	IsActive     bool               `json:"isActive" bson:"isActive"`
	RefreshToken string             `json:"-" bson:"refreshToken,omitempty"`
	LastLoginAt  *time.Time         `json:"lastLoginAt,omitempty" bson:"lastLoginAt,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type SignupRequest struct {
	ID         string `json:"id" binding:"required,min=3"`
	Password   string `json:"password" binding:"required,min=8"`
	Name       string `json:"name" binding:"required"`
	Department string `json:"department"`
}

type LoginRequest struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

// ErrorResponse is the error body every endpoint returns on failure.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OkResponse is the body endpoints return when there is nothing else to report.
type OkResponse struct {
	Ok bool `json:"ok"`
}
