package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// User is an application account resolved from the external identity
// provider. The username is the key every engagement record is scoped to.
type User struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	Username    string `json:"username" gorm:"uniqueIndex"`
	Email       string `json:"email" gorm:"uniqueIndex"`
	Role        string `json:"role" gorm:"size:20;default:USER"`
	FirebaseUID string `json:"-" gorm:"uniqueIndex"` // IdP subject this account is linked to
}

// FirebaseLoginRequest carries the IdP ID token exchanged for a session token.
type FirebaseLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
