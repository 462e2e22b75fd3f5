package entity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is a stored refresh token record.
type Token struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	TokenType TokenType `bson:"token_type" json:"token_type"`
	TokenHash string    `bson:"token_hash" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	Revoke    bool      `bson:"revoke" json:"revoke"`
}

type TokenType string

const (
	TokenTypeRefresh TokenType = "refresh"
)

// Claims are the parsed JWT claims carried through the usecase layer.
type Claims struct {
	UserID string
	Role   UserRole
	jwt.RegisteredClaims
}
