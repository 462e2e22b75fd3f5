package entity

import (
	"time"
)

// User represents an authenticated principal's profile record.
type User struct {
	ID        string    `bson:"_id" json:"id"`
	Email     string    `bson:"email" json:"email"`
	Name      string    `bson:"name" json:"name"`
	Role      UserRole  `bson:"role" json:"role"`
	AvatarURL *string   `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Credential is the auth identity backing a User. It is stored separately
// from the profile record, which can lag behind identity creation.
type Credential struct {
	ID           string    `bson:"_id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// UserRole represents the role of a user in the system. Fixed at creation.
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleStudent UserRole = "student"
)

func DefaultRole() UserRole {
	return UserRoleStudent
}

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch UserRole(s) {
	case UserRoleAdmin, UserRoleStudent:
		return true
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}

func (u *User) IsStudent() bool {
	return u != nil && u.Role == UserRoleStudent
}
