package models

import (
	"time"
)

type Role string

const (
	RoleStaff   Role = "staff"
	RoleManager Role = "manager"
)

// User is the local shadow of an identity issued by the hosted auth platform.
// AuthUserID is the platform subject; rows are upserted from verified token
// claims on first sight.
type User struct {
	BaseUUIDModel
	AuthUserID  string     `gorm:"column:auth_user_id;type:text;uniqueIndex" json:"-"`
	DisplayName string     `gorm:"type:text"                                 json:"displayName"`
	Email       *string    `gorm:"type:text;uniqueIndex"                     json:"email,omitempty"`
	Role        Role       `gorm:"type:text;default:'staff'"                 json:"role"`
	IsActive    bool       `gorm:"type:bool;default:true"                    json:"isActive"`
	LastLoginAt *time.Time `gorm:"type:timestamp"                            json:"lastLoginAt,omitempty"`
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// UpdateFromClaims refreshes the shadow row from verified token claims.
func (u *User) UpdateFromClaims(displayName string, email *string) {
	now := time.Now()
	u.LastLoginAt = &now

	if displayName != "" {
		u.DisplayName = displayName
	}
	if email != nil && *email != "" {
		u.Email = email
	}
}
