// Package models contains data structures for the application's domain models.
package models

import "time"

// UserRole is the authorization role stored on a user record.
type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// AccountStatus gates whether a user may hold a session.
type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountInactive AccountStatus = "inactive"
	AccountBanned   AccountStatus = "banned"
	AccountDeleted  AccountStatus = "deleted"
)

// Valid reports whether s is a known account status.
func (s AccountStatus) Valid() bool {
	switch s {
	case AccountActive, AccountInactive, AccountBanned, AccountDeleted:
		return true
	}
	return false
}

// VerificationStatus records whether the institutional email was confirmed.
type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "unverified"
	VerificationVerified   VerificationStatus = "verified"
)

// User represents a marketplace account.
type User struct {
	ID                 uint               `gorm:"primaryKey" json:"user_id"`
	Username           string             `gorm:"size:20;uniqueIndex;not null" json:"username"`
	Email              string             `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password           string             `gorm:"not null" json:"-"`
	FirstName          string             `gorm:"size:30" json:"first_name"`
	LastName           string             `gorm:"size:30" json:"last_name"`
	Role               UserRole           `gorm:"size:16;not null;default:'user'" json:"user_role"`
	AccountStatus      AccountStatus      `gorm:"size:16;not null;default:'active';index" json:"account_status"`
	VerificationStatus VerificationStatus `gorm:"size:16;not null;default:'unverified';index" json:"verification_status"`
	VerificationToken  *string            `gorm:"size:64;uniqueIndex" json:"-"`
	TokenCreatedAt     *time.Time         `json:"-"`
	ProfilePictureURL  string             `gorm:"size:512" json:"profile_picture_url,omitempty"`
	// LegacyBookmarks holds the old JSON array of product IDs. Only the
	// startup migration reads it; the wishlist table is authoritative.
	LegacyBookmarks string     `gorm:"column:bookmarks;type:text" json:"-"`
	DateJoined      time.Time  `gorm:"autoCreateTime" json:"date_joined"`
	LastLogin       *time.Time `json:"last_login,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// IsActive reports whether the account may hold a session.
func (u *User) IsActive() bool {
	return u.AccountStatus == AccountActive
}

// IsVerified reports whether the account confirmed its email.
func (u *User) IsVerified() bool {
	return u.VerificationStatus == VerificationVerified
}

// IsAdmin reports whether the account has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
