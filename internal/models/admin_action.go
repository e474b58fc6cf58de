package models

import "time"

// Admin action type tags.
const (
	ActionProductModeration = "product_moderation"
	ActionReportUpdate      = "report_update"
	ActionUserRoleUpdate    = "user_role_update"
	ActionUserStatusUpdate  = "user_status_update"
	ActionCleanupUnverified = "cleanup_unverified"
)

// Admin action target types.
const (
	TargetProduct = "product"
	TargetReport  = "listing_report"
	TargetUser    = "user"
	TargetSystem  = "system"
)

// AdminAction is an append-only audit entry. Rows are never updated.
type AdminAction struct {
	ID          uint      `gorm:"primaryKey" json:"action_id"`
	AdminID     uint      `gorm:"not null;index" json:"admin_id"`
	ActionType  string    `gorm:"size:64;not null" json:"action_type"`
	TargetType  string    `gorm:"size:32;not null" json:"target_type"`
	TargetID    uint      `gorm:"not null" json:"target_id"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}
